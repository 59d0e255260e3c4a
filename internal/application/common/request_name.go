package common

import (
	"reflect"
	"strings"
)

// RequestName extracts a clean command name from the request using reflection
// Examples:
//   - "*recommendation.GenerateRecommendationsCommand" → "GenerateRecommendationsCommand"
//   - "recommendation.AdvanceToFinalRoundCommand" → "AdvanceToFinalRoundCommand"
func RequestName(request Request) string {
	if request == nil {
		return "UnknownCommand"
	}

	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")

	parts := strings.Split(fullName, ".")
	return parts[len(parts)-1]
}
