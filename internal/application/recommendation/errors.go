package recommendation

import "errors"

// ErrInvalidFeedback is returned when final-round landlord feedback cannot
// seed a search.
var ErrInvalidFeedback = errors.New("invalid landlord feedback")
