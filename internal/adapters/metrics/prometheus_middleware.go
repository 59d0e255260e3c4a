package metrics

import (
	"context"
	"time"

	"github.com/dako7777777/rental-bidding-tool/internal/application/common"
)

// PrometheusMiddleware creates a middleware that records request metrics
//
// This middleware wraps every request and records its duration and outcome.
// Responses that summarise recommendation bids also feed the round label,
// the shared-bid counter and the bid spread.
//
// Request names are the request type name without package or pointer prefix,
// e.g. "*recommendation.GenerateRecommendationsCommand" becomes "GenerateRecommendationsCommand"
func PrometheusMiddleware(collector *RequestMetricsCollector) common.Middleware {
	return func(ctx context.Context, request common.Request, next common.HandlerFunc) (common.Response, error) {
		// Skip metrics if collector is nil (metrics disabled)
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)

		collector.RecordRequest(common.RequestName(request), time.Since(start).Seconds(), response, err)
		return response, err
	}
}
