package metrics

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dako7777777/rental-bidding-tool/internal/domain/shared"
)

// Request outcomes
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeCanceled = "canceled"
	OutcomeError    = "error"
)

// RecommendationSummary is implemented by responses that carry a set of
// strategy bids. The middleware reads it to label request metrics.
type RecommendationSummary interface {
	// RoundLabel names the negotiation round the bids are for.
	RoundLabel() string
	// Bids lists the recommended bids from conservative to aggressive.
	Bids() []float64
}

// RequestMetricsCollector records recommendation requests dispatched through the mediator
type RequestMetricsCollector struct {
	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	sharedBidsTotal *prometheus.CounterVec
	bidSpread       *prometheus.HistogramVec
}

// NewRequestMetricsCollector creates a new request metrics collector
func NewRequestMetricsCollector() *RequestMetricsCollector {
	return &RequestMetricsCollector{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "request_duration_seconds",
				Help:      "Time to answer a recommendation request, all three strategy searches included",
				Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
			},
			[]string{"request", "outcome"},
		),

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Recommendation requests by request type, negotiation round and outcome",
			},
			[]string{"request", "round", "outcome"},
		),

		sharedBidsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "shared_bids_total",
				Help:      "Neighbouring strategies that ended up recommending the same bid",
			},
			[]string{"round"},
		),

		bidSpread: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "bid_spread_dollars",
				Help:      "Distance between the conservative and the aggressive bid",
				Buckets:   []float64{0, 20, 50, 100, 200, 400, 800},
			},
			[]string{"round"},
		),
	}
}

// Register registers all request metrics with the Prometheus registry
func (c *RequestMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.requestDuration,
		c.requestsTotal,
		c.sharedBidsTotal,
		c.bidSpread,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordRequest records one answered request. The response is only inspected
// when it summarises recommendation bids.
func (c *RequestMetricsCollector) RecordRequest(requestName string, duration float64, response any, err error) {
	outcome := Outcome(err)
	round := "unknown"

	summary, ok := response.(RecommendationSummary)
	if ok && err == nil {
		round = summary.RoundLabel()
		bids := summary.Bids()
		for i := 1; i < len(bids); i++ {
			if bids[i] == bids[i-1] {
				c.sharedBidsTotal.WithLabelValues(round).Inc()
			}
		}
		if len(bids) > 0 {
			c.bidSpread.WithLabelValues(round).Observe(bids[len(bids)-1] - bids[0])
		}
	}

	c.requestDuration.WithLabelValues(requestName, outcome).Observe(duration)
	c.requestsTotal.WithLabelValues(requestName, round, outcome).Inc()
}

// Outcome classifies a request error for metric labels
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	case errors.Is(err, shared.ErrInvalidConfiguration):
		return OutcomeRejected
	default:
		return OutcomeError
	}
}
