package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// SearchMetricsCollector handles all strategy search metrics
type SearchMetricsCollector struct {
	searchesTotal        *prometheus.CounterVec
	searchNodes          *prometheus.HistogramVec
	searchDuration       *prometheus.HistogramVec
	thresholdGapsTotal   *prometheus.CounterVec
	budgetExhaustedTotal *prometheus.CounterVec
	recommendedBidRatio  *prometheus.GaugeVec
}

// NewSearchMetricsCollector creates a new search metrics collector
func NewSearchMetricsCollector() *SearchMetricsCollector {
	return &SearchMetricsCollector{
		searchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "searches_total",
				Help:      "Total number of strategy searches by strategy and whether a fallback bid was used",
			},
			[]string{"strategy", "fallback"},
		),

		searchNodes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "search_nodes",
				Help:      "Nodes visited per strategy search",
				Buckets:   prometheus.ExponentialBuckets(100, 4, 8),
			},
			[]string{"strategy"},
		),

		searchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "search_duration_seconds",
				Help:      "Strategy search duration distribution",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"strategy"},
		),

		thresholdGapsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "threshold_gaps_total",
				Help:      "Landlord nodes where no threshold rule applied and the gap fallback was used",
			},
			[]string{"strategy"},
		),

		budgetExhaustedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "budget_exhausted_total",
				Help:      "Searches stopped early by the node or time budget",
			},
			[]string{"strategy"},
		),

		recommendedBidRatio: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "recommended_bid_ratio",
				Help:      "Most recent recommended bid as a fraction of the listing price",
			},
			[]string{"strategy"},
		),
	}
}

// Register registers all search metrics with the Prometheus registry
func (c *SearchMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.searchesTotal,
		c.searchNodes,
		c.searchDuration,
		c.thresholdGapsTotal,
		c.budgetExhaustedTotal,
		c.recommendedBidRatio,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordSearch records one finished strategy search
func (c *SearchMetricsCollector) RecordSearch(obs SearchObservation) {
	c.searchesTotal.WithLabelValues(obs.Strategy, strconv.FormatBool(obs.Fallback)).Inc()
	c.searchNodes.WithLabelValues(obs.Strategy).Observe(float64(obs.Nodes))
	c.searchDuration.WithLabelValues(obs.Strategy).Observe(obs.Duration.Seconds())
	if obs.GapFills > 0 {
		c.thresholdGapsTotal.WithLabelValues(obs.Strategy).Add(float64(obs.GapFills))
	}
	if obs.BudgetExhausted {
		c.budgetExhaustedTotal.WithLabelValues(obs.Strategy).Inc()
	}
	c.recommendedBidRatio.WithLabelValues(obs.Strategy).Set(obs.BidRatio)
}
