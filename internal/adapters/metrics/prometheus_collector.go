package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const (
	// Namespace for all metrics
	namespace = "rentbid"
	// Subsystem for recommendation engine metrics
	subsystem = "advisor"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalSearchCollector is the singleton search metrics collector
	// Set by SetGlobalSearchCollector() when metrics are enabled
	globalSearchCollector SearchMetricsRecorder
)

// SearchObservation describes one finished strategy search.
type SearchObservation struct {
	Strategy        string
	Fallback        bool
	Nodes           int
	GapFills        int
	BudgetExhausted bool
	Duration        time.Duration
	BidRatio        float64
}

// SearchMetricsRecorder defines the interface for recording search metrics
// This interface is used by application code to record metrics
type SearchMetricsRecorder interface {
	RecordSearch(obs SearchObservation)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// ResetRegistry disables metrics and clears the global collector
func ResetRegistry() {
	Registry = nil
	globalSearchCollector = nil
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalSearchCollector sets the global search metrics collector
func SetGlobalSearchCollector(collector SearchMetricsRecorder) {
	globalSearchCollector = collector
}

// RecordSearch records a finished search globally
func RecordSearch(obs SearchObservation) {
	if globalSearchCollector != nil {
		globalSearchCollector.RecordSearch(obs)
	}
}

// WriteText dumps every registered metric in the Prometheus text exposition format
func WriteText(w io.Writer) error {
	if Registry == nil {
		return fmt.Errorf("metrics are not enabled")
	}
	families, err := Registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to encode metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
