package metrics_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dako7777777/rental-bidding-tool/internal/adapters/metrics"
	"github.com/dako7777777/rental-bidding-tool/internal/application/common"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/shared"
)

type echoCommand struct {
	Fail bool
	Err  error
}

type echoHandler struct{}

func (echoHandler) Handle(_ context.Context, request common.Request) (common.Response, error) {
	cmd := request.(*echoCommand)
	if cmd.Err != nil {
		return nil, cmd.Err
	}
	if cmd.Fail {
		return nil, errors.New("boom")
	}
	return "ok", nil
}

func TestSearchMetricsAreRecordedAndExported(t *testing.T) {
	// Arrange
	metrics.InitRegistry()
	t.Cleanup(metrics.ResetRegistry)
	collector := metrics.NewSearchMetricsCollector()
	require.NoError(t, collector.Register())
	metrics.SetGlobalSearchCollector(collector)

	// Act
	metrics.RecordSearch(metrics.SearchObservation{
		Strategy: "balanced", Nodes: 1200, GapFills: 2, Duration: 15 * time.Millisecond, BidRatio: 1.04,
	})
	metrics.RecordSearch(metrics.SearchObservation{
		Strategy: "balanced", Fallback: true, BudgetExhausted: true, BidRatio: 0.95,
	})

	// Assert
	var buf bytes.Buffer
	require.NoError(t, metrics.WriteText(&buf))
	out := buf.String()
	assert.Contains(t, out, `rentbid_advisor_searches_total{fallback="false",strategy="balanced"} 1`)
	assert.Contains(t, out, `rentbid_advisor_searches_total{fallback="true",strategy="balanced"} 1`)
	assert.Contains(t, out, `rentbid_advisor_threshold_gaps_total{strategy="balanced"} 2`)
	assert.Contains(t, out, `rentbid_advisor_budget_exhausted_total{strategy="balanced"} 1`)
	assert.Contains(t, out, `rentbid_advisor_recommended_bid_ratio{strategy="balanced"} 0.95`)
}

func TestRecordSearchWithoutCollectorIsANoop(t *testing.T) {
	metrics.ResetRegistry()
	assert.NotPanics(t, func() {
		metrics.RecordSearch(metrics.SearchObservation{Strategy: "aggressive"})
	})
	assert.False(t, metrics.IsEnabled())
	assert.Error(t, metrics.WriteText(&bytes.Buffer{}))
}

func TestPrometheusMiddlewareCountsOutcomes(t *testing.T) {
	metrics.InitRegistry()
	t.Cleanup(metrics.ResetRegistry)
	collector := metrics.NewRequestMetricsCollector()
	require.NoError(t, collector.Register())

	m := common.NewMediator()
	m.Use(metrics.PrometheusMiddleware(collector))
	require.NoError(t, common.RegisterHandler[*echoCommand](m, echoHandler{}))

	_, err := m.Send(context.Background(), &echoCommand{})
	require.NoError(t, err)
	_, err = m.Send(context.Background(), &echoCommand{Fail: true})
	require.Error(t, err)
	_, err = m.Send(context.Background(), &echoCommand{Err: shared.NewValidationError("listing_price", "must be positive")})
	require.Error(t, err)

	assert.Equal(t, 3, testutil.CollectAndCount(metrics.GetRegistry(), "rentbid_advisor_requests_total"))

	var buf bytes.Buffer
	require.NoError(t, metrics.WriteText(&buf))
	out := buf.String()
	assert.Contains(t, out, `rentbid_advisor_requests_total{outcome="success",request="echoCommand",round="unknown"} 1`)
	assert.Contains(t, out, `rentbid_advisor_requests_total{outcome="error",request="echoCommand",round="unknown"} 1`)
	assert.Contains(t, out, `rentbid_advisor_requests_total{outcome="rejected",request="echoCommand",round="unknown"} 1`)
}

type bidSummary struct {
	round string
	bids  []float64
}

func (b bidSummary) RoundLabel() string { return b.round }
func (b bidSummary) Bids() []float64    { return b.bids }

func TestRecordRequestSummarisesBids(t *testing.T) {
	metrics.InitRegistry()
	t.Cleanup(metrics.ResetRegistry)
	collector := metrics.NewRequestMetricsCollector()
	require.NoError(t, collector.Register())

	collector.RecordRequest("AdvanceToFinalRoundCommand", 0.2, bidSummary{round: "final", bids: []float64{2150, 2250, 2250}}, nil)
	collector.RecordRequest("GenerateRecommendationsCommand", 0.4, bidSummary{round: "opening", bids: []float64{2100, 2288, 2400}}, nil)

	var buf bytes.Buffer
	require.NoError(t, metrics.WriteText(&buf))
	out := buf.String()
	assert.Contains(t, out, `rentbid_advisor_requests_total{outcome="success",request="AdvanceToFinalRoundCommand",round="final"} 1`)
	assert.Contains(t, out, `rentbid_advisor_shared_bids_total{round="final"} 1`)
	assert.NotContains(t, out, `rentbid_advisor_shared_bids_total{round="opening"}`)
	assert.Contains(t, out, `rentbid_advisor_bid_spread_dollars_sum{round="opening"} 300`)
	assert.Contains(t, out, `rentbid_advisor_bid_spread_dollars_sum{round="final"} 100`)
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, metrics.OutcomeSuccess, metrics.Outcome(nil))
	assert.Equal(t, metrics.OutcomeCanceled, metrics.Outcome(fmt.Errorf("balanced search: %w", context.Canceled)))
	assert.Equal(t, metrics.OutcomeRejected, metrics.Outcome(fmt.Errorf("%w: sigma", shared.ErrInvalidConfiguration)))
	assert.Equal(t, metrics.OutcomeError, metrics.Outcome(errors.New("boom")))
}
