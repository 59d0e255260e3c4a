package recommendation

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/dako7777777/rental-bidding-tool/internal/adapters/metrics"
	"github.com/dako7777777/rental-bidding-tool/internal/application/common"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/landlord"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/negotiation"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/payoff"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/search"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/shared"
)

// Options controls post-processing of the three strategy searches.
type Options struct {
	// Tolerance is the smallest gap, in dollars, kept between neighbouring strategies.
	Tolerance float64
	// Increment is the step used to push strategies apart.
	Increment float64
	// Parallel runs the three searches concurrently.
	Parallel bool
}

// DefaultOptions returns the standard differentiation settings.
func DefaultOptions() Options {
	return Options{
		Tolerance: 20,
		Increment: 50,
	}
}

// Generator turns a root negotiation state into one recommendation per strategy.
type Generator struct {
	tuning  search.Tuning
	options Options
	clock   shared.Clock
}

// NewGenerator creates a generator. A nil clock means wall-clock time.
func NewGenerator(tuning search.Tuning, options Options, clock shared.Clock) *Generator {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Generator{
		tuning:  tuning,
		options: options,
		clock:   clock,
	}
}

// Tuning returns the search constants the generator runs with.
func (g *Generator) Tuning() search.Tuning {
	return g.tuning
}

// strategyRun is one strategy's biased root state, its engine and its result.
type strategyRun struct {
	strategy Strategy
	state    negotiation.State
	engine   *search.Engine
	outcome  search.Outcome
	stats    search.Stats
}

// Generate searches once per strategy from root and post-processes the bids so
// they are ordered, distinct where the budget allows, and affordable. After a
// counter offer every bid stays on the counter price or the original bid, so
// neighbouring strategies may recommend the same amount.
// Configuration errors are returned before any search starts.
func (g *Generator) Generate(ctx context.Context, root negotiation.State) (*RecommendationSet, error) {
	logger := common.LoggerFromContext(ctx)

	runs := make([]*strategyRun, len(Strategies))
	for i, strategy := range Strategies {
		state := root.WithModifiers(strategy.Modifiers(root.Preferences.RiskTolerance, g.tuning))
		engine, err := search.NewEngine(state, g.tuning, search.WithClock(g.clock))
		if err != nil {
			return nil, err
		}
		runs[i] = &strategyRun{strategy: strategy, state: state, engine: engine}
	}

	if err := g.search(ctx, runs); err != nil {
		return nil, err
	}

	flex := root.FlexibleBudget(g.tuning.BudgetFlexibility)
	listing := root.ListingPrice()
	menu := g.counterMenu(root, flex)
	bids := make([]float64, len(runs))
	values := make([]float64, len(runs))
	fallback := make([]bool, len(runs))
	for i, run := range runs {
		bid, ok := run.outcome.Bid.Get()
		if !ok {
			bid = g.fallbackBid(run.state, run.strategy, flex)
			if menu != nil {
				bid = nearest(menu, bid)
			}
			values[i] = run.engine.Evaluator().Evaluate(run.state.SubmitBid(bid))
			fallback[i] = true
			logger.Warn().
				Str("strategy", run.strategy.String()).
				Float64("bid", bid).
				Msg("search found no bid, using fallback")
		} else {
			values[i] = run.outcome.Value
		}
		bids[i] = bid

		if run.stats.GapFills > 0 {
			logger.Warn().
				Str("strategy", run.strategy.String()).
				Int("gaps", run.stats.GapFills).
				Msg("landlord threshold gaps closed by fallback action")
		}
		if run.stats.BudgetExhausted {
			logger.Warn().
				Str("strategy", run.strategy.String()).
				Int("nodes", run.stats.Nodes).
				Msg("search budget exhausted, deeper nodes scored heuristically")
		}
	}

	original := append([]float64(nil), bids...)
	if menu != nil {
		order(bids)
	} else {
		g.differentiate(bids, flex, func(i int, bid float64) float64 {
			return WinProbability(runs[i].engine.Evaluator(), runs[i].state, bid)
		})
	}

	fair := payoff.FairValue(root)
	set := &RecommendationSet{
		Round:              root.Round,
		Regime:             root.Regime(),
		ListingPrice:       listing,
		FairValue:          fair,
		FlexibleBudget:     flex,
		BudgetBelowListing: root.Preferences.MaxBudget < listing,
		Recommendations:    make(map[Strategy]*Recommendation, len(runs)),
	}
	for i, run := range runs {
		value, adjusted := g.settle(run, bids[i], original[i], values[i])
		rec := g.record(run, bids[i], value, fair)
		rec.Fallback = fallback[i]
		rec.Adjusted = adjusted
		set.Recommendations[run.strategy] = rec

		metrics.RecordSearch(metrics.SearchObservation{
			Strategy:        run.strategy.String(),
			Fallback:        rec.Fallback,
			Nodes:           run.stats.Nodes,
			GapFills:        run.stats.GapFills,
			BudgetExhausted: run.stats.BudgetExhausted,
			Duration:        run.stats.Elapsed,
			BidRatio:        rec.RecommendedBid / listing,
		})
		logger.Info().
			Str("strategy", run.strategy.String()).
			Float64("bid", rec.RecommendedBid).
			Float64("win_probability", rec.WinProbability).
			Float64("value", rec.SearchValue).
			Bool("adjusted", rec.Adjusted).
			Int("nodes", run.stats.Nodes).
			Dur("elapsed", run.stats.Elapsed).
			Msg("strategy searched")
	}
	return set, nil
}

func (g *Generator) search(ctx context.Context, runs []*strategyRun) error {
	if !g.options.Parallel {
		for _, run := range runs {
			if err := g.searchOne(ctx, run); err != nil {
				return err
			}
		}
		return nil
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for _, run := range runs {
		run := run
		eg.Go(func() error {
			return g.searchOne(egCtx, run)
		})
	}
	return eg.Wait()
}

func (g *Generator) searchOne(ctx context.Context, run *strategyRun) error {
	out, err := run.engine.Run(ctx, run.state)
	if err != nil {
		return fmt.Errorf("%s search: %w", run.strategy, err)
	}
	run.outcome = out
	run.stats = run.engine.Stats()
	return nil
}

// fallbackBid is the fixed fraction of the listing price for the strategy,
// never below a bid already on the table and never above the flexible budget.
func (g *Generator) fallbackBid(s negotiation.State, strategy Strategy, flex float64) float64 {
	bid := s.ListingPrice() * strategy.FallbackRatio(s.Regime())
	if prev, ok := s.PreviousBid.Get(); ok {
		bid = math.Max(bid, prev)
	}
	return math.Min(bid, flex)
}

// settle returns the value to report for bid. A bid moved away from the one
// the search chose is scored on its own.
func (g *Generator) settle(run *strategyRun, bid, searched, value float64) (float64, bool) {
	if math.Abs(bid-searched) <= 1e-9 {
		return value, false
	}
	return run.engine.Evaluator().Evaluate(run.state.SubmitBid(bid)), true
}

// counterMenu returns the only bids open to the tenant after a counter offer,
// the counter price and the original bid, restricted to the flexible budget.
// It returns nil in every other round.
func (g *Generator) counterMenu(root negotiation.State, flex float64) []float64 {
	if root.Round != negotiation.RoundFinal {
		return nil
	}
	if fb, ok := root.Feedback.Get(); !ok || fb != negotiation.FeedbackCounterOffer {
		return nil
	}
	candidates := search.Candidates(root, g.tuning)
	var menu []float64
	for _, bid := range candidates {
		if bid <= flex {
			menu = append(menu, bid)
		}
	}
	if len(menu) == 0 {
		return candidates
	}
	return menu
}

// nearest returns the menu entry closest to bid, the lower one on ties.
func nearest(menu []float64, bid float64) float64 {
	best := menu[0]
	for _, m := range menu[1:] {
		d, bd := math.Abs(m-bid), math.Abs(best-bid)
		if d < bd || (d == bd && m < best) {
			best = m
		}
	}
	return best
}

// order raises any bid below its predecessor to match it. Bids drawn from a
// counter-offer menu stay on the menu, so neighbouring strategies may share a
// bid there.
func order(bids []float64) {
	for i := 1; i < len(bids); i++ {
		if bids[i] < bids[i-1] {
			bids[i] = bids[i-1]
		}
	}
}

// differentiate keeps bids ordered from conservative to aggressive and at least
// Tolerance apart. A bid too close to its predecessor is raised by Increment up
// to the flexible budget, and keeps rising while it does not beat its
// predecessor's win probability. When the budget cap squeezes the top bids
// together, lower bids are pushed down instead.
func (g *Generator) differentiate(bids []float64, flex float64, win func(i int, bid float64) float64) {
	tol, inc := g.options.Tolerance, g.options.Increment

	for i := 1; i < len(bids); i++ {
		if bids[i] < bids[i-1]+tol {
			bids[i] = math.Min(bids[i-1]+inc, flex)
		}
		for win(i, bids[i]) <= win(i-1, bids[i-1]) && bids[i]+inc <= flex {
			bids[i] += inc
		}
	}

	for i := len(bids) - 1; i > 0; i-- {
		if bids[i]-bids[i-1] < tol {
			bids[i-1] = math.Max(0, bids[i]-inc)
		}
	}
}

func (g *Generator) record(run *strategyRun, bid, value, fair float64) *Recommendation {
	s := run.state
	profile := landlord.ProfileFor(s)
	prediction := landlord.Predict(bid, s.ListingPrice(), profile)
	win := WinProbability(run.engine.Evaluator(), s, bid)

	return &Recommendation{
		Strategy:            run.strategy,
		RecommendedBid:      bid,
		WinProbability:      win,
		ExpectedOverpayment: bid - fair,
		PredictedLandlordResponse: LandlordResponse{
			Type:        prediction.Kind,
			Probability: prediction.Probability,
			Message:     prediction.Message,
		},
		RequiresFurtherNegotiation: prediction.Kind != landlord.AcceptTenant{}.Kind(),
		Rationale:                  Rationale(run.strategy, s.Regime(), bid/s.ListingPrice(), win, prediction.Kind),
		SearchValue:                value,
		Stats:                      run.stats,
	}
}

// WinProbability is the chance that bid beats every competitor and the
// landlord accepts it. It never decreases as the bid grows.
func WinProbability(eval *payoff.Evaluator, s negotiation.State, bid float64) float64 {
	beats := eval.Competitors().ProbabilityAtMost(bid)
	accepts := landlord.AcceptanceProbability(bid, s.ListingPrice(), landlord.ProfileFor(s))
	return math.Min(1, beats*accepts)
}
