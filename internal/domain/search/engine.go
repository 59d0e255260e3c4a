package search

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/dako7777777/rental-bidding-tool/internal/domain/distribution"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/landlord"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/negotiation"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/payoff"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/shared"
)

// PlayerType tags which of the three players moves at a node. Turn order is
// irregular (tenant, chance, landlord, maybe tenant again) so it is carried
// explicitly rather than derived from depth.
type PlayerType int

const (
	PlayerTenantMax PlayerType = iota
	PlayerCompetitorChance
	PlayerLandlordMin
)

func (p PlayerType) String() string {
	switch p {
	case PlayerTenantMax:
		return "tenant_max"
	case PlayerCompetitorChance:
		return "competitor_chance"
	case PlayerLandlordMin:
		return "landlord_min"
	default:
		return "unknown"
	}
}

// ctxCheckInterval is how many nodes are expanded between context checks.
const ctxCheckInterval = 256

// Outcome is the value of a subtree and, for tenant nodes, the bid that achieves it.
type Outcome struct {
	Value float64
	Bid   shared.Optional[float64]
}

// Stats summarize one engine's work.
type Stats struct {
	Nodes            int
	Leaves           int
	AlphaBetaCutoffs int
	ChanceCutoffs    int
	GapFills         int
	BudgetExhausted  bool
	Elapsed          time.Duration
}

// Engine runs three-player expectiminimax over negotiation states. An engine
// serves one search tree at a time and is not safe for concurrent use.
type Engine struct {
	tuning   Tuning
	eval     *payoff.Evaluator
	clock    shared.Clock
	started  time.Time
	deadline time.Time
	stats    Stats
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the clock used for the timeout.
func WithClock(c shared.Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// NewEngine prepares an engine for searches rooted at states sharing root's
// market, listing and competitive level. The competitor distribution is built
// here once; invalid market configuration fails before any search.
func NewEngine(root negotiation.State, tuning Tuning, opts ...Option) (*Engine, error) {
	if err := tuning.Validate(); err != nil {
		return nil, err
	}
	competitors, err := distribution.ForMarket(root.Market, root.ListingPrice(),
		root.Situation.CompetitiveLevel, tuning.CompetitorSamples)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		tuning: tuning,
		eval:   payoff.NewEvaluator(competitors),
		clock:  shared.NewRealClock(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Evaluator exposes the evaluator the engine scores leaves with.
func (e *Engine) Evaluator() *payoff.Evaluator {
	return e.eval
}

// Tuning returns the engine's constants.
func (e *Engine) Tuning() Tuning {
	return e.tuning
}

// Stats returns counters accumulated since the last Run.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Run resets the counters and searches from a tenant decision with an open
// window, at the tuned depth.
func (e *Engine) Run(ctx context.Context, s negotiation.State) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	e.stats = Stats{}
	e.started = e.clock.Now()
	e.deadline = time.Time{}
	if e.tuning.Timeout > 0 {
		e.deadline = e.started.Add(e.tuning.Timeout)
	}

	out, err := e.Search(ctx, s, e.tuning.Depth, math.Inf(-1), math.Inf(1), PlayerTenantMax)
	e.stats.Elapsed = e.clock.Now().Sub(e.started)
	return out, err
}

// Search returns the expectiminimax value of s with alpha-beta bounds.
//
// Terminal states are scored directly. Depth only stops tenant nodes; chance
// and landlord layers always play out so a round is never cut off mid-way.
// Once the node or time budget is spent, remaining nodes are scored by the
// evaluator's heuristic. Context cancellation aborts with ctx.Err().
func (e *Engine) Search(ctx context.Context, s negotiation.State, depth int, alpha, beta float64, player PlayerType) (Outcome, error) {
	e.stats.Nodes++
	if e.stats.Nodes%ctxCheckInterval == 0 {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}
	}

	if s.IsTerminal() {
		return e.leaf(s), nil
	}
	if player == PlayerTenantMax && depth <= 0 {
		return e.leaf(s), nil
	}
	if e.exhausted() {
		return e.leaf(s), nil
	}

	switch player {
	case PlayerTenantMax:
		return e.tenantMax(ctx, s, depth, alpha, beta)
	case PlayerCompetitorChance:
		return e.competitorChance(ctx, s, depth, alpha, beta)
	case PlayerLandlordMin:
		return e.landlordMin(ctx, s, depth, alpha, beta)
	default:
		return Outcome{}, errors.New("search: unknown player type")
	}
}

func (e *Engine) leaf(s negotiation.State) Outcome {
	e.stats.Leaves++
	return Outcome{Value: e.eval.Evaluate(s)}
}

func (e *Engine) exhausted() bool {
	if e.stats.BudgetExhausted {
		return true
	}
	if e.tuning.MaxNodes > 0 && e.stats.Nodes > e.tuning.MaxNodes {
		e.stats.BudgetExhausted = true
	} else if !e.deadline.IsZero() && !e.clock.Now().Before(e.deadline) {
		e.stats.BudgetExhausted = true
	}
	return e.stats.BudgetExhausted
}

func (e *Engine) tenantMax(ctx context.Context, s negotiation.State, depth int, alpha, beta float64) (Outcome, error) {
	flexible := s.FlexibleBudget(e.tuning.BudgetFlexibility)

	bids := Candidates(s, e.tuning)
	affordable := bids[:0:0]
	for _, bid := range bids {
		if bid <= flexible {
			affordable = append(affordable, bid)
		}
	}
	if len(affordable) == 0 {
		return e.leaf(s), nil
	}
	affordable = OrderBids(affordable, s, e.eval)

	next := PlayerCompetitorChance
	if s.Round == negotiation.RoundFinal {
		next = PlayerLandlordMin
	}

	best := Outcome{Value: math.Inf(-1)}
	for _, bid := range affordable {
		child := s.SubmitBid(bid)
		out, err := e.Search(ctx, child, depth-1, alpha, beta, next)
		if err != nil {
			return Outcome{}, err
		}
		if out.Value > best.Value {
			best = Outcome{Value: out.Value, Bid: shared.Some(bid)}
		}
		alpha = math.Max(alpha, out.Value)
		if beta <= alpha {
			e.stats.AlphaBetaCutoffs++
			break
		}
	}
	return best, nil
}

// competitorChance takes the expectation over the highest competing bid,
// most likely outcomes first. Each outcome is searched with a full window so
// the expectation only ever sums exact values. Because every payoff lies in
// [-1, 1], the unexplored mass bounds the final expectation: once that bound
// can no longer reach alpha, or can no longer fall under beta, the loop stops
// and returns the bound itself.
func (e *Engine) competitorChance(ctx context.Context, s negotiation.State, depth int, alpha, beta float64) (Outcome, error) {
	expected, cumulative := 0.0, 0.0
	for _, point := range e.eval.Competitors().ByDescendingProbability() {
		if point.Probability < e.tuning.ProbabilityThreshold {
			continue
		}
		child := s.WithCompetitorBid(point.Bid)
		out, err := e.Search(ctx, child, depth-1, math.Inf(-1), math.Inf(1), PlayerLandlordMin)
		if err != nil {
			return Outcome{}, err
		}

		expected += point.Probability * out.Value
		cumulative += point.Probability
		remaining := math.Max(0, 1-cumulative)

		if optimistic := expected + remaining*payoff.MaxPayoff; optimistic < alpha {
			e.stats.ChanceCutoffs++
			return Outcome{Value: optimistic}, nil
		}
		if pessimistic := expected + remaining*payoff.MinPayoff; pessimistic > beta {
			e.stats.ChanceCutoffs++
			return Outcome{Value: pessimistic}, nil
		}
	}
	return Outcome{Value: expected}, nil
}

func (e *Engine) landlordMin(ctx context.Context, s negotiation.State, depth int, alpha, beta float64) (Outcome, error) {
	actions, err := landlord.EnumerateStrict(s)
	if errors.Is(err, landlord.ErrThresholdGap) {
		e.stats.GapFills++
		actions = []landlord.Action{landlord.GapFallback(s)}
	}
	if len(actions) == 0 {
		return e.leaf(s), nil
	}
	actions = OrderLandlordActions(actions, s)

	best := Outcome{Value: math.Inf(1)}
	for _, action := range actions {
		child := landlord.Apply(s, action)

		var value float64
		if landlord.IsTerminal(action) {
			value = e.leaf(child).Value
		} else {
			out, err := e.Search(ctx, child, depth-1, alpha, beta, PlayerTenantMax)
			if err != nil {
				return Outcome{}, err
			}
			value = out.Value
		}

		if value < best.Value {
			best.Value = value
		}
		beta = math.Min(beta, value)
		if beta <= alpha {
			e.stats.AlphaBetaCutoffs++
			break
		}
	}
	return best, nil
}

// OrderBids sorts candidate bids most promising first: estimated chance of
// beating the field times the landlord's likely acceptance, less half the
// overpayment ratio.
func OrderBids(bids []float64, s negotiation.State, eval *payoff.Evaluator) []float64 {
	type scored struct {
		bid   float64
		score float64
	}
	profile := landlord.ProfileFor(s)
	fair := payoff.FairValue(s)
	listing := s.ListingPrice()

	items := make([]scored, len(bids))
	for i, bid := range bids {
		win := eval.Competitors().ProbabilityBelow(bid)
		var accept float64
		switch ratio := bid / listing; {
		case ratio >= profile.AcceptanceThreshold:
			accept = 0.9
		case ratio >= profile.AcceptanceThreshold-0.05:
			accept = 0.6
		default:
			accept = 0.3
		}
		penalty := math.Max(0, (bid-fair)/listing)
		items[i] = scored{bid: bid, score: win*accept - 0.5*penalty}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score > items[j].score
	})

	ordered := make([]float64, len(items))
	for i, it := range items {
		ordered[i] = it.bid
	}
	return ordered
}

// OrderLandlordActions sorts actions by the tenant surplus they leave,
// landlord-favourable first.
func OrderLandlordActions(actions []landlord.Action, s negotiation.State) []landlord.Action {
	ordered := append([]landlord.Action(nil), actions...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return TenantSurplus(ordered[i], s) < TenantSurplus(ordered[j], s)
	})
	return ordered
}

// TenantSurplus is a rough estimate of what an action leaves the tenant, used
// only for move ordering.
func TenantSurplus(a landlord.Action, s negotiation.State) float64 {
	listing := s.ListingPrice()
	switch a.(type) {
	case landlord.AcceptTenant:
		fair := payoff.FairValue(s)
		return fair - s.TenantBid.OrElse(fair)
	case landlord.AcceptCompetitor:
		return -0.5 * float64(s.Preferences.PropertyValue)
	case landlord.RejectAll:
		return -0.2
	case landlord.RequestBestFinal:
		return -0.03 * listing
	case landlord.CounterOffer:
		return listing - s.TenantBid.OrElse(0.95*listing)
	default:
		return 0
	}
}
