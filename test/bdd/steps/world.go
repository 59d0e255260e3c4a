package steps

import (
	"github.com/dako7777777/rental-bidding-tool/internal/domain/negotiation"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/search"
)

// world holds what several step contexts need to see within one scenario:
// the rental scenario under test and the tuning it is searched with
type world struct {
	scenario negotiation.Scenario
	tuning   search.Tuning
}

var sharedWorld = &world{}

func (w *world) reset() {
	w.scenario = negotiation.Scenario{}
	w.tuning = search.DefaultTuning()
}

// rootState is the opening-round state of the current scenario with unbiased modifiers
func (w *world) rootState() negotiation.State {
	prefs := w.scenario.Preferences
	return negotiation.NewState(w.scenario,
		negotiation.DefaultModifiers(prefs.RiskTolerance, w.tuning.PropertyValueWeight, w.tuning.OverpaymentWeight))
}
