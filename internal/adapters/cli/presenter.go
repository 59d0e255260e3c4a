package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dako7777777/rental-bidding-tool/internal/application/recommendation"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/market"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/negotiation"
)

// presenter renders command results as text tables or JSON
type presenter struct {
	out  io.Writer
	json bool
}

func newPresenter(out io.Writer, asJSON bool) *presenter {
	return &presenter{out: out, json: asJSON}
}

func (p *presenter) writeJSON(v interface{}) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// recommendations prints one recommendation set
func (p *presenter) recommendations(s negotiation.Scenario, set *recommendation.RecommendationSet) error {
	if p.json {
		return p.writeJSON(set)
	}

	round := "opening round"
	if set.Round == negotiation.RoundFinal {
		round = "final round"
	}
	fmt.Fprintf(p.out, "Run %s (%s, %s market)\n", set.RunID, round, set.Regime.Label())
	fmt.Fprintf(p.out, "Listing %s   Fair value %s   Flexible budget %s\n",
		formatMoney(set.ListingPrice), formatMoney(set.FairValue), formatMoney(set.FlexibleBudget))
	if set.BudgetBelowListing {
		fmt.Fprintf(p.out, "Note: your budget %s is below the listing price; bids may stretch to %s.\n",
			formatMoney(s.Preferences.MaxBudget), formatMoney(set.FlexibleBudget))
	}
	fmt.Fprintln(p.out)

	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STRATEGY\tBID\tWIN\tVS FAIR VALUE\tLANDLORD\tCONFIDENCE")
	fmt.Fprintln(w, "--------\t---\t---\t-------------\t--------\t----------")
	for _, rec := range set.Ordered() {
		bid := formatMoney(rec.RecommendedBid)
		if rec.Adjusted {
			bid += "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.Strategy.Title(),
			bid,
			formatPercent(rec.WinProbability),
			formatSignedMoney(rec.ExpectedOverpayment),
			rec.PredictedLandlordResponse.Message,
			rec.Confidence(),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(p.out)
	for _, rec := range set.Ordered() {
		fmt.Fprintf(p.out, "%s: %s\n", rec.Strategy.Title(), rec.Rationale)
		if rec.RequiresFurtherNegotiation {
			fmt.Fprintf(p.out, "  Expect another round: %s.\n", rec.PredictedLandlordResponse.Message)
		}
		if rec.Fallback {
			fmt.Fprintln(p.out, "  Search found no clear winner; this is a rule-of-thumb bid.")
		}
	}
	for _, rec := range set.Ordered() {
		if rec.Adjusted {
			fmt.Fprintln(p.out, "\n* moved to keep the strategies apart")
			break
		}
	}
	return nil
}

// marketView is the JSON shape of a preset
type marketView struct {
	Name        string            `json:"name"`
	DisplayName string            `json:"display_name"`
	Regime      market.Regime     `json:"regime"`
	Description string            `json:"description"`
	Parameters  market.Parameters `json:"parameters"`
}

// markets prints the preset table
func (p *presenter) markets(presets []market.Preset) error {
	if p.json {
		views := make([]marketView, 0, len(presets))
		for _, preset := range presets {
			views = append(views, marketView{
				Name:        preset.Name,
				DisplayName: preset.DisplayName,
				Regime:      preset.Parameters.Regime(),
				Description: preset.Description,
				Parameters:  preset.Parameters,
			})
		}
		return p.writeJSON(views)
	}

	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMARKET\tREGIME\tMEDIAN\tSIGMA\tSKEW\tDESCRIPTION")
	fmt.Fprintln(w, "----\t------\t------\t------\t-----\t----\t-----------")
	for _, preset := range presets {
		params := preset.Parameters
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.2f\t%.2f\t%s\n",
			preset.Name,
			preset.DisplayName,
			params.Regime().Label(),
			params.Median,
			params.Sigma,
			params.Skew,
			preset.Description,
		)
	}
	return w.Flush()
}
