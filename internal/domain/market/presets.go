package market

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dako7777777/rental-bidding-tool/internal/domain/shared"
)

// Preset is a named, pre-computed set of market parameters.
type Preset struct {
	Name        string
	DisplayName string
	Description string
	Parameters  Parameters
}

var presets = map[string]Preset{
	"downtown": {
		Name:        "downtown",
		DisplayName: "Downtown Vancouver",
		Description: "Cooling core market, bids cluster just under asking",
		Parameters: Parameters{
			DistributionType: DistributionLogNormal,
			Median:           0.98,
			Sigma:            0.05,
			Skew:             0.10,
		},
	},
	"burnaby": {
		Name:        "burnaby",
		DisplayName: "Burnaby",
		Description: "Very cool suburban market with steady discounts",
		Parameters: Parameters{
			DistributionType: DistributionLogNormal,
			Median:           0.92,
			Sigma:            0.06,
			Skew:             0.05,
		},
	},
}

// LookupPreset returns the preset registered under name (case-insensitive).
func LookupPreset(name string) (Preset, error) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %w: %q (known: %s)", shared.ErrInvalidConfiguration, ErrUnknownMarket, name, strings.Join(PresetNames(), ", "))
	}
	return p, nil
}

// PresetNames lists registered preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
