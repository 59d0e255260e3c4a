package market_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dako7777777/rental-bidding-tool/internal/domain/market"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		median float64
		sigma  float64
		want   market.Regime
	}{
		{"very cool needs low median and tight spread", 0.92, 0.06, market.RegimeVeryCool},
		{"low median with wide spread is cooling", 0.92, 0.09, market.RegimeCooling},
		{"just under asking is cooling", 0.98, 0.05, market.RegimeCooling},
		{"at asking is balanced", 1.00, 0.05, market.RegimeBalanced},
		{"high median with narrow spread is balanced", 1.08, 0.08, market.RegimeBalanced},
		{"high median with wide spread is very hot", 1.08, 0.12, market.RegimeVeryHot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := market.Parameters{DistributionType: market.DistributionLogNormal, Median: tt.median, Sigma: tt.sigma}
			assert.Equal(t, tt.want, market.Classify(p))
		})
	}
}

func TestParametersValidate(t *testing.T) {
	valid := market.Parameters{DistributionType: market.DistributionLogNormal, Median: 0.98, Sigma: 0.05, Skew: 0.1}
	require.NoError(t, valid.Validate())

	cases := map[string]market.Parameters{
		"median too low":  {DistributionType: market.DistributionLogNormal, Median: 0.4, Sigma: 0.05},
		"median too high": {DistributionType: market.DistributionLogNormal, Median: 1.6, Sigma: 0.05},
		"sigma too small": {DistributionType: market.DistributionLogNormal, Median: 1.0, Sigma: 0.001},
		"sigma too large": {DistributionType: market.DistributionLogNormal, Median: 1.0, Sigma: 0.6},
		"skew too large":  {DistributionType: market.DistributionLogNormal, Median: 1.0, Sigma: 0.05, Skew: 1.5},
		"unknown family":  {DistributionType: "gamma", Median: 1.0, Sigma: 0.05},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, p.Validate(), market.ErrInvalidParameters)
		})
	}
}

func TestLookupPreset(t *testing.T) {
	downtown, err := market.LookupPreset("Downtown")
	require.NoError(t, err)
	assert.Equal(t, market.RegimeCooling, downtown.Parameters.Regime())

	burnaby, err := market.LookupPreset("burnaby")
	require.NoError(t, err)
	assert.Equal(t, market.RegimeVeryCool, burnaby.Parameters.Regime())

	_, err = market.LookupPreset("richmond")
	assert.ErrorIs(t, err, market.ErrUnknownMarket)

	assert.Equal(t, []string{"burnaby", "downtown"}, market.PresetNames())
}
