package steps

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/cucumber/godog"

	"github.com/dako7777777/rental-bidding-tool/internal/domain/distribution"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/market"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/payoff"
	"github.com/dako7777777/rental-bidding-tool/internal/domain/shared"
)

type marketContext struct {
	params market.Parameters
	dist   distribution.Distribution
	err    error
}

func (mc *marketContext) reset() {
	mc.params = market.Parameters{}
	mc.dist = distribution.Distribution{}
	mc.err = nil
}

// Given steps

func (mc *marketContext) aMarketWithMedianSigmaAndSkew(median, sigma, skew float64) error {
	mc.params = market.Parameters{
		DistributionType: market.DistributionLogNormal,
		Median:           median,
		Sigma:            sigma,
		Skew:             skew,
	}
	return nil
}

// When steps

func (mc *marketContext) iBuildTheCompetitorDistribution(listing float64, level int) error {
	mc.dist, mc.err = distribution.ForMarket(mc.params, listing, level, distribution.DefaultSamples)
	return nil
}

// Then steps

func (mc *marketContext) theMarketRegimeShouldBe(expected string) error {
	if got := market.Classify(mc.params).String(); got != expected {
		return fmt.Errorf("expected regime %s, got %s", expected, got)
	}
	return nil
}

func (mc *marketContext) theCompetitorProbabilitiesShouldSumToOne() error {
	if mc.err != nil {
		return fmt.Errorf("expected a distribution, got error: %w", mc.err)
	}
	if total := mc.dist.Total(); math.Abs(total-1) > 1e-9 {
		return fmt.Errorf("expected probabilities to sum to 1, got %.12f", total)
	}
	return nil
}

func (mc *marketContext) everySampledBidShouldLieBetween(lo, hi float64) error {
	for _, point := range mc.dist.Points {
		if point.Bid < lo-1e-6 || point.Bid > hi+1e-6 {
			return fmt.Errorf("bid %.2f outside [%.0f, %.0f]", point.Bid, lo, hi)
		}
	}
	return nil
}

func (mc *marketContext) buildingShouldFailWithAConfigurationError() error {
	if mc.err == nil {
		return fmt.Errorf("expected a configuration error, but building succeeded")
	}
	if !errors.Is(mc.err, shared.ErrInvalidConfiguration) {
		return fmt.Errorf("expected a configuration error, got: %v", mc.err)
	}
	return nil
}

func (mc *marketContext) theFairValueShouldNotIncrease(listing float64, d1, d2, d3, d4 int) error {
	prev := math.Inf(1)
	for _, days := range []int{d1, d2, d3, d4} {
		value := payoff.FairMarketValue(listing, listing, days, mc.params)
		if value > prev {
			return fmt.Errorf("fair value rose to %.2f at %d days (was %.2f)", value, days, prev)
		}
		prev = value
	}
	return nil
}

func InitializeMarketScenario(ctx *godog.ScenarioContext) {
	mc := &marketContext{}

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		mc.reset()
		return c, nil
	})

	ctx.Step(`^a market with median (-?\d+(?:\.\d+)?), sigma (-?\d+(?:\.\d+)?) and skew (-?\d+(?:\.\d+)?)$`, mc.aMarketWithMedianSigmaAndSkew)
	ctx.Step(`^I build the competitor distribution for a \$(\d+) listing at competitive level (\d+)$`, mc.iBuildTheCompetitorDistribution)
	ctx.Step(`^the market regime should be "([^"]*)"$`, mc.theMarketRegimeShouldBe)
	ctx.Step(`^the competitor probabilities should sum to 1$`, mc.theCompetitorProbabilitiesShouldSumToOne)
	ctx.Step(`^every sampled bid should lie between \$(\d+) and \$(\d+)$`, mc.everySampledBidShouldLieBetween)
	ctx.Step(`^building should fail with a configuration error$`, mc.buildingShouldFailWithAConfigurationError)
	ctx.Step(`^the fair value of a \$(\d+) listing should not increase from (\d+) to (\d+) to (\d+) to (\d+) days on market$`, mc.theFairValueShouldNotIncrease)
}
