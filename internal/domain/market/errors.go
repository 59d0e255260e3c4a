package market

import "errors"

// Domain errors for market configuration

var (
	// ErrUnknownMarket is returned when a preset name is not registered
	ErrUnknownMarket = errors.New("unknown market")

	// ErrInvalidParameters is returned when median, sigma, skew or distribution type is out of range
	ErrInvalidParameters = errors.New("invalid market parameters")
)
