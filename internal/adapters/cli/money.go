package cli

import (
	"strings"

	"github.com/shopspring/decimal"
)

// formatMoney renders an amount as dollars and cents with thousands separators,
// e.g. 2156.5 -> "$2,156.50" and -12 -> "-$12.00"
func formatMoney(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	whole, cents, _ := strings.Cut(d.StringFixed(2), ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + "." + cents
}

// formatSignedMoney is formatMoney with an explicit plus sign for positive amounts
func formatSignedMoney(amount float64) string {
	if decimal.NewFromFloat(amount).Round(2).IsPositive() {
		return "+" + formatMoney(amount)
	}
	return formatMoney(amount)
}

// formatPercent renders a probability as a whole percentage
func formatPercent(p float64) string {
	return decimal.NewFromFloat(p).Mul(decimal.NewFromInt(100)).Round(0).String() + "%"
}
