// Package money holds the whole-peso rounding rules used for VAT and
// income tax. Amounts are VAT-inclusive unless stated otherwise.
// Non-finite amounts are treated as zero.
package money

import (
	"math"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Round rounds to the nearest whole peso, halves away from zero.
func Round(x float64) float64 {
	if !finite(x) {
		return 0
	}
	return decimal.NewFromFloat(x).Round(0).InexactFloat64()
}

// NetOfVAT strips VAT from a gross amount: round(gross / (1 + rate)).
// Negative amounts are treated as zero.
func NetOfVAT(gross, rate float64) float64 {
	if !finite(gross) || !finite(rate) || gross <= 0 {
		return 0
	}
	divisor := one.Add(decimal.NewFromFloat(rate))
	if divisor.IsZero() {
		return 0
	}
	return decimal.NewFromFloat(gross).Div(divisor).Round(0).InexactFloat64()
}

// VATPortion is the VAT contained in a gross amount: gross - NetOfVAT(gross).
func VATPortion(gross, rate float64) float64 {
	if !finite(gross) || !finite(rate) || gross <= 0 {
		return 0
	}
	return decimal.NewFromFloat(gross).
		Sub(decimal.NewFromFloat(NetOfVAT(gross, rate))).
		InexactFloat64()
}

// Percent returns round(amount * rate).
func Percent(amount, rate float64) float64 {
	if !finite(amount) || !finite(rate) {
		return 0
	}
	return decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(rate)).
		Round(0).
		InexactFloat64()
}

// Ratio returns part/whole*100, or 0 when whole is zero.
func Ratio(part, whole float64) float64 {
	if whole == 0 || !finite(part) || !finite(whole) {
		return 0
	}
	return part / whole * 100
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
