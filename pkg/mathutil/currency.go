// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/home-finance/pkg/constants"
	"github.com/shopspring/decimal"
)

// RoundCurrency rounds a value half away from zero to a whole currency unit.
func RoundCurrency(val float64) float64 {
	if !isFinite(val) {
		return 0
	}
	return decimal.NewFromFloat(val).Round(0).InexactFloat64()
}

// FloorToUnit truncates a non-negative value down to a multiple of unit.
func FloorToUnit(val, unit float64) float64 {
	if !isFinite(val) || val <= 0 {
		return 0
	}
	if unit <= 0 {
		unit = constants.CurrencyUnit
	}
	u := decimal.NewFromFloat(unit)
	return decimal.NewFromFloat(val).Div(u).Floor().Mul(u).InexactFloat64()
}

// MulFloor multiplies an amount by a rate and truncates the product to a
// multiple of unit without the binary drift of float multiplication.
func MulFloor(amount, rate, unit float64) float64 {
	if !isFinite(amount) || !isFinite(rate) || amount <= 0 || rate <= 0 {
		return 0
	}
	if unit <= 0 {
		unit = constants.CurrencyUnit
	}
	u := decimal.NewFromFloat(unit)
	product := decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(rate))
	return product.Div(u).Floor().Mul(u).InexactFloat64()
}

// RoundRate rounds a rate fraction to the given number of decimal places.
func RoundRate(rate float64, places int32) float64 {
	if !isFinite(rate) {
		return 0
	}
	return decimal.NewFromFloat(rate).Round(places).InexactFloat64()
}

// NonNegative clamps negative and non-finite values to zero.
func NonNegative(val float64) float64 {
	if !isFinite(val) || val < 0 {
		return 0
	}
	return val
}

// IsZero checks if a value is effectively zero (within one currency unit)
func IsZero(val float64) bool {
	return math.Abs(val) < constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func isFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}
