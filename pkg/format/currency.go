// Package format renders amounts and rates for display.
package format

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySymbol prefixes every formatted amount.
const CurrencySymbol = "₩"

// ratePlaces is the number of percent decimals Rate keeps.
const ratePlaces = 3

var printer = message.NewPrinter(language.English)

// Currency returns a whole-unit currency string with a won sign and thousands
// separators (e.g., "-₩1,234,567").
func Currency(amount float64) string {
	formatted := NumericCurrency(math.Abs(amount))
	if amount < 0 && formatted != "0" {
		return "-" + CurrencySymbol + formatted
	}
	return CurrencySymbol + formatted
}

// NumericCurrency returns a whole-unit amount with separators but no symbol
// (e.g., "-1,234,567").
func NumericCurrency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "0"
	}
	rounded := math.Round(amount)
	if rounded == 0 {
		return "0"
	}
	return printer.Sprintf("%.0f", rounded)
}

// Rate returns a fraction as a percentage with three decimals (e.g., 0.035
// becomes "3.500%").
func Rate(rate float64) string {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		rate = 0
	}
	return decimal.NewFromFloat(rate).Shift(2).StringFixed(ratePlaces) + "%"
}
