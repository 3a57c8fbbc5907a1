package format

import (
	"math"
	"testing"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{name: "Zero", amount: 0, expected: "₩0"},
		{name: "Small", amount: 999, expected: "₩999"},
		{name: "Grouped", amount: 1234567, expected: "₩1,234,567"},
		{name: "Rounded", amount: 449044.6, expected: "₩449,045"},
		{name: "Negative", amount: -2000000, expected: "-₩2,000,000"},
		{name: "Negative rounding to zero", amount: -0.4, expected: "₩0"},
		{name: "Not a number", amount: math.NaN(), expected: "₩0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.amount); got != tt.expected {
				t.Errorf("Currency(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestNumericCurrency(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{amount: 445389970, expected: "445,389,970"},
		{amount: -1500, expected: "-1,500"},
		{amount: 10, expected: "10"},
	}

	for _, tt := range tests {
		if got := NumericCurrency(tt.amount); got != tt.expected {
			t.Errorf("NumericCurrency(%v) = %q, expected %q", tt.amount, got, tt.expected)
		}
	}
}

func TestRate(t *testing.T) {
	tests := []struct {
		rate     float64
		expected string
	}{
		{rate: 0.035, expected: "3.500%"},
		{rate: 0.016667, expected: "1.667%"},
		{rate: 0.12, expected: "12.000%"},
		{rate: 0, expected: "0.000%"},
		{rate: 0.0016667, expected: "0.167%"},
	}

	for _, tt := range tests {
		if got := Rate(tt.rate); got != tt.expected {
			t.Errorf("Rate(%v) = %q, expected %q", tt.rate, got, tt.expected)
		}
	}
}
