// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/home-finance/pkg/constants"
)

// maxTermMonths is the longest term that is not flagged as suspicious.
const maxTermMonths = 50 * constants.MonthsPerYear

// ValidateRate warns when a rate looks like a percentage rather than a
// fraction.
func ValidateRate(name, field string, rate float64) string {
	if rate > 1 {
		return fmt.Sprintf("%s: %s %.4g looks like a percentage; rates are fractions (0.035 for 3.5%%)", name, field, rate)
	}
	return ""
}

// ValidateTerm warns when a loan term is empty or implausibly long.
func ValidateTerm(name string, termMonths int) string {
	switch {
	case termMonths == 0:
		return fmt.Sprintf("%s: term is zero; the schedule will be empty", name)
	case termMonths > maxTermMonths:
		return fmt.Sprintf("%s: term of %d months exceeds %d months", name, termMonths, maxTermMonths)
	}
	return ""
}

// ValidateCap warns when a regulatory cap makes the result degenerate.
func ValidateCap(name, field string, value float64) string {
	switch {
	case value == 0:
		return fmt.Sprintf("%s: %s is zero; nothing can be borrowed", name, field)
	case value >= 1:
		return fmt.Sprintf("%s: %s of %.0f%% places no limit", name, field, value*100)
	}
	return ""
}

// ValidateLeaseRatio warns when a lease ratio leaves no equity to finance.
func ValidateLeaseRatio(name string, ratio float64) string {
	if ratio >= 1 {
		return fmt.Sprintf("%s: lease ratio %.2f is at or above 100%%; the result will be zero", name, ratio)
	}
	return ""
}

// RequestValidator collects the request fields that produce warnings.
type RequestValidator struct {
	Loans         []LoanRequest
	Affordability []AffordabilityRequest
	Taxes         []TaxRequest
}

// LoanRequest holds the fields of a loan request that are checked.
type LoanRequest struct {
	Name       string
	Principal  float64
	AnnualRate float64
	TermMonths int
}

// AffordabilityRequest holds the fields of an affordability request that are
// checked.
type AffordabilityRequest struct {
	Name       string
	Lease      bool
	DSRCap     float64
	LTVCap     float64
	AnnualRate float64
	LeaseRatio float64
}

// TaxRequest holds the fields of a tax request that are checked.
type TaxRequest struct {
	Name           string
	ContractAmount float64
	AssessedValue  float64
}

// ValidateAll validates every request and returns warnings
func (rv *RequestValidator) ValidateAll() []string {
	var warnings []string
	add := func(warning string) {
		if warning != "" {
			warnings = append(warnings, warning)
		}
	}

	if len(rv.Loans) == 0 && len(rv.Affordability) == 0 && len(rv.Taxes) == 0 {
		add("no loans, affordability or tax requests are configured")
	}

	for _, loan := range rv.Loans {
		name := fmt.Sprintf("Loan '%s'", loan.Name)
		if loan.Principal == 0 {
			add(fmt.Sprintf("%s: principal is zero; the schedule will be empty", name))
		}
		add(ValidateRate(name, "annual rate", loan.AnnualRate))
		add(ValidateTerm(name, loan.TermMonths))
	}

	for _, request := range rv.Affordability {
		name := fmt.Sprintf("Affordability '%s'", request.Name)
		add(ValidateRate(name, "annual rate", request.AnnualRate))
		if request.Lease {
			add(ValidateLeaseRatio(name, request.LeaseRatio))
			continue
		}
		add(ValidateCap(name, "DSR cap", request.DSRCap))
		add(ValidateCap(name, "LTV cap", request.LTVCap))
	}

	for _, request := range rv.Taxes {
		if request.ContractAmount == 0 && request.AssessedValue == 0 {
			add(fmt.Sprintf("Tax '%s': no contract amount or assessed value; the tax will be zero", request.Name))
		}
	}

	return warnings
}
