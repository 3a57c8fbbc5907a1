// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/home-finance/internal/estimate"
)

// FindLoan finds a loan estimate by name in the report.
// Returns a pointer to the estimate if found, nil otherwise.
func FindLoan(report *estimate.Report, name string) *estimate.LoanEstimate {
	if report == nil {
		return nil
	}
	for i := range report.Loans {
		if report.Loans[i].Name == name {
			return &report.Loans[i]
		}
	}
	return nil
}

// FindAffordability finds an affordability estimate by name in the report.
func FindAffordability(report *estimate.Report, name string) *estimate.AffordabilityEstimate {
	if report == nil {
		return nil
	}
	for i := range report.Affordability {
		if report.Affordability[i].Name == name {
			return &report.Affordability[i]
		}
	}
	return nil
}

// FindTax finds a tax estimate by name in the report.
func FindTax(report *estimate.Report, name string) *estimate.TaxEstimate {
	if report == nil {
		return nil
	}
	for i := range report.Taxes {
		if report.Taxes[i].Name == name {
			return &report.Taxes[i]
		}
	}
	return nil
}
