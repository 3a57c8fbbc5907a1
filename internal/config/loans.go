package config

import (
	"fmt"

	"github.com/iwvelando/home-finance/pkg/constants"
	"github.com/iwvelando/home-finance/pkg/loans"
	"go.uber.org/multierr"
)

// Loan is a schedule request. TermYears is used when TermMonths is unset.
type Loan struct {
	Name               string  `yaml:"name" mapstructure:"name"`
	Principal          float64 `yaml:"principal" mapstructure:"principal"`
	AnnualRate         float64 `yaml:"annualRate" mapstructure:"annualRate"` // fraction, e.g. 0.035
	TermMonths         int     `yaml:"termMonths,omitempty" mapstructure:"termMonths"`
	TermYears          int     `yaml:"termYears,omitempty" mapstructure:"termYears"`
	Structure          string  `yaml:"structure,omitempty" mapstructure:"structure"`
	StepUpAnnualGrowth float64 `yaml:"stepUpAnnualGrowth,omitempty" mapstructure:"stepUpAnnualGrowth"`
}

// Months returns the loan term in months.
func (loan *Loan) Months() int {
	if loan.TermMonths != 0 {
		return loan.TermMonths
	}
	return loan.TermYears * constants.MonthsPerYear
}

// Validate returns every problem with the request.
func (loan *Loan) Validate() error {
	var err error
	if _, parseErr := loans.ParseStructure(loan.Structure); parseErr != nil {
		err = multierr.Append(err, parseErr)
	}
	if loan.Principal < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: principal %.0f is negative", ErrInvalidRequest, loan.Principal))
	}
	if loan.AnnualRate < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: annual rate %.4f is negative", ErrInvalidRequest, loan.AnnualRate))
	}
	if loan.TermMonths < 0 || loan.TermYears < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: term is negative", ErrInvalidRequest))
	}
	if loan.StepUpAnnualGrowth < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: step-up annual growth %.4f is negative", ErrInvalidRequest, loan.StepUpAnnualGrowth))
	}
	return err
}

// ToLoanTerms converts the request into engine input.
func (loan *Loan) ToLoanTerms() (loans.LoanTerms, error) {
	structure, err := loans.ParseStructure(loan.Structure)
	if err != nil {
		return loans.LoanTerms{}, fmt.Errorf("loan %q: %w", loan.Name, err)
	}
	return loans.LoanTerms{
		Principal:          loan.Principal,
		AnnualRate:         loan.AnnualRate,
		TermMonths:         loan.Months(),
		Structure:          structure,
		StepUpAnnualGrowth: loan.StepUpAnnualGrowth,
	}, nil
}
