package config

import (
	"fmt"

	"github.com/iwvelando/home-finance/pkg/affordability"
	"github.com/iwvelando/home-finance/pkg/validation"
	"go.uber.org/multierr"
)

// RequestName returns the configured name or a positional fallback.
func RequestName(kind, name string, index int) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("%s-%d", kind, index+1)
}

// Validate checks the whole configuration and returns every problem found,
// combined with multierr.
func (conf *Configuration) Validate() error {
	var err error

	if conf.Output.Format != "" {
		err = multierr.Append(err, validation.ValidateOutputFormat(conf.Output.Format))
	}
	err = multierr.Append(err, conf.Policy.Validate())

	seen := make(map[string]bool)
	check := func(kind, name string, index int, requestErr error) {
		label := RequestName(kind, name, index)
		key := kind + "/" + label
		if seen[key] {
			err = multierr.Append(err, fmt.Errorf("%s %q: %w: duplicate name", kind, label, ErrInvalidRequest))
		}
		seen[key] = true
		for _, e := range multierr.Errors(requestErr) {
			err = multierr.Append(err, fmt.Errorf("%s %q: %w", kind, label, e))
		}
	}

	for i := range conf.Loans {
		check("loan", conf.Loans[i].Name, i, conf.Loans[i].Validate())
	}
	for i := range conf.Affordability {
		check("affordability", conf.Affordability[i].Name, i, conf.Affordability[i].Validate())
	}
	for i := range conf.Taxes {
		check("tax", conf.Taxes[i].Name, i, conf.Taxes[i].Validate())
	}

	return err
}

// Warnings returns suspicious but legal settings that are worth reporting.
func (conf *Configuration) Warnings() []string {
	validator := validation.RequestValidator{}

	for i, loan := range conf.Loans {
		validator.Loans = append(validator.Loans, validation.LoanRequest{
			Name:       RequestName("loan", loan.Name, i),
			Principal:  loan.Principal,
			AnnualRate: loan.AnnualRate,
			TermMonths: loan.Months(),
		})
	}

	for i, request := range conf.Affordability {
		variant, _ := affordability.ParseVariant(request.Variant)
		validator.Affordability = append(validator.Affordability, validation.AffordabilityRequest{
			Name:       RequestName("affordability", request.Name, i),
			Lease:      variant == affordability.LeveragedLease,
			DSRCap:     request.DSRCap,
			LTVCap:     request.LTVCap,
			AnnualRate: request.AnnualRate,
			LeaseRatio: request.LeaseRatio,
		})
	}

	for i, request := range conf.Taxes {
		validator.Taxes = append(validator.Taxes, validation.TaxRequest{
			Name:           RequestName("tax", request.Name, i),
			ContractAmount: request.ContractAmount,
			AssessedValue:  request.AssessedValue,
		})
	}

	return validator.ValidateAll()
}
