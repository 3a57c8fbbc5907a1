// Package estimate runs every configured request through the matching engine
// and collects the named results.
package estimate

import (
	"fmt"

	"github.com/iwvelando/home-finance/internal/config"
	"github.com/iwvelando/home-finance/pkg/affordability"
	"github.com/iwvelando/home-finance/pkg/loans"
	"github.com/iwvelando/home-finance/pkg/tax"
	"go.uber.org/zap"
)

// LoanEstimate is the schedule of one configured loan.
type LoanEstimate struct {
	Name   string                   `yaml:"name"`
	Terms  loans.LoanTerms          `yaml:"terms"`
	Result loans.AmortizationResult `yaml:"result"`
}

// AffordabilityEstimate is the maximum purchase of one configured household.
type AffordabilityEstimate struct {
	Name   string               `yaml:"name"`
	Input  affordability.Input  `yaml:"input"`
	Result affordability.Result `yaml:"result"`
}

// TaxEstimate is the acquisition tax of one configured property.
type TaxEstimate struct {
	Name   string     `yaml:"name"`
	Input  tax.Input  `yaml:"input"`
	Result tax.Result `yaml:"result"`
}

// Report holds every result in configuration order.
type Report struct {
	Loans         []LoanEstimate          `yaml:"loans,omitempty"`
	Affordability []AffordabilityEstimate `yaml:"affordability,omitempty"`
	Taxes         []TaxEstimate           `yaml:"taxes,omitempty"`
}

// Run validates the configuration and computes every request.
func Run(logger *zap.Logger, conf *config.Configuration) (*Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if conf == nil {
		return nil, fmt.Errorf("no configuration provided")
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	generator := loans.NewScheduleGenerator(logger, conf.StepUpOptions())
	solver := affordability.NewSolver(logger, conf.PolicySet())
	calculator := tax.NewCalculator(logger, conf.TaxSchedule())

	report := &Report{}

	for i := range conf.Loans {
		name := config.RequestName("loan", conf.Loans[i].Name, i)
		terms, err := conf.Loans[i].ToLoanTerms()
		if err != nil {
			return nil, err
		}
		logger.Debug(fmt.Sprintf("computing schedule for loan %s", name),
			zap.String("op", "estimate.Run"),
		)
		report.Loans = append(report.Loans, LoanEstimate{
			Name:   name,
			Terms:  terms,
			Result: generator.ComputeSchedule(terms),
		})
	}

	for i := range conf.Affordability {
		name := config.RequestName("affordability", conf.Affordability[i].Name, i)
		in, variant, err := conf.Affordability[i].ToAffordabilityInput()
		if err != nil {
			return nil, err
		}
		logger.Debug(fmt.Sprintf("computing %s maximum purchase for %s", variant, name),
			zap.String("op", "estimate.Run"),
		)
		report.Affordability = append(report.Affordability, AffordabilityEstimate{
			Name:   name,
			Input:  in,
			Result: solver.ComputeMaxPurchase(in, variant),
		})
	}

	for i := range conf.Taxes {
		name := config.RequestName("tax", conf.Taxes[i].Name, i)
		in, err := conf.Taxes[i].ToTaxInput()
		if err != nil {
			return nil, err
		}
		logger.Debug(fmt.Sprintf("computing acquisition tax for %s", name),
			zap.String("op", "estimate.Run"),
		)
		report.Taxes = append(report.Taxes, TaxEstimate{
			Name:   name,
			Input:  in,
			Result: calculator.ComputeTax(in),
		})
	}

	logger.Info("estimates complete",
		zap.String("op", "estimate.Run"),
		zap.Int("loans", len(report.Loans)),
		zap.Int("affordability", len(report.Affordability)),
		zap.Int("taxes", len(report.Taxes)),
	)

	return report, nil
}
