package config

import (
	"fmt"

	"github.com/iwvelando/home-finance/pkg/affordability"
	"github.com/iwvelando/home-finance/pkg/constants"
	"github.com/iwvelando/home-finance/pkg/loans"
	"github.com/iwvelando/home-finance/pkg/tax"
	"go.uber.org/multierr"
)

// maxSearchIterations bounds a configured step-up search.
const maxSearchIterations = 1000

type namedValue struct {
	name  string
	value float64
}

// PolicyConfig overrides the engines' statutory defaults.
type PolicyConfig struct {
	Amortization  AmortizationPolicy      `yaml:"amortization" mapstructure:"amortization"`
	Affordability affordability.PolicySet `yaml:"affordability" mapstructure:"affordability"`
	Tax           tax.Schedule            `yaml:"tax" mapstructure:"tax"`
}

// AmortizationPolicy tunes the step-up first payment search.
type AmortizationPolicy struct {
	StepUpAnnualGrowth float64 `yaml:"stepUpAnnualGrowth" mapstructure:"stepUpAnnualGrowth"`
	MaxIterations      int     `yaml:"maxIterations" mapstructure:"maxIterations"`
	Tolerance          float64 `yaml:"tolerance" mapstructure:"tolerance"`
	LowerMultiplier    float64 `yaml:"lowerMultiplier" mapstructure:"lowerMultiplier"`
	UpperMultiplier    float64 `yaml:"upperMultiplier" mapstructure:"upperMultiplier"`
}

// DefaultPolicyConfig returns the engines' defaults.
func DefaultPolicyConfig() PolicyConfig {
	return PolicyConfig{
		Amortization:  DefaultAmortizationPolicy(),
		Affordability: affordability.DefaultPolicySet(),
		Tax:           tax.DefaultSchedule(),
	}
}

// DefaultAmortizationPolicy returns the default step-up search parameters.
func DefaultAmortizationPolicy() AmortizationPolicy {
	return AmortizationPolicy{
		StepUpAnnualGrowth: constants.DefaultStepUpAnnualGrowth,
		MaxIterations:      constants.DefaultBisectionIterations,
		Tolerance:          constants.DefaultBisectionTolerance,
		LowerMultiplier:    constants.DefaultStepUpLowerMultiplier,
		UpperMultiplier:    constants.DefaultStepUpUpperMultiplier,
	}
}

// Normalize fills unset search parameters with their defaults. A growth of
// zero is a valid level-payment request and is kept.
func (a *AmortizationPolicy) Normalize() {
	if a == nil {
		return
	}
	defaults := DefaultAmortizationPolicy()
	if a.MaxIterations <= 0 {
		a.MaxIterations = defaults.MaxIterations
	}
	if a.Tolerance <= 0 {
		a.Tolerance = defaults.Tolerance
	}
	if a.LowerMultiplier <= 0 {
		a.LowerMultiplier = defaults.LowerMultiplier
	}
	if a.UpperMultiplier <= 0 {
		a.UpperMultiplier = defaults.UpperMultiplier
	}
}

// Validate returns an error when the search parameters are unusable.
func (a *AmortizationPolicy) Validate() error {
	if a == nil {
		return fmt.Errorf("amortization policy cannot be nil")
	}

	a.Normalize()

	var err error
	if a.StepUpAnnualGrowth < 0 {
		err = multierr.Append(err, fmt.Errorf("step-up annual growth %.4f must not be negative", a.StepUpAnnualGrowth))
	}
	if a.MaxIterations > maxSearchIterations {
		err = multierr.Append(err, fmt.Errorf("step-up max iterations %d exceeds %d", a.MaxIterations, maxSearchIterations))
	}
	if a.LowerMultiplier >= a.UpperMultiplier {
		err = multierr.Append(err, fmt.Errorf("step-up lower multiplier %.2f must be less than upper multiplier %.2f",
			a.LowerMultiplier, a.UpperMultiplier))
	}
	return err
}

// Validate checks every policy section.
func (p *PolicyConfig) Validate() error {
	err := p.Amortization.Validate()

	for _, variant := range []affordability.Variant{
		affordability.Baseline, affordability.StressDSR, affordability.PolicyCapacity, affordability.LeveragedLease,
	} {
		policy, _ := p.Affordability.For(variant)
		err = multierr.Append(err, validatePolicy(variant, policy))
	}

	return multierr.Append(err, validateSchedule(p.Tax))
}

func validatePolicy(variant affordability.Variant, policy affordability.Policy) error {
	var err error
	for _, field := range []namedValue{
		{"stressAddOnCapital", policy.StressAddOnCapital},
		{"stressAddOnOther", policy.StressAddOnOther},
		{"stressRateFloor", policy.StressRateFloor},
		{"creditLoanMultiplier", policy.CreditLoanMultiplier},
		{"creditLoanCap", policy.CreditLoanCap},
	} {
		if field.value < 0 {
			err = multierr.Append(err, fmt.Errorf("policy %s: %s %.4f must not be negative", variant, field.name, field.value))
		}
	}
	if policy.RegulatedLTVCap < 0 || policy.RegulatedLTVCap > 1 {
		err = multierr.Append(err, fmt.Errorf("policy %s: regulatedLTVCap %.4f must be within [0, 1]", variant, policy.RegulatedLTVCap))
	}
	for i, tier := range policy.PriceTiers {
		if tier.UpTo < 0 || tier.LoanCap < 0 {
			err = multierr.Append(err, fmt.Errorf("policy %s: price tier %d must not be negative", variant, i))
		}
	}
	return err
}

func validateSchedule(schedule tax.Schedule) error {
	var err error
	if schedule.GeneralUpperThreshold < schedule.GeneralLowerThreshold {
		err = multierr.Append(err, fmt.Errorf("tax: general upper threshold %.0f is below lower threshold %.0f",
			schedule.GeneralUpperThreshold, schedule.GeneralLowerThreshold))
	}
	for _, field := range []namedValue{
		{"generalLowerRate", schedule.GeneralLowerRate},
		{"generalUpperRate", schedule.GeneralUpperRate},
		{"heavyRate", schedule.HeavyRate},
		{"heavyRateTop", schedule.HeavyRateTop},
		{"corporateRate", schedule.CorporateRate},
		{"heavyGiftRate", schedule.HeavyGiftRate},
		{"giftRate", schedule.GiftRate},
		{"inheritanceRate", schedule.InheritanceRate},
		{"inheritanceFarmlandRate", schedule.InheritanceFarmlandRate},
		{"originalRate", schedule.OriginalRate},
		{"farmlandPurchaseRate", schedule.FarmlandPurchaseRate},
		{"otherPurchaseRate", schedule.OtherPurchaseRate},
		{"firstHomeCap", schedule.FirstHomeCap},
		{"firstHomeSmallCap", schedule.FirstHomeSmallCap},
	} {
		if field.value < 0 {
			err = multierr.Append(err, fmt.Errorf("tax: %s %.4f must not be negative", field.name, field.value))
		}
	}
	return err
}

// StepUpOptions returns the step-up search options for the schedule generator.
func (conf *Configuration) StepUpOptions() loans.StepUpOptions {
	a := conf.Policy.Amortization
	return loans.StepUpOptions{
		AnnualGrowth:    a.StepUpAnnualGrowth,
		MaxIterations:   a.MaxIterations,
		Tolerance:       a.Tolerance,
		LowerMultiplier: a.LowerMultiplier,
		UpperMultiplier: a.UpperMultiplier,
	}
}

// PolicySet returns the affordability policies.
func (conf *Configuration) PolicySet() affordability.PolicySet {
	return conf.Policy.Affordability
}

// TaxSchedule returns the acquisition tax schedule.
func (conf *Configuration) TaxSchedule() tax.Schedule {
	return conf.Policy.Tax
}
