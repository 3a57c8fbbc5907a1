// Package affordability solves for the maximum financeable property price
// under debt-service-ratio and loan-to-value regulation.
package affordability

import (
	"errors"
	"fmt"
	"strings"
)

// Variant selects a regulatory regime.
type Variant string

// Supported variants.
const (
	Baseline       Variant = "baseline"
	StressDSR      Variant = "stress-dsr"
	PolicyCapacity Variant = "policy-capacity"
	LeveragedLease Variant = "leveraged-lease"
)

// ErrUnknownVariant is returned when a variant name is not recognized.
var ErrUnknownVariant = errors.New("unknown affordability variant")

// ParseVariant maps a configured name onto a Variant. An empty name selects
// Baseline.
func ParseVariant(value string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "baseline", "living":
		return Baseline, nil
	case "stress-dsr", "stress_dsr", "stress":
		return StressDSR, nil
	case "policy-capacity", "policy_capacity", "policy", "capacity":
		return PolicyCapacity, nil
	case "leveraged-lease", "leveraged_lease", "gap", "lease":
		return LeveragedLease, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, value)
}

// PriceTier caps the loan for properties priced up to UpTo. UpTo of zero marks
// the open top band.
type PriceTier struct {
	UpTo    float64 `yaml:"upTo" mapstructure:"upTo"`
	LoanCap float64 `yaml:"loanCap" mapstructure:"loanCap"`
}

// Policy is the configuration record that turns the single inversion core
// into a named regulatory variant.
type Policy struct {
	// UseStressRate adds the region's stress add-on to the rate used inside
	// the DSR inversion.
	UseStressRate bool `yaml:"useStressRate" mapstructure:"useStressRate"`
	// StressAddOnCapital and StressAddOnOther are the add-ons for capital
	// and other regions.
	StressAddOnCapital float64 `yaml:"stressAddOnCapital" mapstructure:"stressAddOnCapital"`
	StressAddOnOther   float64 `yaml:"stressAddOnOther" mapstructure:"stressAddOnOther"`
	// StressRateFloor is the minimum add-on applied in regulated areas.
	StressRateFloor float64 `yaml:"stressRateFloor" mapstructure:"stressRateFloor"`

	// RegulatedLTVCap replaces the LTV cap in regulated areas when > 0.
	RegulatedLTVCap float64 `yaml:"regulatedLTVCap" mapstructure:"regulatedLTVCap"`
	// PriceTiers caps the loan by property price band.
	PriceTiers []PriceTier `yaml:"priceTiers,omitempty" mapstructure:"priceTiers"`
	// PriceTiersRequireRegulated limits the tier table to capital or
	// regulated areas.
	PriceTiersRequireRegulated bool `yaml:"priceTiersRequireRegulated" mapstructure:"priceTiersRequireRegulated"`

	// FoldLeaseLoanInterest subtracts an existing lease-backed loan's
	// interest from the monthly budget for households owning at least
	// LeaseLoanDSRMinHomes homes.
	FoldLeaseLoanInterest bool `yaml:"foldLeaseLoanInterest" mapstructure:"foldLeaseLoanInterest"`
	LeaseLoanDSRMinHomes  int  `yaml:"leaseLoanDSRMinHomes" mapstructure:"leaseLoanDSRMinHomes"`

	// Lease leverage parameters.
	CreditLoanMultiplier float64 `yaml:"creditLoanMultiplier" mapstructure:"creditLoanMultiplier"`
	CreditLoanCap        float64 `yaml:"creditLoanCap" mapstructure:"creditLoanCap"`
}

// PolicySet holds the policy record of every variant.
type PolicySet struct {
	Baseline       Policy `yaml:"baseline" mapstructure:"baseline"`
	StressDSR      Policy `yaml:"stressDSR" mapstructure:"stressDSR"`
	PolicyCapacity Policy `yaml:"policyCapacity" mapstructure:"policyCapacity"`
	LeveragedLease Policy `yaml:"leveragedLease" mapstructure:"leveragedLease"`
}

// For returns the policy of a variant.
func (s PolicySet) For(variant Variant) (Policy, bool) {
	switch variant {
	case Baseline:
		return s.Baseline, true
	case StressDSR:
		return s.StressDSR, true
	case PolicyCapacity:
		return s.PolicyCapacity, true
	case LeveragedLease:
		return s.LeveragedLease, true
	}
	return Policy{}, false
}

// DefaultPolicySet returns the stage-three stress DSR add-ons and the
// capital-area capacity rules.
func DefaultPolicySet() PolicySet {
	return PolicySet{
		Baseline: Policy{},
		StressDSR: Policy{
			UseStressRate:      true,
			StressAddOnCapital: 0.015,
			StressAddOnOther:   0.0075,
		},
		PolicyCapacity: Policy{
			UseStressRate:      true,
			StressAddOnCapital: 0.015,
			StressAddOnOther:   0.0075,
			StressRateFloor:    0.03,
			RegulatedLTVCap:    0.40,
			PriceTiers: []PriceTier{
				{UpTo: 1500000000, LoanCap: 600000000},
				{UpTo: 2500000000, LoanCap: 400000000},
				{UpTo: 0, LoanCap: 200000000},
			},
			PriceTiersRequireRegulated: true,
			FoldLeaseLoanInterest:      true,
			LeaseLoanDSRMinHomes:       1,
		},
		LeveragedLease: Policy{
			CreditLoanMultiplier: 1.0,
			CreditLoanCap:        100000000,
		},
	}
}
