package config

import (
	"fmt"

	"github.com/iwvelando/home-finance/pkg/affordability"
	"go.uber.org/multierr"
)

// AffordabilityRequest asks for the maximum purchase under a variant.
type AffordabilityRequest struct {
	Name             string                    `yaml:"name" mapstructure:"name"`
	Variant          string                    `yaml:"variant,omitempty" mapstructure:"variant"`
	AnnualIncome     float64                   `yaml:"annualIncome" mapstructure:"annualIncome"`
	LiquidAssets     float64                   `yaml:"liquidAssets" mapstructure:"liquidAssets"`
	DSRCap           float64                   `yaml:"dsrCap" mapstructure:"dsrCap"`
	LTVCap           float64                   `yaml:"ltvCap" mapstructure:"ltvCap"`
	AnnualRate       float64                   `yaml:"annualRate" mapstructure:"annualRate"`
	TermYears        int                       `yaml:"termYears" mapstructure:"termYears"`
	CapitalArea      bool                      `yaml:"capitalArea,omitempty" mapstructure:"capitalArea"`
	RegulatedArea    bool                      `yaml:"regulatedArea,omitempty" mapstructure:"regulatedArea"`
	PriceTiers       []affordability.PriceTier `yaml:"priceTiers,omitempty" mapstructure:"priceTiers"`
	StressAddOn      float64                   `yaml:"stressAddOn,omitempty" mapstructure:"stressAddOn"`
	LeaseRatio       float64                   `yaml:"leaseRatio,omitempty" mapstructure:"leaseRatio"`
	HomesOwned       int                       `yaml:"homesOwned,omitempty" mapstructure:"homesOwned"`
	LeaseLoanBalance float64                   `yaml:"leaseLoanBalance,omitempty" mapstructure:"leaseLoanBalance"`
	LeaseLoanRate    float64                   `yaml:"leaseLoanRate,omitempty" mapstructure:"leaseLoanRate"`
}

// Validate returns every problem with the request.
func (request *AffordabilityRequest) Validate() error {
	var err error
	if _, parseErr := affordability.ParseVariant(request.Variant); parseErr != nil {
		err = multierr.Append(err, parseErr)
	}
	for _, field := range []namedValue{
		{"annual income", request.AnnualIncome},
		{"liquid assets", request.LiquidAssets},
		{"DSR cap", request.DSRCap},
		{"LTV cap", request.LTVCap},
		{"annual rate", request.AnnualRate},
		{"stress add-on", request.StressAddOn},
		{"lease ratio", request.LeaseRatio},
		{"lease loan balance", request.LeaseLoanBalance},
		{"lease loan rate", request.LeaseLoanRate},
	} {
		if field.value < 0 {
			err = multierr.Append(err, fmt.Errorf("%w: %s %.4f is negative", ErrInvalidRequest, field.name, field.value))
		}
	}
	if request.TermYears < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: term of %d years is negative", ErrInvalidRequest, request.TermYears))
	}
	if request.HomesOwned < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: homes owned %d is negative", ErrInvalidRequest, request.HomesOwned))
	}
	return err
}

// ToAffordabilityInput converts the request into engine input and variant.
func (request *AffordabilityRequest) ToAffordabilityInput() (affordability.Input, affordability.Variant, error) {
	variant, err := affordability.ParseVariant(request.Variant)
	if err != nil {
		return affordability.Input{}, "", fmt.Errorf("affordability %q: %w", request.Name, err)
	}
	return affordability.Input{
		AnnualIncome:     request.AnnualIncome,
		LiquidAssets:     request.LiquidAssets,
		DSRCap:           request.DSRCap,
		LTVCap:           request.LTVCap,
		AnnualRate:       request.AnnualRate,
		TermYears:        request.TermYears,
		CapitalArea:      request.CapitalArea,
		RegulatedArea:    request.RegulatedArea,
		PriceTiers:       request.PriceTiers,
		StressAddOn:      request.StressAddOn,
		LeaseRatio:       request.LeaseRatio,
		HomesOwned:       request.HomesOwned,
		LeaseLoanBalance: request.LeaseLoanBalance,
		LeaseLoanRate:    request.LeaseLoanRate,
	}, variant, nil
}
