package config

import (
	"fmt"

	"github.com/iwvelando/home-finance/pkg/tax"
	"go.uber.org/multierr"
)

// TaxRequest asks for the acquisition tax of a property.
type TaxRequest struct {
	Name             string  `yaml:"name" mapstructure:"name"`
	TransactionType  string  `yaml:"transactionType,omitempty" mapstructure:"transactionType"`
	AssetType        string  `yaml:"assetType,omitempty" mapstructure:"assetType"`
	AreaTier         string  `yaml:"areaTier,omitempty" mapstructure:"areaTier"`
	HouseCount       int     `yaml:"houseCount,omitempty" mapstructure:"houseCount"`
	CorporateBuyer   bool    `yaml:"corporateBuyer,omitempty" mapstructure:"corporateBuyer"`
	RegulatedArea    bool    `yaml:"regulatedArea,omitempty" mapstructure:"regulatedArea"`
	CapitalArea      bool    `yaml:"capitalArea,omitempty" mapstructure:"capitalArea"`
	HeavyTaxExcluded bool    `yaml:"heavyTaxExcluded,omitempty" mapstructure:"heavyTaxExcluded"`
	FirstHomeBuyer   bool    `yaml:"firstHomeBuyer,omitempty" mapstructure:"firstHomeBuyer"`
	ContractAmount   float64 `yaml:"contractAmount" mapstructure:"contractAmount"`
	AssessedValue    float64 `yaml:"assessedValue,omitempty" mapstructure:"assessedValue"`
}

// Validate returns every problem with the request.
func (request *TaxRequest) Validate() error {
	_, err := request.parse()
	if request.HouseCount < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: house count %d is negative", ErrInvalidRequest, request.HouseCount))
	}
	if request.ContractAmount < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: contract amount %.0f is negative", ErrInvalidRequest, request.ContractAmount))
	}
	if request.AssessedValue < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: assessed value %.0f is negative", ErrInvalidRequest, request.AssessedValue))
	}
	return err
}

// ToTaxInput converts the request into engine input.
func (request *TaxRequest) ToTaxInput() (tax.Input, error) {
	in, err := request.parse()
	if err != nil {
		return tax.Input{}, fmt.Errorf("tax %q: %w", request.Name, err)
	}
	return in, nil
}

// parse converts the request, collecting every enum error.
func (request *TaxRequest) parse() (tax.Input, error) {
	transaction, transactionErr := tax.ParseTransactionType(request.TransactionType)
	asset, assetErr := tax.ParseAssetType(request.AssetType)
	area, areaErr := tax.ParseAreaTier(request.AreaTier)
	if err := multierr.Combine(transactionErr, assetErr, areaErr); err != nil {
		return tax.Input{}, err
	}

	return tax.Input{
		TransactionType:  transaction,
		AssetType:        asset,
		AreaTier:         area,
		HouseCount:       request.HouseCount,
		CorporateBuyer:   request.CorporateBuyer,
		RegulatedArea:    request.RegulatedArea,
		CapitalArea:      request.CapitalArea,
		HeavyTaxExcluded: request.HeavyTaxExcluded,
		FirstHomeBuyer:   request.FirstHomeBuyer,
		ContractAmount:   request.ContractAmount,
		AssessedValue:    request.AssessedValue,
	}, nil
}
