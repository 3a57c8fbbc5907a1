// Package tax computes property acquisition tax together with its local
// education and rural special surtaxes.
package tax

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownEnum is returned when a transaction, asset or area name is not
// recognized.
var ErrUnknownEnum = errors.New("unknown tax enum value")

// TransactionType is how the property is acquired.
type TransactionType string

// Transaction types.
const (
	Purchase    TransactionType = "purchase"
	Gift        TransactionType = "gift"
	Inheritance TransactionType = "inheritance"
	Original    TransactionType = "original"
)

// AssetType is the kind of property acquired.
type AssetType string

// Asset types.
const (
	House     AssetType = "house"
	Officetel AssetType = "officetel"
	Farmland  AssetType = "farmland"
	Other     AssetType = "other"
)

// AreaTier is the exclusive-use floor area band of a house.
type AreaTier string

// Area tiers. The empty tier is treated as Over85.
const (
	UpTo40 AreaTier = "le40"
	UpTo60 AreaTier = "40to60"
	UpTo85 AreaTier = "60to85"
	Over85 AreaTier = "gt85"
)

// ParseTransactionType maps a configured name onto a TransactionType. An
// empty name selects Purchase.
func ParseTransactionType(value string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "purchase", "buy", "sale":
		return Purchase, nil
	case "gift", "donation":
		return Gift, nil
	case "inheritance", "inherit":
		return Inheritance, nil
	case "original", "new-build", "construction":
		return Original, nil
	}
	return "", fmt.Errorf("%w: transaction type %q", ErrUnknownEnum, value)
}

// ParseAssetType maps a configured name onto an AssetType. An empty name
// selects House.
func ParseAssetType(value string) (AssetType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "house", "home", "apartment":
		return House, nil
	case "officetel":
		return Officetel, nil
	case "farmland", "farm":
		return Farmland, nil
	case "other", "land", "commercial":
		return Other, nil
	}
	return "", fmt.Errorf("%w: asset type %q", ErrUnknownEnum, value)
}

// ParseAreaTier maps a configured band name onto an AreaTier. An empty name
// selects Over85.
func ParseAreaTier(value string) (AreaTier, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "le40", "<=40", "40":
		return UpTo40, nil
	case "40to60", "<=60", "60":
		return UpTo60, nil
	case "60to85", "<=85", "85":
		return UpTo85, nil
	case "", "gt85", ">85", "over85":
		return Over85, nil
	}
	return "", fmt.Errorf("%w: area tier %q", ErrUnknownEnum, value)
}

// smallHome reports whether the band is at most 60 square meters.
func (a AreaTier) smallHome() bool {
	return a == UpTo40 || a == UpTo60
}

// ruralExempt reports whether a house in the band is exempt from the rural
// special surtax.
func (a AreaTier) ruralExempt() bool {
	return a == UpTo40 || a == UpTo60 || a == UpTo85
}

// Input describes an acquisition. HouseCount is the number of homes the buyer
// owns once the acquisition completes.
type Input struct {
	TransactionType  TransactionType
	AssetType        AssetType
	AreaTier         AreaTier
	HouseCount       int
	CorporateBuyer   bool
	RegulatedArea    bool
	CapitalArea      bool
	HeavyTaxExcluded bool
	FirstHomeBuyer   bool
	ContractAmount   float64
	AssessedValue    float64
}

// Result is the tax breakdown of an acquisition. TotalTax equals
// AcquisitionTax + LocalSurtax + RuralSurtax - FirstHomeDeduction.
type Result struct {
	TaxBase            float64
	AcquisitionRate    float64
	LocalSurtaxRate    float64
	RuralSurtaxRate    float64
	AcquisitionTax     float64
	LocalSurtax        float64
	RuralSurtax        float64
	FirstHomeDeduction float64
	TotalTax           float64
	HeavyRateApplied   bool
	Notes              []string
}
