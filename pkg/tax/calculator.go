package tax

import (
	"fmt"

	"github.com/iwvelando/home-finance/pkg/constants"
	"github.com/iwvelando/home-finance/pkg/mathutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// surtaxRatePlaces keeps surtax rates derived from an interpolated primary
// rate exact.
const surtaxRatePlaces = constants.RatePlaces + 2

type rateKind int

const (
	// standardRate is the general house purchase rate.
	standardRate rateKind = iota
	flatRate
	heavyRate
)

// Calculator computes acquisition tax against a rate schedule.
type Calculator struct {
	logger   *zap.Logger
	schedule Schedule
}

// NewCalculator creates a calculator for the given schedule.
func NewCalculator(logger *zap.Logger, schedule Schedule) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{logger: logger, schedule: schedule}
}

// ComputeTax computes the tax with the default schedule.
func ComputeTax(in Input) Result {
	return NewCalculator(nil, DefaultSchedule()).ComputeTax(in)
}

// ComputeTax returns the tax breakdown of an acquisition. The tax base is the
// larger of the contract amount and the assessed value.
func (c *Calculator) ComputeTax(in Input) Result {
	in, notes := c.normalize(in)

	contract := mathutil.FloorToUnit(in.ContractAmount, constants.CurrencyUnit)
	assessed := mathutil.FloorToUnit(in.AssessedValue, constants.CurrencyUnit)
	base := mathutil.Max(contract, assessed)
	if base <= 0 {
		return Result{Notes: notes}
	}
	if assessed > contract {
		notes = append(notes, fmt.Sprintf("assessed value of %.0f exceeds the contract amount and is used as the tax base", assessed))
	}

	rate, kind, rateNotes := c.primaryRate(in, base, assessed)
	notes = append(notes, rateNotes...)
	rate = mathutil.RoundRate(rate, constants.RatePlaces)

	localRate := c.localRate(rate, kind)
	ruralRate, ruralNotes := c.ruralRate(in, rate, kind)
	notes = append(notes, ruralNotes...)

	result := Result{
		TaxBase:          base,
		AcquisitionRate:  rate,
		LocalSurtaxRate:  localRate,
		RuralSurtaxRate:  ruralRate,
		AcquisitionTax:   mathutil.MulFloor(base, rate, constants.TaxRoundingUnit),
		LocalSurtax:      mathutil.MulFloor(base, localRate, constants.TaxRoundingUnit),
		RuralSurtax:      mathutil.MulFloor(base, ruralRate, constants.TaxRoundingUnit),
		HeavyRateApplied: kind == heavyRate,
	}

	deduction, deductionNotes := c.firstHomeDeduction(in, base, result.AcquisitionTax)
	notes = append(notes, deductionNotes...)
	result.FirstHomeDeduction = deduction
	result.TotalTax = mathutil.NonNegative(result.AcquisitionTax + result.LocalSurtax + result.RuralSurtax - deduction)
	result.Notes = notes

	c.logger.Debug("computed acquisition tax",
		zap.String("op", "tax.ComputeTax"),
		zap.String("transactionType", string(in.TransactionType)),
		zap.String("assetType", string(in.AssetType)),
		zap.Float64("taxBase", base),
		zap.Float64("acquisitionRate", rate),
		zap.Float64("totalTax", result.TotalTax),
	)
	return result
}

// normalize replaces unrecognized enum values with their defaults and clamps
// the home count to at least one.
func (c *Calculator) normalize(in Input) (Input, []string) {
	var notes []string

	transaction, err := ParseTransactionType(string(in.TransactionType))
	if err != nil {
		c.logger.Warn("unknown transaction type, assuming purchase",
			zap.String("op", "tax.ComputeTax"), zap.Error(err))
		notes = append(notes, fmt.Sprintf("unknown transaction type %q treated as purchase", in.TransactionType))
		transaction = Purchase
	}
	in.TransactionType = transaction

	asset, err := ParseAssetType(string(in.AssetType))
	if err != nil {
		c.logger.Warn("unknown asset type, assuming house",
			zap.String("op", "tax.ComputeTax"), zap.Error(err))
		notes = append(notes, fmt.Sprintf("unknown asset type %q treated as house", in.AssetType))
		asset = House
	}
	in.AssetType = asset

	area, err := ParseAreaTier(string(in.AreaTier))
	if err != nil {
		c.logger.Warn("unknown area tier, assuming over 85 square meters",
			zap.String("op", "tax.ComputeTax"), zap.Error(err))
		notes = append(notes, fmt.Sprintf("unknown area tier %q treated as over 85 square meters", in.AreaTier))
		area = Over85
	}
	in.AreaTier = area

	if in.HouseCount < 1 {
		in.HouseCount = 1
	}
	if in.RegulatedArea && in.AssetType != House {
		notes = append(notes, "regulated area flag only affects houses")
	}
	return in, notes
}

func (c *Calculator) primaryRate(in Input, base, assessed float64) (float64, rateKind, []string) {
	s := c.schedule

	switch in.TransactionType {
	case Gift:
		if in.AssetType == House && in.RegulatedArea && s.HeavyGiftRate > 0 && assessed >= s.HeavyGiftThreshold {
			return c.heavyOrStandard(in, assessed, s.HeavyGiftRate, s.GiftRate, flatRate, "a gifted house in a regulated area")
		}
		return s.GiftRate, flatRate, nil
	case Inheritance:
		if in.AssetType == Farmland {
			return s.InheritanceFarmlandRate, flatRate, nil
		}
		return s.InheritanceRate, flatRate, nil
	case Original:
		return s.OriginalRate, flatRate, nil
	}

	switch in.AssetType {
	case Farmland:
		return s.FarmlandPurchaseRate, flatRate, nil
	case Officetel, Other:
		return s.OtherPurchaseRate, flatRate, nil
	}

	general := c.generalRate(base)
	heavy, reason := c.heavyHouseRate(in)
	if heavy <= 0 {
		return general, standardRate, nil
	}
	return c.heavyOrStandard(in, assessed, heavy, general, standardRate, reason)
}

// heavyOrStandard picks the heavy rate unless an exclusion applies.
func (c *Calculator) heavyOrStandard(in Input, assessed, heavy, standard float64, kind rateKind, reason string) (float64, rateKind, []string) {
	limit := c.schedule.LowValueExclusion
	switch {
	case in.HeavyTaxExcluded:
		return standard, kind, []string{fmt.Sprintf("heavy rate for %s excluded; standard rate applied", reason)}
	case limit > 0 && assessed > 0 && assessed <= limit:
		return standard, kind, []string{fmt.Sprintf("assessed value of %.0f is at or below %.0f; heavy rate for %s not applied", assessed, limit, reason)}
	}
	return heavy, heavyRate, []string{fmt.Sprintf("heavy rate of %s%% applied for %s", decimal.NewFromFloat(heavy).Shift(2).String(), reason)}
}

// heavyHouseRate returns the heavy rate a house purchase attracts, or zero.
func (c *Calculator) heavyHouseRate(in Input) (float64, string) {
	s := c.schedule
	switch {
	case in.CorporateBuyer:
		return s.CorporateRate, "a corporate buyer"
	case in.RegulatedArea && in.HouseCount >= 3:
		return s.HeavyRateTop, fmt.Sprintf("%d homes in a regulated area", in.HouseCount)
	case in.RegulatedArea && in.HouseCount == 2:
		return s.HeavyRate, "2 homes in a regulated area"
	case !in.RegulatedArea && in.HouseCount >= 4:
		return s.HeavyRateTop, fmt.Sprintf("%d homes", in.HouseCount)
	case !in.RegulatedArea && in.HouseCount == 3:
		return s.HeavyRate, "3 homes"
	}
	return 0, ""
}

// generalRate ramps linearly from the lower to the upper rate between the two
// thresholds.
func (c *Calculator) generalRate(base float64) float64 {
	s := c.schedule
	switch {
	case base <= s.GeneralLowerThreshold:
		return s.GeneralLowerRate
	case base >= s.GeneralUpperThreshold:
		return s.GeneralUpperRate
	}

	lower := decimal.NewFromFloat(s.GeneralLowerThreshold)
	span := decimal.NewFromFloat(s.GeneralUpperThreshold).Sub(lower)
	lowRate := decimal.NewFromFloat(s.GeneralLowerRate)
	step := decimal.NewFromFloat(s.GeneralUpperRate).Sub(lowRate)

	rate := lowRate.Add(decimal.NewFromFloat(base).Sub(lower).Mul(step).Div(span))
	return rate.Round(constants.RatePlaces).InexactFloat64()
}

func (c *Calculator) localRate(rate float64, kind rateKind) float64 {
	s := c.schedule
	switch kind {
	case standardRate:
		return derivedRate(rate, 0, s.LocalEducationHouseShare)
	case heavyRate:
		return s.LocalEducationHeavyRate
	}
	return derivedRate(rate, s.SurtaxBaseRate, s.LocalEducationFactor)
}

func (c *Calculator) ruralRate(in Input, rate float64, kind rateKind) (float64, []string) {
	s := c.schedule
	if in.AssetType == House && in.AreaTier.ruralExempt() {
		return 0, []string{"rural special surtax exempt for houses of 85 square meters or less"}
	}
	if kind == heavyRate {
		return derivedRate(rate, s.SurtaxBaseRate, s.RuralHeavyFactor), nil
	}
	return s.RuralStandardRate, nil
}

// derivedRate returns (rate - less) * factor, floored at zero.
func derivedRate(rate, less, factor float64) float64 {
	d := decimal.NewFromFloat(rate).Sub(decimal.NewFromFloat(less)).Mul(decimal.NewFromFloat(factor))
	if d.IsNegative() {
		return 0
	}
	return d.Round(surtaxRatePlaces).InexactFloat64()
}

func (c *Calculator) firstHomeDeduction(in Input, base, acquisitionTax float64) (float64, []string) {
	if !in.FirstHomeBuyer {
		return 0, nil
	}
	if in.AssetType != House || in.TransactionType != Purchase {
		return 0, []string{"first-home buyer flag only affects house purchases"}
	}

	s := c.schedule
	var reason string
	switch {
	case in.CorporateBuyer:
		reason = "corporate buyers do not qualify"
	case in.HouseCount > 1:
		reason = fmt.Sprintf("buyer would own %d homes", in.HouseCount)
	case s.FirstHomePriceCeiling > 0 && base > s.FirstHomePriceCeiling:
		reason = fmt.Sprintf("tax base exceeds %.0f", s.FirstHomePriceCeiling)
	}
	if reason != "" {
		return 0, []string{"first-home deduction not applied: " + reason}
	}

	limit := s.FirstHomeCap
	ceiling := s.FirstHomeSmallOtherCeiling
	if in.CapitalArea {
		ceiling = s.FirstHomeSmallCapitalCeiling
	}
	if in.AreaTier.smallHome() && s.FirstHomeSmallCap > limit && base <= ceiling {
		limit = s.FirstHomeSmallCap
	}

	deduction := mathutil.FloorToUnit(mathutil.Min(acquisitionTax, limit), constants.TaxRoundingUnit)
	note := fmt.Sprintf("first-home deduction of %.0f applied", deduction)
	if acquisitionTax > limit {
		note += fmt.Sprintf(", capped at %.0f", limit)
	}
	return deduction, []string{note}
}
