package tax

// Schedule holds the statutory rates and thresholds. Rates are fractions and
// amounts are whole currency units.
type Schedule struct {
	// General house purchase rate, ramped linearly between the thresholds.
	GeneralLowerThreshold float64 `yaml:"generalLowerThreshold" mapstructure:"generalLowerThreshold"`
	GeneralUpperThreshold float64 `yaml:"generalUpperThreshold" mapstructure:"generalUpperThreshold"`
	GeneralLowerRate      float64 `yaml:"generalLowerRate" mapstructure:"generalLowerRate"`
	GeneralUpperRate      float64 `yaml:"generalUpperRate" mapstructure:"generalUpperRate"`

	// Heavy rates for multi-home and corporate buyers.
	HeavyRate          float64 `yaml:"heavyRate" mapstructure:"heavyRate"`
	HeavyRateTop       float64 `yaml:"heavyRateTop" mapstructure:"heavyRateTop"`
	CorporateRate      float64 `yaml:"corporateRate" mapstructure:"corporateRate"`
	HeavyGiftRate      float64 `yaml:"heavyGiftRate" mapstructure:"heavyGiftRate"`
	HeavyGiftThreshold float64 `yaml:"heavyGiftThreshold" mapstructure:"heavyGiftThreshold"`
	// LowValueExclusion is the assessed value at or below which heavy rates
	// do not apply. Zero disables the exclusion.
	LowValueExclusion float64 `yaml:"lowValueExclusion" mapstructure:"lowValueExclusion"`

	// Flat rates.
	GiftRate                float64 `yaml:"giftRate" mapstructure:"giftRate"`
	InheritanceRate         float64 `yaml:"inheritanceRate" mapstructure:"inheritanceRate"`
	InheritanceFarmlandRate float64 `yaml:"inheritanceFarmlandRate" mapstructure:"inheritanceFarmlandRate"`
	OriginalRate            float64 `yaml:"originalRate" mapstructure:"originalRate"`
	FarmlandPurchaseRate    float64 `yaml:"farmlandPurchaseRate" mapstructure:"farmlandPurchaseRate"`
	OtherPurchaseRate       float64 `yaml:"otherPurchaseRate" mapstructure:"otherPurchaseRate"`

	// Surtaxes.
	SurtaxBaseRate           float64 `yaml:"surtaxBaseRate" mapstructure:"surtaxBaseRate"`
	LocalEducationFactor     float64 `yaml:"localEducationFactor" mapstructure:"localEducationFactor"`
	LocalEducationHouseShare float64 `yaml:"localEducationHouseShare" mapstructure:"localEducationHouseShare"`
	LocalEducationHeavyRate  float64 `yaml:"localEducationHeavyRate" mapstructure:"localEducationHeavyRate"`
	RuralStandardRate        float64 `yaml:"ruralStandardRate" mapstructure:"ruralStandardRate"`
	RuralHeavyFactor         float64 `yaml:"ruralHeavyFactor" mapstructure:"ruralHeavyFactor"`

	// First-home deduction.
	FirstHomePriceCeiling        float64 `yaml:"firstHomePriceCeiling" mapstructure:"firstHomePriceCeiling"`
	FirstHomeCap                 float64 `yaml:"firstHomeCap" mapstructure:"firstHomeCap"`
	FirstHomeSmallCap            float64 `yaml:"firstHomeSmallCap" mapstructure:"firstHomeSmallCap"`
	FirstHomeSmallCapitalCeiling float64 `yaml:"firstHomeSmallCapitalCeiling" mapstructure:"firstHomeSmallCapitalCeiling"`
	FirstHomeSmallOtherCeiling   float64 `yaml:"firstHomeSmallOtherCeiling" mapstructure:"firstHomeSmallOtherCeiling"`
}

// DefaultSchedule returns the current statutory schedule.
func DefaultSchedule() Schedule {
	return Schedule{
		GeneralLowerThreshold: 600000000,
		GeneralUpperThreshold: 900000000,
		GeneralLowerRate:      0.01,
		GeneralUpperRate:      0.03,

		HeavyRate:          0.08,
		HeavyRateTop:       0.12,
		CorporateRate:      0.12,
		HeavyGiftRate:      0.12,
		HeavyGiftThreshold: 300000000,
		LowValueExclusion:  100000000,

		GiftRate:                0.035,
		InheritanceRate:         0.028,
		InheritanceFarmlandRate: 0.023,
		OriginalRate:            0.028,
		FarmlandPurchaseRate:    0.03,
		OtherPurchaseRate:       0.04,

		SurtaxBaseRate:           0.02,
		LocalEducationFactor:     0.2,
		LocalEducationHouseShare: 0.1,
		LocalEducationHeavyRate:  0.004,
		RuralStandardRate:        0.002,
		RuralHeavyFactor:         0.1,

		FirstHomePriceCeiling:        1200000000,
		FirstHomeCap:                 2000000,
		FirstHomeSmallCap:            3000000,
		FirstHomeSmallCapitalCeiling: 600000000,
		FirstHomeSmallOtherCeiling:   300000000,
	}
}
