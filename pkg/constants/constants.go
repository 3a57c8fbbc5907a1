// Package constants provides shared constants for the home-finance application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// CurrencyUnit is the smallest whole currency unit every amount rounds to
	CurrencyUnit = 1.0

	// TaxRoundingUnit is the step tax amounts are truncated to
	TaxRoundingUnit = 10.0

	// RatePlaces is the number of decimal places an interpolated rate keeps
	RatePlaces = 6
)

// Step-up repayment defaults
const (
	// DefaultStepUpAnnualGrowth is the yearly growth of a step-up payment
	DefaultStepUpAnnualGrowth = 0.05

	// DefaultBisectionIterations bounds the step-up first payment search
	DefaultBisectionIterations = 60

	// DefaultBisectionTolerance is the acceptable terminal balance in currency units
	DefaultBisectionTolerance = 0.5

	// DefaultStepUpLowerMultiplier scales the equal-payment baseline into the lower bound
	DefaultStepUpLowerMultiplier = 0.1

	// DefaultStepUpUpperMultiplier scales the equal-payment baseline into the upper bound
	DefaultStepUpUpperMultiplier = 3.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatYAML is the YAML output format
	OutputFormatYAML = "yaml"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// EnvPrefix prefixes environment overrides of configuration keys
	EnvPrefix = "HOME_FINANCE"
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (one unit)
	CurrencyTolerance = 1.0

	// RateTolerance is the tolerance for comparing rates
	RateTolerance = 1e-9
)
