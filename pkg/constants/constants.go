// Package constants provides shared constants for the mortgage-calc application.
package constants

// DateTimeLayout is the format expected for loan start dates in config files
// and is also the payoff date output format.
const DateTimeLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Loan term bounds
const (
	// MinTermYears is the shortest supported loan term
	MinTermYears = 1

	// MaxTermYears is the longest supported loan term
	MaxTermYears = 30

	// AmortizationCapYears bounds the schedule loop so pathological inputs
	// cannot spin it forever
	AmortizationCapYears = 100
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
)

// Display defaults
const (
	// DefaultCurrencySymbol prefixes formatted currency amounts
	DefaultCurrencySymbol = "$"
)
