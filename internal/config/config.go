// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/viper"

	"mortgage-calc/pkg/constants"
)

// DateTimeLayout is the format expected in config files and is also the output
// date format.
const DateTimeLayout = constants.DateTimeLayout

// plausibleRateCeiling is the interest rate (in percent) above which a
// configured loan draws a warning.
const plausibleRateCeiling = 25.0

// Configuration holds all configuration for mortgage-calc.
type Configuration struct {
	Loans   []Loan
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
	Display DisplayConfig `yaml:"display,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, yaml
}

// DisplayConfig holds presentation options applied by the output layer.
type DisplayConfig struct {
	CurrencySymbol string `yaml:"currencySymbol,omitempty"`
}

// Loan indicates a loan as written in the config file. InterestRate is a
// percentage, so 6.09 means 6.09% per year.
type Loan struct {
	Name                string
	Principal           float64
	InterestRate        float64
	TermYears           int
	ExtraMonthlyPayment float64
	StartDate           string `yaml:"startDate,omitempty"` // YYYY-MM, enables payoff date output
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// LoadConfigurationFromReader loads YAML-formatted configuration from an
// in-memory source such as a test fixture.
func LoadConfigurationFromReader(reader io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(reader); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// CurrencySymbol returns the configured display symbol or the default.
func (c *Configuration) CurrencySymbol() string {
	if c.Display.CurrencySymbol == "" {
		return constants.DefaultCurrencySymbol
	}
	return c.Display.CurrencySymbol
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(c.Loans) == 0 {
		warnings = append(warnings, "configuration defines no loans")
	}

	seen := make(map[string]bool)
	for i, loan := range c.Loans {
		name := loan.DisplayName(i + 1)

		key := strings.ToLower(name)
		if seen[key] {
			warnings = append(warnings, fmt.Sprintf("Loan '%s' is defined more than once", name))
		}
		seen[key] = true

		if loan.InterestRate > 0 && loan.InterestRate < 1 {
			warnings = append(warnings, fmt.Sprintf("Loan '%s' has an interest rate of %.4f%% - rates are percentages, so a 6.09%% loan is written as 6.09", name, loan.InterestRate))
		}
		if loan.InterestRate > plausibleRateCeiling {
			warnings = append(warnings, fmt.Sprintf("Loan '%s' has an interest rate of %.2f%% - check whether this is intended", name, loan.InterestRate))
		}

		if loan.Principal > 0 && loan.ExtraMonthlyPayment >= loan.Principal {
			warnings = append(warnings, fmt.Sprintf("Loan '%s' has an extra payment at or above its principal - it will be paid off in the first month", name))
		}

		if loan.StartDate != "" {
			if _, err := time.Parse(DateTimeLayout, loan.StartDate); err != nil {
				warnings = append(warnings, fmt.Sprintf("Loan '%s' has an unparseable start date %q - the payoff date will be omitted", name, loan.StartDate))
			}
		}
	}

	return warnings
}
