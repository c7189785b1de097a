// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"

	"github.com/all-in69/LEASE/pkg/constants"
	"github.com/all-in69/LEASE/pkg/mathutil"
	"github.com/all-in69/LEASE/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for the lease calculator.
type Configuration struct {
	Logging     LoggingConfig     `yaml:"logging,omitempty"`
	Output      OutputConfig      `yaml:"output,omitempty"`
	Calculation CalculationConfig `yaml:"calculation,omitempty"`
	Quotes      []QuoteRequest    `yaml:"quotes,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// CalculationConfig holds the defaults shared by every quote. Unset rates fall
// back to the package constants; an explicit zero is kept.
type CalculationConfig struct {
	Rounding      string   `yaml:"rounding,omitempty"` // half-up, half-even
	VATRate       *float64 `yaml:"vatRate,omitempty"`
	TaxRate       *float64 `yaml:"taxRate,omitempty"`
	ReferenceRate *float64 `yaml:"referenceRate,omitempty"`
	Margin        *float64 `yaml:"margin,omitempty"`
}

// Defaults is a CalculationConfig with every value resolved.
type Defaults struct {
	Rounding      mathutil.RoundingMode
	VATRate       float64
	TaxRate       float64
	ReferenceRate float64
	Margin        float64
}

// Resolve fills unset values with the built-in defaults.
func (c CalculationConfig) Resolve() (Defaults, error) {
	rounding, err := mathutil.ParseRoundingMode(c.Rounding)
	if err != nil {
		return Defaults{}, err
	}
	return Defaults{
		Rounding:      rounding,
		VATRate:       valueOr(c.VATRate, constants.DefaultVATRate),
		TaxRate:       valueOr(c.TaxRate, constants.DefaultTaxRate),
		ReferenceRate: valueOr(c.ReferenceRate, constants.DefaultReferenceRate),
		Margin:        valueOr(c.Margin, constants.DefaultMargin),
	}, nil
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// Validate reports the first configuration error that makes the quotes
// impossible to run: unknown output format, rounding mode, quote mode, price
// type or portion type.
func (c *Configuration) Validate() error {
	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			return err
		}
	}
	if err := validation.ValidateRoundingMode(c.Calculation.Rounding); err != nil {
		return err
	}
	for i, quote := range c.Quotes {
		if err := quote.Validate(); err != nil {
			return fmt.Errorf("quote %d (%s): %w", i+1, quote.DisplayName(i), err)
		}
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Warnings cover values the calculation engine accepts but
// that are unlikely to be intended.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(c.Quotes) == 0 {
		warnings = append(warnings, "No quotes configured")
	}

	seen := make(map[string]struct{}, len(c.Quotes))
	for i, quote := range c.Quotes {
		name := quote.DisplayName(i)
		if _, dup := seen[name]; dup {
			warnings = append(warnings, fmt.Sprintf("Quote name '%s' is used more than once", name))
		}
		seen[name] = struct{}{}
		warnings = append(warnings, quote.warnings(name)...)
	}

	for _, rate := range []struct {
		label string
		value *float64
	}{
		{"calculation.vatRate", c.Calculation.VATRate},
		{"calculation.taxRate", c.Calculation.TaxRate},
	} {
		if rate.value == nil {
			continue
		}
		if w := validation.ValidatePercentage(rate.label, *rate.value); w != "" {
			warnings = append(warnings, w)
		}
	}

	return warnings
}
