package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/all-in69/LEASE/internal/lease"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		config    Configuration
		wantError string
	}{
		{
			name: "Valid configuration",
			config: Configuration{
				Output: OutputConfig{Format: "pretty"},
				Quotes: []QuoteRequest{
					{Name: "rate", VehicleValue: 100000, TermMonths: 36},
					{Name: "value", Mode: "value", MonthlyPayment: 1500, TermMonths: 36,
						DownPayment: PortionConfig{Type: "amount", Value: 5000}},
				},
			},
		},
		{
			name:   "Empty configuration",
			config: Configuration{},
		},
		{
			name:      "Invalid output format",
			config:    Configuration{Output: OutputConfig{Format: "xml"}},
			wantError: "output format",
		},
		{
			name:      "Invalid rounding mode",
			config:    Configuration{Calculation: CalculationConfig{Rounding: "up"}},
			wantError: "rounding",
		},
		{
			name: "Invalid quote mode",
			config: Configuration{Quotes: []QuoteRequest{
				{Name: "lease", Mode: "lease"},
			}},
			wantError: "quote 1 (lease)",
		},
		{
			name: "Invalid price type reported with positional name",
			config: Configuration{Quotes: []QuoteRequest{
				{VehicleValue: 1000, TermMonths: 12},
				{PriceType: "retail", VehicleValue: 1000, TermMonths: 12},
			}},
			wantError: "quote 2 (quote 2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantError == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantError)
			}
			if !strings.Contains(err.Error(), tt.wantError) {
				t.Errorf("Validate() error = %q, expected it to contain %q", err.Error(), tt.wantError)
			}
		})
	}
}

func TestValidateUnknownPortionType(t *testing.T) {
	conf := Configuration{Quotes: []QuoteRequest{{
		Name:        "odd",
		Mode:        "value",
		DownPayment: PortionConfig{Type: "share", Value: 10},
	}}}

	err := conf.Validate()
	if !errors.Is(err, lease.ErrUnknownPortion) {
		t.Errorf("expected ErrUnknownPortion, got %v", err)
	}
}

func TestValidateConfiguration(t *testing.T) {
	negative := -1.0
	high := 150.0

	tests := []struct {
		name     string
		config   Configuration
		expected []string
	}{
		{
			name:     "No quotes",
			config:   Configuration{},
			expected: []string{"No quotes configured"},
		},
		{
			name: "Clean configuration",
			config: Configuration{Quotes: []QuoteRequest{
				{Name: "sedan", VehicleValue: 100000, TermMonths: 36,
					DownPayment: PortionConfig{Value: 20}, Residual: PortionConfig{Value: 30}},
			}},
		},
		{
			name: "Duplicate names",
			config: Configuration{Quotes: []QuoteRequest{
				{Name: "sedan", TermMonths: 36},
				{Name: "sedan", TermMonths: 36},
			}},
			expected: []string{"Quote name 'sedan' is used more than once"},
		},
		{
			name: "Term and percentage warnings",
			config: Configuration{Quotes: []QuoteRequest{
				{Name: "odd", TermMonths: 0,
					DownPayment: PortionConfig{Value: 70}, Residual: PortionConfig{Value: 40}},
			}},
			expected: []string{
				"Quote 'odd' has a term of 0 months and will fail",
				"Quote 'odd' down payment and residual add up to 110% of the vehicle value (> 100%)",
			},
		},
		{
			name: "Amount portions skip percentage checks",
			config: Configuration{Quotes: []QuoteRequest{
				{Name: "van", Mode: "value", TermMonths: 36,
					DownPayment: PortionConfig{Type: "amount", Value: 250000},
					Residual:    PortionConfig{Type: "amount", Value: 90000}},
			}},
		},
		{
			name: "Rate warnings",
			config: Configuration{
				Calculation: CalculationConfig{VATRate: &high, TaxRate: &negative},
				Quotes:      []QuoteRequest{{Name: "sedan", TermMonths: 36}},
			},
			expected: []string{
				"calculation.vatRate is 150%, outside the usual 0-100% range",
				"calculation.taxRate is -1%, outside the usual 0-100% range",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := tt.config.ValidateConfiguration()
			if len(warnings) != len(tt.expected) {
				t.Fatalf("ValidateConfiguration() = %v, expected %v", warnings, tt.expected)
			}
			for i := range warnings {
				if warnings[i] != tt.expected[i] {
					t.Errorf("warning %d = %q, expected %q", i, warnings[i], tt.expected[i])
				}
			}
		})
	}
}
