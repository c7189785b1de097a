package config

import (
	"fmt"
	"strings"

	"github.com/all-in69/LEASE/internal/lease"
	"github.com/all-in69/LEASE/pkg/constants"
	"github.com/all-in69/LEASE/pkg/mathutil"
	"github.com/all-in69/LEASE/pkg/validation"
	"github.com/all-in69/LEASE/pkg/vat"
)

// QuoteRequest describes one calculation to run. In rate mode VehicleValue is
// known and the monthly payment is computed; in value mode MonthlyPayment is
// the target and the vehicle value is computed.
type QuoteRequest struct {
	Name           string        `yaml:"name,omitempty"`
	Mode           string        `yaml:"mode,omitempty"`      // rate, value
	PriceType      string        `yaml:"priceType,omitempty"` // net, gross
	VehicleValue   float64       `yaml:"vehicleValue,omitempty"`
	MonthlyPayment float64       `yaml:"monthlyPayment,omitempty"`
	DownPayment    PortionConfig `yaml:"downPayment,omitempty"`
	Residual       PortionConfig `yaml:"residual,omitempty"`
	TermMonths     int           `yaml:"termMonths,omitempty"`
	Margin         *float64      `yaml:"margin,omitempty"`
	ReferenceRate  *float64      `yaml:"referenceRate,omitempty"`
	TaxRate        *float64      `yaml:"taxRate,omitempty"`
}

// PortionConfig is a down payment or residual as written in the config file.
// An empty Type means percent.
type PortionConfig struct {
	Type  string  `yaml:"type,omitempty"` // amount, percent
	Value float64 `yaml:"value,omitempty"`
}

// Portion converts the configured value into a lease.Portion.
func (p PortionConfig) Portion() (lease.Portion, error) {
	if strings.TrimSpace(p.Type) == "" {
		return lease.Percent(p.Value), nil
	}
	return lease.ParsePortion(p.Type, p.Value)
}

// PercentOf returns the portion as a percentage of base. An amount is
// converted against base, which must already be net; a zero base yields 0.
func (p PortionConfig) PercentOf(base float64) (float64, error) {
	portion, err := p.Portion()
	if err != nil {
		return 0, err
	}
	switch v := portion.(type) {
	case lease.Amount:
		return mathutil.CalculatePercentage(float64(v), base), nil
	case lease.Percent:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%w: %T", lease.ErrUnknownPortion, portion)
	}
}

// IsPercent reports whether the portion is expressed as a percentage.
func (p PortionConfig) IsPercent() bool {
	t := strings.ToLower(strings.TrimSpace(p.Type))
	return t == "" || t == lease.KindPercent
}

// NormalizedMode returns the quote mode, defaulting to rate.
func (q QuoteRequest) NormalizedMode() string {
	mode := strings.ToLower(strings.TrimSpace(q.Mode))
	if mode == "" {
		return constants.ModeRate
	}
	return mode
}

// DisplayName returns the quote name or a positional fallback.
func (q QuoteRequest) DisplayName(index int) string {
	if strings.TrimSpace(q.Name) != "" {
		return q.Name
	}
	return fmt.Sprintf("quote %d", index+1)
}

// Validate checks that the request can be turned into engine input. Domain
// rules (term and value must be positive) are left to the engine.
func (q QuoteRequest) Validate() error {
	switch q.NormalizedMode() {
	case constants.ModeRate, constants.ModeValue:
	default:
		return fmt.Errorf("expected mode of %s or %s, got %s", constants.ModeRate, constants.ModeValue, q.Mode)
	}
	if _, err := q.DownPayment.Portion(); err != nil {
		return fmt.Errorf("down payment: %w", err)
	}
	if _, err := q.Residual.Portion(); err != nil {
		return fmt.Errorf("residual: %w", err)
	}
	if _, err := vat.Normalize(0, q.PriceType, 0); err != nil {
		return err
	}
	return nil
}

// ContractTerms builds forward-calculation input. The vehicle value is
// converted to net using the VAT rate from defaults, and amount portions are
// turned into percentages of that net value.
func (q QuoteRequest) ContractTerms(d Defaults) (lease.ContractTerms, error) {
	value, err := vat.Normalize(q.VehicleValue, q.PriceType, d.VATRate)
	if err != nil {
		return lease.ContractTerms{}, err
	}
	downPaymentPct, err := q.DownPayment.PercentOf(value)
	if err != nil {
		return lease.ContractTerms{}, fmt.Errorf("down payment: %w", err)
	}
	residualPct, err := q.Residual.PercentOf(value)
	if err != nil {
		return lease.ContractTerms{}, fmt.Errorf("residual: %w", err)
	}
	return lease.ContractTerms{
		VehicleValue:     value,
		DownPaymentPct:   downPaymentPct,
		TermMonths:       q.TermMonths,
		ResidualPct:      residualPct,
		MarginPct:        valueOr(q.Margin, d.Margin),
		ReferenceRatePct: valueOr(q.ReferenceRate, d.ReferenceRate),
	}, nil
}

// InverseTerms builds inverse-calculation input. The target payment is
// converted to net using the VAT rate from defaults.
func (q QuoteRequest) InverseTerms(d Defaults) (lease.InverseTerms, error) {
	payment, err := vat.Normalize(q.MonthlyPayment, q.PriceType, d.VATRate)
	if err != nil {
		return lease.InverseTerms{}, err
	}
	downPayment, err := q.DownPayment.Portion()
	if err != nil {
		return lease.InverseTerms{}, fmt.Errorf("down payment: %w", err)
	}
	residual, err := q.Residual.Portion()
	if err != nil {
		return lease.InverseTerms{}, fmt.Errorf("residual: %w", err)
	}
	return lease.InverseTerms{
		TargetPayment:    payment,
		DownPayment:      downPayment,
		Residual:         residual,
		TermMonths:       q.TermMonths,
		MarginPct:        valueOr(q.Margin, d.Margin),
		ReferenceRatePct: valueOr(q.ReferenceRate, d.ReferenceRate),
	}, nil
}

// EffectiveTaxRate returns the quote's tax rate or the default one.
func (q QuoteRequest) EffectiveTaxRate(d Defaults) float64 {
	return valueOr(q.TaxRate, d.TaxRate)
}

func (q QuoteRequest) warnings(name string) []string {
	var warnings []string

	if w := validation.ValidateTerm(name, q.TermMonths); w != "" {
		warnings = append(warnings, w)
	}

	var percents []float64
	for _, p := range []struct {
		label   string
		portion PortionConfig
	}{
		{"down payment", q.DownPayment},
		{"residual", q.Residual},
	} {
		if !p.portion.IsPercent() {
			continue
		}
		if w := validation.ValidatePercentage(fmt.Sprintf("Quote '%s' %s", name, p.label), p.portion.Value); w != "" {
			warnings = append(warnings, w)
		}
		percents = append(percents, p.portion.Value)
	}
	if len(percents) == 2 {
		if w := validation.ValidatePortionShare(name, percents[0], percents[1]); w != "" {
			warnings = append(warnings, w)
		}
	}

	return warnings
}
