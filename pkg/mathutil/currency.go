// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"fmt"
	"math"
	"strings"

	"github.com/all-in69/LEASE/pkg/constants"
	"github.com/shopspring/decimal"
)

// RoundingMode selects how a currency amount exactly halfway between two
// cents is resolved.
type RoundingMode int

const (
	// HalfUp rounds half away from zero (1.235 -> 1.24, -1.235 -> -1.24).
	HalfUp RoundingMode = iota
	// HalfEven rounds half to the even cent (1.225 -> 1.22, 1.235 -> 1.24).
	HalfEven
)

// String returns the configuration name of the mode.
func (m RoundingMode) String() string {
	switch m {
	case HalfUp:
		return constants.RoundingHalfUp
	case HalfEven:
		return constants.RoundingHalfEven
	default:
		return fmt.Sprintf("RoundingMode(%d)", int(m))
	}
}

// ParseRoundingMode converts a configuration value into a RoundingMode. An
// empty value selects HalfUp.
func ParseRoundingMode(value string) (RoundingMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", constants.RoundingHalfUp:
		return HalfUp, nil
	case constants.RoundingHalfEven, "bankers":
		return HalfEven, nil
	default:
		return HalfUp, fmt.Errorf("expected rounding mode of %s or %s, got %s",
			constants.RoundingHalfUp, constants.RoundingHalfEven, value)
	}
}

// RoundWithMode rounds a value to two decimals using the given mode. The value
// is converted through its shortest decimal representation so that 1.235 is
// treated as exactly halfway rather than as its binary approximation.
func RoundWithMode(val float64, mode RoundingMode) float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return val
	}
	d := decimal.NewFromFloat(val)
	if mode == HalfEven {
		d = d.RoundBank(constants.DecimalPlaces)
	} else {
		d = d.Round(constants.DecimalPlaces)
	}
	rounded := d.InexactFloat64()
	if rounded == 0 {
		// normalise -0
		return 0
	}
	return rounded
}

// CalculatePercentage calculates what percentage value is of total. A zero
// total yields 0.
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}

// Fraction converts a percentage (e.g. 20) into a fraction (0.2).
func Fraction(percentage float64) float64 {
	return percentage / constants.PercentageMultiplier
}
