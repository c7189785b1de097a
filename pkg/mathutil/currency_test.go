package mathutil

import (
	"math"
	"testing"
)

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round up at midpoint", 1.235, 1.24},
		{"Round down below midpoint", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative number round up", -1.235, -1.24},
		{"Negative number round down", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
		{"Very small positive", 0.001, 0.00},
		{"Very small negative", -0.001, 0.00},
		{"Exactly one cent", 0.01, 0.01},
		{"Nearly two cents", 0.019, 0.02},
		{"Large negative", -12345.678, -12345.68},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RoundWithMode(tt.input, HalfUp)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("RoundWithMode(%v, half-up) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestCalculatePercentage(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		total    float64
		expected float64
	}{
		{"50% of 100", 50.0, 100.0, 50.0},
		{"25% of 200", 50.0, 200.0, 25.0},
		{"100% of value", 100.0, 100.0, 100.0},
		{"More than 100%", 150.0, 100.0, 150.0},
		{"Zero value", 0.0, 100.0, 0.0},
		{"Zero total", 50.0, 0.0, 0.0},
		{"Both zero", 0.0, 0.0, 0.0},
		{"Negative value", -50.0, 100.0, -50.0},
		{"Negative total", 50.0, -100.0, -50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculatePercentage(tt.value, tt.total)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("CalculatePercentage(%v, %v) = %v, expected %v",
					tt.value, tt.total, result, tt.expected)
			}
		})
	}
}

func TestApplyPercentage(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		percentage float64
		expected   float64
	}{
		{"50% of 100", 100.0, 50.0, 50.0},
		{"25% of 200", 200.0, 25.0, 50.0},
		{"100% of value", 100.0, 100.0, 100.0},
		{"150% of value", 100.0, 150.0, 150.0},
		{"0% of value", 100.0, 0.0, 0.0},
		{"Percentage of zero", 0.0, 50.0, 0.0},
		{"Negative percentage", 100.0, -50.0, -50.0},
		{"Negative value", -100.0, 50.0, -50.0},
		{"Small percentage", 100.0, 1.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ApplyPercentage(tt.value, tt.percentage)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("ApplyPercentage(%v, %v) = %v, expected %v",
					tt.value, tt.percentage, result, tt.expected)
			}
		})
	}
}

func TestRoundWithMode(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		mode     RoundingMode
		expected float64
	}{
		{"Half up at odd midpoint", 1.235, HalfUp, 1.24},
		{"Half up at even midpoint", 1.225, HalfUp, 1.23},
		{"Half even at odd midpoint", 1.235, HalfEven, 1.24},
		{"Half even at even midpoint", 1.225, HalfEven, 1.22},
		{"Half even negative midpoint", -0.125, HalfEven, -0.12},
		{"Half up negative midpoint", -0.125, HalfUp, -0.13},
		{"Half even off midpoint", 1855.5555, HalfEven, 1855.56},
		{"Half up off midpoint", 1388.8888, HalfUp, 1388.89},
		{"Negative rounds to zero", -0.004, HalfUp, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RoundWithMode(tt.input, tt.mode)
			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("RoundWithMode(%v, %s) = %v, expected %v", tt.input, tt.mode, result, tt.expected)
			}
		})
	}
}

func TestRoundNegativeZero(t *testing.T) {
	for _, mode := range []RoundingMode{HalfUp, HalfEven} {
		if result := RoundWithMode(-0.001, mode); math.Signbit(result) {
			t.Errorf("RoundWithMode(-0.001, %s) should not return negative zero", mode)
		}
	}
}

func TestParseRoundingMode(t *testing.T) {
	tests := []struct {
		input     string
		expected  RoundingMode
		expectErr bool
	}{
		{"", HalfUp, false},
		{"half-up", HalfUp, false},
		{" HALF-UP ", HalfUp, false},
		{"half-even", HalfEven, false},
		{"bankers", HalfEven, false},
		{"truncate", HalfUp, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ParseRoundingMode(tt.input)
			if tt.expectErr {
				if err == nil {
					t.Fatalf("ParseRoundingMode(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRoundingMode(%q) unexpected error: %v", tt.input, err)
			}
			if mode != tt.expected {
				t.Errorf("ParseRoundingMode(%q) = %s, expected %s", tt.input, mode, tt.expected)
			}
		})
	}
}

func TestRoundingModeString(t *testing.T) {
	if HalfUp.String() != "half-up" {
		t.Errorf("HalfUp.String() = %s", HalfUp.String())
	}
	if HalfEven.String() != "half-even" {
		t.Errorf("HalfEven.String() = %s", HalfEven.String())
	}
	if RoundingMode(7).String() != "RoundingMode(7)" {
		t.Errorf("unknown mode String() = %s", RoundingMode(7).String())
	}
}

func TestFraction(t *testing.T) {
	if math.Abs(Fraction(20)-0.2) > 1e-12 {
		t.Errorf("Fraction(20) = %v, expected 0.2", Fraction(20))
	}
	if Fraction(0) != 0 {
		t.Errorf("Fraction(0) = %v, expected 0", Fraction(0))
	}
}

func TestRoundingEdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Very large number", 999999999.999, 1000000000.00},
		{"Very small number", 0.0001, 0.00},
		{"NaN passes through", math.NaN(), math.NaN()},
		{"Infinity passes through", math.Inf(1), math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RoundWithMode(tt.input, HalfUp)
			switch {
			case math.IsNaN(tt.expected):
				if !math.IsNaN(result) {
					t.Errorf("RoundWithMode(NaN) = %v, expected NaN", result)
				}
			case math.IsInf(tt.expected, 0):
				if result != tt.expected {
					t.Errorf("RoundWithMode(%v) = %v, expected %v", tt.input, result, tt.expected)
				}
			case math.Abs(result-tt.expected) > 0.001:
				t.Errorf("RoundWithMode(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}
