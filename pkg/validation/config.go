package validation

import (
	"fmt"
)

// ValidatePercentage returns a warning if a percentage lies outside 0-100.
// The calculation engine accepts such values, so this is advisory only.
func ValidatePercentage(label string, value float64) string {
	if value < 0 || value > 100 {
		return fmt.Sprintf("%s is %g%%, outside the usual 0-100%% range", label, value)
	}
	return ""
}

// ValidatePortionShare warns when the down payment and residual percentages
// together exceed the vehicle value.
func ValidatePortionShare(name string, downPaymentPct, residualPct float64) string {
	if downPaymentPct+residualPct > 100 {
		return fmt.Sprintf("Quote '%s' down payment and residual add up to %g%% of the vehicle value (> 100%%)",
			name, downPaymentPct+residualPct)
	}
	return ""
}

// ValidateTerm warns about a lease term the engine will reject.
func ValidateTerm(name string, termMonths int) string {
	if termMonths <= 0 {
		return fmt.Sprintf("Quote '%s' has a term of %d months and will fail", name, termMonths)
	}
	return ""
}
