// Package lease implements the leasing calculation engine: the net monthly
// payment for a vehicle price (forward), the maximum vehicle price for a
// target payment (inverse), and a tax shield estimate.
//
// Interest is flat: it is charged on the full financed amount every month,
// while the principal net of the residual is amortized straight-line over the
// term. Every function is a pure function of its arguments.
package lease

import (
	"errors"
	"fmt"

	"github.com/all-in69/LEASE/pkg/constants"
	"github.com/all-in69/LEASE/pkg/mathutil"
)

var (
	// ErrInvalidTerm is returned when the lease term is not a positive number of months.
	ErrInvalidTerm = errors.New("lease term must be greater than zero")
	// ErrInvalidValue is returned when the vehicle value is not positive.
	ErrInvalidValue = errors.New("vehicle value must be greater than zero")
	// ErrUnknownPortion is returned for a down payment or residual that is
	// neither an Amount nor a Percent.
	ErrUnknownPortion = errors.New("unknown portion type")
)

// degenerateCoefficient absorbs float noise when percentage deductions cancel
// the coefficient exactly (e.g. a 100% down payment with no residual).
const degenerateCoefficient = 1e-12

// ContractTerms holds the inputs of a forward calculation. Percentages are
// expressed as 0-100.
type ContractTerms struct {
	VehicleValue     float64
	DownPaymentPct   float64
	TermMonths       int
	ResidualPct      float64
	MarginPct        float64
	ReferenceRatePct float64
}

// CostBreakdown splits the total cost of a lease into its parts.
type CostBreakdown struct {
	DownPaymentAmount float64
	InstallmentsSum   float64
	ResidualAmount    float64
}

// Total is the sum of all parts of the breakdown.
func (b CostBreakdown) Total() float64 {
	return b.DownPaymentAmount + b.InstallmentsSum + b.ResidualAmount
}

// ForwardResult is the outcome of a forward calculation.
type ForwardResult struct {
	MonthlyPaymentNet float64
	Breakdown         CostBreakdown
}

// InverseTerms holds the inputs of an inverse calculation.
type InverseTerms struct {
	TargetPayment    float64
	DownPayment      Portion
	Residual         Portion
	TermMonths       int
	MarginPct        float64
	ReferenceRatePct float64
}

// Solution is the outcome of an inverse calculation. Affordable is false when
// the equation has no positive solution; VehicleValue is then 0 if the
// equation was degenerate.
type Solution struct {
	VehicleValue float64
	Affordable   bool
}

// Calculator runs the lease formulas and rounds every monetary output to
// cents with its rounding mode. The zero value rounds half away from zero.
type Calculator struct {
	rounding mathutil.RoundingMode
}

// NewCalculator creates a Calculator using the given rounding mode.
func NewCalculator(rounding mathutil.RoundingMode) Calculator {
	return Calculator{rounding: rounding}
}

// Rounding returns the calculator's rounding mode.
func (c Calculator) Rounding() mathutil.RoundingMode {
	return c.rounding
}

func (c Calculator) round(val float64) float64 {
	return mathutil.RoundWithMode(val, c.rounding)
}

// AnnualRate combines the margin and the reference rate into an annual rate
// expressed as a fraction (2% + 5% -> 0.07).
func AnnualRate(marginPct, referenceRatePct float64) float64 {
	return mathutil.Fraction(referenceRatePct + marginPct)
}

// ForwardRate computes the net monthly payment and the cost breakdown for the
// given terms.
func (c Calculator) ForwardRate(terms ContractTerms) (ForwardResult, error) {
	if terms.TermMonths <= 0 {
		return ForwardResult{}, fmt.Errorf("%w: got %d months", ErrInvalidTerm, terms.TermMonths)
	}
	if terms.VehicleValue <= 0 {
		return ForwardResult{}, fmt.Errorf("%w: got %.2f", ErrInvalidValue, terms.VehicleValue)
	}

	months := float64(terms.TermMonths)
	downPayment := mathutil.ApplyPercentage(terms.VehicleValue, terms.DownPaymentPct)
	residual := mathutil.ApplyPercentage(terms.VehicleValue, terms.ResidualPct)
	financed := terms.VehicleValue - downPayment
	rate := AnnualRate(terms.MarginPct, terms.ReferenceRatePct)

	principal := (financed - residual) / months
	interest := financed * rate / constants.MonthsPerYear
	payment := principal + interest

	// The sum uses the unrounded payment; only outputs are rounded.
	installments := payment * months

	return ForwardResult{
		MonthlyPaymentNet: c.round(payment),
		Breakdown: CostBreakdown{
			DownPaymentAmount: c.round(downPayment),
			InstallmentsSum:   c.round(installments),
			ResidualAmount:    c.round(residual),
		},
	}, nil
}

// TaxShield estimates the tax saved by deducting the down payment and the
// installments at the given tax rate. The residual is not deductible. Rates
// are not validated: zero yields zero, a negative rate a negative result.
func (c Calculator) TaxShield(breakdown CostBreakdown, taxRatePct float64) float64 {
	deductible := breakdown.DownPaymentAmount + breakdown.InstallmentsSum
	return c.round(mathutil.ApplyPercentage(deductible, taxRatePct))
}

// InverseValue computes the maximum net vehicle value whose monthly payment
// equals the target payment. It returns 0 when no vehicle value can satisfy
// the terms because percentage deductions consume the whole coefficient.
func (c Calculator) InverseValue(terms InverseTerms) (float64, error) {
	solution, err := c.Solve(terms)
	if err != nil {
		return 0, err
	}
	return solution.VehicleValue, nil
}

// Solve is InverseValue with the affordability of the result made explicit.
func (c Calculator) Solve(terms InverseTerms) (Solution, error) {
	lhs, coefficient, err := linearForm(terms)
	if err != nil {
		return Solution{}, err
	}
	if coefficient <= degenerateCoefficient {
		return Solution{VehicleValue: 0, Affordable: false}, nil
	}

	value := c.round(lhs / coefficient)
	return Solution{VehicleValue: value, Affordable: value > 0}, nil
}

// linearForm rewrites the forward payment formula as lhs = coefficient * V
// where V is the unknown vehicle value. Fixed amounts move their known
// contribution to the left-hand side; percentages reduce the per-unit
// coefficient on the right.
func linearForm(terms InverseTerms) (lhs, coefficient float64, err error) {
	if terms.TermMonths <= 0 {
		return 0, 0, fmt.Errorf("%w: got %d months", ErrInvalidTerm, terms.TermMonths)
	}

	months := float64(terms.TermMonths)
	rate := AnnualRate(terms.MarginPct, terms.ReferenceRatePct)

	lhs = terms.TargetPayment
	coefficient = 1/months + rate/constants.MonthsPerYear

	switch dp := terms.DownPayment.(type) {
	case Amount:
		v := float64(dp)
		lhs += v/months + v*rate/constants.MonthsPerYear
	case Percent:
		share := mathutil.Fraction(float64(dp))
		coefficient -= share / months
		coefficient -= share * rate / constants.MonthsPerYear
	default:
		return 0, 0, fmt.Errorf("%w: down payment is %T", ErrUnknownPortion, terms.DownPayment)
	}

	switch res := terms.Residual.(type) {
	case Amount:
		lhs += float64(res) / months
	case Percent:
		coefficient -= mathutil.Fraction(float64(res)) / months
	default:
		return 0, 0, fmt.Errorf("%w: residual is %T", ErrUnknownPortion, terms.Residual)
	}

	return lhs, coefficient, nil
}

var defaultCalculator = Calculator{rounding: mathutil.HalfUp}

// ForwardRate computes the net monthly payment rounding half away from zero.
func ForwardRate(terms ContractTerms) (ForwardResult, error) {
	return defaultCalculator.ForwardRate(terms)
}

// TaxShield estimates the tax shield rounding half away from zero.
func TaxShield(breakdown CostBreakdown, taxRatePct float64) float64 {
	return defaultCalculator.TaxShield(breakdown, taxRatePct)
}

// InverseValue computes the maximum vehicle value rounding half away from zero.
func InverseValue(terms InverseTerms) (float64, error) {
	return defaultCalculator.InverseValue(terms)
}
