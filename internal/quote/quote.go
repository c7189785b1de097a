// Package quote runs quote requests through the lease engine and collects the
// results, converting between gross and net prices and adding the optional
// tax shield.
package quote

import (
	"fmt"

	"github.com/all-in69/LEASE/internal/config"
	"github.com/all-in69/LEASE/internal/lease"
	"github.com/all-in69/LEASE/pkg/constants"
	"github.com/all-in69/LEASE/pkg/mathutil"
	"github.com/all-in69/LEASE/pkg/vat"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Quote is the outcome of one request. Exactly one of Rate, Value and Err is set.
type Quote struct {
	ID    string
	Name  string
	Mode  string
	Rate  *RateResult
	Value *ValueResult
	Err   error
}

// Failed reports whether the quote could not be computed.
func (q Quote) Failed() bool {
	return q.Err != nil
}

// RateResult is a computed monthly payment.
type RateResult struct {
	Terms               lease.ContractTerms
	VehicleValueGross   float64
	MonthlyPaymentNet   float64
	MonthlyPaymentGross float64
	Breakdown           lease.CostBreakdown
	TaxRate             float64
	// TaxShield is nil when the tax rate is not positive.
	TaxShield *float64
}

// ValueResult is a computed maximum vehicle value.
type ValueResult struct {
	Terms              lease.InverseTerms
	TargetPaymentGross float64
	VehicleValueNet    float64
	VehicleValueGross  float64
	Affordable         bool
}

// Service computes quotes with a fixed set of calculation defaults.
type Service struct {
	logger   *zap.Logger
	calc     lease.Calculator
	defaults config.Defaults
}

// NewService creates a Service. A nil logger disables logging.
func NewService(logger *zap.Logger, defaults config.Defaults) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		logger:   logger,
		calc:     lease.NewCalculator(defaults.Rounding),
		defaults: defaults,
	}
}

// Defaults returns the calculation defaults of the service.
func (s *Service) Defaults() config.Defaults {
	return s.defaults
}

// Run computes one quote. Failures are recorded in the returned Quote.
func (s *Service) Run(index int, req config.QuoteRequest) Quote {
	q := Quote{
		ID:   uuid.NewString(),
		Name: req.DisplayName(index),
		Mode: req.NormalizedMode(),
	}

	if err := req.Validate(); err != nil {
		q.Err = err
	} else {
		switch q.Mode {
		case constants.ModeRate:
			result, err := s.Rate(req)
			if err != nil {
				q.Err = err
			} else {
				q.Rate = &result
			}
		case constants.ModeValue:
			result, err := s.Value(req)
			if err != nil {
				q.Err = err
			} else {
				q.Value = &result
			}
		}
	}

	if q.Err != nil {
		s.logger.Warn(fmt.Sprintf("quote %s failed", q.Name),
			zap.String("op", "quote.Run"),
			zap.String("id", q.ID),
			zap.String("mode", q.Mode),
			zap.Error(q.Err),
		)
	}
	return q
}

// Rate computes the monthly payment for a rate-mode request.
func (s *Service) Rate(req config.QuoteRequest) (RateResult, error) {
	terms, err := req.ContractTerms(s.defaults)
	if err != nil {
		return RateResult{}, err
	}

	forward, err := s.calc.ForwardRate(terms)
	if err != nil {
		return RateResult{}, err
	}

	result := RateResult{
		Terms:               terms,
		VehicleValueGross:   s.gross(terms.VehicleValue),
		MonthlyPaymentNet:   forward.MonthlyPaymentNet,
		MonthlyPaymentGross: s.gross(forward.MonthlyPaymentNet),
		Breakdown:           forward.Breakdown,
		TaxRate:             req.EffectiveTaxRate(s.defaults),
	}
	if result.TaxRate > 0 {
		shield := s.calc.TaxShield(forward.Breakdown, result.TaxRate)
		result.TaxShield = &shield
	}

	s.logger.Debug(fmt.Sprintf("computed monthly payment %.2f for vehicle value %.2f", result.MonthlyPaymentNet, terms.VehicleValue),
		zap.String("op", "quote.Rate"),
		zap.Int("termMonths", terms.TermMonths),
		zap.Float64("installmentsSum", result.Breakdown.InstallmentsSum),
	)
	return result, nil
}

// Value computes the maximum vehicle value for a value-mode request.
func (s *Service) Value(req config.QuoteRequest) (ValueResult, error) {
	terms, err := req.InverseTerms(s.defaults)
	if err != nil {
		return ValueResult{}, err
	}

	solution, err := s.calc.Solve(terms)
	if err != nil {
		return ValueResult{}, err
	}

	result := ValueResult{
		Terms:              terms,
		TargetPaymentGross: s.gross(terms.TargetPayment),
		VehicleValueNet:    solution.VehicleValue,
		VehicleValueGross:  s.gross(solution.VehicleValue),
		Affordable:         solution.Affordable,
	}

	s.logger.Debug(fmt.Sprintf("computed vehicle value %.2f for monthly payment %.2f", result.VehicleValueNet, terms.TargetPayment),
		zap.String("op", "quote.Value"),
		zap.Int("termMonths", terms.TermMonths),
		zap.String("downPayment", lease.DescribePortion(terms.DownPayment)),
		zap.String("residual", lease.DescribePortion(terms.Residual)),
		zap.Bool("affordable", result.Affordable),
	)
	return result, nil
}

func (s *Service) gross(net float64) float64 {
	return mathutil.RoundWithMode(vat.ToGross(net, s.defaults.VATRate), s.defaults.Rounding)
}

// GetQuotes runs every quote in the configuration. It fails only when the
// configuration itself is unusable; individual quote failures are returned in
// the results.
func GetQuotes(logger *zap.Logger, conf config.Configuration) ([]Quote, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	defaults, err := conf.Calculation.Resolve()
	if err != nil {
		return nil, err
	}

	service := NewService(logger, defaults)
	results := make([]Quote, 0, len(conf.Quotes))
	for i, req := range conf.Quotes {
		results = append(results, service.Run(i, req))
	}

	logger.Info(fmt.Sprintf("computed %d quotes", len(results)),
		zap.String("op", "quote.GetQuotes"),
		zap.String("rounding", defaults.Rounding.String()),
	)
	return results, nil
}
