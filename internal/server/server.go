// Package server exposes the lease calculations over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/all-in69/LEASE/internal/config"
	"github.com/all-in69/LEASE/internal/lease"
	"github.com/all-in69/LEASE/internal/quote"
	"github.com/all-in69/LEASE/pkg/constants"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type handler struct {
	logger      *zap.Logger
	service     *quote.Service
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the calculation API.
func NewHandler(logger *zap.Logger, service *quote.Service, cfg *Config, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		service:     service,
		maxBodySize: cfg.MaxBodyBytes(),
		version:     trimmedVersion,
	}
	if h.maxBodySize <= 0 {
		h.maxBodySize = constants.DefaultMaxBodyBytes
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)
	if timeout := cfg.RequestTimeoutDuration(); timeout > 0 {
		r.Use(middleware.Timeout(timeout))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/calculate_rate", h.handleCalculateRate)
		r.Post("/calculate_value", h.handleCalculateValue)
		r.Get("/version", h.handleVersion)
		r.Get("/health", h.handleHealth)
	})

	return r
}

func (h *handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Debug("request served",
			zap.String("op", "server.requestLogger"),
			zap.String("requestId", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// rateRequest takes the down payment and residual either as plain
// percentages or as portion objects; a portion object wins when both are set.
type rateRequest struct {
	VehicleValue     float64         `json:"vehicleValue"`
	PriceType        string          `json:"priceType"`
	DownPaymentPct   float64         `json:"downPaymentPct"`
	DownPayment      *portionPayload `json:"downPayment"`
	TermMonths       int             `json:"termMonths"`
	ResidualPct      float64         `json:"residualPct"`
	Residual         *portionPayload `json:"residual"`
	MarginPct        *float64        `json:"marginPct"`
	ReferenceRatePct *float64        `json:"referenceRatePct"`
	TaxRatePct       *float64        `json:"taxRatePct"`
}

type portionPayload struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

func (p *portionPayload) portionConfig(percent float64) config.PortionConfig {
	if p == nil {
		return config.PortionConfig{Type: lease.KindPercent, Value: percent}
	}
	return config.PortionConfig{Type: p.Type, Value: p.Value}
}

type valueRequest struct {
	MonthlyPayment   float64        `json:"monthlyPayment"`
	PriceType        string         `json:"priceType"`
	DownPayment      portionPayload `json:"downPayment"`
	Residual         portionPayload `json:"residual"`
	TermMonths       int            `json:"termMonths"`
	MarginPct        *float64       `json:"marginPct"`
	ReferenceRatePct *float64       `json:"referenceRatePct"`
}

type costBreakdown struct {
	DownPayment     float64 `json:"downPayment"`
	InstallmentsSum float64 `json:"installmentsSum"`
	Residual        float64 `json:"residual"`
	Total           float64 `json:"total"`
}

type rateResponse struct {
	ID                  string        `json:"id"`
	MonthlyPaymentNet   float64       `json:"monthlyPaymentNet"`
	MonthlyPaymentGross float64       `json:"monthlyPaymentGross"`
	CostBreakdown       costBreakdown `json:"costBreakdown"`
	TaxRatePct          float64       `json:"taxRatePct"`
	TaxShield           *float64      `json:"taxShield,omitempty"`
}

type valueResponse struct {
	ID                string  `json:"id"`
	VehicleValueNet   float64 `json:"vehicleValueNet"`
	VehicleValueGross float64 `json:"vehicleValueGross"`
	Affordable        bool    `json:"affordable"`
}

func (h *handler) handleCalculateRate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculateRate"

	var req rateRequest
	if !h.decode(w, r, &req, op) {
		return
	}

	result := h.service.Run(0, config.QuoteRequest{
		Mode:          constants.ModeRate,
		PriceType:     req.PriceType,
		VehicleValue:  req.VehicleValue,
		DownPayment:   req.DownPayment.portionConfig(req.DownPaymentPct),
		Residual:      req.Residual.portionConfig(req.ResidualPct),
		TermMonths:    req.TermMonths,
		Margin:        req.MarginPct,
		ReferenceRate: req.ReferenceRatePct,
		TaxRate:       req.TaxRatePct,
	})
	if result.Err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, result.Err.Error(), op)
		return
	}

	rate := result.Rate
	h.writeJSON(w, http.StatusOK, rateResponse{
		ID:                  result.ID,
		MonthlyPaymentNet:   rate.MonthlyPaymentNet,
		MonthlyPaymentGross: rate.MonthlyPaymentGross,
		CostBreakdown: costBreakdown{
			DownPayment:     rate.Breakdown.DownPaymentAmount,
			InstallmentsSum: rate.Breakdown.InstallmentsSum,
			Residual:        rate.Breakdown.ResidualAmount,
			Total:           rate.Breakdown.Total(),
		},
		TaxRatePct: rate.TaxRate,
		TaxShield:  rate.TaxShield,
	})
}

func (h *handler) handleCalculateValue(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculateValue"

	var req valueRequest
	if !h.decode(w, r, &req, op) {
		return
	}

	result := h.service.Run(0, config.QuoteRequest{
		Mode:           constants.ModeValue,
		PriceType:      req.PriceType,
		MonthlyPayment: req.MonthlyPayment,
		DownPayment:    config.PortionConfig{Type: req.DownPayment.Type, Value: req.DownPayment.Value},
		Residual:       config.PortionConfig{Type: req.Residual.Type, Value: req.Residual.Value},
		TermMonths:     req.TermMonths,
		Margin:         req.MarginPct,
		ReferenceRate:  req.ReferenceRatePct,
	})
	if result.Err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, result.Err.Error(), op)
		return
	}

	value := result.Value
	h.writeJSON(w, http.StatusOK, valueResponse{
		ID:                result.ID,
		VehicleValueNet:   value.VehicleValueNet,
		VehicleValueGross: value.VehicleValueGross,
		Affordable:        value.Affordable,
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// decode reads a JSON body into dst and writes the error response itself when
// it fails.
func (h *handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
			return false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Warn("calculation request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
