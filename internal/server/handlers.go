package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/theirongolddev/endow/internal/model"
	"github.com/theirongolddev/endow/internal/pipeline"
	"github.com/theirongolddev/endow/internal/projection"

	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 16

// Options lists the form choices and fixed rates, for building a client form.
type Options struct {
	PledgePeriods    []int           `json:"pledge_periods"`
	Horizons         []int           `json:"horizons"`
	MaxHorizon       int             `json:"max_horizon"`
	DisbursementRate decimal.Decimal `json:"disbursement_rate"`
	AdminFeeRate     decimal.Decimal `json:"admin_fee_rate"`
	Variants         []VariantOption `json:"variants"`
	Defaults         model.Params    `json:"defaults"`
}

// VariantOption describes one selectable recurrence.
type VariantOption struct {
	ID    model.Variant `json:"id"`
	Label string        `json:"label"`
}

// projectionRequest is the POST body. Amounts may be JSON strings or numbers;
// omitted fields keep the calculator defaults.
type projectionRequest struct {
	AnnualContribution decimal.Decimal `json:"annual_contribution"`
	PledgePeriod       int             `json:"pledge_period"`
	ROIRate            decimal.Decimal `json:"roi_rate"`
	Horizon            int             `json:"horizon"`
	Variant            string          `json:"variant"`
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Options{
		PledgePeriods:    pipeline.PledgePeriodChoices,
		Horizons:         pipeline.HorizonChoices,
		MaxHorizon:       s.cfg.MaxHorizon,
		DisbursementRate: projection.DisbursementRate,
		AdminFeeRate:     projection.AdminFeeRate,
		Variants: []VariantOption{
			{ID: model.VariantDepositFirst, Label: model.VariantDepositFirst.Label()},
			{ID: model.VariantSeeded, Label: model.VariantSeeded.Label()},
		},
		Defaults: pipeline.DefaultParams(),
	})
}

func (s *Service) handleProjectionQuery(w http.ResponseWriter, r *http.Request) {
	p, err := paramsFromQuery(r.URL.Query())
	if err != nil {
		s.invalid(w, r, err)
		return
	}
	s.project(w, r, p)
}

func (s *Service) handleProjectionBody(w http.ResponseWriter, r *http.Request) {
	d := pipeline.DefaultParams()
	req := projectionRequest{
		AnnualContribution: d.AnnualContribution,
		PledgePeriod:       d.PledgePeriod,
		ROIRate:            d.ROIRate,
		Horizon:            d.Horizon,
		Variant:            string(d.Variant),
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.invalid(w, r, fmt.Errorf("%w: malformed JSON body: %v", projection.ErrInvalidInput, err))
		return
	}

	variant, err := projection.ParseVariant(req.Variant)
	if err != nil {
		s.invalid(w, r, err)
		return
	}
	s.project(w, r, model.Params{
		AnnualContribution: req.AnnualContribution,
		PledgePeriod:       req.PledgePeriod,
		ROIRate:            req.ROIRate,
		Horizon:            req.Horizon,
		Variant:            variant,
	})
}

func (s *Service) project(w http.ResponseWriter, r *http.Request, p model.Params) {
	if p.Horizon > s.cfg.MaxHorizon {
		s.invalid(w, r, fmt.Errorf("%w: horizon must be at most %d", projection.ErrInvalidInput, s.cfg.MaxHorizon))
		return
	}

	res, err := pipeline.Run(p)
	if err != nil {
		s.invalid(w, r, err)
		return
	}
	s.record(res)
	writeJSON(w, http.StatusOK, res)
}

func (s *Service) invalid(w http.ResponseWriter, r *http.Request, err error) {
	s.recordError(err)
	if errors.Is(err, projection.ErrInvalidInput) {
		s.logger.Debug("rejected projection request", slog.Any("error", err))
		writeProblem(w, r, http.StatusBadRequest, "Invalid projection input", err.Error())
		return
	}
	s.logger.Error("projection failed", slog.Any("error", err))
	writeProblem(w, r, http.StatusInternalServerError, "Projection failed", err.Error())
}

// paramsFromQuery reads projection inputs from URL parameters, coercing them
// the way the calculator form does. Missing parameters keep the defaults.
func paramsFromQuery(q url.Values) (model.Params, error) {
	p := pipeline.DefaultParams()

	if q.Has("annual_contribution") {
		p.AnnualContribution = pipeline.ParseAmount(q.Get("annual_contribution"))
	}
	if q.Has("roi_rate") {
		roi, err := pipeline.ParseRate(q.Get("roi_rate"))
		if err != nil {
			return p, err
		}
		p.ROIRate = roi
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"pledge_period", &p.PledgePeriod},
		{"horizon", &p.Horizon},
	}
	for _, f := range ints {
		if !q.Has(f.name) {
			continue
		}
		n, err := strconv.Atoi(q.Get(f.name))
		if err != nil {
			return p, fmt.Errorf("%w: %s must be a whole number", projection.ErrInvalidInput, f.name)
		}
		*f.dst = n
	}

	if q.Has("variant") {
		v, err := projection.ParseVariant(q.Get("variant"))
		if err != nil {
			return p, err
		}
		p.Variant = v
	}
	return p, nil
}
