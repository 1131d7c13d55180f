// Package server provides the local HTTP JSON API for endowment projections.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/theirongolddev/endow/internal/model"
	"github.com/theirongolddev/endow/internal/pipeline"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/shopspring/decimal"
)

// Event records one projection served, kept in a bounded in-memory buffer.
type Event struct {
	ID           int64           `json:"id"`
	Timestamp    time.Time       `json:"timestamp"`
	Variant      model.Variant   `json:"variant"`
	Horizon      int             `json:"horizon"`
	FinalBalance decimal.Decimal `json:"final_balance"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	UptimeSec       int64     `json:"uptime_sec"`
	RequestCount    int64     `json:"request_count"`
	ProjectionCount int64     `json:"projection_count"`
	MaxHorizon      int       `json:"max_horizon"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
}

// Service serves projections over HTTP.
type Service struct {
	cfg    Config
	logger *slog.Logger

	mu              sync.RWMutex
	startedAt       time.Time
	requestCount    int64
	projectionCount int64
	lastError       string
	nextEventID     int64
	events          []Event
}

// New returns a service with the provided config. A nil logger discards.
func New(cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		cfg:       cfg.withDefaults(),
		logger:    logger,
		startedAt: time.Now(),
	}
}

// Config returns the effective configuration.
func (s *Service) Config() Config { return s.cfg }

// Handler builds the router with its middleware stack.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		s.logRequests,
		middleware.Recoverer,
		httprate.LimitByIP(s.cfg.RateLimit, time.Minute),
	)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/options", s.handleOptions)
		r.Get("/events", s.handleEvents)
		r.Get("/projection", s.handleProjectionQuery)
		r.Post("/projection", s.handleProjectionBody)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, r, http.StatusNotFound, "Not Found", "no such endpoint")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, r, http.StatusMethodNotAllowed, "Method Not Allowed", r.Method+" is not supported here")
	})
	return r
}

// Run serves HTTP until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.logger.Info("endow api listening", slog.String("addr", s.cfg.Addr), slog.Int("max_horizon", s.cfg.MaxHorizon))

	select {
	case <-ctx.Done():
		s.logger.Info("endow api shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("endow http server: %w", err)
	}
}

func (s *Service) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		s.mu.Lock()
		s.requestCount++
		s.mu.Unlock()

		next.ServeHTTP(ww, r)

		s.logger.Debug("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// record counts a projection and appends it to the event buffer.
func (s *Service) record(res *pipeline.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.projectionCount++
	s.nextEventID++
	s.events = append(s.events, Event{
		ID:           s.nextEventID,
		Timestamp:    time.Now(),
		Variant:      res.Params.Variant,
		Horizon:      res.Params.Horizon,
		FinalBalance: res.Summary.FinalBalance,
	})
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}
}

func (s *Service) recordError(err error) {
	s.mu.Lock()
	s.lastError = err.Error()
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		UptimeSec:       int64(time.Since(s.startedAt).Seconds()),
		RequestCount:    s.requestCount,
		ProjectionCount: s.projectionCount,
		MaxHorizon:      s.cfg.MaxHorizon,
		LastError:       s.lastError,
		EventCount:      len(s.events),
	}
}
