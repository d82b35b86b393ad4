// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/adapters/repository"
	service "github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/app"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/plan"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/query"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/view"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/pkg/logger"
)

// Dependencies required by HTTP handlers. The service satisfies it; tests
// can substitute their own.
type Dependencies interface {
	ParseQuery(region, band, sortKey, direction string) (query.Query, error)
	Plans(ctx context.Context, q query.Query) ([]plan.Record, error)
	Summary(ctx context.Context, region plan.Region) (query.Summary, error)
	Plan(ctx context.Context, id int) (Detail, error)

	Initial() view.State
	Snapshot(ctx context.Context, st view.State) (Snapshot, error)
	Apply(ctx context.Context, st view.State, a view.Action) (Snapshot, error)
	Fixtures(ctx context.Context) (Fixtures, error)
}

// Read shapes returned by the service.
type (
	Detail   = service.Detail
	Snapshot = service.Snapshot
	Fixtures = service.Fixtures
)

// Server wires HTTP routes for the dashboard API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	plansHandler    *PlansHandler
	summaryHandler  *SummaryHandler
	viewHandler     *ViewHandler
	fixturesHandler *FixturesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, log logger.Logger) *Server {
	rs := responder{log: log}
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		plansHandler:    NewPlansHandler(deps, rs),
		summaryHandler:  NewSummaryHandler(deps, rs),
		viewHandler:     NewViewHandler(deps, rs),
		fixturesHandler: NewFixturesHandler(deps, rs),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/plans", MetricsMiddleware(s.plansHandler.HandleList, "plans"))
	mux.HandleFunc("/api/plans/", MetricsMiddleware(s.plansHandler.HandleGet, "plan"))
	mux.HandleFunc("/api/summary", MetricsMiddleware(s.summaryHandler.HandleSummary, "summary"))
	mux.HandleFunc("/api/view", MetricsMiddleware(s.viewHandler.HandleView, "view"))
	mux.HandleFunc("/api/fixtures", MetricsMiddleware(s.fixturesHandler.HandleFixtures, "fixtures"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// classify maps domain errors onto a status and envelope code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, query.ErrInvalidQuery),
		errors.Is(err, view.ErrInvalidAction),
		errors.Is(err, plan.ErrUnknownValue):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrNotFound), errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "unavailable"
	}
	return http.StatusInternalServerError, "internal_error"
}

// responder writes classified error envelopes and logs them.
type responder struct {
	log logger.Logger
}

func (rs responder) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, code := classify(err)
	if rs.log != nil {
		if status >= http.StatusInternalServerError {
			rs.log.Error(r.Context(), "request failed", logger.String("op", op), logger.Error(err))
		} else {
			rs.log.Debug(r.Context(), "request rejected", logger.String("op", op), logger.Int("status", status), logger.Error(err))
		}
	}
	if status >= http.StatusInternalServerError {
		err = Wrap(op, err)
	}
	writeError(w, status, code, err)
}
