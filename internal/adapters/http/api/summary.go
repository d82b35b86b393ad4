package api

import (
	"errors"
	"net/http"

	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/plan"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/query"
)

// SummaryHandler serves the region-scoped summary metrics.
type SummaryHandler struct {
	deps Dependencies
	rs   responder
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(deps Dependencies, rs responder) *SummaryHandler {
	return &SummaryHandler{deps: deps, rs: rs}
}

// HandleSummary handles GET /api/summary?region= requests. An empty scope
// answers 200 with no_data set.
func (h *SummaryHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_summary"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	region, err := plan.ParseRegion(r.URL.Query().Get("region"))
	if err != nil {
		h.rs.fail(w, r, op, WrapKind(op, ErrBadRequest, err))
		return
	}
	sum, err := h.deps.Summary(r.Context(), region)
	if err != nil && !errors.Is(err, query.ErrNoData) {
		h.rs.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
