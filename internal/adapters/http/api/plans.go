package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/plan"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/query"
)

// PlansHandler serves the filtered plan table and single plans.
type PlansHandler struct {
	deps Dependencies
	rs   responder
}

// NewPlansHandler creates a new plans handler.
func NewPlansHandler(deps Dependencies, rs responder) *PlansHandler {
	return &PlansHandler{deps: deps, rs: rs}
}

type plansResponse struct {
	Query query.Query   `json:"query"`
	Count int           `json:"count"`
	Plans []plan.Record `json:"plans"`
}

// HandleList handles GET /api/plans?region=&rating=&sort=&dir= requests.
func (h *PlansHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_plans"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	p := r.URL.Query()
	q, err := h.deps.ParseQuery(p.Get("region"), p.Get("rating"), p.Get("sort"), p.Get("dir"))
	if err != nil {
		h.rs.fail(w, r, op, err)
		return
	}
	plans, err := h.deps.Plans(r.Context(), q)
	if err != nil {
		h.rs.fail(w, r, op, err)
		return
	}
	if plans == nil {
		plans = []plan.Record{}
	}
	writeJSON(w, http.StatusOK, plansResponse{Query: q, Count: len(plans), Plans: plans})
}

// HandleGet handles GET /api/plans/{id} requests.
func (h *PlansHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_plan"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	raw := strings.TrimPrefix(r.URL.Path, "/api/plans/")
	if raw == "" || strings.Contains(raw, "/") {
		h.rs.fail(w, r, op, NewKind(op, ErrNotFound))
		return
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		h.rs.fail(w, r, op, NewKind(op, ErrBadRequest))
		return
	}
	d, err := h.deps.Plan(r.Context(), id)
	if err != nil {
		h.rs.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
