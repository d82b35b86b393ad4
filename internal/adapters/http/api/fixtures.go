package api

import (
	"net/http"
)

// FixturesHandler serves the static reference data and palette.
type FixturesHandler struct {
	deps Dependencies
	rs   responder
}

// NewFixturesHandler creates a new fixtures handler.
func NewFixturesHandler(deps Dependencies, rs responder) *FixturesHandler {
	return &FixturesHandler{deps: deps, rs: rs}
}

// HandleFixtures handles GET /api/fixtures requests.
func (h *FixturesHandler) HandleFixtures(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_fixtures"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	f, err := h.deps.Fixtures(r.Context())
	if err != nil {
		h.rs.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}
