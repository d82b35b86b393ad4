package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/view"
)

const maxViewBody = 16 << 10

// ViewHandler applies dashboard interactions and returns snapshots.
type ViewHandler struct {
	deps Dependencies
	rs   responder
}

// NewViewHandler creates a new view handler.
func NewViewHandler(deps Dependencies, rs responder) *ViewHandler {
	return &ViewHandler{deps: deps, rs: rs}
}

// viewRequest is the body of POST /api/view. A missing state starts from
// the initial view; a missing action only recomputes the snapshot.
type viewRequest struct {
	State  *view.State  `json:"state"`
	Action *view.Action `json:"action"`
}

// HandleView handles GET /api/view (initial snapshot) and POST /api/view.
func (h *ViewHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	const op = "api.view"
	switch r.Method {
	case http.MethodGet:
		snap, err := h.deps.Snapshot(r.Context(), h.deps.Initial())
		if err != nil {
			h.rs.fail(w, r, op, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
		return
	case http.MethodPost:
	default:
		http.NotFound(w, r)
		return
	}

	var req viewRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxViewBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.rs.fail(w, r, op, WrapKind(op, ErrBadRequest, err))
		return
	}

	st := h.deps.Initial()
	if req.State != nil {
		st = *req.State
	}

	var (
		snap Snapshot
		err  error
	)
	if req.Action != nil {
		snap, err = h.deps.Apply(r.Context(), st, *req.Action)
	} else {
		snap, err = h.deps.Snapshot(r.Context(), st)
	}
	if err != nil {
		h.rs.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
