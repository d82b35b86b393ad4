package view

import (
	"errors"
	"fmt"

	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/plan"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/query"
)

// ErrInvalidAction is returned by Reduce for unknown kinds or bad payloads.
var ErrInvalidAction = errors.New("invalid view action")

// Kind identifies a user interaction.
type Kind string

// Supported interactions.
const (
	KindSelectRegion   Kind = "select_region"
	KindClearRegion    Kind = "clear_region"
	KindSetBand        Kind = "set_band"
	KindSort           Kind = "sort"
	KindSelectPlan     Kind = "select_plan"
	KindClearSelection Kind = "clear_selection"
	KindReset          Kind = "reset"
)

// Action is one user interaction. Only the payload field matching Kind is
// read: Region for select_region, Band for set_band, Column for sort and
// PlanID for select_plan.
type Action struct {
	Kind   Kind   `json:"kind"`
	Region string `json:"region,omitempty"`
	Band   string `json:"rating,omitempty"`
	Column string `json:"column,omitempty"`
	PlanID int    `json:"plan_id,omitempty"`
}

func invalidAction(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidAction, fmt.Sprintf(format, args...))
}

// Reduce applies a to s and returns the next state. s is not modified.
func Reduce(s State, a Action) (State, error) {
	switch a.Kind {
	case KindSelectRegion:
		r, err := plan.ParseRegion(a.Region)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrInvalidAction, err)
		}
		if r == plan.RegionNone {
			return s, invalidAction("select_region needs a region")
		}
		return ToggleRegion(s, r), nil

	case KindClearRegion:
		return ClearRegion(s), nil

	case KindSetBand:
		b, err := query.ParseBand(a.Band)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrInvalidAction, err)
		}
		return SetBand(s, b), nil

	case KindSort:
		f, err := plan.ParseField(a.Column)
		if err != nil {
			return s, fmt.Errorf("%w: %w", ErrInvalidAction, err)
		}
		return ToggleSort(s, f), nil

	case KindSelectPlan:
		if a.PlanID <= 0 {
			return s, invalidAction("select_plan needs a positive plan_id")
		}
		return SelectPlan(s, a.PlanID), nil

	case KindClearSelection:
		return ClearSelection(s), nil

	case KindReset:
		return Initial(), nil
	}
	return s, invalidAction("unknown kind %q", a.Kind)
}
