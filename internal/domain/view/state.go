// Package view models the dashboard's interactive state: region selection,
// rating band, sort column and selected plan. All transitions are pure
// functions returning a new State.
package view

import (
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/plan"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/query"
)

// Sort is the active sort column and direction.
type Sort struct {
	Key       plan.Field      `json:"key"`
	Direction query.Direction `json:"direction"`
}

// State is the dashboard view state. SelectedPlanID 0 means no selection.
type State struct {
	Region         plan.Region `json:"region,omitempty"`
	Band           query.Band  `json:"rating"`
	Sort           Sort        `json:"sort"`
	SelectedPlanID int         `json:"selected_plan_id,omitempty"`
}

// Initial returns the state every reload starts from.
func Initial() State {
	return State{
		Region: plan.RegionNone,
		Band:   query.BandAll,
		Sort:   Sort{Key: plan.FieldOverallRating, Direction: query.Descending},
	}
}

// Query derives the engine query for s. The region doubles as the summary
// scope.
func (s State) Query() query.Query {
	return query.Query{
		Region:    s.Region,
		Band:      s.Band,
		SortKey:   s.Sort.Key,
		Direction: s.Sort.Direction,
	}
}

// Scope returns the summary scope for s.
func (s State) Scope() plan.Region {
	return s.Region
}

// Normalize fills zero-valued sort fields with their initial values, so a
// client may send a partial state.
func (s State) Normalize() State {
	if s.Sort.Key == "" {
		s.Sort.Key = plan.FieldOverallRating
	}
	if s.Sort.Direction == "" {
		s.Sort.Direction = query.Descending
	}
	return s
}

// Validate checks that every field is drawn from its enumeration.
func (s State) Validate() error {
	if err := s.Query().Validate(); err != nil {
		return err
	}
	if s.SelectedPlanID < 0 {
		return invalidAction("negative plan id")
	}
	return nil
}

// ToggleRegion selects r, or clears the selection when r is already active.
// Selecting a different region replaces the current one.
func ToggleRegion(s State, r plan.Region) State {
	if s.Region == r {
		s.Region = plan.RegionNone
		return s
	}
	s.Region = r
	return s
}

// ClearRegion removes the region filter and scope.
func ClearRegion(s State) State {
	s.Region = plan.RegionNone
	return s
}

// SetBand replaces the rating-band filter.
func SetBand(s State, b query.Band) State {
	s.Band = b
	return s
}

// ToggleSort flips the direction when key is already the sort column;
// otherwise it switches to key sorted descending.
func ToggleSort(s State, key plan.Field) State {
	if s.Sort.Key == key {
		s.Sort.Direction = s.Sort.Direction.Flip()
		return s
	}
	s.Sort = Sort{Key: key, Direction: query.Descending}
	return s
}

// SelectPlan marks a plan for the breakdown view. Selecting the same plan
// again keeps it selected.
func SelectPlan(s State, id int) State {
	s.SelectedPlanID = id
	return s
}

// ClearSelection removes the selected plan.
func ClearSelection(s State) State {
	s.SelectedPlanID = 0
	return s
}
