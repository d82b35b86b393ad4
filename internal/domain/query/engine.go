package query

import (
	"fmt"
	"math"
	"sort"

	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/plan"
)

// HighPerformerFloor is the overall rating at or above which a plan counts
// as a high performer.
const HighPerformerFloor = 4.0

// roundingGuard absorbs binary drift such as 4.35*10 == 43.4999...
const roundingGuard = 1e-9

// ApplyFilters returns the records matching q's region and band, ordered by
// q's sort key and direction. The result is a new slice; records is left
// untouched. The sort is stable, so records with equal keys keep their
// input order.
func ApplyFilters(records []plan.Record, q Query) []plan.Record {
	out := make([]plan.Record, 0, len(records))
	for _, r := range records {
		if q.Region != plan.RegionNone && r.Region != q.Region {
			continue
		}
		if !q.Band.Contains(r.OverallRating) {
			continue
		}
		out = append(out, r)
	}

	SortRecords(out, q.SortKey, q.Direction)
	return out
}

// SortRecords orders records in place by key. Descending puts the highest
// values first.
func SortRecords(records []plan.Record, key plan.Field, dir Direction) {
	sort.SliceStable(records, func(i, j int) bool {
		c := plan.Compare(records[i], records[j], key)
		if dir == Ascending {
			return c < 0
		}
		return c > 0
	})
}

// Summary aggregates the plans within one region scope.
type Summary struct {
	Scope           plan.Region `json:"scope,omitempty"`
	ScopeLabel      string      `json:"scope_label"`
	PlanCount       int         `json:"plan_count"`
	AvgRating       float64     `json:"avg_rating"`
	TotalEnrollment int         `json:"total_enrollment"`
	HighPerformers  int         `json:"high_performers"`
	ImprovingPlans  int         `json:"improving_plans"`
	NoData          bool        `json:"no_data"`
}

// Summarize computes the summary metrics for scope. The band filter is not an
// input: the summary always covers every plan in the region (or every plan
// when scope is RegionNone).
//
// An empty scope returns ErrNoData together with a Summary whose NoData flag
// is set and whose numeric fields are zero.
func Summarize(records []plan.Record, scope plan.Region) (Summary, error) {
	s := Summary{Scope: scope, ScopeLabel: scope.Label()}

	var ratingSum float64
	for _, r := range records {
		if scope != plan.RegionNone && r.Region != scope {
			continue
		}
		s.PlanCount++
		ratingSum += r.OverallRating
		s.TotalEnrollment += r.Enrollment
		if r.OverallRating >= HighPerformerFloor {
			s.HighPerformers++
		}
		if r.Trend == plan.TrendUp {
			s.ImprovingPlans++
		}
	}

	if s.PlanCount == 0 {
		s.NoData = true
		return s, fmt.Errorf("%w: %s", ErrNoData, scope.Label())
	}

	s.AvgRating = RoundHalfUp(ratingSum/float64(s.PlanCount), 1)
	return s, nil
}

// RoundHalfUp rounds v to the given number of decimal places, with ties
// rounded toward positive infinity.
func RoundHalfUp(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Floor(v*scale+0.5+roundingGuard) / scale
}
