// Package plan contains the health-plan rating record and its enumerations.
package plan

import (
	"fmt"
	"strings"
)

// Rating bounds for every star dimension.
const (
	MinRating = 0.0
	MaxRating = 5.0
)

// Region is one of the four fixed census regions.
type Region string

// Known regions. The zero value means "no region" (national scope).
const (
	RegionNone      Region = ""
	RegionWest      Region = "West"
	RegionSouth     Region = "South"
	RegionMidwest   Region = "Midwest"
	RegionNortheast Region = "Northeast"
)

// Regions lists the known regions in map order.
func Regions() []Region {
	return []Region{RegionWest, RegionSouth, RegionMidwest, RegionNortheast}
}

// Valid reports whether r is one of the known regions.
func (r Region) Valid() bool {
	switch r {
	case RegionWest, RegionSouth, RegionMidwest, RegionNortheast:
		return true
	}
	return false
}

// Label returns the display name of the scope; the empty region is national.
func (r Region) Label() string {
	if r == RegionNone {
		return "National"
	}
	return string(r)
}

// ParseRegion converts user input into a Region. Empty input and "all" /
// "national" yield RegionNone.
func ParseRegion(s string) (Region, error) {
	v := strings.TrimSpace(s)
	switch strings.ToLower(v) {
	case "", "all", "national":
		return RegionNone, nil
	}
	for _, r := range Regions() {
		if strings.EqualFold(v, string(r)) {
			return r, nil
		}
	}
	return RegionNone, fmt.Errorf("%w: region %q", ErrUnknownValue, s)
}

// Trend is the year-over-year direction of a plan's overall rating.
type Trend string

// Known trends.
const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Valid reports whether t is a known trend.
func (t Trend) Valid() bool {
	return t == TrendUp || t == TrendDown || t == TrendStable
}

// Ordinal orders trends down < stable < up. This matches the byte order of
// the wire strings, so sorting by either gives the same result.
func (t Trend) Ordinal() int {
	switch t {
	case TrendDown:
		return 0
	case TrendStable:
		return 1
	case TrendUp:
		return 2
	}
	return -1
}

// ParseTrend converts user input into a Trend.
func ParseTrend(s string) (Trend, error) {
	t := Trend(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: trend %q", ErrUnknownValue, s)
	}
	return t, nil
}

// Record is one plan's published rating data for one plan year.
//
// OverallRating is sourced independently of the five other dimensions and
// is never reconciled with them.
type Record struct {
	ID               int     `json:"id" yaml:"id"`
	Name             string  `json:"name" yaml:"name"`
	State            string  `json:"state" yaml:"state"`
	Region           Region  `json:"region" yaml:"region"`
	OverallRating    float64 `json:"overall_rating" yaml:"overall_rating"`
	HealthServices   float64 `json:"health_services" yaml:"health_services"`
	DrugServices     float64 `json:"drug_services" yaml:"drug_services"`
	MemberExperience float64 `json:"member_experience" yaml:"member_experience"`
	Complaints       float64 `json:"complaints" yaml:"complaints"`
	CustomerService  float64 `json:"customer_service" yaml:"customer_service"`
	Enrollment       int     `json:"enrollment" yaml:"enrollment"`
	Trend            Trend   `json:"trend" yaml:"trend"`
	YoYChange        float64 `json:"yoy_change" yaml:"yoy_change"`
}

// IDs returns the identifiers of records in order.
func IDs(records []Record) []int {
	ids := make([]int, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}
