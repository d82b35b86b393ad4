// Package repository holds the immutable plan dataset and the static
// reference fixtures rendered alongside it.
package repository

import (
	"context"

	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/plan"
)

// TrendPoint is one year of the historical average-rating series.
type TrendPoint struct {
	Year     string                  `json:"year" yaml:"year"`
	National float64                 `json:"national" yaml:"national"`
	ByRegion map[plan.Region]float64 `json:"by_region" yaml:"by_region"`
}

// RegionalRollup is a published per-region summary row.
type RegionalRollup struct {
	Region          plan.Region `json:"region" yaml:"region"`
	AvgRating       float64     `json:"avg_rating" yaml:"avg_rating"`
	PlanCount       int         `json:"plan_count" yaml:"plan_count"`
	TopPerformer    string      `json:"top_performer" yaml:"top_performer"`
	TotalEnrollment int         `json:"total_enrollment" yaml:"total_enrollment"`
}

// DistributionBucket counts plans within a star range.
type DistributionBucket struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// Dataset is the decoded fixture document.
type Dataset struct {
	PlanYear     string               `json:"plan_year" yaml:"plan_year"`
	Published    string               `json:"published" yaml:"published"`
	Plans        []plan.Record        `json:"plans" yaml:"plans"`
	Trends       []TrendPoint         `json:"trends" yaml:"trends"`
	Regions      []RegionalRollup     `json:"regions" yaml:"regions"`
	Distribution []DistributionBucket `json:"distribution" yaml:"distribution"`
}

// Store provides read access to the fixed dataset. Every method returns
// copies; callers may modify results freely.
type Store interface {
	// Plans returns every plan in fixture order.
	Plans(ctx context.Context) []plan.Record

	// Plan returns one plan by id or ErrNotFound.
	Plan(ctx context.Context, id int) (plan.Record, error)

	// Trends returns the historical rating series.
	Trends(ctx context.Context) []TrendPoint

	// Regions returns the published regional rollups.
	Regions(ctx context.Context) []RegionalRollup

	// Distribution returns the rating distribution buckets.
	Distribution(ctx context.Context) []DistributionBucket

	// PlanYear returns the plan year label of the dataset.
	PlanYear(ctx context.Context) string

	// Published returns the publication date label, empty when unset.
	Published(ctx context.Context) string

	// Count returns the number of plans.
	Count(ctx context.Context) int
}
