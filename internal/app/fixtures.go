package service

import (
	"context"

	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/adapters/repository"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/palette"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/plan"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/query"
)

// RegionTile is one region of the map with its fill color. HasData is false
// when the dataset carries no rollup for the region.
type RegionTile struct {
	Region          plan.Region `json:"region"`
	AvgRating       float64     `json:"avg_rating"`
	PlanCount       int         `json:"plan_count"`
	TopPerformer    string      `json:"top_performer"`
	TotalEnrollment int         `json:"total_enrollment"`
	HasData         bool        `json:"has_data"`
	Color           string      `json:"color"`
}

// DistributionSlice is a distribution bucket with its chart color.
type DistributionSlice struct {
	repository.DistributionBucket
	Color string `json:"color"`
}

// BandOption is one entry of the rating band selector.
type BandOption struct {
	Value query.Band `json:"value"`
	Label string     `json:"label"`
}

// Fixtures bundles the static reference data rendered around the plan table.
type Fixtures struct {
	PlanYear     string                  `json:"plan_year"`
	Published    string                  `json:"published,omitempty"`
	Trends       []repository.TrendPoint `json:"trends"`
	Regions      []RegionTile            `json:"regions"`
	Distribution []DistributionSlice     `json:"distribution"`
	Legend       []palette.Threshold     `json:"legend"`
	Bands        []BandOption            `json:"bands"`
	Columns      []plan.Column           `json:"columns"`
	Palette      palette.Palette         `json:"palette"`
}

// Fixtures returns the trend, regional and distribution fixtures colored by
// the palette.
func (s *Service) Fixtures(ctx context.Context) (Fixtures, error) {
	store, err := s.current()
	if err != nil {
		return Fixtures{}, err
	}

	rollups := make(map[plan.Region]repository.RegionalRollup)
	for _, r := range store.Regions(ctx) {
		rollups[r.Region] = r
	}

	f := Fixtures{
		PlanYear:  s.planYear,
		Published: store.Published(ctx),
		Trends:    store.Trends(ctx),
		Legend:    s.palette.RegionScale.Legend(),
		Columns:   plan.TableColumns(),
		Palette:   s.palette,
	}

	for _, region := range plan.Regions() {
		r, ok := rollups[region]
		f.Regions = append(f.Regions, RegionTile{
			Region:          region,
			AvgRating:       r.AvgRating,
			PlanCount:       r.PlanCount,
			TopPerformer:    r.TopPerformer,
			TotalEnrollment: r.TotalEnrollment,
			HasData:         ok,
			Color:           s.palette.RegionColor(r.AvgRating, ok),
		})
	}

	buckets := store.Distribution(ctx)
	f.Distribution = make([]DistributionSlice, len(buckets))
	for i, b := range buckets {
		f.Distribution[i] = DistributionSlice{DistributionBucket: b, Color: s.palette.DistributionColor(b.Key)}
	}

	for _, b := range query.Bands() {
		f.Bands = append(f.Bands, BandOption{Value: b, Label: b.Label()})
	}
	return f, nil
}
