package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/plan"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/pkg/metrics"
)

// FixtureStore is a Store backed by a YAML document decoded once at
// construction. It is safe for concurrent use because nothing mutates the
// decoded data after NewFixtureStore returns.
type FixtureStore struct {
	path string
	doc  []byte

	data Dataset
	byID map[int]int // plan id -> index into data.Plans
}

// NewFixtureStore decodes and validates the dataset. Without options it
// uses the embedded fixture.
func NewFixtureStore(_ context.Context, opts ...Option) (*FixtureStore, error) {
	s := &FixtureStore{}
	for _, opt := range opts {
		opt(s)
	}

	start := time.Now()

	doc := s.doc
	if s.path != "" {
		b, err := os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("read dataset %s: %w", s.path, err)
		}
		doc = b
	}
	if doc == nil {
		doc = embeddedDataset
	}

	data, err := decodeDataset(doc)
	if err != nil {
		return nil, err
	}
	byID, err := validateDataset(data)
	if err != nil {
		return nil, err
	}

	s.data = data
	s.byID = byID

	metrics.RecordDatasetLoadDuration(float64(time.Since(start).Microseconds()) / 1000)
	metrics.UpdateDatasetPlans(len(data.Plans))
	return s, nil
}

func decodeDataset(doc []byte) (Dataset, error) {
	var data Dataset
	dec := yaml.NewDecoder(bytes.NewReader(doc))
	dec.KnownFields(true)
	if err := dec.Decode(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return Dataset{}, fmt.Errorf("%w: empty document", ErrInvalidDataset)
		}
		return Dataset{}, fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}
	return data, nil
}

func validateDataset(data Dataset) (map[int]int, error) {
	byID := make(map[int]int, len(data.Plans))
	for i, r := range data.Plans {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDataset, err)
		}
		if _, dup := byID[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate plan id %d", ErrInvalidDataset, r.ID)
		}
		byID[r.ID] = i
	}
	for _, t := range data.Trends {
		for r := range t.ByRegion {
			if !r.Valid() {
				return nil, fmt.Errorf("%w: trend %s has unknown region %q", ErrInvalidDataset, t.Year, r)
			}
		}
	}
	for _, r := range data.Regions {
		if !r.Region.Valid() {
			return nil, fmt.Errorf("%w: regional rollup for unknown region %q", ErrInvalidDataset, r.Region)
		}
	}
	return byID, nil
}

// Plans returns every plan in fixture order.
func (s *FixtureStore) Plans(_ context.Context) []plan.Record {
	defer observeRead(time.Now())
	return append([]plan.Record(nil), s.data.Plans...)
}

// Plan returns one plan by id.
func (s *FixtureStore) Plan(_ context.Context, id int) (plan.Record, error) {
	defer observeRead(time.Now())
	i, ok := s.byID[id]
	if !ok {
		return plan.Record{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return s.data.Plans[i], nil
}

// Trends returns the historical rating series.
func (s *FixtureStore) Trends(_ context.Context) []TrendPoint {
	out := make([]TrendPoint, len(s.data.Trends))
	for i, t := range s.data.Trends {
		by := make(map[plan.Region]float64, len(t.ByRegion))
		for r, v := range t.ByRegion {
			by[r] = v
		}
		out[i] = TrendPoint{Year: t.Year, National: t.National, ByRegion: by}
	}
	return out
}

// Regions returns the published regional rollups.
func (s *FixtureStore) Regions(_ context.Context) []RegionalRollup {
	return append([]RegionalRollup(nil), s.data.Regions...)
}

// Distribution returns the rating distribution buckets.
func (s *FixtureStore) Distribution(_ context.Context) []DistributionBucket {
	return append([]DistributionBucket(nil), s.data.Distribution...)
}

// PlanYear returns the plan year label.
func (s *FixtureStore) PlanYear(_ context.Context) string {
	return s.data.PlanYear
}

// Published returns the publication date label of the dataset.
func (s *FixtureStore) Published(_ context.Context) string {
	return s.data.Published
}

// Count returns the number of plans.
func (s *FixtureStore) Count(_ context.Context) int {
	return len(s.data.Plans)
}

func observeRead(start time.Time) {
	metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
}
