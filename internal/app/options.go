package service

import (
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/adapters/repository"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/palette"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/plan"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/query"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/view"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore injects a store; Start then skips loading the dataset.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDatasetPath loads the dataset from a YAML file instead of the
// embedded fixture.
func WithDatasetPath(path string) Option {
	return func(s *Service) {
		s.datasetPath = path
	}
}

// WithPalette replaces the default palette.
func WithPalette(p palette.Palette) Option {
	return func(s *Service) {
		s.palette = p
	}
}

// WithDefaultSort sets the sort a fresh dashboard starts with. Invalid
// values are ignored.
func WithDefaultSort(key plan.Field, dir query.Direction) Option {
	return func(s *Service) {
		if key.Valid() && dir.Valid() {
			s.defaultSort = view.Sort{Key: key, Direction: dir}
		}
	}
}

// WithPlanYear overrides the plan year label taken from the dataset.
func WithPlanYear(year string) Option {
	return func(s *Service) {
		s.planYear = year
	}
}
