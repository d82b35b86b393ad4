// Package service provides the dashboard service that implements the
// dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/adapters/repository"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/palette"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/plan"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/query"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/view"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/pkg/logger"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/pkg/metrics"
)

// Service answers dashboard queries against the loaded dataset. Every call
// recomputes its result from the store; nothing derived is cached.
type Service struct {
	mu sync.RWMutex

	store       repository.Store
	ownsStore   bool
	datasetPath string
	palette     palette.Palette
	defaultSort view.Sort
	planYear    string

	started   bool
	startedAt time.Time

	logger logger.Logger
}

// New constructs a Service. Start must be called before any query.
func New(opts ...Option) *Service {
	s := &Service{
		palette:     palette.Default(),
		defaultSort: view.Initial().Sort,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the dataset unless a store was injected.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting dashboard service...")

	if s.store == nil {
		var opts []repository.Option
		if s.datasetPath != "" {
			opts = append(opts, repository.WithDatasetPath(s.datasetPath))
		}
		store, err := repository.NewFixtureStore(ctx, opts...)
		if err != nil {
			s.logger.Error(ctx, "failed to load dataset",
				logger.String("path", s.datasetPath),
				logger.Error(err),
			)
			return fmt.Errorf("load dataset: %w", err)
		}
		s.store = store
		s.ownsStore = true
	}
	if s.planYear == "" {
		s.planYear = s.store.PlanYear(ctx)
	}

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "dashboard service started",
		logger.Int("plans", s.store.Count(ctx)),
		logger.String("planYear", s.planYear),
		logger.String("defaultSort", string(s.defaultSort.Key)),
	)
	return nil
}

// Stop releases the store the service loaded itself.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if s.ownsStore {
		s.store = nil
		s.ownsStore = false
	}
	s.started = false
	s.logger.Info(context.Background(), "dashboard service stopped")
}

func (s *Service) current() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store, nil
}

// Initial returns the view state a fresh dashboard starts from, using the
// configured default sort.
func (s *Service) Initial() view.State {
	st := view.Initial()
	st.Sort = s.defaultSort
	return st
}

// ParseQuery builds a query from raw parameters. An empty sort or direction
// takes the configured default.
func (s *Service) ParseQuery(region, band, sortKey, direction string) (query.Query, error) {
	q, err := query.Parse(region, band, sortKey, direction)
	if err != nil {
		return query.Query{}, err
	}
	if sortKey == "" {
		q.SortKey = s.defaultSort.Key
		if direction == "" {
			q.Direction = s.defaultSort.Direction
		}
	}
	return q, nil
}

// Plans returns the plans matching q in q's order.
func (s *Service) Plans(ctx context.Context, q query.Query) ([]plan.Record, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	store, err := s.current()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	out := query.ApplyFilters(store.Plans(ctx), q)
	metrics.RecordQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
	metrics.RecordQuery(string(q.Region), q.Band.String(), string(q.SortKey))
	metrics.RecordQueryResultSize(len(out))

	s.logger.Debug(ctx, "plans queried",
		logger.String("region", string(q.Region)),
		logger.String("band", q.Band.String()),
		logger.String("sort", string(q.SortKey)),
		logger.String("dir", string(q.Direction)),
		logger.Int("count", len(out)),
	)
	return out, nil
}

// Summary computes the summary metrics for region. An empty scope returns
// query.ErrNoData together with a Summary whose NoData flag is set.
func (s *Service) Summary(ctx context.Context, region plan.Region) (query.Summary, error) {
	if region != plan.RegionNone && !region.Valid() {
		return query.Summary{}, fmt.Errorf("%w: region %q", query.ErrInvalidQuery, region)
	}
	store, err := s.current()
	if err != nil {
		return query.Summary{}, err
	}

	metrics.RecordSummary(string(region))
	sum, err := query.Summarize(store.Plans(ctx), region)
	if errors.Is(err, query.ErrNoData) {
		metrics.RecordSummaryNoData()
		s.logger.Debug(ctx, "summary scope is empty", logger.String("scope", region.Label()))
	}
	return sum, err
}

// Detail is a plan with its quality breakdown.
type Detail struct {
	Plan      plan.Record      `json:"plan"`
	Breakdown []plan.Dimension `json:"breakdown"`
}

// Plan returns one plan and its breakdown, or repository.ErrNotFound.
func (s *Service) Plan(ctx context.Context, id int) (Detail, error) {
	store, err := s.current()
	if err != nil {
		return Detail{}, err
	}
	r, err := store.Plan(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	return Detail{Plan: r, Breakdown: plan.Breakdown(r)}, nil
}

// Snapshot is everything the dashboard renders for one view state.
type Snapshot struct {
	State    view.State    `json:"state"`
	Query    query.Query   `json:"query"`
	Plans    []plan.Record `json:"plans"`
	Summary  query.Summary `json:"summary"`
	Selected *Detail       `json:"selected,omitempty"`
	Columns  []plan.Column `json:"columns"`
	PlanYear string        `json:"plan_year"`
}

// Snapshot recomputes the table, summary and selected plan for st. A zero
// sort in st takes the configured default.
func (s *Service) Snapshot(ctx context.Context, st view.State) (Snapshot, error) {
	if st.Sort.Key == "" && st.Sort.Direction == "" {
		st.Sort = s.defaultSort
	}
	st = st.Normalize()
	if err := st.Validate(); err != nil {
		return Snapshot{}, err
	}

	q := st.Query()
	plans, err := s.Plans(ctx, q)
	if err != nil {
		return Snapshot{}, err
	}
	sum, err := s.Summary(ctx, st.Scope())
	if err != nil && !errors.Is(err, query.ErrNoData) {
		return Snapshot{}, err
	}

	snap := Snapshot{
		State:    st,
		Query:    q,
		Plans:    plans,
		Summary:  sum,
		Columns:  plan.TableColumns(),
		PlanYear: s.planYear,
	}
	if st.SelectedPlanID != 0 {
		d, err := s.Plan(ctx, st.SelectedPlanID)
		if err != nil {
			return Snapshot{}, err
		}
		snap.Selected = &d
	}
	return snap, nil
}

// Apply reduces action onto st and returns the snapshot of the next state.
// Reset returns to the configured initial state.
func (s *Service) Apply(ctx context.Context, st view.State, action view.Action) (Snapshot, error) {
	if st.Sort.Key == "" && st.Sort.Direction == "" {
		st.Sort = s.defaultSort
	}
	next, err := view.Reduce(st.Normalize(), action)
	if err != nil {
		metrics.RecordViewActionRejected()
		return Snapshot{}, err
	}
	if action.Kind == view.KindReset {
		next = s.Initial()
	}
	metrics.RecordViewAction(string(action.Kind))
	return s.Snapshot(ctx, next)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"datasetPath": s.datasetPath,
		"defaultSort": string(s.defaultSort.Key),
		"defaultDir":  string(s.defaultSort.Direction),
	}
	if s.started {
		ctx := context.Background()
		count := s.store.Count(ctx)
		stats["planYear"] = s.planYear
		stats["plans"] = count
		stats["uptimeSeconds"] = int(time.Since(s.startedAt).Seconds())
	}
	return stats
}
