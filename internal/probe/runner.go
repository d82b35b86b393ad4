package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/plan"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/query"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/pkg/logger"
)

// Run executes the complete probe and returns its report. A report with
// failures is returned together with ErrContractViolated. The caller's
// config is left untouched; defaults apply to a copy.
func Run(ctx context.Context, cfg *Config) (*Report, error) {
	config := withDefaults(*cfg)

	log := logger.Named("probe")
	report := &Report{
		RunID:     uuid.NewString(),
		BaseURL:   config.BaseURL,
		StartedAt: time.Now(),
	}
	client := newHTTPClient(config.BaseURL, report.RunID, config.Timeout)

	log.Info(ctx, "starting contract probe",
		logger.String("runID", report.RunID),
		logger.String("baseURL", config.BaseURL),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()))

	// Step 1: Check service health
	if err := client.checkHealth(ctx); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Fetch the unfiltered plan set
	full, err := client.fetchPlans(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("full plan set retrieval failed: %w", err)
	}
	all := make(map[int]plan.Record, len(full.Plans))
	for _, r := range full.Plans {
		all[r.ID] = r
	}
	report.Plans = len(all)
	if len(all) != len(full.Plans) {
		report.Failures = append(report.Failures, Failure{
			Case: "full set", Check: CheckSubset, Detail: "duplicate plan ids served",
		})
	}

	// Step 3: Query every combination concurrently
	cases := Cases()
	report.Cases = len(cases)
	passed, failures := runCases(ctx, client, config, cases, all)
	report.Passed = passed
	report.Failures = append(report.Failures, failures...)

	// Step 4: Summaries for every scope
	report.Summaries, failures = checkSummaries(ctx, client, full.Plans)
	report.Failures = append(report.Failures, failures...)

	// Step 5: Plan details
	report.Failures = append(report.Failures, checkDetails(ctx, client, full.Plans)...)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("probe interrupted: %w", err)
	}

	report.FinishedAt = time.Now()
	report.Duration = report.FinishedAt.Sub(report.StartedAt).String()
	report.Requests = client.requests()
	report.Failed = len(report.Failures)
	sort.SliceStable(report.Failures, func(i, j int) bool {
		return report.Failures[i].Case < report.Failures[j].Case
	})

	// Step 6: Save the report
	if config.ReportFile != "" {
		if err := saveReport(config.ReportFile, report); err != nil {
			log.Warn(ctx, "failed to save report", logger.Error(err))
		} else {
			log.Info(ctx, "report saved to file", logger.String("filename", config.ReportFile))
		}
	}

	displayFinalStats(ctx, log, report)

	if !report.OK() {
		return report, fmt.Errorf("%w: %d failed checks", ErrContractViolated, report.Failed)
	}
	log.Info(ctx, "probe completed successfully")
	return report, nil
}

func withDefaults(config Config) *Config {
	if config.Workers <= 0 {
		config.Workers = DefaultWorkers
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	return &config
}

// runCases checks cases with a worker pool and returns the number of cases
// that passed every check plus the failures of the rest.
func runCases(ctx context.Context, client *HTTPClient, config *Config, cases []Case, all map[int]plan.Record) (int, []Failure) {
	var (
		passed   int64
		mu       sync.Mutex
		failures []Failure
		wg       sync.WaitGroup
	)
	log := logger.Named("probe")

	caseChan := make(chan Case, config.Workers*WorkerChannelMultiplier)
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range caseChan {
				if ctx.Err() != nil {
					return
				}
				found := checkCase(ctx, client, c, all)
				if config.Verbose {
					log.Debug(ctx, "case checked",
						logger.String("case", c.String()),
						logger.Int("failures", len(found)))
				}
				if len(found) == 0 {
					atomic.AddInt64(&passed, 1)
					continue
				}
				mu.Lock()
				failures = append(failures, found...)
				mu.Unlock()
			}
		}()
	}

	go func() {
		defer close(caseChan)
		for _, c := range cases {
			select {
			case <-ctx.Done():
				return
			case caseChan <- c:
			}
		}
	}()

	wg.Wait()
	return int(atomic.LoadInt64(&passed)), failures
}

func checkCase(ctx context.Context, client *HTTPClient, c Case, all map[int]plan.Record) []Failure {
	first, err := client.fetchPlans(ctx, c.Values())
	if err != nil {
		return []Failure{requestFailure(c.String(), err)}
	}
	found := verifyCase(c, all, first)

	second, err := client.fetchPlans(ctx, c.Values())
	if err != nil {
		return append(found, requestFailure(c.String(), err))
	}
	return append(found, verifyRepeat(c, first, second)...)
}

// checkSummaries fetches the national and per-region summaries. Each plan
// count must also match the unfiltered query for that scope.
func checkSummaries(ctx context.Context, client *HTTPClient, records []plan.Record) ([]query.Summary, []Failure) {
	var (
		sums []query.Summary
		out  []Failure
	)
	scopes := append([]plan.Region{plan.RegionNone}, plan.Regions()...)
	for _, region := range scopes {
		name := "summary region=" + region.Label()
		got, err := client.fetchSummary(ctx, region)
		if err != nil {
			out = append(out, requestFailure(name, err))
			continue
		}
		sums = append(sums, got)
		out = append(out, verifySummary(region, records, got)...)

		params := Case{Region: region, Band: query.BandAll, SortKey: plan.FieldID, Direction: query.Ascending}.Values()
		listed, err := client.fetchPlans(ctx, params)
		if err != nil {
			out = append(out, requestFailure(name, err))
			continue
		}
		if listed.Count != got.PlanCount {
			out = append(out, Failure{Case: name, Check: CheckSummary,
				Detail: fmt.Sprintf("summary counts %d plans, table lists %d", got.PlanCount, listed.Count)})
		}
	}
	return sums, out
}

func checkDetails(ctx context.Context, client *HTTPClient, records []plan.Record) []Failure {
	var out []Failure
	for _, r := range records {
		got, err := client.fetchDetail(ctx, r.ID)
		if err != nil {
			out = append(out, requestFailure(fmt.Sprintf("plan id=%d", r.ID), err))
			continue
		}
		out = append(out, verifyDetail(r, got)...)
	}
	return out
}

func requestFailure(name string, err error) Failure {
	var se *statusError
	if errors.As(err, &se) {
		return Failure{Case: name, Check: CheckStatus, Detail: se.Error()}
	}
	return Failure{Case: name, Check: CheckDecode, Detail: err.Error()}
}

// saveReport writes the report as indented JSON.
func saveReport(filename string, report *Report) error {
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(filename, append(data, '\n'), filePermission); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// displayFinalStats logs the final probe statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, report *Report) {
	log.Info(ctx, "final statistics",
		logger.String("runID", report.RunID),
		logger.Int("plans", report.Plans),
		logger.Int("cases", report.Cases),
		logger.Int("requests", report.Requests),
		logger.Int("passed", report.Passed),
		logger.Int("failed", report.Failed),
		logger.String("duration", report.Duration))
	for _, f := range report.Failures {
		log.Warn(ctx, "check failed",
			logger.String("case", f.Case),
			logger.String("check", f.Check),
			logger.String("detail", f.Detail))
	}
}
