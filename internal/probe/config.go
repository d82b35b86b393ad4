// Package probe checks a running dashboard API against the plan query
// engine's contract: every region, band, column and direction is queried
// over HTTP and the answers are verified against the unfiltered plan set.
package probe

import (
	"fmt"
	"net/url"
	"time"

	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/plan"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/query"
)

// Config holds configuration for a probe run
type Config struct {
	BaseURL    string        // Base URL of the service
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	ReportFile string        // Output file for the JSON report, skipped when empty
	Verbose    bool          // Log every case as it is checked
}

// Case is one query combination sent to /api/plans.
type Case struct {
	Region    plan.Region
	Band      query.Band
	SortKey   plan.Field
	Direction query.Direction
}

// String renders the case the way it appears in reports.
func (c Case) String() string {
	return fmt.Sprintf("region=%s rating=%s sort=%s dir=%s",
		c.Region.Label(), c.Band, c.SortKey, c.Direction)
}

// Values returns the URL parameters for the case.
func (c Case) Values() url.Values {
	v := url.Values{}
	if c.Region != plan.RegionNone {
		v.Set("region", string(c.Region))
	}
	v.Set("rating", c.Band.String())
	v.Set("sort", string(c.SortKey))
	v.Set("dir", string(c.Direction))
	return v
}

// Cases enumerates every region (national included) x band x field x
// direction combination.
func Cases() []Case {
	regions := append([]plan.Region{plan.RegionNone}, plan.Regions()...)
	dirs := []query.Direction{query.Ascending, query.Descending}

	out := make([]Case, 0, len(regions)*len(query.Bands())*len(plan.Fields())*len(dirs))
	for _, r := range regions {
		for _, b := range query.Bands() {
			for _, f := range plan.Fields() {
				for _, d := range dirs {
					out = append(out, Case{Region: r, Band: b, SortKey: f, Direction: d})
				}
			}
		}
	}
	return out
}

// Failure is one violated check.
type Failure struct {
	Case   string `json:"case"`
	Check  string `json:"check"`
	Detail string `json:"detail"`
}

// Report is the outcome of a probe run.
type Report struct {
	RunID      string          `json:"run_id"`
	BaseURL    string          `json:"base_url"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Duration   string          `json:"duration"`
	Plans      int             `json:"plans"`
	Cases      int             `json:"cases"`
	Requests   int             `json:"requests"`
	Passed     int             `json:"passed"`
	Failed     int             `json:"failed"`
	Failures   []Failure       `json:"failures"`
	Summaries  []query.Summary `json:"summaries"`
}

// OK reports whether every check passed.
func (r *Report) OK() bool {
	return r.Failed == 0 && len(r.Failures) == 0
}

// plansResponse mirrors the body of GET /api/plans.
type plansResponse struct {
	Query query.Query   `json:"query"`
	Count int           `json:"count"`
	Plans []plan.Record `json:"plans"`
}

// detailResponse mirrors the body of GET /api/plans/{id}.
type detailResponse struct {
	Plan      plan.Record      `json:"plan"`
	Breakdown []plan.Dimension `json:"breakdown"`
}
