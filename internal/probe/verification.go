package probe

import (
	"fmt"
	"slices"

	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/plan"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/query"
)

// verifyCase checks one /api/plans answer against the full plan set.
func verifyCase(c Case, all map[int]plan.Record, resp plansResponse) []Failure {
	name := c.String()
	var out []Failure
	fail := func(check, format string, args ...any) {
		out = append(out, Failure{Case: name, Check: check, Detail: fmt.Sprintf(format, args...)})
	}

	if resp.Query.Region != c.Region || resp.Query.Band != c.Band ||
		resp.Query.SortKey != c.SortKey || resp.Query.Direction != c.Direction {
		fail(CheckQueryEchoed, "server echoed %+v", resp.Query)
	}
	if resp.Count != len(resp.Plans) {
		fail(CheckCount, "count %d but %d plans", resp.Count, len(resp.Plans))
	}

	for _, r := range resp.Plans {
		want, ok := all[r.ID]
		switch {
		case !ok:
			fail(CheckSubset, "plan %d is not in the full set", r.ID)
		case want != r:
			fail(CheckSubset, "plan %d differs from the full set", r.ID)
		}
		if c.Region != plan.RegionNone && r.Region != c.Region {
			fail(CheckRegion, "plan %d is in %s", r.ID, r.Region)
		}
		if !c.Band.Contains(r.OverallRating) {
			fail(CheckBand, "plan %d rated %.1f", r.ID, r.OverallRating)
		}
	}

	if want := expectedIDs(c, all); !sameSet(want, plan.IDs(resp.Plans)) {
		fail(CheckComplete, "want plans %v, got %v", want, plan.IDs(resp.Plans))
	}

	for i := 1; i < len(resp.Plans); i++ {
		cmp := plan.Compare(resp.Plans[i-1], resp.Plans[i], c.SortKey)
		if (c.Direction == query.Ascending && cmp > 0) || (c.Direction == query.Descending && cmp < 0) {
			fail(CheckOrder, "plans %d and %d out of %s order by %s",
				resp.Plans[i-1].ID, resp.Plans[i].ID, c.Direction, c.SortKey)
		}
	}
	return out
}

// verifyRepeat checks that a repeated request returns the same ordering.
func verifyRepeat(c Case, first, second plansResponse) []Failure {
	a, b := plan.IDs(first.Plans), plan.IDs(second.Plans)
	if slices.Equal(a, b) {
		return nil
	}
	return []Failure{{
		Case:   c.String(),
		Check:  CheckIdempotent,
		Detail: fmt.Sprintf("first %v, repeat %v", a, b),
	}}
}

// verifySummary compares a served summary with one computed locally from the
// full set. Empty scopes must carry the no-data sentinel.
func verifySummary(region plan.Region, all []plan.Record, got query.Summary) []Failure {
	name := "summary region=" + region.Label()
	want, err := query.Summarize(all, region)

	var out []Failure
	if err != nil {
		if !got.NoData || got.PlanCount != 0 || got.AvgRating != 0 || got.TotalEnrollment != 0 {
			out = append(out, Failure{Case: name, Check: CheckNoData,
				Detail: fmt.Sprintf("empty scope served %+v", got)})
		}
		return out
	}
	if got.NoData {
		out = append(out, Failure{Case: name, Check: CheckNoData,
			Detail: fmt.Sprintf("%d plans but no_data set", want.PlanCount)})
	}
	if got.PlanCount != want.PlanCount || got.AvgRating != want.AvgRating ||
		got.TotalEnrollment != want.TotalEnrollment || got.HighPerformers != want.HighPerformers ||
		got.ImprovingPlans != want.ImprovingPlans || got.ScopeLabel != want.ScopeLabel {
		out = append(out, Failure{Case: name, Check: CheckSummary,
			Detail: fmt.Sprintf("want %+v, got %+v", want, got)})
	}
	return out
}

// verifyDetail checks that /api/plans/{id} serves the same record.
func verifyDetail(want plan.Record, got detailResponse) []Failure {
	var out []Failure
	name := fmt.Sprintf("plan id=%d", want.ID)
	if got.Plan != want {
		out = append(out, Failure{Case: name, Check: CheckDetail, Detail: "record differs from the full set"})
	}
	if len(got.Breakdown) == 0 {
		out = append(out, Failure{Case: name, Check: CheckDetail, Detail: "empty breakdown"})
	}
	return out
}

func expectedIDs(c Case, all map[int]plan.Record) []int {
	var ids []int
	for id, r := range all {
		if c.Region != plan.RegionNone && r.Region != c.Region {
			continue
		}
		if !c.Band.Contains(r.OverallRating) {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func sameSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	x, y := slices.Clone(a), slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}
