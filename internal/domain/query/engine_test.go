package query_test

import (
	"errors"
	"testing"

	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/plan"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/query"
	. "github.com/smartystreets/goconvey/convey"
)

// samplePlans mirrors the twelve plans shipped in the dashboard fixture.
func samplePlans() []plan.Record {
	rec := func(id int, name, state string, region plan.Region, overall, health, drug, member, complaints, service float64, enrollment int, trend plan.Trend, yoy float64) plan.Record {
		return plan.Record{
			ID: id, Name: name, State: state, Region: region,
			OverallRating: overall, HealthServices: health, DrugServices: drug,
			MemberExperience: member, Complaints: complaints, CustomerService: service,
			Enrollment: enrollment, Trend: trend, YoYChange: yoy,
		}
	}
	return []plan.Record{
		rec(1, "HealthFirst Advantage", "CA", plan.RegionWest, 4.5, 4, 5, 4.5, 4, 5, 245000, plan.TrendUp, 0.5),
		rec(2, "BlueCare Plus", "TX", plan.RegionSouth, 4, 4, 4, 4, 3.5, 4.5, 312000, plan.TrendUp, 0.25),
		rec(3, "Aetna Medicare Elite", "FL", plan.RegionSouth, 3.5, 3.5, 4, 3, 3, 4, 189000, plan.TrendDown, -0.5),
		rec(4, "UnitedHealth Senior", "NY", plan.RegionNortheast, 4.5, 4.5, 4.5, 5, 4, 4.5, 520000, plan.TrendUp, 0.5),
		rec(5, "Humana Gold Choice", "OH", plan.RegionMidwest, 4, 4, 3.5, 4.5, 4, 4, 178000, plan.TrendStable, 0),
		rec(6, "Kaiser Senior Advantage", "CA", plan.RegionWest, 5, 5, 4.5, 5, 5, 5, 410000, plan.TrendUp, 0.25),
		rec(7, "Cigna HealthSpring", "TN", plan.RegionSouth, 3, 3, 3.5, 2.5, 3, 3.5, 95000, plan.TrendDown, -0.25),
		rec(8, "Anthem MediBlue", "IN", plan.RegionMidwest, 3.5, 3.5, 4, 3.5, 3, 3.5, 142000, plan.TrendUp, 0.25),
		rec(9, "WellCare Value", "GA", plan.RegionSouth, 3, 2.5, 3, 3, 3.5, 3, 203000, plan.TrendDown, -0.5),
		rec(10, "Molina Complete Care", "WA", plan.RegionWest, 4, 4, 4, 4, 4, 4.5, 87000, plan.TrendUp, 0.5),
		rec(11, "Centene Senior", "MO", plan.RegionMidwest, 3.5, 3.5, 3, 4, 3.5, 3.5, 156000, plan.TrendStable, 0),
		rec(12, "SCAN Health Plan", "AZ", plan.RegionWest, 4.5, 4.5, 4, 5, 4.5, 4.5, 234000, plan.TrendUp, 0.25),
	}
}

func isSubset(out, in []plan.Record) bool {
	seen := make(map[int]int)
	for _, r := range in {
		seen[r.ID]++
	}
	for _, r := range out {
		if seen[r.ID] == 0 {
			return false
		}
		seen[r.ID]--
	}
	return true
}

func TestApplyFilters_Scenarios(t *testing.T) {
	Convey("Given the twelve fixture plans", t, func() {
		plans := samplePlans()

		Convey("When filtering by West with all ratings, overall rating descending", func() {
			q := query.Default()
			q.Region = plan.RegionWest
			out := query.ApplyFilters(plans, q)

			Convey("Then the four West plans are returned highest first", func() {
				So(plan.IDs(out), ShouldResemble, []int{6, 1, 12, 10})
			})
		})

		Convey("When filtering by band floor 4 over the national set", func() {
			q := query.Default()
			q.Band = query.Band4
			out := query.ApplyFilters(plans, q)

			Convey("Then only 4.0 <= overall < 5.0 plans are kept", func() {
				So(plan.IDs(out), ShouldResemble, []int{1, 4, 12, 2, 5, 10})
				for _, r := range out {
					So(r.OverallRating, ShouldBeGreaterThanOrEqualTo, 4.0)
					So(r.OverallRating, ShouldBeLessThan, 5.0)
				}
			})

			Convey("And the 5.0-rated Kaiser plan is excluded", func() {
				for _, r := range out {
					So(r.ID, ShouldNotEqual, 6)
				}
			})
		})

		Convey("When filtering by band floor 5", func() {
			q := query.Default()
			q.Band = query.Band5
			out := query.ApplyFilters(plans, q)

			Convey("Then only the 5.0 plan is kept", func() {
				So(plan.IDs(out), ShouldResemble, []int{6})
			})
		})

		Convey("When filtering by band floor 2", func() {
			q := query.Default()
			q.Band = query.Band2
			out := query.ApplyFilters(plans, q)

			Convey("Then no plan qualifies because the lowest overall is 3.0", func() {
				So(out, ShouldBeEmpty)
			})
		})

		Convey("When combining South with band floor 3", func() {
			q := query.Default()
			q.Region = plan.RegionSouth
			q.Band = query.Band3
			out := query.ApplyFilters(plans, q)

			Convey("Then both predicates apply", func() {
				So(plan.IDs(out), ShouldResemble, []int{3, 7, 9})
			})
		})

		Convey("When sorting by name ascending", func() {
			q := query.Default()
			q.SortKey = plan.FieldName
			q.Direction = query.Ascending
			out := query.ApplyFilters(plans, q)

			Convey("Then names are in lexicographic order", func() {
				So(out[0].Name, ShouldEqual, "Aetna Medicare Elite")
				So(out[len(out)-1].Name, ShouldEqual, "WellCare Value")
				for i := 1; i < len(out); i++ {
					So(out[i-1].Name <= out[i].Name, ShouldBeTrue)
				}
			})
		})

		Convey("When sorting by enrollment descending", func() {
			q := query.Default()
			q.SortKey = plan.FieldEnrollment
			out := query.ApplyFilters(plans, q)

			Convey("Then the largest plan comes first", func() {
				So(out[0].ID, ShouldEqual, 4)
				So(out[len(out)-1].ID, ShouldEqual, 10)
			})
		})

		Convey("When sorting by trend descending", func() {
			q := query.Default()
			q.SortKey = plan.FieldTrend
			out := query.ApplyFilters(plans, q)

			Convey("Then up precedes stable precedes down", func() {
				So(plan.IDs(out), ShouldResemble, []int{1, 2, 4, 6, 8, 10, 12, 5, 11, 3, 7, 9})
			})
		})
	})
}

func TestApplyFilters_Properties(t *testing.T) {
	Convey("Given every combination of region, band, key and direction", t, func() {
		plans := samplePlans()
		regions := append([]plan.Region{plan.RegionNone}, plan.Regions()...)

		Convey("Then each result satisfies the query invariants", func() {
			for _, region := range regions {
				for _, band := range query.Bands() {
					for _, key := range plan.Fields() {
						for _, dir := range []query.Direction{query.Ascending, query.Descending} {
							q := query.Query{Region: region, Band: band, SortKey: key, Direction: dir}
							out := query.ApplyFilters(plans, q)

							So(isSubset(out, plans), ShouldBeTrue)
							for _, r := range out {
								if region != plan.RegionNone {
									So(r.Region, ShouldEqual, region)
								}
								So(band.Contains(r.OverallRating), ShouldBeTrue)
							}
							for i := 1; i < len(out); i++ {
								c := plan.Compare(out[i-1], out[i], key)
								if dir == query.Descending {
									So(c, ShouldBeGreaterThanOrEqualTo, 0)
								} else {
									So(c, ShouldBeLessThanOrEqualTo, 0)
								}
							}

							again := query.ApplyFilters(out, q)
							So(plan.IDs(again), ShouldResemble, plan.IDs(out))
						}
					}
				}
			}
		})

		Convey("And no filter returns the whole set", func() {
			out := query.ApplyFilters(plans, query.Default())
			So(len(out), ShouldEqual, len(plans))
			So(isSubset(plans, out), ShouldBeTrue)
		})
	})
}

func TestApplyFilters_DirectionToggle(t *testing.T) {
	Convey("Given a sorted view", t, func() {
		plans := samplePlans()
		q := query.Default()
		first := query.ApplyFilters(plans, q)

		Convey("When the direction is flipped twice", func() {
			q.Direction = q.Direction.Flip()
			flipped := query.ApplyFilters(first, q)
			q.Direction = q.Direction.Flip()
			back := query.ApplyFilters(flipped, q)

			Convey("Then the original ordering returns", func() {
				So(q.Direction, ShouldEqual, query.Descending)
				So(plan.IDs(back), ShouldResemble, plan.IDs(first))
			})
		})
	})
}

func TestApplyFilters_DoesNotMutate(t *testing.T) {
	Convey("Given an input slice", t, func() {
		plans := samplePlans()
		before := plan.IDs(plans)

		Convey("When applying a sorting query", func() {
			q := query.Default()
			q.SortKey = plan.FieldName
			_ = query.ApplyFilters(plans, q)

			Convey("Then the input order is unchanged", func() {
				So(plan.IDs(plans), ShouldResemble, before)
			})
		})

		Convey("When the output is modified", func() {
			out := query.ApplyFilters(plans, query.Default())
			out[0].Name = "changed"

			Convey("Then the input is unaffected", func() {
				for _, r := range plans {
					So(r.Name, ShouldNotEqual, "changed")
				}
			})
		})
	})
}

func TestSummarize(t *testing.T) {
	Convey("Given the twelve fixture plans", t, func() {
		plans := samplePlans()

		Convey("When summarizing the West", func() {
			s, err := query.Summarize(plans, plan.RegionWest)

			Convey("Then the West aggregates are returned", func() {
				So(err, ShouldBeNil)
				So(s.Scope, ShouldEqual, plan.RegionWest)
				So(s.PlanCount, ShouldEqual, 4)
				So(s.AvgRating, ShouldEqual, 4.5)
				So(s.TotalEnrollment, ShouldEqual, 976000)
				So(s.HighPerformers, ShouldEqual, 4)
				So(s.ImprovingPlans, ShouldEqual, 4)
				So(s.NoData, ShouldBeFalse)
			})
		})

		Convey("When summarizing nationally", func() {
			s, err := query.Summarize(plans, plan.RegionNone)

			Convey("Then every plan is included", func() {
				So(err, ShouldBeNil)
				So(s.ScopeLabel, ShouldEqual, "National")
				So(s.PlanCount, ShouldEqual, 12)
				So(s.AvgRating, ShouldEqual, 3.9)
				So(s.TotalEnrollment, ShouldEqual, 2771000)
				So(s.HighPerformers, ShouldEqual, 7)
				So(s.ImprovingPlans, ShouldEqual, 7)
			})
		})

		Convey("When summarizing the South", func() {
			s, err := query.Summarize(plans, plan.RegionSouth)

			Convey("Then the mean of 4, 3.5, 3, 3 rounds half-up to 3.4", func() {
				So(err, ShouldBeNil)
				So(s.AvgRating, ShouldEqual, 3.4)
				So(s.HighPerformers, ShouldEqual, 1)
				So(s.ImprovingPlans, ShouldEqual, 1)
			})
		})

		Convey("When summarizing a region with no plans", func() {
			var westOnly []plan.Record
			for _, r := range plans {
				if r.Region == plan.RegionWest {
					westOnly = append(westOnly, r)
				}
			}
			s, err := query.Summarize(westOnly, plan.RegionNortheast)

			Convey("Then the no-data sentinel is returned instead of an average", func() {
				So(errors.Is(err, query.ErrNoData), ShouldBeTrue)
				So(s.NoData, ShouldBeTrue)
				So(s.PlanCount, ShouldEqual, 0)
				So(s.AvgRating, ShouldEqual, 0.0)
			})
		})

		Convey("When summarizing an empty dataset nationally", func() {
			_, err := query.Summarize(nil, plan.RegionNone)

			Convey("Then the no-data sentinel is returned", func() {
				So(errors.Is(err, query.ErrNoData), ShouldBeTrue)
			})
		})
	})
}

func TestSummarize_IgnoresBand(t *testing.T) {
	Convey("Given a band-filtered table", t, func() {
		plans := samplePlans()
		q := query.Default()
		q.Region = plan.RegionSouth
		q.Band = query.Band4
		table := query.ApplyFilters(plans, q)

		Convey("When summarizing the same region", func() {
			s, err := query.Summarize(plans, q.Region)

			Convey("Then the summary covers the whole region, not the band", func() {
				So(err, ShouldBeNil)
				So(len(table), ShouldEqual, 1)
				So(s.PlanCount, ShouldEqual, 4)
			})
		})
	})
}

func TestRoundHalfUp(t *testing.T) {
	Convey("Given values on and around half steps", t, func() {
		So(query.RoundHalfUp(4.375, 1), ShouldEqual, 4.4)
		So(query.RoundHalfUp(3.25, 1), ShouldEqual, 3.3)
		So(query.RoundHalfUp(4.35, 1), ShouldEqual, 4.4)
		So(query.RoundHalfUp(3.9166666, 1), ShouldEqual, 3.9)
		So(query.RoundHalfUp(4.0, 1), ShouldEqual, 4.0)
	})
}
