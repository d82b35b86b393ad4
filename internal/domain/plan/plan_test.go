package plan_test

import (
	"errors"
	"math"
	"testing"

	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/plan"
	. "github.com/smartystreets/goconvey/convey"
)

func validRecord() plan.Record {
	return plan.Record{
		ID:               1,
		Name:             "HealthFirst Advantage",
		State:            "CA",
		Region:           plan.RegionWest,
		OverallRating:    4.5,
		HealthServices:   4,
		DrugServices:     5,
		MemberExperience: 4.5,
		Complaints:       4,
		CustomerService:  5,
		Enrollment:       245000,
		Trend:            plan.TrendUp,
		YoYChange:        0.5,
	}
}

func TestParseRegion(t *testing.T) {
	Convey("Given region input from the boundary", t, func() {
		Convey("When the input names a region in any case", func() {
			r, err := plan.ParseRegion("  west ")

			Convey("Then it resolves to the canonical region", func() {
				So(err, ShouldBeNil)
				So(r, ShouldEqual, plan.RegionWest)
			})
		})

		Convey("When the input is empty, all or national", func() {
			Convey("Then it resolves to no region", func() {
				for _, in := range []string{"", "all", "National"} {
					r, err := plan.ParseRegion(in)
					So(err, ShouldBeNil)
					So(r, ShouldEqual, plan.RegionNone)
				}
			})
		})

		Convey("When the input is unknown", func() {
			_, err := plan.ParseRegion("Pacific")

			Convey("Then it fails with ErrUnknownValue", func() {
				So(errors.Is(err, plan.ErrUnknownValue), ShouldBeTrue)
			})
		})
	})

	Convey("Given the region label", t, func() {
		So(plan.RegionNone.Label(), ShouldEqual, "National")
		So(plan.RegionSouth.Label(), ShouldEqual, "South")
	})
}

func TestTrend(t *testing.T) {
	Convey("Given the trend enumeration", t, func() {
		Convey("Then ordinals follow down < stable < up", func() {
			So(plan.TrendDown.Ordinal(), ShouldBeLessThan, plan.TrendStable.Ordinal())
			So(plan.TrendStable.Ordinal(), ShouldBeLessThan, plan.TrendUp.Ordinal())
		})

		Convey("And ordinal order matches the byte order of the wire values", func() {
			So(string(plan.TrendDown) < string(plan.TrendStable), ShouldBeTrue)
			So(string(plan.TrendStable) < string(plan.TrendUp), ShouldBeTrue)
		})

		Convey("And parsing is case-insensitive", func() {
			tr, err := plan.ParseTrend("UP")
			So(err, ShouldBeNil)
			So(tr, ShouldEqual, plan.TrendUp)

			_, err = plan.ParseTrend("sideways")
			So(errors.Is(err, plan.ErrUnknownValue), ShouldBeTrue)
		})
	})
}

func TestParseField(t *testing.T) {
	Convey("Given field names in different spellings", t, func() {
		cases := map[string]plan.Field{
			"overallRating":    plan.FieldOverallRating,
			"overall_rating":   plan.FieldOverallRating,
			"OVERALLRATING":    plan.FieldOverallRating,
			"yoy_change":       plan.FieldYoYChange,
			"memberExperience": plan.FieldMemberExperience,
			"name":             plan.FieldName,
		}

		Convey("Then each resolves to the canonical field", func() {
			for in, want := range cases {
				got, err := plan.ParseField(in)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, want)
				So(got.Valid(), ShouldBeTrue)
			}
		})

		Convey("And an unknown field is rejected", func() {
			_, err := plan.ParseField("premium")
			So(errors.Is(err, plan.ErrUnknownValue), ShouldBeTrue)
			So(plan.Field("overall_rating").Valid(), ShouldBeFalse)
		})
	})

	Convey("Given the table columns", t, func() {
		cols := plan.TableColumns()

		Convey("Then the fixed column set is exposed in order", func() {
			So(len(cols), ShouldEqual, 8)
			So(cols[0].Key, ShouldEqual, plan.FieldName)
			So(cols[7].Key, ShouldEqual, plan.FieldTrend)
		})
	})
}

func TestCompare(t *testing.T) {
	Convey("Given two records", t, func() {
		a := validRecord()
		b := validRecord()
		b.ID = 2
		b.Name = "BlueCare Plus"
		b.OverallRating = 4
		b.Trend = plan.TrendStable
		b.Enrollment = 312000

		Convey("Then numeric fields compare numerically", func() {
			So(plan.Compare(a, b, plan.FieldOverallRating), ShouldEqual, 1)
			So(plan.Compare(a, b, plan.FieldEnrollment), ShouldEqual, -1)
			So(plan.Compare(a, b, plan.FieldDrugServices), ShouldEqual, 0)
		})

		Convey("And string fields compare lexicographically", func() {
			So(plan.Compare(a, b, plan.FieldName), ShouldEqual, 1)
			So(plan.Compare(a, b, plan.FieldState), ShouldEqual, 0)
		})

		Convey("And trends compare by ordinal", func() {
			So(plan.Compare(a, b, plan.FieldTrend), ShouldEqual, 1)
			So(plan.Compare(b, a, plan.FieldTrend), ShouldEqual, -1)
		})

		Convey("And unknown fields compare equal", func() {
			So(plan.Compare(a, b, plan.Field("premium")), ShouldEqual, 0)
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Given a well-formed record", t, func() {
		r := validRecord()

		Convey("Then it validates", func() {
			So(r.Validate(), ShouldBeNil)
		})

		Convey("And an overall rating inconsistent with the other dimensions is still accepted", func() {
			r.OverallRating = 1
			So(r.Validate(), ShouldBeNil)
		})
	})

	Convey("Given malformed records", t, func() {
		mutations := []struct {
			name   string
			mutate func(*plan.Record)
		}{
			{"zero id", func(r *plan.Record) { r.ID = 0 }},
			{"empty name", func(r *plan.Record) { r.Name = "" }},
			{"lowercase state", func(r *plan.Record) { r.State = "ca" }},
			{"long state", func(r *plan.Record) { r.State = "CAL" }},
			{"unknown region", func(r *plan.Record) { r.Region = "Pacific" }},
			{"unknown trend", func(r *plan.Record) { r.Trend = "flat" }},
			{"rating above five", func(r *plan.Record) { r.OverallRating = 5.5 }},
			{"quarter rating", func(r *plan.Record) { r.Complaints = 3.25 }},
			{"negative rating", func(r *plan.Record) { r.HealthServices = -0.5 }},
			{"negative enrollment", func(r *plan.Record) { r.Enrollment = -1 }},
			{"nan yoy", func(r *plan.Record) { r.YoYChange = math.NaN() }},
		}

		for _, m := range mutations {
			Convey("Then a record with "+m.name+" fails with ErrInvalidRecord", func() {
				r := validRecord()
				m.mutate(&r)
				err := r.Validate()
				So(err, ShouldNotBeNil)
				So(errors.Is(err, plan.ErrInvalidRecord), ShouldBeTrue)
			})
		}
	})
}

func TestBreakdown(t *testing.T) {
	Convey("Given a selected plan", t, func() {
		dims := plan.Breakdown(validRecord())

		Convey("Then the five non-overall dimensions are returned in order", func() {
			So(len(dims), ShouldEqual, 5)
			So(dims[0].Metric, ShouldEqual, "Health Services")
			So(dims[0].Value, ShouldEqual, 4.0)
			So(dims[1].Value, ShouldEqual, 5.0)
			So(dims[4].Metric, ShouldEqual, "Customer Service")
			for _, d := range dims {
				So(d.FullMark, ShouldEqual, plan.MaxRating)
			}
		})
	})
}

func TestIDs(t *testing.T) {
	Convey("Given records", t, func() {
		a, b := validRecord(), validRecord()
		b.ID = 7
		So(plan.IDs([]plan.Record{a, b}), ShouldResemble, []int{1, 7})
		So(plan.IDs(nil), ShouldResemble, []int{})
	})
}
