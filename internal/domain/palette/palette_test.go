package palette_test

import (
	"testing"

	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/palette"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRegionScale(t *testing.T) {
	Convey("Given the default palette", t, func() {
		p := palette.Default()

		Convey("Then region averages map to their threshold colors", func() {
			So(p.RegionColor(4.5, true), ShouldEqual, palette.Success)
			So(p.RegionColor(4.9, true), ShouldEqual, palette.Success)
			So(p.RegionColor(4.0, true), ShouldEqual, palette.Primary)
			So(p.RegionColor(4.4, true), ShouldEqual, palette.Primary)
			So(p.RegionColor(3.5, true), ShouldEqual, palette.Warning)
			So(p.RegionColor(3.4, true), ShouldEqual, palette.Danger)
			So(p.RegionColor(0, true), ShouldEqual, palette.Danger)
		})

		Convey("And a region without data is neutral", func() {
			So(p.RegionColor(5, false), ShouldEqual, palette.Neutral)
		})

		Convey("And the legend lists thresholds highest first then the remainder", func() {
			legend := p.RegionScale.Legend()
			So(len(legend), ShouldEqual, 4)
			So(legend[0].Label, ShouldEqual, "4.5+ Stars")
			So(legend[1].Label, ShouldEqual, "4-4.5 Stars")
			So(legend[2].Label, ShouldEqual, "3.5-4 Stars")
			So(legend[3].Label, ShouldEqual, "<3.5 Stars")
		})

		Convey("And distribution buckets have fixed colors", func() {
			So(p.DistributionColor("5"), ShouldEqual, palette.Success)
			So(p.DistributionColor("below_3"), ShouldEqual, palette.Danger)
			So(p.DistributionColor("1"), ShouldEqual, palette.Neutral)
		})
	})
}

func TestNewScale(t *testing.T) {
	Convey("Given thresholds in arbitrary order", t, func() {
		s := palette.NewScale(
			palette.Threshold{Color: "low"},
			palette.Threshold{Min: 1, Color: "one"},
			palette.Threshold{Min: 3, Color: "three"},
			palette.Threshold{Min: 2, Color: "two"},
		)

		Convey("Then the highest matching threshold wins", func() {
			So(s.Color(3.2), ShouldEqual, "three")
			So(s.Color(2), ShouldEqual, "two")
			So(s.Color(1.9), ShouldEqual, "one")
			So(s.Color(0.5), ShouldEqual, "low")
		})
	})
}
