package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/adapters/repository"
	service "github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/app"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/palette"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/plan"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/query"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/view"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

const northeastOnly = `
plan_year: "2025"
plans:
  - {id: 40, name: "Harbor Senior", state: MA, region: Northeast, overall_rating: 4, health_services: 4, drug_services: 4, member_experience: 4, complaints: 4, customer_service: 4, enrollment: 5000, trend: up, yoy_change: 0.5}
`

func startedService(opts ...service.Option) *service.Service {
	svc := service.New(opts...)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := svc.Start(ctx); err != nil {
		panic(err)
	}
	return svc
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New()
		ctx := context.Background()

		Convey("When it is queried before Start", func() {
			_, err := svc.Plans(ctx, query.Default())

			Convey("Then ErrNotStarted is returned", func() {
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})

		Convey("When it is started", func() {
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			Convey("Then the embedded dataset is loaded", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["plans"], ShouldEqual, 12)
				So(stats["planYear"], ShouldEqual, "2024")
			})

			Convey("And starting twice is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})

			Convey("And after Stop queries fail again", func() {
				svc.Stop()
				_, err := svc.Summary(ctx, plan.RegionNone)
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})
		})

		Convey("When the dataset path does not exist", func() {
			bad := service.New(service.WithDatasetPath("/non/existent/dataset.yaml"))

			Convey("Then Start fails", func() {
				So(bad.Start(ctx), ShouldNotBeNil)
			})
		})
	})
}

func TestService_Plans(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService()
		defer svc.Stop()
		ctx := context.Background()

		Convey("When West is queried by overall rating descending", func() {
			q := query.Default()
			q.Region = plan.RegionWest
			plans, err := svc.Plans(ctx, q)

			Convey("Then the West plans come back best first", func() {
				So(err, ShouldBeNil)
				So(plan.IDs(plans), ShouldResemble, []int{6, 1, 12, 10})
			})
		})

		Convey("When the query is invalid", func() {
			q := query.Default()
			q.SortKey = "premium"
			_, err := svc.Plans(ctx, q)

			Convey("Then ErrInvalidQuery is returned", func() {
				So(errors.Is(err, query.ErrInvalidQuery), ShouldBeTrue)
			})
		})

		Convey("When raw parameters are parsed", func() {
			q, err := svc.ParseQuery("south", "3", "", "")

			Convey("Then defaults fill the sort", func() {
				So(err, ShouldBeNil)
				So(q.Region, ShouldEqual, plan.RegionSouth)
				So(q.Band, ShouldEqual, query.Band3)
				So(q.SortKey, ShouldEqual, plan.FieldOverallRating)
				So(q.Direction, ShouldEqual, query.Descending)
			})
		})
	})
}

func TestService_Summary(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService()
		defer svc.Stop()
		ctx := context.Background()

		Convey("When the West summary is requested", func() {
			sum, err := svc.Summary(ctx, plan.RegionWest)

			Convey("Then it aggregates the four West plans", func() {
				So(err, ShouldBeNil)
				So(sum.PlanCount, ShouldEqual, 4)
				So(sum.AvgRating, ShouldEqual, 4.5)
				So(sum.TotalEnrollment, ShouldEqual, 976000)
				So(sum.HighPerformers, ShouldEqual, 4)
				So(sum.ImprovingPlans, ShouldEqual, 4)
			})
		})

		Convey("When the national summary is requested", func() {
			sum, err := svc.Summary(ctx, plan.RegionNone)

			Convey("Then it covers every plan", func() {
				So(err, ShouldBeNil)
				So(sum.ScopeLabel, ShouldEqual, "National")
				So(sum.PlanCount, ShouldEqual, 12)
				So(sum.AvgRating, ShouldEqual, 3.9)
				So(sum.TotalEnrollment, ShouldEqual, 2771000)
			})
		})

		Convey("When the region is unknown", func() {
			_, err := svc.Summary(ctx, plan.Region("Pacific"))
			So(errors.Is(err, query.ErrInvalidQuery), ShouldBeTrue)
		})
	})

	Convey("Given a dataset with no West plans", t, func() {
		ctx := context.Background()
		store, err := repository.NewFixtureStore(ctx, repository.WithDatasetBytes([]byte(northeastOnly)))
		So(err, ShouldBeNil)
		svc := startedService(service.WithStore(store))
		defer svc.Stop()

		Convey("When the West summary is requested", func() {
			sum, err := svc.Summary(ctx, plan.RegionWest)

			Convey("Then the no-data sentinel is returned", func() {
				So(errors.Is(err, query.ErrNoData), ShouldBeTrue)
				So(sum.NoData, ShouldBeTrue)
				So(sum.PlanCount, ShouldEqual, 0)
				So(sum.AvgRating, ShouldEqual, 0.0)
			})
		})

		Convey("When a West snapshot is taken", func() {
			snap, err := svc.Snapshot(ctx, view.ToggleRegion(svc.Initial(), plan.RegionWest))

			Convey("Then the table is empty and the summary reports no data", func() {
				So(err, ShouldBeNil)
				So(snap.Plans, ShouldBeEmpty)
				So(snap.Summary.NoData, ShouldBeTrue)
				So(snap.PlanYear, ShouldEqual, "2025")
			})
		})
	})
}

func TestService_Plan(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService()
		defer svc.Stop()
		ctx := context.Background()

		Convey("When plan 6 is requested", func() {
			d, err := svc.Plan(ctx, 6)

			Convey("Then the record and its breakdown are returned", func() {
				So(err, ShouldBeNil)
				So(d.Plan.Name, ShouldEqual, "Kaiser Senior Advantage")
				So(len(d.Breakdown), ShouldEqual, 5)
				So(d.Breakdown[1].Value, ShouldEqual, 4.5)
			})
		})

		Convey("When an unknown plan is requested", func() {
			_, err := svc.Plan(ctx, 99)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestService_Apply(t *testing.T) {
	Convey("Given a started service and the initial view", t, func() {
		svc := startedService()
		defer svc.Stop()
		ctx := context.Background()
		st := svc.Initial()

		Convey("When West is selected", func() {
			snap, err := svc.Apply(ctx, st, view.Action{Kind: view.KindSelectRegion, Region: "West"})

			Convey("Then the table and summary are scoped to West", func() {
				So(err, ShouldBeNil)
				So(snap.State.Region, ShouldEqual, plan.RegionWest)
				So(plan.IDs(snap.Plans), ShouldResemble, []int{6, 1, 12, 10})
				So(snap.Summary.Scope, ShouldEqual, plan.RegionWest)
				So(len(snap.Columns), ShouldEqual, 8)
			})

			Convey("And selecting a plan adds its detail", func() {
				next, err := svc.Apply(ctx, snap.State, view.Action{Kind: view.KindSelectPlan, PlanID: 12})
				So(err, ShouldBeNil)
				So(next.Selected, ShouldNotBeNil)
				So(next.Selected.Plan.Name, ShouldEqual, "SCAN Health Plan")
			})

			Convey("And reset returns to the initial view", func() {
				next, err := svc.Apply(ctx, snap.State, view.Action{Kind: view.KindReset})
				So(err, ShouldBeNil)
				So(next.State, ShouldResemble, svc.Initial())
				So(len(next.Plans), ShouldEqual, 12)
			})
		})

		Convey("When the action is malformed", func() {
			_, err := svc.Apply(ctx, st, view.Action{Kind: "zoom"})
			So(errors.Is(err, view.ErrInvalidAction), ShouldBeTrue)
		})

		Convey("When the state selects an unknown plan", func() {
			st.SelectedPlanID = 99
			_, err := svc.Snapshot(ctx, st)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})

	Convey("Given a service sorting by name ascending by default", t, func() {
		svc := startedService(service.WithDefaultSort(plan.FieldName, query.Ascending))
		defer svc.Stop()
		ctx := context.Background()

		Convey("When a client sends a state without a sort", func() {
			snap, err := svc.Snapshot(ctx, view.State{Region: plan.RegionWest})

			Convey("Then the configured sort applies", func() {
				So(err, ShouldBeNil)
				So(snap.State.Sort, ShouldResemble, view.Sort{Key: plan.FieldName, Direction: query.Ascending})
				So(plan.IDs(snap.Plans), ShouldResemble, []int{1, 6, 10, 12})
			})
		})

		Convey("When raw parameters omit the sort", func() {
			q, err := svc.ParseQuery("", "", "", "")
			So(err, ShouldBeNil)
			So(q.SortKey, ShouldEqual, plan.FieldName)
			So(q.Direction, ShouldEqual, query.Ascending)
		})
	})
}

func TestService_Fixtures(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService()
		defer svc.Stop()

		Convey("When fixtures are requested", func() {
			f, err := svc.Fixtures(context.Background())

			Convey("Then every region is colored by its average", func() {
				So(err, ShouldBeNil)
				So(len(f.Regions), ShouldEqual, 4)
				So(f.Regions[0].Region, ShouldEqual, plan.RegionWest)
				So(f.Regions[0].Color, ShouldEqual, palette.Success)
				So(f.Regions[1].Color, ShouldEqual, palette.Danger)
				So(f.Regions[2].Color, ShouldEqual, palette.Warning)
				So(f.Regions[3].HasData, ShouldBeTrue)
			})

			Convey("And the reference series are included", func() {
				So(f.PlanYear, ShouldEqual, "2024")
				So(f.Published, ShouldEqual, "2024-01-15")
				So(len(f.Trends), ShouldEqual, 5)
				So(len(f.Distribution), ShouldEqual, 4)
				So(f.Distribution[0].Color, ShouldEqual, palette.Success)
				So(len(f.Legend), ShouldEqual, 4)
				So(len(f.Bands), ShouldEqual, 5)
				So(f.Bands[0].Label, ShouldEqual, "All Ratings")
			})
		})
	})

	Convey("Given stores with and without a publication date", t, func() {
		ctx := context.Background()
		dated, err := repository.NewFixtureStore(ctx,
			repository.WithDatasetBytes([]byte("published: \"2025-02-01\"\n"+northeastOnly)))
		So(err, ShouldBeNil)
		undated, err := repository.NewFixtureStore(ctx, repository.WithDatasetBytes([]byte(northeastOnly)))
		So(err, ShouldBeNil)

		Convey("When fixtures are built from each", func() {
			withDate := startedService(service.WithStore(dated))
			defer withDate.Stop()
			withoutDate := startedService(service.WithStore(undated))
			defer withoutDate.Stop()

			f1, err1 := withDate.Fixtures(ctx)
			f2, err2 := withoutDate.Fixtures(ctx)

			Convey("Then the publication label comes from the store", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(f1.Published, ShouldEqual, "2025-02-01")
				So(f1.PlanYear, ShouldEqual, "2025")
				So(f2.Published, ShouldBeEmpty)
			})
		})
	})
}
