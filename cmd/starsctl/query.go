package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/plan"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/query"
)

func newQueryCmd(root *rootOptions) *cobra.Command {
	var region, rating, sortKey, dir string
	cmd := &cobra.Command{
		Use:   "query",
		Short: "List plans filtered by region and rating band",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := root.startService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Stop()

			q, err := svc.ParseQuery(region, rating, sortKey, dir)
			if err != nil {
				return err
			}
			plans, err := svc.Plans(cmd.Context(), q)
			if err != nil {
				return err
			}
			if root.asJSON {
				if plans == nil {
					plans = []plan.Record{}
				}
				return writeJSON(cmd.OutOrStdout(), plans)
			}
			return printPlans(cmd.OutOrStdout(), plans)
		},
	}
	cmd.Flags().StringVar(&region, "region", "", "West, South, Midwest or Northeast; empty for national")
	cmd.Flags().StringVar(&rating, "rating", "all", "Rating band floor: all, 2, 3, 4 or 5")
	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort column, e.g. overallRating, name, enrollment")
	cmd.Flags().StringVar(&dir, "dir", "", "Sort direction: asc or desc")
	return cmd
}

func newSummaryCmd(root *rootOptions) *cobra.Command {
	var region string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show summary metrics for a region or the nation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scope, err := plan.ParseRegion(region)
			if err != nil {
				return err
			}
			svc, err := root.startService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Stop()

			sum, err := svc.Summary(cmd.Context(), scope)
			if err != nil && !errors.Is(err, query.ErrNoData) {
				return err
			}
			if root.asJSON {
				return writeJSON(cmd.OutOrStdout(), sum)
			}
			return printSummary(cmd.OutOrStdout(), sum)
		},
	}
	cmd.Flags().StringVar(&region, "region", "", "West, South, Midwest or Northeast; empty for national")
	return cmd
}

func newPlanCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <id>",
		Short: "Show one plan and its rating breakdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid plan id %q", args[0])
			}
			svc, err := root.startService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Stop()

			d, err := svc.Plan(cmd.Context(), id)
			if err != nil {
				return err
			}
			if root.asJSON {
				return writeJSON(cmd.OutOrStdout(), d)
			}
			return printDetail(cmd.OutOrStdout(), d.Plan, d.Breakdown)
		},
	}
}

func printPlans(w io.Writer, plans []plan.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTATE\tREGION\tOVERALL\tHEALTH\tDRUG\tMEMBER\tENROLLMENT\tTREND")
	for _, r := range plans {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.1f\t%.1f\t%.1f\t%.1f\t%d\t%s\n",
			r.ID, r.Name, r.State, r.Region, r.OverallRating, r.HealthServices,
			r.DrugServices, r.MemberExperience, r.Enrollment, r.Trend)
	}
	fmt.Fprintf(tw, "\n%d plans\n", len(plans))
	return tw.Flush()
}

func printSummary(w io.Writer, sum query.Summary) error {
	if sum.NoData {
		_, err := fmt.Fprintf(w, "%s: no plans\n", sum.ScopeLabel)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Scope\t%s\n", sum.ScopeLabel)
	fmt.Fprintf(tw, "Plans\t%d\n", sum.PlanCount)
	fmt.Fprintf(tw, "Average rating\t%.1f\n", sum.AvgRating)
	fmt.Fprintf(tw, "Total enrollment\t%d\n", sum.TotalEnrollment)
	fmt.Fprintf(tw, "High performers\t%d\n", sum.HighPerformers)
	fmt.Fprintf(tw, "Improving plans\t%d\n", sum.ImprovingPlans)
	return tw.Flush()
}

func printDetail(w io.Writer, r plan.Record, breakdown []plan.Dimension) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s (%s, %s)\n", r.Name, r.State, r.Region)
	fmt.Fprintf(tw, "Overall\t%.1f\n", r.OverallRating)
	for _, d := range breakdown {
		fmt.Fprintf(tw, "%s\t%.1f / %.0f\n", d.Metric, d.Value, d.FullMark)
	}
	fmt.Fprintf(tw, "Enrollment\t%d\n", r.Enrollment)
	fmt.Fprintf(tw, "Trend\t%s (%+.1f)\n", r.Trend, r.YoYChange)
	return tw.Flush()
}
