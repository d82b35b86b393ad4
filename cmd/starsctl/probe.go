package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/probe"
)

func newProbeCmd() *cobra.Command {
	cfg := &probe.Config{}
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Check a running dashboard API against the query contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := probe.Run(cmd.Context(), cfg)
			if report != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d/%d cases passed, %d failed checks, %d requests in %s\n",
					report.RunID, report.Passed, report.Cases, report.Failed, report.Requests, report.Duration)
				for _, f := range report.Failures {
					fmt.Fprintf(cmd.OutOrStdout(), "  [%s] %s: %s\n", f.Check, f.Case, f.Detail)
				}
			}
			return err
		},
	}
	cmd.Flags().StringVar(&cfg.BaseURL, "url", "http://localhost:8080", "Base URL of the dashboard")
	cmd.Flags().IntVar(&cfg.Workers, "workers", runtime.NumCPU(), "Number of concurrent workers")
	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", 10*time.Second, "HTTP request timeout")
	cmd.Flags().StringVar(&cfg.ReportFile, "report", "", "Write the JSON report to this file")
	cmd.Flags().BoolVar(&cfg.Verbose, "verbose", false, "Log every checked case at debug level")
	return cmd
}
