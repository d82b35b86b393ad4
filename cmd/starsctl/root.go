package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	service "github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/app"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/pkg/logger"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	datasetPath string
	logLevel    string
	asJSON      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "starsctl",
		Short:         "Query Medicare Advantage star ratings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(logger.WithOutput(cmd.ErrOrStderr())); err != nil {
				return err
			}
			return logger.SetLevelString(opts.logLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.datasetPath, "dataset", "", "YAML dataset to load instead of the embedded fixture")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "Print JSON instead of a table")

	cmd.AddCommand(
		newQueryCmd(opts),
		newSummaryCmd(opts),
		newPlanCmd(opts),
		newProbeCmd(),
	)
	return cmd
}

// startService loads the dataset into a fresh service.
func (o *rootOptions) startService(ctx context.Context) (*service.Service, error) {
	svc := service.New(
		service.WithLogger(logger.Named("starsctl")),
		service.WithDatasetPath(o.datasetPath),
	)
	if err := svc.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	return svc, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
