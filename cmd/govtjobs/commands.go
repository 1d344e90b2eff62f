package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"GovtJobsScanner/internal/app"
	"GovtJobsScanner/internal/config"
	"GovtJobsScanner/internal/domain"
	"GovtJobsScanner/internal/logging"
	"GovtJobsScanner/internal/report"
)

type runFunc func(ctx context.Context, a *app.Application) (domain.RunReport, error)

func newRootCmd() *cobra.Command {
	var jsonOut bool

	root := &cobra.Command{
		Use:           "govtjobs",
		Short:         "Harvest government job listings into category partitions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&jsonOut, "json", false, "print the run report as JSON")

	root.AddCommand(
		&cobra.Command{
			Use:   "preview",
			Short: "Extract and classify listings without saving",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runOnce(cmd, domain.ModePreview, jsonOut, func(ctx context.Context, a *app.Application) (domain.RunReport, error) {
					return a.Preview(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "commit",
			Short: "Run the full pipeline once and persist new listings",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runOnce(cmd, domain.ModeCommit, jsonOut, func(ctx context.Context, a *app.Application) (domain.RunReport, error) {
					return a.Commit(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "videos",
			Short: "Ingest recent job videos from the configured channel feeds",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runOnce(cmd, domain.ModeCommit, jsonOut, func(ctx context.Context, a *app.Application) (domain.RunReport, error) {
					return a.IngestVideos(ctx)
				})
			},
		},
		newScheduleCmd(),
		&cobra.Command{
			Use:   "serve",
			Short: "Expose the trigger API with health and metrics endpoints",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withApp(cmd, domain.ModeCommit, func(ctx context.Context, a *app.Application) error {
					return a.Serve(ctx)
				})
			},
		},
	)

	return root
}

func newScheduleCmd() *cobra.Command {
	var withVideos bool
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the commit pipeline on the configured cron expression",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, domain.ModeCommit, func(ctx context.Context, a *app.Application) error {
				return a.Schedule(ctx, withVideos)
			})
		},
	}
	cmd.Flags().BoolVar(&withVideos, "videos", false, "also ingest channel feeds on each tick")
	return cmd
}

func withApp(cmd *cobra.Command, mode domain.RunMode, fn func(context.Context, *app.Application) error) error {
	ctx := cmd.Context()
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application, err := app.New(ctx, cfg, mode, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		application.Close(closeCtx)
	}()

	if err := fn(ctx, application); err != nil {
		logger.Error("application stopped", "error", err)
		return err
	}
	return nil
}

func runOnce(cmd *cobra.Command, mode domain.RunMode, jsonOut bool, run runFunc) error {
	return withApp(cmd, mode, func(ctx context.Context, a *app.Application) error {
		r, err := run(ctx, a)
		if err != nil {
			return err
		}
		return printReport(cmd.OutOrStdout(), r, jsonOut)
	})
}

func printReport(w io.Writer, r domain.RunReport, jsonOut bool) error {
	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(struct {
			Message string           `json:"message"`
			Report  domain.RunReport `json:"report"`
		}{r.Message(), r}); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		return nil
	}

	if r.Mode == domain.ModePreview {
		report.RenderListings(w, r)
		return nil
	}
	report.RenderSummary(w, r)
	return nil
}
