package usecase

import (
	"context"
	"log/slog"
	"time"

	"GovtJobsScanner/internal/ports"
)

// Scheduler wires the cron driver with the commit pipeline and, when set, the video ingestor.
type Scheduler struct {
	driver   ports.Scheduler
	pipeline *Pipeline
	videos   *VideoIngestor
	logger   *slog.Logger
}

// NewScheduler returns a helper to start/stop recurring runs.
func NewScheduler(driver ports.Scheduler, pipeline *Pipeline, videos *VideoIngestor, log *slog.Logger) *Scheduler {
	return &Scheduler{driver: driver, pipeline: pipeline, videos: videos, logger: log}
}

// Start registers the recurring job with the driver.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.pipeline == nil {
		return nil
	}
	return s.driver.Start(ctx, func(trigger time.Time) { s.RunOnce(ctx, trigger) })
}

// RunOnce executes one scheduled tick.
func (s *Scheduler) RunOnce(ctx context.Context, trigger time.Time) {
	report, err := s.pipeline.Commit(ctx)
	if err != nil {
		s.log(slog.LevelError, "scheduled commit failed", "trigger", trigger, "error", err)
	} else {
		s.log(slog.LevelInfo, "scheduled commit done", "trigger", trigger, "message", report.Message())
	}

	if s.videos == nil {
		return
	}
	if _, err := s.videos.Ingest(ctx); err != nil {
		s.log(slog.LevelError, "scheduled video ingestion failed", "error", err)
	}
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}
	return s.driver.Stop(ctx)
}

func (s *Scheduler) log(level slog.Level, msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Log(context.Background(), level, msg, args...)
	}
}
