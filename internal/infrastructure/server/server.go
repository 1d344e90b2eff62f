package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"GovtJobsScanner/internal/domain"
)

// Runner is the pipeline surface exposed over HTTP.
type Runner interface {
	Preview(ctx context.Context) (domain.RunReport, error)
	Commit(ctx context.Context) (domain.RunReport, error)
}

// VideoRunner ingests channel feeds.
type VideoRunner interface {
	Ingest(ctx context.Context) (domain.RunReport, error)
}

// Server exposes manual run triggers, health and metrics.
type Server struct {
	runner Runner
	videos VideoRunner
	logger *slog.Logger

	// one run at a time; the dedup check is not safe under concurrent commits
	busy sync.Mutex
}

// New builds the HTTP surface. videos may be nil.
func New(runner Runner, videos VideoRunner, log *slog.Logger) *Server {
	return &Server{runner: runner, videos: videos, logger: log}
}

// Handler returns the gin engine with all routes registered.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.POST("/runs/preview", s.handleRun(func(ctx context.Context) (domain.RunReport, error) {
		return s.runner.Preview(ctx)
	}))
	api.POST("/runs/commit", s.handleRun(func(ctx context.Context) (domain.RunReport, error) {
		return s.runner.Commit(ctx)
	}))
	api.POST("/videos/ingest", s.handleRun(func(ctx context.Context) (domain.RunReport, error) {
		if s.videos == nil {
			return domain.RunReport{}, domain.ErrConfigMissing
		}
		return s.videos.Ingest(ctx)
	}))

	return r
}

// ListenAndServe runs until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type runResponse struct {
	Message string           `json:"message"`
	Report  domain.RunReport `json:"report"`
}

func (s *Server) handleRun(run func(context.Context) (domain.RunReport, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.busy.TryLock() {
			c.JSON(http.StatusConflict, gin.H{"error": "a run is already in progress"})
			return
		}
		defer s.busy.Unlock()

		// A client disconnect must not abort a run half way through.
		report, err := run(context.WithoutCancel(c.Request.Context()))
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, domain.ErrConfigMissing) {
				status = http.StatusServiceUnavailable
			}
			s.warn("run request failed", "path", c.FullPath(), "error", err)
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, runResponse{Message: report.Message(), Report: report})
	}
}

func (s *Server) info(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *Server) warn(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
