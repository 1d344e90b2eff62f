package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"go.mongodb.org/mongo-driver/mongo"

	"GovtJobsScanner/internal/classifier"
	"GovtJobsScanner/internal/config"
	"GovtJobsScanner/internal/deadline"
	"GovtJobsScanner/internal/domain"
	"GovtJobsScanner/internal/infrastructure/events"
	"GovtJobsScanner/internal/infrastructure/feed"
	"GovtJobsScanner/internal/infrastructure/httpfetch"
	"GovtJobsScanner/internal/infrastructure/parser"
	"GovtJobsScanner/internal/infrastructure/scheduler"
	"GovtJobsScanner/internal/infrastructure/server"
	"GovtJobsScanner/internal/infrastructure/storage"
	"GovtJobsScanner/internal/infrastructure/telegram"
	"GovtJobsScanner/internal/logging"
	"GovtJobsScanner/internal/ports"
	"GovtJobsScanner/internal/scanner"
	"GovtJobsScanner/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
	videos   *usecase.VideoIngestor

	mongoClient *mongo.Client
	sqlDB       *sql.DB
	natsConn    *nats.Conn
}

// New validates cfg for mode and builds the application. Commit mode opens the record store.
func New(ctx context.Context, cfg config.Config, mode domain.RunMode, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	a := &Application{cfg: cfg, logger: baseLogger}

	registry := scanner.NewRegistry()
	for _, sc := range cfg.Sources {
		err := registry.Apply(domain.SourceID(sc.ID), scanner.Override{URL: sc.URL, BaseURL: sc.BaseURL, Disabled: sc.Disabled})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrConfigMissing, err)
		}
	}

	fetcher := httpfetch.New(nil, cfg.HTTP.UserAgent, cfg.HTTP.SourceTimeout)
	source := parser.NewStrategySource(registry, fetcher, baseLogger.With("component", "source"))
	resolver := deadline.NewResolver(fetcher.WithTimeout(cfg.HTTP.DetailTimeout), baseLogger.With("component", "deadline"))

	var store ports.RecordStore
	if mode == domain.ModeCommit {
		var err error
		store, err = a.openStore(ctx)
		if err != nil {
			a.Close(ctx)
			return nil, err
		}
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.Enabled() {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	var publisher ports.EventPublisher
	if cfg.Events.NATS.URL != "" {
		nc, err := events.Connect(cfg.Events.NATS.URL)
		if err != nil {
			baseLogger.Warn("events disabled", "error", err)
		} else {
			a.natsConn = nc
			publisher = events.NewNATSPublisher(nc, cfg.Events.NATS.Subject)
		}
	}

	a.pipeline = usecase.NewPipeline(usecase.PipelineDeps{
		Source:          source,
		Classify:        classifier.Classify,
		Deadlines:       resolver,
		Store:           store,
		Notifier:        notifier,
		Events:          publisher,
		Delay:           cfg.Pipeline.PolitenessDelay,
		PartitionPrefix: cfg.Pipeline.PartitionPrefix,
		Logger:          baseLogger.With("component", "pipeline"),
	})

	a.videos = usecase.NewVideoIngestor(usecase.VideoDeps{
		Feed:     feed.NewYouTubeFeed(fetcher, cfg.Videos.FeedBase),
		Store:    store,
		Classify: classifier.Classify,
		Channels: cfg.Videos.Channels,
		Lookback: cfg.Videos.Lookback,
		Logger:   baseLogger.With("component", "videos"),
	})

	return a, nil
}

func (a *Application) openStore(ctx context.Context) (ports.RecordStore, error) {
	switch a.cfg.Storage.Driver {
	case config.DriverMongo:
		client, db, err := storage.ConnectMongo(ctx, a.cfg.Storage.Mongo.URI, a.cfg.Storage.Mongo.Database)
		if err != nil {
			return nil, err
		}
		a.mongoClient = client
		return storage.NewMongoRepository(db, a.logger.With("component", "storage.mongo")), nil
	case config.DriverPostgres:
		db, err := storage.OpenPostgres(ctx, a.cfg.Storage.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		a.sqlDB = db
		return storage.NewPostgresRepository(db), nil
	case config.DriverMemory:
		a.logger.Warn("memory storage: records are lost on exit")
		return storage.NewMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("%w: unknown storage driver %q", domain.ErrConfigMissing, a.cfg.Storage.Driver)
	}
}

// Preview runs extraction and classification only.
func (a *Application) Preview(ctx context.Context) (domain.RunReport, error) {
	return a.pipeline.Preview(ctx)
}

// Commit runs the full pipeline once.
func (a *Application) Commit(ctx context.Context) (domain.RunReport, error) {
	return a.pipeline.Commit(ctx)
}

// IngestVideos runs channel-feed ingestion once.
func (a *Application) IngestVideos(ctx context.Context) (domain.RunReport, error) {
	return a.videos.Ingest(ctx)
}

// Schedule runs commits on the configured cron expression until ctx is cancelled.
func (a *Application) Schedule(ctx context.Context, withVideos bool) error {
	driver := scheduler.NewCronScheduler(a.cfg.Scheduler.CronExpression, a.cfg.Scheduler.Location())
	if err := driver.Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrConfigMissing, err)
	}

	var videos *usecase.VideoIngestor
	if withVideos {
		videos = a.videos
	}
	sched := usecase.NewScheduler(driver, a.pipeline, videos, a.logger.With("component", "scheduler"))
	if err := sched.Start(ctx); err != nil {
		return err
	}
	if next, err := driver.Next(time.Now()); err == nil {
		a.logger.Info("scheduler started", "cron", a.cfg.Scheduler.CronExpression, "next", next)
	}

	<-ctx.Done()
	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return sched.Stop(stopCtx)
}

// Serve exposes the trigger API until ctx is cancelled.
func (a *Application) Serve(ctx context.Context) error {
	srv := server.New(a.pipeline, a.videos, a.logger.With("component", "server"))
	return srv.ListenAndServe(ctx, a.cfg.Server.Addr)
}

// Close releases store and bus connections.
func (a *Application) Close(ctx context.Context) {
	if a.natsConn != nil {
		if err := a.natsConn.Drain(); err != nil {
			a.logger.Warn("drain nats", "error", err)
		}
		a.natsConn = nil
	}
	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(ctx); err != nil {
			a.logger.Warn("disconnect mongo", "error", err)
		}
		a.mongoClient = nil
	}
	if a.sqlDB != nil {
		if err := a.sqlDB.Close(); err != nil {
			a.logger.Warn("close postgres", "error", err)
		}
		a.sqlDB = nil
	}
}
