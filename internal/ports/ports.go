package ports

import (
	"context"
	"time"

	"GovtJobsScanner/internal/domain"
)

// PageFetcher performs bounded HTTP GETs. Non-200 responses are returned as pages,
// only transport failures are errors.
type PageFetcher interface {
	Get(ctx context.Context, url string) (domain.Page, error)
}

// ListingSource pulls listings from the known source pages, one source at a time.
type ListingSource interface {
	Sources() []domain.SourceID
	Scan(ctx context.Context, id domain.SourceID) ([]domain.Listing, error)
}

// DeadlineResolver recovers an application deadline for a listing.
type DeadlineResolver interface {
	Resolve(ctx context.Context, title, link string) (time.Time, bool)
}

// RecordStore is the partitioned keyed store holding persisted records.
// Exists followed by Insert is not atomic.
type RecordStore interface {
	Exists(ctx context.Context, partition string, key domain.RecordKey) (bool, error)
	Insert(ctx context.Context, partition string, record domain.Record) error
}

// Notifier streams run summaries to Telegram or other channels.
type Notifier interface {
	PublishSummary(ctx context.Context, report domain.RunReport) error
}

// EventPublisher emits saved records and run summaries to a message bus.
type EventPublisher interface {
	RecordSaved(ctx context.Context, partition string, record domain.Record) error
	RunCompleted(ctx context.Context, report domain.RunReport) error
}

// VideoFeed reads recent uploads of a channel.
type VideoFeed interface {
	Latest(ctx context.Context, channelID string) ([]domain.Video, error)
}

// Scheduler controls when pipelines execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
