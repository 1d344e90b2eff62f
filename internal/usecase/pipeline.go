package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"GovtJobsScanner/internal/domain"
	"GovtJobsScanner/internal/metrics"
	"GovtJobsScanner/internal/ports"
)

// ClassifyFunc maps a listing title to its category.
type ClassifyFunc func(title string) domain.Category

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source          ports.ListingSource
	Classify        ClassifyFunc
	Deadlines       ports.DeadlineResolver
	Store           ports.RecordStore
	Notifier        ports.Notifier
	Events          ports.EventPublisher
	Delay           time.Duration
	PartitionPrefix string
	Logger          *slog.Logger
	Now             func() time.Time
}

// Pipeline implements the listing harvest workflow.
type Pipeline struct {
	source    ports.ListingSource
	classify  ClassifyFunc
	deadlines ports.DeadlineResolver
	store     ports.RecordStore
	notifier  ports.Notifier
	events    ports.EventPublisher
	delay     time.Duration
	prefix    string
	logger    *slog.Logger
	now       func() time.Time
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	classify := deps.Classify
	if classify == nil {
		classify = func(string) domain.Category { return domain.CategoryAll }
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	prefix := deps.PartitionPrefix
	if prefix == "" {
		prefix = domain.DefaultPartitionPrefix
	}

	return &Pipeline{
		source:    deps.Source,
		classify:  classify,
		deadlines: deps.Deadlines,
		store:     deps.Store,
		notifier:  deps.Notifier,
		events:    deps.Events,
		delay:     deps.Delay,
		prefix:    prefix,
		logger:    deps.Logger,
		now:       now,
	}
}

// Preview extracts and classifies listings without touching the store.
func (p *Pipeline) Preview(ctx context.Context) (domain.RunReport, error) {
	return p.run(ctx, domain.ModePreview)
}

// Commit runs the full harvest: extract, classify, dedup, resolve deadlines, persist.
func (p *Pipeline) Commit(ctx context.Context) (domain.RunReport, error) {
	if p.store == nil {
		return domain.RunReport{Mode: domain.ModeCommit}, fmt.Errorf("%w: record store", domain.ErrConfigMissing)
	}
	return p.run(ctx, domain.ModeCommit)
}

func (p *Pipeline) run(ctx context.Context, mode domain.RunMode) (domain.RunReport, error) {
	report := domain.RunReport{
		RunID:     uuid.NewString(),
		Mode:      mode,
		StartedAt: p.now().UTC(),
	}
	if p.source == nil {
		return p.finish(ctx, report), nil
	}

	p.info("run started", "run", report.RunID, "mode", mode)

	for i, id := range p.source.Sources() {
		if i > 0 {
			if err := p.pause(ctx); err != nil {
				return p.finish(ctx, report), err
			}
		}

		sourceReport, err := p.harvest(ctx, id, mode, &report)
		report.Sources = append(report.Sources, sourceReport)
		if err != nil {
			return p.finish(ctx, report), err
		}
	}

	return p.finish(ctx, report), nil
}

// harvest processes one source. The returned error is only ever a context error;
// source failures are recorded in the SourceReport.
func (p *Pipeline) harvest(ctx context.Context, id domain.SourceID, mode domain.RunMode, report *domain.RunReport) (domain.SourceReport, error) {
	sr := domain.SourceReport{Source: id}

	listings, err := p.source.Scan(ctx, id)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return sr, ctxErr
		}
		metrics.SourceFailures.WithLabelValues(string(id)).Inc()
		p.warn("source failed", "source", id, "error", err)
		sr.Error = err.Error()
		return sr, nil
	}

	for _, listing := range listings {
		if err := ctx.Err(); err != nil {
			return sr, err
		}
		if !listing.Admissible() {
			continue
		}

		category := p.classify(listing.Title)
		sr.Found++
		report.Found++
		metrics.ListingsFound.WithLabelValues(string(id)).Inc()

		if mode == domain.ModePreview {
			report.Listings = append(report.Listings, domain.ClassifiedListing{Listing: listing, Category: category})
			continue
		}
		p.persist(ctx, listing, category, report)
	}

	p.info("source done", "source", id, "found", sr.Found)
	return sr, nil
}

// persist checks for an existing {title, link} record before resolving the
// deadline, so duplicates never trigger a detail-page fetch.
func (p *Pipeline) persist(ctx context.Context, listing domain.Listing, category domain.Category, report *domain.RunReport) {
	partition := domain.PartitionName(p.prefix, category)

	exists, err := p.store.Exists(ctx, partition, listing.Key())
	if err != nil {
		report.Failed++
		metrics.PersistFailures.WithLabelValues(partition).Inc()
		p.warn("duplicate check failed", "partition", partition, "title", listing.Title, "error", err)
		return
	}
	if exists {
		report.Duplicates++
		metrics.DuplicatesSkipped.WithLabelValues(partition).Inc()
		p.debug("duplicate skipped", "partition", partition, "title", listing.Title)
		return
	}

	record := domain.Record{
		Title:    listing.Title,
		Link:     listing.Link,
		Category: category,
		Source:   listing.Source,
	}
	if p.deadlines != nil {
		if d, ok := p.deadlines.Resolve(ctx, listing.Title, listing.Link); ok {
			record.Deadline = &d
			metrics.DeadlinesResolved.Inc()
		}
	}

	if err := p.store.Insert(ctx, partition, record); err != nil {
		report.Failed++
		metrics.PersistFailures.WithLabelValues(partition).Inc()
		p.warn("insert failed", "partition", partition, "title", listing.Title, "error", err)
		return
	}

	report.Saved++
	metrics.RecordsSaved.WithLabelValues(partition).Inc()
	p.info("saved", "partition", partition, "title", listing.Title, "deadline", record.Deadline != nil)

	if p.events != nil {
		if err := p.events.RecordSaved(ctx, partition, record); err != nil {
			p.warn("publish record event failed", "error", err)
		}
	}
}

func (p *Pipeline) finish(ctx context.Context, report domain.RunReport) domain.RunReport {
	report.FinishedAt = p.now().UTC()

	metrics.RunsTotal.WithLabelValues(string(report.Mode)).Inc()
	metrics.RunDuration.WithLabelValues(string(report.Mode)).Observe(report.FinishedAt.Sub(report.StartedAt).Seconds())

	p.info("run finished", "run", report.RunID, "mode", report.Mode, "message", report.Message())

	// Summaries go out even when the run context is cancelled.
	notifyCtx := context.WithoutCancel(ctx)
	if p.notifier != nil {
		if err := p.notifier.PublishSummary(notifyCtx, report); err != nil {
			p.warn("notify failed", "error", err)
		}
	}
	if p.events != nil {
		if err := p.events.RunCompleted(notifyCtx, report); err != nil {
			p.warn("publish run event failed", "error", err)
		}
	}

	return report
}

func (p *Pipeline) pause(ctx context.Context) error {
	if p.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(p.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p *Pipeline) debug(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

func (p *Pipeline) info(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
