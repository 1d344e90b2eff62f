package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"GovtJobsScanner/internal/deadline"
	"GovtJobsScanner/internal/domain"
	"GovtJobsScanner/internal/metrics"
	"GovtJobsScanner/internal/ports"
)

// At least one of these must appear in title or description.
var videoKeywords = []string{
	"ssc", "cgl", "chsl", "gd", "mts", "railway", "rrb", "ntpc", "group d", "alp", "bank", "ibps", "sbi",
	"po", "clerk", "vacancy", "vacancies", "notification", "exam date", "syllabus", "pyq", "practice set",
	"mock test", "reasoning", "english", "maths", "gs", "current affairs for ssc", "govt job", "sarkari naukri",
	"recruitment", "apply online", "last date", "form fill", "eligibility", "age limit",
}

// Any of these disqualifies a video.
var videoNegativeKeywords = []string{
	"iran", "israel", "war", "khamenei", "supreme leader", "death", "protests", "hitler", "nazi", "gdp",
	"india vs", "geopolitics", "the hindu", "indian express", "analysis", "places in news", "biography",
	"untold story", "nba", "lebron", "luka", "basketball", "sports", "cricket",
}

// DefaultVideoLookback keeps uploads from the last day.
const DefaultVideoLookback = 24 * time.Hour

// VideoDeps wires the channel-feed ingestion.
type VideoDeps struct {
	Feed     ports.VideoFeed
	Store    ports.RecordStore
	Classify ClassifyFunc
	Channels []string
	Lookback time.Duration
	Logger   *slog.Logger
	Now      func() time.Time
}

// VideoIngestor stores recent job-related channel uploads in the video partition.
type VideoIngestor struct {
	feed     ports.VideoFeed
	store    ports.RecordStore
	classify ClassifyFunc
	channels []string
	lookback time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewVideoIngestor constructs the ingestor.
func NewVideoIngestor(deps VideoDeps) *VideoIngestor {
	classify := deps.Classify
	if classify == nil {
		classify = func(string) domain.Category { return domain.CategoryAll }
	}
	lookback := deps.Lookback
	if lookback <= 0 {
		lookback = DefaultVideoLookback
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	return &VideoIngestor{
		feed:     deps.Feed,
		store:    deps.Store,
		classify: classify,
		channels: deps.Channels,
		lookback: lookback,
		logger:   deps.Logger,
		now:      now,
	}
}

// JobRelated reports whether the upload text matches a job keyword and no negative one.
func JobRelated(title, description string) bool {
	text := strings.ToLower(title + " " + description)
	return containsAnyKeyword(text, videoKeywords) && !containsAnyKeyword(text, videoNegativeKeywords)
}

// Ingest walks every channel once. Channel failures are logged and skipped.
func (v *VideoIngestor) Ingest(ctx context.Context) (domain.RunReport, error) {
	report := domain.RunReport{
		RunID:     uuid.NewString(),
		Mode:      domain.ModeCommit,
		StartedAt: v.now().UTC(),
	}
	if v.store == nil || v.feed == nil {
		return report, domain.ErrConfigMissing
	}

	cutoff := v.now().Add(-v.lookback)
	for _, channel := range v.channels {
		if err := ctx.Err(); err != nil {
			report.FinishedAt = v.now().UTC()
			return report, err
		}

		videos, err := v.feed.Latest(ctx, channel)
		if err != nil {
			v.warn("channel feed failed", "channel", channel, "error", err)
			continue
		}

		for _, video := range videos {
			if video.PublishedAt.Before(cutoff) {
				continue
			}
			if !JobRelated(video.Title, video.Description) {
				v.debug("video skipped", "title", video.Title)
				continue
			}
			report.Found++
			v.save(ctx, video, &report)
		}
	}

	report.FinishedAt = v.now().UTC()
	v.info("video ingestion finished", "message", report.Message())
	return report, nil
}

func (v *VideoIngestor) save(ctx context.Context, video domain.Video, report *domain.RunReport) {
	key := domain.RecordKey{Title: video.Title, Link: video.Link}
	exists, err := v.store.Exists(ctx, domain.VideoPartition, key)
	if err != nil {
		report.Failed++
		v.warn("duplicate check failed", "title", video.Title, "error", err)
		return
	}
	if exists {
		report.Duplicates++
		return
	}

	record := domain.Record{
		Title:    video.Title,
		Link:     video.Link,
		Category: v.classify(video.Title),
		Source:   domain.SourceYouTube,
		Video:    video.Meta(),
	}
	if d, ok := deadline.FromText(video.Title); ok {
		record.Deadline = &d
	}

	if err := v.store.Insert(ctx, domain.VideoPartition, record); err != nil {
		report.Failed++
		metrics.PersistFailures.WithLabelValues(domain.VideoPartition).Inc()
		v.warn("insert failed", "title", video.Title, "error", err)
		return
	}

	report.Saved++
	metrics.RecordsSaved.WithLabelValues(domain.VideoPartition).Inc()
	v.info("saved video", "title", video.Title, "channel", video.Channel, "link", video.Link)
}

func containsAnyKeyword(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func (v *VideoIngestor) debug(msg string, args ...interface{}) {
	if v.logger != nil {
		v.logger.Debug(msg, args...)
	}
}

func (v *VideoIngestor) info(msg string, args ...interface{}) {
	if v.logger != nil {
		v.logger.Info(msg, args...)
	}
}

func (v *VideoIngestor) warn(msg string, args ...interface{}) {
	if v.logger != nil {
		v.logger.Warn(msg, args...)
	}
}
