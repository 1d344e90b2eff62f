package deadline

import (
	"context"
	"log/slog"
	"net/url"
	"regexp"
	"time"

	"GovtJobsScanner/internal/infrastructure/parser"
	"GovtJobsScanner/internal/ports"
)

var sectionHeading = regexp.MustCompile(`(?i)(important dates|dates|important links)`)

var sectionContainers = []string{"div", "table", "p", "section"}

// Resolver tries the listing title first and falls back to the detail page.
type Resolver struct {
	fetcher ports.PageFetcher
	logger  *slog.Logger
}

var _ ports.DeadlineResolver = (*Resolver)(nil)

// NewResolver wires the fetcher used for detail pages; a nil fetcher disables the fallback.
func NewResolver(fetcher ports.PageFetcher, log *slog.Logger) *Resolver {
	return &Resolver{fetcher: fetcher, logger: log}
}

// Resolve returns the best-effort deadline. Not finding one is the common case.
func (r *Resolver) Resolve(ctx context.Context, title, link string) (time.Time, bool) {
	if d, ok := FromText(title); ok {
		return d, true
	}
	if r.fetcher == nil || !isAbsoluteHTTP(link) {
		return time.Time{}, false
	}
	return r.fromDetailPage(ctx, link)
}

func (r *Resolver) fromDetailPage(ctx context.Context, link string) (time.Time, bool) {
	doc, err := parser.FetchDocument(ctx, r.fetcher, link)
	if err != nil {
		r.debug("detail page unavailable", "link", link, "error", err)
		return time.Time{}, false
	}

	if d, ok := FromText(parser.VisibleText(doc.Selection)); ok {
		return d, true
	}

	if section, ok := parser.SectionText(doc, sectionHeading, sectionContainers...); ok {
		if d, ok := FromText(section); ok {
			return d, true
		}
	}

	return time.Time{}, false
}

func isAbsoluteHTTP(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (r *Resolver) debug(msg string, args ...interface{}) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}
