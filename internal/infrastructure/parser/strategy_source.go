package parser

import (
	"context"
	"fmt"
	"log/slog"

	"GovtJobsScanner/internal/domain"
	"GovtJobsScanner/internal/ports"
	"GovtJobsScanner/internal/scanner"
)

// StrategySource implements ListingSource via the registered source strategies.
type StrategySource struct {
	registry *scanner.Registry
	fetcher  ports.PageFetcher
	logger   *slog.Logger
}

var _ ports.ListingSource = (*StrategySource)(nil)

// NewStrategySource wires the source registry with a page fetcher.
func NewStrategySource(reg *scanner.Registry, fetcher ports.PageFetcher, log *slog.Logger) *StrategySource {
	return &StrategySource{
		registry: reg,
		fetcher:  fetcher,
		logger:   log,
	}
}

// Sources returns the enabled sources in processing order.
func (s *StrategySource) Sources() []domain.SourceID {
	if s.registry == nil {
		return nil
	}
	return s.registry.Enabled()
}

// Scan fetches one source page and runs its extraction strategy.
func (s *StrategySource) Scan(ctx context.Context, id domain.SourceID) ([]domain.Listing, error) {
	if s.registry == nil || s.fetcher == nil {
		return nil, fmt.Errorf("strategy source is not configured")
	}

	src, err := s.registry.Resolve(id)
	if err != nil {
		return nil, err
	}

	s.debug("fetch source", "source", id, "url", src.URL, "strategy", src.Strategy.Kind.String())
	doc, err := FetchDocument(ctx, s.fetcher, src.URL)
	if err != nil {
		return nil, fmt.Errorf("scan source %s: %w", id, err)
	}

	listings := Extract(doc, src)
	s.debug("source produced listings", "source", id, "count", len(listings))
	return listings, nil
}

func (s *StrategySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
