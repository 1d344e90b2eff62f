// Package scanner holds the closed set of extraction strategies and the
// per-source table that selects one of them.
package scanner

import (
	"fmt"

	"GovtJobsScanner/internal/domain"
)

// Kind enumerates the supported extraction strategies.
type Kind int

const (
	// HeadingList reads the list that follows a heading containing a marker phrase.
	HeadingList Kind = iota + 1
	// AnchorScan keeps every anchor whose text carries one of the keywords.
	AnchorScan
	// ClassHeading reads the anchor inside headings tagged with a CSS class.
	ClassHeading
)

func (k Kind) String() string {
	switch k {
	case HeadingList:
		return "heading-list"
	case AnchorScan:
		return "anchor-scan"
	case ClassHeading:
		return "class-heading"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Strategy carries the parameters of one extraction strategy.
type Strategy struct {
	Kind Kind
	// Headings are the tag names considered by HeadingList and ClassHeading.
	Headings []string
	// Marker is the phrase a HeadingList heading must contain.
	Marker string
	// Classes are the CSS class markers for ClassHeading.
	Classes []string
	// Keywords filter anchor text case-insensitively; empty means no filter.
	Keywords []string
	// Limit caps the number of listings; zero means unlimited.
	Limit int
}

// Source is a listing page together with its extraction strategy.
type Source struct {
	ID       domain.SourceID
	URL      string
	BaseURL  string
	Strategy Strategy
	Disabled bool
}

// Override adjusts a source from configuration.
type Override struct {
	URL      string
	BaseURL  string
	Disabled bool
}

// Registry keeps the source table keyed by source identity.
type Registry struct {
	sources map[domain.SourceID]Source
	order   []domain.SourceID
}

// NewRegistry builds a registry seeded with the built-in source table.
func NewRegistry() *Registry {
	r := &Registry{sources: map[domain.SourceID]Source{}}
	for _, id := range domain.KnownSources() {
		r.sources[id] = defaultSources[id]
		r.order = append(r.order, id)
	}
	return r
}

// Apply merges a configuration override into a known source.
func (r *Registry) Apply(id domain.SourceID, o Override) error {
	src, ok := r.sources[id]
	if !ok {
		return fmt.Errorf("source %s is not known", id)
	}
	if o.URL != "" {
		src.URL = o.URL
	}
	if o.BaseURL != "" {
		src.BaseURL = o.BaseURL
	}
	src.Disabled = o.Disabled
	r.sources[id] = src
	return nil
}

// Resolve returns a source by identity or an error if it is absent.
func (r *Registry) Resolve(id domain.SourceID) (Source, error) {
	if src, ok := r.sources[id]; ok {
		return src, nil
	}
	return Source{}, fmt.Errorf("source %s is not registered", id)
}

// Enabled lists the enabled sources in processing order.
func (r *Registry) Enabled() []domain.SourceID {
	out := make([]domain.SourceID, 0, len(r.order))
	for _, id := range r.order {
		if !r.sources[id].Disabled {
			out = append(out, id)
		}
	}
	return out
}
