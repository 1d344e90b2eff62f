package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MinTitleLength is the title length a listing must exceed to be kept.
// Shorter anchor texts are navigation or boilerplate.
const MinTitleLength = 15

// SourceID identifies one of the known listing pages.
type SourceID string

const (
	SourceIndGovtJobs   SourceID = "indgovtjobs"
	SourceSarkariResult SourceID = "sarkariresult"
	SourceFreeJobAlert  SourceID = "freejobalert"
	SourceLinkingSky    SourceID = "linkingsky"
	SourceOdishaGovtJob SourceID = "odishagovtjob"
)

// KnownSources lists every source in processing order.
func KnownSources() []SourceID {
	return []SourceID{
		SourceIndGovtJobs,
		SourceSarkariResult,
		SourceFreeJobAlert,
		SourceLinkingSky,
		SourceOdishaGovtJob,
	}
}

// Valid reports whether id belongs to the known enumeration.
func (id SourceID) Valid() bool {
	for _, known := range KnownSources() {
		if id == known {
			return true
		}
	}
	return false
}

// Listing is a single job posting as extracted from a source page.
type Listing struct {
	Title  string   `json:"title"`
	Link   string   `json:"link"`
	Source SourceID `json:"sourceName"`
}

// NewListing trims the title and returns false when it is too short to be a real posting.
func NewListing(title, link string, source SourceID) (Listing, bool) {
	l := Listing{Title: strings.TrimSpace(title), Link: strings.TrimSpace(link), Source: source}
	return l, l.Admissible()
}

// Admissible reports whether the listing may enter the persistence stage.
func (l Listing) Admissible() bool {
	return l.Link != "" && utf8.RuneCountInString(strings.TrimSpace(l.Title)) > MinTitleLength
}

// Key returns the identity used by duplicate checks.
func (l Listing) Key() RecordKey {
	return RecordKey{Title: l.Title, Link: l.Link}
}

// RecordKey is the equality predicate of the duplicate check.
type RecordKey struct {
	Title string
	Link  string
}

// Record is what gets written to a category partition. Records are never updated.
type Record struct {
	Title      string     `json:"title" bson:"title"`
	Link       string     `json:"link" bson:"link"`
	Category   Category   `json:"category" bson:"category"`
	Source     SourceID   `json:"sourceName" bson:"sourceName"`
	Deadline   *time.Time `json:"deadline,omitempty" bson:"deadline,omitempty"`
	IngestedAt time.Time  `json:"ingestedAt" bson:"ingestedAt"`
	// Video is set only for channel-feed records.
	Video      *VideoMeta `json:"video,omitempty" bson:"video,omitempty"`
}

// Key returns the identity used by duplicate checks.
func (r Record) Key() RecordKey {
	return RecordKey{Title: r.Title, Link: r.Link}
}
