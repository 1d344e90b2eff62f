// Package dates turns date-like snippets found in job titles and pages into calendar dates.
package dates

import (
	"strings"
	"time"
)

// layouts are tried in order; the first one that parses wins.
var layouts = []string{
	"2.1.2006",
	"2-1-2006",
	"2/1/2006",
	"2.1.06",
	"2-1-06",
	"2/1/06",
	"2 Jan 2006",
	"2 January 2006",
	"2 Jan, 2006",
	"2 January, 2006",
}

// Parse reads text as a day-first date. The returned time is midnight UTC.
// Years before 2000 are moved into the 2000s, so "26" always means 2026.
func Parse(text string) (time.Time, bool) {
	value := strings.Join(strings.Fields(text), " ")
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		year := parsed.Year()
		if year < 2000 {
			year = 2000 + year%100
		}
		return time.Date(year, parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), true
	}

	return time.Time{}, false
}
