// Package deadline recovers application deadlines from listing titles and detail pages.
package deadline

import (
	"regexp"
	"strings"
	"time"

	"GovtJobsScanner/internal/dates"
)

const labels = `(?:Last Date|Closing Date|Application Last Date|Last Date for Apply|Deadline|Last Date to Apply)`

// patterns are tried in order; each contributes only its first match.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)` + labels + `[\s:.-]*(\d{1,2}[./-]\d{1,2}[./-]\d{2,4})`),
	regexp.MustCompile(`(?i)` + labels + `[\s:.-]*(\d{1,2}\s+[A-Za-z]+,?\s+\d{4})`),
	regexp.MustCompile(`(\d{1,2}[./-]\d{1,2}[./-]\d{2,4})`),
}

// FromText scans free text for a deadline. Labeled dates beat unlabeled ones.
func FromText(text string) (time.Time, bool) {
	if strings.TrimSpace(text) == "" {
		return time.Time{}, false
	}
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if d, ok := dates.Parse(strings.TrimSpace(m[1])); ok {
			return d, true
		}
	}
	return time.Time{}, false
}
