package scanner

import "GovtJobsScanner/internal/domain"

// anchorScanLimit bounds output from pages where most anchors are noise.
const anchorScanLimit = 20

var defaultSources = map[domain.SourceID]Source{
	domain.SourceIndGovtJobs: {
		ID:      domain.SourceIndGovtJobs,
		URL:     "https://www.indgovtjobs.in/",
		BaseURL: "https://www.indgovtjobs.in",
		Strategy: Strategy{
			Kind:     HeadingList,
			Headings: []string{"h2", "h3"},
			Marker:   "Latest Government Jobs",
		},
	},
	domain.SourceSarkariResult: {
		ID:      domain.SourceSarkariResult,
		URL:     "https://www.sarkariresult.com/",
		BaseURL: "https://www.sarkariresult.com",
		Strategy: Strategy{
			Kind:     AnchorScan,
			Keywords: []string{"form", "recruitment", "notification", "2026", "vacancy"},
			Limit:    anchorScanLimit,
		},
	},
	domain.SourceFreeJobAlert: {
		ID:      domain.SourceFreeJobAlert,
		URL:     "https://www.freejobalert.com/",
		BaseURL: "https://www.freejobalert.com",
		Strategy: Strategy{
			Kind:     AnchorScan,
			Keywords: []string{"form", "recruitment", "2026", "jobs", "vacancy"},
			Limit:    anchorScanLimit,
		},
	},
	domain.SourceLinkingSky: {
		ID:      domain.SourceLinkingSky,
		URL:     "https://linkingsky.com/",
		BaseURL: "https://linkingsky.com",
		Strategy: Strategy{
			Kind:     ClassHeading,
			Headings: []string{"h2"},
			Classes:  []string{"entry-title"},
		},
	},
	domain.SourceOdishaGovtJob: {
		ID:      domain.SourceOdishaGovtJob,
		URL:     "https://odishagovtjob.in/",
		BaseURL: "https://odishagovtjob.in",
		Strategy: Strategy{
			Kind:     ClassHeading,
			Headings: []string{"h3", "h2"},
			Classes:  []string{"post-title", "entry-title"},
			Keywords: []string{"recruitment", "job", "notification", "2026", "ossc", "odisha"},
			Limit:    anchorScanLimit,
		},
	},
}
