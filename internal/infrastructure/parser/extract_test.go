package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GovtJobsScanner/internal/domain"
	"GovtJobsScanner/internal/scanner"
)

func newDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	return doc
}

func source(t *testing.T, id domain.SourceID) scanner.Source {
	t.Helper()

	src, err := scanner.NewRegistry().Resolve(id)
	require.NoError(t, err)
	return src
}

func TestExtractHeadingList(t *testing.T) {
	t.Parallel()

	html := `
	<div>
	  <h2>Popular Posts</h2>
	  <ul><li><a href="/popular">Popular post that is not a job</a></li></ul>
	  <h3>Latest Government Jobs 2026</h3>
	  <p>Updated daily</p>
	  <ul>
	    <li><a href="/aiims-bhubaneswar-recruitment">AIIMS Bhubaneswar Recruitment 2026</a></li>
	    <li><a href="https://other.example.org/ssc-cgl">SSC CGL
	        Notification 2026 Out</a></li>
	    <li><a href="/short">Short</a></li>
	    <li>No anchor here at all</li>
	  </ul>
	</div>`

	listings := Extract(newDoc(t, html), source(t, domain.SourceIndGovtJobs))

	require.Len(t, listings, 2)
	assert.Equal(t, domain.Listing{
		Title:  "AIIMS Bhubaneswar Recruitment 2026",
		Link:   "https://www.indgovtjobs.in/aiims-bhubaneswar-recruitment",
		Source: domain.SourceIndGovtJobs,
	}, listings[0])
	assert.Equal(t, "SSC CGL Notification 2026 Out", listings[1].Title)
	assert.Equal(t, "https://other.example.org/ssc-cgl", listings[1].Link)
}

func TestExtractHeadingListAcrossContainers(t *testing.T) {
	t.Parallel()

	html := `
	<div class="widget"><h2>Latest Government Jobs</h2></div>
	<div class="widget-body"><ul><li><a href="jobs/bihar-police">Bihar Police Constable Recruitment</a></li></ul></div>`

	listings := Extract(newDoc(t, html), source(t, domain.SourceIndGovtJobs))

	require.Len(t, listings, 1)
	assert.Equal(t, "https://www.indgovtjobs.in/jobs/bihar-police", listings[0].Link)
}

func TestExtractHeadingListMissingMarkup(t *testing.T) {
	t.Parallel()

	for _, html := range []string{
		`<html><body><p>maintenance</p></body></html>`,
		`<h2>Latest Government Jobs</h2><p>no list follows</p>`,
		``,
	} {
		assert.Empty(t, Extract(newDoc(t, html), source(t, domain.SourceIndGovtJobs)))
	}
}

func TestExtractAnchorScanCapsAndFilters(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString(`<a href="/about">About us and our long story</a>`)
	b.WriteString(`<a href="javascript:void(0)">Recruitment popup opener link</a>`)
	b.WriteString(`<a>Recruitment anchor without href</a>`)
	b.WriteString(`<a href="/form">Form 2026 Apply</a>`)
	b.WriteString(`<a href="/form-ok">Form 2026 Apply!</a>`)
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&b, `<a href="/job/%d">Railway VACANCY Notice Number %02d</a>`, i, i)
	}

	listings := Extract(newDoc(t, b.String()), source(t, domain.SourceSarkariResult))

	require.Len(t, listings, 20)
	assert.Equal(t, "Form 2026 Apply!", listings[0].Title)
	assert.Equal(t, "https://www.sarkariresult.com/form-ok", listings[0].Link)
	assert.Equal(t, "https://www.sarkariresult.com/job/0", listings[1].Link)
	for _, l := range listings {
		assert.Greater(t, len([]rune(l.Title)), domain.MinTitleLength)
		assert.True(t, strings.HasPrefix(l.Link, "https://www.sarkariresult.com/"), l.Link)
		assert.Equal(t, domain.SourceSarkariResult, l.Source)
	}
}

func TestExtractAnchorScanUsesSourceKeywords(t *testing.T) {
	t.Parallel()

	html := `
	<a href="/latest-jobs">Latest Jobs For Graduates Today</a>
	<a href="/notification">Notification For Admit Card Release</a>`

	free := Extract(newDoc(t, html), source(t, domain.SourceFreeJobAlert))
	require.Len(t, free, 1)
	assert.Equal(t, "https://www.freejobalert.com/latest-jobs", free[0].Link)

	sarkari := Extract(newDoc(t, html), source(t, domain.SourceSarkariResult))
	require.Len(t, sarkari, 1)
	assert.Equal(t, "https://www.sarkariresult.com/notification", sarkari[0].Link)
}

func TestExtractClassHeading(t *testing.T) {
	t.Parallel()

	html := `
	<article>
	  <h2 class="entry-title"><a href="https://linkingsky.com/ossc-cgl-2026/">OSSC CGL Recruitment 2026 Apply Online</a></h2>
	  <h2 class="entry-title"><a href="/relative-post/">Odisha Anganwadi Worker Vacancy</a></h2>
	  <h2 class="sidebar-title"><a href="/ignored/">Sidebar heading that is ignored</a></h2>
	  <h3 class="entry-title"><a href="/h3/">Heading three is not used here</a></h3>
	  <h2 class="entry-title">No anchor in this heading</h2>
	</article>`

	listings := Extract(newDoc(t, html), source(t, domain.SourceLinkingSky))

	require.Len(t, listings, 2)
	assert.Equal(t, "https://linkingsky.com/ossc-cgl-2026/", listings[0].Link)
	assert.Equal(t, "https://linkingsky.com/relative-post/", listings[1].Link)
}

func TestExtractClassHeadingKeywordFilter(t *testing.T) {
	t.Parallel()

	html := `
	<h3 class="post-title"><a href="/ossc-cts">OSSC Combined Technical Services Exam</a></h3>
	<h2 class="entry-title"><a href="/puri">Best Places To Visit In Puri Today</a></h2>
	<h2 class="post-title"><a href="/odisha-police">Odisha Police SI Recruitment 2026</a></h2>`

	listings := Extract(newDoc(t, html), source(t, domain.SourceOdishaGovtJob))

	require.Len(t, listings, 2)
	assert.Equal(t, "https://odishagovtjob.in/ossc-cts", listings[0].Link)
	assert.Equal(t, "https://odishagovtjob.in/odisha-police", listings[1].Link)
}

func TestAbsoluteLink(t *testing.T) {
	t.Parallel()

	src := source(t, domain.SourceFreeJobAlert)
	doc := newDoc(t, `
	<a href="//cdn.freejobalert.com/jobs/1">Jobs protocol relative link</a>
	<a href="mailto:jobs@example.org">Jobs mailbox for questions</a>
	<a href="  /jobs/2  ">Jobs with padded href value</a>`)

	listings := Extract(doc, src)

	require.Len(t, listings, 2)
	assert.Equal(t, "https://cdn.freejobalert.com/jobs/1", listings[0].Link)
	assert.Equal(t, "https://www.freejobalert.com/jobs/2", listings[1].Link)
}
