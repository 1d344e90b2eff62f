package parser

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"GovtJobsScanner/internal/domain"
	"GovtJobsScanner/internal/scanner"
)

type candidate struct {
	text string
	href string
}

// Extract applies the source's strategy to doc. Missing markup yields no listings.
func Extract(doc *goquery.Document, src scanner.Source) []domain.Listing {
	if doc == nil {
		return nil
	}

	var candidates []candidate
	switch src.Strategy.Kind {
	case scanner.HeadingList:
		candidates = headingList(doc, src.Strategy)
	case scanner.AnchorScan:
		candidates = anchorScan(doc, src.Strategy)
	case scanner.ClassHeading:
		candidates = classHeading(doc, src.Strategy)
	default:
		return nil
	}

	base, err := url.Parse(src.BaseURL)
	if err != nil || !base.IsAbs() {
		base = nil
	}

	listings := make([]domain.Listing, 0, len(candidates))
	for _, c := range candidates {
		link, ok := absoluteLink(base, c.href)
		if !ok {
			continue
		}
		listing, ok := domain.NewListing(c.text, link, src.ID)
		if !ok {
			continue
		}
		listings = append(listings, listing)
		if src.Strategy.Limit > 0 && len(listings) == src.Strategy.Limit {
			break
		}
	}

	return listings
}

func headingList(doc *goquery.Document, st scanner.Strategy) []candidate {
	var heading *goquery.Selection
	doc.Find(strings.Join(st.Headings, ", ")).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(Collapse(s.Text()), st.Marker) {
			heading = s
			return false
		}
		return true
	})
	if heading == nil {
		return nil
	}

	list := nextList(heading)
	if list == nil {
		return nil
	}

	var out []candidate
	list.Find("li").Each(func(_ int, li *goquery.Selection) {
		a := li.Find("a[href]").First()
		if a.Length() == 0 {
			return
		}
		href, _ := a.Attr("href")
		out = append(out, candidate{text: Collapse(a.Text()), href: href})
	})
	return out
}

// nextList returns the first ul following heading in document order.
func nextList(heading *goquery.Selection) *goquery.Selection {
	for cur := heading; cur.Length() > 0 && !cur.Is("body, html"); cur = cur.Parent() {
		var found *goquery.Selection
		cur.NextAll().EachWithBreak(func(_ int, sib *goquery.Selection) bool {
			if sib.Is("ul") {
				found = sib
				return false
			}
			if nested := sib.Find("ul").First(); nested.Length() > 0 {
				found = nested
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}
	return nil
}

func anchorScan(doc *goquery.Document, st scanner.Strategy) []candidate {
	var out []candidate
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		text := Collapse(a.Text())
		if !containsAny(text, st.Keywords) {
			return
		}
		href, _ := a.Attr("href")
		out = append(out, candidate{text: text, href: href})
	})
	return out
}

func classHeading(doc *goquery.Document, st scanner.Strategy) []candidate {
	selectors := make([]string, 0, len(st.Headings)*len(st.Classes))
	for _, h := range st.Headings {
		for _, c := range st.Classes {
			selectors = append(selectors, h+"."+c)
		}
	}
	if len(selectors) == 0 {
		return nil
	}

	var out []candidate
	doc.Find(strings.Join(selectors, ", ")).Each(func(_ int, h *goquery.Selection) {
		a := h.Find("a[href]").First()
		if a.Length() == 0 {
			return
		}
		text := Collapse(a.Text())
		if len(st.Keywords) > 0 && !containsAny(text, st.Keywords) {
			return
		}
		href, _ := a.Attr("href")
		out = append(out, candidate{text: text, href: href})
	})
	return out
}

func containsAny(text string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// absoluteLink resolves href against base and keeps only http(s) results.
func absoluteLink(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	abs := ref
	if !ref.IsAbs() {
		if base == nil {
			return "", false
		}
		abs = base.ResolveReference(ref)
	}
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return "", false
	}
	return abs.String(), true
}
