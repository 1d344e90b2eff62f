package parser

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"

	"GovtJobsScanner/internal/domain"
	"GovtJobsScanner/internal/ports"
)

// ParseDocument turns a fetched page into a goquery document. Anything but 200 is a fetch failure.
func ParseDocument(page domain.Page) (*goquery.Document, error) {
	if page.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", domain.ErrFetchFailed, page.URL, page.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

// FetchDocument downloads url through fetcher and parses it.
func FetchDocument(ctx context.Context, fetcher ports.PageFetcher, url string) (*goquery.Document, error) {
	page, err := fetcher.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	return ParseDocument(page)
}
