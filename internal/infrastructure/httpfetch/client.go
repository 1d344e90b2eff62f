package httpfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"GovtJobsScanner/internal/domain"
	"GovtJobsScanner/internal/ports"
)

// DefaultUserAgent is sent on every request; several sources block clients without one.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) GovtJobsScanner/1.0"

const maxBodyBytes = 8 << 20

// Client performs GET requests with a fixed user agent and per-request timeout.
type Client struct {
	http      *http.Client
	userAgent string
	timeout   time.Duration
}

var _ ports.PageFetcher = (*Client)(nil)

// New wires an HTTP client; a nil client gets a default transport.
func New(client *http.Client, userAgent string, timeout time.Duration) *Client {
	if client == nil {
		client = &http.Client{}
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{http: client, userAgent: userAgent, timeout: timeout}
}

// WithTimeout returns a copy sharing the transport but using another timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	cp := *c
	if timeout > 0 {
		cp.timeout = timeout
	}
	return &cp
}

// Get fetches url. Any status code is returned as a page; transport errors wrap domain.ErrFetchFailed.
func (c *Client) Get(ctx context.Context, url string) (domain.Page, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Page{}, fmt.Errorf("%w: build request: %v", domain.ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Page{}, fmt.Errorf("%w: request %s: %v", domain.ErrFetchFailed, url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return domain.Page{}, fmt.Errorf("%w: read body %s: %v", domain.ErrFetchFailed, url, err)
	}

	return domain.Page{URL: url, StatusCode: resp.StatusCode, Body: body}, nil
}
