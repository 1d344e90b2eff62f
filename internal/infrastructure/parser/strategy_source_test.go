package parser

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GovtJobsScanner/internal/domain"
	"GovtJobsScanner/internal/infrastructure/httpfetch"
	"GovtJobsScanner/internal/scanner"
)

func TestStrategySourceScan(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/linkingsky/":
			_, _ = w.Write([]byte(`<h2 class="entry-title"><a href="/post-1/">Bihar Police Driver Recruitment 2026</a></h2>`))
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer server.Close()

	reg := scanner.NewRegistry()
	require.NoError(t, reg.Apply(domain.SourceLinkingSky, scanner.Override{URL: server.URL + "/linkingsky/"}))
	require.NoError(t, reg.Apply(domain.SourceSarkariResult, scanner.Override{URL: server.URL + "/down/"}))

	src := NewStrategySource(reg, httpfetch.New(server.Client(), "", time.Second), nil)

	listings, err := src.Scan(context.Background(), domain.SourceLinkingSky)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "https://linkingsky.com/post-1/", listings[0].Link)

	_, err = src.Scan(context.Background(), domain.SourceSarkariResult)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrFetchFailed))
}

func TestStrategySourceSources(t *testing.T) {
	t.Parallel()

	reg := scanner.NewRegistry()
	require.NoError(t, reg.Apply(domain.SourceOdishaGovtJob, scanner.Override{Disabled: true}))

	src := NewStrategySource(reg, nil, nil)
	assert.NotContains(t, src.Sources(), domain.SourceOdishaGovtJob)

	_, err := src.Scan(context.Background(), domain.SourceIndGovtJobs)
	assert.Error(t, err)
}
