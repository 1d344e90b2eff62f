package httpfetch

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
)

func TestGetSendsUserAgent(t *testing.T) {
	t.Parallel()

	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer server.Close()

	client := New(server.Client(), "", time.Second)
	page, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, DefaultUserAgent, gotAgent)
	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.Equal(t, "<html>ok</html>", string(page.Body))
}

func TestGetReturnsNon200AsPage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	page, err := New(server.Client(), "test-agent", time.Second).Get(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, page.StatusCode)
}

func TestGetTimeoutIsFetchFailure(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := New(server.Client(), "", time.Second).WithTimeout(50 * time.Millisecond)
	_, err := client.Get(context.Background(), server.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrFetchFailed))
}
