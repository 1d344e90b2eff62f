package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"GovtJobsScanner/internal/domain"
)

func TestPublishSummary(t *testing.T) {
	t.Parallel()

	var gotPath, gotChat, gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotChat = r.PostForm.Get("chat_id")
		gotText = r.PostForm.Get("text")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewNotifier("TOKEN", "42").WithAPIBase(srv.URL)
	report := domain.RunReport{
		Mode:       domain.ModeCommit,
		Saved:      2,
		Duplicates: 5,
		Sources: []domain.SourceReport{
			{Source: domain.SourceIndGovtJobs, Found: 7},
			{Source: domain.SourceFreeJobAlert, Error: "timeout"},
		},
	}
	if err := n.PublishSummary(context.Background(), report); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if gotPath != "/botTOKEN/sendMessage" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotChat != "42" {
		t.Fatalf("unexpected chat %q", gotChat)
	}
	want := "Saved 2 new jobs! Skipped 5 duplicates.\n- indgovtjobs: 7\n- freejobalert: failed"
	if gotText != want {
		t.Fatalf("unexpected text:\n%s", gotText)
	}
}

func TestPublishSummaryErrors(t *testing.T) {
	t.Parallel()

	if err := NewNotifier("", "").PublishSummary(context.Background(), domain.RunReport{}); err == nil {
		t.Fatalf("expected misconfiguration error")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	if err := NewNotifier("T", "1").WithAPIBase(srv.URL).PublishSummary(context.Background(), domain.RunReport{}); err == nil {
		t.Fatalf("expected error on non-200 response")
	}
}
