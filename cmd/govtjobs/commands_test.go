package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"GovtJobsScanner/internal/domain"
)

func TestRootCommandTree(t *testing.T) {
	t.Parallel()

	root := newRootCmd()
	if !root.SilenceErrors || !root.SilenceUsage {
		t.Fatalf("errors are logged by the command itself; cobra must stay silent")
	}
	for _, name := range []string{"preview", "commit", "videos", "schedule", "serve"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("command %q not registered: %v", name, err)
		}
	}
}

func TestPrintReportJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := printReport(&buf, domain.RunReport{Mode: domain.ModeCommit, Saved: 1, Duplicates: 2}, true); err != nil {
		t.Fatalf("print: %v", err)
	}

	var out struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Message != "Saved 1 new jobs! Skipped 2 duplicates." {
		t.Fatalf("unexpected message %q", out.Message)
	}
}

func TestPrintReportTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := printReport(&buf, domain.RunReport{Mode: domain.ModePreview, Found: 0}, false); err != nil {
		t.Fatalf("print: %v", err)
	}
	if !strings.Contains(buf.String(), "Found 0 jobs from multiple sites!") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}
