// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "state", "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRuns() []Run {
	base := time.Date(2026, 1, 13, 9, 0, 0, 0, time.UTC)
	return []Run{
		{
			SourcePath: "/docs/a.pdf",
			OutputDir:  "/tmp/out-a",
			Engine:     "fitz",
			Pages:      3,
			Status:     StatusSuccess,
			StartedAt:  base,
			DurationMS: 420,
		},
		{
			SourcePath: "/docs/b.pdf",
			OutputDir:  "/tmp/out-b",
			Engine:     "fitz",
			Pages:      0,
			Status:     StatusFailed,
			Error:      "opening /docs/b.pdf: cannot recognize version marker",
			StartedAt:  base.Add(time.Minute),
			DurationMS: 12,
		},
	}
}

func TestStore_RecordAndList(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	for _, run := range sampleRuns() {
		if err := store.Record(ctx, run); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	runs, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}

	// Newest first.
	if runs[0].SourcePath != "/docs/b.pdf" {
		t.Errorf("runs[0].SourcePath = %q, want /docs/b.pdf", runs[0].SourcePath)
	}
	if runs[0].Status != StatusFailed {
		t.Errorf("runs[0].Status = %q, want %q", runs[0].Status, StatusFailed)
	}
	if runs[0].Error == "" {
		t.Error("failed run should keep its error message")
	}
	if runs[1].Pages != 3 {
		t.Errorf("runs[1].Pages = %d, want 3", runs[1].Pages)
	}
	if got := runs[1].StartedAt; got != time.Date(2026, 1, 13, 9, 0, 0, 0, time.UTC) {
		t.Errorf("StartedAt = %v, want original timestamp", got)
	}
}

func TestStore_ListLimit(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		run := sampleRuns()[0]
		if err := store.Record(ctx, run); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := store.List(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Errorf("got %d runs, want 3", len(runs))
	}
}

func TestStore_ExportYAML(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	if err := store.Record(ctx, sampleRuns()[0]); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := store.ExportYAML(ctx, &buf, 10); err != nil {
		t.Fatalf("ExportYAML: %v", err)
	}

	var decoded []Run
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("export is not valid YAML: %v", err)
	}
	if len(decoded) != 1 || decoded[0].SourcePath != "/docs/a.pdf" {
		t.Errorf("decoded = %+v, want one run for /docs/a.pdf", decoded)
	}
	if !strings.Contains(buf.String(), "source_path: /docs/a.pdf") {
		t.Errorf("export should use yaml field tags, got:\n%s", buf.String())
	}
}

func TestStore_ExportJSON(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	if err := store.Record(ctx, sampleRuns()[1]); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := store.ExportJSON(ctx, &buf, 10); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	var decoded []Run
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Status != StatusFailed {
		t.Errorf("decoded = %+v, want one failed run", decoded)
	}
}
