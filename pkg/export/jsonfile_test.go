package export

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestJSONFileExport(t *testing.T) {
	dir := t.TempDir()
	j := NewJSONFile(filepath.Join(dir, "data"))

	run := sampleRun()
	trends := sampleTrends()
	if err := j.Export(context.Background(), run, trends); err != nil {
		t.Fatalf("Export: %v", err)
	}

	path := filepath.Join(dir, "data", "hashradar_top10_technology_20250820_120000.json")
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if env.Run.ID != run.ID || env.Run.ExportID != run.ExportID {
		t.Errorf("run header = %+v", env.Run)
	}
	if len(env.Trends) != 2 {
		t.Fatalf("got %d trends, want 2", len(env.Trends))
	}
	if env.Trends[0].Hashtag != "ai" || env.Trends[0].Rank != 1 {
		t.Errorf("first trend = %+v", env.Trends[0])
	}
	if !env.Trends[1].Estimated {
		t.Errorf("estimated flag lost in export")
	}
}

func TestJSONFileExportOverwritesSameRun(t *testing.T) {
	dir := t.TempDir()
	j := NewJSONFile(dir)

	run := sampleRun()
	if err := j.Export(context.Background(), run, sampleTrends()); err != nil {
		t.Fatalf("first export: %v", err)
	}
	if err := j.Export(context.Background(), run, sampleTrends()[:1]); err != nil {
		t.Fatalf("second export: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d files, want 1", len(entries))
	}
}
