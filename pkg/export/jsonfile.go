package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/elonfeng/hashradar/internal/store"
)

// JSONFile writes each run to its own file under a data directory.
type JSONFile struct {
	dir string
}

// NewJSONFile creates a file exporter writing into dir.
func NewJSONFile(dir string) *JSONFile {
	return &JSONFile{dir: dir}
}

func (j *JSONFile) Name() string { return "jsonfile" }

// envelope is the on-disk document: the run header plus its ranked
// trends.
type envelope struct {
	Run    *store.Run           `json:"run"`
	Trends []store.HashtagTrend `json:"trends"`
}

func (j *JSONFile) Export(ctx context.Context, run *store.Run, trends []store.HashtagTrend) error {
	if err := os.MkdirAll(j.dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	data, err := json.MarshalIndent(envelope{Run: run, Trends: trends}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}

	path := filepath.Join(j.dir, j.filename(run))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export %s: %w", path, err)
	}
	return nil
}

func (j *JSONFile) filename(run *store.Run) string {
	return fmt.Sprintf("hashradar_top10_%s_%s.json",
		run.Category, run.StartedAt.Format("20060102_150405"))
}
