// Package export fans finished runs out to their destinations: a JSON
// file per run, a remote Postgres table, a signed webhook.
package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/elonfeng/hashradar/internal/store"
)

// Exporter delivers a finished run to a specific destination.
type Exporter interface {
	Name() string
	Export(ctx context.Context, run *store.Run, trends []store.HashtagTrend) error
}

// Manager broadcasts finished runs to all registered exporters.
type Manager struct {
	exporters []Exporter
}

// NewManager creates a new export manager.
func NewManager(exporters []Exporter) *Manager {
	return &Manager{exporters: exporters}
}

// HasExporters returns true if at least one exporter is configured.
func (m *Manager) HasExporters() bool {
	return len(m.exporters) > 0
}

// Export sends the run to all registered exporters. One failing target
// does not stop the others; failures come back joined.
func (m *Manager) Export(ctx context.Context, run *store.Run, trends []store.HashtagTrend) error {
	var errs []error
	for _, exporter := range m.exporters {
		if err := exporter.Export(ctx, run, trends); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", exporter.Name(), err))
		}
	}
	return errors.Join(errs...)
}
