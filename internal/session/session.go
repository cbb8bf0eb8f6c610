package session

import (
	"log"
	"sync"

	"github.com/sheldcoop/aoi-app/domain/analysis"
	"github.com/sheldcoop/aoi-app/domain/defect"
	"github.com/sheldcoop/aoi-app/domain/panel"
	"github.com/sheldcoop/aoi-app/internal/errors"
)

// Manager holds the current analysis session: one immutable dataset
// snapshot plus aggregates memoized off it. Loading a new dataset swaps
// everything atomically; reads never mutate, so quadrant filter changes
// and view switches can never reshuffle jitter or recompute positions.
type Manager struct {
	mu sync.RWMutex

	dataset *defect.Dataset

	// Memoized per-snapshot aggregates. Rebuilt only inside Load.
	panelSummary analysis.PanelSummary
	comparison   analysis.Comparison
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{}
}

// Load replaces the current snapshot with a new one as a single batch:
// dataset, summaries and comparison all derive from the same records.
func (m *Manager) Load(d *defect.Dataset) {
	summary := analysis.SummarizePanel(d)
	comparison := analysis.CompareQuadrants(d.Records())

	m.mu.Lock()
	defer m.mu.Unlock()
	m.dataset = d
	m.panelSummary = summary
	m.comparison = comparison

	log.Printf("[session.Load] Snapshot %s loaded (%d records, %d unknown)", d.ID, d.Len(), summary.Unknown)
}

// Reset discards the current snapshot and all derived state.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dataset = nil
	m.panelSummary = analysis.PanelSummary{}
	m.comparison = analysis.Comparison{}
}

// Dataset returns the current snapshot, or an error when nothing has been
// loaded yet. The returned dataset is immutable and safe for concurrent
// reads.
func (m *Manager) Dataset() (*defect.Dataset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.dataset == nil {
		return nil, errors.NotFound("dataset")
	}
	return m.dataset, nil
}

// HasDataset reports whether a snapshot is loaded.
func (m *Manager) HasDataset() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dataset != nil
}

// PanelSummary returns the memoized full-panel breakdown.
func (m *Manager) PanelSummary() (analysis.PanelSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.dataset == nil {
		return analysis.PanelSummary{}, errors.NotFound("dataset")
	}
	return m.panelSummary, nil
}

// Comparison returns the memoized quadrant comparison matrix.
func (m *Manager) Comparison() (analysis.Comparison, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.dataset == nil {
		return analysis.Comparison{}, errors.NotFound("dataset")
	}
	return m.comparison, nil
}

// Scope resolves a quadrant filter against the current snapshot. An empty
// filter or "All" returns every record. An empty result is a valid scope,
// not an error.
func (m *Manager) Scope(filter string) ([]defect.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.dataset == nil {
		return nil, errors.NotFound("dataset")
	}
	if filter == "" || filter == "All" {
		return m.dataset.Records(), nil
	}
	q, err := panel.ParseQuadrant(filter)
	if err != nil {
		return nil, err
	}
	return m.dataset.Filter(q), nil
}
