package defect

import (
	"github.com/sheldcoop/aoi-app/domain/panel"
)

// Record represents a single inspected defect with its derived columns.
// DefectType is an open vocabulary: whatever label the inspection machine
// emitted, whitespace-trimmed. Unknown labels are accepted and rendered
// with the fallback style.
type Record struct {
	DefectType string         `json:"defect_type" db:"defect_type"`
	UnitX      int            `json:"unit_index_x" db:"unit_index_x"`
	UnitY      int            `json:"unit_index_y" db:"unit_index_y"`
	Quadrant   panel.Quadrant `json:"quadrant" db:"quadrant"`

	// JitterX and JitterY are drawn once when the dataset is loaded and
	// never recomputed; every render of the same dataset reuses them so
	// markers do not jump between views. Both are in (0.1, 0.9) of one
	// cell width/height.
	JitterX float64 `json:"jitter_x" db:"jitter_x"`
	JitterY float64 `json:"jitter_y" db:"jitter_y"`
}

// CellKey identifies a unit cell for distinct-defective-cell counting.
type CellKey struct {
	X int
	Y int
}

// Cell returns the record's unit-cell key.
func (r Record) Cell() CellKey {
	return CellKey{X: r.UnitX, Y: r.UnitY}
}

// RawRecord is one validated row from the ingestion collaborator, before
// classification and jitter assignment.
type RawRecord struct {
	DefectType string
	UnitX      int
	UnitY      int
}
