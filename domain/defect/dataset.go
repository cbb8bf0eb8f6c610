package defect

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/sheldcoop/aoi-app/domain/core"
	"github.com/sheldcoop/aoi-app/domain/panel"
)

// Jitter bounds: offsets live in (JitterMin, JitterMin+JitterSpan) of one
// cell so markers never sit exactly on a grid line.
const (
	JitterMin  = 0.1
	JitterSpan = 0.8
)

// Dataset is the immutable snapshot of one loaded inspection file: the
// classified records with their jitter attached exactly once. All views
// (quadrant filters, map, Pareto, summary) read this snapshot; the only way
// to change it is to load a new one, which replaces everything atomically.
type Dataset struct {
	ID       core.DatasetID
	Source   string
	Geometry panel.Geometry
	LoadedAt time.Time

	records     []Record
	fingerprint core.Hash
}

// NewDataset classifies the raw records against the geometry and assigns
// jitter in a single pass. The jitter draw is seeded from the source name
// and row index, so loading the same file twice reproduces identical
// positions even across processes.
func NewDataset(source string, raw []RawRecord, g panel.Geometry) (*Dataset, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	records := make([]Record, len(raw))
	for i, r := range raw {
		rng := rand.New(rand.NewSource(core.Seed64(source, i)))
		records[i] = Record{
			DefectType: r.DefectType,
			UnitX:      r.UnitX,
			UnitY:      r.UnitY,
			Quadrant:   panel.Classify(r.UnitX, r.UnitY, g),
			JitterX:    JitterMin + rng.Float64()*JitterSpan,
			JitterY:    JitterMin + rng.Float64()*JitterSpan,
		}
	}

	return &Dataset{
		ID:          core.DatasetID(core.NewID()),
		Source:      source,
		Geometry:    g,
		LoadedAt:    time.Now(),
		records:     records,
		fingerprint: fingerprint(records),
	}, nil
}

// fingerprint hashes the raw content of the records. Derived columns are
// excluded, so the same input file always produces the same fingerprint no
// matter when or where it was loaded.
func fingerprint(records []Record) core.Hash {
	var b strings.Builder
	for _, r := range records {
		fmt.Fprintf(&b, "%s|%d|%d\n", r.DefectType, r.UnitX, r.UnitY)
	}
	return core.NewHash([]byte(b.String()))
}

// Restore rebuilds a dataset from already-derived records, e.g. rows read
// back from the snapshot repository. Jitter is taken as stored, not redrawn.
func Restore(id core.DatasetID, source string, g panel.Geometry, loadedAt time.Time, records []Record) *Dataset {
	return &Dataset{
		ID:          id,
		Source:      source,
		Geometry:    g,
		LoadedAt:    loadedAt,
		records:     records,
		fingerprint: fingerprint(records),
	}
}

// Fingerprint returns the content hash of the raw records. Two snapshots
// of the same input data share a fingerprint even across restores.
func (d *Dataset) Fingerprint() core.Hash {
	return d.fingerprint
}

// Records returns the full classified record list. Callers must treat the
// slice as read-only; it is shared by every view of the snapshot.
func (d *Dataset) Records() []Record {
	return d.records
}

// Len returns the number of records in the snapshot.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Filter returns the records assigned to one quadrant. The returned slice
// points at the same backing records, so jitter stays byte-for-byte stable
// across filter changes.
func (d *Dataset) Filter(q panel.Quadrant) []Record {
	out := make([]Record, 0, len(d.records))
	for _, r := range d.records {
		if r.Quadrant == q {
			out = append(out, r)
		}
	}
	return out
}

// UnknownCount returns how many records classified outside the inspected
// area. Surfaced by the summary endpoints as a data-quality signal.
func (d *Dataset) UnknownCount() int {
	n := 0
	for _, r := range d.records {
		if r.Quadrant == panel.QuadrantUnknown {
			n++
		}
	}
	return n
}
