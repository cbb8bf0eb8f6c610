package analysis

import (
	"github.com/montanaflynn/stats"

	"github.com/sheldcoop/aoi-app/domain/defect"
	"github.com/sheldcoop/aoi-app/domain/panel"
)

// Summary holds the per-scope KPI block: one quadrant's records, or the
// whole panel when Quadrant is empty.
type Summary struct {
	Quadrant               panel.Quadrant `json:"quadrant,omitempty"`
	TotalDefects           int            `json:"total_defects"`
	DistinctDefectiveCells int            `json:"distinct_defective_cells"`
	DefectDensity          float64        `json:"defect_density"`
	YieldEstimate          float64        `json:"yield_estimate"`
}

// Empty reports the valid "no defects in this scope" terminal state.
func (s Summary) Empty() bool {
	return s.TotalDefects == 0
}

// DataQualityFlags names anomalies that are computed and surfaced rather
// than suppressed.
type DataQualityFlags struct {
	// NegativeYield means distinct defective cells exceeded the cell count,
	// which only happens with malformed or duplicated input rows.
	NegativeYield bool `json:"negative_yield"`
	// UnknownQuadrant counts records outside the inspected index range.
	UnknownQuadrant int `json:"unknown_quadrant"`
}

// Summarize computes the KPI block for a record set over one sub-panel's
// cell count. Degenerate geometry yields zeroes instead of dividing by
// zero; a yield estimate below zero is legitimate output, not an error.
func Summarize(records []defect.Record, g panel.Geometry) Summary {
	s := Summary{TotalDefects: len(records)}

	cells := make(map[defect.CellKey]struct{}, len(records))
	for _, r := range records {
		cells[r.Cell()] = struct{}{}
	}
	s.DistinctDefectiveCells = len(cells)

	total := g.CellCount()
	if total <= 0 {
		return s
	}
	s.DefectDensity = float64(s.TotalDefects) / float64(total)
	s.YieldEstimate = float64(total-s.DistinctDefectiveCells) / float64(total)
	return s
}

// SummarizeQuadrant computes the KPI block for a single quadrant's slice of
// the dataset.
func SummarizeQuadrant(d *defect.Dataset, q panel.Quadrant) Summary {
	s := Summarize(d.Filter(q), d.Geometry)
	s.Quadrant = q
	return s
}

// PanelSummary is the full breakdown for the "All" scope: one row per
// quadrant plus the aggregate total, with data-quality flags.
type PanelSummary struct {
	Quadrants []Summary        `json:"quadrants"`
	Total     Summary          `json:"total"`
	Unknown   int              `json:"unknown"`
	Spread    QuadrantSpread   `json:"spread"`
	Flags     DataQualityFlags `json:"flags"`
}

// QuadrantSpread summarizes how unevenly defects distribute across the
// four quadrants, for the KPI strip of the summary view.
type QuadrantSpread struct {
	MeanDefects float64 `json:"mean_defects"`
	MaxDefects  float64 `json:"max_defects"`
	StdDev      float64 `json:"std_dev"`
}

// SummarizePanel computes per-quadrant KPI rows, the aggregate row over all
// four cell grids, the unknown-bucket count and the quadrant spread.
func SummarizePanel(d *defect.Dataset) PanelSummary {
	out := PanelSummary{}

	counts := make([]float64, 0, len(panel.Quadrants))
	for _, q := range panel.Quadrants {
		s := SummarizeQuadrant(d, q)
		out.Quadrants = append(out.Quadrants, s)
		counts = append(counts, float64(s.TotalDefects))
	}

	// Aggregate row: the whole inspected area is four panels of cells.
	total := 4 * d.Geometry.CellCount()
	agg := Summary{TotalDefects: d.Len()}
	cells := make(map[defect.CellKey]struct{}, d.Len())
	for _, r := range d.Records() {
		cells[r.Cell()] = struct{}{}
	}
	agg.DistinctDefectiveCells = len(cells)
	if total > 0 {
		agg.DefectDensity = float64(agg.TotalDefects) / float64(total)
		agg.YieldEstimate = float64(total-agg.DistinctDefectiveCells) / float64(total)
	}
	out.Total = agg

	out.Unknown = d.UnknownCount()
	out.Flags.UnknownQuadrant = out.Unknown
	for _, s := range out.Quadrants {
		if s.YieldEstimate < 0 {
			out.Flags.NegativeYield = true
		}
	}
	if agg.YieldEstimate < 0 {
		out.Flags.NegativeYield = true
	}

	if mean, err := stats.Mean(counts); err == nil {
		out.Spread.MeanDefects = mean
	}
	if max, err := stats.Max(counts); err == nil {
		out.Spread.MaxDefects = max
	}
	if sd, err := stats.StandardDeviation(counts); err == nil {
		out.Spread.StdDev = sd
	}

	return out
}
