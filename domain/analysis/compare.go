package analysis

import (
	"sort"

	"github.com/sheldcoop/aoi-app/domain/defect"
	"github.com/sheldcoop/aoi-app/domain/panel"
)

// ComparisonRow is one defect type's counts across all four quadrants.
// Counts always carries exactly Q1..Q4; quadrants with no matching records
// are zero-filled so downstream consumers never hit a missing key.
type ComparisonRow struct {
	DefectType string                 `json:"defect_type"`
	Counts     map[panel.Quadrant]int `json:"counts"`
	Total      int                    `json:"total"`
}

// Comparison is the quadrant x defect-type count matrix for the grouped
// side-by-side view. Unknown-quadrant records are tallied separately so
// the four columns stay comparable.
type Comparison struct {
	Rows    []ComparisonRow `json:"rows"`
	Unknown int             `json:"unknown"`
}

// CompareQuadrants builds the count matrix from the full, unfiltered
// record set. Rows are ordered by descending total across quadrants with
// stable first-seen tie order, so the dominant defect types lead.
func CompareQuadrants(records []defect.Record) Comparison {
	index := make(map[string]int)
	cmp := Comparison{Rows: make([]ComparisonRow, 0)}

	for _, r := range records {
		if r.Quadrant == panel.QuadrantUnknown {
			cmp.Unknown++
			continue
		}
		i, seen := index[r.DefectType]
		if !seen {
			i = len(cmp.Rows)
			index[r.DefectType] = i
			row := ComparisonRow{
				DefectType: r.DefectType,
				Counts:     make(map[panel.Quadrant]int, len(panel.Quadrants)),
			}
			for _, q := range panel.Quadrants {
				row.Counts[q] = 0
			}
			cmp.Rows = append(cmp.Rows, row)
		}
		cmp.Rows[i].Counts[r.Quadrant]++
		cmp.Rows[i].Total++
	}

	sort.SliceStable(cmp.Rows, func(i, j int) bool {
		return cmp.Rows[i].Total > cmp.Rows[j].Total
	})
	return cmp
}
