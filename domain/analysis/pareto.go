package analysis

import (
	"sort"

	"github.com/sheldcoop/aoi-app/domain/defect"
)

// ParetoEntry is one row of the ranked defect-type distribution.
type ParetoEntry struct {
	DefectType           string  `json:"defect_type"`
	Count                int     `json:"count"`
	Percentage           float64 `json:"percentage"`
	CumulativePercentage float64 `json:"cumulative_percentage"`
}

// Pareto ranks defect types by descending count with running cumulative
// percentage. Ties keep first-encountered order (stable sort), so repeated
// runs over the same records produce the same ranking. An empty record set
// yields an empty slice, not an error; for any non-empty set the last
// entry's cumulative percentage is 100 within floating-point tolerance.
func Pareto(records []defect.Record) []ParetoEntry {
	if len(records) == 0 {
		return nil
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, r := range records {
		if _, seen := counts[r.DefectType]; !seen {
			order = append(order, r.DefectType)
		}
		counts[r.DefectType]++
	}

	entries := make([]ParetoEntry, 0, len(order))
	for _, t := range order {
		entries = append(entries, ParetoEntry{DefectType: t, Count: counts[t]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	total := float64(len(records))
	running := 0
	for i := range entries {
		running += entries[i].Count
		entries[i].Percentage = float64(entries[i].Count) / total * 100
		entries[i].CumulativePercentage = float64(running) / total * 100
	}
	return entries
}
