package layout

import (
	"github.com/sheldcoop/aoi-app/domain/defect"
	"github.com/sheldcoop/aoi-app/domain/panel"
)

// Point is a plot-ready position in the shared coordinate frame together
// with the identifying columns the rendering collaborator needs for
// hover/tooltip output.
type Point struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	DefectType string  `json:"defect_type"`
	UnitX      int     `json:"unit_index_x"`
	UnitY      int     `json:"unit_index_y"`
}

// Map converts a classified record into its global position: local cell
// coordinates within the sub-panel, plus the quadrant origin offset, plus
// the record's stored jitter. Pure given the record's jitter pair, so
// calling it twice yields bit-identical output.
//
// Unknown-quadrant records have no position in the frame; ok is false.
func Map(r defect.Record, g panel.Geometry) (p Point, ok bool) {
	if !r.Quadrant.IsKnown() {
		return Point{}, false
	}
	ox, oy := g.Origin(r.Quadrant)
	return Point{
		X:          float64(r.UnitY%g.Cols) + ox + r.JitterX,
		Y:          float64(r.UnitX%g.Rows) + oy + r.JitterY,
		DefectType: r.DefectType,
		UnitX:      r.UnitX,
		UnitY:      r.UnitY,
	}, true
}

// MapLocal maps a record into single-quadrant (zoomed) coordinates: the
// same local cell and the same jitter, with no origin offset.
func MapLocal(r defect.Record, g panel.Geometry) (p Point, ok bool) {
	if !r.Quadrant.IsKnown() {
		return Point{}, false
	}
	return Point{
		X:          float64(r.UnitY%g.Cols) + r.JitterX,
		Y:          float64(r.UnitX%g.Rows) + r.JitterY,
		DefectType: r.DefectType,
		UnitX:      r.UnitX,
		UnitY:      r.UnitY,
	}, true
}

// Trace is one defect type's worth of plot-ready points.
type Trace struct {
	DefectType string       `json:"defect_type"`
	Style      defect.Style `json:"style"`
	Points     []Point      `json:"points"`
}

// Traces groups mapped points by defect type in first-seen order, ready for
// direct plotting. local selects the zoomed single-quadrant mapping.
// Unknown-quadrant records are skipped here; aggregation still counts them.
func Traces(records []defect.Record, g panel.Geometry, styles defect.StyleConfig, local bool) []Trace {
	index := make(map[string]int)
	traces := make([]Trace, 0)

	for _, r := range records {
		var (
			p  Point
			ok bool
		)
		if local {
			p, ok = MapLocal(r, g)
		} else {
			p, ok = Map(r, g)
		}
		if !ok {
			continue
		}

		i, seen := index[r.DefectType]
		if !seen {
			i = len(traces)
			index[r.DefectType] = i
			traces = append(traces, Trace{
				DefectType: r.DefectType,
				Style:      styles.Lookup(r.DefectType),
			})
		}
		traces[i].Points = append(traces[i].Points, p)
	}
	return traces
}
