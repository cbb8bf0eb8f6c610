package panel

import (
	"fmt"

	"github.com/sheldcoop/aoi-app/internal/errors"
)

// Quadrant identifies one of the four sub-panels in the 2x2 arrangement.
// The convention is fixed across the whole system: Q1 bottom-left,
// Q2 bottom-right, Q3 top-left, Q4 top-right.
type Quadrant string

const (
	QuadrantQ1 Quadrant = "Q1"
	QuadrantQ2 Quadrant = "Q2"
	QuadrantQ3 Quadrant = "Q3"
	QuadrantQ4 Quadrant = "Q4"

	// QuadrantUnknown buckets records whose indices fall outside the
	// inspected area. They stay visible in every aggregate; dropping them
	// would hide a data-quality problem.
	QuadrantUnknown Quadrant = "Unknown"
)

// Quadrants lists the four real quadrants in their fixed display order.
var Quadrants = [4]Quadrant{QuadrantQ1, QuadrantQ2, QuadrantQ3, QuadrantQ4}

// String returns the string representation
func (q Quadrant) String() string {
	return string(q)
}

// IsKnown reports whether q is one of the four real quadrants.
func (q Quadrant) IsKnown() bool {
	switch q {
	case QuadrantQ1, QuadrantQ2, QuadrantQ3, QuadrantQ4:
		return true
	}
	return false
}

// ParseQuadrant parses a quadrant label. "All" is not a quadrant and is
// handled by callers as the absence of a filter.
func ParseQuadrant(s string) (Quadrant, error) {
	q := Quadrant(s)
	if q.IsKnown() || q == QuadrantUnknown {
		return q, nil
	}
	return "", errors.InvalidInput(fmt.Sprintf("unknown quadrant %q", s))
}

// Geometry describes a single sub-panel grid. The inspected area is four
// such panels arranged 2x2, separated by Gap grid units.
type Geometry struct {
	Rows int `json:"rows" yaml:"rows"`
	Cols int `json:"cols" yaml:"cols"`
	Gap  int `json:"gap" yaml:"gap"`
}

// Geometry limits accepted from configuration.
const (
	MinPanelDim = 2
	MaxPanelDim = 50
)

// Validate checks the geometry against the accepted configuration range.
func (g Geometry) Validate() error {
	if g.Rows < MinPanelDim || g.Rows > MaxPanelDim {
		return errors.GeometryInvalid(fmt.Sprintf("panel rows must be in [%d, %d], got %d", MinPanelDim, MaxPanelDim, g.Rows))
	}
	if g.Cols < MinPanelDim || g.Cols > MaxPanelDim {
		return errors.GeometryInvalid(fmt.Sprintf("panel cols must be in [%d, %d], got %d", MinPanelDim, MaxPanelDim, g.Cols))
	}
	if g.Gap < 0 {
		return errors.GeometryInvalid(fmt.Sprintf("gap size must be >= 0, got %d", g.Gap))
	}
	return nil
}

// CellCount returns the number of unit cells in a single sub-panel.
func (g Geometry) CellCount() int {
	return g.Rows * g.Cols
}

// TotalWidth returns the width of the union coordinate space in grid units.
func (g Geometry) TotalWidth() float64 {
	return float64(2*g.Cols + g.Gap)
}

// TotalHeight returns the height of the union coordinate space in grid units.
func (g Geometry) TotalHeight() float64 {
	return float64(2*g.Rows + g.Gap)
}

// Origin returns the bottom-left corner of a quadrant in the shared
// coordinate frame. Unknown maps to the Q1 origin; callers are expected to
// skip Unknown records before plotting.
func (g Geometry) Origin(q Quadrant) (x, y float64) {
	switch q {
	case QuadrantQ2:
		return float64(g.Cols + g.Gap), 0
	case QuadrantQ3:
		return 0, float64(g.Rows + g.Gap)
	case QuadrantQ4:
		return float64(g.Cols + g.Gap), float64(g.Rows + g.Gap)
	default:
		return 0, 0
	}
}
