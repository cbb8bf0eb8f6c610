package panel

// Classify assigns a unit-cell index pair to a quadrant by index halving.
// The inspected area is treated as a 2x2 arrangement of sub-panels, each
// Rows x Cols; whichever half of the doubled index range each coordinate
// falls in decides the quadrant:
//
//	Q1: x < Rows, y < Cols    Q2: x < Rows, y >= Cols
//	Q3: x >= Rows, y < Cols   Q4: x >= Rows, y >= Cols
//
// Indices outside [0, 2*Rows) x [0, 2*Cols) classify to QuadrantUnknown
// rather than mis-bucketing into a real quadrant.
func Classify(unitX, unitY int, g Geometry) Quadrant {
	if unitX < 0 || unitY < 0 || unitX >= 2*g.Rows || unitY >= 2*g.Cols {
		return QuadrantUnknown
	}
	switch {
	case unitX < g.Rows && unitY < g.Cols:
		return QuadrantQ1
	case unitX < g.Rows:
		return QuadrantQ2
	case unitY < g.Cols:
		return QuadrantQ3
	default:
		return QuadrantQ4
	}
}
