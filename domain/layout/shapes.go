package layout

import (
	"github.com/sheldcoop/aoi-app/domain/panel"
)

// Rect is an axis-aligned rectangle in the shared coordinate frame.
type Rect struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Line is a grid line segment.
type Line struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Grid is the boundary geometry handed to the rendering collaborator.
// It depends only on the panel geometry, never on the record set.
type Grid struct {
	Panels    []Rect     `json:"panels"`
	GridLines []Line     `json:"grid_lines"`
	XTicks    []float64  `json:"x_ticks"`
	YTicks    []float64  `json:"y_ticks"`
	XRange    [2]float64 `json:"x_range"`
	YRange    [2]float64 `json:"y_range"`
}

// GridShapes builds the full 2x2 panel layout: four panel rectangles, the
// inner cell grid lines for each, cell-centered tick positions for both
// doubled index axes, and the axis ranges of the union coordinate space.
func GridShapes(g panel.Geometry) Grid {
	grid := Grid{
		XRange: [2]float64{-float64(g.Gap), g.TotalWidth()},
		YRange: [2]float64{-float64(g.Gap), g.TotalHeight()},
	}

	for _, q := range panel.Quadrants {
		ox, oy := g.Origin(q)
		grid.Panels = append(grid.Panels, Rect{
			X0: ox, Y0: oy,
			X1: ox + float64(g.Cols), Y1: oy + float64(g.Rows),
		})
		for i := 1; i < g.Cols; i++ {
			grid.GridLines = append(grid.GridLines, Line{
				X0: ox + float64(i), Y0: oy,
				X1: ox + float64(i), Y1: oy + float64(g.Rows),
			})
		}
		for i := 1; i < g.Rows; i++ {
			grid.GridLines = append(grid.GridLines, Line{
				X0: ox, Y0: oy + float64(i),
				X1: ox + float64(g.Cols), Y1: oy + float64(i),
			})
		}
	}

	// Ticks sit at cell centers of both sub-panels on each axis.
	for i := 0; i < g.Cols; i++ {
		grid.XTicks = append(grid.XTicks, float64(i)+0.5)
	}
	for i := 0; i < g.Cols; i++ {
		grid.XTicks = append(grid.XTicks, float64(i+g.Cols+g.Gap)+0.5)
	}
	for i := 0; i < g.Rows; i++ {
		grid.YTicks = append(grid.YTicks, float64(i)+0.5)
	}
	for i := 0; i < g.Rows; i++ {
		grid.YTicks = append(grid.YTicks, float64(i+g.Rows+g.Gap)+0.5)
	}

	return grid
}

// SinglePanelShapes builds the zoomed view for one quadrant: a single panel
// drawn at the origin, matching MapLocal coordinates.
func SinglePanelShapes(g panel.Geometry) Grid {
	grid := Grid{
		XRange: [2]float64{0, float64(g.Cols)},
		YRange: [2]float64{0, float64(g.Rows)},
	}
	grid.Panels = append(grid.Panels, Rect{X1: float64(g.Cols), Y1: float64(g.Rows)})
	for i := 1; i < g.Cols; i++ {
		grid.GridLines = append(grid.GridLines, Line{X0: float64(i), X1: float64(i), Y1: float64(g.Rows)})
	}
	for i := 1; i < g.Rows; i++ {
		grid.GridLines = append(grid.GridLines, Line{Y0: float64(i), X1: float64(g.Cols), Y1: float64(i)})
	}
	for i := 0; i < g.Cols; i++ {
		grid.XTicks = append(grid.XTicks, float64(i)+0.5)
	}
	for i := 0; i < g.Rows; i++ {
		grid.YTicks = append(grid.YTicks, float64(i)+0.5)
	}
	return grid
}

// PanelBounds returns the rectangle a quadrant occupies in the shared
// frame, used by the renderer to zoom the axis ranges.
func PanelBounds(g panel.Geometry, q panel.Quadrant) Rect {
	ox, oy := g.Origin(q)
	return Rect{X0: ox, Y0: oy, X1: ox + float64(g.Cols), Y1: oy + float64(g.Rows)}
}
