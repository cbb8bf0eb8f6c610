package panel

import (
	"gonum.org/v1/gonum/stat"
)

// CentroidClassifier classifies raw continuous coordinates relative to the
// centroid of the observed coordinate extents. Unlike index halving the
// boundary shifts with every dataset, so two uploads of different data can
// place the same physical point in different quadrants. It exists for
// inspection feeds that report machine coordinates instead of unit indices
// and must be selected explicitly; it is never interchangeable with
// Classify.
type CentroidClassifier struct {
	midX float64
	midY float64
}

// NewCentroidClassifier computes the midpoint of the observed extents.
// An empty dataset yields a classifier centered at the origin.
func NewCentroidClassifier(xs, ys []float64) *CentroidClassifier {
	c := &CentroidClassifier{}
	if len(xs) == 0 || len(ys) == 0 {
		return c
	}
	c.midX = (minFloat(xs) + maxFloat(xs)) / 2
	c.midY = (minFloat(ys) + maxFloat(ys)) / 2
	return c
}

// NewMeanClassifier centers on the coordinate means instead of the extent
// midpoint. Less sensitive to a single outlying point than the extent form.
func NewMeanClassifier(xs, ys []float64) *CentroidClassifier {
	c := &CentroidClassifier{}
	if len(xs) == 0 || len(ys) == 0 {
		return c
	}
	c.midX = stat.Mean(xs, nil)
	c.midY = stat.Mean(ys, nil)
	return c
}

// Midpoint returns the data-dependent quadrant boundary.
func (c *CentroidClassifier) Midpoint() (x, y float64) {
	return c.midX, c.midY
}

// Classify assigns a continuous coordinate pair to a quadrant. Points on
// the boundary go to the upper half, matching the half-open index rule.
func (c *CentroidClassifier) Classify(x, y float64) Quadrant {
	switch {
	case x < c.midX && y < c.midY:
		return QuadrantQ1
	case x < c.midX:
		return QuadrantQ2
	case y < c.midY:
		return QuadrantQ3
	default:
		return QuadrantQ4
	}
}

func minFloat(vs []float64) float64 {
	m := vs[0]
	for _, f := range vs[1:] {
		if f < m {
			m = f
		}
	}
	return m
}

func maxFloat(vs []float64) float64 {
	m := vs[0]
	for _, f := range vs[1:] {
		if f > m {
			m = f
		}
	}
	return m
}
