// Package gnuplot provides data holders for plot script emission.
// There is no plotting engine here; downstream tooling renders the
// scripts.
package gnuplot

// Point2D is an (x, y) data point.
type Point2D struct {
	x float64
	y float64
}

// NewPoint2D creates a Point2D.
func NewPoint2D(x, y float64) Point2D {
	return Point2D{x: x, y: y}
}

// X returns the x coordinate.
func (p Point2D) X() float64 {
	return p.x
}

// Y returns the y coordinate.
func (p Point2D) Y() float64 {
	return p.y
}

// Axis identifies a plot axis.
type Axis string

const (
	// AxisX is the horizontal axis.
	AxisX Axis = "x"
	// AxisY is the vertical axis.
	AxisY Axis = "y"
)

// Letter returns the lowercase letter used in plot scripts.
func (a Axis) Letter() string {
	return string(a)
}
