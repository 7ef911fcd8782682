package geom

import "math"

type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Grid is the pitch panels snap to on each axis.
type Grid struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

var DefaultGrid = Grid{X: 1, Y: 1}

func (g Grid) pitch(axis Axis) float64 {
	if axis == AxisY {
		return g.Y
	}
	return g.X
}

// Snap rounds v to the nearest multiple of the pitch on axis. A pitch that is not
// positive disables snapping.
func (g Grid) Snap(v float64, axis Axis) float64 {
	p := g.pitch(axis)
	if p <= 0 {
		return v
	}
	return math.Round(v/p) * p
}

func (g Grid) SnapPoint(pt Point) Point {
	return Point{X: g.Snap(pt.X, AxisX), Y: g.Snap(pt.Y, AxisY)}
}

func (g Grid) SnapRect(r Rect) Rect {
	return Rect{
		X:      g.Snap(r.X, AxisX),
		Y:      g.Snap(r.Y, AxisY),
		Width:  g.Snap(r.Width, AxisX),
		Height: g.Snap(r.Height, AxisY),
	}
}
