package geom

import "math"

type (
	Point struct {
		X float64 `json:"x" yaml:"x"`
		Y float64 `json:"y" yaml:"y"`
	}

	Rect struct {
		X      float64 `json:"x" yaml:"x"`
		Y      float64 `json:"y" yaml:"y"`
		Width  float64 `json:"width" yaml:"width"`
		Height float64 `json:"height" yaml:"height"`
	}
)

func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Shrink removes bottom from the height of r, never going below zero.
func (r Rect) Shrink(bottom float64) Rect {
	r.Height = math.Max(0, r.Height-bottom)
	return r
}
