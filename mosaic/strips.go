package mosaic

import (
	"math"

	"github.com/ItsNotGoodName/x-panelwm/geom"
)

// LayoutHorizontal places equal width strips side by side across the full height.
type LayoutHorizontal struct {
	Gap float64
}

func (l LayoutHorizontal) Place(rank, count int, w, h float64) (geom.Rect, bool) {
	if count <= 0 {
		return geom.Rect{}, false
	}

	sw := (w-l.Gap)/float64(count) - l.Gap
	return geom.Rect{
		X:      float64(rank)*(sw+l.Gap) + l.Gap,
		Y:      0,
		Width:  sw,
		Height: h - l.Gap,
	}, true
}

// LayoutVertical stacks equal height strips across the full width. Strips never get
// shorter than MinHeight, so many panels overflow the bottom of the desktop.
type LayoutVertical struct {
	Gap       float64
	MinHeight float64
}

func (l LayoutVertical) Place(rank, count int, w, h float64) (geom.Rect, bool) {
	if count <= 0 {
		return geom.Rect{}, false
	}

	sh := math.Max(l.MinHeight, h/float64(count)-l.Gap)
	return geom.Rect{
		X:      0,
		Y:      float64(rank)*(sh+l.Gap) + l.Gap,
		Width:  w - l.Gap,
		Height: sh,
	}, true
}
