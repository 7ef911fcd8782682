package mosaic

import (
	"math"

	"github.com/ItsNotGoodName/x-panelwm/geom"
)

// LayoutTile lays square tiles out in rows of Across columns.
type LayoutTile struct {
	Across int
	Gap    float64
}

func (l LayoutTile) Size(w float64) float64 {
	return w/float64(l.Across) - 2*l.Gap
}

func (l LayoutTile) Place(rank, count int, w, h float64) (geom.Rect, bool) {
	size := l.Size(w)
	return geom.Rect{
		X:      float64(rank%l.Across)*(size+l.Gap) + l.Gap,
		Y:      float64(rank/l.Across)*(size+l.Gap) + l.Gap,
		Width:  size,
		Height: size,
	}, true
}

// LayoutCascade runs tile sized panels down a diagonal, oldest first, wrapping
// vertically when the diagonal leaves the desktop.
type LayoutCascade struct {
	Tile   LayoutTile
	Step   float64
	Margin float64
}

func (l LayoutCascade) Place(rank, count int, w, h float64) (geom.Rect, bool) {
	size := l.Tile.Size(w)
	rank = count - rank - 1
	offset := float64(rank) * l.Step

	y := 0.0
	if span := h - size - l.Margin; span > 0 {
		y = math.Mod(offset, span)
	}

	return geom.Rect{X: offset, Y: y, Width: size, Height: size}, true
}
