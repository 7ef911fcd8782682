package mosaic

import "github.com/ItsNotGoodName/x-panelwm/geom"

// LayoutManualWindow is a slot expressed as fractions of the desktop.
type LayoutManualWindow struct {
	X float64
	Y float64
	W float64
	H float64
}

type LayoutManual struct {
	windows []LayoutManualWindow
}

func NewLayoutManual(windows []LayoutManualWindow) LayoutManual {
	return LayoutManual{
		windows: windows,
	}
}

func (l LayoutManual) Count() int {
	return len(l.windows)
}

func (l LayoutManual) Place(rank, count int, w, h float64) (geom.Rect, bool) {
	if rank < 0 || rank >= len(l.windows) {
		return geom.Rect{}, false
	}

	win := l.windows[rank]
	x := win.X * w
	y := win.Y * h
	return geom.Rect{
		X:      x,
		Y:      y,
		Width:  (win.W+win.X)*w - x,
		Height: (win.H+win.Y)*h - y,
	}, true
}
