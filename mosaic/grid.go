package mosaic

import "github.com/ItsNotGoodName/x-panelwm/geom"

// LayoutGrid splits the desktop into the smallest near square grid that fits every panel.
type LayoutGrid struct{}

func GridCount(count int) (columns, rows int) {
	for columns*rows < count {
		columns++
		if columns*rows >= count {
			break
		}
		rows++
	}
	return columns, rows
}

func (LayoutGrid) Place(rank, count int, w, h float64) (geom.Rect, bool) {
	if count <= 0 || rank >= count {
		return geom.Rect{}, false
	}

	columns, rows := GridCount(count)
	fw := w / float64(columns)
	fh := h / float64(rows)

	return geom.Rect{
		X:      fw * float64(rank%columns),
		Y:      fh * float64(rank/columns),
		Width:  fw,
		Height: fh,
	}, true
}
