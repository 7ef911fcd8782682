// Package mosaic computes target rectangles for panels under a named arrangement.
//
// Every layout places one panel at a time from its focus rank (0 is the most recently
// focused panel) and the number of visible panels. Coordinates are relative to the
// desktop origin.
package mosaic

import (
	"slices"

	"github.com/ItsNotGoodName/x-panelwm/geom"
)

const (
	NameTile       = "tile"
	NameCascade    = "cascade"
	NameHorizontal = "horizontal"
	NameVertical   = "vertical"
	NameGrid       = "grid"
	NameManual     = "manual"
)

type (
	Layout interface {
		// Place returns the rectangle for the panel at rank out of count panels on a
		// desktop of size w by h. It returns false when the layout has no slot for rank.
		Place(rank, count int, w, h float64) (geom.Rect, bool)
	}

	Params struct {
		Across            int
		Gap               float64
		CascadeStep       float64
		CascadeMargin     float64
		VerticalMinHeight float64
		Manual            []LayoutManualWindow
	}

	Mosaic struct {
		tile    LayoutTile
		layouts map[string]Layout
	}
)

var DefaultParams = Params{
	Across:            5,
	Gap:               5,
	CascadeStep:       50,
	CascadeMargin:     24,
	VerticalMinHeight: 250,
}

func New(p Params) Mosaic {
	if p.Across <= 0 {
		p.Across = DefaultParams.Across
	}

	tile := LayoutTile{Across: p.Across, Gap: p.Gap}
	m := Mosaic{
		tile: tile,
		layouts: map[string]Layout{
			NameTile:       tile,
			NameCascade:    LayoutCascade{Tile: tile, Step: p.CascadeStep, Margin: p.CascadeMargin},
			NameHorizontal: LayoutHorizontal{Gap: p.Gap},
			NameVertical:   LayoutVertical{Gap: p.Gap, MinHeight: p.VerticalMinHeight},
			NameGrid:       LayoutGrid{},
		},
	}
	if len(p.Manual) > 0 {
		m.layouts[NameManual] = NewLayoutManual(p.Manual)
	}

	return m
}

// Tile returns the tile layout, whose tile size is also the default panel size.
func (m Mosaic) Tile() LayoutTile {
	return m.tile
}

func (m Mosaic) Lookup(name string) (Layout, bool) {
	l, ok := m.layouts[name]
	return l, ok
}

func (m Mosaic) Names() []string {
	names := make([]string, 0, len(m.layouts))
	for name := range m.layouts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
