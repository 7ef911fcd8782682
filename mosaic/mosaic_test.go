package mosaic

import (
	"testing"

	"github.com/ItsNotGoodName/x-panelwm/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func place(t *testing.T, m Mosaic, name string, rank, count int, w, h float64) geom.Rect {
	t.Helper()

	l, ok := m.Lookup(name)
	require.True(t, ok, name)

	r, ok := l.Place(rank, count, w, h)
	require.True(t, ok)
	return r
}

func TestTile(t *testing.T) {
	m := New(DefaultParams)

	first := place(t, m, NameTile, 0, 6, 1000, 600)
	assert.Equal(t, geom.Rect{X: 5, Y: 5, Width: 190, Height: 190}, first)

	second := place(t, m, NameTile, 1, 6, 1000, 600)
	assert.Equal(t, 200.0, second.X)
	assert.Equal(t, 5.0, second.Y)

	// Second row, first column.
	sixth := place(t, m, NameTile, 5, 6, 1000, 600)
	assert.Equal(t, 5.0, sixth.X)
	assert.Equal(t, sixth.Height+2*5, sixth.Y)
}

func TestCascade(t *testing.T) {
	m := New(DefaultParams)

	// The most recently focused panel ends the diagonal.
	top := place(t, m, NameCascade, 0, 3, 1000, 600)
	assert.Equal(t, geom.Rect{X: 100, Y: 100, Width: 190, Height: 190}, top)

	bottom := place(t, m, NameCascade, 2, 3, 1000, 600)
	assert.Equal(t, 0.0, bottom.X)
	assert.Equal(t, 0.0, bottom.Y)

	// 450 wraps around the 600-190-24 span.
	wrapped := place(t, m, NameCascade, 0, 10, 1000, 600)
	assert.Equal(t, 450.0, wrapped.X)
	assert.Equal(t, 64.0, wrapped.Y)
}

func TestCascadeTinyDesktop(t *testing.T) {
	m := New(DefaultParams)

	r := place(t, m, NameCascade, 0, 2, 1000, 100)
	assert.Equal(t, 50.0, r.X)
	assert.Equal(t, 0.0, r.Y)
}

func TestHorizontal(t *testing.T) {
	m := New(DefaultParams)

	r := place(t, m, NameHorizontal, 1, 2, 1000, 600)
	assert.Equal(t, geom.Rect{X: 502.5, Y: 0, Width: 492.5, Height: 595}, r)
}

func TestVertical(t *testing.T) {
	m := New(DefaultParams)

	r := place(t, m, NameVertical, 0, 2, 1000, 600)
	assert.Equal(t, geom.Rect{X: 0, Y: 5, Width: 995, Height: 295}, r)

	// Strip height floors at 250.
	r = place(t, m, NameVertical, 1, 4, 1000, 600)
	assert.Equal(t, 250.0, r.Height)
	assert.Equal(t, 260.0, r.Y)
}

func TestStripsWithoutPanels(t *testing.T) {
	_, ok := LayoutHorizontal{Gap: 5}.Place(0, 0, 1000, 600)
	assert.False(t, ok)

	_, ok = LayoutVertical{Gap: 5}.Place(0, 0, 1000, 600)
	assert.False(t, ok)
}

func TestGrid(t *testing.T) {
	columns, rows := GridCount(5)
	assert.Equal(t, 3, columns)
	assert.Equal(t, 2, rows)

	m := New(DefaultParams)
	r := place(t, m, NameGrid, 4, 5, 900, 600)
	assert.Equal(t, geom.Rect{X: 300, Y: 300, Width: 300, Height: 300}, r)
}

func TestManual(t *testing.T) {
	left, err := ParseLayoutManualWindow("0", "0", "1/2", "1")
	require.NoError(t, err)
	right, err := ParseLayoutManualWindow("0.5", "0", "1/2", "1")
	require.NoError(t, err)

	m := New(Params{Manual: []LayoutManualWindow{left, right}})
	assert.Equal(t, geom.Rect{X: 500, Y: 0, Width: 500, Height: 600}, place(t, m, NameManual, 1, 2, 1000, 600))

	l, _ := m.Lookup(NameManual)
	_, ok := l.Place(2, 3, 1000, 600)
	assert.False(t, ok)
}

func TestManualMissingWithoutSlots(t *testing.T) {
	m := New(DefaultParams)

	_, ok := m.Lookup(NameManual)
	assert.False(t, ok)
	assert.Equal(t, []string{NameCascade, NameGrid, NameHorizontal, NameTile, NameVertical}, m.Names())
}

func TestParseRatio(t *testing.T) {
	v, err := ParseRatio("1/4")
	require.NoError(t, err)
	assert.Equal(t, 0.25, v)

	_, err = ParseRatio("1/0")
	assert.Error(t, err)

	_, err = ParseRatio("half")
	assert.Error(t, err)

	_, err = ParseLayoutManualWindow("0", "x", "1", "1")
	assert.ErrorContains(t, err, "Y=")
}
