package wm

import (
	"testing"
	"time"

	"github.com/ItsNotGoodName/x-panelwm/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDock(t *testing.T) {
	parent := geom.Rect{X: 100, Y: 200, Width: 300, Height: 150}
	child := geom.Rect{X: 0, Y: 0, Width: 80, Height: 60}

	tests := []struct {
		edge, parentEdge geom.Edge
		want             geom.Rect
	}{
		{geom.EdgeLeft, geom.EdgeRight, geom.Rect{X: 400, Y: 200, Width: 80, Height: 150}},
		{geom.EdgeRight, geom.EdgeLeft, geom.Rect{X: 20, Y: 200, Width: 80, Height: 150}},
		{geom.EdgeTop, geom.EdgeBottom, geom.Rect{X: 100, Y: 350, Width: 300, Height: 60}},
		{geom.EdgeBottom, geom.EdgeTop, geom.Rect{X: 100, Y: 140, Width: 300, Height: 60}},
		{geom.EdgeLeft, geom.EdgeLeft, parent},
		{geom.EdgeBottom, geom.EdgeBottom, parent},
	}

	for _, tt := range tests {
		t.Run(string(tt.edge)+"-"+string(tt.parentEdge), func(t *testing.T) {
			assert.Equal(t, tt.want, dock(child, tt.edge, parent, tt.parentEdge))
		})
	}
}

func TestSnapFollowsParent(t *testing.T) {
	r, d := newTestRegistry(t, newFakeHost())
	ids := addWindows(t, r, d, 2)
	parent, child := ids[0], ids[1]

	require.NoError(t, r.SnapWindowToWindow(d, child, geom.EdgeLeft, parent, geom.EdgeRight))

	moves := []geom.Rect{
		{X: 10, Y: 20, Width: 300, Height: 200},
		{X: 250, Y: 90, Width: 120, Height: 410},
	}
	for _, move := range moves {
		require.NoError(t, r.SetWindowState(d, parent, nil, PatchRect(move)))

		p := mustPanel(t, r, d, parent).Geometry
		c := mustPanel(t, r, d, child).Geometry
		assert.Equal(t, p.X+p.Width, c.X)
		assert.Equal(t, p.Y, c.Y)
		assert.Equal(t, p.Height, c.Height)
	}
}

func TestSnapChain(t *testing.T) {
	r, d := newTestRegistry(t, newFakeHost())
	ids := addWindows(t, r, d, 3)

	// Children are created before their parents so resolution must not follow creation order.
	require.NoError(t, r.SnapWindowToWindow(d, ids[0], geom.EdgeTop, ids[1], geom.EdgeBottom))
	require.NoError(t, r.SnapWindowToWindow(d, ids[1], geom.EdgeTop, ids[2], geom.EdgeBottom))
	require.NoError(t, r.SetWindowState(d, ids[2], nil, PatchRect(geom.Rect{X: 0, Y: 0, Width: 100, Height: 100})))

	assert.Equal(t, 100.0, mustPanel(t, r, d, ids[1]).Geometry.Y)
	assert.Equal(t, 100.0+mustPanel(t, r, d, ids[1]).Geometry.Height, mustPanel(t, r, d, ids[0]).Geometry.Y)
}

func TestSnapRejected(t *testing.T) {
	r, d := newTestRegistry(t, newFakeHost())
	ids := addWindows(t, r, d, 2)

	assert.ErrorIs(t, r.SnapWindowToWindow(d, ids[1], geom.EdgeLeft, ids[0], geom.EdgeTop), ErrInvalidSnap)
	assert.ErrorIs(t, r.SnapWindowToWindow(d, ids[0], geom.EdgeLeft, ids[0], geom.EdgeRight), ErrInvalidSnap)
	assert.ErrorIs(t, r.SnapWindowToWindow(d, ids[1], "middle", ids[0], geom.EdgeRight), ErrInvalidSnap)

	require.NoError(t, r.SnapWindowToWindow(d, ids[1], geom.EdgeLeft, ids[0], geom.EdgeRight))
	assert.ErrorIs(t, r.SnapWindowToWindow(d, ids[0], geom.EdgeLeft, ids[1], geom.EdgeRight), ErrInvalidSnap)

	assert.False(t, mustPanel(t, r, d, ids[0]).Snap.IsSnapped)
}

func TestSnapGesture(t *testing.T) {
	r, d := newTestRegistry(t, newFakeHost())
	ids := addWindows(t, r, d, 2)

	obs := &recordingDesktop{}
	require.NoError(t, r.SubscribePanels(d, obs))

	require.NoError(t, r.StartPath(d, geom.Point{X: 190, Y: 90}, ids[1], geom.EdgeLeft))
	require.NoError(t, r.SetMousePosition(d, geom.Point{X: 240, Y: 120}))

	g := r.SnapGesture()
	assert.True(t, g.On)
	assert.Equal(t, geom.Point{X: 240, Y: 120}, g.End.Point)

	require.NoError(t, r.EndPath(d, ids[0], geom.EdgeRight))

	assert.False(t, r.SnapGesture().On)
	child := mustPanel(t, r, d, ids[1])
	assert.Equal(t, Snap{IsSnapped: true, Edge: geom.EdgeLeft, ParentID: ids[0], ParentEdge: geom.EdgeRight}, child.Snap)

	require.Len(t, obs.paths, 3)
	assert.False(t, obs.paths[2].On)
}

func TestSnapGestureCrossDesktop(t *testing.T) {
	r, d := newTestRegistry(t, newFakeHost())
	other := r.Subscribe()
	a := addWindows(t, r, d, 1)[0]
	b := addWindows(t, r, other, 1)[0]

	require.NoError(t, r.StartPath(d, geom.Point{}, a, geom.EdgeLeft))
	assert.ErrorIs(t, r.EndPath(other, b, geom.EdgeRight), ErrInvalidSnap)

	assert.False(t, r.SnapGesture().On)
	assert.False(t, mustPanel(t, r, d, a).Snap.IsSnapped)
}

func TestEndPathWithoutGesture(t *testing.T) {
	r, d := newTestRegistry(t, newFakeHost())
	id := addWindows(t, r, d, 1)[0]

	assert.ErrorIs(t, r.EndPath(d, id, geom.EdgeLeft), ErrInvalidSnap)
}

func TestUnsnapWindow(t *testing.T) {
	host := newFakeHost()
	r, d := newTestRegistry(t, host)
	ids := addWindows(t, r, d, 2)

	require.NoError(t, r.SnapWindowToWindow(d, ids[1], geom.EdgeLeft, ids[0], geom.EdgeRight))
	docked := mustPanel(t, r, d, ids[1]).Geometry

	require.NoError(t, r.UnsnapWindow(d, ids[1]))
	assert.True(t, r.Transitioning(d))
	require.NoError(t, r.SetWindowState(d, ids[0], nil, PatchPosition(500, 300)))

	assert.False(t, mustPanel(t, r, d, ids[1]).Snap.IsSnapped)
	assert.Equal(t, docked, mustPanel(t, r, d, ids[1]).Geometry)

	require.Eventually(t, func() bool { return !r.Transitioning(d) }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []bool{true, false}, host.transitionCalls())
}

func TestUnsnapAllEmbraced(t *testing.T) {
	r, d := newTestRegistry(t, newFakeHost())
	ids := addWindows(t, r, d, 3)

	require.NoError(t, r.SnapWindowToWindow(d, ids[1], geom.EdgeLeft, ids[0], geom.EdgeRight))
	require.NoError(t, r.SnapWindowToWindow(d, ids[2], geom.EdgeTop, ids[0], geom.EdgeBottom))
	require.NoError(t, r.SetEmbrace(d, ids[1], true))

	r.UnsnapAllEmbraced()

	assert.False(t, mustPanel(t, r, d, ids[1]).Snap.IsSnapped)
	assert.True(t, mustPanel(t, r, d, ids[2]).Snap.IsSnapped)
}

func TestToggleSnapPorts(t *testing.T) {
	r, _ := newTestRegistry(t, newFakeHost())

	assert.True(t, r.ToggleSnapPorts())
	assert.True(t, r.SnapPorts())
	assert.False(t, r.ToggleSnapPorts())
}
