package wm

import (
	"testing"

	"github.com/ItsNotGoodName/x-panelwm/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribe(t *testing.T) {
	r, first := newTestRegistry(t, newFakeHost())

	second := r.Subscribe()

	assert.Equal(t, DesktopID(0), first)
	assert.Equal(t, DesktopID(1), second)
	assert.Equal(t, []DesktopID{0, 1}, r.Desktops())
}

func TestNewRegistryValidatesSession(t *testing.T) {
	s := DefaultSessionConfig()
	s.Palette = []string{"red"}

	_, err := NewRegistry(newFakeHost(), s)
	assert.Error(t, err)
}

func TestAddWindow(t *testing.T) {
	r, d := newTestRegistry(t, newFakeHost())

	ids := addWindows(t, r, d, 2)

	first := mustPanel(t, r, d, ids[0])
	assert.Equal(t, "New Window", first.Content.Title)
	assert.Equal(t, StateNormal, first.State)
	assert.Equal(t, NoGroup, first.Embrace.Group)
	assert.Equal(t, geom.Rect{X: 0, Y: 0, Width: 190, Height: 190}, first.Geometry)

	second := mustPanel(t, r, d, ids[1])
	assert.Equal(t, geom.Rect{X: 50, Y: 50, Width: 190, Height: 190}, second.Geometry)
	assert.Greater(t, second.ZIndex, first.ZIndex)
	assert.Equal(t, 2, r.NumberOfWindows(d))
}

func TestAddWindowFallbackSize(t *testing.T) {
	host := newFakeHost()
	host.rect = geom.Rect{}
	r, d := newTestRegistry(t, host)

	ids := addWindows(t, r, d, 1)

	p := mustPanel(t, r, d, ids[0])
	assert.Equal(t, 768.0, p.Geometry.Width)
	assert.Equal(t, 512.0, p.Geometry.Height)
}

func TestAddWindowFill(t *testing.T) {
	r, d := newTestRegistry(t, newFakeHost())

	id, err := r.AddWindow(d, ContentSpec{Name: testContent, FillWidth: true, FillHeight: true})
	require.NoError(t, err)

	p := mustPanel(t, r, d, id)
	assert.Equal(t, 1000.0, p.Geometry.Width)
	assert.Equal(t, 628.0-2*28, p.Geometry.Height)
}

func TestUnknownReferences(t *testing.T) {
	r, d := newTestRegistry(t, newFakeHost())

	_, err := r.AddWindow(42, ContentSpec{Name: testContent})
	assert.ErrorIs(t, err, ErrUnknownDesktop)

	_, err = r.AddWindow(d, ContentSpec{Name: "missing"})
	assert.ErrorIs(t, err, ErrUnknownContent)

	assert.ErrorIs(t, r.RemoveWindow(d, "missing"), ErrUnknownPanel)
	assert.ErrorIs(t, r.FocusWindow(d, "missing", NoGroup), ErrUnknownPanel)
	assert.ErrorIs(t, r.TweenWindows(d, "spiral"), ErrUnknownArrangement)
	assert.Equal(t, 0, r.NumberOfWindows(d))
}

func TestZIndexNeverReused(t *testing.T) {
	r, d := newTestRegistry(t, newFakeHost())

	ids := addWindows(t, r, d, 3)
	top := mustPanel(t, r, d, ids[2]).ZIndex
	require.NoError(t, r.RemoveWindow(d, ids[2]))

	ids = append(ids[:2], addWindows(t, r, d, 2)...)

	seen := make(map[int]bool)
	panels, err := r.Panels(d)
	require.NoError(t, err)
	for _, p := range panels {
		assert.False(t, seen[p.ZIndex], "duplicate z index %d", p.ZIndex)
		seen[p.ZIndex] = true
	}
	assert.Greater(t, mustPanel(t, r, d, ids[2]).ZIndex, top)
}

func TestSetWindowState(t *testing.T) {
	r, d := newTestRegistry(t, newFakeHost())
	id := addWindows(t, r, d, 1)[0]

	x := 120.0
	state := StateMinimized
	require.NoError(t, r.SetWindowState(d, id, &state, GeometryPatch{X: &x}))

	p := mustPanel(t, r, d, id)
	assert.Equal(t, StateMinimized, p.State)
	assert.Equal(t, geom.Rect{X: 120, Y: 0, Width: 190, Height: 190}, p.Geometry)

	invalid := LifecycleState("hidden")
	assert.Error(t, r.SetWindowState(d, id, &invalid, GeometryPatch{}))
	assert.Equal(t, StateMinimized, mustPanel(t, r, d, id).State)

	require.NoError(t, r.NormalizeWindow(d, id))
	assert.Equal(t, StateNormal, mustPanel(t, r, d, id).State)
}

func TestMaximizeRoundTrip(t *testing.T) {
	r, d := newTestRegistry(t, newFakeHost())
	id := addWindows(t, r, d, 1)[0]

	obs := newMockPanelObserver()
	obs.On("Maximize", geom.Rect{Width: 1000, Height: 600}, true).Once()
	obs.On("Maximize", geom.Rect{X: 13, Y: 17, Width: 300, Height: 200}, false).Once()
	require.NoError(t, r.AttachObserver(d, id, obs))

	before := geom.Rect{X: 13, Y: 17, Width: 300, Height: 200}
	require.NoError(t, r.SetWindowState(d, id, nil, PatchRect(before)))

	require.NoError(t, r.MaximizeWindow(d, id))
	p := mustPanel(t, r, d, id)
	assert.True(t, p.Maximized)
	assert.Equal(t, geom.Rect{Width: 1000, Height: 600}, p.Geometry)

	require.NoError(t, r.MaximizeWindow(d, id))
	p = mustPanel(t, r, d, id)
	assert.False(t, p.Maximized)
	assert.Equal(t, before, p.Geometry)

	obs.AssertExpectations(t)
}

func TestCenterWindow(t *testing.T) {
	r, d := newTestRegistry(t, newFakeHost())
	id := addWindows(t, r, d, 1)[0]

	obs := newMockPanelObserver()
	obs.On("Center", geom.Rect{X: 405, Y: 219, Width: 190, Height: 190}).Once()
	require.NoError(t, r.AttachObserver(d, id, obs))

	require.NoError(t, r.CenterWindow(d, id))

	assert.Equal(t, geom.Rect{X: 405, Y: 219, Width: 190, Height: 190}, mustPanel(t, r, d, id).Geometry)
	obs.AssertExpectations(t)
}

func TestCenterWindowNotReady(t *testing.T) {
	host := newFakeHost()
	r, d := newTestRegistry(t, host)
	id := addWindows(t, r, d, 1)[0]
	host.rect = geom.Rect{}

	assert.ErrorIs(t, r.CenterWindow(d, id), ErrNotReady)
}

func TestRemoveWindowCascades(t *testing.T) {
	r, d := newTestRegistry(t, newFakeHost())
	ids := addWindows(t, r, d, 3)

	require.NoError(t, r.SetEmbrace(d, ids[0], true))
	group, err := r.GroupEmbraced(d)
	require.NoError(t, err)
	require.NoError(t, r.SnapWindowToWindow(d, ids[1], geom.EdgeLeft, ids[0], geom.EdgeRight))
	require.NoError(t, r.StartPath(d, geom.Point{X: 1, Y: 1}, ids[0], geom.EdgeTop))

	require.NoError(t, r.RemoveWindow(d, ids[0]))

	child := mustPanel(t, r, d, ids[1])
	assert.False(t, child.Snap.IsSnapped)
	assert.Empty(t, r.GroupMembers(d, group))
	groups, err := r.Groups(d)
	require.NoError(t, err)
	assert.Empty(t, groups)
	assert.False(t, r.SnapGesture().On)

	entries, err := r.Taskbar(d)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestBulkLifecycle(t *testing.T) {
	r, d := newTestRegistry(t, newFakeHost())
	ids := addWindows(t, r, d, 3)

	require.NoError(t, r.SetEmbrace(d, ids[0], true))
	require.NoError(t, r.MinimizeAllEmbraced(d))
	assert.True(t, mustPanel(t, r, d, ids[0]).Minimized())
	assert.False(t, mustPanel(t, r, d, ids[1]).Minimized())

	require.NoError(t, r.MinimizeAll(d))
	for _, id := range ids {
		assert.True(t, mustPanel(t, r, d, id).Minimized())
	}

	require.NoError(t, r.ShowAll(d))
	for _, id := range ids {
		assert.False(t, mustPanel(t, r, d, id).Minimized())
	}

	require.NoError(t, r.RemoveAllEmbraced(d))
	assert.Equal(t, 2, r.NumberOfWindows(d))

	require.NoError(t, r.RemoveAll(d))
	assert.Equal(t, 0, r.NumberOfWindows(d))
}

func TestInstantiate(t *testing.T) {
	r, d := newTestRegistry(t, newFakeHost())

	id, err := r.AddWindow(d, ContentSpec{Name: testContent, Props: map[string]any{"value": 42}})
	require.NoError(t, err)

	v, err := r.Instantiate(d, id)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, ok := r.ResolveContent("missing")
	assert.False(t, ok)
}

func TestSetGridSizes(t *testing.T) {
	r, d := newTestRegistry(t, newFakeHost())
	id := addWindows(t, r, d, 1)[0]

	obs := newMockPanelObserver()
	require.NoError(t, r.AttachObserver(d, id, obs))

	grid := geom.Grid{X: 10, Y: 10}
	r.SetGridSizes(grid)

	obs.AssertCalled(t, "SetGridSize", grid)
	assert.Equal(t, grid, r.Session().Grid)
}

type reentrantDesktop struct {
	NopDesktopObserver
	r     *Registry
	d     DesktopID
	count int
}

func (o *reentrantDesktop) RefreshPanels(panels []Panel, _ []Group) {
	o.count = o.r.NumberOfWindows(o.d)
}

func TestObserversMayCallBack(t *testing.T) {
	r, d := newTestRegistry(t, newFakeHost())

	obs := &reentrantDesktop{r: r, d: d}
	require.NoError(t, r.SubscribePanels(d, obs))

	addWindows(t, r, d, 2)

	assert.Equal(t, 2, obs.count)
}

func TestDetachObserver(t *testing.T) {
	r, d := newTestRegistry(t, newFakeHost())
	id := addWindows(t, r, d, 1)[0]

	obs := newMockPanelObserver()
	require.NoError(t, r.AttachObserver(d, id, obs))
	require.NoError(t, r.DetachObserver(d, id))

	obs.On("Center", geom.Rect{X: 405, Y: 219, Width: 190, Height: 190}).Maybe()
	require.NoError(t, r.CenterWindow(d, id))

	obs.AssertNotCalled(t, "Center", geom.Rect{X: 405, Y: 219, Width: 190, Height: 190})
}
