package wm

import (
	"image"
	"sync"
	"testing"
	"time"

	"github.com/ItsNotGoodName/x-panelwm/geom"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testContent = "test"

type fakeHost struct {
	mu          sync.Mutex
	rect        geom.Rect
	err         error
	surfaces    map[PanelID]image.Image
	transitions []bool
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		rect:     geom.Rect{Width: 1000, Height: 628},
		surfaces: make(map[PanelID]image.Image),
	}
}

func (h *fakeHost) MeasureDesktopRect(DesktopID) (geom.Rect, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rect, h.err
}

func (h *fakeHost) CaptureVisibleBitmap(_ DesktopID, id PanelID) (image.Image, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.surfaces[id], nil
}

func (h *fakeHost) SetTransitions(_ DesktopID, on bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.transitions = append(h.transitions, on)
}

func (h *fakeHost) setSurface(id PanelID, img image.Image) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.surfaces[id] = img
}

func (h *fakeHost) transitionCalls() []bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]bool(nil), h.transitions...)
}

type mockPanelObserver struct {
	mock.Mock
}

func newMockPanelObserver() *mockPanelObserver {
	m := new(mockPanelObserver)
	m.On("Refresh", mock.Anything).Maybe()
	m.On("SetGridSize", mock.Anything).Maybe()
	m.On("Unfocus").Maybe()
	return m
}

func (m *mockPanelObserver) Refresh(p Panel) { m.Called(p) }
func (m *mockPanelObserver) Focus(p Panel, grouped bool) { m.Called(p, grouped) }
func (m *mockPanelObserver) Unfocus() { m.Called() }
func (m *mockPanelObserver) Center(r geom.Rect) { m.Called(r) }
func (m *mockPanelObserver) Maximize(r geom.Rect, maximized bool) { m.Called(r, maximized) }
func (m *mockPanelObserver) SetGridSize(g geom.Grid) { m.Called(g) }
func (m *mockPanelObserver) TweenTo(r geom.Rect) { m.Called(r) }
func (m *mockPanelObserver) ShiftPosition(dx, dy float64) { m.Called(dx, dy) }

type recordingDesktop struct {
	NopDesktopObserver
	mu     sync.Mutex
	panels [][]Panel
	paths  []SnapGesture
}

func (o *recordingDesktop) RefreshPanels(panels []Panel, _ []Group) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.panels = append(o.panels, panels)
}

func (o *recordingDesktop) UpdatePath(g SnapGesture) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.paths = append(o.paths, g)
}

type recordingTaskbar struct {
	mu          sync.Mutex
	entries     []TaskbarEntry
	highlighted []PanelID
}

func (o *recordingTaskbar) RefreshTaskbar(entries []TaskbarEntry) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.entries = entries
}

func (o *recordingTaskbar) HighlightThumbnail(id PanelID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.highlighted = append(o.highlighted, id)
}

func testSession() SessionConfig {
	s := DefaultSessionConfig()
	s.ArrangeTransition = 20 * time.Millisecond
	s.UnsnapTransition = 20 * time.Millisecond
	return s
}

func newTestRegistry(t *testing.T, host *fakeHost) (*Registry, DesktopID) {
	t.Helper()

	r, err := NewRegistry(host, testSession())
	require.NoError(t, err)
	t.Cleanup(r.Close)

	r.RegisterContent(testContent, func(ctx ContentContext, props map[string]any) (any, error) {
		return props["value"], nil
	})

	return r, r.Subscribe()
}

func addWindows(t *testing.T, r *Registry, d DesktopID, n int) []PanelID {
	t.Helper()

	ids := make([]PanelID, 0, n)
	for range n {
		id, err := r.AddWindow(d, ContentSpec{Name: testContent})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func mustPanel(t *testing.T, r *Registry, d DesktopID, id PanelID) Panel {
	t.Helper()

	p, err := r.Panel(d, id)
	require.NoError(t, err)
	return p
}
