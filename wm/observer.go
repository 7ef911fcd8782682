package wm

import (
	"image"

	"github.com/ItsNotGoodName/x-panelwm/geom"
)

// Host is the rendering substrate the engine runs on. The Registry calls it while
// holding its lock, so implementations must not call back into the Registry.
type Host interface {
	// MeasureDesktopRect returns the screen rectangle available to a desktop.
	MeasureDesktopRect(desktop DesktopID) (geom.Rect, error)
	// CaptureVisibleBitmap returns the visible surface of a panel, nil when the panel
	// has nothing drawn yet.
	CaptureVisibleBitmap(desktop DesktopID, id PanelID) (image.Image, error)
	// SetTransitions toggles animated geometry changes on a desktop.
	SetTransitions(desktop DesktopID, on bool)
}

// PanelObserver is implemented by the view of a single panel.
type PanelObserver interface {
	Refresh(p Panel)
	Focus(p Panel, grouped bool)
	Unfocus()
	Center(r geom.Rect)
	Maximize(r geom.Rect, maximized bool)
	SetGridSize(g geom.Grid)
	TweenTo(r geom.Rect)
	ShiftPosition(dx, dy float64)
}

// DesktopObserver is implemented by the view of the panel collection.
type DesktopObserver interface {
	RefreshPanels(panels []Panel, groups []Group)
	UpdatePath(g SnapGesture)
}

type TaskbarObserver interface {
	RefreshTaskbar(entries []TaskbarEntry)
	HighlightThumbnail(id PanelID)
}

type NopPanelObserver struct{}

func (NopPanelObserver) Refresh(Panel) {}
func (NopPanelObserver) Focus(Panel, bool) {}
func (NopPanelObserver) Unfocus() {}
func (NopPanelObserver) Center(geom.Rect) {}
func (NopPanelObserver) Maximize(geom.Rect, bool) {}
func (NopPanelObserver) SetGridSize(geom.Grid) {}
func (NopPanelObserver) TweenTo(geom.Rect) {}
func (NopPanelObserver) ShiftPosition(_, _ float64) {}

type NopDesktopObserver struct{}

func (NopDesktopObserver) RefreshPanels([]Panel, []Group) {}
func (NopDesktopObserver) UpdatePath(SnapGesture) {}

type NopTaskbarObserver struct{}

func (NopTaskbarObserver) RefreshTaskbar([]TaskbarEntry) {}
func (NopTaskbarObserver) HighlightThumbnail(PanelID) {}

type ContentContext struct {
	Desktop DesktopID
	Panel   PanelID
}

// ContentFactory builds the content hosted inside a panel. The engine never looks at
// what it returns.
type ContentFactory func(ctx ContentContext, props map[string]any) (any, error)
