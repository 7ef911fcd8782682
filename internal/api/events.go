package api

import (
	"context"

	"github.com/ItsNotGoodName/x-panelwm/geom"
	"github.com/ItsNotGoodName/x-panelwm/internal/bus"
	"github.com/ItsNotGoodName/x-panelwm/wm"
)

// Event is published on the hub for every observer callback of the engine.
type Event struct {
	Desktop wm.DesktopID
	Data    any
}

type PanelsEvent struct {
	Desktop wm.DesktopID `json:"desktop"`
	Panels  []wm.Panel   `json:"panels"`
	Groups  []wm.Group   `json:"groups"`
}

type PathEvent struct {
	Desktop wm.DesktopID   `json:"desktop"`
	Gesture wm.SnapGesture `json:"gesture"`
}

type TaskbarEvent struct {
	Desktop wm.DesktopID   `json:"desktop"`
	Entries []TaskbarEntry `json:"entries"`
}

type HighlightEvent struct {
	Desktop wm.DesktopID `json:"desktop"`
	Panel   wm.PanelID   `json:"panel"`
}

// PanelEvent reports a view change of a single panel.
type PanelEvent struct {
	Desktop   wm.DesktopID `json:"desktop"`
	Panel     wm.PanelID   `json:"panel"`
	Kind      string       `json:"kind" enum:"focus,center,maximize,tween,shift"`
	Rect      *geom.Rect   `json:"rect,omitempty"`
	Grouped   bool         `json:"grouped,omitempty"`
	Maximized bool         `json:"maximized,omitempty"`
	DX        float64      `json:"dx,omitempty"`
	DY        float64      `json:"dy,omitempty"`
}

var eventTypes = map[string]any{
	"panels":    PanelsEvent{},
	"path":      PathEvent{},
	"taskbar":   TaskbarEvent{},
	"highlight": HighlightEvent{},
	"panel":     PanelEvent{},
}

// TaskbarEntry is a wm.TaskbarEntry without its thumbnail, which is served separately.
type TaskbarEntry struct {
	ID           wm.PanelID `json:"id"`
	Title        string     `json:"title"`
	Color        string     `json:"color"`
	Opacity      float64    `json:"opacity"`
	Highlighted  bool       `json:"highlighted"`
	Minimized    bool       `json:"minimized"`
	HasThumbnail bool       `json:"has_thumbnail"`
}

func newTaskbarEntries(entries []wm.TaskbarEntry) []TaskbarEntry {
	res := make([]TaskbarEntry, 0, len(entries))
	for _, e := range entries {
		res = append(res, TaskbarEntry{
			ID:           e.ID,
			Title:        e.Title,
			Color:        e.Color,
			Opacity:      e.Opacity,
			Highlighted:  e.Highlighted,
			Minimized:    e.Minimized,
			HasThumbnail: e.Thumbnail != nil,
		})
	}
	return res
}

// desktopObserver publishes the desktop and taskbar callbacks of one desktop.
type desktopObserver struct {
	desktop wm.DesktopID
	hub     *bus.Hub[Event]
}

func (o desktopObserver) publish(data any) {
	o.hub.Broadcast(context.Background(), Event{Desktop: o.desktop, Data: data})
}

func (o desktopObserver) RefreshPanels(panels []wm.Panel, groups []wm.Group) {
	o.publish(PanelsEvent{Desktop: o.desktop, Panels: panels, Groups: groups})
}

func (o desktopObserver) UpdatePath(g wm.SnapGesture) {
	o.publish(PathEvent{Desktop: o.desktop, Gesture: g})
}

func (o desktopObserver) RefreshTaskbar(entries []wm.TaskbarEntry) {
	o.publish(TaskbarEvent{Desktop: o.desktop, Entries: newTaskbarEntries(entries)})
}

func (o desktopObserver) HighlightThumbnail(id wm.PanelID) {
	o.publish(HighlightEvent{Desktop: o.desktop, Panel: id})
}

// panelObserver publishes the view changes of one panel. Refreshes are already
// covered by PanelsEvent.
type panelObserver struct {
	wm.NopPanelObserver
	desktopObserver
	panel wm.PanelID
}

func (o panelObserver) event(kind string) PanelEvent {
	return PanelEvent{Desktop: o.desktop, Panel: o.panel, Kind: kind}
}

func (o panelObserver) Focus(_ wm.Panel, grouped bool) {
	e := o.event("focus")
	e.Grouped = grouped
	o.publish(e)
}

func (o panelObserver) Center(r geom.Rect) {
	e := o.event("center")
	e.Rect = &r
	o.publish(e)
}

func (o panelObserver) Maximize(r geom.Rect, maximized bool) {
	e := o.event("maximize")
	e.Rect = &r
	e.Maximized = maximized
	o.publish(e)
}

func (o panelObserver) TweenTo(r geom.Rect) {
	e := o.event("tween")
	e.Rect = &r
	o.publish(e)
}

func (o panelObserver) ShiftPosition(dx, dy float64) {
	e := o.event("shift")
	e.DX, e.DY = dx, dy
	o.publish(e)
}
