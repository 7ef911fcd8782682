// Package headless implements a wm.Host without a screen. Desktops have a fixed size
// and panel surfaces are whatever images clients upload.
package headless

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"sync"

	"github.com/ItsNotGoodName/x-panelwm/geom"
	"github.com/ItsNotGoodName/x-panelwm/wm"
	"github.com/disintegration/imaging"
)

type surfaceKey struct {
	desktop wm.DesktopID
	panel   wm.PanelID
}

type Host struct {
	mu          sync.RWMutex
	rect        geom.Rect
	rects       map[wm.DesktopID]geom.Rect
	surfaces    map[surfaceKey]image.Image
	transitions map[wm.DesktopID]bool
}

var _ wm.Host = (*Host)(nil)

func New(rect geom.Rect) *Host {
	return &Host{
		rect:        rect,
		rects:       make(map[wm.DesktopID]geom.Rect),
		surfaces:    make(map[surfaceKey]image.Image),
		transitions: make(map[wm.DesktopID]bool),
	}
}

func (h *Host) MeasureDesktopRect(desktop wm.DesktopID) (geom.Rect, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if rect, ok := h.rects[desktop]; ok {
		return rect, nil
	}
	if h.rect.Empty() {
		return geom.Rect{}, fmt.Errorf("desktop %d: size unknown", desktop)
	}
	return h.rect, nil
}

// Resize changes the size of one desktop.
func (h *Host) Resize(desktop wm.DesktopID, rect geom.Rect) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.rects[desktop] = rect
}

func (h *Host) CaptureVisibleBitmap(desktop wm.DesktopID, id wm.PanelID) (image.Image, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.surfaces[surfaceKey{desktop, id}], nil
}

func (h *Host) SetSurface(desktop wm.DesktopID, id wm.PanelID, img image.Image) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.surfaces[surfaceKey{desktop, id}] = img
}

// DecodeSurface reads an encoded image (PNG, JPEG, GIF, BMP, TIFF) as the surface of a panel.
func (h *Host) DecodeSurface(desktop wm.DesktopID, id wm.PanelID, r io.Reader) error {
	img, err := imaging.Decode(r)
	if err != nil {
		return err
	}

	h.SetSurface(desktop, id, img)
	slog.Debug("Decoded surface", "package", "headless", "desktop", desktop, "panel", id, "size", img.Bounds().Size())
	return nil
}

func (h *Host) RemoveSurface(desktop wm.DesktopID, id wm.PanelID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.surfaces, surfaceKey{desktop, id})
}

// PruneSurfaces drops the surfaces of a desktop whose panel is not in keep.
func (h *Host) PruneSurfaces(desktop wm.DesktopID, keep []wm.PanelID) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	live := make(map[wm.PanelID]struct{}, len(keep))
	for _, id := range keep {
		live[id] = struct{}{}
	}

	pruned := 0
	for key := range h.surfaces {
		if key.desktop != desktop {
			continue
		}
		if _, ok := live[key.panel]; !ok {
			delete(h.surfaces, key)
			pruned++
		}
	}
	return pruned
}

func (h *Host) SetTransitions(desktop wm.DesktopID, on bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.transitions[desktop] = on
}

func (h *Host) Transitions(desktop wm.DesktopID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.transitions[desktop]
}
