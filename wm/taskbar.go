package wm

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// TaskbarEntry mirrors one panel in the taskbar of its desktop.
type TaskbarEntry struct {
	ID          PanelID     `json:"id"`
	Title       string      `json:"title"`
	Thumbnail   image.Image `json:"-"`
	Color       string      `json:"color"`
	Opacity     float64     `json:"opacity"`
	Highlighted bool        `json:"highlighted"`
	Minimized   bool        `json:"minimized"`
}

// syncTaskbar brings the taskbar entries of a desktop up to date with the dirty flags
// of its panels. Flags stay set when the host cannot capture a panel yet.
func (r *Registry) syncTaskbar(d *desktop) {
	entries := make([]TaskbarEntry, 0, len(d.order))
	d.each(func(p *panel) {
		e, ok := d.entries[p.ID]
		if !ok {
			e = &TaskbarEntry{ID: p.ID}
			d.entries[p.ID] = e
		}
		e.Title = p.Content.Title
		e.Highlighted = d.highlighted == p.ID

		if p.TaskbarUpdates.Thumbnail {
			if thumb, err := r.thumbnail(d, p); err != nil {
				r.log.Debug("Thumbnail not ready", "desktop", d.id, "panel", p.ID, "error", err)
			} else {
				e.Thumbnail = thumb
				p.TaskbarUpdates.Thumbnail = false
			}
		}

		if p.TaskbarUpdates.State {
			e.Color = r.swatch(p.Embrace.Group)
			e.Minimized = p.Minimized()
			e.Opacity = 1
			if e.Minimized {
				e.Opacity = r.session.MinimizedOpacity
			}
			p.TaskbarUpdates.State = false
		}

		entries = append(entries, *e)
	})

	if obs := d.taskbar; obs != nil {
		r.notify(func() { obs.RefreshTaskbar(entries) })
	}
}

// thumbnail captures the visible surface of a panel scaled to the thumbnail height.
func (r *Registry) thumbnail(d *desktop, p *panel) (image.Image, error) {
	img, err := r.host.CaptureVisibleBitmap(d.id, p.ID)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, fmt.Errorf("%w: panel has no surface", ErrNotReady)
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: panel surface is empty", ErrNotReady)
	}
	height := r.session.ThumbnailHeight
	width := max(1, int(math.Round(float64(height)*float64(b.Dx())/float64(b.Dy()))))

	return imaging.Resize(img, width, height, imaging.NearestNeighbor), nil
}

func (r *Registry) swatch(group GroupID) string {
	hex := r.session.GroupColor(group)
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	return c.Hex()
}

func (r *Registry) highlight(d *desktop, id PanelID) {
	d.highlighted = id
	for _, e := range d.entries {
		e.Highlighted = e.ID == id
	}
	if obs := d.taskbar; obs != nil {
		r.notify(func() { obs.HighlightThumbnail(id) })
	}
}

// Taskbar returns the taskbar entries of a desktop in panel creation order.
func (r *Registry) Taskbar(desktopID DesktopID) ([]TaskbarEntry, error) {
	r.lock()
	defer r.unlock()

	d, err := r.desktop(desktopID)
	if err != nil {
		return nil, err
	}
	entries := make([]TaskbarEntry, 0, len(d.order))
	d.each(func(p *panel) {
		if e, ok := d.entries[p.ID]; ok {
			entries = append(entries, *e)
		}
	})
	return entries, nil
}

// Thumbnail returns the last captured thumbnail of a panel, nil when none was captured yet.
func (r *Registry) Thumbnail(desktopID DesktopID, id PanelID) (image.Image, error) {
	r.lock()
	defer r.unlock()

	d, _, err := r.lookup(desktopID, id)
	if err != nil {
		return nil, err
	}
	if e, ok := d.entries[id]; ok {
		return e.Thumbnail, nil
	}
	return nil, nil
}

// RequestThumbnails marks every thumbnail of a desktop dirty and refreshes it.
func (r *Registry) RequestThumbnails(desktopID DesktopID) error {
	r.lock()
	defer r.unlock()

	d, err := r.desktop(desktopID)
	if err != nil {
		return r.reject("RequestThumbnails", err)
	}
	d.each(func(p *panel) {
		p.TaskbarUpdates.Thumbnail = true
	})
	r.syncTaskbar(d)
	return nil
}
