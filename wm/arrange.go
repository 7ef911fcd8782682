package wm

import (
	"fmt"
	"time"
)

type transition struct {
	timer *time.Timer
}

// TweenWindows moves every visible panel of a desktop to its slot in the named
// arrangement. Panels are ranked by focus order, so the front most panel gets the
// first slot.
func (r *Registry) TweenWindows(desktopID DesktopID, name string) error {
	r.lock()
	defer r.unlock()

	d, err := r.desktop(desktopID)
	if err != nil {
		return r.reject("TweenWindows", err)
	}
	layout, ok := r.mosaic.Lookup(name)
	if !ok {
		return r.reject("TweenWindows", fmt.Errorf("%w: %q", ErrUnknownArrangement, name))
	}
	rect, err := r.measure(d)
	if err != nil {
		return r.reject("TweenWindows", err)
	}
	area := rect.Shrink(r.session.TaskbarReserve)

	grid := r.grid.V
	visible := d.visible(false)
	moved := make([]*panel, 0, len(visible))
	for rank, p := range visible {
		target, ok := layout.Place(rank, len(visible), area.Width, area.Height)
		if !ok {
			continue
		}

		p.Maximized = false
		r.setState(p, nil, PatchRect(grid.SnapRect(target)))
		moved = append(moved, p)
	}
	r.log.Debug("Arranged windows", "desktop", d.id, "arrangement", name, "count", len(visible))

	r.scheduleTransition(d, r.session.ArrangeTransition, nil)
	r.refresh(d)

	// Docked panels end up at their docked rect, so tween to what was committed.
	for _, p := range moved {
		if obs := p.observer; obs != nil {
			target := p.Geometry
			r.notify(func() { obs.TweenTo(target) })
		}
	}
	return nil
}

// scheduleTransition turns on animated geometry changes for a desktop and turns them
// off again after delay, then calls after. Scheduling again before the delay runs out
// replaces the pending cleanup.
func (r *Registry) scheduleTransition(d *desktop, delay time.Duration, after func(d *desktop)) {
	if t := d.transition; t != nil {
		t.timer.Stop()
	}
	r.host.SetTransitions(d.id, true)

	t := &transition{}
	t.timer = time.AfterFunc(delay, func() {
		r.lock()
		defer r.unlock()

		if d.transition != t {
			return
		}
		d.transition = nil
		r.host.SetTransitions(d.id, false)
		if after != nil {
			after(d)
		}
	})
	d.transition = t
}

// Transitioning reports whether a desktop is waiting for a transition to finish.
func (r *Registry) Transitioning(desktopID DesktopID) bool {
	r.lock()
	defer r.unlock()

	d, err := r.desktop(desktopID)
	if err != nil {
		return false
	}
	return d.transition != nil
}

// Close cancels pending transition cleanups.
func (r *Registry) Close() {
	r.lock()
	defer r.unlock()

	for _, d := range r.desktops {
		if t := d.transition; t != nil {
			t.timer.Stop()
			d.transition = nil
		}
	}
}
