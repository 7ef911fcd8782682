package wm

import (
	"cmp"
	"slices"
)

// FocusWindow brings a panel to the front. When group is not NoGroup the other members
// of that group are raised first as a block, keeping their relative order.
func (r *Registry) FocusWindow(desktopID DesktopID, id PanelID, group GroupID) error {
	r.lock()
	defer r.unlock()

	d, p, err := r.lookup(desktopID, id)
	if err != nil {
		return r.reject("FocusWindow", err)
	}
	r.focus(d, p, group)
	return nil
}

func (r *Registry) focus(d *desktop, p *panel, group GroupID) {
	d.each(func(q *panel) {
		if obs := q.observer; obs != nil {
			r.notify(obs.Unfocus)
		}
	})

	if group != NoGroup {
		members := d.filter(func(q *panel) bool { return q != p && q.Embrace.Group == group })
		slices.SortFunc(members, func(a, b *panel) int { return cmp.Compare(a.ZIndex, b.ZIndex) })
		for _, q := range members {
			q.ZIndex = d.raise()
			if obs := q.observer; obs != nil {
				snap := q.Panel
				r.notify(func() { obs.Focus(snap, true) })
			}
		}
	}

	p.ZIndex = d.raise()
	if obs := p.observer; obs != nil {
		snap := p.Panel
		r.notify(func() { obs.Focus(snap, false) })
	}

	r.highlight(d, p.ID)
}

// FindHighestZIndex returns the z index of the front most panel, 0 on an empty desktop.
func (r *Registry) FindHighestZIndex(desktopID DesktopID) int {
	r.lock()
	defer r.unlock()

	d, err := r.desktop(desktopID)
	if err != nil {
		r.reject("FindHighestZIndex", err)
		return 0
	}
	return d.highestZIndex()
}

func (d *desktop) highestZIndex() int {
	highest := 0
	for _, p := range d.panels {
		highest = max(highest, p.ZIndex)
	}
	return highest
}

// FocusOrder returns the rank of a panel among the non-minimized panels of its desktop,
// front most first, or back most first when reversed. It returns false for minimized
// or unknown panels.
func (r *Registry) FocusOrder(desktopID DesktopID, id PanelID, reversed bool) (int, bool) {
	r.lock()
	defer r.unlock()

	d, err := r.desktop(desktopID)
	if err != nil {
		return 0, false
	}
	return d.focusOrder(id, reversed)
}

func (d *desktop) focusOrder(id PanelID, reversed bool) (int, bool) {
	for rank, p := range d.visible(reversed) {
		if p.ID == id {
			return rank, true
		}
	}
	return 0, false
}

// visible returns the non-minimized panels sorted by z index, highest first unless reversed.
func (d *desktop) visible(reversed bool) []*panel {
	panels := d.filter(func(p *panel) bool { return !p.Minimized() })
	slices.SortFunc(panels, func(a, b *panel) int {
		if reversed {
			return cmp.Compare(a.ZIndex, b.ZIndex)
		}
		return cmp.Compare(b.ZIndex, a.ZIndex)
	})
	return panels
}
