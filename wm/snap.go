package wm

import (
	"fmt"

	"github.com/ItsNotGoodName/x-panelwm/geom"
)

// StartPath begins a snap gesture from the edge of a panel. A gesture already in
// progress on any desktop is replaced.
func (r *Registry) StartPath(desktopID DesktopID, pointer geom.Point, id PanelID, edge geom.Edge) error {
	r.lock()
	defer r.unlock()

	d, _, err := r.lookup(desktopID, id)
	if err != nil {
		return r.reject("StartPath", err)
	}
	if !edge.Valid() {
		return r.reject("StartPath", fmt.Errorf("%w: %q: invalid edge", ErrInvalidSnap, edge))
	}

	start := PathEnd{Point: pointer, Desktop: d.id, Panel: id, Edge: edge}
	r.gesture = SnapGesture{On: true, Start: start, End: PathEnd{Point: pointer, Desktop: d.id}}
	d.mouse = pointer
	r.updatePath(d)
	return nil
}

// SetMousePosition records the pointer position on a desktop and redraws the gesture.
func (r *Registry) SetMousePosition(desktopID DesktopID, pointer geom.Point) error {
	r.lock()
	defer r.unlock()

	d, err := r.desktop(desktopID)
	if err != nil {
		return r.reject("SetMousePosition", err)
	}
	d.mouse = pointer
	r.drawPath(d)
	return nil
}

// DrawPath moves the loose end of the gesture to the last pointer position of a desktop.
func (r *Registry) DrawPath(desktopID DesktopID) error {
	r.lock()
	defer r.unlock()

	d, err := r.desktop(desktopID)
	if err != nil {
		return r.reject("DrawPath", err)
	}
	r.drawPath(d)
	return nil
}

func (r *Registry) drawPath(d *desktop) {
	if !r.gesture.On || r.gesture.Start.Desktop != d.id {
		return
	}
	r.gesture.End.Point = d.mouse
	r.updatePath(d)
}

func (r *Registry) updatePath(d *desktop) {
	if obs := d.observer; obs != nil {
		g := r.gesture
		r.notify(func() { obs.UpdatePath(g) })
	}
}

// EndPath finishes the gesture on the edge of a second panel and docks the panel the
// gesture started from onto it.
func (r *Registry) EndPath(desktopID DesktopID, id PanelID, edge geom.Edge) error {
	r.lock()
	defer r.unlock()

	d, err := r.desktop(desktopID)
	if err != nil {
		return r.reject("EndPath", err)
	}
	if !r.gesture.On {
		return r.reject("EndPath", fmt.Errorf("%w: no gesture in progress", ErrInvalidSnap))
	}

	r.gesture.On = false
	r.gesture.End = PathEnd{Point: d.mouse, Desktop: d.id, Panel: id, Edge: edge}
	r.updatePath(d)

	start := r.gesture.Start
	if start.Desktop != d.id {
		return r.reject("EndPath", fmt.Errorf("%w: gesture started on desktop %d", ErrInvalidSnap, start.Desktop))
	}
	if err := r.snap(d, start.Panel, start.Edge, id, edge); err != nil {
		return r.reject("EndPath", err)
	}
	r.refresh(d)
	return nil
}

// SnapWindowToWindow docks the edge of child onto the edge of parent. The child's
// geometry follows the parent from then on.
func (r *Registry) SnapWindowToWindow(desktopID DesktopID, child PanelID, edge geom.Edge, parent PanelID, parentEdge geom.Edge) error {
	r.lock()
	defer r.unlock()

	d, err := r.desktop(desktopID)
	if err != nil {
		return r.reject("SnapWindowToWindow", err)
	}
	if err := r.snap(d, child, edge, parent, parentEdge); err != nil {
		return r.reject("SnapWindowToWindow", err)
	}
	r.refresh(d)
	return nil
}

func (r *Registry) snap(d *desktop, childID PanelID, edge geom.Edge, parentID PanelID, parentEdge geom.Edge) error {
	child, err := d.panel(childID)
	if err != nil {
		return err
	}
	parent, err := d.panel(parentID)
	if err != nil {
		return err
	}
	if !edge.Valid() || !parentEdge.Valid() {
		return fmt.Errorf("%w: %q to %q: invalid edge", ErrInvalidSnap, edge, parentEdge)
	}
	if edge.Axis() != parentEdge.Axis() {
		return fmt.Errorf("%w: %s edge cannot dock to %s edge", ErrInvalidSnap, edge, parentEdge)
	}
	if child == parent {
		return fmt.Errorf("%w: panel %s cannot dock to itself", ErrInvalidSnap, child.ID)
	}
	for q := parent; q.Snap.IsSnapped; {
		next, ok := d.panels[q.Snap.ParentID]
		if !ok {
			break
		}
		if next == child {
			return fmt.Errorf("%w: panel %s already follows %s", ErrInvalidSnap, parent.ID, child.ID)
		}
		q = next
	}

	child.Snap = Snap{IsSnapped: true, Edge: edge, ParentID: parent.ID, ParentEdge: parentEdge}
	r.log.Debug("Snapped window", "desktop", d.id, "panel", child.ID, "edge", edge, "parent", parent.ID, "parent_edge", parentEdge)
	return nil
}

// dock returns the geometry of a child whose edge is docked to parentEdge of parent.
func dock(child geom.Rect, edge geom.Edge, parent geom.Rect, parentEdge geom.Edge) geom.Rect {
	switch {
	case edge == parentEdge:
		return parent
	case edge == geom.EdgeLeft && parentEdge == geom.EdgeRight:
		return geom.Rect{X: parent.X + parent.Width, Y: parent.Y, Width: child.Width, Height: parent.Height}
	case edge == geom.EdgeRight && parentEdge == geom.EdgeLeft:
		return geom.Rect{X: parent.X - child.Width, Y: parent.Y, Width: child.Width, Height: parent.Height}
	case edge == geom.EdgeTop && parentEdge == geom.EdgeBottom:
		return geom.Rect{X: parent.X, Y: parent.Y + parent.Height, Width: parent.Width, Height: child.Height}
	case edge == geom.EdgeBottom && parentEdge == geom.EdgeTop:
		return geom.Rect{X: parent.X, Y: parent.Y - child.Height, Width: parent.Width, Height: child.Height}
	}
	return child
}

// resolveSnaps derives the geometry of every docked panel from its parent, parents
// first. A panel reached again while its own parent chain is resolving keeps its
// geometry.
func (r *Registry) resolveSnaps(d *desktop) {
	const (
		visiting = iota + 1
		done
	)
	marks := make(map[PanelID]int, len(d.panels))

	var resolve func(p *panel)
	resolve = func(p *panel) {
		if marks[p.ID] != 0 {
			return
		}
		marks[p.ID] = visiting
		defer func() { marks[p.ID] = done }()

		if !p.Snap.IsSnapped {
			return
		}
		parent, ok := d.panels[p.Snap.ParentID]
		if !ok {
			p.Snap = Snap{}
			return
		}
		if marks[parent.ID] == visiting {
			return
		}
		resolve(parent)
		p.Geometry = dock(p.Geometry, p.Snap.Edge, parent.Geometry, p.Snap.ParentEdge)
	}

	d.each(resolve)
}

// UnsnapWindow releases a docked panel where it currently is.
func (r *Registry) UnsnapWindow(desktopID DesktopID, id PanelID) error {
	r.lock()
	defer r.unlock()

	d, p, err := r.lookup(desktopID, id)
	if err != nil {
		return r.reject("UnsnapWindow", err)
	}
	r.unsnap(d, p)
	r.scheduleTransition(d, r.session.UnsnapTransition, r.refresh)
	r.refresh(d)
	return nil
}

func (r *Registry) unsnap(d *desktop, p *panel) {
	if !p.Snap.IsSnapped {
		return
	}
	p.Snap = Snap{}
	r.log.Debug("Unsnapped window", "desktop", d.id, "panel", p.ID)
}

// UnsnapAllEmbraced releases every selected panel on every desktop.
func (r *Registry) UnsnapAllEmbraced() {
	r.lock()
	defer r.unlock()

	for _, d := range r.desktops {
		embraced := d.embraced()
		if len(embraced) == 0 {
			continue
		}
		for _, p := range embraced {
			r.unsnap(d, p)
		}
		r.scheduleTransition(d, r.session.UnsnapTransition, r.refresh)
		r.refresh(d)
	}
}

// ToggleSnapPorts shows or hides the edge handles snap gestures start from and
// returns the new setting.
func (r *Registry) ToggleSnapPorts() bool {
	r.lock()
	defer r.unlock()

	r.snapPorts = !r.snapPorts
	for _, d := range r.desktops {
		r.refresh(d)
	}
	return r.snapPorts
}

func (r *Registry) SnapPorts() bool {
	r.lock()
	defer r.unlock()

	return r.snapPorts
}

func (r *Registry) SnapGesture() SnapGesture {
	r.lock()
	defer r.unlock()

	return r.gesture
}
