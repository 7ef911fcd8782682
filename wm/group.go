package wm

import (
	"fmt"
	"math"

	"github.com/ItsNotGoodName/x-panelwm/geom"
)

// ToggleEmbrace flips the selection flag of a panel.
func (r *Registry) ToggleEmbrace(desktopID DesktopID, id PanelID) error {
	return r.embrace("ToggleEmbrace", desktopID, id, func(on bool) bool { return !on })
}

// SetEmbrace forces the selection flag of a panel.
func (r *Registry) SetEmbrace(desktopID DesktopID, id PanelID, on bool) error {
	return r.embrace("SetEmbrace", desktopID, id, func(bool) bool { return on })
}

func (r *Registry) embrace(op string, desktopID DesktopID, id PanelID, fn func(on bool) bool) error {
	r.lock()
	defer r.unlock()

	d, p, err := r.lookup(desktopID, id)
	if err != nil {
		return r.reject(op, err)
	}
	p.Embrace.Embraced = fn(p.Embrace.Embraced)
	r.refresh(d)
	return nil
}

func (r *Registry) EmbraceAll(desktopID DesktopID) error {
	return r.embraceEach("EmbraceAll", desktopID, func(bool) bool { return true })
}

func (r *Registry) UnembraceAll(desktopID DesktopID) error {
	return r.embraceEach("UnembraceAll", desktopID, func(bool) bool { return false })
}

func (r *Registry) InvertEmbrace(desktopID DesktopID) error {
	return r.embraceEach("InvertEmbrace", desktopID, func(on bool) bool { return !on })
}

func (r *Registry) embraceEach(op string, desktopID DesktopID, fn func(on bool) bool) error {
	r.lock()
	defer r.unlock()

	d, err := r.desktop(desktopID)
	if err != nil {
		return r.reject(op, err)
	}
	d.each(func(p *panel) {
		p.Embrace.Embraced = fn(p.Embrace.Embraced)
	})
	r.refresh(d)
	return nil
}

// EmbracedIDs returns the selected panels of a desktop in creation order.
func (r *Registry) EmbracedIDs(desktopID DesktopID) []PanelID {
	r.lock()
	defer r.unlock()

	d, err := r.desktop(desktopID)
	if err != nil {
		return nil
	}
	return ids(d.embraced())
}

func (d *desktop) embraced() []*panel {
	return d.filter(func(p *panel) bool { return p.Embrace.Embraced })
}

func ids(panels []*panel) []PanelID {
	ids := make([]PanelID, 0, len(panels))
	for _, p := range panels {
		ids = append(ids, p.ID)
	}
	return ids
}

// GroupEmbraced turns the selected panels into a new group and clears their selection.
// Groups left without members by the move are deleted. It returns NoGroup when nothing
// is selected.
func (r *Registry) GroupEmbraced(desktopID DesktopID) (GroupID, error) {
	r.lock()
	defer r.unlock()

	d, err := r.desktop(desktopID)
	if err != nil {
		return NoGroup, r.reject("GroupEmbraced", err)
	}

	members := d.embraced()
	if len(members) == 0 {
		r.log.Debug("Nothing to group", "desktop", d.id)
		return NoGroup, nil
	}

	var sum geom.Point
	for _, p := range members {
		c := p.Geometry.Center()
		sum.X += c.X
		sum.Y += c.Y
		p.Embrace.Group = NoGroup
	}
	r.dropEmptyGroups(d)

	group := &Group{
		ID: d.nextGroup,
		Anchor: geom.Point{
			X: math.Trunc(sum.X / float64(len(members))),
			Y: math.Trunc(sum.Y / float64(len(members))),
		},
	}
	d.nextGroup++
	d.groups[group.ID] = group

	for _, p := range members {
		p.Embrace = Embrace{Embraced: false, Group: group.ID}
		p.TaskbarUpdates.State = true
	}
	r.log.Debug("Grouped windows", "desktop", d.id, "group", group.ID, "count", len(members))

	r.refresh(d)
	return group.ID, nil
}

// dropEmptyGroups deletes every group no panel belongs to.
func (r *Registry) dropEmptyGroups(d *desktop) {
	used := make(map[GroupID]bool)
	for _, p := range d.panels {
		used[p.Embrace.Group] = true
	}
	for id := range d.groups {
		if !used[id] {
			delete(d.groups, id)
		}
	}
}

func (d *desktop) members(group GroupID) []*panel {
	return d.filter(func(p *panel) bool { return p.Embrace.Group == group })
}

// GroupMembers returns the panels of a group in creation order.
func (r *Registry) GroupMembers(desktopID DesktopID, group GroupID) []PanelID {
	r.lock()
	defer r.unlock()

	d, err := r.desktop(desktopID)
	if err != nil || group == NoGroup {
		return nil
	}
	return ids(d.members(group))
}

// RemoveFromGroup takes a panel out of its group. Panels without a group are left alone.
func (r *Registry) RemoveFromGroup(desktopID DesktopID, id PanelID) error {
	r.lock()
	defer r.unlock()

	d, p, err := r.lookup(desktopID, id)
	if err != nil {
		return r.reject("RemoveFromGroup", err)
	}
	if p.Embrace.Group == NoGroup {
		return nil
	}

	p.Embrace.Group = NoGroup
	p.TaskbarUpdates.State = true
	r.dropEmptyGroups(d)
	r.refresh(d)
	return nil
}

// RemoveGroupHandle dissolves a group, every member becomes ungrouped.
func (r *Registry) RemoveGroupHandle(desktopID DesktopID, group GroupID) error {
	r.lock()
	defer r.unlock()

	d, err := r.group("RemoveGroupHandle", desktopID, group)
	if err != nil {
		return err
	}

	delete(d.groups, group)
	for _, p := range d.members(group) {
		p.Embrace.Group = NoGroup
		p.TaskbarUpdates.State = true
	}
	r.refresh(d)
	return nil
}

func (r *Registry) group(op string, desktopID DesktopID, group GroupID) (*desktop, error) {
	d, err := r.desktop(desktopID)
	if err != nil {
		return nil, r.reject(op, err)
	}
	if _, ok := d.groups[group]; !ok {
		return nil, r.reject(op, fmt.Errorf("%w: %d on desktop %d", ErrUnknownGroup, group, d.id))
	}
	return d, nil
}

// ShiftGroup moves every member of a group, and its anchor, by the same delta.
func (r *Registry) ShiftGroup(desktopID DesktopID, group GroupID, dx, dy float64) error {
	r.lock()
	defer r.unlock()

	d, err := r.group("ShiftGroup", desktopID, group)
	if err != nil {
		return err
	}
	r.shiftGroup(d, group, dx, dy)
	r.refresh(d)
	return nil
}

func (r *Registry) shiftGroup(d *desktop, group GroupID, dx, dy float64) {
	for _, p := range d.members(group) {
		r.shift(p, dx, dy)
	}
	if g, ok := d.groups[group]; ok {
		g.Anchor.X += dx
		g.Anchor.Y += dy
	}
}

func (r *Registry) shift(p *panel, dx, dy float64) {
	p.Geometry = p.Geometry.Translate(dx, dy)
	if obs := p.observer; obs != nil {
		r.notify(func() { obs.ShiftPosition(dx, dy) })
	}
}

func (r *Registry) MinimizeGroup(desktopID DesktopID, group GroupID) error {
	r.lock()
	defer r.unlock()

	d, err := r.group("MinimizeGroup", desktopID, group)
	if err != nil {
		return err
	}
	for _, p := range d.members(group) {
		r.setLifecycle(p, StateMinimized)
	}
	r.refresh(d)
	return nil
}

// RemoveGroupWithWindows deletes a group and every panel in it.
func (r *Registry) RemoveGroupWithWindows(desktopID DesktopID, group GroupID) error {
	r.lock()
	defer r.unlock()

	d, err := r.group("RemoveGroupWithWindows", desktopID, group)
	if err != nil {
		return err
	}
	for _, p := range d.members(group) {
		r.remove(d, p)
	}
	delete(d.groups, group)
	r.refresh(d)
	return nil
}

// DragStart begins a pointer drag of a panel at pointer.
func (r *Registry) DragStart(desktopID DesktopID, id PanelID, pointer geom.Point) error {
	r.lock()
	defer r.unlock()

	_, p, err := r.lookup(desktopID, id)
	if err != nil {
		return r.reject("DragStart", err)
	}
	p.drag = &pointer
	return nil
}

// DragMove follows the pointer of a drag. A grouped panel drags its whole group along
// unless solo is set.
func (r *Registry) DragMove(desktopID DesktopID, id PanelID, pointer geom.Point, solo bool) error {
	r.lock()
	defer r.unlock()

	d, p, err := r.lookup(desktopID, id)
	if err != nil {
		return r.reject("DragMove", err)
	}
	if p.drag == nil {
		p.drag = &pointer
		return nil
	}

	dx, dy := pointer.X-p.drag.X, pointer.Y-p.drag.Y
	p.drag = &pointer
	if !solo && p.Embrace.Group != NoGroup {
		r.shiftGroup(d, p.Embrace.Group, dx, dy)
	} else {
		r.shift(p, dx, dy)
	}
	r.refresh(d)
	return nil
}

// DragEnd commits the final position of a dragged panel on the grid, never above the
// top of the desktop. A nil position keeps the position reached while dragging.
func (r *Registry) DragEnd(desktopID DesktopID, id PanelID, position *geom.Point) error {
	r.lock()
	defer r.unlock()

	d, p, err := r.lookup(desktopID, id)
	if err != nil {
		return r.reject("DragEnd", err)
	}
	p.drag = nil

	pos := geom.Point{X: p.Geometry.X, Y: p.Geometry.Y}
	if position != nil {
		pos = *position
	}
	pos = r.grid.V.SnapPoint(pos)
	r.setState(p, nil, PatchPosition(pos.X, math.Max(pos.Y, 0)))
	r.refresh(d)
	return nil
}

// ResizeEnd commits the size a panel was resized to.
func (r *Registry) ResizeEnd(desktopID DesktopID, id PanelID, width, height float64) error {
	if width <= 0 || height <= 0 {
		return r.reject("ResizeEnd", fmt.Errorf("%vx%v: invalid size", width, height))
	}
	return r.SetWindowState(desktopID, id, nil, PatchSize(width, height))
}
