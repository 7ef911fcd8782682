package wm

import (
	"fmt"
	"math"
	"slices"

	"github.com/ItsNotGoodName/x-panelwm/geom"
	"github.com/google/uuid"
)

type panel struct {
	Panel

	// Geometry before the panel was maximized.
	restore  geom.Rect
	observer PanelObserver
	// Last pointer position of an ongoing drag.
	drag *geom.Point
}

type desktop struct {
	id     DesktopID
	panels map[PanelID]*panel
	// Creation order of panels.
	order     []PanelID
	groups    map[GroupID]*Group
	nextSeq   int
	nextGroup GroupID
	// High-water mark of z indexes handed out.
	zTop  int
	mouse geom.Point

	observer    DesktopObserver
	taskbar     TaskbarObserver
	entries     map[PanelID]*TaskbarEntry
	highlighted PanelID
	transition  *transition
}

func newDesktop(id DesktopID) *desktop {
	return &desktop{
		id:      id,
		panels:  make(map[PanelID]*panel),
		groups:  make(map[GroupID]*Group),
		entries: make(map[PanelID]*TaskbarEntry),
	}
}

func (d *desktop) panel(id PanelID) (*panel, error) {
	p, ok := d.panels[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s on desktop %d", ErrUnknownPanel, id, d.id)
	}
	return p, nil
}

func (d *desktop) each(fn func(p *panel)) {
	for _, id := range d.order {
		fn(d.panels[id])
	}
}

func (d *desktop) filter(fn func(p *panel) bool) []*panel {
	var panels []*panel
	d.each(func(p *panel) {
		if fn(p) {
			panels = append(panels, p)
		}
	})
	return panels
}

func (d *desktop) raise() int {
	d.zTop++
	return d.zTop
}

func (d *desktop) snapshot() ([]Panel, []Group) {
	panels := make([]Panel, 0, len(d.order))
	d.each(func(p *panel) {
		panels = append(panels, p.Panel)
	})

	groups := make([]Group, 0, len(d.groups))
	for _, g := range d.groups {
		groups = append(groups, *g)
	}
	slices.SortFunc(groups, func(a, b Group) int { return int(a.ID) - int(b.ID) })

	return panels, groups
}

// AddWindow creates a panel hosting spec, places it and brings it to the front.
func (r *Registry) AddWindow(desktopID DesktopID, spec ContentSpec) (PanelID, error) {
	r.lock()
	defer r.unlock()

	d, err := r.desktop(desktopID)
	if err != nil {
		return "", r.reject("AddWindow", err)
	}
	if _, ok := r.contents[spec.Name]; !ok {
		return "", r.reject("AddWindow", fmt.Errorf("%w: %q", ErrUnknownContent, spec.Name))
	}
	if spec.Title == "" {
		spec.Title = "New Window"
	}

	p := &panel{
		Panel: Panel{
			ID:             PanelID(uuid.NewString()),
			Desktop:        d.id,
			Seq:            d.nextSeq,
			Content:        spec,
			State:          StateNormal,
			Embrace:        Embrace{Group: NoGroup},
			TaskbarUpdates: TaskbarUpdates{Thumbnail: true, State: true},
		},
	}
	d.nextSeq++
	p.Geometry = r.placement(d, p.Seq, spec)

	d.panels[p.ID] = p
	d.order = append(d.order, p.ID)
	r.log.Debug("Added window", "desktop", d.id, "panel", p.ID, "content", spec.Name)

	r.focus(d, p, NoGroup)
	r.refresh(d)

	return p.ID, nil
}

// placement returns the initial geometry of the seq-th panel of a desktop.
func (r *Registry) placement(d *desktop, seq int, spec ContentSpec) geom.Rect {
	rect, err := r.host.MeasureDesktopRect(d.id)
	known := err == nil && !rect.Empty()

	size := 0.0
	if known {
		size = r.mosaic.Tile().Size(rect.Width)
	}

	width := firstPositive(spec.InitialWidth, size, r.session.FallbackWidth)
	height := firstPositive(spec.InitialHeight, size, r.session.FallbackHeight)
	if known && spec.FillWidth {
		width = rect.Width
	}
	if known && spec.FillHeight {
		height = rect.Shrink(2 * r.session.TaskbarReserve).Height
	}

	offset := float64(seq) * r.session.PlacementStep
	x, y := offset, offset
	if known {
		if width >= rect.Width {
			x = 0
		} else {
			for x+width > rect.Width {
				x = x - rect.Width + width
			}
		}

		y = 0
		if span := rect.Height - height - r.session.PlacementMargin; span > 0 {
			y = math.Mod(offset, span)
		}
	}

	return r.grid.V.SnapRect(geom.Rect{X: x, Y: y, Width: width, Height: height})
}

func firstPositive(values ...float64) float64 {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

// RemoveWindow deletes a panel together with every relation pointing at it.
func (r *Registry) RemoveWindow(desktopID DesktopID, id PanelID) error {
	r.lock()
	defer r.unlock()

	d, p, err := r.lookup(desktopID, id)
	if err != nil {
		return r.reject("RemoveWindow", err)
	}
	r.remove(d, p)
	r.dropEmptyGroups(d)
	r.refresh(d)
	return nil
}

// remove deletes p without refreshing. Callers drop emptied groups afterwards.
func (r *Registry) remove(d *desktop, p *panel) {
	delete(d.panels, p.ID)
	d.order = slices.DeleteFunc(d.order, func(id PanelID) bool { return id == p.ID })
	delete(d.entries, p.ID)
	if d.highlighted == p.ID {
		d.highlighted = ""
	}

	// Children freeze at their last derived geometry.
	d.each(func(q *panel) {
		if q.Snap.IsSnapped && q.Snap.ParentID == p.ID {
			q.Snap = Snap{}
		}
	})

	if r.gesture.On && r.gesture.Start.Desktop == d.id && r.gesture.Start.Panel == p.ID {
		r.gesture.On = false
		if obs := d.observer; obs != nil {
			g := r.gesture
			r.notify(func() { obs.UpdatePath(g) })
		}
	}

	p.observer = nil
	r.log.Debug("Removed window", "desktop", d.id, "panel", p.ID)
}

// SetWindowState sets the lifecycle state when state is not nil and merges patch into
// the geometry of a panel.
func (r *Registry) SetWindowState(desktopID DesktopID, id PanelID, state *LifecycleState, patch GeometryPatch) error {
	r.lock()
	defer r.unlock()

	d, p, err := r.lookup(desktopID, id)
	if err != nil {
		return r.reject("SetWindowState", err)
	}
	if state != nil && *state != StateNormal && *state != StateMinimized {
		return r.reject("SetWindowState", fmt.Errorf("%q: invalid lifecycle state", *state))
	}

	r.setState(p, state, patch)
	r.refresh(d)
	return nil
}

// setState is the single place panel lifecycle and geometry are written.
func (r *Registry) setState(p *panel, state *LifecycleState, patch GeometryPatch) {
	if state != nil {
		p.State = *state
	}
	p.Geometry = patch.Apply(p.Geometry)
	p.TaskbarUpdates.State = true
}

func (r *Registry) setLifecycle(p *panel, state LifecycleState) {
	r.setState(p, &state, GeometryPatch{})
}

func (r *Registry) MinimizeWindow(desktopID DesktopID, id PanelID, patch GeometryPatch) error {
	state := StateMinimized
	return r.SetWindowState(desktopID, id, &state, patch)
}

func (r *Registry) NormalizeWindow(desktopID DesktopID, id PanelID) error {
	state := StateNormal
	return r.SetWindowState(desktopID, id, &state, GeometryPatch{})
}

// CenterWindow moves a panel to the centre of its desktop, restoring it first when
// it is maximized.
func (r *Registry) CenterWindow(desktopID DesktopID, id PanelID) error {
	r.lock()
	defer r.unlock()

	d, p, err := r.lookup(desktopID, id)
	if err != nil {
		return r.reject("CenterWindow", err)
	}
	rect, err := r.measure(d)
	if err != nil {
		return r.reject("CenterWindow", err)
	}

	if p.Maximized {
		r.toggleMaximize(p, rect)
	}

	grid := r.grid.V
	x := grid.Snap(math.Floor(rect.Width/2-p.Geometry.Width/2), geom.AxisX)
	y := grid.Snap(math.Floor(rect.Height/2-p.Geometry.Height/2), geom.AxisY)
	r.setState(p, nil, PatchPosition(x, y))

	if obs := p.observer; obs != nil {
		target := p.Geometry
		r.notify(func() { obs.Center(target) })
	}
	r.refresh(d)
	return nil
}

// MaximizeWindow toggles a panel between filling its desktop and the geometry it had
// before.
func (r *Registry) MaximizeWindow(desktopID DesktopID, id PanelID) error {
	r.lock()
	defer r.unlock()

	d, p, err := r.lookup(desktopID, id)
	if err != nil {
		return r.reject("MaximizeWindow", err)
	}

	var rect geom.Rect
	if !p.Maximized {
		rect, err = r.measure(d)
		if err != nil {
			return r.reject("MaximizeWindow", err)
		}
	}
	r.toggleMaximize(p, rect)
	r.refresh(d)
	return nil
}

func (r *Registry) toggleMaximize(p *panel, rect geom.Rect) {
	if p.Maximized {
		p.Geometry = p.restore
	} else {
		p.restore = p.Geometry
		p.Geometry = geom.Rect{Width: rect.Width, Height: rect.Shrink(r.session.TaskbarReserve).Height}
	}
	p.Maximized = !p.Maximized

	if obs := p.observer; obs != nil {
		target, maximized := p.Geometry, p.Maximized
		r.notify(func() { obs.Maximize(target, maximized) })
	}
}

func (r *Registry) measure(d *desktop) (geom.Rect, error) {
	rect, err := r.host.MeasureDesktopRect(d.id)
	if err != nil {
		return geom.Rect{}, fmt.Errorf("%w: %w", ErrNotReady, err)
	}
	if rect.Empty() {
		return geom.Rect{}, fmt.Errorf("%w: desktop %d has no area", ErrNotReady, d.id)
	}
	return rect, nil
}

func (r *Registry) MinimizeAll(desktopID DesktopID) error {
	return r.bulkLifecycle("MinimizeAll", desktopID, StateMinimized, func(*panel) bool { return true })
}

func (r *Registry) ShowAll(desktopID DesktopID) error {
	return r.bulkLifecycle("ShowAll", desktopID, StateNormal, func(*panel) bool { return true })
}

func (r *Registry) MinimizeAllEmbraced(desktopID DesktopID) error {
	return r.bulkLifecycle("MinimizeAllEmbraced", desktopID, StateMinimized, func(p *panel) bool { return p.Embrace.Embraced })
}

func (r *Registry) bulkLifecycle(op string, desktopID DesktopID, state LifecycleState, match func(*panel) bool) error {
	r.lock()
	defer r.unlock()

	d, err := r.desktop(desktopID)
	if err != nil {
		return r.reject(op, err)
	}
	for _, p := range d.filter(match) {
		r.setLifecycle(p, state)
	}
	r.refresh(d)
	return nil
}

func (r *Registry) RemoveAll(desktopID DesktopID) error {
	return r.bulkRemove("RemoveAll", desktopID, func(*panel) bool { return true })
}

func (r *Registry) RemoveAllEmbraced(desktopID DesktopID) error {
	return r.bulkRemove("RemoveAllEmbraced", desktopID, func(p *panel) bool { return p.Embrace.Embraced })
}

func (r *Registry) bulkRemove(op string, desktopID DesktopID, match func(*panel) bool) error {
	r.lock()
	defer r.unlock()

	d, err := r.desktop(desktopID)
	if err != nil {
		return r.reject(op, err)
	}
	for _, p := range d.filter(match) {
		r.remove(d, p)
	}
	r.dropEmptyGroups(d)
	r.refresh(d)
	return nil
}
