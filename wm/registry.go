// Package wm manages floating panels on one or more desktops.
//
// A Registry owns every desktop, the session wide settings (grid pitch, colour
// palette, the snap gesture) and the content factories. Operations mutate state
// while holding the Registry lock; notifications to observers are queued and only
// delivered once the lock is released, so observers always see the state the
// operation produced and are free to call back into the Registry.
//
// Operations given an unknown desktop, panel or argument log a warning, leave the
// state untouched and return an error wrapping one of the Err values.
package wm

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/ItsNotGoodName/x-panelwm/geom"
	"github.com/ItsNotGoodName/x-panelwm/internal/core"
	"github.com/ItsNotGoodName/x-panelwm/mosaic"
)

type Registry struct {
	mu      sync.Mutex
	pending []func()

	host        Host
	session     SessionConfig
	grid        *core.Signal[geom.Grid]
	mosaic      mosaic.Mosaic
	desktops    map[DesktopID]*desktop
	nextDesktop DesktopID
	gesture     SnapGesture
	snapPorts   bool
	contents    map[string]ContentFactory
	log         *slog.Logger
}

func NewRegistry(host Host, session SessionConfig) (*Registry, error) {
	if host == nil {
		return nil, fmt.Errorf("host is required")
	}
	if err := session.Validate(); err != nil {
		return nil, err
	}

	r := &Registry{
		host:     host,
		session:  session,
		grid:     core.NewSignal(session.Grid),
		mosaic:   mosaic.New(session.Mosaic),
		desktops: make(map[DesktopID]*desktop),
		contents: make(map[string]ContentFactory),
		log:      slog.With("package", "wm"),
	}
	r.grid.AddEffect(r.onGridChange)

	return r, nil
}

func (r *Registry) lock() {
	r.mu.Lock()
}

// unlock releases the lock and then delivers the queued notifications in order.
func (r *Registry) unlock() {
	pending := r.pending
	r.pending = nil
	r.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
}

func (r *Registry) notify(fn func()) {
	r.pending = append(r.pending, fn)
}

func (r *Registry) reject(op string, err error) error {
	r.log.Warn("Rejected operation", "op", op, "error", err)
	return err
}

func (r *Registry) desktop(id DesktopID) (*desktop, error) {
	d, ok := r.desktops[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDesktop, id)
	}
	return d, nil
}

func (r *Registry) lookup(desktopID DesktopID, id PanelID) (*desktop, *panel, error) {
	d, err := r.desktop(desktopID)
	if err != nil {
		return nil, nil, err
	}
	p, err := d.panel(id)
	if err != nil {
		return nil, nil, err
	}
	return d, p, nil
}

// Subscribe creates a new empty desktop.
func (r *Registry) Subscribe() DesktopID {
	r.lock()
	defer r.unlock()

	id := r.nextDesktop
	r.nextDesktop++
	r.desktops[id] = newDesktop(id)
	r.log.Debug("Subscribed desktop", "desktop", id)

	return id
}

func (r *Registry) Desktops() []DesktopID {
	r.lock()
	defer r.unlock()

	ids := make([]DesktopID, 0, len(r.desktops))
	for id := range r.desktops {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Session returns a copy of the session configuration, including the current grid.
func (r *Registry) Session() SessionConfig {
	r.lock()
	defer r.unlock()

	s := r.session
	s.Grid = r.grid.V
	s.Palette = slices.Clone(s.Palette)
	return s
}

func (r *Registry) Arrangements() []string {
	return r.mosaic.Names()
}

// RegisterContent makes a content factory available under name, replacing any
// previous factory with the same name.
func (r *Registry) RegisterContent(name string, factory ContentFactory) {
	r.lock()
	defer r.unlock()

	r.contents[name] = factory
}

func (r *Registry) ResolveContent(name string) (ContentFactory, bool) {
	r.lock()
	defer r.unlock()

	f, ok := r.contents[name]
	return f, ok
}

// Instantiate builds the content of a panel with its registered factory.
func (r *Registry) Instantiate(desktopID DesktopID, id PanelID) (any, error) {
	r.lock()
	_, p, err := r.lookup(desktopID, id)
	if err != nil {
		r.unlock()
		return nil, r.reject("Instantiate", err)
	}
	spec := p.Content
	factory, ok := r.contents[spec.Name]
	r.unlock()
	if !ok {
		return nil, r.reject("Instantiate", fmt.Errorf("%w: %s", ErrUnknownContent, spec.Name))
	}

	return factory(ContentContext{Desktop: desktopID, Panel: id}, spec.Props)
}

// AttachObserver connects the view of a panel, replacing any previous observer.
func (r *Registry) AttachObserver(desktopID DesktopID, id PanelID, obs PanelObserver) error {
	r.lock()
	defer r.unlock()

	_, p, err := r.lookup(desktopID, id)
	if err != nil {
		return r.reject("AttachObserver", err)
	}
	p.observer = obs

	snap := p.Panel
	grid := r.grid.V
	r.notify(func() {
		obs.SetGridSize(grid)
		obs.Refresh(snap)
	})
	return nil
}

func (r *Registry) DetachObserver(desktopID DesktopID, id PanelID) error {
	r.lock()
	defer r.unlock()

	_, p, err := r.lookup(desktopID, id)
	if err != nil {
		return r.reject("DetachObserver", err)
	}
	p.observer = nil
	return nil
}

// SubscribePanels registers the view of the panel collection of a desktop.
func (r *Registry) SubscribePanels(desktopID DesktopID, obs DesktopObserver) error {
	r.lock()
	defer r.unlock()

	d, err := r.desktop(desktopID)
	if err != nil {
		return r.reject("SubscribePanels", err)
	}
	d.observer = obs
	r.refresh(d)
	return nil
}

func (r *Registry) SubscribeTaskbar(desktopID DesktopID, obs TaskbarObserver) error {
	r.lock()
	defer r.unlock()

	d, err := r.desktop(desktopID)
	if err != nil {
		return r.reject("SubscribeTaskbar", err)
	}
	d.taskbar = obs
	r.refresh(d)
	return nil
}

// SetGridSizes changes the grid pitch of the session and tells every panel about it.
func (r *Registry) SetGridSizes(grid geom.Grid) {
	r.lock()
	defer r.unlock()

	r.grid.SetValue(grid)
}

func (r *Registry) onGridChange(grid geom.Grid) {
	for _, d := range r.desktops {
		d.each(func(p *panel) {
			if obs := p.observer; obs != nil {
				r.notify(func() { obs.SetGridSize(grid) })
			}
		})
	}
}

// Refresh re-derives snapped geometry and pushes the state of a desktop to its observers.
func (r *Registry) Refresh(desktopID DesktopID) error {
	r.lock()
	defer r.unlock()

	d, err := r.desktop(desktopID)
	if err != nil {
		return r.reject("Refresh", err)
	}
	r.refresh(d)
	return nil
}

func (r *Registry) refresh(d *desktop) {
	r.resolveSnaps(d)

	d.each(func(p *panel) {
		if obs := p.observer; obs != nil {
			snap := p.Panel
			r.notify(func() { obs.Refresh(snap) })
		}
	})

	if obs := d.observer; obs != nil {
		panels, groups := d.snapshot()
		r.notify(func() { obs.RefreshPanels(panels, groups) })
	}

	r.syncTaskbar(d)
}

func (r *Registry) Panel(desktopID DesktopID, id PanelID) (Panel, error) {
	r.lock()
	defer r.unlock()

	_, p, err := r.lookup(desktopID, id)
	if err != nil {
		return Panel{}, err
	}
	return p.Panel, nil
}

// Panels returns every panel of a desktop in creation order.
func (r *Registry) Panels(desktopID DesktopID) ([]Panel, error) {
	r.lock()
	defer r.unlock()

	d, err := r.desktop(desktopID)
	if err != nil {
		return nil, err
	}
	panels, _ := d.snapshot()
	return panels, nil
}

// Groups returns every group of a desktop ordered by id.
func (r *Registry) Groups(desktopID DesktopID) ([]Group, error) {
	r.lock()
	defer r.unlock()

	d, err := r.desktop(desktopID)
	if err != nil {
		return nil, err
	}
	_, groups := d.snapshot()
	return groups, nil
}

func (r *Registry) NumberOfWindows(desktopID DesktopID) int {
	r.lock()
	defer r.unlock()

	d, err := r.desktop(desktopID)
	if err != nil {
		return 0
	}
	return len(d.panels)
}

func (r *Registry) WindowPosition(desktopID DesktopID, id PanelID) (geom.Rect, error) {
	p, err := r.Panel(desktopID, id)
	if err != nil {
		return geom.Rect{}, err
	}
	return p.Geometry, nil
}
