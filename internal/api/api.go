// Package api exposes a Registry over HTTP.
package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/ItsNotGoodName/x-panelwm/geom"
	"github.com/ItsNotGoodName/x-panelwm/internal/build"
	"github.com/ItsNotGoodName/x-panelwm/internal/bus"
	"github.com/ItsNotGoodName/x-panelwm/internal/headless"
	"github.com/ItsNotGoodName/x-panelwm/pkg/chiext"
	"github.com/ItsNotGoodName/x-panelwm/wm"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/disintegration/imaging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/k0kubun/pp"
)

type Server struct {
	registry *wm.Registry
	host     *headless.Host
	hub      *bus.Hub[Event]
	saveGrid func(geom.Grid) error
}

func init() {
	// The dump is served as text/plain.
	pp.ColoringEnabled = false
}

func NewServer(registry *wm.Registry, host *headless.Host, hub *bus.Hub[Event]) *Server {
	return &Server{
		registry: registry,
		host:     host,
		hub:      hub,
	}
}

// PersistGrid makes fn run every time the grid pitch is changed over the API.
func (s *Server) PersistGrid(fn func(geom.Grid) error) {
	s.saveGrid = fn
}

// Subscribe creates a desktop whose observer callbacks are published on the hub.
func (s *Server) Subscribe() (wm.DesktopID, error) {
	id := s.registry.Subscribe()
	obs := desktopObserver{desktop: id, hub: s.hub}
	if err := s.registry.SubscribePanels(id, obs); err != nil {
		return id, err
	}
	if err := s.registry.SubscribeTaskbar(id, obs); err != nil {
		return id, err
	}
	return id, nil
}

func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chiext.Logger())
	r.Use(middleware.Recoverer)

	api := humachi.New(r, huma.DefaultConfig("x-panelwm", build.Current.Version))
	s.Register(api)

	return r
}

// apiError maps engine errors onto HTTP errors.
func apiError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, wm.ErrUnknownDesktop), errors.Is(err, wm.ErrUnknownPanel), errors.Is(err, wm.ErrUnknownGroup):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, wm.ErrNotReady):
		return huma.Error503ServiceUnavailable(err.Error())
	default:
		return huma.Error422UnprocessableEntity(err.Error())
	}
}

type DesktopInput struct {
	Desktop int `path:"desktop"`
}

type PanelInput struct {
	Desktop int    `path:"desktop"`
	Panel   string `path:"panel"`
}

type GroupInput struct {
	Desktop int `path:"desktop"`
	Group   int `path:"group"`
}

type DesktopView struct {
	ID            wm.DesktopID   `json:"id"`
	Panels        []wm.Panel     `json:"panels"`
	Groups        []wm.Group     `json:"groups"`
	Gesture       wm.SnapGesture `json:"gesture"`
	Transitioning bool           `json:"transitioning"`
}

type SessionView struct {
	Grid         geom.Grid `json:"grid"`
	Palette      []string  `json:"palette"`
	NeutralColor string    `json:"neutral_color"`
	Arrangements []string  `json:"arrangements"`
	SnapPorts    bool      `json:"snap_ports"`
	Desktops     []int     `json:"desktops"`
}

type PanelOutput struct {
	Body wm.Panel
}

type BinaryOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

func (s *Server) desktopView(id wm.DesktopID) (DesktopView, error) {
	panels, err := s.registry.Panels(id)
	if err != nil {
		return DesktopView{}, err
	}
	groups, err := s.registry.Groups(id)
	if err != nil {
		return DesktopView{}, err
	}
	return DesktopView{
		ID:            id,
		Panels:        panels,
		Groups:        groups,
		Gesture:       s.registry.SnapGesture(),
		Transitioning: s.registry.Transitioning(id),
	}, nil
}

// pruneSurfaces drops the uploaded surfaces of panels that no longer exist.
func (s *Server) pruneSurfaces(desktop wm.DesktopID) {
	panels, err := s.registry.Panels(desktop)
	if err != nil {
		return
	}
	keep := make([]wm.PanelID, 0, len(panels))
	for _, p := range panels {
		keep = append(keep, p.ID)
	}
	s.host.PruneSurfaces(desktop, keep)
}

func (s *Server) panel(desktop int, id string) (*PanelOutput, error) {
	p, err := s.registry.Panel(wm.DesktopID(desktop), wm.PanelID(id))
	if err != nil {
		return nil, apiError(err)
	}
	return &PanelOutput{Body: p}, nil
}

func (s *Server) Register(api huma.API) {
	s.registerSession(api)
	s.registerDesktops(api)
	s.registerPanels(api)
	s.registerGroups(api)
	s.registerSnap(api)
	s.registerTaskbar(api)
}

func (s *Server) registerSession(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-build",
		Method:      http.MethodGet,
		Path:        "/api/build",
		Summary:     "Build information",
	}, func(ctx context.Context, input *struct{}) (*struct{ Body build.Build }, error) {
		return &struct{ Body build.Build }{Body: build.Current}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-session",
		Method:      http.MethodGet,
		Path:        "/api/session",
		Summary:     "Session settings shared by every desktop",
	}, func(ctx context.Context, input *struct{}) (*struct{ Body SessionView }, error) {
		session := s.registry.Session()
		desktops := []int{}
		for _, id := range s.registry.Desktops() {
			desktops = append(desktops, int(id))
		}
		return &struct{ Body SessionView }{Body: SessionView{
			Grid:         session.Grid,
			Palette:      session.Palette,
			NeutralColor: session.NeutralColor,
			Arrangements: s.registry.Arrangements(),
			SnapPorts:    s.registry.SnapPorts(),
			Desktops:     desktops,
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "put-grid",
		Method:        http.MethodPut,
		Path:          "/api/grid",
		Summary:       "Set the grid pitch",
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *struct{ Body geom.Grid }) (*struct{}, error) {
		s.registry.SetGridSizes(input.Body)
		if s.saveGrid != nil {
			if err := s.saveGrid(input.Body); err != nil {
				return nil, err
			}
		}
		return &struct{}{}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "toggle-snap-ports",
		Method:      http.MethodPost,
		Path:        "/api/snap-ports",
		Summary:     "Show or hide snap ports",
	}, func(ctx context.Context, input *struct{}) (*struct {
		Body struct {
			On bool `json:"on"`
		}
	}, error) {
		res := &struct {
			Body struct {
				On bool `json:"on"`
			}
		}{}
		res.Body.On = s.registry.ToggleSnapPorts()
		return res, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "unsnap-embraced",
		Method:        http.MethodPost,
		Path:          "/api/unsnap-embraced",
		Summary:       "Unsnap every embraced panel of every desktop",
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *struct{}) (*struct{}, error) {
		s.registry.UnsnapAllEmbraced()
		return &struct{}{}, nil
	})
}

func (s *Server) registerDesktops(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-desktop",
		Method:        http.MethodPost,
		Path:          "/api/desktops",
		Summary:       "Create a desktop",
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *struct{}) (*struct{ Body DesktopView }, error) {
		id, err := s.Subscribe()
		if err != nil {
			return nil, apiError(err)
		}
		view, err := s.desktopView(id)
		if err != nil {
			return nil, apiError(err)
		}
		return &struct{ Body DesktopView }{Body: view}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-desktop",
		Method:      http.MethodGet,
		Path:        "/api/desktops/{desktop}",
		Summary:     "Panels and groups of a desktop",
	}, func(ctx context.Context, input *DesktopInput) (*struct{ Body DesktopView }, error) {
		view, err := s.desktopView(wm.DesktopID(input.Desktop))
		if err != nil {
			return nil, apiError(err)
		}
		return &struct{ Body DesktopView }{Body: view}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "arrange-desktop",
		Method:        http.MethodPost,
		Path:          "/api/desktops/{desktop}/arrange/{arrangement}",
		Summary:       "Arrange the visible panels of a desktop",
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *struct {
		Desktop     int    `path:"desktop"`
		Arrangement string `path:"arrangement"`
	}) (*struct{}, error) {
		return &struct{}{}, apiError(s.registry.TweenWindows(wm.DesktopID(input.Desktop), input.Arrangement))
	})

	huma.Register(api, huma.Operation{
		OperationID:   "bulk-desktop",
		Method:        http.MethodPost,
		Path:          "/api/desktops/{desktop}/bulk/{action}",
		Summary:       "Apply an action to many panels of a desktop",
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *struct {
		Desktop int    `path:"desktop"`
		Action  string `path:"action" enum:"minimize-all,show-all,remove-all,minimize-embraced,remove-embraced,embrace-all,unembrace-all,invert-embrace"`
	}) (*struct{}, error) {
		id := wm.DesktopID(input.Desktop)
		actions := map[string]func(wm.DesktopID) error{
			"minimize-all":      s.registry.MinimizeAll,
			"show-all":          s.registry.ShowAll,
			"remove-all":        s.registry.RemoveAll,
			"minimize-embraced": s.registry.MinimizeAllEmbraced,
			"remove-embraced":   s.registry.RemoveAllEmbraced,
			"embrace-all":       s.registry.EmbraceAll,
			"unembrace-all":     s.registry.UnembraceAll,
			"invert-embrace":    s.registry.InvertEmbrace,
		}
		if err := actions[input.Action](id); err != nil {
			return nil, apiError(err)
		}
		s.pruneSurfaces(id)
		return &struct{}{}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "move-pointer",
		Method:        http.MethodPost,
		Path:          "/api/desktops/{desktop}/pointer",
		Summary:       "Report the pointer position on a desktop",
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *struct {
		Desktop int `path:"desktop"`
		Body    geom.Point
	}) (*struct{}, error) {
		return &struct{}{}, apiError(s.registry.SetMousePosition(wm.DesktopID(input.Desktop), input.Body))
	})

	huma.Register(api, huma.Operation{
		OperationID: "debug-desktop",
		Method:      http.MethodGet,
		Path:        "/api/debug/desktops/{desktop}",
		Summary:     "Pretty printed state of a desktop",
	}, func(ctx context.Context, input *DesktopInput) (*BinaryOutput, error) {
		view, err := s.desktopView(wm.DesktopID(input.Desktop))
		if err != nil {
			return nil, apiError(err)
		}
		return &BinaryOutput{
			ContentType: "text/plain; charset=utf-8",
			Body:        []byte(pp.Sprint(view)),
		}, nil
	})
}

type PanelPatch struct {
	State  string   `json:"state,omitempty" enum:"normal,minimized"`
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

type DragBody struct {
	Phase string  `json:"phase" enum:"start,move,end"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Solo  bool    `json:"solo,omitempty"`
}

func (s *Server) registerPanels(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-panel",
		Method:        http.MethodPost,
		Path:          "/api/desktops/{desktop}/panels",
		Summary:       "Create a panel",
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *struct {
		Desktop int `path:"desktop"`
		Body    wm.ContentSpec
	}) (*PanelOutput, error) {
		desktop := wm.DesktopID(input.Desktop)
		id, err := s.registry.AddWindow(desktop, input.Body)
		if err != nil {
			return nil, apiError(err)
		}
		obs := panelObserver{desktopObserver: desktopObserver{desktop: desktop, hub: s.hub}, panel: id}
		if err := s.registry.AttachObserver(desktop, id, obs); err != nil {
			return nil, apiError(err)
		}
		return s.panel(input.Desktop, string(id))
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-panel",
		Method:      http.MethodGet,
		Path:        "/api/desktops/{desktop}/panels/{panel}",
		Summary:     "Get a panel",
	}, func(ctx context.Context, input *PanelInput) (*PanelOutput, error) {
		return s.panel(input.Desktop, input.Panel)
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-panel",
		Method:        http.MethodDelete,
		Path:          "/api/desktops/{desktop}/panels/{panel}",
		Summary:       "Remove a panel",
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *PanelInput) (*struct{}, error) {
		desktop, id := wm.DesktopID(input.Desktop), wm.PanelID(input.Panel)
		if err := s.registry.RemoveWindow(desktop, id); err != nil {
			return nil, apiError(err)
		}
		s.host.RemoveSurface(desktop, id)
		return &struct{}{}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "patch-panel",
		Method:      http.MethodPatch,
		Path:        "/api/desktops/{desktop}/panels/{panel}",
		Summary:     "Change the state or geometry of a panel",
	}, func(ctx context.Context, input *struct {
		Desktop int    `path:"desktop"`
		Panel   string `path:"panel"`
		Body    PanelPatch
	}) (*PanelOutput, error) {
		var state *wm.LifecycleState
		if input.Body.State != "" {
			parsed, err := wm.ParseLifecycleState(input.Body.State)
			if err != nil {
				return nil, huma.Error422UnprocessableEntity(err.Error())
			}
			state = &parsed
		}
		patch := wm.GeometryPatch{X: input.Body.X, Y: input.Body.Y, Width: input.Body.Width, Height: input.Body.Height}
		if err := s.registry.SetWindowState(wm.DesktopID(input.Desktop), wm.PanelID(input.Panel), state, patch); err != nil {
			return nil, apiError(err)
		}
		return s.panel(input.Desktop, input.Panel)
	})

	huma.Register(api, huma.Operation{
		OperationID: "panel-action",
		Method:      http.MethodPost,
		Path:        "/api/desktops/{desktop}/panels/{panel}/actions/{action}",
		Summary:     "Apply an action to a panel",
	}, func(ctx context.Context, input *struct {
		Desktop int    `path:"desktop"`
		Panel   string `path:"panel"`
		Action  string `path:"action" enum:"focus,center,maximize,minimize,normalize,embrace,unsnap,ungroup"`
		Solo    bool   `query:"solo" doc:"focus the panel without its group"`
	}) (*PanelOutput, error) {
		desktop, id := wm.DesktopID(input.Desktop), wm.PanelID(input.Panel)

		var err error
		switch input.Action {
		case "focus":
			var p wm.Panel
			if p, err = s.registry.Panel(desktop, id); err == nil {
				group := p.Embrace.Group
				if input.Solo {
					group = wm.NoGroup
				}
				err = s.registry.FocusWindow(desktop, id, group)
			}
		case "center":
			err = s.registry.CenterWindow(desktop, id)
		case "maximize":
			err = s.registry.MaximizeWindow(desktop, id)
		case "minimize":
			err = s.registry.MinimizeWindow(desktop, id, wm.GeometryPatch{})
		case "normalize":
			err = s.registry.NormalizeWindow(desktop, id)
		case "embrace":
			err = s.registry.ToggleEmbrace(desktop, id)
		case "unsnap":
			err = s.registry.UnsnapWindow(desktop, id)
		case "ungroup":
			err = s.registry.RemoveFromGroup(desktop, id)
		}
		if err != nil {
			return nil, apiError(err)
		}
		return s.panel(input.Desktop, input.Panel)
	})

	huma.Register(api, huma.Operation{
		OperationID: "drag-panel",
		Method:      http.MethodPost,
		Path:        "/api/desktops/{desktop}/panels/{panel}/drag",
		Summary:     "Drag a panel with the pointer",
	}, func(ctx context.Context, input *struct {
		Desktop int    `path:"desktop"`
		Panel   string `path:"panel"`
		Body    DragBody
	}) (*PanelOutput, error) {
		desktop, id := wm.DesktopID(input.Desktop), wm.PanelID(input.Panel)
		pointer := geom.Point{X: input.Body.X, Y: input.Body.Y}

		var err error
		switch input.Body.Phase {
		case "start":
			err = s.registry.DragStart(desktop, id, pointer)
		case "move":
			err = s.registry.DragMove(desktop, id, pointer, input.Body.Solo)
		case "end":
			err = s.registry.DragEnd(desktop, id, nil)
		}
		if err != nil {
			return nil, apiError(err)
		}
		return s.panel(input.Desktop, input.Panel)
	})

	huma.Register(api, huma.Operation{
		OperationID: "resize-panel",
		Method:      http.MethodPost,
		Path:        "/api/desktops/{desktop}/panels/{panel}/resize",
		Summary:     "Finish resizing a panel",
	}, func(ctx context.Context, input *struct {
		Desktop int    `path:"desktop"`
		Panel   string `path:"panel"`
		Body    struct {
			Width  float64 `json:"width" minimum:"1"`
			Height float64 `json:"height" minimum:"1"`
		}
	}) (*PanelOutput, error) {
		if err := s.registry.ResizeEnd(wm.DesktopID(input.Desktop), wm.PanelID(input.Panel), input.Body.Width, input.Body.Height); err != nil {
			return nil, apiError(err)
		}
		return s.panel(input.Desktop, input.Panel)
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-panel-content",
		Method:      http.MethodGet,
		Path:        "/api/desktops/{desktop}/panels/{panel}/content",
		Summary:     "Build the content of a panel",
	}, func(ctx context.Context, input *PanelInput) (*struct{ Body any }, error) {
		content, err := s.registry.Instantiate(wm.DesktopID(input.Desktop), wm.PanelID(input.Panel))
		if err != nil {
			return nil, apiError(err)
		}
		return &struct{ Body any }{Body: content}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "put-panel-surface",
		Method:        http.MethodPut,
		Path:          "/api/desktops/{desktop}/panels/{panel}/surface",
		Summary:       "Upload the visible surface of a panel",
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *struct {
		Desktop int    `path:"desktop"`
		Panel   string `path:"panel"`
		RawBody []byte
	}) (*struct{}, error) {
		desktop, id := wm.DesktopID(input.Desktop), wm.PanelID(input.Panel)
		if _, err := s.registry.Panel(desktop, id); err != nil {
			return nil, apiError(err)
		}
		if err := s.host.DecodeSurface(desktop, id, bytes.NewReader(input.RawBody)); err != nil {
			return nil, huma.Error422UnprocessableEntity("invalid image", err)
		}
		return &struct{}{}, apiError(s.registry.RequestThumbnails(desktop))
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-panel-thumbnail",
		Method:      http.MethodGet,
		Path:        "/api/desktops/{desktop}/panels/{panel}/thumbnail",
		Summary:     "Taskbar thumbnail of a panel as PNG",
	}, func(ctx context.Context, input *PanelInput) (*BinaryOutput, error) {
		img, err := s.registry.Thumbnail(wm.DesktopID(input.Desktop), wm.PanelID(input.Panel))
		if err != nil {
			return nil, apiError(err)
		}
		if img == nil {
			return nil, huma.Error404NotFound("thumbnail not captured yet")
		}

		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
			return nil, err
		}
		return &BinaryOutput{ContentType: "image/png", Body: buf.Bytes()}, nil
	})
}

func (s *Server) registerGroups(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "group-embraced",
		Method:        http.MethodPost,
		Path:          "/api/desktops/{desktop}/groups",
		Summary:       "Group the embraced panels of a desktop",
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *DesktopInput) (*struct {
		Body struct {
			Group wm.GroupID `json:"group"`
		}
	}, error) {
		group, err := s.registry.GroupEmbraced(wm.DesktopID(input.Desktop))
		if err != nil {
			return nil, apiError(err)
		}
		if group == wm.NoGroup {
			return nil, huma.Error422UnprocessableEntity("no embraced panels")
		}
		res := &struct {
			Body struct {
				Group wm.GroupID `json:"group"`
			}
		}{}
		res.Body.Group = group
		return res, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-group",
		Method:        http.MethodDelete,
		Path:          "/api/desktops/{desktop}/groups/{group}",
		Summary:       "Dissolve a group",
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *struct {
		Desktop int  `path:"desktop"`
		Group   int  `path:"group"`
		Windows bool `query:"windows" doc:"also remove the panels of the group"`
	}) (*struct{}, error) {
		desktop, group := wm.DesktopID(input.Desktop), wm.GroupID(input.Group)
		if input.Windows {
			if err := s.registry.RemoveGroupWithWindows(desktop, group); err != nil {
				return nil, apiError(err)
			}
			s.pruneSurfaces(desktop)
			return &struct{}{}, nil
		}
		return &struct{}{}, apiError(s.registry.RemoveGroupHandle(desktop, group))
	})

	huma.Register(api, huma.Operation{
		OperationID:   "shift-group",
		Method:        http.MethodPost,
		Path:          "/api/desktops/{desktop}/groups/{group}/shift",
		Summary:       "Move every panel of a group",
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *struct {
		Desktop int `path:"desktop"`
		Group   int `path:"group"`
		Body    struct {
			DX float64 `json:"dx"`
			DY float64 `json:"dy"`
		}
	}) (*struct{}, error) {
		return &struct{}{}, apiError(s.registry.ShiftGroup(wm.DesktopID(input.Desktop), wm.GroupID(input.Group), input.Body.DX, input.Body.DY))
	})

	huma.Register(api, huma.Operation{
		OperationID:   "minimize-group",
		Method:        http.MethodPost,
		Path:          "/api/desktops/{desktop}/groups/{group}/minimize",
		Summary:       "Minimize every panel of a group",
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *GroupInput) (*struct{}, error) {
		return &struct{}{}, apiError(s.registry.MinimizeGroup(wm.DesktopID(input.Desktop), wm.GroupID(input.Group)))
	})
}

type SnapStartBody struct {
	X     float64    `json:"x"`
	Y     float64    `json:"y"`
	Panel wm.PanelID `json:"panel"`
	Edge  string     `json:"edge" enum:"left,right,top,bottom"`
}

type SnapEndBody struct {
	Panel wm.PanelID `json:"panel"`
	Edge  string     `json:"edge" enum:"left,right,top,bottom"`
}

type SnapBody struct {
	Child      wm.PanelID `json:"child"`
	Edge       string     `json:"edge" enum:"left,right,top,bottom"`
	Parent     wm.PanelID `json:"parent"`
	ParentEdge string     `json:"parent_edge" enum:"left,right,top,bottom"`
}

func (s *Server) registerSnap(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "snap-start",
		Method:        http.MethodPost,
		Path:          "/api/desktops/{desktop}/snap/start",
		Summary:       "Start a snap gesture from a panel edge",
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *struct {
		Desktop int `path:"desktop"`
		Body    SnapStartBody
	}) (*struct{}, error) {
		pointer := geom.Point{X: input.Body.X, Y: input.Body.Y}
		return &struct{}{}, apiError(s.registry.StartPath(wm.DesktopID(input.Desktop), pointer, input.Body.Panel, geom.Edge(input.Body.Edge)))
	})

	huma.Register(api, huma.Operation{
		OperationID:   "snap-move",
		Method:        http.MethodPost,
		Path:          "/api/desktops/{desktop}/snap/move",
		Summary:       "Move the loose end of the snap gesture",
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *struct {
		Desktop int `path:"desktop"`
		Body    geom.Point
	}) (*struct{}, error) {
		return &struct{}{}, apiError(s.registry.SetMousePosition(wm.DesktopID(input.Desktop), input.Body))
	})

	huma.Register(api, huma.Operation{
		OperationID:   "snap-end",
		Method:        http.MethodPost,
		Path:          "/api/desktops/{desktop}/snap/end",
		Summary:       "Finish the snap gesture on a panel edge",
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *struct {
		Desktop int `path:"desktop"`
		Body    SnapEndBody
	}) (*struct{}, error) {
		return &struct{}{}, apiError(s.registry.EndPath(wm.DesktopID(input.Desktop), input.Body.Panel, geom.Edge(input.Body.Edge)))
	})

	huma.Register(api, huma.Operation{
		OperationID:   "snap",
		Method:        http.MethodPost,
		Path:          "/api/desktops/{desktop}/snap",
		Summary:       "Dock one panel edge to another",
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *struct {
		Desktop int `path:"desktop"`
		Body    SnapBody
	}) (*struct{}, error) {
		b := input.Body
		return &struct{}{}, apiError(s.registry.SnapWindowToWindow(wm.DesktopID(input.Desktop), b.Child, geom.Edge(b.Edge), b.Parent, geom.Edge(b.ParentEdge)))
	})
}
