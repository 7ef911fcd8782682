package api

import (
	"context"
	"net/http"

	"github.com/ItsNotGoodName/x-panelwm/wm"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
)

func (s *Server) registerTaskbar(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-taskbar",
		Method:      http.MethodGet,
		Path:        "/api/desktops/{desktop}/taskbar",
		Summary:     "Taskbar entries of a desktop",
	}, func(ctx context.Context, input *DesktopInput) (*struct{ Body []TaskbarEntry }, error) {
		entries, err := s.registry.Taskbar(wm.DesktopID(input.Desktop))
		if err != nil {
			return nil, apiError(err)
		}
		return &struct{ Body []TaskbarEntry }{Body: newTaskbarEntries(entries)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "refresh-thumbnails",
		Method:        http.MethodPost,
		Path:          "/api/desktops/{desktop}/taskbar/thumbnails",
		Summary:       "Recapture every thumbnail of a desktop",
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *DesktopInput) (*struct{}, error) {
		return &struct{}{}, apiError(s.registry.RequestThumbnails(wm.DesktopID(input.Desktop)))
	})

	sse.Register(api, huma.Operation{
		OperationID: "desktop-events",
		Method:      http.MethodGet,
		Path:        "/api/desktops/{desktop}/events",
		Summary:     "Stream the changes of a desktop",
	}, eventTypes, func(ctx context.Context, input *DesktopInput, send sse.Sender) {
		desktop := wm.DesktopID(input.Desktop)

		events, unsubscribe := s.hub.Subscribe(ctx)
		defer unsubscribe()

		// Start from the current state.
		if err := s.registry.Refresh(desktop); err != nil {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event := <-events:
				if event.Desktop != desktop {
					continue
				}
				if err := send.Data(event.Data); err != nil {
					return
				}
			}
		}
	})
}
