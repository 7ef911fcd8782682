package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ItsNotGoodName/x-panelwm/geom"
	"github.com/ItsNotGoodName/x-panelwm/mosaic"
	"github.com/ItsNotGoodName/x-panelwm/wm"
)

var defaultConfig = Config{
	Server: Server{
		Host: "127.0.0.1",
		Port: 8080,
	},
	Desktop: Desktop{
		Width:  1920,
		Height: 1080,
	},
	Desktops:          1,
	ThumbnailInterval: "5s",
	Session: Session{
		Grid:              geom.DefaultGrid,
		ArrangeTransition: "1s",
		UnsnapTransition:  "300ms",
		Manual:            []ManualWindow{},
	},
}

// Default returns the configuration written when no file exists yet.
func Default() Config {
	return defaultConfig
}

type Config struct {
	Server            Server  `json:"server" yaml:"server"`
	Desktop           Desktop `json:"desktop" yaml:"desktop"`
	Desktops          int     `json:"desktops" yaml:"desktops"`
	ThumbnailInterval string  `json:"thumbnail_interval" yaml:"thumbnail_interval"`
	Session           Session `json:"session" yaml:"session"`
}

type Server struct {
	Host string `json:"host" yaml:"host"`
	Port int    `json:"port" yaml:"port"`
}

// Desktop is the size of the headless desktop surface.
type Desktop struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Session overrides the engine defaults, zero values keep the default.
type Session struct {
	Grid              geom.Grid      `json:"grid" yaml:"grid"`
	Palette           []string       `json:"palette,omitempty" yaml:"palette,omitempty"`
	NeutralColor      string         `json:"neutral_color,omitempty" yaml:"neutral_color,omitempty"`
	MinimizedOpacity  float64        `json:"minimized_opacity,omitempty" yaml:"minimized_opacity,omitempty"`
	ThumbnailHeight   int            `json:"thumbnail_height,omitempty" yaml:"thumbnail_height,omitempty"`
	TaskbarReserve    float64        `json:"taskbar_reserve,omitempty" yaml:"taskbar_reserve,omitempty"`
	ArrangeTransition string         `json:"arrange_transition" yaml:"arrange_transition"`
	UnsnapTransition  string         `json:"unsnap_transition" yaml:"unsnap_transition"`
	Manual            []ManualWindow `json:"manual" yaml:"manual"`
}

// ManualWindow is a slot of the manual arrangement as ratios of the desktop, e.g. "1/2".
type ManualWindow struct {
	X string `json:"x" yaml:"x"`
	Y string `json:"y" yaml:"y"`
	W string `json:"w" yaml:"w"`
	H string `json:"h" yaml:"h"`
}

func (c Config) Rect() geom.Rect {
	return geom.Rect{Width: c.Desktop.Width, Height: c.Desktop.Height}
}

func (c Config) Thumbnails() (time.Duration, error) {
	if c.ThumbnailInterval == "" {
		return 0, nil
	}
	return time.ParseDuration(c.ThumbnailInterval)
}

// SessionConfig merges the session block into the engine defaults.
func (c Config) SessionConfig() (wm.SessionConfig, error) {
	s := wm.DefaultSessionConfig()
	in := c.Session

	if in.Grid != (geom.Grid{}) {
		s.Grid = in.Grid
	}
	if len(in.Palette) > 0 {
		s.Palette = in.Palette
	}
	if in.NeutralColor != "" {
		s.NeutralColor = in.NeutralColor
	}
	if in.MinimizedOpacity != 0 {
		s.MinimizedOpacity = in.MinimizedOpacity
	}
	if in.ThumbnailHeight != 0 {
		s.ThumbnailHeight = in.ThumbnailHeight
	}
	if in.TaskbarReserve != 0 {
		s.TaskbarReserve = in.TaskbarReserve
	}

	var errs []error
	if in.ArrangeTransition != "" {
		d, err := time.ParseDuration(in.ArrangeTransition)
		if err != nil {
			errs = append(errs, fmt.Errorf("arrange_transition: %w", err))
		}
		s.ArrangeTransition = d
	}
	if in.UnsnapTransition != "" {
		d, err := time.ParseDuration(in.UnsnapTransition)
		if err != nil {
			errs = append(errs, fmt.Errorf("unsnap_transition: %w", err))
		}
		s.UnsnapTransition = d
	}
	for i, m := range in.Manual {
		win, err := mosaic.ParseLayoutManualWindow(m.X, m.Y, m.W, m.H)
		if err != nil {
			errs = append(errs, fmt.Errorf("manual[%d]: %w", i, err))
			continue
		}
		s.Mosaic.Manual = append(s.Mosaic.Manual, win)
	}
	if err := errors.Join(errs...); err != nil {
		return wm.SessionConfig{}, err
	}

	return s, s.Validate()
}
