package wm

import (
	"errors"
	"fmt"
	"time"

	"github.com/ItsNotGoodName/x-panelwm/geom"
	"github.com/ItsNotGoodName/x-panelwm/mosaic"
	"github.com/lucasb-eyer/go-colorful"
)

// SessionConfig is shared by every desktop of a Registry.
type SessionConfig struct {
	Grid             geom.Grid
	Palette          []string
	NeutralColor     string
	MinimizedOpacity float64
	ThumbnailHeight  int
	// Height kept free for the taskbar at the bottom of a desktop.
	TaskbarReserve float64
	Mosaic         mosaic.Params

	// Initial placement of new panels.
	FallbackWidth   float64
	FallbackHeight  float64
	PlacementStep   float64
	PlacementMargin float64

	ArrangeTransition time.Duration
	UnsnapTransition  time.Duration
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Grid:              geom.DefaultGrid,
		Palette:           []string{"#f5173e", "#f58319", "#d4f519", "#41f519", "#19f583", "#1941f5", "#8319f5", "#f519d4"},
		NeutralColor:      "#ffffff",
		MinimizedOpacity:  0.4,
		ThumbnailHeight:   150,
		TaskbarReserve:    28,
		Mosaic:            mosaic.DefaultParams,
		FallbackWidth:     768,
		FallbackHeight:    512,
		PlacementStep:     50,
		PlacementMargin:   24,
		ArrangeTransition: time.Second,
		UnsnapTransition:  300 * time.Millisecond,
	}
}

func (c SessionConfig) Validate() error {
	var errs []error
	if len(c.Palette) == 0 {
		errs = append(errs, errors.New("palette: empty"))
	}
	for i, hex := range c.Palette {
		if _, err := colorful.Hex(hex); err != nil {
			errs = append(errs, fmt.Errorf("palette[%d]: %w", i, err))
		}
	}
	if _, err := colorful.Hex(c.NeutralColor); err != nil {
		errs = append(errs, fmt.Errorf("neutral color: %w", err))
	}
	if c.ThumbnailHeight <= 0 {
		errs = append(errs, errors.New("thumbnail height: must be positive"))
	}
	if c.MinimizedOpacity < 0 || c.MinimizedOpacity > 1 {
		errs = append(errs, errors.New("minimized opacity: must be between 0 and 1"))
	}
	return errors.Join(errs...)
}

// GroupColor returns the palette colour of a group, or the neutral colour for NoGroup.
func (c SessionConfig) GroupColor(group GroupID) string {
	if group == NoGroup || len(c.Palette) == 0 {
		return c.NeutralColor
	}
	return c.Palette[int(group)%len(c.Palette)]
}
