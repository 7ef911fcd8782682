// Package content holds the content factories served by x-panelwm.
package content

import (
	"fmt"
	"net/url"

	"github.com/ItsNotGoodName/x-panelwm/wm"
)

const (
	Blank = "blank"
	Text  = "text"
	Frame = "frame"
)

type TextContent struct {
	Text string `json:"text"`
}

type FrameContent struct {
	Panel wm.PanelID `json:"panel"`
	URL   string     `json:"url"`
}

func Register(r *wm.Registry) {
	r.RegisterContent(Blank, NewBlank)
	r.RegisterContent(Text, NewText)
	r.RegisterContent(Frame, NewFrame)
}

func NewBlank(wm.ContentContext, map[string]any) (any, error) {
	return struct{}{}, nil
}

func NewText(_ wm.ContentContext, props map[string]any) (any, error) {
	text, err := prop[string](props, "text", "")
	if err != nil {
		return nil, err
	}
	return TextContent{Text: text}, nil
}

// NewFrame embeds a web page, only http and https are allowed.
func NewFrame(ctx wm.ContentContext, props map[string]any) (any, error) {
	raw, err := prop[string](props, "url", "")
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("url: unsupported scheme %q", u.Scheme)
	}
	return FrameContent{Panel: ctx.Panel, URL: u.String()}, nil
}

func prop[T any](props map[string]any, key string, fallback T) (T, error) {
	v, ok := props[key]
	if !ok {
		return fallback, nil
	}
	t, ok := v.(T)
	if !ok {
		return fallback, fmt.Errorf("%s: expected %T, got %T", key, fallback, v)
	}
	return t, nil
}
