package wm

import (
	"fmt"
	"strconv"

	"github.com/ItsNotGoodName/x-panelwm/geom"
	"github.com/ItsNotGoodName/x-panelwm/internal/core"
)

type (
	DesktopID int
	PanelID   string
	GroupID   int
)

// NoGroup marks a panel that is not a member of any group.
const NoGroup GroupID = -1

func (id DesktopID) String() string {
	return strconv.Itoa(int(id))
}

type LifecycleState string

const (
	StateNormal    LifecycleState = "normal"
	StateMinimized LifecycleState = "minimized"
)

func ParseLifecycleState(s string) (LifecycleState, error) {
	switch s {
	case "normal":
		return StateNormal, nil
	case "minimized", "minimize":
		return StateMinimized, nil
	default:
		return "", fmt.Errorf("%q: invalid lifecycle state", s)
	}
}

// ContentSpec names the content factory a panel hosts and the properties handed to it.
type ContentSpec struct {
	Name  string         `json:"name"`
	Title string         `json:"title,omitempty"`
	Props map[string]any `json:"props,omitempty"`

	// Initial size, zero means the default tile size.
	InitialWidth  float64 `json:"initial_width,omitempty"`
	InitialHeight float64 `json:"initial_height,omitempty"`
	// Fill the desktop on that axis.
	FillWidth  bool `json:"fill_width,omitempty"`
	FillHeight bool `json:"fill_height,omitempty"`
}

type Embrace struct {
	Embraced bool    `json:"embraced"`
	Group    GroupID `json:"group"`
}

type Snap struct {
	IsSnapped  bool      `json:"is_snapped"`
	Edge       geom.Edge `json:"edge,omitempty"`
	ParentID   PanelID   `json:"parent_id,omitempty"`
	ParentEdge geom.Edge `json:"parent_edge,omitempty"`
}

type TaskbarUpdates struct {
	Thumbnail bool `json:"thumbnail"`
	State     bool `json:"state"`
}

// Panel is a snapshot of a panel record.
type Panel struct {
	ID             PanelID        `json:"id"`
	Desktop        DesktopID      `json:"desktop"`
	Seq            int            `json:"seq"`
	Content        ContentSpec    `json:"content"`
	Geometry       geom.Rect      `json:"geometry"`
	State          LifecycleState `json:"state"`
	Maximized      bool           `json:"maximized"`
	ZIndex         int            `json:"z_index"`
	Embrace        Embrace        `json:"embrace"`
	Snap           Snap           `json:"snap"`
	TaskbarUpdates TaskbarUpdates `json:"taskbar_updates"`
}

func (p Panel) Minimized() bool {
	return p.State == StateMinimized
}

type Group struct {
	ID     GroupID    `json:"id"`
	Anchor geom.Point `json:"anchor"`
}

// GeometryPatch holds the geometry fields to merge into a panel, nil fields are kept.
type GeometryPatch struct {
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

func PatchRect(r geom.Rect) GeometryPatch {
	return GeometryPatch{X: &r.X, Y: &r.Y, Width: &r.Width, Height: &r.Height}
}

func PatchPosition(x, y float64) GeometryPatch {
	return GeometryPatch{X: &x, Y: &y}
}

func PatchSize(w, h float64) GeometryPatch {
	return GeometryPatch{Width: &w, Height: &h}
}

func (g GeometryPatch) Empty() bool {
	return g.X == nil && g.Y == nil && g.Width == nil && g.Height == nil
}

func (g GeometryPatch) Apply(r geom.Rect) geom.Rect {
	return geom.Rect{
		X:      core.Optional(g.X, r.X),
		Y:      core.Optional(g.Y, r.Y),
		Width:  core.Optional(g.Width, r.Width),
		Height: core.Optional(g.Height, r.Height),
	}
}

type PathEnd struct {
	Point   geom.Point `json:"point"`
	Desktop DesktopID  `json:"desktop"`
	Panel   PanelID    `json:"panel"`
	Edge    geom.Edge  `json:"edge"`
}

// SnapGesture is the drag-to-connect gesture shared by every desktop.
type SnapGesture struct {
	On    bool    `json:"on"`
	Start PathEnd `json:"start"`
	End   PathEnd `json:"end"`
}
