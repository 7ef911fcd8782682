package geom

import (
	"fmt"
	"strings"
)

type Edge string

const (
	EdgeLeft   Edge = "left"
	EdgeRight  Edge = "right"
	EdgeTop    Edge = "top"
	EdgeBottom Edge = "bottom"
)

func ParseEdge(s string) (Edge, error) {
	switch e := Edge(strings.ToLower(strings.TrimSpace(s))); e {
	case EdgeLeft, EdgeRight, EdgeTop, EdgeBottom:
		return e, nil
	default:
		return "", fmt.Errorf("%q: invalid edge", s)
	}
}

func (e Edge) Valid() bool {
	_, err := ParseEdge(string(e))
	return err == nil
}

// Axis returns the axis an edge runs across, e.g. left and right edges sit on the X axis.
func (e Edge) Axis() Axis {
	if e == EdgeTop || e == EdgeBottom {
		return AxisY
	}
	return AxisX
}

func (e Edge) Opposite() Edge {
	switch e {
	case EdgeLeft:
		return EdgeRight
	case EdgeRight:
		return EdgeLeft
	case EdgeTop:
		return EdgeBottom
	case EdgeBottom:
		return EdgeTop
	}
	return e
}
