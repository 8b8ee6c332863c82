// Package render turns routed wires into pictures: hop outlines, ASCII art,
// SVG and PNG.
package render

import (
	"wired/bumps"
	"wired/core"
	"wired/pathfinding"
)

// PinView is a pin as drawn.
type PinView struct {
	Name  string
	Point core.Point
	Edge  core.Edge
}

// ComponentView is a component as drawn.
type ComponentView struct {
	ID     string
	Label  string
	Bounds core.Rect
	Pins   []PinView
}

// WireView is one routed wire and the hops it draws.
type WireView struct {
	ID       string
	Path     core.WirePath
	Bumps    []bumps.Bump
	Strategy pathfinding.Strategy
	Clear    bool
}

// Frame is everything needed to draw the scene once.
type Frame struct {
	Components []ComponentView
	Wires      []WireView
}

// Bounds returns the box enclosing every component and wire, grown by margin.
func (f Frame) Bounds(margin float64) core.Rect {
	var b core.Rect
	first := true
	add := func(r core.Rect) {
		if first {
			b, first = r, false
			return
		}
		b = b.Union(r)
	}
	for _, c := range f.Components {
		add(c.Bounds)
	}
	for _, w := range f.Wires {
		if !w.Path.IsEmpty() {
			add(w.Path.Bounds())
		}
	}
	if first {
		return core.Rect{}
	}
	return b.Expand(margin)
}

// Text returns the text shown on a component, falling back to its id.
func (c ComponentView) Text() string {
	if c.Label != "" {
		return c.Label
	}
	return c.ID
}
