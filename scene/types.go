// Package scene holds the editable model the router works on: components
// with pins, and wires between pins.
package scene

import (
	"errors"

	"wired/core"
)

// Errors returned by scene mutations.
var (
	ErrUnknownComponent = errors.New("unknown component")
	ErrUnknownWire      = errors.New("unknown wire")
	ErrUnknownPin       = errors.New("unknown pin")
	ErrDuplicateID      = errors.New("duplicate id")
	ErrInvalidSize      = errors.New("invalid component size")
	ErrInvalidWire      = errors.New("wire must connect two different pins")
)

// Pin is a connection point on a component.
type Pin struct {
	Name   string
	Offset core.Point // relative to the component's top-left corner
	Edge   core.Edge  // side of the component the pin sits on
}

// Component is a placed part. Its bounds are an obstacle for every wire
// that does not connect to it.
type Component struct {
	ID       string
	Label    string
	Position core.Point // top-left corner
	Width    float64
	Height   float64
	Pins     []Pin
}

// Bounds returns the component rectangle.
func (c Component) Bounds() core.Rect {
	return core.Rect{X: c.Position.X, Y: c.Position.Y, Width: c.Width, Height: c.Height}
}

// Pin looks up a pin by name.
func (c Component) Pin(name string) (Pin, bool) {
	for _, p := range c.Pins {
		if p.Name == name {
			return p, true
		}
	}
	return Pin{}, false
}

func (c Component) clone() Component {
	out := c
	out.Pins = append([]Pin(nil), c.Pins...)
	return out
}

// Endpoint names one pin of one component.
type Endpoint struct {
	Component string
	Pin       string
}

func (e Endpoint) String() string {
	return e.Component + "." + e.Pin
}

// End selects one end of a wire.
type End int

const (
	From End = iota
	To
)

// String returns the string representation of an End.
func (e End) String() string {
	if e == To {
		return "to"
	}
	return "from"
}

// Wire connects two pins. Seq records creation order and decides which wire
// hops at a crossing.
type Wire struct {
	ID   string
	From Endpoint
	To   Endpoint
	Seq  uint64
}

// Terminal is a resolved wire end: where the pin is and which way it faces.
type Terminal struct {
	Point core.Point
	Edge  core.Edge
}
