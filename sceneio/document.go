// Package sceneio loads and saves scenes as JSON documents or in a small
// text format.
package sceneio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"wired/core"
	"wired/pathfinding"
	"wired/render"
	"wired/scene"
)

// ErrUnknownOption is returned for an unrecognised option name.
var ErrUnknownOption = errors.New("unknown option")

// Document is the serialised form of a scene.
type Document struct {
	Components []ComponentDoc `json:"components"`
	Wires      []WireDoc      `json:"wires"`
	Options    *OptionsDoc    `json:"options,omitempty"`
}

// ComponentDoc is one component. X and Y are the top-left corner.
type ComponentDoc struct {
	ID     string   `json:"id"`
	Label  string   `json:"label,omitempty"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
	Pins   []PinDoc `json:"pins,omitempty"`
}

// PinDoc is a pin. X and Y are relative to the component.
type PinDoc struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Edge string  `json:"edge,omitempty"`
}

// WireDoc is a wire between two pins.
type WireDoc struct {
	ID   string      `json:"id,omitempty"`
	From EndpointDoc `json:"from"`
	To   EndpointDoc `json:"to"`
}

// EndpointDoc names a pin.
type EndpointDoc struct {
	Component string `json:"component"`
	Pin       string `json:"pin"`
}

// OptionsDoc carries routing and drawing settings. Zero means default.
type OptionsDoc struct {
	Clearance     float64 `json:"clearance,omitempty"`
	GridStep      float64 `json:"grid_step,omitempty"`
	MaxDepth      int     `json:"max_depth,omitempty"`
	MaxExpansions int     `json:"max_expansions,omitempty"`
	BumpRadius    float64 `json:"bump_radius,omitempty"`
}

// Set assigns an option by its document name.
func (o *OptionsDoc) Set(name string, v float64) error {
	switch name {
	case "clearance":
		o.Clearance = v
	case "grid_step":
		o.GridStep = v
	case "max_depth":
		o.MaxDepth = int(v)
	case "max_expansions":
		o.MaxExpansions = int(v)
	case "bump_radius":
		o.BumpRadius = v
	default:
		return fmt.Errorf("%q: %w", name, ErrUnknownOption)
	}
	return nil
}

// Settings are the document options in the form the engine takes.
type Settings struct {
	Planner    pathfinding.Options
	BumpRadius float64
}

// Settings returns the document's options with defaults filled in.
func (d *Document) Settings() Settings {
	st := Settings{Planner: pathfinding.DefaultOptions(), BumpRadius: render.DefaultBumpRadius}
	o := d.Options
	if o == nil {
		return st
	}
	if o.Clearance > 0 {
		st.Planner.Clearance = o.Clearance
	}
	if o.GridStep > 0 {
		st.Planner.GridStep = o.GridStep
	}
	if o.MaxDepth > 0 {
		st.Planner.MaxDepth = o.MaxDepth
	}
	if o.MaxExpansions > 0 {
		st.Planner.MaxExpansions = o.MaxExpansions
	}
	if o.BumpRadius > 0 {
		st.BumpRadius = o.BumpRadius
	}
	return st
}

// Scene builds a scene from the document.
func (d *Document) Scene() (*scene.Scene, error) {
	s := scene.New()
	for _, cd := range d.Components {
		c := scene.Component{
			ID:       cd.ID,
			Label:    cd.Label,
			Position: core.Pt(cd.X, cd.Y),
			Width:    cd.Width,
			Height:   cd.Height,
		}
		for _, pd := range cd.Pins {
			edge, err := core.ParseEdge(pd.Edge)
			if err != nil {
				return nil, fmt.Errorf("component %q pin %q: %w", cd.ID, pd.Name, err)
			}
			c.Pins = append(c.Pins, scene.Pin{Name: pd.Name, Offset: core.Pt(pd.X, pd.Y), Edge: edge})
		}
		if _, err := s.AddComponent(c); err != nil {
			return nil, err
		}
	}
	for _, wd := range d.Wires {
		w := scene.Wire{
			ID:   wd.ID,
			From: scene.Endpoint{Component: wd.From.Component, Pin: wd.From.Pin},
			To:   scene.Endpoint{Component: wd.To.Component, Pin: wd.To.Pin},
		}
		if _, err := s.AddWire(w); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// FromScene captures a scene and its settings as a document. Options equal
// to their defaults are left out.
func FromScene(s *scene.Scene, st Settings) *Document {
	d := &Document{}
	for _, c := range s.Components() {
		cd := ComponentDoc{ID: c.ID, Label: c.Label, X: c.Position.X, Y: c.Position.Y, Width: c.Width, Height: c.Height}
		for _, p := range c.Pins {
			pd := PinDoc{Name: p.Name, X: p.Offset.X, Y: p.Offset.Y}
			if p.Edge != core.EdgeNone {
				pd.Edge = p.Edge.String()
			}
			cd.Pins = append(cd.Pins, pd)
		}
		d.Components = append(d.Components, cd)
	}
	for _, w := range s.Wires() {
		d.Wires = append(d.Wires, WireDoc{
			ID:   w.ID,
			From: EndpointDoc{Component: w.From.Component, Pin: w.From.Pin},
			To:   EndpointDoc{Component: w.To.Component, Pin: w.To.Pin},
		})
	}

	def := pathfinding.DefaultOptions()
	var o OptionsDoc
	if st.Planner.Clearance != def.Clearance {
		o.Clearance = st.Planner.Clearance
	}
	if st.Planner.GridStep != def.GridStep {
		o.GridStep = st.Planner.GridStep
	}
	if st.Planner.MaxDepth != def.MaxDepth {
		o.MaxDepth = st.Planner.MaxDepth
	}
	if st.Planner.MaxExpansions != def.MaxExpansions {
		o.MaxExpansions = st.Planner.MaxExpansions
	}
	if st.BumpRadius != render.DefaultBumpRadius {
		o.BumpRadius = st.BumpRadius
	}
	if o != (OptionsDoc{}) {
		d.Options = &o
	}
	return d
}

// Format is a scene file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// FormatOf picks a format from a file name: .json is JSON, anything else
// is the text format.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatText
}

// Load reads a scene document from a file.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene: %w", err)
	}
	defer f.Close()

	if FormatOf(path) == FormatJSON {
		return ReadJSON(f)
	}
	return ParseText(path, f)
}

// Save writes a scene document to a file in the format its name implies.
func Save(path string, d *Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create scene file: %w", err)
	}
	if FormatOf(path) == FormatJSON {
		err = WriteJSON(f, d)
	} else {
		err = WriteText(f, d)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
