package scene

import (
	"fmt"
	"math"
	"slices"

	"github.com/google/uuid"

	"wired/core"
	"wired/obstacles"
)

// Scene is the set of components and wires being edited. It is not safe for
// concurrent use.
type Scene struct {
	components map[string]*Component
	compOrder  []string
	wires      map[string]*Wire
	wireOrder  []string
	nextSeq    uint64
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{
		components: make(map[string]*Component),
		wires:      make(map[string]*Wire),
	}
}

func validSize(w, h float64) bool {
	return w > 0 && h > 0 && !math.IsInf(w, 0) && !math.IsInf(h, 0)
}

// AddComponent adds a component and returns its id. An empty id is replaced
// with a fresh UUID.
func (s *Scene) AddComponent(c Component) (string, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if _, exists := s.components[c.ID]; exists {
		return "", fmt.Errorf("component %q: %w", c.ID, ErrDuplicateID)
	}
	if !validSize(c.Width, c.Height) {
		return "", fmt.Errorf("component %q %gx%g: %w", c.ID, c.Width, c.Height, ErrInvalidSize)
	}
	if !c.Position.IsFinite() {
		return "", fmt.Errorf("component %q position %v is not finite", c.ID, c.Position)
	}
	seen := make(map[string]bool, len(c.Pins))
	for _, p := range c.Pins {
		if seen[p.Name] {
			return "", fmt.Errorf("component %q pin %q: %w", c.ID, p.Name, ErrDuplicateID)
		}
		seen[p.Name] = true
	}

	cc := c.clone()
	s.components[c.ID] = &cc
	s.compOrder = append(s.compOrder, c.ID)
	return c.ID, nil
}

// Component returns a copy of the component with the given id.
func (s *Scene) Component(id string) (Component, bool) {
	c, ok := s.components[id]
	if !ok {
		return Component{}, false
	}
	return c.clone(), true
}

// Components returns every component in insertion order.
func (s *Scene) Components() []Component {
	out := make([]Component, 0, len(s.compOrder))
	for _, id := range s.compOrder {
		out = append(out, s.components[id].clone())
	}
	return out
}

// MoveComponent places a component's top-left corner at pos.
func (s *Scene) MoveComponent(id string, pos core.Point) error {
	c, ok := s.components[id]
	if !ok {
		return fmt.Errorf("move %q: %w", id, ErrUnknownComponent)
	}
	if !pos.IsFinite() {
		return fmt.Errorf("move %q to %v: position is not finite", id, pos)
	}
	c.Position = pos
	return nil
}

// ResizeComponent changes a component's size. Pin offsets are kept.
func (s *Scene) ResizeComponent(id string, width, height float64) error {
	c, ok := s.components[id]
	if !ok {
		return fmt.Errorf("resize %q: %w", id, ErrUnknownComponent)
	}
	if !validSize(width, height) {
		return fmt.Errorf("resize %q to %gx%g: %w", id, width, height, ErrInvalidSize)
	}
	c.Width, c.Height = width, height
	return nil
}

// RemoveComponent deletes a component and every wire attached to it.
// It returns the ids of the removed wires.
func (s *Scene) RemoveComponent(id string) ([]string, error) {
	if _, ok := s.components[id]; !ok {
		return nil, fmt.Errorf("remove %q: %w", id, ErrUnknownComponent)
	}
	removed := s.WiresAttachedTo(id)
	for _, wid := range removed {
		s.deleteWire(wid)
	}
	delete(s.components, id)
	s.compOrder = slices.DeleteFunc(s.compOrder, func(c string) bool { return c == id })
	return removed, nil
}

// AddWire adds a wire between two existing pins and returns its id. An empty
// id is replaced with a fresh UUID. The wire's Seq is assigned by the scene.
func (s *Scene) AddWire(w Wire) (string, error) {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if _, exists := s.wires[w.ID]; exists {
		return "", fmt.Errorf("wire %q: %w", w.ID, ErrDuplicateID)
	}
	if err := s.checkEndpoints(w.From, w.To); err != nil {
		return "", fmt.Errorf("wire %q: %w", w.ID, err)
	}

	s.nextSeq++
	w.Seq = s.nextSeq
	s.wires[w.ID] = &w
	s.wireOrder = append(s.wireOrder, w.ID)
	return w.ID, nil
}

// RemoveWire deletes a wire.
func (s *Scene) RemoveWire(id string) error {
	if _, ok := s.wires[id]; !ok {
		return fmt.Errorf("remove wire %q: %w", id, ErrUnknownWire)
	}
	s.deleteWire(id)
	return nil
}

func (s *Scene) deleteWire(id string) {
	delete(s.wires, id)
	s.wireOrder = slices.DeleteFunc(s.wireOrder, func(w string) bool { return w == id })
}

// SetWireEndpoint reconnects one end of a wire. The wire keeps its Seq.
func (s *Scene) SetWireEndpoint(id string, end End, ep Endpoint) error {
	w, ok := s.wires[id]
	if !ok {
		return fmt.Errorf("reconnect %q: %w", id, ErrUnknownWire)
	}
	from, to := w.From, w.To
	if end == To {
		to = ep
	} else {
		from = ep
	}
	if err := s.checkEndpoints(from, to); err != nil {
		return fmt.Errorf("reconnect %q %s: %w", id, end, err)
	}
	w.From, w.To = from, to
	return nil
}

func (s *Scene) checkEndpoints(from, to Endpoint) error {
	for _, ep := range []Endpoint{from, to} {
		c, ok := s.components[ep.Component]
		if !ok {
			return fmt.Errorf("%s: %w", ep, ErrUnknownComponent)
		}
		if _, ok := c.Pin(ep.Pin); !ok {
			return fmt.Errorf("%s: %w", ep, ErrUnknownPin)
		}
	}
	if from == to {
		return fmt.Errorf("%s: %w", from, ErrInvalidWire)
	}
	return nil
}

// Wire returns a copy of the wire with the given id.
func (s *Scene) Wire(id string) (Wire, bool) {
	w, ok := s.wires[id]
	if !ok {
		return Wire{}, false
	}
	return *w, true
}

// Wires returns every wire in creation order.
func (s *Scene) Wires() []Wire {
	out := make([]Wire, 0, len(s.wireOrder))
	for _, id := range s.wireOrder {
		out = append(out, *s.wires[id])
	}
	return out
}

// WiresAttachedTo returns the ids of wires with an end on the component, in
// creation order.
func (s *Scene) WiresAttachedTo(componentID string) []string {
	var out []string
	for _, id := range s.wireOrder {
		w := s.wires[id]
		if w.From.Component == componentID || w.To.Component == componentID {
			out = append(out, id)
		}
	}
	return out
}

// Resolve returns the scene position and facing of an endpoint.
func (s *Scene) Resolve(ep Endpoint) (Terminal, error) {
	c, ok := s.components[ep.Component]
	if !ok {
		return Terminal{}, fmt.Errorf("%s: %w", ep, ErrUnknownComponent)
	}
	p, ok := c.Pin(ep.Pin)
	if !ok {
		return Terminal{}, fmt.Errorf("%s: %w", ep, ErrUnknownPin)
	}
	return Terminal{Point: c.Position.Add(p.Offset), Edge: p.Edge}, nil
}

// Endpoints resolves both ends of a wire.
func (s *Scene) Endpoints(wireID string) (from, to Terminal, err error) {
	w, ok := s.wires[wireID]
	if !ok {
		return Terminal{}, Terminal{}, fmt.Errorf("endpoints %q: %w", wireID, ErrUnknownWire)
	}
	if from, err = s.Resolve(w.From); err != nil {
		return Terminal{}, Terminal{}, err
	}
	if to, err = s.Resolve(w.To); err != nil {
		return Terminal{}, Terminal{}, err
	}
	return from, to, nil
}

// Obstacles returns every component as an obstacle, in insertion order.
func (s *Scene) Obstacles() []obstacles.Obstacle {
	out := make([]obstacles.Obstacle, 0, len(s.compOrder))
	for _, id := range s.compOrder {
		out = append(out, obstacles.Obstacle{ID: id, Rect: s.components[id].Bounds()})
	}
	return out
}

// ObstaclesFor returns the obstacle index a wire is planned against: every
// component except the ones the wire connects.
func (s *Scene) ObstaclesFor(wireID string) (*obstacles.Index, error) {
	w, ok := s.wires[wireID]
	if !ok {
		return nil, fmt.Errorf("obstacles %q: %w", wireID, ErrUnknownWire)
	}
	return obstacles.NewIndex(s.Obstacles(), w.From.Component, w.To.Component), nil
}
