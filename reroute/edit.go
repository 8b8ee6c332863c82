package reroute

import (
	"fmt"

	"wired/core"
	"wired/scene"
)

// The methods below change the scene and fire the matching trigger.

// MoveComponent moves a component and re-routes.
func (r *Router) MoveComponent(id string, pos core.Point) error {
	if err := r.scene.MoveComponent(id, pos); err != nil {
		return err
	}
	r.ComponentMoved(id)
	return nil
}

// NudgeComponent moves a component by delta and re-routes.
func (r *Router) NudgeComponent(id string, delta core.Point) error {
	c, ok := r.scene.Component(id)
	if !ok {
		return fmt.Errorf("nudge %q: %w", id, scene.ErrUnknownComponent)
	}
	return r.MoveComponent(id, c.Position.Add(delta))
}

// ResizeComponent resizes a component and re-routes.
func (r *Router) ResizeComponent(id string, width, height float64) error {
	if err := r.scene.ResizeComponent(id, width, height); err != nil {
		return err
	}
	r.ComponentResized(id)
	return nil
}

// AddComponent adds a component and re-routes.
func (r *Router) AddComponent(c scene.Component) (string, error) {
	id, err := r.scene.AddComponent(c)
	if err != nil {
		return "", err
	}
	r.ComponentAdded(id)
	return id, nil
}

// RemoveComponent removes a component with its wires and re-routes.
func (r *Router) RemoveComponent(id string) error {
	if _, err := r.scene.RemoveComponent(id); err != nil {
		return err
	}
	r.ComponentRemoved(id)
	return nil
}

// AddWire adds and routes a wire.
func (r *Router) AddWire(w scene.Wire) (string, error) {
	id, err := r.scene.AddWire(w)
	if err != nil {
		return "", err
	}
	r.WireAdded(id)
	return id, nil
}

// RemoveWire removes a wire and recomputes bumps.
func (r *Router) RemoveWire(id string) error {
	if err := r.scene.RemoveWire(id); err != nil {
		return err
	}
	r.WireRemoved(id)
	return nil
}

// SetWireEndpoint reconnects one end of a wire and re-routes it.
func (r *Router) SetWireEndpoint(id string, end scene.End, ep scene.Endpoint) error {
	if err := r.scene.SetWireEndpoint(id, end, ep); err != nil {
		return err
	}
	r.EndpointChanged(id)
	return nil
}
