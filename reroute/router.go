// Package reroute keeps every wire of a scene routed while the scene is
// edited. Each trigger re-plans the wires whose planning inputs changed and
// recomputes the scene's bumps when any path moved.
package reroute

import (
	"io"
	"log"
	"slices"

	"wired/bumps"
	"wired/core"
	"wired/obstacles"
	"wired/pathfinding"
	"wired/render"
	"wired/scene"
)

// DefaultCacheSize is the number of routes the planner remembers.
const DefaultCacheSize = 256

// Stats counts the work done by a Router.
type Stats struct {
	Plans      int // wires planned
	Skipped    int // wires whose inputs were unchanged
	BumpPasses int // whole-scene bump recomputations
}

// inputs are everything a wire's path depends on.
type inputs struct {
	from, to scene.Terminal
	rects    []core.Rect // every component, the wire's own included
}

// indexes holds the two obstacle views a wire is planned against.
type indexes struct {
	others *obstacles.Index // every component but the wire's endpoints
	all    *obstacles.Index
}

func (in inputs) equal(o inputs) bool {
	return in.from == o.from && in.to == o.to && slices.Equal(in.rects, o.rects)
}

// wireState is the last routing result of one wire.
type wireState struct {
	in    inputs
	route pathfinding.Route // path includes the pin stubs
	drawn core.WirePath     // route path moved off tracks shared with earlier wires
	err   error
}

// Router routes the wires of one scene. It is not safe for concurrent use.
type Router struct {
	scene       *scene.Scene
	planner     *pathfinding.Planner
	logger      *log.Logger
	cacheSize   int
	laneSpacing float64

	wires map[string]*wireState
	order []string
	bumps []bumps.Bump
	stats Stats
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger used for routing decisions.
func WithLogger(l *log.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithCacheSize sets how many routes the planner remembers. Zero disables
// the cache.
func WithCacheSize(n int) Option {
	return func(r *Router) {
		r.cacheSize = n
	}
}

// WithLaneSpacing sets the gap between wires drawn along a shared track.
// Zero draws them on top of each other.
func WithLaneSpacing(d float64) Option {
	return func(r *Router) {
		r.laneSpacing = d
	}
}

// New creates a router for s and routes every wire already in it.
func New(s *scene.Scene, opts pathfinding.Options, options ...Option) *Router {
	r := &Router{
		scene:       s,
		logger:      log.New(io.Discard, "", 0),
		cacheSize:   DefaultCacheSize,
		laneSpacing: DefaultLaneSpacing,
		wires:       make(map[string]*wireState),
	}
	for _, o := range options {
		o(r)
	}
	r.planner = pathfinding.NewPlanner(opts)
	if r.cacheSize > 0 {
		r.planner.WithCache(r.cacheSize)
	}
	r.refresh()
	return r
}

// Scene returns the routed scene.
func (r *Router) Scene() *scene.Scene {
	return r.scene
}

// Planner returns the planner used for every wire.
func (r *Router) Planner() *pathfinding.Planner {
	return r.planner
}

// Stats returns the work counters.
func (r *Router) Stats() Stats {
	return r.stats
}

// Path returns the current path of a wire.
func (r *Router) Path(wireID string) (core.WirePath, bool) {
	st, ok := r.wires[wireID]
	if !ok || st.err != nil {
		return core.WirePath{}, false
	}
	return st.route.Path, true
}

// DrawnPath returns the path a wire is drawn along: its planned path, moved
// onto its own lane where it shares a track with an earlier wire.
func (r *Router) DrawnPath(wireID string) (core.WirePath, bool) {
	st, ok := r.wires[wireID]
	if !ok || st.err != nil {
		return core.WirePath{}, false
	}
	return st.drawn, true
}

// Route returns the full planning result of a wire.
func (r *Router) Route(wireID string) (pathfinding.Route, bool) {
	st, ok := r.wires[wireID]
	if !ok || st.err != nil {
		return pathfinding.Route{}, false
	}
	return st.route, true
}

// Err returns the planning error of a wire, if any.
func (r *Router) Err(wireID string) error {
	if st, ok := r.wires[wireID]; ok {
		return st.err
	}
	return nil
}

// Bumps returns every bump in the scene.
func (r *Router) Bumps() []bumps.Bump {
	return slices.Clone(r.bumps)
}

// BumpsFor returns the bumps drawn by one wire.
func (r *Router) BumpsFor(wireID string) []bumps.Bump {
	return bumps.ForWire(r.bumps, wireID)
}

// Trigger notifications. The scene has already been changed by the caller.

// ComponentMoved re-routes after a component changed position.
func (r *Router) ComponentMoved(id string) {
	r.logger.Printf("component %s moved", id)
	r.refresh()
}

// ComponentResized re-routes after a component changed size.
func (r *Router) ComponentResized(id string) {
	r.logger.Printf("component %s resized", id)
	r.refresh()
}

// ComponentAdded re-routes after a component was added.
func (r *Router) ComponentAdded(id string) {
	r.logger.Printf("component %s added", id)
	r.refresh()
}

// ComponentRemoved re-routes after a component and its wires were removed.
func (r *Router) ComponentRemoved(id string) {
	r.logger.Printf("component %s removed", id)
	r.refresh()
}

// WireAdded routes a new wire.
func (r *Router) WireAdded(id string) {
	r.logger.Printf("wire %s added", id)
	r.refresh()
}

// WireRemoved forgets a removed wire.
func (r *Router) WireRemoved(id string) {
	r.logger.Printf("wire %s removed", id)
	r.refresh()
}

// EndpointChanged re-routes after a wire was reconnected.
func (r *Router) EndpointChanged(id string) {
	r.logger.Printf("wire %s reconnected", id)
	r.refresh()
}

// RerouteAll forgets every remembered input and plans all wires again.
func (r *Router) RerouteAll() {
	clear(r.wires)
	if c := r.planner.Cache(); c != nil {
		c.Clear()
	}
	r.refresh()
}

// refresh re-plans wires whose inputs changed and recomputes bumps when
// the set of paths changed.
func (r *Router) refresh() {
	wires := r.scene.Wires()
	order := make([]string, 0, len(wires))
	changed := false

	for _, w := range wires {
		order = append(order, w.ID)
		in, ix, err := r.inputsFor(w.ID)
		prev := r.wires[w.ID]
		if err == nil && prev != nil && prev.err == nil && prev.in.equal(in) {
			r.stats.Skipped++
			continue
		}

		next := &wireState{in: in, err: err}
		if err == nil {
			next.route, next.err = r.plan(w.ID, in, ix)
		}
		if next.err != nil {
			r.logger.Printf("wire %s: %v", w.ID, next.err)
		}
		if prev == nil || !prev.route.Path.Equal(next.route.Path) || (prev.err == nil) != (next.err == nil) {
			changed = true
		} else {
			next.drawn = prev.drawn
		}
		r.wires[w.ID] = next
	}

	for id := range r.wires {
		if !slices.Contains(order, id) {
			delete(r.wires, id)
			changed = true
		}
	}
	if !slices.Equal(order, r.order) {
		changed = true
	}
	r.order = order

	if changed {
		r.layout()
	}
}

func (r *Router) inputsFor(wireID string) (inputs, indexes, error) {
	from, to, err := r.scene.Endpoints(wireID)
	if err != nil {
		return inputs{}, indexes{}, err
	}
	others, err := r.scene.ObstaclesFor(wireID)
	if err != nil {
		return inputs{}, indexes{}, err
	}
	all := obstacles.NewIndex(r.scene.Obstacles())
	return inputs{from: from, to: to, rects: all.Rects()}, indexes{others: others, all: all}, nil
}

// plan routes between the pins' approach points and splices the pin stubs
// onto both ends. When both pins have a stub, the leg between the approach
// points also avoids the two endpoint components, falling back to ignoring
// them when no clear route exists.
func (r *Router) plan(id string, in inputs, ix indexes) (pathfinding.Route, error) {
	r.stats.Plans++
	stub := r.planner.Options().Clearance
	a, b := approach(in.from, stub), approach(in.to, stub)
	stubbed := a != in.from.Point && b != in.to.Point
	if a == b {
		a, b = in.from.Point, in.to.Point
		stubbed = false
	}

	var (
		route pathfinding.Route
		err   error
	)
	if stubbed {
		route, err = r.planner.PlanIndex(a, b, ix.all)
		if err == nil && !route.Clear {
			r.logger.Printf("wire %s: no way around its own components", id)
		}
	}
	if !stubbed || err != nil || !route.Clear {
		route, err = r.planner.PlanIndex(a, b, ix.others)
	}
	if err != nil {
		return pathfinding.Route{}, err
	}

	pts := make([]core.Point, 0, route.Path.Len()+3)
	pts = append(pts, in.from.Point)
	pts = append(pts, route.Path.Points()...)
	pts = append(pts, in.to.Point)
	route.Path = core.PathFromPoints(pathfinding.Simplify(pts)...)
	route.Clear = ix.others.Clear(route.Path)

	r.logger.Printf("wire %s: %s, %d segments, clear=%t", id, route.Strategy, route.Path.Len(), route.Clear)
	return route, nil
}

// approach returns the point a wire leaves a pin through: stub units out
// along the pin's edge normal.
func approach(t scene.Terminal, stub float64) core.Point {
	n := t.Edge.Normal()
	return core.Point{X: t.Point.X + n.X*stub, Y: t.Point.Y + n.Y*stub}
}

// layout separates wires sharing a track and recomputes the bumps of the
// drawn paths.
func (r *Router) layout() {
	var (
		ids   []string
		lanes []laneWire
	)
	for _, id := range r.order {
		st := r.wires[id]
		if st == nil || st.err != nil {
			continue
		}
		var pref float64
		if w, ok := r.scene.Wire(id); ok {
			pref = preferredLane(r.scene, w)
		}
		ids = append(ids, id)
		lanes = append(lanes, laneWire{path: st.route.Path, pref: pref})
	}

	drawn := separateLanes(lanes, r.laneSpacing)
	routed := make([]bumps.Wire, len(ids))
	for i, id := range ids {
		r.wires[id].drawn = drawn[i]
		routed[i] = bumps.Wire{ID: id, Path: drawn[i]}
		if !drawn[i].Equal(lanes[i].path) {
			r.logger.Printf("wire %s: moved off a shared track", id)
		}
	}
	r.bumps = bumps.Detect(routed)
	r.stats.BumpPasses++
	r.logger.Printf("bumps: %d across %d wires", len(r.bumps), len(routed))
}

// Frame returns the renderable view of the scene.
func (r *Router) Frame() render.Frame {
	var f render.Frame
	for _, c := range r.scene.Components() {
		cv := render.ComponentView{ID: c.ID, Label: c.Label, Bounds: c.Bounds()}
		for _, p := range c.Pins {
			cv.Pins = append(cv.Pins, render.PinView{Name: p.Name, Point: c.Position.Add(p.Offset), Edge: p.Edge})
		}
		f.Components = append(f.Components, cv)
	}
	for _, id := range r.order {
		st := r.wires[id]
		if st == nil || st.err != nil {
			continue
		}
		f.Wires = append(f.Wires, render.WireView{
			ID:       id,
			Path:     st.drawn,
			Bumps:    r.BumpsFor(id),
			Strategy: st.route.Strategy,
			Clear:    st.route.Clear,
		})
	}
	return f
}
