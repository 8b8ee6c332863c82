package reroute

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"wired/bumps"
	"wired/core"
	"wired/obstacles"
	"wired/pathfinding"
	"wired/scene"
)

// carrier is a small component whose single pin p sits at offset.
func carrier(id string, x, y float64, offset core.Point) scene.Component {
	return scene.Component{
		ID: id, Position: core.Pt(x, y), Width: 10, Height: 10,
		Pins: []scene.Pin{{Name: "p", Offset: offset}},
	}
}

func build(t *testing.T, comps []scene.Component, wires []scene.Wire) *scene.Scene {
	t.Helper()
	s := scene.New()
	for _, c := range comps {
		if _, err := s.AddComponent(c); err != nil {
			t.Fatalf("AddComponent(%s): %v", c.ID, err)
		}
	}
	for _, w := range wires {
		if _, err := s.AddWire(w); err != nil {
			t.Fatalf("AddWire(%s): %v", w.ID, err)
		}
	}
	return s
}

func wire(id, from, to string) scene.Wire {
	return scene.Wire{ID: id, From: scene.Endpoint{Component: from, Pin: "p"}, To: scene.Endpoint{Component: to, Pin: "p"}}
}

func points(t *testing.T, r *Router, id string) []core.Point {
	t.Helper()
	p, ok := r.Path(id)
	if !ok {
		t.Fatalf("Path(%s) missing, err = %v", id, r.Err(id))
	}
	return p.Points()
}

func TestReturnsToElbowWhenObstaclesLeave(t *testing.T) {
	s := build(t, []scene.Component{
		carrier("A", 0, 0, core.Pt(10, 10)),
		carrier("B", 190, 90, core.Pt(0, 0)),
		{ID: "C", Position: core.Pt(80, -20), Width: 40, Height: 40},
		{ID: "D", Position: core.Pt(0, 60), Width: 20, Height: 20},
	}, []scene.Wire{wire("w", "A", "B")})

	r := New(s, pathfinding.Options{})
	route, ok := r.Route("w")
	if !ok {
		t.Fatalf("Route(w) missing, err = %v", r.Err("w"))
	}
	if !route.Clear {
		t.Errorf("blocked route around C and D: %v", route.Path)
	}
	if route.Strategy == pathfinding.StrategyElbow {
		t.Errorf("Strategy = %v, want a detour", route.Strategy)
	}
	if got := r.Stats(); got.Plans != 1 || got.BumpPasses != 1 {
		t.Errorf("Stats after New = %+v", got)
	}

	if err := r.MoveComponent("C", core.Pt(300, 300)); err != nil {
		t.Fatal(err)
	}
	if err := r.MoveComponent("D", core.Pt(300, 400)); err != nil {
		t.Fatal(err)
	}
	want := []core.Point{{X: 10, Y: 10}, {X: 190, Y: 10}, {X: 190, Y: 90}}
	if diff := cmp.Diff(want, points(t, r, "w")); diff != "" {
		t.Errorf("path after obstacles left (-want +got):\n%s", diff)
	}
	if route, _ := r.Route("w"); route.Strategy != pathfinding.StrategyElbow {
		t.Errorf("Strategy = %v, want elbow", route.Strategy)
	}

	// The second move left the path unchanged, so no bump pass ran.
	if got, want := r.Stats(), (Stats{Plans: 3, BumpPasses: 2}); got != want {
		t.Errorf("Stats = %+v, want %+v", got, want)
	}

	// Same position: inputs unchanged, nothing is planned.
	if err := r.MoveComponent("D", core.Pt(300, 400)); err != nil {
		t.Fatal(err)
	}
	if got, want := r.Stats(), (Stats{Plans: 3, Skipped: 1, BumpPasses: 2}); got != want {
		t.Errorf("Stats = %+v, want %+v", got, want)
	}
}

func crossingScene(t *testing.T) *scene.Scene {
	return build(t, []scene.Component{
		carrier("A", -10, -10, core.Pt(10, 10)), // (0,0)
		carrier("B", 100, 100, core.Pt(0, 0)),   // (100,100)
		carrier("C", -10, 50, core.Pt(10, 0)),   // (0,50)
		carrier("D", 150, 60, core.Pt(0, 0)),    // (150,60)
	}, []scene.Wire{wire("w1", "A", "B"), wire("w2", "C", "D")})
}

func TestBumpsFollowPaths(t *testing.T) {
	r := New(crossingScene(t), pathfinding.Options{})

	if diff := cmp.Diff([]core.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}}, points(t, r, "w1")); diff != "" {
		t.Errorf("w1 (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]core.Point{{X: 0, Y: 50}, {X: 150, Y: 50}, {X: 150, Y: 60}}, points(t, r, "w2")); diff != "" {
		t.Errorf("w2 (-want +got):\n%s", diff)
	}

	want := []bumps.Bump{{WireID: "w2", Other: "w1", Point: core.Pt(100, 50), Orientation: core.Horizontal, Segment: 0}}
	if diff := cmp.Diff(want, r.Bumps()); diff != "" {
		t.Errorf("Bumps() (-want +got):\n%s", diff)
	}

	f := r.Frame()
	if len(f.Components) != 4 || len(f.Wires) != 2 {
		t.Fatalf("Frame() = %d components, %d wires", len(f.Components), len(f.Wires))
	}
	if f.Wires[0].ID != "w1" || len(f.Wires[0].Bumps) != 0 || len(f.Wires[1].Bumps) != 1 {
		t.Errorf("Frame() wires = %+v", f.Wires)
	}
	if got := f.Components[0].Pins[0].Point; got != core.Pt(0, 0) {
		t.Errorf("pin A.p drawn at %v", got)
	}

	if err := r.RemoveWire("w1"); err != nil {
		t.Fatal(err)
	}
	if got := r.Bumps(); len(got) != 0 {
		t.Errorf("Bumps() after RemoveWire = %v", got)
	}
	if _, ok := r.Path("w1"); ok {
		t.Error("removed wire still has a path")
	}
}

func TestRemoveComponentDropsWires(t *testing.T) {
	r := New(crossingScene(t), pathfinding.Options{})
	if err := r.RemoveComponent("A"); err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Path("w1"); ok {
		t.Error("w1 survived removal of A")
	}
	if len(r.Bumps()) != 0 || len(r.Frame().Wires) != 1 {
		t.Errorf("after removal: bumps %v, frame wires %d", r.Bumps(), len(r.Frame().Wires))
	}
	if err := r.RemoveComponent("A"); !errors.Is(err, scene.ErrUnknownComponent) {
		t.Errorf("RemoveComponent(A) again error = %v", err)
	}
}

func TestPinStubs(t *testing.T) {
	s := build(t, []scene.Component{
		{ID: "U1", Position: core.Pt(0, 0), Width: 40, Height: 40,
			Pins: []scene.Pin{{Name: "OUT", Offset: core.Pt(40, 20), Edge: core.EdgeRight}}},
		{ID: "U2", Position: core.Pt(200, 100), Width: 40, Height: 40,
			Pins: []scene.Pin{{Name: "IN", Offset: core.Pt(20, 0), Edge: core.EdgeTop}}},
	}, nil)
	r := New(s, pathfinding.Options{})
	if _, err := r.AddWire(scene.Wire{ID: "w", From: scene.Endpoint{Component: "U1", Pin: "OUT"}, To: scene.Endpoint{Component: "U2", Pin: "IN"}}); err != nil {
		t.Fatal(err)
	}

	// Leaves U1 rightwards and enters U2 from above.
	want := []core.Point{{X: 40, Y: 20}, {X: 220, Y: 20}, {X: 220, Y: 100}}
	if diff := cmp.Diff(want, points(t, r, "w")); diff != "" {
		t.Errorf("path (-want +got):\n%s", diff)
	}
}

func TestBackwardsConnectionKeepsStubs(t *testing.T) {
	s := build(t, []scene.Component{
		{ID: "U1", Position: core.Pt(100, 100), Width: 80, Height: 60,
			Pins: []scene.Pin{{Name: "IN", Offset: core.Pt(0, 30), Edge: core.EdgeLeft}}},
		{ID: "U2", Position: core.Pt(400, 100), Width: 80, Height: 60,
			Pins: []scene.Pin{{Name: "OUT", Offset: core.Pt(80, 30), Edge: core.EdgeRight}}},
	}, nil)
	r := New(s, pathfinding.Options{})
	if _, err := r.AddWire(scene.Wire{ID: "w", From: scene.Endpoint{Component: "U1", Pin: "IN"}, To: scene.Endpoint{Component: "U2", Pin: "OUT"}}); err != nil {
		t.Fatal(err)
	}

	// Leaves U1 to the left, passes over both bodies, enters U2 from the right.
	want := []core.Point{
		{X: 100, Y: 130}, {X: 80, Y: 130}, {X: 80, Y: 80}, {X: 200, Y: 80},
		{X: 500, Y: 80}, {X: 500, Y: 130}, {X: 480, Y: 130},
	}
	if diff := cmp.Diff(want, points(t, r, "w")); diff != "" {
		t.Errorf("path (-want +got):\n%s", diff)
	}

	route, _ := r.Route("w")
	if !route.Clear || route.Strategy != pathfinding.StrategyDetour {
		t.Errorf("route = %v clear=%t, want a clear detour", route.Strategy, route.Clear)
	}
	pts := route.Path.Points()
	inner := core.PathFromPoints(pts[1 : len(pts)-1]...)
	bodies := obstacles.FromRects([]core.Rect{core.R(100, 100, 80, 60), core.R(400, 100, 80, 60)})
	if !bodies.Clear(inner) {
		t.Errorf("path between the stubs %v cuts through an endpoint component", inner)
	}
}

func TestEndpointChanged(t *testing.T) {
	s := crossingScene(t)
	r := New(s, pathfinding.Options{})
	if err := r.SetWireEndpoint("w2", scene.To, scene.Endpoint{Component: "B", Pin: "p"}); err != nil {
		t.Fatal(err)
	}
	p, _ := r.Path("w2")
	if p.End() != core.Pt(100, 100) {
		t.Errorf("w2 ends at %v, want (100,100)", p.End())
	}
	if err := r.SetWireEndpoint("w2", scene.To, scene.Endpoint{Component: "B", Pin: "nope"}); !errors.Is(err, scene.ErrUnknownPin) {
		t.Errorf("SetWireEndpoint() error = %v", err)
	}
}

func TestSameEndpointIsRecorded(t *testing.T) {
	s := build(t, []scene.Component{
		carrier("A", 0, 0, core.Pt(10, 10)),
		carrier("B", 10, 10, core.Pt(0, 0)),
	}, []scene.Wire{wire("w", "A", "B")})
	r := New(s, pathfinding.Options{})

	if err := r.Err("w"); !errors.Is(err, pathfinding.ErrSameEndpoints) {
		t.Errorf("Err(w) = %v, want ErrSameEndpoints", err)
	}
	if _, ok := r.Path("w"); ok {
		t.Error("Path(w) reported a path")
	}
	if len(r.Frame().Wires) != 0 {
		t.Error("Frame() contains an unroutable wire")
	}

	// Moving B apart makes it routable again.
	if err := r.NudgeComponent("B", core.Pt(50, 0)); err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Path("w"); !ok {
		t.Errorf("Path(w) missing after nudge, err = %v", r.Err("w"))
	}
	if err := r.NudgeComponent("Z", core.Pt(1, 1)); !errors.Is(err, scene.ErrUnknownComponent) {
		t.Errorf("NudgeComponent(Z) error = %v", err)
	}
}

func TestRerouteAllAndLogging(t *testing.T) {
	var buf bytes.Buffer
	r := New(crossingScene(t), pathfinding.Options{}, WithLogger(log.New(&buf, "", 0)))

	if !strings.Contains(buf.String(), "wire w1: elbow") {
		t.Errorf("initial routing not logged: %q", buf.String())
	}
	before := r.Stats().Plans
	r.RerouteAll()
	if got := r.Stats().Plans - before; got != 2 {
		t.Errorf("RerouteAll planned %d wires, want 2", got)
	}
	if c := r.Planner().Cache(); c == nil {
		t.Error("planner has no cache")
	} else if hits, misses, _, size := c.Stats(); hits != 0 || misses != 2 || size != 2 {
		t.Errorf("planner cache after RerouteAll = %v", c)
	}

	uncached := New(crossingScene(t), pathfinding.Options{}, WithCacheSize(0))
	if uncached.Planner().Cache() != nil {
		t.Error("WithCacheSize(0) left a cache")
	}
	if err := r.ResizeComponent("D", 20, 20); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "component D resized") {
		t.Errorf("log = %q", buf.String())
	}
}
