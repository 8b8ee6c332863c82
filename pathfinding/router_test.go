package pathfinding

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"wired/core"
	"wired/geometry"
	"wired/obstacles"
)

// assertRoute checks the path invariants every planned route must hold.
func assertRoute(t *testing.T, route Route, start, end core.Point, rects []core.Rect) {
	t.Helper()
	if err := route.Path.Validate(); err != nil {
		t.Fatalf("invalid path %v: %v", route.Path, err)
	}
	if route.Path.Start() != start {
		t.Errorf("path starts at %v, want %v", route.Path.Start(), start)
	}
	if route.Path.End() != end {
		t.Errorf("path ends at %v, want %v", route.Path.End(), end)
	}
	if !route.Clear {
		return
	}
	for _, s := range route.Path.Segments {
		for _, r := range rects {
			if geometry.SegmentIntersectsRect(s, r) {
				t.Errorf("segment %v meets obstacle %v\n%s", s, r,
					obstacles.Visualize(obstacles.FromRects(rects), route.Path.Bounds().Union(r).Expand(20), 10, route.Path))
			}
		}
	}
}

func TestPlanNoObstacles(t *testing.T) {
	tests := []struct {
		name     string
		start    core.Point
		end      core.Point
		segments int
	}{
		{"diagonal", core.Pt(0, 0), core.Pt(100, 100), 2},
		{"same row", core.Pt(0, 50), core.Pt(200, 50), 1},
		{"same column", core.Pt(30, 0), core.Pt(30, 90), 1},
		{"right to left", core.Pt(100, 0), core.Pt(0, 40), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route, err := Plan(tt.start, tt.end, nil)
			if err != nil {
				t.Fatalf("Plan() error = %v", err)
			}
			assertRoute(t, route, tt.start, tt.end, nil)
			if route.Path.Len() != tt.segments {
				t.Errorf("Plan() = %d segments, want %d (%v)", route.Path.Len(), tt.segments, route.Path)
			}
			if route.Strategy != StrategyElbow || !route.Clear {
				t.Errorf("Plan() strategy = %v clear = %v", route.Strategy, route.Clear)
			}
		})
	}
}

func TestPlanPrefersHorizontalFirst(t *testing.T) {
	route, err := Plan(core.Pt(0, 0), core.Pt(100, 100), nil)
	if err != nil {
		t.Fatal(err)
	}
	if corner := route.Path.Segments[0].End; corner != core.Pt(100, 0) {
		t.Errorf("corner = %v, want (100,0)", corner)
	}
}

func TestPlanScenarioCenteredObstacle(t *testing.T) {
	rects := []core.Rect{core.R(25, 25, 50, 50)}
	start, end := core.Pt(0, 0), core.Pt(100, 100)

	route, err := Plan(start, end, rects)
	if err != nil {
		t.Fatal(err)
	}
	if !route.Clear {
		t.Fatalf("route not clear: %v", route.Path)
	}
	assertRoute(t, route, start, end, rects)
}

func TestPlanStraightRouteBlocked(t *testing.T) {
	rects := []core.Rect{core.R(80, 30, 40, 40)}
	start, end := core.Pt(0, 50), core.Pt(200, 50)

	route, err := Plan(start, end, rects)
	if err != nil {
		t.Fatal(err)
	}
	if !route.Clear {
		t.Fatalf("route not clear: %v", route.Path)
	}
	if route.Strategy != StrategyDetour {
		t.Errorf("strategy = %v, want detour", route.Strategy)
	}
	assertRoute(t, route, start, end, rects)

	want := []core.Point{
		{X: 0, Y: 50}, {X: 60, Y: 50}, {X: 60, Y: 10}, {X: 200, Y: 10}, {X: 200, Y: 50},
	}
	if diff := cmp.Diff(want, route.Path.Points()); diff != "" {
		t.Errorf("detour mismatch (-want +got):\n%s", diff)
	}
}

func TestPlanBothElbowsBlocked(t *testing.T) {
	rects := []core.Rect{
		core.R(80, -20, 40, 40),
		core.R(-20, 80, 40, 40),
	}
	start, end := core.Pt(0, 0), core.Pt(100, 100)

	for _, c := range Elbows(start, end) {
		if obstacles.FromRects(rects).Clear(c) {
			t.Fatalf("test setup: elbow %v should be blocked", c)
		}
	}

	route, err := Plan(start, end, rects)
	if err != nil {
		t.Fatal(err)
	}
	if !route.Clear {
		t.Fatalf("route not clear: %v", route.Path)
	}
	assertRoute(t, route, start, end, rects)
}

func TestPlanReversedEndpointsShareGeometry(t *testing.T) {
	rects := []core.Rect{core.R(80, -20, 40, 40), core.R(-20, 80, 40, 40)}
	a, b := core.Pt(0, 0), core.Pt(100, 100)

	forward, err := Plan(a, b, rects)
	if err != nil {
		t.Fatal(err)
	}
	backward, err := Plan(b, a, rects)
	if err != nil {
		t.Fatal(err)
	}
	assertRoute(t, backward, b, a, rects)
	if diff := cmp.Diff(forward.Path.Points(), backward.Path.Reverse().Points()); diff != "" {
		t.Errorf("B→A is not A→B reversed (-fwd +rev):\n%s", diff)
	}
}

func TestPlanDeterministic(t *testing.T) {
	rects := []core.Rect{
		core.R(40, 0, 30, 120),
		core.R(120, 60, 40, 40),
		core.R(200, -40, 20, 200),
	}
	start, end := core.Pt(0, 50), core.Pt(300, 80)

	first, err := Plan(start, end, rects)
	if err != nil {
		t.Fatal(err)
	}
	assertRoute(t, first, start, end, rects)
	for i := 0; i < 5; i++ {
		again, err := Plan(start, end, rects)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("run %d differs (-first +again):\n%s", i, diff)
		}
	}
}

func TestPlanReturnsToElbowWhenObstacleLeaves(t *testing.T) {
	start, end := core.Pt(0, 50), core.Pt(200, 50)

	blocked, err := Plan(start, end, []core.Rect{core.R(80, 30, 40, 40)})
	if err != nil {
		t.Fatal(err)
	}
	if blocked.Path.Len() == 1 {
		t.Fatalf("expected a detour, got %v", blocked.Path)
	}

	moved, err := Plan(start, end, []core.Rect{core.R(80, 300, 40, 40)})
	if err != nil {
		t.Fatal(err)
	}
	if moved.Path.Len() != 1 || moved.Strategy != StrategyElbow {
		t.Errorf("after moving obstacle away got %v (%v), want straight elbow", moved.Path, moved.Strategy)
	}
}

func TestPlanUnroutableFallsBack(t *testing.T) {
	// End is buried inside an obstacle; nothing can be clear.
	rects := []core.Rect{core.R(80, 80, 40, 40)}
	start, end := core.Pt(0, 0), core.Pt(100, 100)

	route, err := Plan(start, end, rects)
	if err != nil {
		t.Fatalf("Plan() error = %v, want best effort", err)
	}
	if route.Clear || route.Strategy != StrategyFallback {
		t.Errorf("route = %v clear=%v, want fallback", route.Strategy, route.Clear)
	}
	assertRoute(t, route, start, end, rects)
	if corner := route.Path.Segments[0].End; corner != core.Pt(100, 0) {
		t.Errorf("fallback corner = %v, want horizontal-first (100,0)", corner)
	}
}

func TestPlanRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name       string
		start, end core.Point
		want       error
	}{
		{"same point", core.Pt(5, 5), core.Pt(5, 5), ErrSameEndpoints},
		{"NaN", core.Pt(math.NaN(), 0), core.Pt(5, 5), ErrNonFinite},
		{"Inf", core.Pt(0, 0), core.Pt(math.Inf(1), 5), ErrNonFinite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Plan(tt.start, tt.end, nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("Plan() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPlannerCache(t *testing.T) {
	p := NewPlanner(Options{}).WithCache(8)
	rects := []core.Rect{core.R(80, 30, 40, 40)}

	first, err := p.Plan(core.Pt(0, 50), core.Pt(200, 50), rects)
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.Plan(core.Pt(0, 50), core.Pt(200, 50), rects)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("cached route differs:\n%s", diff)
	}
	if hits, misses, _, _ := p.Cache().Stats(); hits != 1 || misses != 1 {
		t.Errorf("cache hits = %d misses = %d, want 1 and 1", hits, misses)
	}
}

func TestExploreFindsClearPath(t *testing.T) {
	rects := []core.Rect{core.R(80, 30, 40, 40)}
	start, end := core.Pt(0, 50), core.Pt(200, 50)

	path, ok := Explore(start, end, obstacles.FromRects(rects), DefaultOptions())
	if !ok {
		t.Fatal("Explore() found no path")
	}
	assertRoute(t, Route{Path: path, Clear: true}, start, end, rects)
}

func TestExploreRespectsExpansionCap(t *testing.T) {
	// A closed box around the start cannot be escaped.
	rects := []core.Rect{
		core.R(-50, -50, 100, 10),
		core.R(-50, 40, 100, 10),
		core.R(-50, -50, 10, 100),
		core.R(40, -50, 10, 100),
	}
	opts := Options{MaxExpansions: 500}
	if _, ok := Explore(core.Pt(0, 0), core.Pt(300, 0), obstacles.FromRects(rects), opts); ok {
		t.Error("Explore() escaped a closed box")
	}
}

func TestDetourUsesClearance(t *testing.T) {
	rects := []core.Rect{core.R(80, 30, 40, 40)}
	opts := Options{Clearance: 5}
	path, ok := Detour(core.Pt(0, 50), core.Pt(200, 50), obstacles.FromRects(rects), opts)
	if !ok {
		t.Fatal("Detour() failed")
	}
	pts := path.Points()
	if pts[1] != core.Pt(75, 50) || pts[2] != core.Pt(75, 25) {
		t.Errorf("Detour() waypoints = %v, want clearance box at x=75 y=25", pts)
	}
}
