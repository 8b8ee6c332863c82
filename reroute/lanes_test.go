package reroute

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"wired/bumps"
	"wired/core"
	"wired/pathfinding"
	"wired/scene"
)

func path(pts ...core.Point) core.WirePath {
	return core.PathFromPoints(pts...)
}

func TestSeparateLanes(t *testing.T) {
	trunk := path(core.Pt(0, 0), core.Pt(200, 0))
	branch := path(core.Pt(50, -40), core.Pt(50, 0), core.Pt(150, 0), core.Pt(150, 40))
	elbow := path(core.Pt(0, 0), core.Pt(100, 0), core.Pt(100, 100))

	tests := []struct {
		name    string
		wires   []laneWire
		spacing float64
		want    [][]core.Point
	}{
		{
			name:    "run along an earlier wire",
			wires:   []laneWire{{path: trunk}, {path: branch}},
			spacing: 10,
			want: [][]core.Point{
				{{X: 0, Y: 0}, {X: 200, Y: 0}},
				{{X: 50, Y: -40}, {X: 50, Y: 10}, {X: 150, Y: 10}, {X: 150, Y: 40}},
			},
		},
		{
			name:    "preferred lane",
			wires:   []laneWire{{path: trunk}, {path: branch, pref: -1}},
			spacing: 10,
			want: [][]core.Point{
				{{X: 0, Y: 0}, {X: 200, Y: 0}},
				{{X: 50, Y: -40}, {X: 50, Y: -10}, {X: 150, Y: -10}, {X: 150, Y: 40}},
			},
		},
		{
			name: "next free lane",
			wires: []laneWire{
				{path: trunk},
				{path: branch},
				{path: path(core.Pt(60, -40), core.Pt(60, 0), core.Pt(140, 0), core.Pt(140, 40))},
			},
			spacing: 10,
			want: [][]core.Point{
				{{X: 0, Y: 0}, {X: 200, Y: 0}},
				{{X: 50, Y: -40}, {X: 50, Y: 10}, {X: 150, Y: 10}, {X: 150, Y: 40}},
				{{X: 60, Y: -40}, {X: 60, Y: -10}, {X: 140, Y: -10}, {X: 140, Y: 40}},
			},
		},
		{
			name:    "same pins jog at both ends",
			wires:   []laneWire{{path: elbow}, {path: elbow}},
			spacing: 10,
			want: [][]core.Point{
				{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}},
				{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 110, Y: 10}, {X: 110, Y: 90}, {X: 100, Y: 90}, {X: 100, Y: 100}},
			},
		},
		{
			name:    "straight wire",
			wires:   []laneWire{{path: path(core.Pt(0, 0), core.Pt(90, 0))}, {path: path(core.Pt(0, 0), core.Pt(90, 0))}},
			spacing: 10,
			want: [][]core.Point{
				{{X: 0, Y: 0}, {X: 90, Y: 0}},
				{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 80, Y: 10}, {X: 80, Y: 0}, {X: 90, Y: 0}},
			},
		},
		{
			name:    "no shared track",
			wires:   []laneWire{{path: trunk}, {path: path(core.Pt(0, 50), core.Pt(200, 50))}},
			spacing: 10,
			want: [][]core.Point{
				{{X: 0, Y: 0}, {X: 200, Y: 0}},
				{{X: 0, Y: 50}, {X: 200, Y: 50}},
			},
		},
		{
			name:    "spacing zero",
			wires:   []laneWire{{path: trunk}, {path: branch}},
			spacing: 0,
			want:    [][]core.Point{trunk.Points(), branch.Points()},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := separateLanes(tt.wires, tt.spacing)
			pts := make([][]core.Point, len(got))
			for i, p := range got {
				pts[i] = p.Points()
			}
			if diff := cmp.Diff(tt.want, pts); diff != "" {
				t.Errorf("separateLanes() (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLaneIndex(t *testing.T) {
	s := build(t, []scene.Component{{
		ID: "U", Position: core.Pt(0, 0), Width: 40, Height: 40,
		Pins: []scene.Pin{
			{Name: "C", Offset: core.Pt(0, 30), Edge: core.EdgeLeft},
			{Name: "A", Offset: core.Pt(0, 10), Edge: core.EdgeLeft},
			{Name: "B", Offset: core.Pt(0, 20), Edge: core.EdgeLeft},
			{Name: "Q", Offset: core.Pt(40, 20), Edge: core.EdgeRight},
			{Name: "X", Offset: core.Pt(10, 10)},
		},
	}}, nil)

	tests := []struct {
		pin  string
		want float64
	}{
		{pin: "A", want: -1},
		{pin: "B", want: 0},
		{pin: "C", want: 1},
		{pin: "Q", want: 0},
		{pin: "X", want: 0},
		{pin: "missing", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.pin, func(t *testing.T) {
			if got := laneIndex(s, scene.Endpoint{Component: "U", Pin: tt.pin}); got != tt.want {
				t.Errorf("laneIndex(U.%s) = %g, want %g", tt.pin, got, tt.want)
			}
		})
	}
}

func TestWiresSharingATrackAreDrawnApart(t *testing.T) {
	newScene := func(t *testing.T) *scene.Scene {
		return build(t, []scene.Component{
			carrier("A", -10, -10, core.Pt(10, 10)), // (0,0)
			carrier("B", 100, 100, core.Pt(0, 0)),   // (100,100)
		}, []scene.Wire{wire("w1", "A", "B"), wire("w2", "A", "B")})
	}
	planned := []core.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}}

	r := New(newScene(t), pathfinding.Options{})
	if diff := cmp.Diff(planned, points(t, r, "w2")); diff != "" {
		t.Errorf("planned w2 (-want +got):\n%s", diff)
	}
	drawn, ok := r.DrawnPath("w2")
	if !ok {
		t.Fatal("DrawnPath(w2) missing")
	}
	want := []core.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 110, Y: 10},
		{X: 110, Y: 90}, {X: 100, Y: 90}, {X: 100, Y: 100},
	}
	if diff := cmp.Diff(want, drawn.Points()); diff != "" {
		t.Errorf("drawn w2 (-want +got):\n%s", diff)
	}
	if first, _ := r.DrawnPath("w1"); !first.Equal(path(planned...)) {
		t.Errorf("drawn w1 = %v, want its planned path", first)
	}

	f := r.Frame()
	if len(f.Wires) != 2 || !f.Wires[1].Path.Equal(drawn) {
		t.Errorf("Frame() wires = %+v", f.Wires)
	}
	hop := func(b bumps.Bump) bool { return b.WireID == "w2" && b.Point == core.Pt(100, 10) }
	if !slices.ContainsFunc(r.Bumps(), hop) {
		t.Errorf("Bumps() = %+v, want w2 hopping w1 at (100,10)", r.Bumps())
	}

	stacked := New(newScene(t), pathfinding.Options{}, WithLaneSpacing(0))
	if got, _ := stacked.DrawnPath("w2"); !got.Equal(path(planned...)) {
		t.Errorf("WithLaneSpacing(0) drew w2 along %v", got)
	}
}
