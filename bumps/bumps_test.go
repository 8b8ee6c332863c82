package bumps

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"wired/core"
)

func wire(id string, pts ...core.Point) Wire {
	return Wire{ID: id, Path: core.PathFromPoints(pts...)}
}

func TestDetectSingleCrossing(t *testing.T) {
	wires := []Wire{
		wire("w1", core.Pt(0, 0), core.Pt(100, 0), core.Pt(100, 100)),
		wire("w2", core.Pt(0, 50), core.Pt(150, 50), core.Pt(150, 60)),
	}

	got := Detect(wires)
	want := []Bump{{
		WireID:      "w2",
		Other:       "w1",
		Point:       core.Pt(100, 50),
		Orientation: core.Horizontal,
		Segment:     0,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Detect() mismatch (-want +got):\n%s", diff)
	}
}

func TestDetectOwnerFollowsCreationOrder(t *testing.T) {
	a := wire("a", core.Pt(0, 50), core.Pt(200, 50))
	b := wire("b", core.Pt(100, 0), core.Pt(100, 100))

	got := Detect([]Wire{a, b})
	if len(got) != 1 || got[0].WireID != "b" || got[0].Orientation != core.Vertical {
		t.Errorf("Detect(a, b) = %+v, want one vertical bump on b", got)
	}

	got = Detect([]Wire{b, a})
	if len(got) != 1 || got[0].WireID != "a" || got[0].Orientation != core.Horizontal {
		t.Errorf("Detect(b, a) = %+v, want one horizontal bump on a", got)
	}
}

func TestDetectElbowsMeetingAtCorners(t *testing.T) {
	// (0,0)→(100,100) and (0,100)→(100,0), both routed horizontal-first,
	// only touch at each other's terminals. Counting every contact with
	// t and u in [0,1] and no terminal filter would report two hops here.
	wires := []Wire{
		wire("w1", core.Pt(0, 0), core.Pt(100, 0), core.Pt(100, 100)),
		wire("w2", core.Pt(0, 100), core.Pt(100, 100), core.Pt(100, 0)),
	}
	if got := Detect(wires); len(got) != 0 {
		t.Errorf("Detect() = %+v, want no bumps", got)
	}
}

func TestDetectIgnoresTerminalsAndCorners(t *testing.T) {
	tests := []struct {
		name  string
		wires []Wire
	}{
		{
			name: "T junction at pin",
			wires: []Wire{
				wire("a", core.Pt(0, 50), core.Pt(200, 50)),
				wire("b", core.Pt(100, 0), core.Pt(100, 50)),
			},
		},
		{
			name: "corner touches corner",
			wires: []Wire{
				wire("a", core.Pt(0, 0), core.Pt(50, 0), core.Pt(50, 50)),
				wire("b", core.Pt(100, 0), core.Pt(50, 0), core.Pt(50, -50)),
			},
		},
		{
			name: "parallel overlap",
			wires: []Wire{
				wire("a", core.Pt(0, 0), core.Pt(100, 0)),
				wire("b", core.Pt(50, 0), core.Pt(150, 0)),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.wires); len(got) != 0 {
				t.Errorf("Detect() = %+v, want none", got)
			}
		})
	}
}

func TestDetectCornerOnStraightRunGoesToEarlier(t *testing.T) {
	wires := []Wire{
		wire("early", core.Pt(0, 50), core.Pt(200, 50)),
		wire("late", core.Pt(100, 0), core.Pt(100, 50), core.Pt(150, 50), core.Pt(150, 100)),
	}
	got := Detect(wires)
	if len(got) != 2 {
		t.Fatalf("Detect() = %+v, want 2 bumps", got)
	}
	for _, b := range got {
		if b.WireID != "early" || b.Orientation != core.Horizontal {
			t.Errorf("bump %+v should belong to the straight earlier wire", b)
		}
	}
}

func TestDetectManyWires(t *testing.T) {
	wires := []Wire{
		wire("h1", core.Pt(0, 20), core.Pt(300, 20)),
		wire("h2", core.Pt(0, 60), core.Pt(300, 60)),
		wire("v1", core.Pt(100, 0), core.Pt(100, 100)),
		wire("v2", core.Pt(200, 0), core.Pt(200, 100)),
	}

	got := Detect(wires)
	if len(got) != 4 {
		t.Fatalf("Detect() = %d bumps, want 4: %+v", len(got), got)
	}
	counts := Count(got)
	if counts["v1"] != 2 || counts["v2"] != 2 || counts["h1"] != 0 {
		t.Errorf("Count() = %v, want the vertical wires to own every hop", counts)
	}
	if v1 := ForWire(got, "v1"); len(v1) != 2 || v1[0].Point != core.Pt(100, 20) {
		t.Errorf("ForWire(v1) = %+v", v1)
	}

	again := Detect(wires)
	if diff := cmp.Diff(got, again); diff != "" {
		t.Errorf("Detect() not deterministic:\n%s", diff)
	}
}
