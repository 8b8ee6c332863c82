// Package bumps finds where wires cross and decides which wire draws the hop.
package bumps

import (
	"wired/core"
	"wired/geometry"
)

// keyPrecision is the number of decimals used to merge duplicate crossings.
const keyPrecision = 6

// Wire is one routed wire as seen by the bumper.
type Wire struct {
	ID   string
	Path core.WirePath
}

// Bump is a crossing drawn as a hop on the owning wire.
type Bump struct {
	WireID      string           // wire that draws the hop
	Other       string           // wire being hopped over
	Point       core.Point       // crossing point
	Orientation core.Orientation // orientation of the owning segment
	Segment     int              // index of the owning segment in its path
}

// Detect finds every crossing between the given wires, which must be in
// creation order. Each crossing is owned by exactly one wire: the later one,
// unless the crossing falls on one of its corners while the earlier wire
// passes straight through, in which case the earlier wire hops.
//
// Contacts at a wire terminal are junctions and are skipped, as are points
// where two corners meet. A pair reports each crossing point once.
func Detect(wires []Wire) []Bump {
	var out []Bump
	for i := 0; i < len(wires); i++ {
		for j := i + 1; j < len(wires); j++ {
			out = append(out, pair(wires[i], wires[j])...)
		}
	}
	return out
}

// ForWire returns the bumps owned by one wire, in detection order.
func ForWire(bumps []Bump, id string) []Bump {
	var out []Bump
	for _, b := range bumps {
		if b.WireID == id {
			out = append(out, b)
		}
	}
	return out
}

// Count returns the number of bumps owned by each wire.
func Count(bumps []Bump) map[string]int {
	counts := make(map[string]int)
	for _, b := range bumps {
		counts[b.WireID]++
	}
	return counts
}

func pair(earlier, later Wire) []Bump {
	var out []Bump
	seen := make(map[core.Point]bool)

	for si, a := range earlier.Path.Segments {
		for sj, b := range later.Path.Segments {
			p, ok := geometry.SegmentIntersection(a, b)
			if !ok {
				continue
			}
			if isTerminal(earlier.Path, p) || isTerminal(later.Path, p) {
				continue
			}

			cornerA := isEndpoint(a, p)
			cornerB := isEndpoint(b, p)

			var bump Bump
			switch {
			case cornerA && cornerB:
				continue
			case cornerB:
				bump = Bump{WireID: earlier.ID, Other: later.ID, Point: p, Orientation: a.Orientation(), Segment: si}
			default:
				bump = Bump{WireID: later.ID, Other: earlier.ID, Point: p, Orientation: b.Orientation(), Segment: sj}
			}

			k := geometry.Key(p, keyPrecision)
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, bump)
		}
	}
	return out
}

func isTerminal(path core.WirePath, p core.Point) bool {
	return geometry.SamePoint(path.Start(), p) || geometry.SamePoint(path.End(), p)
}

func isEndpoint(s core.Segment, p core.Point) bool {
	return geometry.SamePoint(s.Start, p) || geometry.SamePoint(s.End, p)
}
