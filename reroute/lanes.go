package reroute

import (
	"slices"

	"wired/core"
	"wired/geometry"
	"wired/pathfinding"
	"wired/scene"
)

// DefaultLaneSpacing is the gap between wires drawn along a shared track.
const DefaultLaneSpacing = 10

// maxLanes is how many lanes either side of a track are tried.
const maxLanes = 8

// laneWire is a planned path and the lane its pins ask for.
type laneWire struct {
	path core.WirePath
	pref float64
}

// separateLanes returns the drawn path of every wire. A wire running along
// an earlier wire is moved onto a free parallel lane for the length of that
// track, with perpendicular jogs next to its pins. Earlier wires keep their
// tracks. Planned paths are not changed.
func separateLanes(wires []laneWire, spacing float64) []core.WirePath {
	out := make([]core.WirePath, len(wires))
	for i, w := range wires {
		out[i] = w.path
		if spacing <= 0 || w.path.IsEmpty() {
			continue
		}
		placed := out[:i]

		hJogs := make(map[float64]float64) // y of a horizontal track → dy
		vJogs := make(map[float64]float64) // x of a vertical track → dx
		for _, seg := range w.path.Segments {
			jogs, track := hJogs, seg.Start.Y
			if seg.IsVertical() {
				jogs, track = vJogs, seg.Start.X
			}
			if _, done := jogs[track]; done || !sharesTrack(seg, placed) {
				continue
			}
			jogs[track] = chooseLane(seg, placed, w.pref, spacing)
		}
		out[i] = applyJogs(w.path, hJogs, vJogs, spacing)
	}
	return out
}

func sharesTrack(seg core.Segment, paths []core.WirePath) bool {
	for _, p := range paths {
		for _, o := range p.Segments {
			if geometry.SharedRun(seg, o) > geometry.Tolerance {
				return true
			}
		}
	}
	return false
}

// chooseLane returns the offset of the first lane on which seg runs along
// no other wire, or zero when every lane is taken.
func chooseLane(seg core.Segment, placed []core.WirePath, pref, spacing float64) float64 {
	for _, lane := range laneOrder(pref) {
		d := lane * spacing
		if !sharesTrack(shift(seg, d), placed) {
			return d
		}
	}
	return 0
}

// laneOrder lists lane indexes to try: the preferred one, then 1, -1, 2, -2
// and so on.
func laneOrder(pref float64) []float64 {
	order := make([]float64, 0, 2*maxLanes+1)
	if pref != 0 {
		order = append(order, pref)
	}
	for k := 1.0; k <= maxLanes; k++ {
		for _, lane := range []float64{k, -k} {
			if lane != pref {
				order = append(order, lane)
			}
		}
	}
	return order
}

func shift(seg core.Segment, d float64) core.Segment {
	if seg.IsVertical() {
		seg.Start.X += d
		seg.End.X += d
		return seg
	}
	seg.Start.Y += d
	seg.End.Y += d
	return seg
}

// applyJogs moves every interior point by the offsets of the tracks it lies
// on. Terminals stay on their pins and reach the shifted tracks through a
// short perpendicular jog.
func applyJogs(path core.WirePath, hJogs, vJogs map[float64]float64, spacing float64) core.WirePath {
	if len(hJogs)+len(vJogs) == 0 {
		return path
	}
	move := func(p core.Point) core.Point {
		return core.Point{X: p.X + vJogs[p.X], Y: p.Y + hJogs[p.Y]}
	}

	pts := path.Points()
	n := len(pts)
	out := make([]core.Point, 0, n+4)
	out = append(out, pts[0])
	out = append(out, jog(pts[0], pts[1], hJogs, vJogs, spacing)...)
	for _, p := range pts[1 : n-1] {
		out = append(out, move(p))
	}
	end := jog(pts[n-1], pts[n-2], hJogs, vJogs, spacing)
	slices.Reverse(end)
	out = append(out, end...)
	out = append(out, pts[n-1])
	return core.PathFromPoints(pathfinding.Simplify(out)...)
}

// jog returns the two points that carry a wire from the pin at p onto the
// shifted track of the segment p → next.
func jog(p, next core.Point, hJogs, vJogs map[float64]float64, spacing float64) []core.Point {
	if p.Y == next.Y {
		d := hJogs[p.Y]
		if d == 0 {
			return nil
		}
		x := p.X + direction(next.X-p.X)*min(spacing, abs(next.X-p.X)/3)
		return []core.Point{{X: x, Y: p.Y}, {X: x, Y: p.Y + d}}
	}
	d := vJogs[p.X]
	if d == 0 {
		return nil
	}
	y := p.Y + direction(next.Y-p.Y)*min(spacing, abs(next.Y-p.Y)/3)
	return []core.Point{{X: p.X, Y: y}, {X: p.X + d, Y: y}}
}

func direction(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// laneIndex places a pin among the pins on the same edge of its component,
// centred on zero. Pins without an edge sit on lane zero.
func laneIndex(s *scene.Scene, ep scene.Endpoint) float64 {
	c, ok := s.Component(ep.Component)
	if !ok {
		return 0
	}
	pin, ok := c.Pin(ep.Pin)
	if !ok || pin.Edge == core.EdgeNone {
		return 0
	}
	along := func(p scene.Pin) float64 {
		if p.Edge == core.EdgeLeft || p.Edge == core.EdgeRight {
			return p.Offset.Y
		}
		return p.Offset.X
	}
	var same []float64
	for _, p := range c.Pins {
		if p.Edge == pin.Edge {
			same = append(same, along(p))
		}
	}
	slices.Sort(same)
	return float64(slices.Index(same, along(pin))) - float64(len(same)-1)/2
}

// preferredLane picks the lane of whichever end of w sits further from the
// middle of its edge.
func preferredLane(s *scene.Scene, w scene.Wire) float64 {
	from, to := laneIndex(s, w.From), laneIndex(s, w.To)
	if abs(from) >= abs(to) {
		return from
	}
	return to
}
