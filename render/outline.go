package render

import (
	"math"
	"slices"

	"wired/bumps"
	"wired/core"
)

// DefaultBumpRadius is the hop radius in scene units.
const DefaultBumpRadius = 8.0

// kappa places cubic control points so a quarter arc approximates a circle.
const kappa = 0.5522847498

// OpKind is a drawing instruction.
type OpKind int

const (
	MoveTo OpKind = iota
	LineTo
	CubeTo
)

// Op is one drawing instruction. MoveTo and LineTo use Pts[0]; CubeTo uses
// two control points then the end point.
type Op struct {
	Kind OpKind
	Pts  [3]core.Point
}

// End returns the point the pen rests on after the op.
func (o Op) End() core.Point {
	if o.Kind == CubeTo {
		return o.Pts[2]
	}
	return o.Pts[0]
}

// hop is a semicircular notch on one segment, measured along its axis.
type hop struct {
	center float64
	radius float64
}

// Outline converts a path and the bumps it owns into drawing ops. The path
// is followed exactly except around each bump, where a semicircle of the
// given radius replaces the straight run: above the crossing on horizontal
// segments, left of it on vertical ones. Hops shrink to fit their segment and
// hops that overlap merge into one wider hop.
func Outline(path core.WirePath, owned []bumps.Bump, radius float64) []Op {
	if path.IsEmpty() {
		return nil
	}
	if radius <= 0 {
		radius = DefaultBumpRadius
	}

	bySegment := make(map[int][]bumps.Bump)
	for _, b := range owned {
		if b.Segment >= 0 && b.Segment < path.Len() {
			bySegment[b.Segment] = append(bySegment[b.Segment], b)
		}
	}

	ops := []Op{{Kind: MoveTo, Pts: [3]core.Point{path.Start()}}}
	for i, s := range path.Segments {
		for _, h := range hops(s, bySegment[i], radius) {
			ops = append(ops, arc(s, h)...)
		}
		ops = append(ops, Op{Kind: LineTo, Pts: [3]core.Point{s.End}})
	}
	return ops
}

// axis returns the travelling coordinate of p on s and the direction of travel.
func axis(s core.Segment, p core.Point) (float64, float64) {
	if s.Orientation() == core.Horizontal {
		return p.X, math.Copysign(1, s.End.X-s.Start.X)
	}
	return p.Y, math.Copysign(1, s.End.Y-s.Start.Y)
}

// hops lays out the notches of one segment in travel order.
func hops(s core.Segment, owned []bumps.Bump, radius float64) []hop {
	if len(owned) == 0 {
		return nil
	}
	start, dir := axis(s, s.Start)
	end, _ := axis(s, s.End)

	var out []hop
	for _, b := range owned {
		c, _ := axis(s, b.Point)
		r := math.Min(radius, math.Min(math.Abs(c-start), math.Abs(end-c)))
		if r <= 0 {
			continue
		}
		out = append(out, hop{center: c, radius: r})
	}

	// Travel order: ascending along dir.
	slices.SortFunc(out, func(a, b hop) int {
		switch {
		case a.center*dir < b.center*dir:
			return -1
		case a.center*dir > b.center*dir:
			return 1
		}
		return 0
	})

	merged := out[:0]
	for _, h := range out {
		if n := len(merged); n > 0 {
			prev := merged[n-1]
			if math.Abs(h.center-prev.center) < prev.radius+h.radius {
				lo := math.Min(prev.center-prev.radius, h.center-h.radius)
				hi := math.Max(prev.center+prev.radius, h.center+h.radius)
				merged[n-1] = hop{center: (lo + hi) / 2, radius: (hi - lo) / 2}
				continue
			}
		}
		merged = append(merged, h)
	}
	return merged
}

// arc returns a line to the hop entry followed by two quarter arcs.
func arc(s core.Segment, h hop) []Op {
	_, dir := axis(s, s.Start)
	r, k := h.radius, h.radius*kappa
	c := h.center

	if s.Orientation() == core.Horizontal {
		y := s.Start.Y
		entry := core.Point{X: c - dir*r, Y: y}
		top := core.Point{X: c, Y: y - r}
		exit := core.Point{X: c + dir*r, Y: y}
		return []Op{
			{Kind: LineTo, Pts: [3]core.Point{entry}},
			{Kind: CubeTo, Pts: [3]core.Point{{X: entry.X, Y: y - k}, {X: c - dir*k, Y: top.Y}, top}},
			{Kind: CubeTo, Pts: [3]core.Point{{X: c + dir*k, Y: top.Y}, {X: exit.X, Y: y - k}, exit}},
		}
	}

	x := s.Start.X
	entry := core.Point{X: x, Y: c - dir*r}
	left := core.Point{X: x - r, Y: c}
	exit := core.Point{X: x, Y: c + dir*r}
	return []Op{
		{Kind: LineTo, Pts: [3]core.Point{entry}},
		{Kind: CubeTo, Pts: [3]core.Point{{X: x - k, Y: entry.Y}, {X: left.X, Y: c - dir*k}, left}},
		{Kind: CubeTo, Pts: [3]core.Point{{X: left.X, Y: c + dir*k}, {X: x - k, Y: exit.Y}, exit}},
	}
}

// Flatten approximates ops as polylines, one per MoveTo. Each cubic becomes
// steps straight pieces.
func Flatten(ops []Op, steps int) [][]core.Point {
	if steps < 1 {
		steps = 1
	}
	var out [][]core.Point
	var cur []core.Point
	for _, op := range ops {
		switch op.Kind {
		case MoveTo:
			if len(cur) > 1 {
				out = append(out, cur)
			}
			cur = []core.Point{op.Pts[0]}
		case LineTo:
			cur = append(cur, op.Pts[0])
		case CubeTo:
			if len(cur) == 0 {
				continue
			}
			p0 := cur[len(cur)-1]
			for i := 1; i <= steps; i++ {
				cur = append(cur, cubicAt(p0, op.Pts[0], op.Pts[1], op.Pts[2], float64(i)/float64(steps)))
			}
		}
	}
	if len(cur) > 1 {
		out = append(out, cur)
	}
	return out
}

func cubicAt(p0, p1, p2, p3 core.Point, t float64) core.Point {
	u := 1 - t
	a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return core.Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}
