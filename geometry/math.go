// Package geometry provides the segment and rectangle predicates the router is built on.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"

	"wired/core"
)

// ParallelEpsilon is the determinant magnitude below which two segments are
// treated as parallel.
const ParallelEpsilon = 1e-10

// Tolerance is the absolute tolerance used for coordinate comparisons.
const Tolerance = 1e-9

func vec(p core.Point) r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// SegmentIntersection returns the single point where a and b meet.
// Parallel and collinear pairs report no intersection. Endpoints count, so
// segments touching at a corner intersect there.
//
// The result does not depend on argument order: when one segment is vertical
// and the other horizontal the point is built from their exact coordinates.
func SegmentIntersection(a, b core.Segment) (core.Point, bool) {
	p, q := vec(a.Start), vec(b.Start)
	r := r2.Sub(vec(a.End), p)
	s := r2.Sub(vec(b.End), q)

	det := r2.Cross(r, s)
	if math.Abs(det) < ParallelEpsilon {
		return core.Point{}, false
	}

	qp := r2.Sub(q, p)
	t := r2.Cross(qp, s) / det
	u := r2.Cross(qp, r) / det
	if !inUnit(t) || !inUnit(u) {
		return core.Point{}, false
	}

	switch {
	case a.IsVertical() && b.IsHorizontal():
		return core.Point{X: a.Start.X, Y: b.Start.Y}, true
	case a.IsHorizontal() && b.IsVertical():
		return core.Point{X: b.Start.X, Y: a.Start.Y}, true
	}

	// General case: average both parametrisations so swapping the
	// arguments yields the same value.
	pa := r2.Add(p, r2.Scale(t, r))
	pb := r2.Add(q, r2.Scale(u, s))
	return core.Point{X: (pa.X + pb.X) / 2, Y: (pa.Y + pb.Y) / 2}, true
}

func inUnit(t float64) bool {
	return t >= 0 && t <= 1
}

// RectContains reports whether p lies strictly inside r. Points on the
// boundary are outside.
func RectContains(r core.Rect, p core.Point) bool {
	return p.X > r.Left() && p.X < r.Right() &&
		p.Y > r.Top() && p.Y < r.Bottom()
}

// SegmentIntersectsRect reports whether seg enters or touches r: either
// endpoint is strictly inside, or the segment meets one of the four edges.
func SegmentIntersectsRect(seg core.Segment, r core.Rect) bool {
	if RectContains(r, seg.Start) || RectContains(r, seg.End) {
		return true
	}
	for _, e := range r.Edges() {
		if _, ok := SegmentIntersection(seg, e); ok {
			return true
		}
		if collinearOverlap(seg, e) {
			return true
		}
	}
	return false
}

// collinearOverlap reports whether two axis-aligned segments lie on the same
// line and share more than nothing. The determinant test treats these as
// parallel, but a wire running along an obstacle edge is still blocked.
func collinearOverlap(a, b core.Segment) bool {
	switch {
	case a.Orientation() == core.Horizontal && b.Orientation() == core.Horizontal:
		if !scalar.EqualWithinAbs(a.Start.Y, b.Start.Y, Tolerance) {
			return false
		}
		return overlap(a.Start.X, a.End.X, b.Start.X, b.End.X)
	case a.Orientation() == core.Vertical && b.Orientation() == core.Vertical:
		if !scalar.EqualWithinAbs(a.Start.X, b.Start.X, Tolerance) {
			return false
		}
		return overlap(a.Start.Y, a.End.Y, b.Start.Y, b.End.Y)
	}
	return false
}

// SharedRun returns the length along which two axis-aligned segments lie on
// top of each other. Segments that only cross or touch share nothing.
func SharedRun(a, b core.Segment) float64 {
	switch {
	case a.IsHorizontal() && b.IsHorizontal():
		if !scalar.EqualWithinAbs(a.Start.Y, b.Start.Y, Tolerance) {
			return 0
		}
		return span(a.Start.X, a.End.X, b.Start.X, b.End.X)
	case a.IsVertical() && b.IsVertical():
		if !scalar.EqualWithinAbs(a.Start.X, b.Start.X, Tolerance) {
			return 0
		}
		return span(a.Start.Y, a.End.Y, b.Start.Y, b.End.Y)
	}
	return 0
}

func span(a1, a2, b1, b2 float64) float64 {
	lo := math.Max(math.Min(a1, a2), math.Min(b1, b2))
	hi := math.Min(math.Max(a1, a2), math.Max(b1, b2))
	return math.Max(0, hi-lo)
}

func overlap(a1, a2, b1, b2 float64) bool {
	lo := math.Max(math.Min(a1, a2), math.Min(b1, b2))
	hi := math.Min(math.Max(a1, a2), math.Max(b1, b2))
	return hi-lo >= 0
}

// PointOnSegment reports whether p lies on seg, endpoints included.
func PointOnSegment(p core.Point, seg core.Segment) bool {
	d := r2.Sub(vec(seg.End), vec(seg.Start))
	w := r2.Sub(vec(p), vec(seg.Start))
	if !scalar.EqualWithinAbs(r2.Cross(d, w), 0, Tolerance*math.Max(1, r2.Norm(d))) {
		return false
	}
	return p.X >= math.Min(seg.Start.X, seg.End.X)-Tolerance &&
		p.X <= math.Max(seg.Start.X, seg.End.X)+Tolerance &&
		p.Y >= math.Min(seg.Start.Y, seg.End.Y)-Tolerance &&
		p.Y <= math.Max(seg.Start.Y, seg.End.Y)+Tolerance
}

// SamePoint compares two points within Tolerance.
func SamePoint(a, b core.Point) bool {
	return scalar.EqualWithinAbs(a.X, b.X, Tolerance) &&
		scalar.EqualWithinAbs(a.Y, b.Y, Tolerance)
}

// ManhattanDistance calculates the Manhattan distance between two points.
func ManhattanDistance(a, b core.Point) float64 {
	return math.Abs(b.X-a.X) + math.Abs(b.Y-a.Y)
}

// Snap rounds v to the nearest multiple of step. A non-positive step leaves v unchanged.
func Snap(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Round(v/step) * step
}

// Key rounds p to prec decimal places for use as a map key.
func Key(p core.Point, prec int) core.Point {
	return core.Point{X: scalar.Round(p.X, prec), Y: scalar.Round(p.Y, prec)}
}
