package pathfinding

import (
	"wired/core"
	"wired/obstacles"
)

// detourer routes around obstacles by inserting waypoints on the corners of
// their clearance boxes. Every leg is routed recursively, all legs share one
// expansion budget.
type detourer struct {
	ix        *obstacles.Index
	clearance float64
	budget    int
	used      map[core.Point]bool
}

func newDetourer(ix *obstacles.Index, opts Options) *detourer {
	return &detourer{
		ix:        ix,
		clearance: opts.Clearance,
		budget:    opts.MaxDepth,
		used:      make(map[core.Point]bool),
	}
}

// Detour plans a path from start to end that steps around each obstacle
// it meets. It reports false when the budget runs out before every leg is clear.
func Detour(start, end core.Point, ix *obstacles.Index, opts Options) (core.WirePath, bool) {
	d := newDetourer(ix, opts.withDefaults())
	points, ok := d.route(start, end)
	if !ok {
		return core.WirePath{}, false
	}
	path := core.PathFromPoints(Simplify(points)...)
	if !ix.Clear(path) {
		return core.WirePath{}, false
	}
	return path, true
}

func (d *detourer) route(a, b core.Point) ([]core.Point, bool) {
	if a == b {
		return []core.Point{a}, true
	}
	if d.budget <= 0 {
		return nil, false
	}
	d.budget--

	candidates := Elbows(a, b)
	for _, c := range candidates {
		if d.ix.Clear(c) {
			return c.Points(), true
		}
	}

	seg, hit, ok := d.firstHit(candidates[0])
	if !ok {
		return nil, false
	}
	box := obstacles.Inflate(hit.Rect, d.clearance)

	for _, corners := range d.waypoints(seg, box, a, b) {
		if d.used[corners[0]] || d.used[corners[1]] {
			continue
		}
		if d.ix.ContainsPoint(corners[0]) || d.ix.ContainsPoint(corners[1]) {
			continue
		}
		d.used[corners[0]] = true
		d.used[corners[1]] = true

		if points, ok := d.legs(a, corners[0], corners[1], b); ok {
			return points, true
		}
		if d.budget <= 0 {
			break
		}
	}
	return nil, false
}

// legs routes a → w1 → w2 → b and joins the pieces.
func (d *detourer) legs(a, w1, w2, b core.Point) ([]core.Point, bool) {
	stops := []core.Point{a, w1, w2, b}
	var out []core.Point
	for i := 0; i+1 < len(stops); i++ {
		piece, ok := d.route(stops[i], stops[i+1])
		if !ok {
			return nil, false
		}
		if len(out) > 0 {
			piece = piece[1:]
		}
		out = append(out, piece...)
	}
	return out, true
}

// firstHit finds the first blocked segment of path and the obstacle blocking it.
func (d *detourer) firstHit(path core.WirePath) (core.Segment, obstacles.Hit, bool) {
	for _, s := range path.Segments {
		if hit, ok := d.ix.FirstHit(s); ok {
			return s, hit, true
		}
	}
	return core.Segment{}, obstacles.Hit{}, false
}

// waypoints returns the corner pairs of box that carry a wire travelling
// along seg past the obstacle: the near side first, then the far side, on the
// lateral side facing b. The other lateral side follows as a second choice.
func (d *detourer) waypoints(seg core.Segment, box core.Rect, a, b core.Point) [][2]core.Point {
	center := box.Center()

	if seg.Orientation() == core.Horizontal {
		nearX, farX := box.Left(), box.Right()
		if seg.End.X < seg.Start.X {
			nearX, farX = farX, nearX
		}
		first, second := box.Top(), box.Bottom()
		if preferHigh(b.Y, a.Y, center.Y, box.Top(), box.Bottom()) {
			first, second = second, first
		}
		return [][2]core.Point{
			{{X: nearX, Y: first}, {X: farX, Y: first}},
			{{X: nearX, Y: second}, {X: farX, Y: second}},
		}
	}

	nearY, farY := box.Top(), box.Bottom()
	if seg.End.Y < seg.Start.Y {
		nearY, farY = farY, nearY
	}
	first, second := box.Left(), box.Right()
	if preferHigh(b.X, a.X, center.X, box.Left(), box.Right()) {
		first, second = second, first
	}
	return [][2]core.Point{
		{{X: first, Y: nearY}, {X: first, Y: farY}},
		{{X: second, Y: nearY}, {X: second, Y: farY}},
	}
}

// preferHigh decides whether to pass on the high-coordinate side of an
// obstacle: toward the target when it lies off-center, otherwise the side
// nearer the current position, and the low side on a full tie.
func preferHigh(target, current, center, low, high float64) bool {
	switch {
	case target > center:
		return true
	case target < center:
		return false
	}
	return abs(current-high) < abs(current-low)
}
