package obstacles

import (
	"math"
	"slices"

	"wired/core"
	"wired/geometry"
)

// Index is an immutable snapshot of obstacle rectangles for one planning call.
// Queries are linear scans; scenes hold tens of components, not thousands.
type Index struct {
	items []Obstacle
}

// NewIndex builds an index of every obstacle whose id is not excluded.
// Callers exclude the two components a wire connects so its own pins are
// reachable.
func NewIndex(items []Obstacle, exclude ...string) *Index {
	ix := &Index{items: make([]Obstacle, 0, len(items))}
	for _, o := range items {
		if o.ID != "" && slices.Contains(exclude, o.ID) {
			continue
		}
		if o.Rect.Empty() {
			continue
		}
		ix.items = append(ix.items, o)
	}
	return ix
}

// FromRects builds an index of anonymous rectangles.
func FromRects(rects []core.Rect) *Index {
	items := make([]Obstacle, len(rects))
	for i, r := range rects {
		items[i] = Obstacle{Rect: r}
	}
	return NewIndex(items)
}

// Len returns the number of obstacles.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.items)
}

// Rects returns the obstacle rectangles in insertion order.
func (ix *Index) Rects() []core.Rect {
	if ix == nil {
		return nil
	}
	out := make([]core.Rect, len(ix.items))
	for i, o := range ix.items {
		out[i] = o.Rect
	}
	return out
}

// Obstacles returns a copy of the indexed obstacles.
func (ix *Index) Obstacles() []Obstacle {
	if ix == nil {
		return nil
	}
	return slices.Clone(ix.items)
}

// Blocked reports whether any obstacle meets seg.
func (ix *Index) Blocked(seg core.Segment) bool {
	if ix == nil {
		return false
	}
	for _, o := range ix.items {
		if geometry.SegmentIntersectsRect(seg, o.Rect) {
			return true
		}
	}
	return false
}

// ContainsPoint reports whether p is strictly inside any obstacle.
func (ix *Index) ContainsPoint(p core.Point) bool {
	if ix == nil {
		return false
	}
	for _, o := range ix.items {
		if geometry.RectContains(o.Rect, p) {
			return true
		}
	}
	return false
}

// BlockedSegments counts the segments of path that meet an obstacle.
func (ix *Index) BlockedSegments(path core.WirePath) int {
	n := 0
	for _, s := range path.Segments {
		if ix.Blocked(s) {
			n++
		}
	}
	return n
}

// Clear reports whether no segment of path meets an obstacle.
func (ix *Index) Clear(path core.WirePath) bool {
	for _, s := range path.Segments {
		if ix.Blocked(s) {
			return false
		}
	}
	return true
}

// FirstHit returns the obstacle met earliest travelling from seg.Start to
// seg.End. Equal distances resolve to the earlier inserted obstacle.
func (ix *Index) FirstHit(seg core.Segment) (Hit, bool) {
	if ix == nil {
		return Hit{}, false
	}
	best := Hit{Distance: math.Inf(1)}
	found := false
	for i, o := range ix.items {
		if !geometry.SegmentIntersectsRect(seg, o.Rect) {
			continue
		}
		p := entryPoint(seg, o.Rect)
		d := geometry.ManhattanDistance(seg.Start, p)
		if d < best.Distance {
			best = Hit{Index: i, ID: o.ID, Rect: o.Rect, Point: p, Distance: d}
			found = true
		}
	}
	return best, found
}

// entryPoint finds where seg first touches r. seg must meet r.
func entryPoint(seg core.Segment, r core.Rect) core.Point {
	if geometry.RectContains(r, seg.Start) {
		return seg.Start
	}
	switch {
	case seg.IsHorizontal():
		x := math.Max(seg.Start.X, r.Left())
		if seg.End.X < seg.Start.X {
			x = math.Min(seg.Start.X, r.Right())
		}
		return core.Point{X: x, Y: seg.Start.Y}
	case seg.IsVertical():
		y := math.Max(seg.Start.Y, r.Top())
		if seg.End.Y < seg.Start.Y {
			y = math.Min(seg.Start.Y, r.Bottom())
		}
		return core.Point{X: seg.Start.X, Y: y}
	}

	best := seg.End
	bestD := math.Inf(1)
	for _, e := range r.Edges() {
		if p, ok := geometry.SegmentIntersection(seg, e); ok {
			if d := geometry.ManhattanDistance(seg.Start, p); d < bestD {
				best, bestD = p, d
			}
		}
	}
	return best
}
