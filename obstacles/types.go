// Package obstacles holds the per-plan snapshot of component rectangles a wire must avoid.
package obstacles

import (
	"wired/core"
)

// Obstacle is a rectangle owned by a component.
type Obstacle struct {
	ID   string // component id; may be empty for anonymous rects
	Rect core.Rect
}

// Hit describes the first obstacle met along a segment.
type Hit struct {
	Index    int        // position in the index, insertion order
	ID       string     // owning component id
	Rect     core.Rect  // obstacle bounds
	Point    core.Point // where the segment enters the obstacle
	Distance float64    // distance from the segment start to Point
}

// Inflate returns r grown by margin on every side. It is the clearance box
// detours are routed around.
func Inflate(r core.Rect, margin float64) core.Rect {
	return r.Expand(margin)
}
