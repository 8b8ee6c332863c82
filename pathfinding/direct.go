package pathfinding

import (
	"fmt"

	"wired/core"
)

// RoutingStrategy defines how a direct path turns.
type RoutingStrategy int

const (
	// HorizontalFirst routes horizontally then vertically.
	HorizontalFirst RoutingStrategy = iota
	// VerticalFirst routes vertically then horizontally.
	VerticalFirst
	// MiddleSplit turns twice, halfway along the wider axis.
	MiddleSplit
)

// String returns the string representation of a RoutingStrategy.
func (r RoutingStrategy) String() string {
	switch r {
	case HorizontalFirst:
		return "HorizontalFirst"
	case VerticalFirst:
		return "VerticalFirst"
	case MiddleSplit:
		return "MiddleSplit"
	default:
		return fmt.Sprintf("RoutingStrategy(%d)", int(r))
	}
}

// Direct returns the obstacle-blind path from start to end for a strategy.
// Aligned endpoints always give one straight segment.
func Direct(start, end core.Point, strategy RoutingStrategy) core.WirePath {
	if start.X == end.X || start.Y == end.Y {
		return core.PathFromPoints(start, end)
	}

	switch strategy {
	case VerticalFirst:
		return core.PathFromPoints(start, core.Point{X: start.X, Y: end.Y}, end)
	case MiddleSplit:
		dx := end.X - start.X
		dy := end.Y - start.Y
		if abs(dx) > abs(dy) {
			midX := start.X + dx/2
			return core.PathFromPoints(start,
				core.Point{X: midX, Y: start.Y},
				core.Point{X: midX, Y: end.Y},
				end)
		}
		midY := start.Y + dy/2
		return core.PathFromPoints(start,
			core.Point{X: start.X, Y: midY},
			core.Point{X: end.X, Y: midY},
			end)
	default:
		return core.PathFromPoints(start, core.Point{X: end.X, Y: start.Y}, end)
	}
}

// Elbows returns the single-corner candidates in preference order:
// horizontal-first then vertical-first. Aligned endpoints yield one straight path.
func Elbows(start, end core.Point) []core.WirePath {
	if start.X == end.X || start.Y == end.Y {
		return []core.WirePath{core.PathFromPoints(start, end)}
	}
	return []core.WirePath{
		Direct(start, end, HorizontalFirst),
		Direct(start, end, VerticalFirst),
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
