package pathfinding

import (
	"wired/core"
)

// Simplify removes repeated points and interior points of straight runs.
// A run that doubles back on itself collapses to its net extent.
func Simplify(points []core.Point) []core.Point {
	out := make([]core.Point, 0, len(points))
	for _, p := range points {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		for len(out) >= 2 && collinear(out[len(out)-2], out[len(out)-1], p) {
			out = out[:len(out)-1]
		}
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	return out
}

func collinear(a, b, c core.Point) bool {
	return (a.X == b.X && b.X == c.X) || (a.Y == b.Y && b.Y == c.Y)
}
