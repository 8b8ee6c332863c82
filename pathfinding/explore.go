package pathfinding

import (
	"math"
	"slices"

	"wired/core"
	"wired/geometry"
	"wired/obstacles"
)

// keyPrecision is the number of decimals kept when keying visited points.
const keyPrecision = 6

// frame is one entry of the exploration stack.
type frame struct {
	p     core.Point
	cands []core.Point
	next  int
}

// explorer runs an iterative depth-first search over axis-aligned moves.
type explorer struct {
	ix      *obstacles.Index
	end     core.Point
	opts    Options
	visited map[core.Point]bool
	expand  int
}

// Explore searches for a clear path with a depth-first walk. Long jumps
// toward the target are tried before single grid steps. Visited points are
// never revisited, and the walk stops after opts.MaxExpansions expansions or
// opts.MaxDepth moves on one branch.
func Explore(start, end core.Point, ix *obstacles.Index, opts Options) (core.WirePath, bool) {
	opts = opts.withDefaults()
	e := &explorer{
		ix:      ix,
		end:     end,
		opts:    opts,
		visited: make(map[core.Point]bool),
	}
	points, ok := e.run(start)
	if !ok {
		return core.WirePath{}, false
	}
	path := core.PathFromPoints(Simplify(points)...)
	if !ix.Clear(path) {
		return core.WirePath{}, false
	}
	return path, true
}

func (e *explorer) run(start core.Point) ([]core.Point, bool) {
	if e.ix.ContainsPoint(start) || e.ix.ContainsPoint(e.end) {
		return nil, false
	}
	e.visited[geometry.Key(start, keyPrecision)] = true
	stack := []frame{{p: start}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if e.reachesEnd(top.p) {
			points := make([]core.Point, 0, len(stack)+1)
			for _, f := range stack {
				points = append(points, f.p)
			}
			return append(points, e.end), true
		}

		if len(stack) > e.opts.MaxDepth {
			stack = stack[:len(stack)-1]
			continue
		}
		if top.cands == nil {
			top.cands = e.candidates(top.p)
		}
		if top.next >= len(top.cands) {
			stack = stack[:len(stack)-1]
			continue
		}

		c := top.cands[top.next]
		top.next++
		k := geometry.Key(c, keyPrecision)
		if e.visited[k] {
			continue
		}
		if e.ix.Blocked(core.Segment{Start: top.p, End: c}) {
			continue
		}
		e.visited[k] = true
		e.expand++
		if e.expand > e.opts.MaxExpansions {
			return nil, false
		}
		stack = append(stack, frame{p: c})
	}
	return nil, false
}

// reachesEnd reports whether p is the end or sees it along a clear straight line.
func (e *explorer) reachesEnd(p core.Point) bool {
	if p == e.end {
		return true
	}
	if p.X != e.end.X && p.Y != e.end.Y {
		return false
	}
	return !e.ix.Blocked(core.Segment{Start: p, End: e.end})
}

// candidates lists the moves from p in the order they are tried.
func (e *explorer) candidates(p core.Point) []core.Point {
	var out []core.Point
	add := func(c core.Point) {
		if c != p && !slices.Contains(out, c) {
			out = append(out, c)
		}
	}

	for _, target := range []core.Point{
		{X: e.end.X, Y: p.Y},
		{X: p.X, Y: e.end.Y},
	} {
		if target == p {
			continue
		}
		if jump, ok := e.jump(p, target); ok {
			add(jump)
		}
	}

	step := e.opts.GridStep
	steps := []core.Point{
		{X: p.X + step, Y: p.Y},
		{X: p.X, Y: p.Y + step},
		{X: p.X - step, Y: p.Y},
		{X: p.X, Y: p.Y - step},
	}
	slices.SortStableFunc(steps, func(a, b core.Point) int {
		da := geometry.ManhattanDistance(a, e.end)
		db := geometry.ManhattanDistance(b, e.end)
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})
	for _, s := range steps {
		add(s)
	}
	return out
}

// jump returns the farthest reachable point from p toward target: target
// itself when the way is clear, otherwise the last whole grid step before the
// first obstacle.
func (e *explorer) jump(p, target core.Point) (core.Point, bool) {
	seg := core.Segment{Start: p, End: target}
	hit, ok := e.ix.FirstHit(seg)
	if !ok {
		return target, true
	}
	n := math.Ceil(hit.Distance/e.opts.GridStep) - 1
	if n < 1 {
		return core.Point{}, false
	}
	d := n * e.opts.GridStep
	length := seg.Length()
	return core.Point{
		X: p.X + (target.X-p.X)/length*d,
		Y: p.Y + (target.Y-p.Y)/length*d,
	}, true
}
