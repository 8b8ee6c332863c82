package pathfinding

import (
	"fmt"

	"wired/core"
	"wired/obstacles"
)

// Route is the result of planning one wire.
type Route struct {
	Path     core.WirePath
	Strategy Strategy
	Clear    bool // no segment meets an obstacle
}

// Planner plans wire paths. A Planner holds no per-wire state; the optional
// cache only remembers finished routes.
type Planner struct {
	opts  Options
	cache *PathCache
}

// NewPlanner creates a planner. Zero option fields take their defaults.
func NewPlanner(opts Options) *Planner {
	return &Planner{opts: opts.withDefaults()}
}

// WithCache enables a route cache holding up to size entries.
func (p *Planner) WithCache(size int) *Planner {
	p.cache = NewPathCache(size)
	return p
}

// Options returns the effective options.
func (p *Planner) Options() Options {
	return p.opts
}

// Cache returns the route cache, or nil when caching is off.
func (p *Planner) Cache() *PathCache {
	return p.cache
}

// Plan routes a wire from start to end around the given obstacle rectangles
// using DefaultOptions.
func Plan(start, end core.Point, rects []core.Rect) (Route, error) {
	return NewPlanner(Options{}).Plan(start, end, rects)
}

// Plan routes a wire from start to end around the given obstacle rectangles.
func (p *Planner) Plan(start, end core.Point, rects []core.Rect) (Route, error) {
	return p.PlanIndex(start, end, obstacles.FromRects(rects))
}

// PlanIndex routes a wire from start to end around the obstacles in ix.
// The returned path always starts at start and ends at end. Unroutable
// geometry is not an error: the least-blocked candidate comes back with
// Clear set to false.
func (p *Planner) PlanIndex(start, end core.Point, ix *obstacles.Index) (Route, error) {
	if !start.IsFinite() || !end.IsFinite() {
		return Route{}, fmt.Errorf("plan %v → %v: %w", start, end, ErrNonFinite)
	}
	if start == end {
		return Route{}, fmt.Errorf("plan %v: %w", start, ErrSameEndpoints)
	}

	var key PathCacheKey
	if p.cache != nil {
		key = PathCacheKey{Start: start, End: end, ObstacleHash: HashRects(ix.Rects())}
		if route, ok := p.cache.Get(key); ok {
			return route, nil
		}
	}

	// Always plan left to right so A→B and B→A share geometry.
	from, to := start, end
	reversed := to.X < from.X || (to.X == from.X && to.Y < from.Y)
	if reversed {
		from, to = to, from
	}

	route := p.plan(from, to, ix)
	if reversed {
		route.Path = route.Path.Reverse()
	}

	if p.cache != nil {
		p.cache.Put(key, route)
	}
	return route, nil
}

func (p *Planner) plan(start, end core.Point, ix *obstacles.Index) Route {
	elbows := Elbows(start, end)
	for _, c := range elbows {
		if ix.Clear(c) {
			return Route{Path: c, Strategy: StrategyElbow, Clear: true}
		}
	}

	if path, ok := Detour(start, end, ix, p.opts); ok {
		return Route{Path: path, Strategy: StrategyDetour, Clear: true}
	}

	if path, ok := Explore(start, end, ix, p.opts); ok {
		return Route{Path: path, Strategy: StrategyExplore, Clear: true}
	}

	return Route{Path: bestEffort(start, end, ix), Strategy: StrategyFallback}
}

// bestEffort returns the candidate with the fewest blocked segments.
// Ties keep the earlier candidate, so the horizontal-first elbow wins.
func bestEffort(start, end core.Point, ix *obstacles.Index) core.WirePath {
	candidates := Elbows(start, end)
	if start.X != end.X && start.Y != end.Y {
		candidates = append(candidates, Direct(start, end, MiddleSplit))
	}
	best := candidates[0]
	bestBlocked := ix.BlockedSegments(best)
	for _, c := range candidates[1:] {
		if n := ix.BlockedSegments(c); n < bestBlocked {
			best, bestBlocked = c, n
		}
	}
	return best
}
