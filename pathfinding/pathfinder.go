// Package pathfinding plans orthogonal wire paths between two points around
// rectangular obstacles.
//
// Planning runs a fixed ladder of strategies and stops at the first one that
// produces a fully clear path:
//
//  1. a single elbow (horizontal-first, then vertical-first)
//  2. a detour around the clearance box of the first obstacle hit
//  3. a bounded depth-first exploration on a step grid
//  4. the least-blocked candidate, so a path is always returned
package pathfinding

import (
	"errors"
)

// Errors returned for malformed planning input.
var (
	ErrSameEndpoints = errors.New("start and end are the same point")
	ErrNonFinite     = errors.New("endpoint coordinate is not finite")
)

// Options tunes the planner. Zero fields take their DefaultOptions value.
type Options struct {
	Clearance     float64 // Gap kept between a detour and the obstacle it avoids
	GridStep      float64 // Step size of the exploration grid
	MaxDepth      int     // Detour expansion budget and exploration path length bound
	MaxExpansions int     // Hard cap on exploration node expansions
}

// DefaultOptions returns the settings used by the editor.
func DefaultOptions() Options {
	return Options{
		Clearance:     20,
		GridStep:      10,
		MaxDepth:      100,
		MaxExpansions: 20000,
	}
}

// withDefaults fills zero fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Clearance <= 0 {
		o.Clearance = d.Clearance
	}
	if o.GridStep <= 0 {
		o.GridStep = d.GridStep
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = d.MaxDepth
	}
	if o.MaxExpansions <= 0 {
		o.MaxExpansions = d.MaxExpansions
	}
	return o
}

// Strategy identifies which planning stage produced a route.
type Strategy int

const (
	StrategyElbow Strategy = iota
	StrategyDetour
	StrategyExplore
	StrategyFallback
)

// String returns the string representation of a Strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyElbow:
		return "elbow"
	case StrategyDetour:
		return "detour"
	case StrategyExplore:
		return "explore"
	case StrategyFallback:
		return "fallback"
	default:
		return "unknown"
	}
}
