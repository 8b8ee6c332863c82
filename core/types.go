// Package core contains the fundamental types used throughout the wired routing engine.
//
// Coordinates are scene units (pixels on screen at scale 1). The origin is
// top-left, X grows rightward and Y grows downward.
package core

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Path validation errors.
var (
	ErrEmptyPath     = errors.New("wire path has no segments")
	ErrDiagonal      = errors.New("segment is neither horizontal nor vertical")
	ErrZeroLength    = errors.New("segment has zero length")
	ErrDiscontinuous = errors.New("consecutive segments are not contiguous")
)

// Point represents a 2D coordinate in the scene.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Orientation is the axis a segment runs along.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// String returns the string representation of an Orientation.
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Perpendicular returns the other axis.
func (o Orientation) Perpendicular() Orientation {
	if o == Horizontal {
		return Vertical
	}
	return Horizontal
}

// Edge is the side of a component a pin sits on.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeLeft
	EdgeRight
	EdgeTop
	EdgeBottom
)

// String returns the string representation of an Edge.
func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	default:
		return "none"
	}
}

// Opposite returns the opposite edge.
func (e Edge) Opposite() Edge {
	switch e {
	case EdgeLeft:
		return EdgeRight
	case EdgeRight:
		return EdgeLeft
	case EdgeTop:
		return EdgeBottom
	case EdgeBottom:
		return EdgeTop
	default:
		return e
	}
}

// Normal returns the outward unit vector of the edge, or the zero point for EdgeNone.
func (e Edge) Normal() Point {
	switch e {
	case EdgeLeft:
		return Point{X: -1}
	case EdgeRight:
		return Point{X: 1}
	case EdgeTop:
		return Point{Y: -1}
	case EdgeBottom:
		return Point{Y: 1}
	default:
		return Point{}
	}
}

// ParseEdge converts a name such as "left" into an Edge. The empty string is EdgeNone.
func ParseEdge(s string) (Edge, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return EdgeNone, nil
	case "left":
		return EdgeLeft, nil
	case "right":
		return EdgeRight, nil
	case "top":
		return EdgeTop, nil
	case "bottom":
		return EdgeBottom, nil
	default:
		return EdgeNone, fmt.Errorf("unknown pin edge %q", s)
	}
}

// Rect is an axis-aligned rectangle: origin plus size.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// R is shorthand for Rect{x, y, w, h}.
func R(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Empty reports whether the rectangle encloses no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Expand grows the rectangle by margin on every side.
func (r Rect) Expand(margin float64) Rect {
	return Rect{
		X:      r.X - margin,
		Y:      r.Y - margin,
		Width:  r.Width + 2*margin,
		Height: r.Height + 2*margin,
	}
}

// Corners returns the corners clockwise from top-left.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{X: r.Left(), Y: r.Top()},
		{X: r.Right(), Y: r.Top()},
		{X: r.Right(), Y: r.Bottom()},
		{X: r.Left(), Y: r.Bottom()},
	}
}

// Edges returns the four boundary segments: top, right, bottom, left.
func (r Rect) Edges() [4]Segment {
	c := r.Corners()
	return [4]Segment{
		{Start: c[0], End: c[1]},
		{Start: c[1], End: c[2]},
		{Start: c[2], End: c[3]},
		{Start: c[3], End: c[0]},
	}
}

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	minX := math.Min(r.Left(), o.Left())
	minY := math.Min(r.Top(), o.Top())
	maxX := math.Max(r.Right(), o.Right())
	maxY := math.Max(r.Bottom(), o.Bottom())
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect(%g,%g,%g,%g)", r.X, r.Y, r.Width, r.Height)
}

// Segment is a straight piece of wire from Start to End.
// Routed segments are always horizontal or vertical.
type Segment struct {
	Start, End Point
}

// Seg is shorthand for a segment between two points.
func Seg(x1, y1, x2, y2 float64) Segment {
	return Segment{Start: Point{X: x1, Y: y1}, End: Point{X: x2, Y: y2}}
}

// IsHorizontal reports whether the segment runs along the X axis.
func (s Segment) IsHorizontal() bool {
	return s.Start.Y == s.End.Y && s.Start.X != s.End.X
}

// IsVertical reports whether the segment runs along the Y axis.
func (s Segment) IsVertical() bool {
	return s.Start.X == s.End.X && s.Start.Y != s.End.Y
}

// IsZero reports whether start and end coincide.
func (s Segment) IsZero() bool {
	return s.Start == s.End
}

// Orientation returns Horizontal for segments with constant Y, Vertical otherwise.
func (s Segment) Orientation() Orientation {
	if s.Start.Y == s.End.Y {
		return Horizontal
	}
	return Vertical
}

// Length returns the Manhattan length of the segment.
func (s Segment) Length() float64 {
	return math.Abs(s.End.X-s.Start.X) + math.Abs(s.End.Y-s.Start.Y)
}

// Reverse returns the segment traversed in the opposite direction.
func (s Segment) Reverse() Segment {
	return Segment{Start: s.End, End: s.Start}
}

// Bounds returns the (possibly degenerate) bounding box of the segment.
func (s Segment) Bounds() Rect {
	minX := math.Min(s.Start.X, s.End.X)
	minY := math.Min(s.Start.Y, s.End.Y)
	return Rect{
		X:      minX,
		Y:      minY,
		Width:  math.Abs(s.End.X - s.Start.X),
		Height: math.Abs(s.End.Y - s.Start.Y),
	}
}

func (s Segment) String() string {
	return s.Start.String() + "-" + s.End.String()
}

// WirePath is the ordered list of segments forming one routed wire.
type WirePath struct {
	Segments []Segment
}

// PathFromPoints builds a path through the given points, dropping repeated points.
func PathFromPoints(points ...Point) WirePath {
	var segs []Segment
	for i := 0; i+1 < len(points); i++ {
		s := Segment{Start: points[i], End: points[i+1]}
		if s.IsZero() {
			continue
		}
		segs = append(segs, s)
	}
	return WirePath{Segments: segs}
}

// IsEmpty returns true if the path has no segments.
func (w WirePath) IsEmpty() bool {
	return len(w.Segments) == 0
}

// Len returns the number of segments.
func (w WirePath) Len() int {
	return len(w.Segments)
}

// Start returns the first point of the path.
func (w WirePath) Start() Point {
	if w.IsEmpty() {
		return Point{}
	}
	return w.Segments[0].Start
}

// End returns the last point of the path.
func (w WirePath) End() Point {
	if w.IsEmpty() {
		return Point{}
	}
	return w.Segments[len(w.Segments)-1].End
}

// Points returns the vertices of the path: start, every corner, end.
func (w WirePath) Points() []Point {
	if w.IsEmpty() {
		return nil
	}
	pts := make([]Point, 0, len(w.Segments)+1)
	pts = append(pts, w.Segments[0].Start)
	for _, s := range w.Segments {
		pts = append(pts, s.End)
	}
	return pts
}

// Length returns the total Manhattan length of the path.
func (w WirePath) Length() float64 {
	total := 0.0
	for _, s := range w.Segments {
		total += s.Length()
	}
	return total
}

// Reverse returns the path traversed from end to start.
func (w WirePath) Reverse() WirePath {
	out := make([]Segment, len(w.Segments))
	for i, s := range w.Segments {
		out[len(w.Segments)-1-i] = s.Reverse()
	}
	return WirePath{Segments: out}
}

// Bounds returns the bounding box of every segment.
func (w WirePath) Bounds() Rect {
	if w.IsEmpty() {
		return Rect{}
	}
	b := w.Segments[0].Bounds()
	for _, s := range w.Segments[1:] {
		b = b.Union(s.Bounds())
	}
	return b
}

// Equal reports whether both paths have exactly the same segments.
func (w WirePath) Equal(o WirePath) bool {
	if len(w.Segments) != len(o.Segments) {
		return false
	}
	for i := range w.Segments {
		if w.Segments[i] != o.Segments[i] {
			return false
		}
	}
	return true
}

// Validate checks the path invariants: non-empty, orthogonal, no zero-length
// segments and contiguous endpoints.
func (w WirePath) Validate() error {
	if w.IsEmpty() {
		return ErrEmptyPath
	}
	for i, s := range w.Segments {
		if s.IsZero() {
			return fmt.Errorf("segment %d %v: %w", i, s, ErrZeroLength)
		}
		if !s.IsHorizontal() && !s.IsVertical() {
			return fmt.Errorf("segment %d %v: %w", i, s, ErrDiagonal)
		}
		if i > 0 && w.Segments[i-1].End != s.Start {
			return fmt.Errorf("segments %d and %d: %w", i-1, i, ErrDiscontinuous)
		}
	}
	return nil
}

// String returns a compact representation for debugging.
func (w WirePath) String() string {
	if w.IsEmpty() {
		return "empty path"
	}
	var sb strings.Builder
	for i, p := range w.Points() {
		if i > 0 {
			sb.WriteString(" → ")
		}
		sb.WriteString(p.String())
	}
	return sb.String()
}
