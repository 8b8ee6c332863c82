// Package canvas provides a character grid for drawing wires and components as text.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"strings"
)

// Common errors
var (
	ErrOutOfBounds = errors.New("position out of bounds")
	ErrInvalidSize = errors.New("invalid canvas size")
)

// MatrixCanvas is a grid of character cells, (0,0) at the top-left with y
// growing downward like scene coordinates. Lines drawn over each other
// merge into junction glyphs through a CharacterMerger.
type MatrixCanvas struct {
	matrix [][]rune
	width  int
	height int
	merger *CharacterMerger
}

// NewMatrixCanvas creates a new canvas with the specified dimensions.
func NewMatrixCanvas(width, height int) (*MatrixCanvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, ErrInvalidSize)
	}

	matrix := make([][]rune, height)
	for y := range matrix {
		matrix[y] = []rune(strings.Repeat(" ", width))
	}

	return &MatrixCanvas{
		matrix: matrix,
		width:  width,
		height: height,
		merger: NewCharacterMerger(),
	}, nil
}

// Size returns the width and height of the canvas.
func (c *MatrixCanvas) Size() (width, height int) {
	return c.width, c.height
}

func (c *MatrixCanvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// Get returns the character at the given position.
// Returns ' ' (space) if position is out of bounds.
func (c *MatrixCanvas) Get(x, y int) rune {
	if !c.inBounds(x, y) {
		return ' '
	}
	return c.matrix[y][x]
}

// Set merges a character into the given position.
func (c *MatrixCanvas) Set(x, y int, char rune) error {
	if !c.inBounds(x, y) {
		return ErrOutOfBounds
	}
	c.matrix[y][x] = c.merger.Merge(c.matrix[y][x], char)
	return nil
}

// Overlay replaces the character at the given position without merging.
func (c *MatrixCanvas) Overlay(x, y int, char rune) error {
	if !c.inBounds(x, y) {
		return ErrOutOfBounds
	}
	c.matrix[y][x] = char
	return nil
}

// String returns the canvas as text, one line per row, trailing spaces trimmed.
func (c *MatrixCanvas) String() string {
	var sb strings.Builder
	sb.Grow(c.height * (c.width + 1))

	for y := 0; y < c.height; y++ {
		line := make([]rune, 0, c.width)
		for _, r := range c.matrix[y] {
			if r == '\x00' {
				// Wide character continuation
				continue
			}
			line = append(line, r)
		}
		sb.WriteString(strings.TrimRight(string(line), " "))
		if y < c.height-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

// DrawBox draws a rectangle with the specified style. Parts outside the
// canvas are clipped.
func (c *MatrixCanvas) DrawBox(x, y, width, height int, style BoxStyle) error {
	if width < 2 || height < 2 {
		return fmt.Errorf("box %dx%d: %w", width, height, ErrInvalidSize)
	}
	right, bottom := x+width-1, y+height-1

	for i := x + 1; i < right; i++ {
		c.Set(i, y, style.Horizontal)
		c.Set(i, bottom, style.Horizontal)
	}
	for j := y + 1; j < bottom; j++ {
		c.Set(x, j, style.Vertical)
		c.Set(right, j, style.Vertical)
	}
	c.Set(x, y, style.TopLeft)
	c.Set(right, y, style.TopRight)
	c.Set(x, bottom, style.BottomLeft)
	c.Set(right, bottom, style.BottomRight)
	return nil
}

// DrawPolyline draws an orthogonal polyline with corner glyphs at every turn.
// Consecutive points must share a row or a column.
func (c *MatrixCanvas) DrawPolyline(points []image.Point) error {
	if len(points) < 2 {
		return fmt.Errorf("polyline must have at least 2 points")
	}
	for i := 0; i+1 < len(points); i++ {
		p1, p2 := points[i], points[i+1]
		if p1.X != p2.X && p1.Y != p2.Y {
			return fmt.Errorf("segment %v-%v is diagonal", p1, p2)
		}
	}

	for i := 0; i+1 < len(points); i++ {
		p1, p2 := points[i], points[i+1]
		switch {
		case p1.Y == p2.Y && p1.X != p2.X:
			lo, hi := min(p1.X, p2.X), max(p1.X, p2.X)
			for x := lo + 1; x < hi; x++ {
				c.Set(x, p1.Y, '─')
			}
		case p1.X == p2.X && p1.Y != p2.Y:
			lo, hi := min(p1.Y, p2.Y), max(p1.Y, p2.Y)
			for y := lo + 1; y < hi; y++ {
				c.Set(p1.X, y, '│')
			}
		}
	}

	for i, p := range points {
		var in, out image.Point
		if i > 0 {
			in = points[i-1]
		} else {
			in = p
		}
		if i+1 < len(points) {
			out = points[i+1]
		} else {
			out = p
		}
		a := armsToward(p, in) | armsToward(p, out)
		if a == 0 {
			continue
		}
		// A path end landing on another line joins it as a T.
		if (i == 0 || i == len(points)-1) && !c.merger.IsLineGlyph(c.Get(p.X, p.Y)) {
			a = terminalArms(a)
		}
		c.Set(p.X, p.Y, lightGlyphs[a])
	}
	return nil
}

// armsToward returns the arm of p pointing at q, or 0 when they coincide.
func armsToward(p, q image.Point) arms {
	switch {
	case q.X > p.X:
		return armE
	case q.X < p.X:
		return armW
	case q.Y > p.Y:
		return armS
	case q.Y < p.Y:
		return armN
	}
	return 0
}

// terminalArms extends a single arm into a full line so path ends draw as
// plain line glyphs rather than stubs.
func terminalArms(a arms) arms {
	switch a {
	case armE, armW:
		return armE | armW
	case armN, armS:
		return armN | armS
	}
	return a
}

// DrawText writes text on row y starting at column x, replacing what is
// there. Wide runes take two cells; anything past the right edge is dropped.
func (c *MatrixCanvas) DrawText(x, y int, text string) error {
	if y < 0 || y >= c.height {
		return ErrOutOfBounds
	}
	for _, r := range text {
		w := UnicodeWidth(r)
		if w == 0 {
			continue
		}
		if x+w > c.width {
			break
		}
		if x >= 0 {
			c.matrix[y][x] = r
			if w == 2 {
				c.matrix[y][x+1] = '\x00'
			}
		}
		x += w
	}
	return nil
}
