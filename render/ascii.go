package render

import (
	"fmt"
	"image"
	"io"
	"math"
	"strings"

	"wired/bumps"
	"wired/canvas"
	"wired/core"
)

// ASCIIRenderer draws a frame as text, one character cell per CellSize
// scene units.
type ASCIIRenderer struct {
	opts Options
}

// NewASCIIRenderer creates a text renderer.
func NewASCIIRenderer(opts Options) *ASCIIRenderer {
	return &ASCIIRenderer{opts: opts.withDefaults()}
}

func (r *ASCIIRenderer) FileExtension() string { return ".txt" }
func (r *ASCIIRenderer) FormatName() string    { return "ASCII" }

// Render writes the frame as text.
func (r *ASCIIRenderer) Render(w io.Writer, f Frame) error {
	s, err := r.Text(f)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, s+"\n"); err != nil {
		return fmt.Errorf("write ascii: %w", err)
	}
	return nil
}

// Text returns the frame as text without a trailing newline.
func (r *ASCIIRenderer) Text(f Frame) (string, error) {
	bounds := r.opts.Viewport
	if bounds.Empty() {
		if len(f.Components) == 0 && len(f.Wires) == 0 {
			return "", nil
		}
		bounds = f.Bounds(r.opts.Margin)
	}
	g := grid{origin: core.Pt(bounds.X, bounds.Y), cell: r.opts.CellSize}
	br := g.cell2(core.Pt(bounds.Right(), bounds.Bottom()))
	c, err := canvas.NewMatrixCanvas(br.X+1, br.Y+1)
	if err != nil {
		return "", fmt.Errorf("ascii canvas: %w", err)
	}

	// Boxes first so wire ends join their edges.
	for _, comp := range f.Components {
		tl := g.cell2(core.Pt(comp.Bounds.Left(), comp.Bounds.Top()))
		brc := g.cell2(core.Pt(comp.Bounds.Right(), comp.Bounds.Bottom()))
		w, h := brc.X-tl.X+1, brc.Y-tl.Y+1
		if w < 2 || h < 2 {
			continue
		}
		c.DrawBox(tl.X, tl.Y, w, h, canvas.DefaultBoxStyle)
		if h > 2 && w > 2 {
			label := strings.TrimRight(canvas.CenterText(comp.Text(), w-2), " ")
			c.DrawText(tl.X+1, tl.Y+h/2, label)
		}
		for _, p := range comp.Pins {
			pc := g.cell2(p.Point)
			c.Set(pc.X, pc.Y, canvas.PinMark)
		}
	}

	for _, wv := range f.Wires {
		pts := g.polyline(wv.Path)
		if len(pts) < 2 {
			continue
		}
		if err := c.DrawPolyline(pts); err != nil {
			return "", fmt.Errorf("wire %s: %w", wv.ID, err)
		}
	}

	for _, wv := range f.Wires {
		for _, b := range wv.Bumps {
			pc := g.cell2(b.Point)
			c.Overlay(pc.X, pc.Y, hopGlyph(b))
		}
	}

	out := c.String()
	if !r.opts.Unicode {
		out = asciiOnly.Replace(out)
	}
	return out, nil
}

func hopGlyph(b bumps.Bump) rune {
	if b.Orientation == core.Horizontal {
		return canvas.HopHorizontal
	}
	return canvas.HopVertical
}

var asciiOnly = strings.NewReplacer(
	"─", "-", "│", "|", "╶", "-", "╴", "-", "╵", "|", "╷", "|",
	"┌", "+", "┐", "+", "└", "+", "┘", "+",
	"├", "+", "┤", "+", "┬", "+", "┴", "+", "┼", "+",
	string(canvas.HopHorizontal), "^", string(canvas.PinMark), "o",
)

// grid maps scene coordinates onto character cells.
type grid struct {
	origin core.Point
	cell   float64
}

func (g grid) cell2(p core.Point) image.Point {
	return image.Point{
		X: int(math.Round((p.X - g.origin.X) / g.cell)),
		Y: int(math.Round((p.Y - g.origin.Y) / g.cell)),
	}
}

// polyline quantises a path, dropping points that collapse onto the
// previous cell.
func (g grid) polyline(path core.WirePath) []image.Point {
	var out []image.Point
	for _, p := range path.Points() {
		q := g.cell2(p)
		if n := len(out); n > 0 && out[n-1] == q {
			continue
		}
		out = append(out, q)
	}
	return out
}
