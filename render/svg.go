package render

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"

	"wired/core"
)

// SVGRenderer draws a frame as SVG. Wires are single path elements with
// their hops drawn as cubic arcs.
type SVGRenderer struct {
	opts Options
}

func (r *SVGRenderer) FileExtension() string { return ".svg" }
func (r *SVGRenderer) FormatName() string    { return "SVG" }

// Render writes the frame as an SVG document.
func (r *SVGRenderer) Render(w io.Writer, f Frame) error {
	var buf bytes.Buffer
	r.draw(&buf, f)
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func (r *SVGRenderer) draw(w io.Writer, f Frame) {
	o := r.opts
	bounds := f.Bounds(o.Margin)
	tx := func(p core.Point) (float64, float64) {
		return (p.X - bounds.X) * o.Scale, (p.Y - bounds.Y) * o.Scale
	}
	px := func(v float64) int { return int(math.Round(v * o.Scale)) }

	canvas := svg.New(w)
	canvas.Start(max(px(bounds.Width), 1), max(px(bounds.Height), 1))
	canvas.Rect(0, 0, max(px(bounds.Width), 1), max(px(bounds.Height), 1),
		"fill:"+o.Theme.Background.Hex())

	canvas.Gid("components")
	for _, c := range f.Components {
		x, y := tx(core.Pt(c.Bounds.X, c.Bounds.Y))
		canvas.Rect(int(math.Round(x)), int(math.Round(y)), px(c.Bounds.Width), px(c.Bounds.Height),
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1.5", o.Theme.Fill.Hex(), o.Theme.Component.Hex()))
		cx, cy := tx(c.Bounds.Center())
		canvas.Text(int(math.Round(cx)), int(math.Round(cy)), c.Text(),
			fmt.Sprintf("text-anchor:middle;dominant-baseline:middle;font-family:sans-serif;font-size:%dpx;fill:%s",
				max(px(12), 6), o.Theme.Component.Hex()))
		for _, p := range c.Pins {
			x, y := tx(p.Point)
			canvas.Circle(int(math.Round(x)), int(math.Round(y)), max(px(2.5), 1), "fill:"+o.Theme.Pin.Hex())
		}
	}
	canvas.Gend()

	canvas.Gid("wires")
	for i, wv := range f.Wires {
		ops := Outline(wv.Path, wv.Bumps, o.BumpRadius)
		if len(ops) == 0 {
			continue
		}
		style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%s;stroke-linejoin:round",
			o.Theme.WireColor(i, wv.Clear).Hex(), num(math.Max(1.5*o.Scale, 1)))
		if !wv.Clear {
			style += ";stroke-dasharray:6,3"
		}
		canvas.Path(pathData(ops, tx), `id="`+html.EscapeString(wv.ID)+`"`, style)
	}
	canvas.Gend()
	canvas.End()
}

// pathData converts outline ops to an SVG path "d" attribute.
func pathData(ops []Op, tx func(core.Point) (float64, float64)) string {
	var sb strings.Builder
	pt := func(p core.Point) {
		x, y := tx(p)
		sb.WriteString(num(x))
		sb.WriteByte(' ')
		sb.WriteString(num(y))
	}
	for i, op := range ops {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch op.Kind {
		case MoveTo:
			sb.WriteString("M")
			pt(op.Pts[0])
		case LineTo:
			sb.WriteString("L")
			pt(op.Pts[0])
		case CubeTo:
			sb.WriteString("C")
			pt(op.Pts[0])
			sb.WriteByte(' ')
			pt(op.Pts[1])
			sb.WriteByte(' ')
			pt(op.Pts[2])
		}
	}
	return sb.String()
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
