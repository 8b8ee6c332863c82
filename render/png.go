package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"wired/core"
)

// supersample is the factor the PNG is drawn at before downscaling.
const supersample = 2

// PNGRenderer draws a frame as an antialiased bitmap.
type PNGRenderer struct {
	opts Options
}

func (r *PNGRenderer) FileExtension() string { return ".png" }
func (r *PNGRenderer) FormatName() string    { return "PNG" }

// Render writes the frame as a PNG image.
func (r *PNGRenderer) Render(w io.Writer, f Frame) error {
	img, err := r.Image(f)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Image draws the frame at its final size.
func (r *PNGRenderer) Image(f Frame) (*image.RGBA, error) {
	o := r.opts
	bounds := f.Bounds(o.Margin)
	width := max(int(math.Ceil(bounds.Width*o.Scale)), 1)
	height := max(int(math.Ceil(bounds.Height*o.Scale)), 1)

	pc, err := newPainter(width*supersample, height*supersample, o.Scale*supersample, core.Pt(bounds.X, bounds.Y))
	if err != nil {
		return nil, err
	}
	pc.paint(f, o)

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(out, out.Bounds(), pc.img, pc.img.Bounds(), draw.Src, nil)
	return out, nil
}

// painter draws scene geometry onto a bitmap.
type painter struct {
	img    *image.RGBA
	z      *vector.Rasterizer
	scale  float64
	origin core.Point
	face   font.Face
}

func newPainter(w, h int, scale float64, origin core.Point) (*painter, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    12 * scale,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("font face: %w", err)
	}
	return &painter{
		img:    image.NewRGBA(image.Rect(0, 0, w, h)),
		z:      vector.NewRasterizer(w, h),
		scale:  scale,
		origin: origin,
		face:   face,
	}, nil
}

func (p *painter) paint(f Frame, o Options) {
	draw.Draw(p.img, p.img.Bounds(), image.NewUniform(o.Theme.Background), image.Point{}, draw.Src)

	line := 1.5 * p.scale
	for _, c := range f.Components {
		b := c.Bounds
		corners := []core.Point{
			core.Pt(b.Left(), b.Top()), core.Pt(b.Right(), b.Top()),
			core.Pt(b.Right(), b.Bottom()), core.Pt(b.Left(), b.Bottom()),
		}
		p.begin()
		p.polygon(corners)
		p.fill(o.Theme.Fill)

		p.begin()
		p.stroke(append(corners, corners[0]), line)
		p.fill(o.Theme.Component)

		p.text(b.Center(), c.Text(), o.Theme.Component)

		p.begin()
		for _, pin := range c.Pins {
			p.dot(pin.Point, 2.5*p.scale)
		}
		p.fill(o.Theme.Pin)
	}

	for i, wv := range f.Wires {
		ops := Outline(wv.Path, wv.Bumps, o.BumpRadius)
		p.begin()
		for _, pl := range Flatten(ops, 8) {
			p.stroke(pl, line)
		}
		p.fill(o.Theme.WireColor(i, wv.Clear))
	}
}

func (p *painter) begin() {
	b := p.img.Bounds()
	p.z.Reset(b.Dx(), b.Dy())
	p.z.DrawOp = draw.Over
}

func (p *painter) fill(c color.Color) {
	p.z.Draw(p.img, p.img.Bounds(), image.NewUniform(c), image.Point{})
}

func (p *painter) at(pt core.Point) (float32, float32) {
	return float32((pt.X - p.origin.X) * p.scale), float32((pt.Y - p.origin.Y) * p.scale)
}

// polygon adds a closed outline in scene coordinates.
func (p *painter) polygon(pts []core.Point) {
	x, y := p.at(pts[0])
	p.z.MoveTo(x, y)
	for _, pt := range pts[1:] {
		x, y := p.at(pt)
		p.z.LineTo(x, y)
	}
	p.z.ClosePath()
}

// stroke adds a polyline of the given pixel width. Each piece is a quad
// and each joint an octagon, all wound the same way so overlaps add up
// instead of cancelling.
func (p *painter) stroke(pts []core.Point, width float64) {
	hw := width / 2
	for i := 0; i+1 < len(pts); i++ {
		ax, ay := p.at(pts[i])
		bx, by := p.at(pts[i+1])
		dx, dy := float64(bx-ax), float64(by-ay)
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := float32(-dy/l*hw), float32(dx/l*hw)
		p.z.MoveTo(ax+nx, ay+ny)
		p.z.LineTo(bx+nx, by+ny)
		p.z.LineTo(bx-nx, by-ny)
		p.z.LineTo(ax-nx, ay-ny)
		p.z.ClosePath()
	}
	for _, pt := range pts {
		x, y := p.at(pt)
		p.octagon(x, y, hw)
	}
}

// dot adds a filled disc of pixel radius r.
func (p *painter) dot(pt core.Point, r float64) {
	x, y := p.at(pt)
	p.octagon(x, y, r)
}

func (p *painter) octagon(cx, cy float32, r float64) {
	for k := 0; k < 8; k++ {
		a := -float64(k) * math.Pi / 4
		x, y := cx+float32(r*math.Cos(a)), cy+float32(r*math.Sin(a))
		if k == 0 {
			p.z.MoveTo(x, y)
		} else {
			p.z.LineTo(x, y)
		}
	}
	p.z.ClosePath()
}

// text draws s centred on pt.
func (p *painter) text(pt core.Point, s string, c color.Color) {
	x, y := p.at(pt)
	adv := font.MeasureString(p.face, s)
	m := p.face.Metrics()
	d := &font.Drawer{
		Dst:  p.img,
		Src:  image.NewUniform(c),
		Face: p.face,
		Dot: fixed.Point26_6{
			X: fixed.I(int(x)) - adv/2,
			Y: fixed.I(int(y)) + (m.Ascent-m.Descent)/2,
		},
	}
	d.DrawString(s)
}
