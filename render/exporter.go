package render

import (
	"fmt"
	"io"
	"strings"

	"wired/core"
)

// Format represents an output format.
type Format string

const (
	// FormatASCII draws the scene with box-drawing characters.
	FormatASCII Format = "ascii"
	// FormatSVG writes a scalable vector drawing.
	FormatSVG Format = "svg"
	// FormatPNG writes an antialiased bitmap.
	FormatPNG Format = "png"
)

// Options configures every renderer. Zero fields take their defaults.
type Options struct {
	Scale      float64 // output units per scene unit (SVG, PNG)
	Margin     float64 // scene units around the drawing
	BumpRadius float64
	CellSize   float64 // scene units per character cell (ASCII)
	Theme      Theme
	Unicode    bool      // ASCII: box-drawing glyphs instead of +-|
	Viewport   core.Rect // ASCII: fixed scene area to draw; empty fits the frame
}

// DefaultOptions returns the settings used by the CLI.
func DefaultOptions() Options {
	return Options{
		Scale:      1,
		Margin:     20,
		BumpRadius: DefaultBumpRadius,
		CellSize:   10,
		Theme:      DefaultTheme(),
		Unicode:    true,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Scale <= 0 {
		o.Scale = d.Scale
	}
	if o.Margin < 0 {
		o.Margin = d.Margin
	}
	if o.BumpRadius <= 0 {
		o.BumpRadius = d.BumpRadius
	}
	if o.CellSize <= 0 {
		o.CellSize = d.CellSize
	}
	if o.Theme == (Theme{}) {
		o.Theme = d.Theme
	}
	return o
}

// Renderer writes a frame in one output format.
type Renderer interface {
	// Render draws the frame to w.
	Render(w io.Writer, f Frame) error
	// FileExtension returns the recommended file extension.
	FileExtension() string
	// FormatName returns a human-readable name for the format.
	FormatName() string
}

// NewRenderer creates a renderer for the specified format.
func NewRenderer(format Format, opts Options) (Renderer, error) {
	opts = opts.withDefaults()
	switch format {
	case FormatASCII:
		return NewASCIIRenderer(opts), nil
	case FormatSVG:
		return &SVGRenderer{opts: opts}, nil
	case FormatPNG:
		return &PNGRenderer{opts: opts}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "ascii", "text", "txt":
		return FormatASCII, nil
	case "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// AvailableFormats returns every supported output format.
func AvailableFormats() []Format {
	return []Format{FormatASCII, FormatSVG, FormatPNG}
}
