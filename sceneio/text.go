package sceneio

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The text format, one statement per line by convention:
//
//	# comment
//	set clearance 20
//	component U1 "Buffer" at 40,40 size 80x60 {
//	    pin OUT right 80,30
//	}
//	wire w1 U1.OUT -> U2.IN
//
// Identifiers that are not plain words may be written as quoted strings.
var textLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Size", Pattern: `[0-9]+(?:\.[0-9]+)?x[0-9]+(?:\.[0-9]+)?`},
	{Name: "Number", Pattern: `[-+]?[0-9]+(?:\.[0-9]+)?`},
	{Name: "Arrow", Pattern: `->`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[,.{}]`},
})

type textFile struct {
	Statements []*textStatement `@@*`
}

type textStatement struct {
	Set       *setDecl       `  @@`
	Component *componentDecl `| @@`
	Wire      *wireDecl      `| @@`
}

type setDecl struct {
	Name  string  `"set" @Ident`
	Value float64 `@Number`
}

type componentDecl struct {
	ID    string     `"component" @(Ident | String)`
	Label string     `@String?`
	At    textPoint  `"at" @@`
	Size  textSize   `"size" @Size`
	Pins  []*pinDecl `( "{" @@* "}" )?`
}

type pinDecl struct {
	Name string    `"pin" @(Ident | String)`
	Edge string    `@( "left" | "right" | "top" | "bottom" | "none" )?`
	At   textPoint `@@`
}

type wireDecl struct {
	ID   string  `"wire" @(Ident | String)`
	From textRef `@@ Arrow`
	To   textRef `@@`
}

type textRef struct {
	Component string `@(Ident | String) "."`
	Pin       string `@(Ident | String)`
}

type textPoint struct {
	X float64 `@Number ","`
	Y float64 `@Number`
}

// textSize captures a WxH token.
type textSize struct {
	W, H float64
}

func (s *textSize) Capture(values []string) error {
	w, h, ok := strings.Cut(values[0], "x")
	if !ok {
		return fmt.Errorf("size %q: want WIDTHxHEIGHT", values[0])
	}
	var err error
	if s.W, err = strconv.ParseFloat(w, 64); err != nil {
		return fmt.Errorf("size %q: %w", values[0], err)
	}
	if s.H, err = strconv.ParseFloat(h, 64); err != nil {
		return fmt.Errorf("size %q: %w", values[0], err)
	}
	return nil
}

var textParser = participle.MustBuild[textFile](
	participle.Lexer(textLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.Unquote("String"),
)

// ParseText parses a scene in the text format. name is used in error
// positions.
func ParseText(name string, r io.Reader) (*Document, error) {
	f, err := textParser.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}

	d := &Document{}
	for _, st := range f.Statements {
		switch {
		case st.Set != nil:
			if d.Options == nil {
				d.Options = &OptionsDoc{}
			}
			if err := d.Options.Set(st.Set.Name, st.Set.Value); err != nil {
				return nil, fmt.Errorf("parse scene: set %w", err)
			}
		case st.Component != nil:
			c := st.Component
			cd := ComponentDoc{ID: c.ID, Label: c.Label, X: c.At.X, Y: c.At.Y, Width: c.Size.W, Height: c.Size.H}
			for _, p := range c.Pins {
				cd.Pins = append(cd.Pins, PinDoc{Name: p.Name, X: p.At.X, Y: p.At.Y, Edge: p.Edge})
			}
			d.Components = append(d.Components, cd)
		case st.Wire != nil:
			w := st.Wire
			d.Wires = append(d.Wires, WireDoc{
				ID:   w.ID,
				From: EndpointDoc{Component: w.From.Component, Pin: w.From.Pin},
				To:   EndpointDoc{Component: w.To.Component, Pin: w.To.Pin},
			})
		}
	}
	return d, nil
}

// ParseTextString parses a scene held in a string.
func ParseTextString(src string) (*Document, error) {
	return ParseText("", strings.NewReader(src))
}

var plainIdent = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func ident(s string) string {
	if plainIdent.MatchString(s) {
		return s
	}
	return strconv.Quote(s)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteText writes a document in the text format. Wires without an id
// cannot be expressed and are rejected.
func WriteText(w io.Writer, d *Document) error {
	bw := bufio.NewWriter(w)

	if o := d.Options; o != nil {
		for _, kv := range []struct {
			name string
			v    float64
		}{
			{"clearance", o.Clearance},
			{"grid_step", o.GridStep},
			{"max_depth", float64(o.MaxDepth)},
			{"max_expansions", float64(o.MaxExpansions)},
			{"bump_radius", o.BumpRadius},
		} {
			if kv.v != 0 {
				fmt.Fprintf(bw, "set %s %s\n", kv.name, num(kv.v))
			}
		}
	}

	for _, c := range d.Components {
		fmt.Fprintf(bw, "component %s", ident(c.ID))
		if c.Label != "" {
			fmt.Fprintf(bw, " %s", strconv.Quote(c.Label))
		}
		fmt.Fprintf(bw, " at %s,%s size %sx%s", num(c.X), num(c.Y), num(c.Width), num(c.Height))
		if len(c.Pins) > 0 {
			bw.WriteString(" {\n")
			for _, p := range c.Pins {
				fmt.Fprintf(bw, "    pin %s", ident(p.Name))
				if p.Edge != "" && p.Edge != "none" {
					fmt.Fprintf(bw, " %s", p.Edge)
				}
				fmt.Fprintf(bw, " %s,%s\n", num(p.X), num(p.Y))
			}
			bw.WriteString("}")
		}
		bw.WriteString("\n")
	}

	for _, wd := range d.Wires {
		if wd.ID == "" {
			return fmt.Errorf("write scene: wire %s.%s -> %s.%s has no id",
				wd.From.Component, wd.From.Pin, wd.To.Component, wd.To.Pin)
		}
		fmt.Fprintf(bw, "wire %s %s.%s -> %s.%s\n", ident(wd.ID),
			ident(wd.From.Component), ident(wd.From.Pin), ident(wd.To.Component), ident(wd.To.Pin))
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}
