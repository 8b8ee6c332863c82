package render

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Theme holds the colours used by the SVG and PNG renderers.
type Theme struct {
	Background colorful.Color
	Component  colorful.Color // outline and label
	Fill       colorful.Color // component interior
	Wire       colorful.Color // base hue for wires
	Blocked    colorful.Color // wires that could not be routed clear
	Pin        colorful.Color
	Distinct   bool // give every wire its own hue
}

// DefaultTheme returns a light theme.
func DefaultTheme() Theme {
	return Theme{
		Background: mustHex("#ffffff"),
		Component:  mustHex("#333333"),
		Fill:       mustHex("#f4f6f8"),
		Wire:       mustHex("#1565c0"),
		Blocked:    mustHex("#e65100"),
		Pin:        mustHex("#2e7d32"),
	}
}

// DarkTheme returns a theme for dark backgrounds.
func DarkTheme() Theme {
	t := Theme{
		Background: mustHex("#1e1e1e"),
		Component:  mustHex("#d4d4d4"),
		Wire:       mustHex("#4fc1ff"),
		Blocked:    mustHex("#f48771"),
		Pin:        mustHex("#b5cea8"),
	}
	t.Fill = t.Background.BlendLab(t.Component, 0.1).Clamped()
	return t
}

// ThemeByName returns a built-in theme.
func ThemeByName(name string) (Theme, error) {
	switch name {
	case "", "light":
		return DefaultTheme(), nil
	case "dark":
		return DarkTheme(), nil
	default:
		return Theme{}, fmt.Errorf("unknown theme %q", name)
	}
}

// WireColor returns the stroke colour of the i-th wire.
func (t Theme) WireColor(i int, clear bool) colorful.Color {
	if !clear {
		return t.Blocked
	}
	if !t.Distinct {
		return t.Wire
	}
	h, c, l := t.Wire.Hcl()
	// Golden-angle steps keep neighbouring wires apart.
	h = math.Mod(h+float64(i)*137.508, 360)
	return colorful.Hcl(h, c, l).Clamped()
}

// ParseColor parses a #rrggbb colour.
func ParseColor(s string) (colorful.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	return c, nil
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
