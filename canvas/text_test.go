package canvas

import (
	"testing"
)

func TestStringWidth(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"U1", 2},
		{"世界", 4},
		{"", 0},
	}
	for _, tt := range tests {
		if got := StringWidth(tt.text); got != tt.want {
			t.Errorf("StringWidth(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestFitText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		ellipsis string
		want     string
	}{
		{"fits", "MCU", 5, "…", "MCU"},
		{"truncated", "REGULATOR", 5, "…", "REGU…"},
		{"too narrow for ellipsis", "REGULATOR", 1, "...", "R"},
		{"wide runes", "世界世界", 5, "…", "世界…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FitText(tt.text, tt.width, tt.ellipsis); got != tt.want {
				t.Errorf("FitText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestCenterText(t *testing.T) {
	if got := CenterText("U1", 6); got != "  U1  " {
		t.Errorf("CenterText = %q", got)
	}
	if got := CenterText("U1", 5); got != " U1  " {
		t.Errorf("CenterText odd = %q", got)
	}
	if got := TruncateToWidth("abc", 0); got != "" {
		t.Errorf("TruncateToWidth(0) = %q", got)
	}
}
