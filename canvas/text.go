package canvas

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// UnicodeWidth returns the display width of a rune in terminal cells.
func UnicodeWidth(r rune) int {
	return runewidth.RuneWidth(r)
}

// StringWidth returns the display width of a string in terminal cells.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateToWidth truncates a string to fit within the specified width.
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(s, maxWidth, "")
}

// FitText truncates text to fit within maxWidth, adding ellipsis if needed.
func FitText(text string, maxWidth int, ellipsis string) string {
	if StringWidth(text) <= maxWidth {
		return text
	}
	if maxWidth <= StringWidth(ellipsis) {
		return TruncateToWidth(text, maxWidth)
	}
	return runewidth.Truncate(text, maxWidth, ellipsis)
}

// CenterText pads text with spaces so it sits in the middle of width cells.
// Text wider than width is truncated.
func CenterText(text string, width int) string {
	text = FitText(text, width, "…")
	gap := width - StringWidth(text)
	if gap <= 0 {
		return text
	}
	left := gap / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", gap-left)
}
