package obstacles

import (
	"math"
	"strings"

	"wired/core"
)

// Visualize draws the index and any paths as ASCII art for debugging.
// Each character covers a cell×cell square of scene space within bounds.
//
//	█ obstacle   ● path vertex   · path segment
func Visualize(ix *Index, bounds core.Rect, cell float64, paths ...core.WirePath) string {
	if cell <= 0 || bounds.Empty() {
		return ""
	}
	width := int(math.Ceil(bounds.Width/cell)) + 1
	height := int(math.Ceil(bounds.Height/cell)) + 1

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	toCell := func(p core.Point) (int, int, bool) {
		x := int(math.Round((p.X - bounds.X) / cell))
		y := int(math.Round((p.Y - bounds.Y) / cell))
		return x, y, x >= 0 && x < width && y >= 0 && y < height
	}

	for _, r := range ix.Rects() {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				px := bounds.X + float64(x)*cell
				py := bounds.Y + float64(y)*cell
				if px >= r.Left() && px <= r.Right() && py >= r.Top() && py <= r.Bottom() {
					grid[y][x] = '█'
				}
			}
		}
	}

	for _, path := range paths {
		for _, s := range path.Segments {
			steps := int(math.Ceil(s.Length() / cell))
			for i := 0; i <= steps; i++ {
				t := 0.0
				if steps > 0 {
					t = float64(i) / float64(steps)
				}
				p := core.Point{
					X: s.Start.X + (s.End.X-s.Start.X)*t,
					Y: s.Start.Y + (s.End.Y-s.Start.Y)*t,
				}
				if x, y, ok := toCell(p); ok && grid[y][x] == ' ' {
					grid[y][x] = '·'
				}
			}
		}
		for _, p := range path.Points() {
			if x, y, ok := toCell(p); ok {
				grid[y][x] = '●'
			}
		}
	}

	var result strings.Builder
	for _, row := range grid {
		result.WriteString(strings.TrimRight(string(row), " "))
		result.WriteString("\n")
	}
	return result.String()
}
