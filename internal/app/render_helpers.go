package app

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// fitLines splits s into exactly height lines of exactly width cells,
// truncating and padding as needed.
func fitLines(s string, width, height int) []string {
	if height <= 0 {
		return nil
	}
	src := strings.Split(s, "\n")
	out := make([]string, height)
	for i := range out {
		var line string
		if i < len(src) {
			line = ansi.Truncate(src[i], width, "")
		}
		if pad := width - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		out[i] = line
	}
	return out
}

// clipContent cuts a block placed at (x, y) down to the part inside a
// viewportWidth x viewportHeight screen and returns it with its new origin.
// Fully hidden blocks come back empty.
func clipContent(content string, x, y, viewportWidth, viewportHeight int) (string, int, int) {
	lines := strings.Split(content, "\n")
	height := len(lines)
	width := 0
	for _, line := range lines {
		width = max(width, ansi.StringWidth(line))
	}

	if x+width <= 0 || x >= viewportWidth || y+height <= 0 || y >= viewportHeight {
		return "", max(x, 0), max(y, 0)
	}

	clipTop, clipLeft := 0, 0
	finalX, finalY := x, y
	if y < 0 {
		clipTop, finalY = -y, 0
	}
	if x < 0 {
		clipLeft, finalX = -x, 0
	}

	visible := lines[clipTop:]
	if maxRows := viewportHeight - finalY; maxRows < len(visible) {
		visible = visible[:maxRows]
	}

	if clipLeft > 0 || finalX+width > viewportWidth {
		right := clipLeft + viewportWidth - finalX
		clipped := make([]string, len(visible))
		for i, line := range visible {
			clipped[i] = ansi.Cut(line, clipLeft, right)
		}
		visible = clipped
	}
	return strings.Join(visible, "\n"), finalX, finalY
}
