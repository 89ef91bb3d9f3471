package internal

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// canvas is a fixed-size grid of styled terminal lines. Blocks drawn later
// cover earlier ones; anything outside the grid is clipped.
type canvas struct {
	width int
	lines []string
}

func newCanvas(width, height int) *canvas {
	width = max(0, width)
	height = max(0, height)
	blank := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = blank
	}
	return &canvas{width: width, lines: lines}
}

func (c *canvas) draw(x, y int, block string) {
	if block == "" {
		return
	}
	for i, fg := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= len(c.lines) {
			continue
		}
		fgWidth := xansi.StringWidth(fg)
		left, right := max(0, x), min(c.width, x+fgWidth)
		if left >= right {
			continue
		}
		if left != x || right != x+fgWidth {
			fg = xansi.Cut(fg, left-x, right-x)
		}
		bg := c.lines[row]
		c.lines[row] = xansi.Cut(bg, 0, left) + fg + xansi.Cut(bg, right, c.width)
	}
}

func (c *canvas) String() string {
	return strings.Join(c.lines, "\n")
}
