package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/shelf/internal/engine"
)

// item is one widget placed on a row. normal is measured to find its region;
// hover, when set, replaces it while the pointer is inside that region.
// Items with an action or input field get their region registered.
type item struct {
	normal string
	hover  string
	action engine.Action
	input  string
}

func (it item) interactive() bool {
	return it.action.Kind != engine.ActionNone || it.input != ""
}

// canvas stacks rendered blocks top to bottom and registers the region of
// every interactive item as it is placed. Regions are measured from the
// rendered text, so a click always lands on what is actually drawn.
type canvas struct {
	e     *engine.Engine
	x, y  int
	width int
	lines []string
}

func newCanvas(e *engine.Engine, x, y, width int) *canvas {
	return &canvas{e: e, x: x, y: y, width: max(width, 1)}
}

// cursor returns the screen row the next block starts on
func (c *canvas) cursor() int {
	return c.y + len(c.lines)
}

// add appends a block, clipping it to the canvas width
func (c *canvas) add(block string) {
	for _, line := range strings.Split(block, "\n") {
		if ansi.StringWidth(line) > c.width {
			line = ansi.Truncate(line, c.width, "")
		}
		c.lines = append(c.lines, line)
	}
}

// blank appends n empty lines
func (c *canvas) blank(n int) {
	for i := 0; i < n; i++ {
		c.lines = append(c.lines, "")
	}
}

// row lays items out left to right with gap cells between them and appends
// the result as one block
func (c *canvas) row(gap int, items ...item) {
	top := c.cursor()
	x := 0
	parts := make([]string, 0, len(items)*2)
	for i, it := range items {
		if i > 0 && gap > 0 {
			parts = append(parts, strings.Repeat(" ", gap))
			x += gap
		}
		w, h := lipgloss.Width(it.normal), lipgloss.Height(it.normal)
		text := it.normal
		if it.interactive() && x < c.width {
			r := engine.Rect{X: c.x + x, Y: top, W: min(w, c.width-x), H: h}
			if it.hover != "" && c.e.Hovered(r) {
				text = it.hover
			}
			if it.input != "" {
				c.e.RegisterInput(r, it.input)
			} else {
				c.e.RegisterAction(r, it.action)
			}
		}
		parts = append(parts, text)
		x += w
	}
	c.add(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
}

// height returns the number of lines drawn so far
func (c *canvas) height() int {
	return len(c.lines)
}

// render pads or crops the canvas to exactly h lines
func (c *canvas) render(h int) string {
	lines := c.lines
	if h > 0 {
		if len(lines) > h {
			lines = lines[:h]
		}
		for len(lines) < h {
			lines = append(lines, "")
		}
	}
	return strings.Join(lines, "\n")
}
