package monitor

import (
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/shelf/internal/engine"
)

// Frame renders modes at a fixed size without a terminal. It implements
// engine.Renderer for the headless loop and keeps the last frame drawn.
type Frame struct {
	Width  int
	Height int

	view *view
	last string
	n    int
}

// NewFrame returns a renderer for a width x height screen. Markdown is drawn
// without escape codes.
func NewFrame(width, height int) *Frame {
	return &Frame{Width: width, Height: height, view: newView(StylePlain)}
}

// Render draws the current mode of e. The caller has already cleared the
// registry.
func (f *Frame) Render(e *engine.Engine) {
	f.last = f.view.draw(e, f.Width, f.Height)
	f.n++
}

// Last returns the most recent frame with styling removed
func (f *Frame) Last() string {
	return ansi.Strip(f.last)
}

// Count returns the number of frames drawn
func (f *Frame) Count() int {
	return f.n
}
