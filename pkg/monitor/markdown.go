package monitor

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown styles understood by glamour. StyleAuto asks the terminal for
// its background; StylePlain emits no escape codes.
const (
	StyleAuto  = "auto"
	StylePlain = "notty"
)

// markdown renders record descriptions with glamour, caching by text for the
// current wrap width
type markdown struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
	cache    map[string]string
}

func newMarkdown(style string) *markdown {
	if style == "" {
		style = StyleAuto
	}
	return &markdown{style: style, cache: make(map[string]string)}
}

// render returns text as styled markdown wrapped at width. Rendering errors
// fall back to the raw text.
func (md *markdown) render(text string, width int) string {
	width = max(width, 10)
	if width != md.width || md.renderer == nil {
		md.width = width
		clear(md.cache)
		md.renderer = md.newRenderer(width)
	}
	if out, ok := md.cache[text]; ok {
		return out
	}
	out := text
	if md.renderer != nil {
		rendered, err := md.renderer.Render(text)
		if err != nil {
			slog.Debug("render markdown", "err", err)
		} else {
			out = strings.Trim(rendered, "\n")
		}
	}
	md.cache[text] = out
	return out
}

func (md *markdown) newRenderer(width int) *glamour.TermRenderer {
	styleOpt := glamour.WithStandardStyle(md.style)
	if md.style == StyleAuto {
		styleOpt = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		slog.Debug("create markdown renderer", "style", md.style, "err", err)
		return nil
	}
	return r
}
