// Package monitor is the full-screen front end for the catalog. bubbletea
// hosts the loop: View draws the current mode and rebuilds the engine's
// hit-test registry, a tick expires messages, and Update feeds key and mouse
// input to the engine.
package monitor

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/shelf/internal/engine"
)

// Options configures the monitor
type Options struct {
	// PollInterval is how often queued messages are checked for expiry
	PollInterval time.Duration
	// MarkdownStyle is a glamour style name, StyleAuto by default
	MarkdownStyle string
}

// tickMsg drives message expiry when there is no input
type tickMsg time.Time

// Model is the bubbletea model wrapping an engine
type Model struct {
	engine *engine.Engine
	view   *view
	poll   time.Duration

	Width  int
	Height int
}

// NewModel returns a monitor model over e
func NewModel(e *engine.Engine, opts Options) Model {
	poll := opts.PollInterval
	if poll <= 0 {
		poll = engine.DefaultPollInterval
	}
	return Model{
		engine: e,
		view:   newView(opts.MarkdownStyle),
		poll:   poll,
	}
}

// Engine returns the wrapped engine
func (m Model) Engine() *engine.Engine {
	return m.engine
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.poll, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the expiry tick
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update dispatches input to the engine
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tickMsg:
		m.engine.ExpireMessages()
		return m, m.tick()

	case tea.KeyMsg:
		for _, ev := range keyEvents(msg) {
			m.engine.Dispatch(ev)
			if m.engine.QuitRequested() {
				break
			}
		}

	case tea.MouseMsg:
		ev, ok := mouseEvent(msg)
		if !ok {
			return m, nil
		}
		m.engine.Dispatch(ev)
	}

	if m.engine.QuitRequested() {
		return m, tea.Quit
	}
	return m, nil
}

// View draws the current mode, registering this frame's regions
func (m Model) View() string {
	if m.engine.QuitRequested() {
		return ""
	}
	m.engine.BeginFrame()
	return m.view.draw(m.engine, m.Width, m.Height)
}
