package monitor

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/shelf/internal/engine"
)

// keyEvents converts a bubbletea key message to engine key presses. Pasted
// text arrives as one message and becomes one press per rune.
func keyEvents(msg tea.KeyMsg) []engine.Event {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return []engine.Event{engine.KeyPress(engine.Named(msg.String()))}
		}
		evs := make([]engine.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			evs = append(evs, engine.KeyPress(engine.Char(r)))
		}
		return evs
	case tea.KeySpace:
		return []engine.Event{engine.KeyPress(engine.Char(' '))}
	default:
		return []engine.Event{engine.KeyPress(engine.Named(msg.String()))}
	}
}

// mouseEvent converts a bubbletea mouse message. Releases and buttons other
// than left and the wheel are dropped.
func mouseEvent(msg tea.MouseMsg) (engine.Event, bool) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			return engine.PointerPress(msg.X, msg.Y), true
		case tea.MouseButtonWheelUp:
			return engine.Scroll(msg.X, msg.Y, -1), true
		case tea.MouseButtonWheelDown:
			return engine.Scroll(msg.X, msg.Y, 1), true
		}
	case tea.MouseActionMotion:
		return engine.PointerMove(msg.X, msg.Y), true
	}
	return engine.Event{}, false
}
