package engine

import (
	"errors"
	"fmt"
	"time"
)

// EventKind tags an input event
type EventKind int

const (
	EventOther EventKind = iota
	EventKeyPress
	EventPointerPress
	EventPointerMove
	EventScroll
)

func (k EventKind) String() string {
	switch k {
	case EventKeyPress:
		return "key"
	case EventPointerPress:
		return "click"
	case EventPointerMove:
		return "move"
	case EventScroll:
		return "scroll"
	default:
		return "other"
	}
}

// Event is one input from the terminal. X and Y are cell coordinates for
// pointer events; Delta is the wheel direction for EventScroll (negative up).
type Event struct {
	Kind  EventKind
	Key   Key
	X, Y  int
	Delta int
}

// KeyPress returns a key event
func KeyPress(k Key) Event {
	return Event{Kind: EventKeyPress, Key: k}
}

// PointerPress returns a left-click event at (x, y)
func PointerPress(x, y int) Event {
	return Event{Kind: EventPointerPress, X: x, Y: y}
}

// PointerMove returns a pointer motion event at (x, y)
func PointerMove(x, y int) Event {
	return Event{Kind: EventPointerMove, X: x, Y: y}
}

// Scroll returns a wheel event at (x, y)
func Scroll(x, y, delta int) Event {
	return Event{Kind: EventScroll, X: x, Y: y, Delta: delta}
}

func (e Event) String() string {
	switch e.Kind {
	case EventKeyPress:
		return fmt.Sprintf("key %s", e.Key)
	case EventPointerPress, EventPointerMove:
		return fmt.Sprintf("%s %d,%d", e.Kind, e.X, e.Y)
	case EventScroll:
		return fmt.Sprintf("scroll %d at %d,%d", e.Delta, e.X, e.Y)
	default:
		return "other"
	}
}

// ErrSourceExhausted is returned by an EventSource that will produce no more
// events
var ErrSourceExhausted = errors.New("event source exhausted")

// EventSource yields input events. Poll waits at most timeout and reports
// ok=false when nothing arrived in that window.
type EventSource interface {
	Poll(timeout time.Duration) (ev Event, ok bool, err error)
}

// Renderer draws the current mode. Drawing registers this frame's action
// and input regions on the engine.
type Renderer interface {
	Render(e *Engine)
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(e *Engine)

// Render calls f(e)
func (f RendererFunc) Render(e *Engine) { f(e) }
