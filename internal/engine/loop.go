package engine

import (
	"errors"
	"fmt"
	"time"
)

// DefaultPollInterval bounds each wait for input
const DefaultPollInterval = 30 * time.Millisecond

// Run drives e until the user quits or src is exhausted. Each iteration draws
// the current mode (which rebuilds the registry), expires messages, waits at
// most poll for one event and dispatches it.
func Run(e *Engine, src EventSource, r Renderer, poll time.Duration) error {
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	for !e.QuitRequested() {
		e.BeginFrame()
		r.Render(e)
		e.ExpireMessages()

		ev, ok, err := src.Poll(poll)
		if err != nil {
			if errors.Is(err, ErrSourceExhausted) {
				return nil
			}
			return fmt.Errorf("poll events: %w", err)
		}
		if ok {
			e.Dispatch(ev)
		}
	}
	return nil
}
