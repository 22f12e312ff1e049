package engine

import (
	"errors"
	"testing"
	"time"
)

// scriptSource replays a fixed list of events, advancing a fake clock by the
// poll timeout whenever a step is empty
type scriptSource struct {
	steps []*Event
	clock *fakeClock
	polls int
	err   error
}

func (s *scriptSource) Poll(timeout time.Duration) (Event, bool, error) {
	s.polls++
	if len(s.steps) == 0 {
		if s.err != nil {
			return Event{}, false, s.err
		}
		return Event{}, false, ErrSourceExhausted
	}
	step := s.steps[0]
	s.steps = s.steps[1:]
	if step == nil {
		s.clock.Advance(timeout)
		return Event{}, false, nil
	}
	return *step, true, nil
}

func ev(e Event) *Event { return &e }

func TestRunQuitsOnConfirm(t *testing.T) {
	h := newHarness(t)
	src := &scriptSource{clock: h.clock, steps: []*Event{
		ev(KeyPress(Char('q'))),
		nil,
		ev(PointerPress(yesButton.X, yesButton.Y)),
		// never reached: the loop stops once quit is set
		ev(KeyPress(Char('a'))),
	}}
	frames := 0
	r := RendererFunc(func(e *Engine) {
		frames++
		drawTest(e)
	})

	if err := Run(h.e, src, r, 10*time.Millisecond); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !h.e.QuitRequested() {
		t.Fatal("quit not requested")
	}
	if src.polls != 3 {
		t.Errorf("polls = %d, want 3", src.polls)
	}
	if frames != 3 {
		t.Errorf("frames = %d, want 3", frames)
	}
	if len(src.steps) != 1 {
		t.Errorf("events after quit were consumed")
	}
}

func TestRunEndsWhenExhausted(t *testing.T) {
	h := newHarness(t)
	src := &scriptSource{clock: h.clock, steps: []*Event{ev(KeyPress(Char('a')))}}
	if err := Run(h.e, src, RendererFunc(drawTest), 0); err != nil {
		t.Fatalf("Run: %v", err)
	}
	h.wantModes("[Main Adding]")
}

func TestRunPropagatesSourceError(t *testing.T) {
	h := newHarness(t)
	boom := errors.New("tty closed")
	src := &scriptSource{clock: h.clock, err: boom}
	err := Run(h.e, src, RendererFunc(drawTest), time.Millisecond)
	if !errors.Is(err, boom) {
		t.Fatalf("Run err = %v, want %v", err, boom)
	}
}

func TestRunExpiresMessagesWithoutInput(t *testing.T) {
	h := newHarness(t)
	h.e.Notify("hello")
	steps := make([]*Event, 0, 31)
	for i := 0; i < 31; i++ {
		steps = append(steps, nil)
	}
	src := &scriptSource{clock: h.clock, steps: steps}
	// 30 idle polls of 100ms reach the 3s timeout; the 31st frame expires it
	if err := Run(h.e, src, RendererFunc(drawTest), 100*time.Millisecond); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := h.e.Messages(); len(got) != 0 {
		t.Errorf("messages = %q, want none", got)
	}
}
