package catalogio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/marcus/shelf/internal/engine"
	"gopkg.in/yaml.v3"
)

// Step is one entry of a replay script. Exactly one field is set.
//
//	- key: q            # a key, by character or bubbletea name ("enter", "ctrl+c")
//	- type: Catan       # one key press per character
//	- click: [12, 3]    # left click at column 12, row 3
//	- move: [12, 3]     # pointer motion
//	- scroll: -1        # wheel, negative is up
//	- wait: 3s          # idle polls until the duration has passed
type Step struct {
	Key    string `yaml:"key"`
	Type   string `yaml:"type"`
	Click  []int  `yaml:"click"`
	Move   []int  `yaml:"move"`
	Scroll int    `yaml:"scroll"`
	Wait   string `yaml:"wait"`
}

// ErrBadStep is returned for script entries that do not describe exactly one
// valid input
var ErrBadStep = errors.New("bad replay step")

// ParseScript decodes a YAML replay script
func ParseScript(r io.Reader) (*Script, error) {
	var steps []Step
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&steps); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse script: %w", err)
	}

	s := &Script{now: time.Unix(0, 0).UTC()}
	for i, st := range steps {
		inputs, err := st.inputs()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		s.inputs = append(s.inputs, inputs...)
	}
	return s, nil
}

// ReadScript opens and decodes a replay script file
func ReadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	return ParseScript(f)
}

// input is either an event or an idle period
type input struct {
	event engine.Event
	wait  time.Duration
}

func (st Step) inputs() ([]input, error) {
	set := 0
	for _, ok := range []bool{st.Key != "", st.Type != "", st.Click != nil, st.Move != nil, st.Scroll != 0, st.Wait != ""} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("%w: want exactly one of key, type, click, move, scroll, wait", ErrBadStep)
	}

	switch {
	case st.Key != "":
		return []input{{event: engine.KeyPress(ParseKey(st.Key))}}, nil
	case st.Type != "":
		out := make([]input, 0, utf8.RuneCountInString(st.Type))
		for _, r := range st.Type {
			out = append(out, input{event: engine.KeyPress(engine.Char(r))})
		}
		return out, nil
	case st.Click != nil:
		x, y, err := point(st.Click)
		if err != nil {
			return nil, err
		}
		return []input{{event: engine.PointerPress(x, y)}}, nil
	case st.Move != nil:
		x, y, err := point(st.Move)
		if err != nil {
			return nil, err
		}
		return []input{{event: engine.PointerMove(x, y)}}, nil
	case st.Scroll != 0:
		return []input{{event: engine.Scroll(0, 0, st.Scroll)}}, nil
	default:
		d, err := time.ParseDuration(st.Wait)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: wait %q is not a positive duration", ErrBadStep, st.Wait)
		}
		return []input{{wait: d}}, nil
	}
}

func point(p []int) (int, int, error) {
	if len(p) != 2 || p[0] < 0 || p[1] < 0 {
		return 0, 0, fmt.Errorf("%w: point %v is not [x, y]", ErrBadStep, p)
	}
	return p[0], p[1], nil
}

// ParseKey maps a key name to an engine key. A single character is typed as
// is; "space" is a space; anything else is a named key.
func ParseKey(name string) engine.Key {
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return engine.Char(r)
	}
	if strings.EqualFold(name, "space") {
		return engine.Char(' ')
	}
	return engine.Named(strings.ToLower(name))
}

// Script is an engine.EventSource that replays decoded steps on a virtual
// clock. Waits advance the clock by one poll timeout per Poll instead of
// sleeping.
type Script struct {
	inputs  []input
	pending time.Duration
	now     time.Time
}

// Now is the script's clock; pass it to the engine so message expiry follows
// scripted waits
func (s *Script) Now() time.Time {
	return s.now
}

// Len returns the number of inputs left
func (s *Script) Len() int {
	return len(s.inputs)
}

// Poll implements engine.EventSource
func (s *Script) Poll(timeout time.Duration) (engine.Event, bool, error) {
	if s.pending > 0 {
		step := s.pending
		if timeout > 0 {
			step = min(timeout, s.pending)
		}
		s.pending -= step
		s.now = s.now.Add(step)
		return engine.Event{}, false, nil
	}
	if len(s.inputs) == 0 {
		return engine.Event{}, false, engine.ErrSourceExhausted
	}
	in := s.inputs[0]
	s.inputs = s.inputs[1:]
	if in.wait > 0 {
		s.pending = in.wait
		return s.Poll(timeout)
	}
	return in.event, true, nil
}
