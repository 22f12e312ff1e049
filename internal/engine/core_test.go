package engine

import (
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
)

func TestModeStackNeverEmpty(t *testing.T) {
	s := NewModeStack(Main)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 500; i++ {
		if rng.Intn(2) == 0 {
			s.Push(Mode{Kind: ModeAdding})
		} else {
			s.Pop()
		}
		if s.Len() < 1 {
			t.Fatalf("step %d: stack length %d", i, s.Len())
		}
		if s.Modes()[0] != Main {
			t.Fatalf("step %d: root replaced by %s", i, s.Modes()[0])
		}
	}
}

func TestModeStackPopRoot(t *testing.T) {
	s := NewModeStack(Main)
	if s.Pop() {
		t.Error("Pop on root reported a change")
	}
	if s.Len() != 1 || s.Current() != Main {
		t.Errorf("stack changed: %v", s.Modes())
	}
	if _, ok := s.Previous(); ok {
		t.Error("Previous on root should report none")
	}

	s.Push(Mode{Kind: ModeEditing, RecordID: 3})
	if got := s.Current().String(); got != "Editing(3)" {
		t.Errorf("Current = %s, want Editing(3)", got)
	}
	if prev, ok := s.Previous(); !ok || prev != Main {
		t.Errorf("Previous = %v, %v", prev, ok)
	}
}

func TestModeStackCurrentEmptyPanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !IsInvariantViolation(err) {
			t.Fatalf("expected InvariantViolation panic, got %v", r)
		}
	}()
	var s ModeStack
	s.Current()
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 2, Y: 3, W: 4, H: 2}
	cases := []struct {
		x, y int
		want bool
	}{
		{2, 3, true},
		{5, 4, true},
		{6, 3, false}, // width is exclusive
		{2, 5, false}, // height is exclusive
		{1, 3, false},
	}
	for _, tc := range cases {
		if got := r.Contains(tc.x, tc.y); got != tc.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestRegistryLastRegisteredWins(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterAction(Rect{0, 0, 20, 10}, Action{Kind: ActionBack})
	reg.RegisterAction(Rect{5, 5, 5, 2}, Action{Kind: ActionAddNew})
	reg.RegisterAction(Rect{5, 5, 5, 2}, Action{Kind: ActionQuitPrompt})

	a, ok := reg.HitAction(6, 5)
	if !ok || a.Kind != ActionQuitPrompt {
		t.Errorf("overlap hit = %v, %v; want quit-prompt", a, ok)
	}
	a, ok = reg.HitAction(1, 1)
	if !ok || a.Kind != ActionBack {
		t.Errorf("background hit = %v, %v; want back", a, ok)
	}
	if _, ok := reg.HitAction(30, 30); ok {
		t.Error("expected miss outside all regions")
	}
}

func TestRegistryIgnoresEmptyRects(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterAction(Rect{0, 0, 0, 5}, Action{Kind: ActionBack})
	reg.RegisterInput(Rect{0, 0, 5, 0}, FieldName)
	if !reg.IsEmpty() {
		t.Error("empty rects were registered")
	}
}

func TestRegistryInputsOrder(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterInput(Rect{0, 0, 5, 1}, FieldName)
	reg.RegisterInput(Rect{0, 1, 5, 1}, FieldMinPlayers)
	reg.RegisterInput(Rect{0, 2, 5, 1}, FieldName)
	reg.RegisterInput(Rect{0, 3, 5, 1}, FieldMaxPlayers)

	got := reg.Inputs()
	want := []string{FieldName, FieldMinPlayers, FieldMaxPlayers}
	if len(got) != len(want) {
		t.Fatalf("Inputs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Inputs[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	reg.Clear()
	if !reg.IsEmpty() {
		t.Error("Clear left regions behind")
	}
	if _, ok := reg.HitInput(1, 0); ok {
		t.Error("hit after Clear")
	}
}

func TestFocusEditing(t *testing.T) {
	f := NewFocus()
	f.Select(FieldName)
	if !f.IsFocused(FieldName) {
		t.Fatal("field not focused after Select")
	}
	f.Append('a')
	f.Append('b')
	f.Backspace()
	f.Append('c')
	if got := f.Buffer(FieldName); got != "ac" {
		t.Errorf("buffer = %q, want %q", got, "ac")
	}

	f.Unfocus()
	if _, ok := f.Selected(); ok {
		t.Error("still focused after Unfocus")
	}
	if got := f.Buffer(FieldName); got != "ac" {
		t.Errorf("Unfocus changed buffer to %q", got)
	}
}

func TestFocusBackspace(t *testing.T) {
	f := NewFocus()
	f.Select(FieldDescription)
	f.Backspace() // empty buffer is a no-op
	for _, r := range "né" {
		f.Append(r)
	}
	f.Backspace()
	if got := f.Buffer(FieldDescription); got != "n" {
		t.Errorf("buffer = %q, want %q", got, "n")
	}
}

func TestFocusAppendUnfocusedPanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !IsInvariantViolation(err) {
			t.Fatalf("expected InvariantViolation panic, got %v", r)
		}
	}()
	NewFocus().Append('x')
}

func TestFocusClear(t *testing.T) {
	f := NewFocus()
	f.Select(FieldName)
	f.Append('x')
	f.SetBuffer(FieldSearch, "cat")
	f.Clear()
	if f.Len() != 0 {
		t.Errorf("buffers left after Clear: %v", f.Fields())
	}
	if _, ok := f.Selected(); ok {
		t.Error("still focused after Clear")
	}
}

func TestMessageQueueExpiry(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	q := NewMessageQueue()
	q.Push("m1", t0)
	q.Push("m2", t0.Add(time.Second))

	if !q.ExpireIfDue(t0.Add(3500*time.Millisecond), 3*time.Second) {
		t.Fatal("m1 not expired at t0+3.5s")
	}
	if got := q.Snapshot(); len(got) != 1 || got[0] != "m2" {
		t.Fatalf("after first expiry = %v, want [m2]", got)
	}
	if q.ExpireIfDue(t0.Add(3900*time.Millisecond), 3*time.Second) {
		t.Error("m2 expired early")
	}
	if !q.ExpireIfDue(t0.Add(4600*time.Millisecond), 3*time.Second) {
		t.Fatal("m2 not expired at t0+4.6s")
	}
	if q.Len() != 0 {
		t.Errorf("queue not empty: %v", q.Snapshot())
	}
	if q.ExpireIfDue(t0.Add(time.Hour), 3*time.Second) {
		t.Error("expiry on empty queue reported a pop")
	}
}

func TestMessageQueueBoundary(t *testing.T) {
	t0 := time.Unix(0, 0)
	q := NewMessageQueue()
	q.Push("m", t0)
	if !q.ExpireIfDue(t0.Add(3*time.Second), 3*time.Second) {
		t.Error("message exactly timeout old should expire")
	}
}

func TestParseCount(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr error
	}{
		{"3", 3, nil},
		{" 12 ", 12, nil},
		{"", 0, errEmptyNumber},
		{"x", 0, errInvalidDigit},
		{"3.5", 0, errInvalidDigit},
		{"99999999999", 0, errTooLarge},
		{"-99999999999", 0, errTooSmall},
	}
	for _, tc := range cases {
		got, err := parseCount(tc.in)
		if err != tc.wantErr {
			t.Errorf("parseCount(%q) err = %v, want %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("parseCount(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestKeyMatchesBindings(t *testing.T) {
	km := DefaultKeyMap()
	cases := []struct {
		k    Key
		want string
	}{
		{Char('q'), "quit"},
		{Named("ctrl+c"), "quit"},
		{KeyBackspace, "back"},
		{KeyEsc, "back"},
		{Char('a'), "add"},
		{Char('j'), "down"},
	}
	for _, tc := range cases {
		var got string
		switch {
		case key.Matches(tc.k, km.Quit):
			got = "quit"
		case key.Matches(tc.k, km.Back):
			got = "back"
		case key.Matches(tc.k, km.Add):
			got = "add"
		case key.Matches(tc.k, km.Down):
			got = "down"
		}
		if got != tc.want {
			t.Errorf("%s matched %q, want %q", tc.k, got, tc.want)
		}
	}
}
