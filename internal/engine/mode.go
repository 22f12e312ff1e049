package engine

import "fmt"

// ModeKind identifies a screen
type ModeKind int

const (
	ModeMain ModeKind = iota
	ModeAdding
	ModeEditing
	ModeDeleting
	ModeQuitting
)

var modeNames = map[ModeKind]string{
	ModeMain:     "Main",
	ModeAdding:   "Adding",
	ModeEditing:  "Editing",
	ModeDeleting: "Deleting",
	ModeQuitting: "Quitting",
}

func (k ModeKind) String() string {
	if name, ok := modeNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ModeKind(%d)", int(k))
}

// Mode is the active screen. RecordID is set for Editing and Deleting.
type Mode struct {
	Kind     ModeKind
	RecordID int64
}

// Main is the root mode
var Main = Mode{Kind: ModeMain}

func (m Mode) String() string {
	if m.RecordID != 0 {
		return fmt.Sprintf("%s(%d)", m.Kind, m.RecordID)
	}
	return m.Kind.String()
}

// ModeStack is the navigation history. It is never empty: the bottom mode is
// seeded at construction and Pop refuses to remove it.
type ModeStack struct {
	modes []Mode
}

// NewModeStack returns a stack holding only root
func NewModeStack(root Mode) *ModeStack {
	return &ModeStack{modes: []Mode{root}}
}

// Push makes m the current mode
func (s *ModeStack) Push(m Mode) {
	s.modes = append(s.modes, m)
}

// Pop removes the current mode and reports whether it did. Popping the root
// mode is a no-op.
func (s *ModeStack) Pop() bool {
	if len(s.modes) <= 1 {
		return false
	}
	s.modes = s.modes[:len(s.modes)-1]
	return true
}

// Current returns the top mode
func (s *ModeStack) Current() Mode {
	if len(s.modes) == 0 {
		violate("mode stack is empty")
	}
	return s.modes[len(s.modes)-1]
}

// Previous returns the mode below the top, the "back" target
func (s *ModeStack) Previous() (Mode, bool) {
	if len(s.modes) < 2 {
		return Mode{}, false
	}
	return s.modes[len(s.modes)-2], true
}

// Len returns the stack depth
func (s *ModeStack) Len() int {
	return len(s.modes)
}

// Modes returns a copy of the stack, bottom first
func (s *ModeStack) Modes() []Mode {
	out := make([]Mode, len(s.modes))
	copy(out, s.modes)
	return out
}
