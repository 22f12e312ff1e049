package engine

import (
	"sort"
	"unicode/utf8"
)

// Focus tracks which input field owns keystrokes and the text typed into
// each field. Buffers are created lazily, empty, on first use.
type Focus struct {
	selected string
	focused  bool
	buffers  map[string]string
}

// NewFocus returns an unfocused model with no buffers
func NewFocus() *Focus {
	return &Focus{buffers: make(map[string]string)}
}

// Select focuses field, creating its buffer if absent
func (f *Focus) Select(field string) {
	f.selected = field
	f.focused = true
	f.ensure(field)
}

// Unfocus clears the selection. Buffers are kept.
func (f *Focus) Unfocus() {
	f.selected = ""
	f.focused = false
}

// Selected returns the focused field
func (f *Focus) Selected() (string, bool) {
	return f.selected, f.focused
}

// IsFocused reports whether field currently owns keystrokes
func (f *Focus) IsFocused(field string) bool {
	return f.focused && f.selected == field
}

// Buffer returns the text of field, empty if it has none
func (f *Focus) Buffer(field string) string {
	return f.buffers[field]
}

// SetBuffer replaces the text of field
func (f *Focus) SetBuffer(field, text string) {
	f.buffers[field] = text
}

// Append adds r to the focused field
func (f *Focus) Append(r rune) {
	field := f.mustSelected()
	f.buffers[field] += string(r)
}

// Backspace removes the last character of the focused field. It is a no-op
// on an empty buffer.
func (f *Focus) Backspace() {
	field := f.mustSelected()
	buf := f.buffers[field]
	if buf == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(buf)
	f.buffers[field] = buf[:len(buf)-size]
}

// Clear drops the selection and every buffer
func (f *Focus) Clear() {
	f.Unfocus()
	clear(f.buffers)
}

// Fields returns the ids that have a buffer, sorted
func (f *Focus) Fields() []string {
	fields := make([]string, 0, len(f.buffers))
	for k := range f.buffers {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}

// Len returns the number of buffers
func (f *Focus) Len() int {
	return len(f.buffers)
}

func (f *Focus) ensure(field string) {
	if _, ok := f.buffers[field]; !ok {
		f.buffers[field] = ""
	}
}

// mustSelected returns the focused field. Select creates the buffer, so a
// focused field without one is a defect.
func (f *Focus) mustSelected() string {
	if !f.focused {
		violate("edit with no focused input")
	}
	if _, ok := f.buffers[f.selected]; !ok {
		violate("no buffer for focused input %q", f.selected)
	}
	return f.selected
}
