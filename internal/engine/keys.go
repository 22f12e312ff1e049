package engine

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/marcus/shelf/internal/config"
)

// Key is a key press. Printable characters carry Rune; every other key is
// identified by Name using bubbletea's spelling ("enter", "ctrl+c", "up").
type Key struct {
	Rune rune
	Name string
}

// Char returns the key for a printable character
func Char(r rune) Key {
	return Key{Rune: r}
}

// Named returns the key for a non-character key such as "enter"
func Named(name string) Key {
	return Key{Name: name}
}

// Common named keys
var (
	KeyEnter     = Named("enter")
	KeyBackspace = Named("backspace")
	KeyTab       = Named("tab")
	KeyShiftTab  = Named("shift+tab")
	KeyEsc       = Named("esc")
)

// IsChar reports whether k types a character
func (k Key) IsChar() bool {
	return k.Rune != 0
}

// String implements fmt.Stringer; key.Matches compares against it
func (k Key) String() string {
	if k.Rune != 0 {
		return string(k.Rune)
	}
	return k.Name
}

// KeyMap holds the global bindings consulted while no input is focused
type KeyMap struct {
	Quit    key.Binding
	Back    key.Binding
	Debug   key.Binding
	Add     key.Binding
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
}

// DefaultKeyMap returns the built-in bindings
func DefaultKeyMap() KeyMap {
	return NewKeyMap(config.KeysConfig{
		Quit:    []string{"q", "ctrl+c"},
		Back:    []string{"backspace", "esc"},
		Debug:   []string{"d"},
		Add:     []string{"a"},
		Up:      []string{"up", "k"},
		Down:    []string{"down", "j"},
		Refresh: []string{"r", "ctrl+r"},
	})
}

// NewKeyMap builds bindings from configured key names
func NewKeyMap(k config.KeysConfig) KeyMap {
	return KeyMap{
		Quit:    key.NewBinding(key.WithKeys(k.Quit...), key.WithHelp(first(k.Quit), "quit")),
		Back:    key.NewBinding(key.WithKeys(k.Back...), key.WithHelp(first(k.Back), "back")),
		Debug:   key.NewBinding(key.WithKeys(k.Debug...), key.WithHelp(first(k.Debug), "debug")),
		Add:     key.NewBinding(key.WithKeys(k.Add...), key.WithHelp(first(k.Add), "add")),
		Up:      key.NewBinding(key.WithKeys(k.Up...), key.WithHelp(first(k.Up), "up")),
		Down:    key.NewBinding(key.WithKeys(k.Down...), key.WithHelp(first(k.Down), "down")),
		Refresh: key.NewBinding(key.WithKeys(k.Refresh...), key.WithHelp(first(k.Refresh), "reload")),
	}
}

func first(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

// ShortHelp implements help.KeyMap
func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Add, km.Up, km.Down, km.Back, km.Quit}
}

// FullHelp implements help.KeyMap
func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Add, km.Refresh},
		{km.Up, km.Down},
		{km.Back, km.Quit, km.Debug},
	}
}

// FocusedHelp lists the keys understood while an input is focused
func FocusedHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "delete")),
	}
}
