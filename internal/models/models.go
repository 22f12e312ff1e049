package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Field limits for a catalog record
const (
	MaxNameLength   = 120
	MaxPlayers      = 100
	MaxPlayTime     = 24 * 60 // minutes
	MaxDescLength   = 4000
	MinPlayersFloor = 1
)

var (
	// ErrInvalidName is returned when a record has an empty or oversized name
	ErrInvalidName = errors.New("invalid name")
	// ErrInvalidPlayers is returned when player counts are out of range
	ErrInvalidPlayers = errors.New("invalid player count")
	// ErrInvalidPlayTime is returned when play time is out of range
	ErrInvalidPlayTime = errors.New("invalid play time")
	// ErrInvalidDescription is returned when the description is too long
	ErrInvalidDescription = errors.New("invalid description")
)

// Boardgame is a catalog record. ID is zero until the record is stored.
type Boardgame struct {
	ID              int64     `json:"id,omitempty" yaml:"id,omitempty"`
	Name            string    `json:"name" yaml:"name"`
	MinPlayers      int       `json:"min_players" yaml:"min_players"`
	MaxPlayers      int       `json:"max_players" yaml:"max_players"`
	PlayTimeMinutes int       `json:"play_time_minutes" yaml:"play_time_minutes"`
	Description     string    `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt       time.Time `json:"created_at,omitempty" yaml:"-"`
	UpdatedAt       time.Time `json:"updated_at,omitempty" yaml:"-"`
}

// HasID reports whether the record has been persisted
func (b *Boardgame) HasID() bool {
	return b.ID > 0
}

// Players formats the player range, e.g. "3-4" or "2"
func (b *Boardgame) Players() string {
	if b.MinPlayers == b.MaxPlayers {
		return fmt.Sprintf("%d", b.MinPlayers)
	}
	return fmt.Sprintf("%d-%d", b.MinPlayers, b.MaxPlayers)
}

// PlayTime formats the play time, "-" when unknown
func (b *Boardgame) PlayTime() string {
	if b.PlayTimeMinutes <= 0 {
		return "-"
	}
	if b.PlayTimeMinutes < 60 {
		return fmt.Sprintf("%dm", b.PlayTimeMinutes)
	}
	h, m := b.PlayTimeMinutes/60, b.PlayTimeMinutes%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%02dm", h, m)
}

// Normalize trims surrounding whitespace from text fields
func (b *Boardgame) Normalize() {
	b.Name = strings.TrimSpace(b.Name)
	b.Description = strings.TrimSpace(b.Description)
}

// Validate checks field ranges. The returned error wraps one of the
// ErrInvalid* sentinels.
func (b *Boardgame) Validate() error {
	name := strings.TrimSpace(b.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidName)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name longer than %d characters", ErrInvalidName, MaxNameLength)
	}
	if b.MinPlayers < MinPlayersFloor {
		return fmt.Errorf("%w: min players must be at least %d", ErrInvalidPlayers, MinPlayersFloor)
	}
	if b.MaxPlayers > MaxPlayers {
		return fmt.Errorf("%w: max players must be at most %d", ErrInvalidPlayers, MaxPlayers)
	}
	if b.MaxPlayers < b.MinPlayers {
		return fmt.Errorf("%w: max players (%d) below min players (%d)", ErrInvalidPlayers, b.MaxPlayers, b.MinPlayers)
	}
	if b.PlayTimeMinutes < 0 || b.PlayTimeMinutes > MaxPlayTime {
		return fmt.Errorf("%w: must be between 0 and %d minutes", ErrInvalidPlayTime, MaxPlayTime)
	}
	if len(b.Description) > MaxDescLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidDescription, MaxDescLength)
	}
	return nil
}
