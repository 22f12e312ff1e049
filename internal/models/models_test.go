package models

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	valid := Boardgame{Name: "Catan", MinPlayers: 3, MaxPlayers: 4, PlayTimeMinutes: 60}

	tests := []struct {
		name    string
		mutate  func(b *Boardgame)
		wantErr error
	}{
		{"valid", func(b *Boardgame) {}, nil},
		{"single player game", func(b *Boardgame) { b.MinPlayers, b.MaxPlayers = 1, 1 }, nil},
		{"unknown play time", func(b *Boardgame) { b.PlayTimeMinutes = 0 }, nil},
		{"empty name", func(b *Boardgame) { b.Name = "" }, ErrInvalidName},
		{"blank name", func(b *Boardgame) { b.Name = "   " }, ErrInvalidName},
		{"long name", func(b *Boardgame) { b.Name = strings.Repeat("x", MaxNameLength+1) }, ErrInvalidName},
		{"zero min players", func(b *Boardgame) { b.MinPlayers = 0 }, ErrInvalidPlayers},
		{"max below min", func(b *Boardgame) { b.MaxPlayers = 2 }, ErrInvalidPlayers},
		{"too many players", func(b *Boardgame) { b.MaxPlayers = MaxPlayers + 1 }, ErrInvalidPlayers},
		{"negative play time", func(b *Boardgame) { b.PlayTimeMinutes = -5 }, ErrInvalidPlayTime},
		{"huge play time", func(b *Boardgame) { b.PlayTimeMinutes = MaxPlayTime + 1 }, ErrInvalidPlayTime},
		{"long description", func(b *Boardgame) { b.Description = strings.Repeat("d", MaxDescLength+1) }, ErrInvalidDescription},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid
			tt.mutate(&b)
			err := b.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPlayersAndPlayTime(t *testing.T) {
	tests := []struct {
		b        Boardgame
		players  string
		playTime string
	}{
		{Boardgame{MinPlayers: 3, MaxPlayers: 4, PlayTimeMinutes: 60}, "3-4", "1h"},
		{Boardgame{MinPlayers: 2, MaxPlayers: 2, PlayTimeMinutes: 45}, "2", "45m"},
		{Boardgame{MinPlayers: 1, MaxPlayers: 5, PlayTimeMinutes: 150}, "1-5", "2h30m"},
		{Boardgame{MinPlayers: 1, MaxPlayers: 1}, "1", "-"},
	}

	for _, tt := range tests {
		if got := tt.b.Players(); got != tt.players {
			t.Errorf("Players() = %q, want %q", got, tt.players)
		}
		if got := tt.b.PlayTime(); got != tt.playTime {
			t.Errorf("PlayTime() = %q, want %q", got, tt.playTime)
		}
	}
}

func TestNormalize(t *testing.T) {
	b := Boardgame{Name: "  Azul \t", Description: "\ntiles\n"}
	b.Normalize()
	if b.Name != "Azul" {
		t.Errorf("Name = %q, want %q", b.Name, "Azul")
	}
	if b.Description != "tiles" {
		t.Errorf("Description = %q, want %q", b.Description, "tiles")
	}
}

func TestHasID(t *testing.T) {
	var b Boardgame
	if b.HasID() {
		t.Error("new record should not have an id")
	}
	b.ID = 7
	if !b.HasID() {
		t.Error("stored record should have an id")
	}
}
