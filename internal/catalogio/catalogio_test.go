package catalogio

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/marcus/shelf/internal/engine"
	"github.com/marcus/shelf/internal/models"
)

func TestFormatFromPath(t *testing.T) {
	cases := []struct {
		path string
		want Format
		err  bool
	}{
		{"games.yaml", FormatYAML, false},
		{"games.YML", FormatYAML, false},
		{"games.json", FormatJSON, false},
		{"games.jsonc", FormatJSON, false},
		{"games.csv", "", true},
		{"games", "", true},
	}
	for _, tc := range cases {
		got, err := FormatFromPath(tc.path)
		if tc.err {
			if !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("FormatFromPath(%q) err = %v, want ErrUnknownFormat", tc.path, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("FormatFromPath(%q) = %q, %v; want %q", tc.path, got, err, tc.want)
		}
	}
}

func TestDecodeYAML(t *testing.T) {
	doc := `
boardgames:
  - name: "  Catan "
    min_players: 3
    max_players: 4
    play_time_minutes: 90
  - name: Azul
    min_players: 2
    max_players: 4
    description: Tile drafting.
`
	games, err := Decode([]byte(doc), FormatYAML)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("got %d games", len(games))
	}
	if games[0].Name != "Catan" || games[0].PlayTimeMinutes != 90 {
		t.Errorf("games[0] = %+v", games[0])
	}
	if games[1].Description != "Tile drafting." {
		t.Errorf("games[1] = %+v", games[1])
	}

	list := "- name: Brass\n  min_players: 2\n  max_players: 4\n  id: 9\n"
	games, err = Decode([]byte(list), FormatYAML)
	if err != nil {
		t.Fatalf("Decode list: %v", err)
	}
	if len(games) != 1 || games[0].Name != "Brass" || games[0].ID != 0 {
		t.Errorf("bare list = %+v", games)
	}
}

func TestDecodeJSONC(t *testing.T) {
	doc := `{
  // favourite games
  "boardgames": [
    {"name": "Catan", "min_players": 3, "max_players": 4,},
    /* a solo game */
    {"name": "Onirim", "min_players": 1, "max_players": 2},
  ],
}`
	games, err := Decode([]byte(doc), FormatJSON)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(games) != 2 || games[1].Name != "Onirim" {
		t.Errorf("games = %+v", games)
	}
}

func TestDecodeRejectsInvalidRecord(t *testing.T) {
	doc := `[{"name": "Catan", "min_players": 5, "max_players": 4}]`
	_, err := Decode([]byte(doc), FormatJSON)
	if !errors.Is(err, models.ErrInvalidPlayers) {
		t.Fatalf("err = %v, want ErrInvalidPlayers", err)
	}
	if !strings.Contains(err.Error(), `record 1 ("Catan")`) {
		t.Errorf("err = %v, want record position", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	games := []models.Boardgame{
		{ID: 1, Name: "Catan", MinPlayers: 3, MaxPlayers: 4, PlayTimeMinutes: 90},
		{ID: 2, Name: "Azul", MinPlayers: 2, MaxPlayers: 4, Description: "Tiles."},
	}
	for _, format := range []Format{FormatYAML, FormatJSON} {
		var buf bytes.Buffer
		if err := Encode(&buf, games, format); err != nil {
			t.Fatalf("Encode %s: %v", format, err)
		}
		back, err := Decode(buf.Bytes(), format)
		if err != nil {
			t.Fatalf("Decode %s: %v\n%s", format, err, buf.String())
		}
		if len(back) != 2 || back[0].Name != "Catan" || back[1].Description != "Tiles." {
			t.Errorf("%s round trip = %+v", format, back)
		}
	}
}

func TestEncodeEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, nil, FormatJSON); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"boardgames": []`) {
		t.Errorf("empty export = %s", buf.String())
	}
}

func TestReadFilesKeepsArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i, name := range []string{"Agricola", "Brass", "Caylus", "Dominion"} {
		ext := ".yaml"
		content := "- name: " + name + "\n  min_players: 1\n  max_players: 4\n"
		if i%2 == 1 {
			ext = ".jsonc"
			content = `[{"name": "` + name + `", "min_players": 1, "max_players": 4}, // trailing
]`
		}
		p := filepath.Join(dir, name+ext)
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}

	games, err := ReadFiles(context.Background(), paths, 2)
	if err != nil {
		t.Fatalf("ReadFiles: %v", err)
	}
	want := []string{"Agricola", "Brass", "Caylus", "Dominion"}
	if len(games) != len(want) {
		t.Fatalf("got %d games", len(games))
	}
	for i, g := range games {
		if g.Name != want[i] {
			t.Errorf("games[%d] = %s, want %s", i, g.Name, want[i])
		}
	}
}

func TestReadFilesFailsOnBadFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(good, []byte("- name: Azul\n  min_players: 2\n  max_players: 4\n"), 0644)
	os.WriteFile(bad, []byte("{not json"), 0644)

	_, err := ReadFiles(context.Background(), []string{good, bad}, 0)
	if err == nil || !strings.Contains(err.Error(), "bad.json") {
		t.Fatalf("err = %v, want failure naming bad.json", err)
	}
}

func TestParseScript(t *testing.T) {
	script := `
- key: a
- type: Hi
- click: [3, 4]
- move: [5, 6]
- scroll: -1
- key: enter
- key: space
- wait: 100ms
`
	s, err := ParseScript(strings.NewReader(script))
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	want := []engine.Event{
		engine.KeyPress(engine.Char('a')),
		engine.KeyPress(engine.Char('H')),
		engine.KeyPress(engine.Char('i')),
		engine.PointerPress(3, 4),
		engine.PointerMove(5, 6),
		engine.Scroll(0, 0, -1),
		engine.KeyPress(engine.KeyEnter),
		engine.KeyPress(engine.Char(' ')),
	}
	for i, w := range want {
		ev, ok, err := s.Poll(30 * time.Millisecond)
		if err != nil || !ok {
			t.Fatalf("poll %d: ok=%v err=%v", i, ok, err)
		}
		if ev != w {
			t.Errorf("event %d = %v, want %v", i, ev, w)
		}
	}

	start := s.Now()
	for i := 0; i < 4; i++ {
		if _, ok, err := s.Poll(30 * time.Millisecond); ok || err != nil {
			t.Fatalf("wait poll %d: ok=%v err=%v", i, ok, err)
		}
	}
	if got := s.Now().Sub(start); got != 100*time.Millisecond {
		t.Errorf("clock advanced %v, want 100ms", got)
	}
	if _, _, err := s.Poll(30 * time.Millisecond); !errors.Is(err, engine.ErrSourceExhausted) {
		t.Errorf("err = %v, want ErrSourceExhausted", err)
	}
}

func TestParseScriptRejectsBadSteps(t *testing.T) {
	cases := []string{
		"- {}",
		"- key: a\n  type: b",
		"- click: [1]",
		"- wait: soon",
		"- wait: -1s",
		"- press: a",
	}
	for _, c := range cases {
		if _, err := ParseScript(strings.NewReader(c)); err == nil {
			t.Errorf("ParseScript(%q) succeeded", c)
		}
	}
}
