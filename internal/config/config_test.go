package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestLoad(t *testing.T) {
	t.Run("defaults without config file", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(EnvConfig, "")

		cfg, err := Load(dir, nil)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		if want := filepath.Join(dir, ".shelf", "catalog.db"); cfg.DB.Path != want {
			t.Errorf("DB.Path: got %q, want %q", cfg.DB.Path, want)
		}
		if cfg.DB.Driver != "sqlite" {
			t.Errorf("DB.Driver: got %q, want sqlite", cfg.DB.Driver)
		}
		if cfg.UI.MessageTimeout != 3*time.Second {
			t.Errorf("MessageTimeout: got %s, want 3s", cfg.UI.MessageTimeout)
		}
		if cfg.UI.PollInterval != 30*time.Millisecond {
			t.Errorf("PollInterval: got %s, want 30ms", cfg.UI.PollInterval)
		}
		if !reflect.DeepEqual(cfg.Keys.Quit, []string{"q", "ctrl+c"}) {
			t.Errorf("Keys.Quit: got %v", cfg.Keys.Quit)
		}
		if cfg.UI.Debug {
			t.Error("Debug should default to false")
		}
	})

	t.Run("existing file", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(EnvConfig, "")
		if err := os.MkdirAll(filepath.Join(dir, ".shelf"), 0755); err != nil {
			t.Fatalf("setup: mkdir failed: %v", err)
		}

		data := `
[db]
path = "/tmp/games.db"

[ui]
message_timeout = "5s"
debug = true

[keys]
quit = ["x"]
`
		if err := os.WriteFile(filepath.Join(dir, ".shelf", "config.toml"), []byte(data), 0644); err != nil {
			t.Fatalf("setup: write failed: %v", err)
		}

		cfg, err := Load(dir, nil)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		if cfg.DB.Path != "/tmp/games.db" {
			t.Errorf("DB.Path: got %q", cfg.DB.Path)
		}
		if cfg.UI.MessageTimeout != 5*time.Second {
			t.Errorf("MessageTimeout: got %s, want 5s", cfg.UI.MessageTimeout)
		}
		if !cfg.UI.Debug {
			t.Error("Debug: got false, want true")
		}
		if !reflect.DeepEqual(cfg.Keys.Quit, []string{"x"}) {
			t.Errorf("Keys.Quit: got %v, want [x]", cfg.Keys.Quit)
		}
		// untouched keys keep their defaults
		if cfg.UI.PollInterval != 30*time.Millisecond {
			t.Errorf("PollInterval: got %s, want 30ms", cfg.UI.PollInterval)
		}
	})

	t.Run("environment overrides file", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(EnvConfig, "")
		t.Setenv("SHELF_DB_DRIVER", "sqlite3")
		t.Setenv("SHELF_UI_MESSAGE_TIMEOUT", "750ms")

		cfg, err := Load(dir, nil)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.DB.Driver != "sqlite3" {
			t.Errorf("DB.Driver: got %q, want sqlite3", cfg.DB.Driver)
		}
		if cfg.UI.MessageTimeout != 750*time.Millisecond {
			t.Errorf("MessageTimeout: got %s, want 750ms", cfg.UI.MessageTimeout)
		}
	})

	t.Run("changed flags win", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(EnvConfig, "")
		t.Setenv("SHELF_DB_PATH", "/from/env.db")

		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.String("db", "", "")
		flags.Bool("debug", false, "")
		if err := flags.Parse([]string{"--db", "/from/flag.db", "--debug"}); err != nil {
			t.Fatalf("parse flags: %v", err)
		}

		cfg, err := Load(dir, flags)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.DB.Path != "/from/flag.db" {
			t.Errorf("DB.Path: got %q, want /from/flag.db", cfg.DB.Path)
		}
		if !cfg.UI.Debug {
			t.Error("Debug: got false, want true")
		}
	})

	t.Run("rejects non-positive timeout", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(EnvConfig, "")
		t.Setenv("SHELF_UI_MESSAGE_TIMEOUT", "0s")

		if _, err := Load(dir, nil); err == nil {
			t.Fatal("expected error for zero message timeout")
		}
	})
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfig, "")

	cfg, err := Load(dir, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cfg.UI.MessageTimeout = 10 * time.Second
	cfg.Keys.Add = []string{"n"}

	path, err := Save(dir, cfg)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if path != filepath.Join(dir, ".shelf", "config.toml") {
		t.Errorf("Save path: got %q", path)
	}

	loaded, err := Load(dir, nil)
	if err != nil {
		t.Fatalf("Load after save failed: %v", err)
	}
	if loaded.UI.MessageTimeout != 10*time.Second {
		t.Errorf("MessageTimeout: got %s, want 10s", loaded.UI.MessageTimeout)
	}
	if !reflect.DeepEqual(loaded.Keys.Add, []string{"n"}) {
		t.Errorf("Keys.Add: got %v, want [n]", loaded.Keys.Add)
	}
}

func TestPathHonorsEnv(t *testing.T) {
	t.Setenv(EnvConfig, "/etc/shelf.toml")
	if got := Path("/work"); got != "/etc/shelf.toml" {
		t.Errorf("Path: got %q, want /etc/shelf.toml", got)
	}
}
