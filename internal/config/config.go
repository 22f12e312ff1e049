package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configDir  = ".shelf"
	configName = "config"
	configType = "toml"
	dbFile     = "catalog.db"

	// EnvPrefix prefixes environment overrides, e.g. SHELF_DB_PATH
	EnvPrefix = "SHELF"
	// EnvConfig names an explicit config file, bypassing <base>/.shelf/config.toml
	EnvConfig = "SHELF_CONFIG"
)

// Config holds application configuration
type Config struct {
	DB   DBConfig   `mapstructure:"db"`
	UI   UIConfig   `mapstructure:"ui"`
	Keys KeysConfig `mapstructure:"keys"`
	Log  LogConfig  `mapstructure:"log"`
}

// DBConfig holds sqlite settings
type DBConfig struct {
	Path   string `mapstructure:"path"`
	Driver string `mapstructure:"driver"`
}

// UIConfig holds monitor settings
type UIConfig struct {
	MessageTimeout time.Duration `mapstructure:"message_timeout"`
	PollInterval   time.Duration `mapstructure:"poll_interval"`
	Debug          bool          `mapstructure:"debug"`
	Hover          bool          `mapstructure:"hover"`
}

// KeysConfig holds the global key bindings used while no input is focused
type KeysConfig struct {
	Quit    []string `mapstructure:"quit"`
	Back    []string `mapstructure:"back"`
	Debug   []string `mapstructure:"debug"`
	Add     []string `mapstructure:"add"`
	Up      []string `mapstructure:"up"`
	Down    []string `mapstructure:"down"`
	Refresh []string `mapstructure:"refresh"`
}

// LogConfig holds slog settings. An empty File discards logs.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// flagKeys maps persistent flag names to config keys
var flagKeys = map[string]string{
	"db":        "db.path",
	"driver":    "db.driver",
	"debug":     "ui.debug",
	"log-file":  "log.file",
	"log-level": "log.level",
}

// Path returns the config file location for baseDir, honoring SHELF_CONFIG
func Path(baseDir string) string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return filepath.Join(baseDir, configDir, configName+"."+configType)
}

func setDefaults(v *viper.Viper, baseDir string) {
	v.SetDefault("db.path", filepath.Join(baseDir, configDir, dbFile))
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("ui.message_timeout", 3*time.Second)
	v.SetDefault("ui.poll_interval", 30*time.Millisecond)
	v.SetDefault("ui.debug", false)
	v.SetDefault("ui.hover", true)
	v.SetDefault("keys.quit", []string{"q", "ctrl+c"})
	v.SetDefault("keys.back", []string{"backspace", "esc"})
	v.SetDefault("keys.debug", []string{"d"})
	v.SetDefault("keys.add", []string{"a"})
	v.SetDefault("keys.up", []string{"up", "k"})
	v.SetDefault("keys.down", []string{"down", "j"})
	v.SetDefault("keys.refresh", []string{"r", "ctrl+r"})
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// Load reads configuration for baseDir. Precedence, lowest first: defaults,
// config file, SHELF_* environment, changed flags in flags (may be nil).
// A missing config file is not an error.
func Load(baseDir string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, baseDir)

	v.SetConfigType(configType)
	v.SetConfigFile(Path(baseDir))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.UI.MessageTimeout <= 0 {
		return nil, fmt.Errorf("ui.message_timeout must be positive, got %s", cfg.UI.MessageTimeout)
	}
	if cfg.UI.PollInterval <= 0 {
		return nil, fmt.Errorf("ui.poll_interval must be positive, got %s", cfg.UI.PollInterval)
	}

	return &cfg, nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// Save writes cfg to the config file for baseDir and returns its path
func Save(baseDir string, cfg *Config) (string, error) {
	path := Path(baseDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType(configType)
	v.Set("db.path", cfg.DB.Path)
	v.Set("db.driver", cfg.DB.Driver)
	v.Set("ui.message_timeout", cfg.UI.MessageTimeout.String())
	v.Set("ui.poll_interval", cfg.UI.PollInterval.String())
	v.Set("ui.debug", cfg.UI.Debug)
	v.Set("ui.hover", cfg.UI.Hover)
	v.Set("keys.quit", cfg.Keys.Quit)
	v.Set("keys.back", cfg.Keys.Back)
	v.Set("keys.debug", cfg.Keys.Debug)
	v.Set("keys.add", cfg.Keys.Add)
	v.Set("keys.up", cfg.Keys.Up)
	v.Set("keys.down", cfg.Keys.Down)
	v.Set("keys.refresh", cfg.Keys.Refresh)
	v.Set("log.file", cfg.Log.File)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
