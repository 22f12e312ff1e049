package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/shelf/internal/config"
	"github.com/marcus/shelf/internal/db"
	"github.com/marcus/shelf/internal/engine"
	"github.com/marcus/shelf/internal/output"
	"github.com/marcus/shelf/internal/workdir"
	"github.com/marcus/shelf/pkg/monitor"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	version string
	baseDir string
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "shelf",
	Short: "Terminal catalog for a boardgame collection",
	Long: `shelf - keep track of the boardgames on your shelf.

Run without arguments to open the full-screen monitor. Subcommands add, edit,
list and move records from scripts.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMonitor,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		output.Error("%v", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initBaseDir)

	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "catalog database path (default .shelf/catalog.db)")
	pf.String("driver", "", "sqlite driver: sqlite (pure Go) or sqlite3 (cgo)")
	pf.Bool("debug", false, "enable the monitor's debug key")
	pf.String("log-file", "", "write structured logs to this file")
	pf.String("log-level", "", "log level: debug, info, warn, error")
}

func initBaseDir() {
	var err error
	baseDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %v\n", err)
		os.Exit(1)
	}
	baseDir = workdir.ResolveBaseDir(baseDir)
}

// getBaseDir returns the catalog root, the directory holding .shelf
func getBaseDir() string {
	return baseDir
}

// session is the per-command environment: config, logger and store
type session struct {
	cfg     *config.Config
	log     *slog.Logger
	db      *db.DB
	closers []io.Closer
}

// openSession loads configuration with cmd's flags applied, sets up logging
// and opens the catalog
func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(getBaseDir(), cmd.Flags())
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg}

	logger, closer, err := newLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	s.log = logger
	if closer != nil {
		s.closers = append(s.closers, closer)
	}
	slog.SetDefault(logger)

	database, err := db.Open(cfg.DB.Path, cfg.DB.Driver)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.db = database
	s.closers = append(s.closers, database)
	logger.Debug("catalog opened", "path", database.Path(), "driver", database.Driver(), "command", cmd.Name())
	return s, nil
}

// Close releases the store and the log file, newest first
func (s *session) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i].Close())
	}
	return errors.Join(errs...)
}

// newLogger returns a JSON slog logger writing to cfg.File, or a discarding
// one when no file is configured
func newLogger(cfg config.LogConfig) (*slog.Logger, io.Closer, error) {
	var level slog.Level
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, nil, fmt.Errorf("log level: %w", err)
		}
	}
	if cfg.File == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	h := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(h), f, nil
}

// isInteractive reports whether stdin and stdout are both terminals
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func runMonitor(cmd *cobra.Command, args []string) error {
	if !isInteractive() {
		return errors.New("the monitor needs a terminal; use a subcommand or `shelf replay` instead")
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	keys := engine.NewKeyMap(s.cfg.Keys)
	e := engine.New(s.db, engine.Options{
		MessageTimeout: s.cfg.UI.MessageTimeout,
		Debug:          s.cfg.UI.Debug,
		Hover:          s.cfg.UI.Hover,
		Keys:           &keys,
		Logger:         s.log,
	})
	model := monitor.NewModel(e, monitor.Options{
		PollInterval:  s.cfg.UI.PollInterval,
		MarkdownStyle: monitor.StyleAuto,
	})

	mouse := tea.WithMouseCellMotion()
	if s.cfg.UI.Hover {
		mouse = tea.WithMouseAllMotion()
	}
	s.log.Info("monitor started", "version", version)
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), mouse).Run(); err != nil {
		return fmt.Errorf("monitor: %w", err)
	}
	s.log.Info("monitor exited")
	return nil
}
