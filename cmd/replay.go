package cmd

import (
	"fmt"
	"strings"

	"github.com/marcus/shelf/internal/catalogio"
	"github.com/marcus/shelf/internal/engine"
	"github.com/marcus/shelf/internal/output"
	"github.com/marcus/shelf/pkg/monitor"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay [script.yaml]",
	Short: "Drive the monitor headlessly from a script",
	Long: `Run the monitor without a terminal, feeding it the key presses, clicks and
waits listed in a YAML script. Each entry is one of:

  - key: a        # "enter", "tab", "esc", "ctrl+c", "space", or a character
  - type: Catan   # one key press per character
  - click: [x, y]
  - move: [x, y]
  - scroll: 1     # negative scrolls up
  - wait: 3s      # lets queued messages expire

Waits run on a virtual clock. When the script ends, the last frame and the
mode stack are printed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		script, err := catalogio.ReadScript(args[0])
		if err != nil {
			return err
		}

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		width, _ := cmd.Flags().GetInt("width")
		height, _ := cmd.Flags().GetInt("height")

		keys := engine.NewKeyMap(s.cfg.Keys)
		e := engine.New(s.db, engine.Options{
			MessageTimeout: s.cfg.UI.MessageTimeout,
			Debug:          s.cfg.UI.Debug,
			Hover:          s.cfg.UI.Hover,
			Keys:           &keys,
			Clock:          script.Now,
			Logger:         s.log,
		})
		frame := monitor.NewFrame(width, height)

		s.log.Info("replay started", "script", args[0], "inputs", script.Len())
		if err := engine.Run(e, script, frame, s.cfg.UI.PollInterval); err != nil {
			return fmt.Errorf("replay: %w", err)
		}

		if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
			fmt.Fprintln(output.Stdout, frame.Last())
		}
		modes := make([]string, 0, len(e.Modes()))
		for _, m := range e.Modes() {
			modes = append(modes, m.String())
		}
		fmt.Fprintf(output.Stdout, "modes: %s\n", strings.Join(modes, " > "))
		fmt.Fprintf(output.Stdout, "frames: %d, quit: %v\n", frame.Count(), e.QuitRequested())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().Int("width", 80, "screen columns")
	replayCmd.Flags().Int("height", 24, "screen rows")
	replayCmd.Flags().BoolP("quiet", "q", false, "omit the final frame")
}
