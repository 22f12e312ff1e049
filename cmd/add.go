package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/marcus/shelf/internal/models"
	"github.com/marcus/shelf/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a boardgame to the catalog",
	Long: `Add a boardgame. Without --name on a terminal, an interactive form
asks for each field.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		var b models.Boardgame
		applyRecordFlags(cmd.Flags(), &b)
		if !cmd.Flags().Changed("name") {
			if !isInteractive() {
				return errors.New("--name is required when not on a terminal")
			}
			if err := promptRecord(&b, "New boardgame"); err != nil {
				return err
			}
		}

		b.Normalize()
		if err := b.Validate(); err != nil {
			return fmt.Errorf("invalid boardgame: %w", err)
		}
		id, err := s.db.CreateBoardgame(&b)
		if err != nil {
			return fmt.Errorf("add boardgame: %w", err)
		}
		b.ID = id
		s.log.Info("boardgame added", "id", id, "name", b.Name)

		output.Success("ADDED #%d %s", id, b.Name)
		return warnSimilar(s, &b)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addRecordFlags(addCmd)
}

// addRecordFlags declares the per-field flags shared by add and edit
func addRecordFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("name", "n", "", "boardgame name")
	cmd.Flags().Int("min", 1, "minimum players")
	cmd.Flags().Int("max", 0, "maximum players (default: same as --min)")
	cmd.Flags().IntP("time", "t", 0, "play time in minutes")
	cmd.Flags().StringP("description", "d", "", "description (markdown)")
}

// applyRecordFlags copies changed field flags onto b. For a new record
// (b.ID == 0) min and max take their defaults too.
func applyRecordFlags(flags *pflag.FlagSet, b *models.Boardgame) {
	isNew := b.ID == 0
	if flags.Changed("name") {
		b.Name, _ = flags.GetString("name")
	}
	if isNew || flags.Changed("min") {
		b.MinPlayers, _ = flags.GetInt("min")
	}
	if flags.Changed("max") {
		b.MaxPlayers, _ = flags.GetInt("max")
	} else if isNew {
		b.MaxPlayers = b.MinPlayers
	}
	if flags.Changed("time") {
		b.PlayTimeMinutes, _ = flags.GetInt("time")
	}
	if flags.Changed("description") {
		b.Description, _ = flags.GetString("description")
	}
}

// warnSimilar prints a warning for each stored name that is a near-miss for
// b's
func warnSimilar(s *session, b *models.Boardgame) error {
	games, err := s.db.ListBoardgames()
	if err != nil {
		return err
	}
	for _, n := range models.SimilarNames(b.Name, games, b.ID) {
		output.Warning("'%s' looks similar to existing '%s'", b.Name, n)
	}
	return nil
}

// promptRecord fills b from an interactive form, starting from its current
// values
func promptRecord(b *models.Boardgame, title string) error {
	minStr := countString(b.MinPlayers)
	maxStr := countString(b.MaxPlayers)
	timeStr := countString(b.PlayTimeMinutes)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title(title).Description("Name").Value(&b.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
			huh.NewInput().Title("Min players").Value(&minStr).Validate(countValidator(true)),
			huh.NewInput().Title("Max players").Value(&maxStr).Validate(countValidator(true)),
			huh.NewInput().Title("Play time (minutes)").Value(&timeStr).Validate(countValidator(false)),
			huh.NewText().Title("Description").Value(&b.Description),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("prompt: %w", err)
	}

	b.MinPlayers, _ = strconv.Atoi(strings.TrimSpace(minStr))
	b.MaxPlayers, _ = strconv.Atoi(strings.TrimSpace(maxStr))
	b.PlayTimeMinutes, _ = strconv.Atoi(strings.TrimSpace(timeStr))
	return nil
}

func countString(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func countValidator(required bool) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			if required {
				return errors.New("required")
			}
			return nil
		}
		if n, err := strconv.Atoi(s); err != nil || n < 0 {
			return errors.New("must be a whole number")
		}
		return nil
	}
}
