package cmd

import (
	"fmt"

	"github.com/marcus/shelf/internal/output"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Change fields of a boardgame",
	Long: `Change the fields given as flags. With no field flags on a terminal, an
interactive form starts from the stored values.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		b, err := lookup(s, args[0])
		if err != nil {
			return err
		}

		changed := false
		for _, name := range []string{"name", "min", "max", "time", "description"} {
			changed = changed || cmd.Flags().Changed(name)
		}
		switch {
		case changed:
			applyRecordFlags(cmd.Flags(), b)
		case isInteractive():
			if err := promptRecord(b, fmt.Sprintf("Edit #%d", b.ID)); err != nil {
				return err
			}
		default:
			return fmt.Errorf("nothing to change; pass field flags or run on a terminal")
		}

		b.Normalize()
		if err := b.Validate(); err != nil {
			return fmt.Errorf("invalid boardgame: %w", err)
		}
		if err := s.db.UpdateBoardgame(b); err != nil {
			return fmt.Errorf("update boardgame: %w", err)
		}
		s.log.Info("boardgame updated", "id", b.ID, "name", b.Name)

		output.Success("UPDATED #%d %s", b.ID, b.Name)
		return warnSimilar(s, b)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	addRecordFlags(editCmd)
}
