package cmd

import (
	"fmt"

	"github.com/marcus/shelf/internal/output"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [id...]",
	Aliases: []string{"rm"},
	Short:   "Remove one or more boardgames",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		failed := 0
		for _, arg := range args {
			b, err := lookup(s, arg)
			if err != nil {
				output.Error("%v", err)
				failed++
				continue
			}
			if err := s.db.DeleteBoardgame(b.ID); err != nil {
				output.Error("failed to delete #%d: %v", b.ID, err)
				failed++
				continue
			}
			s.log.Info("boardgame deleted", "id", b.ID, "name", b.Name)
			fmt.Fprintf(output.Stdout, "DELETED #%d %s\n", b.ID, b.Name)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d deletions failed", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
