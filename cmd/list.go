package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/marcus/shelf/internal/db"
	"github.com/marcus/shelf/internal/models"
	"github.com/marcus/shelf/internal/output"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the catalog",
	Long:    `List every boardgame by name, or the fuzzy matches for --search, best first.`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		query, _ := cmd.Flags().GetString("search")
		games, err := s.db.SearchBoardgames(query)
		if err != nil {
			return fmt.Errorf("list boardgames: %w", err)
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			if games == nil {
				games = []models.Boardgame{}
			}
			return output.JSON(games)
		}

		for _, g := range games {
			fmt.Fprintln(output.Stdout, output.FormatGameShort(&g))
		}
		if len(games) == 0 {
			if query != "" {
				fmt.Fprintf(output.Stdout, "No boardgames matching '%s'\n", query)
			} else {
				fmt.Fprintln(output.Stdout, "No boardgames yet. Add one with `shelf add`.")
			}
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Display every field of a boardgame",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		jsonOutput, _ := cmd.Flags().GetBool("json")
		b, err := lookup(s, args[0])
		if err != nil {
			if jsonOutput && errors.Is(err, db.ErrNotFound) {
				output.JSONError("not_found", err.Error())
			}
			return err
		}

		if jsonOutput {
			return output.JSON(b)
		}
		fmt.Fprint(output.Stdout, output.FormatGameLong(b))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)

	listCmd.Flags().StringP("search", "s", "", "fuzzy filter on name")
	listCmd.Flags().Bool("json", false, "JSON output")
	showCmd.Flags().Bool("json", false, "JSON output")
}

// parseID parses a record id argument, accepting a leading '#'
func parseID(arg string) (int64, error) {
	if len(arg) > 0 && arg[0] == '#' {
		arg = arg[1:]
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid boardgame id %q", arg)
	}
	return id, nil
}

// lookup loads the record named by an id argument
func lookup(s *session, arg string) (*models.Boardgame, error) {
	id, err := parseID(arg)
	if err != nil {
		return nil, err
	}
	return s.db.GetBoardgame(id)
}
