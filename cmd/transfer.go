package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/marcus/shelf/internal/catalogio"
	"github.com/marcus/shelf/internal/output"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [file...]",
	Short: "Add boardgames from YAML or JSON files",
	Long: `Add every record in the given files. The format follows the extension:
.yaml/.yml or .json/.jsonc (comments and trailing commas allowed). Files are
parsed in parallel; nothing is stored unless every record is valid.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		games, err := catalogio.ReadFiles(cmd.Context(), args, runtime.GOMAXPROCS(0))
		if err != nil {
			return err
		}
		if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
			fmt.Fprintf(output.Stdout, "%d boardgames would be imported\n", len(games))
			return nil
		}
		if err := s.db.CreateBoardgames(games); err != nil {
			return fmt.Errorf("import: %w", err)
		}
		s.log.Info("catalog imported", "files", len(args), "records", len(games))

		output.Success("IMPORTED %d boardgames", len(games))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the catalog as YAML or JSON",
	Long: `Write every record to file, or to stdout when no file is given. The format
comes from --format, else from the file extension, else YAML.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		format := catalogio.FormatYAML
		if name, _ := cmd.Flags().GetString("format"); name != "" {
			if format, err = catalogio.ParseFormat(name); err != nil {
				return err
			}
		} else if len(args) == 1 {
			if format, err = catalogio.FormatFromPath(args[0]); err != nil {
				return err
			}
		}

		games, err := s.db.ListBoardgames()
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}

		if len(args) == 0 {
			return catalogio.Encode(output.Stdout, games, format)
		}
		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if err := catalogio.Encode(f, games, format); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		output.Success("EXPORTED %d boardgames to %s", len(games), args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)

	importCmd.Flags().Bool("dry-run", false, "validate files without storing anything")
	exportCmd.Flags().StringP("format", "f", "", "yaml or json")
}
