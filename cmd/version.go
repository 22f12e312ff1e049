package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/marcus/shelf/internal/output"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(output.Stdout, "shelf %s\n", versionString())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// versionString prefers the build-time version, then module build info
func versionString() string {
	if version != "" && version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}
