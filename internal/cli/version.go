package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/billmal071/bookshelf/internal/config"
)

var (
	// Version is set at build time
	Version = "0.1.0"
	// Commit is set at build time
	Commit = "dev"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if short, _ := cmd.Flags().GetBool("short"); short {
			fmt.Fprintln(out, Version)
			return
		}
		fmt.Fprintf(out, "bookshelf %s (%s) %s %s/%s\n", Version, Commit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		fmt.Fprintf(out, "API: %s\n", config.Get().API.BaseURL)
	},
}

func init() {
	versionCmd.Flags().Bool("short", false, "print only the version number")
}
