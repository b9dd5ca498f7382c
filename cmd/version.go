package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// version/commit/buildDate are overridable at build time via
// -ldflags "-X emberdb/cmd.version=...".
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionStr = `
Version: %s
Commit: %s
Build date: %s
GOOS: %s-%s`

var versionCmd = &cobra.Command{
	Use: "version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf(
			versionStr+"\n",
			version,
			commit,
			buildDate,
			runtime.GOOS,
			runtime.GOARCH,
		)
	},
}
