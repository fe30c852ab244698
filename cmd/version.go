package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), versionString(version))
	},
}

// versionString labels builds whose version is not a release tag.
func versionString(v string) string {
	if !semver.IsValid(v) {
		return fmt.Sprintf("rote %s (development build)", v)
	}
	return "rote " + semver.Canonical(v)
}
