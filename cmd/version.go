package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/spellz/internal/selfupdate"
)

// version is set with -ldflags "-X github.com/abhisek/spellz/cmd.version=v1.2.3".
var version = selfupdate.DevVersion

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "spellz", version)
	},
}
