package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/spellz/internal/selfupdate"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update spellz to the latest release",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		target, _ := cmd.Flags().GetString("to")
		out := cmd.OutOrStdout()

		checker := selfupdate.NewChecker(selfupdate.WithTimeout(2 * time.Minute))
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		err := checker.Update(ctx, &selfupdate.UpdateInput{
			CurrentVersion: version,
			TargetVersion:  target,
		}, func(p selfupdate.UpdateProgress) {
			fmt.Fprintln(out, p.Message)
		})
		switch {
		case err == nil:
			return nil
		case errors.Is(err, selfupdate.ErrDevBuild):
			fmt.Fprintln(out, "This is a development build. Install a release to use update.")
			return nil
		case errors.Is(err, selfupdate.ErrAlreadyLatest):
			fmt.Fprintf(out, "spellz %s is the latest release.\n", version)
			return nil
		case errors.Is(err, os.ErrPermission):
			return fmt.Errorf("%w\n\nTry running: sudo spellz update", err)
		default:
			return err
		}
	},
}

func init() {
	updateCmd.Flags().String("to", "", "Install this release tag instead of the latest")
}
