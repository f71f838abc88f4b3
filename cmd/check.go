package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/spellz/internal/spelling"
)

var checkCmd = &cobra.Command{
	Use:   "check <answer> <word>",
	Short: "Check one answer against a word",
	Long: `Compare an answer with a word the same way practice does: surrounding
whitespace is ignored and letter case does not matter.

Exits with an error when the answer does not match.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		res := spelling.Check(args[0], args[1])
		if !res.Match {
			fmt.Fprintf(cmd.OutOrStdout(), "✗ %q does not spell %q\n", res.Input, res.Target)
			return errNoMatch
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %q\n", res.Target)
		return nil
	},
}

var errNoMatch = errors.New("no match")
