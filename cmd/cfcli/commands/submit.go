package commands

import (
	"errors"

	"cfcli/lib/identifier"

	"github.com/spf13/cobra"
)

var errSubmitNotImplemented = errors.New("submit is not implemented yet")

func init() {
	rootCmd.AddCommand(submitCmd)
}

var submitCmd = &cobra.Command{
	Use:   "submit <problem>",
	Short: "Submits the solution of a problem (not implemented yet).",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := identifier.ParseProblem(args[0])
		if err != nil {
			return err
		}
		return errSubmitNotImplemented
	},
}
