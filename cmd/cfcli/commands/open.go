package commands

import (
	"errors"

	"cfcli/lib/identifier"
	"cfcli/lib/workspace"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(openCmd)
}

var openCmd = &cobra.Command{
	Use:   "open [problem]",
	Short: "Runs open_cmd inside the workspace of a problem (default is the current problem).",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var problem identifier.Problem
		if len(args) > 0 {
			p, err := identifier.ParseProblem(args[0])
			if err != nil {
				return err
			}
			problem = p
		} else {
			state, err := loadState(cfg)
			if err != nil {
				return err
			}
			if state.CurrentProblem == nil {
				return errors.New("no current problem, pass one or parse a problem first")
			}
			problem = *state.CurrentProblem
		}

		return workspace.NewWriter(cfg).Open(cmd.Context(), problem)
	},
}
