package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(stateCmd)
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Prints the current contest, problem and logged in handle.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		state, err := loadState(cfg)
		if err != nil {
			return err
		}

		contest := "-"
		if state.CurrentContest != nil {
			contest = state.CurrentContest.String()
		}
		problem := "-"
		if state.CurrentProblem != nil {
			problem = state.CurrentProblem.String()
		}
		handle := "-"
		if state.Handle != "" {
			handle = state.Handle
		}

		t := newTable(cmd.OutOrStdout())
		t.AppendRows([]table.Row{
			{"contest", contest},
			{"problem", problem},
			{"handle", handle},
		})
		t.Render()
		return nil
	},
}
