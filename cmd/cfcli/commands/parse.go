package commands

import (
	"log/slog"

	"cfcli/lib/config"
	"cfcli/lib/identifier"
	"cfcli/lib/pipeline"
	"cfcli/lib/workspace"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse <contest|problem>",
	Short: "Fetches the sample tests of a problem (ex. 1879A) or every problem of a contest (ex. 1879).",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		remote, err := identifier.Parse(args[0])
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newClient(cfg)
		if err != nil {
			return err
		}
		runner := pipeline.NewRunner(client, workspace.NewWriter(cfg))

		results, parseErr := runner.Parse(cmd.Context(), remote)
		if remote.IsContest() && results != nil {
			renderResults(cmd, results)
		}

		if anySucceeded(results) {
			err = updateState(cfg, remote)
			if err != nil {
				slog.Warn("failed to update app state", "err", err)
			}
		}

		return parseErr
	},
}

func renderResults(cmd *cobra.Command, results []pipeline.Result) {
	t := newTable(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Problem", "Tests", "Status"})
	for _, res := range results {
		status := text.FgGreen.Sprint("ok")
		if res.Err != nil {
			status = text.FgRed.Sprint(res.Err.Error())
		}
		t.AppendRow(table.Row{res.Problem.Key(), res.Tests, status})
	}
	t.Render()
}

func anySucceeded(results []pipeline.Result) bool {
	for _, res := range results {
		if res.Err == nil {
			return true
		}
	}
	return false
}

func updateState(cfg config.Config, remote identifier.ContestOrProblem) error {
	state, err := loadState(cfg)
	if err != nil {
		return err
	}
	state.SetCurrent(remote)
	return config.WriteState(cfg, state)
}
