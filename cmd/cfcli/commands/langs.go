package commands

import (
	"cfcli/lib/config"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(langsCmd)
}

var langsCmd = &cobra.Command{
	Use:   "langs",
	Short: "Prints the language codes accepted by the judge.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		t := newTable(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Code", "Language"})
		for _, l := range config.Languages() {
			t.AppendRow(table.Row{l.Code, l.Name})
		}
		t.Render()
	},
}
