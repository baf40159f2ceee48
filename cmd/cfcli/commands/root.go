package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"cfcli/lib/config"
	"cfcli/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	dumpHttp   string
)

var rootCmd = &cobra.Command{
	Use:           "cfcli",
	Short:         "cfcli fetches codeforces problems and their sample tests into a local workspace.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default ~/.config/cfcli.json5).")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging.")
	rootCmd.PersistentFlags().StringVar(&dumpHttp, "dump-http", "", "Write every http request and response into this directory.")
}

// ExecuteContext runs the cli and returns the process exit code.
func ExecuteContext(ctx context.Context) int {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var cfgErr *config.ConfigError
	if errors.As(err, &cfgErr) && errors.Is(err, config.ErrConfigNotFound) {
		slog.Error("failed to read config, run `cfcli config init` to create one", "path", cfgErr.Path)
	}
	fmt.Fprintln(os.Stderr, err)
	return 1
}
