package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"cfcli/cmd/cfcli/commands"
	"cfcli/lib/osutil"
	"cfcli/lib/telemetry"
)

func main() {
	telemetry.InitSlog(false)

	ctx := osutil.SignalContext()
	tel, err := telemetry.SetupFromEnv(ctx, "cfcli")
	if err != nil {
		slog.Warn("failed to setup telemetry", "err", err)
	}

	code := commands.ExecuteContext(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	err = tel.Shutdown(shutdownCtx)
	cancel()
	if err != nil {
		slog.Warn("failed to flush telemetry", "err", err)
	}

	os.Exit(code)
}
