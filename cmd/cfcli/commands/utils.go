package commands

import (
	"io"

	"cfcli/lib/config"
	"cfcli/lib/restyutil"
	"cfcli/lib/scrapers/codeforces/core"

	"github.com/jedib0t/go-pretty/v6/table"
)

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	path, err := config.DefaultPath()
	if err != nil {
		return "", &config.ConfigError{Path: "~/.config/cfcli.json5", Err: err}
	}
	return path, nil
}

func loadConfig() (config.Config, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(path)
}

func loadState(cfg config.Config) (config.AppState, error) {
	return config.ReadState(cfg)
}

// disabled in tests, the bypass picks a random browser user agent
var cloudflareBypass = true

func newClient(cfg config.Config) (*core.Client, error) {
	opts := core.ClientOptions{
		BaseUrl:          cfg.JudgeURL,
		Timeout:          cfg.FetchTimeout(),
		CloudflareBypass: cloudflareBypass,
	}
	if dumpHttp != "" {
		out, err := restyutil.NewFilesystemOutput(dumpHttp)
		if err != nil {
			return nil, err
		}
		opts.InstrumentOutput = out
	}
	return core.NewClient(opts)
}

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}
