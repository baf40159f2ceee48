package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cfcli/lib/config"
	"cfcli/lib/identifier"
	"cfcli/lib/scrapers/codeforces/core"
	"cfcli/lib/testutil"

	"github.com/stretchr/testify/require"
)

func execute(t testing.TB, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	require.Equal(t, "1.0\n", out)
}

func TestParseInvalidToken(t *testing.T) {
	_, err := execute(t, "parse", "A")
	require.ErrorIs(t, err, identifier.ErrInvalidProblem)

	_, err = execute(t, "parse", "")
	require.ErrorIs(t, err, identifier.ErrInvalidContest)

	_, err = execute(t, "parse")
	require.Error(t, err)
}

func TestSubmit(t *testing.T) {
	_, err := execute(t, "submit", "1879A")
	require.ErrorIs(t, err, errSubmitNotImplemented)

	_, err = execute(t, "submit", "1879")
	require.ErrorIs(t, err, identifier.ErrInvalidProblem)
}

func TestLangs(t *testing.T) {
	out, err := execute(t, "langs")
	require.NoError(t, err)
	require.Contains(t, out, "GNU G++17 7.3.0")
	require.Contains(t, out, "Rust 1.75.0 (2021)")
}

func TestConfigFlow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfcli.json5")
	cfDir := filepath.Join(dir, "cf")

	out, err := execute(t, "--config", path, "config", "init", "--cf-dir", cfDir)
	require.NoError(t, err)
	require.Contains(t, out, path)

	_, err = execute(t, "--config", path, "config", "init")
	require.ErrorContains(t, err, "already exists")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, cfDir, cfg.CfDir)
	require.FileExists(t, cfg.TemplatePath())

	out, err = execute(t, "--config", path, "config", "lang", "python 3")
	require.NoError(t, err)
	require.Contains(t, out, "31")

	out, err = execute(t, "--config", path, "config", "lang", "75")
	require.NoError(t, err)
	require.Contains(t, out, "Rust")

	_, err = execute(t, "--config", path, "config", "lang", "1000")
	require.ErrorIs(t, err, config.ErrUnknownLanguage)

	out, err = execute(t, "--config", path, "config", "show")
	require.NoError(t, err)
	require.Contains(t, out, "75 (Rust 1.75.0 (2021))")

	out, err = execute(t, "--config", path, "state")
	require.NoError(t, err)
	require.True(t, strings.Contains(out, "contest") && strings.Contains(out, "-"))

	_, err = execute(t, "--config", path, "open")
	require.ErrorContains(t, err, "no current problem")
}

func writeTestConfig(t testing.TB, judgeURL string) (string, config.Config) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "cfcli.json5")

	cfg := config.Default()
	cfg.CfDir = filepath.Join(dir, "cf")
	cfg.JudgeURL = judgeURL
	require.NoError(t, config.Save(path, cfg))
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.TemplatePath()), 0755))
	require.NoError(t, os.WriteFile(cfg.TemplatePath(), []byte("int main() {}\n"), 0644))
	return path, cfg
}

func TestConfigLangKeepsLocalOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfcli.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{cf_dir: "/base"}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cfcli.local.json5"), []byte(`{cf_dir: "/local-only", open_cmd: "nano"}`), 0644))

	_, err := execute(t, "--config", path, "config", "lang", "54")
	require.NoError(t, err)

	base, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(base), "local-only")
	require.NotContains(t, string(base), "nano")
	require.NotContains(t, string(base), config.DefaultJudgeURL)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 54, cfg.DefaultLang)
	require.Equal(t, "/local-only", cfg.CfDir)
}

func TestMissingConfigIsReturned(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json5")

	for _, args := range [][]string{{"state"}, {"open"}, {"config", "show"}, {"config", "lang", "54"}, {"parse", "1879A"}} {
		_, err := execute(t, append([]string{"--config", path}, args...)...)
		var cfgErr *config.ConfigError
		require.ErrorAs(t, err, &cfgErr, args)
		require.ErrorIs(t, err, config.ErrConfigNotFound, args)
	}

	rootCmd.SetArgs([]string{"--config", path, "state"})
	require.Equal(t, 1, ExecuteContext(context.Background()))
}

func TestParseUpdatesStateOnlyOnSuccess(t *testing.T) {
	cloudflareBypass = false
	t.Cleanup(func() { cloudflareBypass = true })

	judge := testutil.NewJudgeServer(t, map[string]testutil.Page{
		"/contest/1879/problem/A": {Body: "<html><body></body></html>"},
	})
	path, cfg := writeTestConfig(t, judge.URL)

	_, err := execute(t, "--config", path, "parse", "566")
	var fetchErr *core.FetchError
	require.ErrorAs(t, err, &fetchErr)
	state, err := config.ReadState(cfg)
	require.NoError(t, err)
	require.Equal(t, config.AppState{}, state)

	_, err = execute(t, "--config", path, "parse", "1879A")
	require.NoError(t, err)
	state, err = config.ReadState(cfg)
	require.NoError(t, err)
	require.Equal(t, &identifier.Problem{ContestID: 1879, ProblemID: "A"}, state.CurrentProblem)

	_, err = execute(t, "--config", path, "parse", "1879B")
	require.ErrorAs(t, err, &fetchErr)
	state, err = config.ReadState(cfg)
	require.NoError(t, err)
	require.Equal(t, &identifier.Problem{ContestID: 1879, ProblemID: "A"}, state.CurrentProblem)
}
