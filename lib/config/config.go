package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cfcli/lib/configutil"
)

// CacheRoot is the hidden directory under cf_dir holding parsed tests,
// templates and state.
const CacheRoot = ".cfcli"

const DefaultJudgeURL = "https://codeforces.com"

type Config struct {
	CfDir                string `json:"cf_dir"`
	WorkspaceDir         string `json:"workspace_dir"`
	SolutionFilename     string `json:"solution_filename"`
	DefaultLang          int    `json:"default_lang"`
	WorkspaceCreationCmd string `json:"workspace_creation_cmd"`
	OpenCmd              string `json:"open_cmd"`

	JudgeURL string `json:"judge_url,omitempty"`
	// 0 means requests never time out
	FetchTimeoutSeconds int `json:"fetch_timeout_seconds,omitempty"`
}

func Default() Config {
	return Config{
		WorkspaceDir:     "{%contest_id%}/{%problem_id%}",
		SolutionFilename: "{%problem_id%}",
		DefaultLang:      54,
		OpenCmd:          "vim main.cpp",
		JudgeURL:         DefaultJudgeURL,
	}
}

func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

func (c Config) CacheDir() string {
	return filepath.Join(c.CfDir, CacheRoot)
}

func (c Config) TemplatePath() string {
	return filepath.Join(c.CacheDir(), "templates", "template.cpp")
}

func (c Config) StatePath() string {
	return filepath.Join(c.CacheDir(), "state.json")
}

var ErrConfigNotFound = errors.New("no config file found")

type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Path, e.Err.Error())
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// DefaultPath is ~/.config/cfcli.json5.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "cfcli.json5"), nil
}

func (c Config) validate() error {
	if c.CfDir == "" {
		return errors.New("cf_dir must be set")
	}
	if _, err := LanguageName(c.DefaultLang); err != nil {
		return err
	}
	return nil
}

// Load reads the config at `path` (and its .local override), filling
// unspecified fields from Default.
func Load(path string) (Config, error) {
	cfg, err := configutil.ReadConfigWithDefaults(path, Default())
	if os.IsNotExist(err) {
		return Config{}, &ConfigError{Path: path, Err: ErrConfigNotFound}
	}
	if err != nil {
		return Config{}, &ConfigError{Path: path, Err: err}
	}
	err = cfg.validate()
	if err != nil {
		return Config{}, &ConfigError{Path: path, Err: err}
	}
	return cfg, nil
}

// SetDefaultLang rewrites default_lang in the base file at `path`. Other
// keys of the base file are kept as written, the .local override and
// defaults are never folded into it.
func SetDefaultLang(path string, code int) error {
	_, err := LanguageName(code)
	if err != nil {
		return err
	}

	base, err := configutil.ReadFile[map[string]any](path)
	if err != nil && !os.IsNotExist(err) {
		return &ConfigError{Path: path, Err: err}
	}
	if base == nil {
		base = map[string]any{}
	}
	base["default_lang"] = code

	err = configutil.WriteConfig(path, base)
	if err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	return nil
}

func Save(path string, cfg Config) error {
	err := configutil.WriteConfig(path, cfg)
	if err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	return nil
}
