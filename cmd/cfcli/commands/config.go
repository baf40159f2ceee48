package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"cfcli/lib/config"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var initCfDir string

func init() {
	configInitCmd.Flags().StringVar(&initCfDir, "cf-dir", "", "Root working directory (default is the current directory).")
	configCmd.AddCommand(configInitCmd, configShowCmd, configLangCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Creates, shows or edits the cfcli config.",
}

var configInitCmd = &cobra.Command{
	Use:   "init [--cf-dir <path>]",
	Short: "Writes a default config and an empty solution template.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists at %s", path)
		}

		cfDir := initCfDir
		if cfDir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			cfDir = wd
		}
		cfDir, err = filepath.Abs(cfDir)
		if err != nil {
			return err
		}

		cfg := config.Default()
		cfg.CfDir = cfDir
		err = config.Save(path, cfg)
		if err != nil {
			return err
		}

		templatePath := cfg.TemplatePath()
		if _, err := os.Stat(templatePath); os.IsNotExist(err) {
			err = os.MkdirAll(filepath.Dir(templatePath), 0755)
			if err != nil {
				return err
			}
			err = os.WriteFile(templatePath, []byte("#include <bits/stdc++.h>\n\nint main() {\n}\n"), 0644)
			if err != nil {
				return err
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), "wrote config to", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Prints the current config.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		lang, err := config.LanguageName(cfg.DefaultLang)
		if err != nil {
			return err
		}

		t := newTable(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Key", "Value"})
		t.AppendRows([]table.Row{
			{"cf_dir", cfg.CfDir},
			{"workspace_dir", cfg.WorkspaceDir},
			{"solution_filename", cfg.SolutionFilename},
			{"default_lang", fmt.Sprintf("%d (%s)", cfg.DefaultLang, lang)},
			{"workspace_creation_cmd", cfg.WorkspaceCreationCmd},
			{"open_cmd", cfg.OpenCmd},
			{"judge_url", cfg.JudgeURL},
			{"fetch_timeout_seconds", cfg.FetchTimeoutSeconds},
		})
		t.Render()
		return nil
	},
}

var configLangCmd = &cobra.Command{
	Use:   "lang <code|name>",
	Short: "Sets the default language by code (ex. 54) or by name (ex. \"g++17\").",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		_, err = config.Load(path)
		if err != nil {
			return err
		}

		var lang config.Language
		code, err := strconv.Atoi(args[0])
		if err == nil {
			name, err := config.LanguageName(code)
			if err != nil {
				return err
			}
			lang = config.Language{Code: code, Name: name}
		} else {
			lang, err = config.FindLanguage(args[0])
			if err != nil {
				return err
			}
		}

		err = config.SetDefaultLang(path, lang.Code)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "default language set to %d (%s)\n", lang.Code, lang.Name)
		return nil
	},
}
