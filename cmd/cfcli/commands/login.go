package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"cfcli/lib/config"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func init() {
	rootCmd.AddCommand(loginCmd)
}

func readPassword(in *bufio.Reader) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		password, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		return string(password), err
	}
	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Logs in to codeforces and remembers the handle.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newClient(cfg)
		if err != nil {
			return err
		}

		in := bufio.NewReader(cmd.InOrStdin())
		fmt.Fprintln(cmd.ErrOrStderr(), text.Colors{text.FgBlue, text.Bold}.Sprint("Enter your Codeforces handle or email:"))
		handleOrEmail, err := in.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		handleOrEmail = strings.TrimSpace(handleOrEmail)

		fmt.Fprintln(cmd.ErrOrStderr(), text.Colors{text.FgBlue, text.Bold}.Sprint("Enter your Codeforces password:"))
		password, err := readPassword(in)
		if err != nil {
			return err
		}

		handle, err := client.Login(cmd.Context(), handleOrEmail, password)
		if err != nil {
			return err
		}

		state, err := loadState(cfg)
		if err != nil {
			return err
		}
		state.Handle = handle
		err = config.WriteState(cfg, state)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), text.FgGreen.Sprint("Successfully logged in with handle"), text.Colors{text.FgGreen, text.Bold}.Sprint(handle))
		return nil
	},
}
