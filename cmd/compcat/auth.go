package main

import (
	"bufio"
	"fmt"
	"strings"

	"compcat/internal/source"
	"compcat/internal/ui"

	"github.com/spf13/cobra"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the access token for private git catalogs",
		Long: `The token is kept in the system keyring and is only used when a git
remote rejects anonymous access.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set-token [token]",
			Short: "Store a GitHub personal access token",
			Long:  "Store a token given as an argument, or read it from the first line of stdin.",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				token, err := readToken(cmd, args)
				if err != nil {
					return err
				}
				if err := source.NewCredentialManager().StoreToken(token); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.SuccessStyle.Render("Token stored."))
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove the stored token",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := source.NewCredentialManager().DeleteToken(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.SuccessStyle.Render("Token removed."))
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Report whether a token is stored",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				if source.NewCredentialManager().HasToken() {
					fmt.Fprintln(cmd.OutOrStdout(), "A git token is stored.")
					return
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.HelpStyle.Render("No git token stored."))
			},
		},
	)
	return cmd
}

func readToken(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	token := strings.TrimSpace(line)
	if token == "" {
		if err != nil {
			return "", fmt.Errorf("failed to read token from stdin: %w", err)
		}
		return "", fmt.Errorf("token is empty")
	}
	return token, nil
}
