package main

import (
	"errors"
	"fmt"

	"compcat/internal/config"
	"compcat/internal/logging"
	"compcat/internal/source"
	"compcat/internal/ui"

	"github.com/spf13/cobra"
)

func newSyncCmd(opts *globalOptions, logger *logging.AppLogger) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Clone or update the configured git catalog",
		Long: `Clone the git catalog if it is not present yet, otherwise fetch and reset
it to the remote branch. A clone with uncommitted changes is left alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if !cfg.Git.Enabled() {
				return errors.New("no git remote configured (set git.remote_url or " + config.EnvGitRemote + ")")
			}

			root, err := source.New(cfg.ComponentsDir, cfg.Git).Prepare(cmd.Context(), logger)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.SuccessStyle.Render("Catalog ready: ")+root)
			return nil
		},
	}
}
