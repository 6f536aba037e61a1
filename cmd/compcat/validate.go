package main

import (
	"fmt"

	"compcat/internal/loader"
	"compcat/internal/logging"
	"compcat/internal/source"
	"compcat/internal/ui"

	"github.com/spf13/cobra"
)

func newValidateCmd(opts *globalOptions, logger *logging.AppLogger) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <dir>",
		Short: "Load a components directory and report problems",
		Long: `Load every component under dir (and --docs-dir, if given) exactly as
serve would, then report what loaded and what was skipped. Exits non-zero
when anything was skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			root, err := source.NewLocalSource(args[0]).Prepare(ctx, logger)
			if err != nil {
				return err
			}

			l := loader.New(loader.Options{ComponentsDir: root, DocsDir: opts.docsDir}, logger)
			result, err := l.Scan(ctx)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), ui.ValidationReport(result, terminalWidth()))
			if n := len(result.Failures); n > 0 {
				return fmt.Errorf("%d entries failed to load", n)
			}
			return nil
		},
	}
}
