package main

import (
	"context"
	"fmt"
	"os"

	"compcat/internal/catalog"
	"compcat/internal/config"
	"compcat/internal/loader"
	"compcat/internal/logging"
	"compcat/internal/router"
	"compcat/internal/source"
	"compcat/internal/ui"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configPath    string
	componentsDir string
	docsDir       string
	verbose       bool
}

func newRootCmd(logger *logging.AppLogger) *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "compcat",
		Short: "Serve a UI component catalog to AI assistants over MCP",
		Long: `compcat exposes a read-only catalog of UI components and documentation
topics through the Model Context Protocol.

The catalog comes from, in order of precedence:
  --components-dir / COMPCAT_COMPONENTS_DIR / components_dir in the config
  a git remote configured under git.remote_url (or COMPCAT_GIT_REMOTE)
  the built-in sample catalog when nothing is configured

Examples:
  # Serve the sample catalog over stdio
  compcat serve

  # Serve a local catalog over HTTP
  compcat serve --components-dir ./components --http --port 8080

  # Browse a catalog in the terminal
  compcat list --category Form
  compcat show component://Button`,
		Version:       router.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetVerbose(opts.verbose)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/compcat/config.yaml)")
	flags.StringVar(&opts.componentsDir, "components-dir", "", "catalog root directory")
	flags.StringVar(&opts.docsDir, "docs-dir", "", "directory of Markdown documentation topics")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log informational messages to stderr")

	cmd.AddCommand(
		newServeCmd(opts, logger),
		newListCmd(opts, logger),
		newShowCmd(opts, logger),
		newValidateCmd(opts, logger),
		newSyncCmd(opts, logger),
		newAuthCmd(),
		newConfigCmd(opts),
	)
	return cmd
}

// loadConfig reads the config file and environment, then applies the
// persistent flags on top.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	path := o.configPath
	if path == "" {
		path = config.ConfigPath()
	}

	cfg, err := config.LoadPath(path)
	if err != nil {
		return nil, err
	}
	if o.componentsDir != "" {
		cfg.ComponentsDir = o.componentsDir
	}
	if o.docsDir != "" {
		cfg.DocsDir = o.docsDir
	}
	return cfg, nil
}

// catalog loads the configured catalog.
func (o *globalOptions) catalog(ctx context.Context, logger *logging.AppLogger) (*catalog.Catalog, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	return buildCatalog(ctx, cfg, logger)
}

// buildCatalog resolves the configured source and loads it. A git source
// that cannot be prepared is fatal; an unusable local directory degrades to
// an empty component set.
func buildCatalog(ctx context.Context, cfg *config.Config, logger *logging.AppLogger) (*catalog.Catalog, error) {
	if cfg.UsesSamples() {
		if cfg.DocsDir != "" {
			logger.Warn("docs_dir is ignored without a components directory", "docs_dir", cfg.DocsDir)
		}
		logger.Info("No catalog configured, serving built-in samples")
		return catalog.Samples(), nil
	}

	root, err := source.New(cfg.ComponentsDir, cfg.Git).Prepare(ctx, logger)
	if err != nil {
		if cfg.Git.Enabled() {
			return nil, fmt.Errorf("failed to prepare git catalog: %w", err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logger.Error("Catalog directory unavailable, serving an empty catalog", "path", cfg.ComponentsDir, "error", err)
		root = ""
	}

	l := loader.New(loader.Options{
		ComponentsDir: root,
		DocsDir:       cfg.DocsDir,
		MaxFileSize:   cfg.MaxFileSize,
	}, logger)
	result, err := l.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return result.Catalog(), nil
}

// terminalWidth returns the width of stdout, or ui.DefaultWidth when it is
// not a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return ui.DefaultWidth
	}
	return w
}
