package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"compcat/internal/catalog"
	"compcat/internal/logging"
	"compcat/internal/resource"
	"compcat/internal/ui"

	"github.com/spf13/cobra"
)

func newListCmd(opts *globalOptions, logger *logging.AppLogger) *cobra.Command {
	var (
		category string
		tags     []string
		search   string
		limit    int
		topics   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog components",
		Long: `List components as a table, sorted by name.

Filters combine: --category must match exactly, --tag keeps components
carrying any of the given tags, and --search matches name and description
case-insensitively.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := opts.catalog(cmd.Context(), logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if topics {
				for _, topic := range cat.ListDocumentationTopics() {
					fmt.Fprintln(out, resource.DocsURI(topic))
				}
				return nil
			}

			lo := catalog.ListOptions{Tags: tags}
			if cmd.Flags().Changed("category") {
				lo.Category = &category
			}
			if cmd.Flags().Changed("search") {
				lo.Search = &search
			}
			if cmd.Flags().Changed("limit") {
				if limit < 0 {
					return fmt.Errorf("--limit must not be negative")
				}
				lo.Limit = &limit
			}

			fmt.Fprintln(out, ui.ComponentTable(cat.ListComponents(lo), terminalWidth()))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only components in this category")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "only components with any of these tags (repeatable)")
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive text in name or description")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of components")
	cmd.Flags().BoolVar(&topics, "topics", false, "list documentation topic URIs instead")
	return cmd
}

func newShowCmd(opts *globalOptions, logger *logging.AppLogger) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show <uri|name>",
		Short: "Render a component or documentation topic",
		Long: `Render a catalog resource as Markdown in the terminal.

The argument is a resource URI (component://Button, docs://theming) or a bare
component name, matched case-insensitively.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := opts.catalog(cmd.Context(), logger)
			if err != nil {
				return err
			}

			uri := args[0]
			if !strings.Contains(uri, "://") {
				uri = resource.ComponentURI(componentKey(cat, uri))
			}

			contents, err := resource.NewRenderer(cat).Read(uri)
			if err != nil {
				var ce *catalog.Error
				if errors.As(err, &ce) {
					return fmt.Errorf("%s: %s", ce.Message, uri)
				}
				return err
			}

			out := cmd.OutOrStdout()
			if raw {
				fmt.Fprint(out, contents.Text)
				return nil
			}

			rendered, err := ui.RenderMarkdown(contents.Text, ui.DetectGlamourStyle(500*time.Millisecond), terminalWidth())
			if err != nil {
				return err
			}
			fmt.Fprint(out, rendered)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the Markdown source")
	return cmd
}

// componentKey maps a bare name to the catalog key it folds to, or returns
// it unchanged.
func componentKey(cat *catalog.Catalog, name string) string {
	for _, key := range cat.ComponentNames() {
		if strings.EqualFold(key, name) {
			return key
		}
	}
	return name
}
