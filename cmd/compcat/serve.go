package main

import (
	"fmt"
	"os"

	"compcat/internal/logging"
	"compcat/internal/mcp"
	"compcat/internal/router"

	"github.com/spf13/cobra"
)

func newServeCmd(opts *globalOptions, logger *logging.AppLogger) *cobra.Command {
	var (
		useHTTP bool
		host    string
		port    int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol server.

By default the server speaks JSON-RPC over stdio, which is what desktop
assistants expect. Use --http (or set MCP_HTTP_PORT) to serve the streamable
HTTP transport instead.

Example client configuration:
  {
    "mcpServers": {
      "components": {
        "command": "compcat",
        "args": ["serve", "--components-dir", "/path/to/components"]
      }
    }
  }`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			if useHTTP {
				cfg.HTTP.Enabled = true
			}
			if cmd.Flags().Changed("host") {
				cfg.HTTP.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.HTTP.Port = port
				cfg.HTTP.Enabled = true
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			cat, err := buildCatalog(ctx, cfg, logger)
			if err != nil {
				return err
			}

			r := router.New(cat, logger)
			srv := mcp.NewServer(r, logger)

			if cfg.HTTP.Enabled {
				fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://%s%s (%d components)\n",
					cfg.HTTP.Addr(), cfg.HTTP.Endpoint, cat.Len())
				return srv.RunHTTP(ctx, cfg.HTTP.Addr(), cfg.HTTP.Endpoint)
			}

			logger.Info("Serving MCP over stdio", "components", cat.Len(), "topics", cat.TopicCount())
			return srv.RunStdio(ctx, os.Stdin, os.Stdout)
		},
	}

	cmd.Flags().BoolVar(&useHTTP, "http", false, "serve streamable HTTP instead of stdio")
	cmd.Flags().StringVar(&host, "host", "", "HTTP bind address (default 0.0.0.0)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP port (implies --http, default 8080)")
	return cmd
}
