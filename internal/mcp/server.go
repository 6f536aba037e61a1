package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"compcat/internal/logging"
	"compcat/internal/router"

	"github.com/mark3labs/mcp-go/server"
)

const shutdownTimeout = 5 * time.Second

// Server wraps an mcp-go server wired to a router.
type Server struct {
	router    *router.Router
	logger    *logging.AppLogger
	mcpServer *server.MCPServer
}

// NewServer builds the MCP server and registers every tool and resource.
func NewServer(r *router.Router, logger *logging.AppLogger) *Server {
	info := r.Info()
	s := &Server{
		router: r,
		logger: logger,
		mcpServer: server.NewMCPServer(info.Name, info.Version,
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
			server.WithInstructions(info.Instructions),
			server.WithRecovery(),
		),
	}

	tools := s.registerTools()
	resources := s.registerResources()
	logger.Info("MCP server ready", "tools", tools, "resources", resources)
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// RunStdio serves JSON-RPC over in/out until in is closed or ctx is cancelled.
func (s *Server) RunStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Info("Starting stdio transport")

	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(s.logger.StandardLog())

	err := stdio.Listen(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio transport failed: %w", err)
	}
	s.logger.Info("Stdio transport stopped")
	return nil
}

// Handler returns an http.Handler serving the streamable HTTP transport at
// endpoint.
func (s *Server) Handler(endpoint string) http.Handler {
	streamable := server.NewStreamableHTTPServer(s.mcpServer, server.WithEndpointPath(endpoint))
	mux := http.NewServeMux()
	mux.Handle(endpoint, streamable)
	return mux
}

// RunHTTP listens on addr until ctx is cancelled, then drains in-flight
// requests for up to five seconds.
func (s *Server) RunHTTP(ctx context.Context, addr, endpoint string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(endpoint),
		ErrorLog:          s.logger.StandardLog(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("MCP HTTP server listening", "addr", addr, "endpoint", endpoint)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http transport failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown failed: %w", err)
	}
	return nil
}
