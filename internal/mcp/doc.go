// Package mcp exposes the component catalog as a Model Context Protocol
// server using mcp-go (github.com/mark3labs/mcp-go).
//
// # Tools
//
// Every router operation becomes one MCP tool with the same name. The
// operation's parameter descriptors become the tool's input schema and all
// tools are annotated read-only and idempotent. A tool call forwards its
// arguments to router.Dispatch:
//   - success: structured content plus the same object as JSON text
//   - domain error (*catalog.Error): an error result whose text is the JSON
//     payload {"code", "rpc_code", "message", "data"}
//   - anything else: a JSON-RPC error from mcp-go
//
// # Resources
//
// Each component and documentation topic is registered as a static
// text/markdown resource (component://<name>, docs://<topic>). The catalog
// never changes after startup, so the list is fixed when the server is built.
//
// # Transports
//
// RunStdio serves newline-delimited JSON-RPC on stdin/stdout; RunHTTP serves
// the streamable HTTP transport at a single endpoint (default /mcp) and
// shuts down gracefully when its context is cancelled. Logs never go to
// stdout.
//
// # References
//
// - MCP Specification: https://modelcontextprotocol.io/specification
// - mcp-go Library: https://github.com/mark3labs/mcp-go
package mcp
