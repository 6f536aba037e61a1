package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"compcat/internal/catalog"
	"compcat/internal/router"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func (s *Server) registerTools() int {
	ops := s.router.Operations()
	for _, op := range ops {
		s.mcpServer.AddTool(toolFromOperation(op), s.toolHandler(op.Name))
	}
	return len(ops)
}

// toolFromOperation converts an operation descriptor into an MCP tool.
func toolFromOperation(op router.Operation) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(op.Description),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(false),
	}

	for _, p := range op.Params {
		props := []mcp.PropertyOption{mcp.Description(p.Description)}
		if p.Required {
			props = append(props, mcp.Required())
		}

		switch p.Type {
		case router.TypeNumber:
			props = append(props, mcp.Min(0))
			opts = append(opts, mcp.WithNumber(p.Name, props...))
		case router.TypeBoolean:
			opts = append(opts, mcp.WithBoolean(p.Name, props...))
		case router.TypeArray:
			props = append(props, mcp.WithStringItems())
			opts = append(opts, mcp.WithArray(p.Name, props...))
		default:
			opts = append(opts, mcp.WithString(p.Name, props...))
		}
	}

	return mcp.NewTool(op.Name, opts...)
}

// toolHandler forwards a tool call to the router.
func (s *Server) toolHandler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := json.Marshal(request.GetArguments())
		if err != nil {
			return nil, fmt.Errorf("encoding %s arguments: %w", name, err)
		}

		result, err := s.router.Dispatch(ctx, name, raw)
		if err != nil {
			return errorResult(err)
		}

		text, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("encoding %s result: %w", name, err)
		}
		return mcp.NewToolResultStructured(result, string(text)), nil
	}
}

// errorResult turns a domain error into an error tool result. Other errors
// are returned to mcp-go unchanged.
func errorResult(err error) (*mcp.CallToolResult, error) {
	var domainErr *catalog.Error
	if !errors.As(err, &domainErr) {
		return nil, err
	}

	payload, marshalErr := json.Marshal(domainErr.Payload())
	if marshalErr != nil {
		return nil, fmt.Errorf("encoding error payload: %w", marshalErr)
	}
	return mcp.NewToolResultError(string(payload)), nil
}
