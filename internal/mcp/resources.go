package mcp

import (
	"context"

	"compcat/internal/resource"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerResources() int {
	renderer := s.router.Renderer()
	descriptors := renderer.List()

	for _, d := range descriptors {
		res := mcp.NewResource(d.URI, d.Name,
			mcp.WithResourceDescription(d.Description),
			mcp.WithMIMEType(d.MIMEType),
		)
		s.mcpServer.AddResource(res, func(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			return readResource(renderer, request.Params.URI)
		})
	}
	return len(descriptors)
}

func readResource(renderer *resource.Renderer, uri string) ([]mcp.ResourceContents, error) {
	contents, err := renderer.Read(uri)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      contents.URI,
			MIMEType: contents.MIMEType,
			Text:     contents.Text,
		},
	}, nil
}
