// Package router maps named catalog operations to typed handlers.
//
// The operation table is built once in New and never changes. Each entry
// carries a parameter descriptor that transports use to advertise the
// operation (the mcp package turns them into MCP tool schemas), and a
// handler that decodes, validates and executes the request against the
// catalog. Handlers only read; the router has no mutable state.
package router

import (
	"context"
	"encoding/json"
	"time"

	"compcat/internal/catalog"
	"compcat/internal/logging"
	"compcat/internal/resource"

	"github.com/go-playground/validator/v10"
)

// Operation names.
const (
	OpListComponents          = "list_components"
	OpGetComponent            = "get_component"
	OpSearchComponents        = "search_components"
	OpGetDocumentation        = "get_documentation"
	OpListDocumentationTopics = "list_documentation_topics"
	OpGetComponentCategories  = "get_component_categories"
	OpGetComponentTags        = "get_component_tags"
	OpListResources           = "list_resources"
	OpReadResource            = "read_resource"
)

// ParamType is the JSON type of an operation parameter.
type ParamType string

const (
	TypeString  ParamType = "string"
	TypeNumber  ParamType = "number"
	TypeBoolean ParamType = "boolean"
	TypeArray   ParamType = "array" // array of strings
)

// Param describes one operation parameter.
type Param struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
}

// HandlerFunc executes an operation with raw JSON parameters.
type HandlerFunc func(ctx context.Context, raw json.RawMessage) (any, error)

// Operation is one entry of the dispatch table.
type Operation struct {
	Name        string
	Description string
	Params      []Param
	Handler     HandlerFunc
}

// Router dispatches operations against a catalog.
type Router struct {
	catalog  *catalog.Catalog
	renderer *resource.Renderer
	validate *validator.Validate
	logger   *logging.AppLogger
	info     Info

	ops   map[string]Operation
	order []string
}

// Option customizes a Router.
type Option func(*Router)

// WithVersion overrides the version reported by Info.
func WithVersion(version string) Option {
	return func(r *Router) {
		r.info.Version = version
	}
}

// New builds the router and its operation table.
func New(cat *catalog.Catalog, logger *logging.AppLogger, opts ...Option) *Router {
	r := &Router{
		catalog:  cat,
		renderer: resource.NewRenderer(cat),
		validate: newValidator(),
		logger:   logger,
		info:     defaultInfo(),
		ops:      make(map[string]Operation),
	}
	for _, opt := range opts {
		opt(r)
	}
	for _, op := range r.table() {
		r.ops[op.Name] = op
		r.order = append(r.order, op.Name)
	}
	return r
}

// Info returns the handshake metadata.
func (r *Router) Info() Info {
	return r.info
}

// Catalog returns the catalog the router serves.
func (r *Router) Catalog() *catalog.Catalog {
	return r.catalog
}

// Renderer returns the resource renderer bound to the catalog.
func (r *Router) Renderer() *resource.Renderer {
	return r.renderer
}

// Operations returns the operation table in registration order.
func (r *Router) Operations() []Operation {
	out := make([]Operation, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.ops[name])
	}
	return out
}

// Names returns the registered operation names in registration order.
func (r *Router) Names() []string {
	return append([]string(nil), r.order...)
}

// Dispatch runs the named operation. Unknown names fail with an
// unknown-operation error; domain failures are returned as *catalog.Error.
func (r *Router) Dispatch(ctx context.Context, name string, raw json.RawMessage) (any, error) {
	op, ok := r.ops[name]
	if !ok {
		r.logger.Debug("Unknown operation requested", "operation", name)
		return nil, catalog.UnknownOperation(name, r.Names())
	}

	start := time.Now()
	result, err := op.Handler(ctx, raw)
	if err != nil {
		r.logger.Debug("Operation failed", "operation", name, "error", err)
		return nil, err
	}
	r.logger.LogPerformance(name, start)
	return result, nil
}
