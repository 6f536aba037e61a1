package router

import (
	"context"
	"encoding/json"

	"compcat/internal/catalog"
	"compcat/internal/resource"
)

// ComponentListResponse wraps component summaries in an object.
type ComponentListResponse struct {
	Components []catalog.ComponentMetadata `json:"components"`
}

// TopicListResponse lists documentation topic ids.
type TopicListResponse struct {
	Topics []string `json:"topics"`
}

// CategoryCountsResponse maps categories to component counts.
type CategoryCountsResponse struct {
	Categories map[string]int `json:"categories"`
}

// TagListResponse lists every tag in the catalog.
type TagListResponse struct {
	Tags []string `json:"tags"`
}

// ResourceListResponse lists every readable resource.
type ResourceListResponse struct {
	Resources []resource.Descriptor `json:"resources"`
}

// ReadResourceResponse carries the rendered contents of one resource.
type ReadResourceResponse struct {
	Contents []resource.Contents `json:"contents"`
}

func (r *Router) table() []Operation {
	return []Operation{
		{
			Name:        OpListComponents,
			Description: "List available React components with optional filtering",
			Params: []Param{
				{Name: "category", Type: TypeString, Description: "Only return components in this category (exact match)"},
				{Name: "tags", Type: TypeArray, Description: "Only return components carrying at least one of these tags"},
				{Name: "search", Type: TypeString, Description: "Case-insensitive text matched against name, description and tags"},
				{Name: "limit", Type: TypeNumber, Description: "Maximum number of components to return"},
			},
			Handler: r.listComponents,
		},
		{
			Name:        OpGetComponent,
			Description: "Get detailed information about a specific React component",
			Params: []Param{
				{Name: "name", Type: TypeString, Description: "Component name (case-insensitive)", Required: true},
				{Name: "include_examples", Type: TypeBoolean, Description: "Set to false to omit usage examples"},
				{Name: "include_typescript", Type: TypeBoolean, Description: "Set to false to omit TypeScript definitions"},
			},
			Handler: r.getComponent,
		},
		{
			Name:        OpSearchComponents,
			Description: "Search React components by query string",
			Params: []Param{
				{Name: "query", Type: TypeString, Description: "Text matched against names, descriptions, tags and props", Required: true},
				{Name: "categories", Type: TypeArray, Description: "Only return components in one of these categories"},
				{Name: "tags", Type: TypeArray, Description: "Only return components carrying at least one of these tags"},
				{Name: "limit", Type: TypeNumber, Description: "Maximum number of components to return"},
			},
			Handler: r.searchComponents,
		},
		{
			Name:        OpGetDocumentation,
			Description: "Get documentation for a specific topic",
			Params: []Param{
				{Name: "topic", Type: TypeString, Description: "Documentation topic id", Required: true},
				{Name: "section", Type: TypeString, Description: "Only return the section with this id"},
			},
			Handler: r.getDocumentation,
		},
		{
			Name:        OpListDocumentationTopics,
			Description: "List available documentation topics",
			Handler:     r.listDocumentationTopics,
		},
		{
			Name:        OpGetComponentCategories,
			Description: "Get component categories and their counts",
			Handler:     r.getComponentCategories,
		},
		{
			Name:        OpGetComponentTags,
			Description: "Get all available component tags",
			Handler:     r.getComponentTags,
		},
		{
			Name:        OpListResources,
			Description: "List every component and documentation resource",
			Handler:     r.listResources,
		},
		{
			Name:        OpReadResource,
			Description: "Read a component:// or docs:// resource as Markdown",
			Params: []Param{
				{Name: "uri", Type: TypeString, Description: "Resource URI, e.g. component://Button or docs://theming", Required: true},
			},
			Handler: r.readResource,
		},
	}
}

func (r *Router) listComponents(_ context.Context, raw json.RawMessage) (any, error) {
	var p ListComponentsParams
	if err := decodeParams(r.validate, OpListComponents, raw, &p); err != nil {
		return nil, err
	}
	components := r.catalog.ListComponents(catalog.ListOptions{
		Category: p.Category,
		Tags:     p.Tags,
		Search:   p.Search,
		Limit:    p.Limit,
	})
	return ComponentListResponse{Components: components}, nil
}

func (r *Router) getComponent(_ context.Context, raw json.RawMessage) (any, error) {
	var p GetComponentParams
	if err := decodeParams(r.validate, OpGetComponent, raw, &p); err != nil {
		return nil, err
	}
	comp, err := r.catalog.GetComponent(p.Name, catalog.GetOptions{
		IncludeExamples:   p.IncludeExamples,
		IncludeTypescript: p.IncludeTypescript,
	})
	if err != nil {
		return nil, err
	}
	return comp, nil
}

func (r *Router) searchComponents(_ context.Context, raw json.RawMessage) (any, error) {
	var p SearchComponentsParams
	if err := decodeParams(r.validate, OpSearchComponents, raw, &p); err != nil {
		return nil, err
	}
	components := r.catalog.SearchComponents(catalog.SearchOptions{
		Query:      p.Query,
		Categories: p.Categories,
		Tags:       p.Tags,
		Limit:      p.Limit,
	})
	return ComponentListResponse{Components: components}, nil
}

func (r *Router) getDocumentation(_ context.Context, raw json.RawMessage) (any, error) {
	var p GetDocumentationParams
	if err := decodeParams(r.validate, OpGetDocumentation, raw, &p); err != nil {
		return nil, err
	}
	doc, err := r.catalog.GetDocumentation(p.Topic, p.Section)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *Router) listDocumentationTopics(_ context.Context, raw json.RawMessage) (any, error) {
	if err := decodeParams(r.validate, OpListDocumentationTopics, raw, &NoParams{}); err != nil {
		return nil, err
	}
	return TopicListResponse{Topics: r.catalog.ListDocumentationTopics()}, nil
}

func (r *Router) getComponentCategories(_ context.Context, raw json.RawMessage) (any, error) {
	if err := decodeParams(r.validate, OpGetComponentCategories, raw, &NoParams{}); err != nil {
		return nil, err
	}
	return CategoryCountsResponse{Categories: r.catalog.ListCategoryCounts()}, nil
}

func (r *Router) getComponentTags(_ context.Context, raw json.RawMessage) (any, error) {
	if err := decodeParams(r.validate, OpGetComponentTags, raw, &NoParams{}); err != nil {
		return nil, err
	}
	return TagListResponse{Tags: r.catalog.ListAllTags()}, nil
}

func (r *Router) listResources(_ context.Context, raw json.RawMessage) (any, error) {
	if err := decodeParams(r.validate, OpListResources, raw, &NoParams{}); err != nil {
		return nil, err
	}
	resources := r.renderer.List()
	if resources == nil {
		resources = []resource.Descriptor{}
	}
	return ResourceListResponse{Resources: resources}, nil
}

func (r *Router) readResource(_ context.Context, raw json.RawMessage) (any, error) {
	var p ReadResourceParams
	if err := decodeParams(r.validate, OpReadResource, raw, &p); err != nil {
		return nil, err
	}
	contents, err := r.renderer.Read(p.URI)
	if err != nil {
		return nil, err
	}
	return ReadResourceResponse{Contents: []resource.Contents{contents}}, nil
}
