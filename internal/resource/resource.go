// Package resource renders catalog entries as readable Markdown documents
// addressed by component:// and docs:// URIs.
package resource

import (
	"fmt"
	"slices"
	"strings"

	"compcat/internal/catalog"
)

const (
	// ComponentScheme prefixes component resource URIs.
	ComponentScheme = "component://"
	// DocsScheme prefixes documentation resource URIs.
	DocsScheme = "docs://"

	// MIMEType is the content type of every rendered resource.
	MIMEType = "text/markdown"
)

// Descriptor identifies one readable resource.
type Descriptor struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MIMEType    string `json:"mimeType"`
}

// Contents is the result of reading a resource.
type Contents struct {
	URI      string `json:"uri"`
	MIMEType string `json:"mimeType"`
	Text     string `json:"text"`
}

// Renderer formats catalog entries. It holds no state besides the catalog.
type Renderer struct {
	catalog *catalog.Catalog
}

// NewRenderer creates a renderer over cat.
func NewRenderer(cat *catalog.Catalog) *Renderer {
	return &Renderer{catalog: cat}
}

// ComponentURI returns the resource URI for a component key.
func ComponentURI(name string) string {
	return ComponentScheme + name
}

// DocsURI returns the resource URI for a documentation topic.
func DocsURI(topic string) string {
	return DocsScheme + topic
}

// List enumerates one descriptor per component and per documentation topic,
// ordered by URI.
func (r *Renderer) List() []Descriptor {
	var out []Descriptor
	for _, name := range r.catalog.ComponentNames() {
		comp, _ := r.catalog.Component(name)
		out = append(out, Descriptor{
			URI:         ComponentURI(name),
			Name:        fmt.Sprintf("%s Component", name),
			Description: comp.Description,
			MIMEType:    MIMEType,
		})
	}
	for _, topic := range r.catalog.ListDocumentationTopics() {
		doc, _ := r.catalog.Documentation(topic)
		out = append(out, Descriptor{
			URI:         DocsURI(topic),
			Name:        fmt.Sprintf("Documentation: %s", topic),
			Description: doc.Title,
			MIMEType:    MIMEType,
		})
	}
	slices.SortFunc(out, func(a, b Descriptor) int {
		return strings.Compare(a.URI, b.URI)
	})
	return out
}

// Read renders the resource at uri. Unknown schemes and keys fail with a
// resource-not-found error carrying the uri.
func (r *Renderer) Read(uri string) (Contents, error) {
	if name, ok := strings.CutPrefix(uri, ComponentScheme); ok {
		if comp, found := r.catalog.Component(name); found {
			return Contents{URI: uri, MIMEType: MIMEType, Text: RenderComponent(comp)}, nil
		}
	}
	if topic, ok := strings.CutPrefix(uri, DocsScheme); ok {
		if doc, found := r.catalog.Documentation(topic); found {
			return Contents{URI: uri, MIMEType: MIMEType, Text: RenderDocumentation(doc)}, nil
		}
	}
	return Contents{}, catalog.ResourceNotFound(uri)
}

// RenderComponent formats a component as Markdown.
func RenderComponent(c catalog.Component) string {
	props := make([]string, len(c.Props))
	for i, p := range c.Props {
		line := fmt.Sprintf("- **%s** (%s): %s", p.Name, p.Type, p.Description)
		if p.Required {
			line += " *Required*"
		}
		props[i] = line
	}

	examples := make([]string, len(c.Examples))
	for i, ex := range c.Examples {
		examples[i] = fmt.Sprintf("### %s\n\n%s\n\n```tsx\n%s\n```", ex.Title, ex.Description, ex.Code)
	}

	return fmt.Sprintf("# %s Component\n\n%s\n\n## Source Code\n\n```tsx\n%s\n```\n\n## Props\n\n%s\n\n## Examples\n\n%s",
		c.Name,
		c.Description,
		c.SourceCode,
		strings.Join(props, "\n"),
		strings.Join(examples, "\n\n"),
	)
}

// RenderDocumentation formats a documentation topic as Markdown.
func RenderDocumentation(d catalog.Documentation) string {
	sections := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		code := make([]string, len(s.CodeExamples))
		for j, snippet := range s.CodeExamples {
			code[j] = fmt.Sprintf("```\n%s\n```", snippet)
		}
		sections[i] = fmt.Sprintf("## %s\n\n%s\n\n%s", s.Title, s.Content, strings.Join(code, "\n\n"))
	}

	return fmt.Sprintf("# %s\n\n%s\n\n%s\n\n## Related Components\n\n%s",
		d.Title,
		d.Content,
		strings.Join(sections, "\n\n"),
		strings.Join(d.RelatedComponents, ", "),
	)
}
