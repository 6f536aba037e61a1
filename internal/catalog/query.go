package catalog

import (
	"slices"
	"strings"
)

// ListOptions filters ListComponents. Nil fields are absent filters; an
// empty Tags slice is treated the same as an absent one.
type ListOptions struct {
	Category *string
	Tags     []string
	Search   *string
	Limit    *int
}

// SearchOptions filters SearchComponents. Query is required.
type SearchOptions struct {
	Query      string
	Categories []string
	Tags       []string
	Limit      *int
}

// GetOptions controls which optional parts of a component are returned.
// A nil flag keeps the field; only an explicit false clears it.
type GetOptions struct {
	IncludeExamples   *bool
	IncludeTypescript *bool
}

// ListComponents returns the metadata of every component matching all
// given filters, sorted by name and truncated to Limit.
func (c *Catalog) ListComponents(opts ListOptions) []ComponentMetadata {
	var search string
	if opts.Search != nil {
		search = strings.ToLower(*opts.Search)
	}

	results := make([]ComponentMetadata, 0, len(c.components))
	for _, comp := range c.components {
		if opts.Category != nil && comp.Category != *opts.Category {
			continue
		}
		if !overlaps(opts.Tags, comp.Tags) {
			continue
		}
		if opts.Search != nil && !matchesText(comp, search, false) {
			continue
		}
		results = append(results, comp.Metadata())
	}

	slices.SortFunc(results, func(a, b ComponentMetadata) int {
		return strings.Compare(a.Name, b.Name)
	})
	return truncate(results, opts.Limit)
}

// SearchComponents matches Query case-insensitively against name,
// description, tags and every prop's name and description. A component
// whose name equals the query (ignoring case) ranks first.
func (c *Catalog) SearchComponents(opts SearchOptions) []ComponentMetadata {
	query := strings.ToLower(opts.Query)

	results := make([]ComponentMetadata, 0)
	for _, comp := range c.components {
		if !matchesText(comp, query, true) {
			continue
		}
		if len(opts.Categories) > 0 && !slices.Contains(opts.Categories, comp.Category) {
			continue
		}
		if !overlaps(opts.Tags, comp.Tags) {
			continue
		}
		results = append(results, comp.Metadata())
	}

	slices.SortFunc(results, func(a, b ComponentMetadata) int {
		aExact := strings.ToLower(a.Name) == query
		bExact := strings.ToLower(b.Name) == query
		switch {
		case aExact && !bExact:
			return -1
		case bExact && !aExact:
			return 1
		default:
			return strings.Compare(a.Name, b.Name)
		}
	})
	return truncate(results, opts.Limit)
}

// GetComponent looks a component up by exact name, then case-insensitively.
func (c *Catalog) GetComponent(name string, opts GetOptions) (Component, error) {
	comp, ok := c.lookupFold(name)
	if !ok {
		return Component{}, InvalidParams("Component not found", map[string]any{
			"component_name":       name,
			"available_components": c.ComponentNames(),
		})
	}

	result := comp.Clone()
	if opts.IncludeExamples != nil && !*opts.IncludeExamples {
		result.Examples = []Example{}
	}
	if opts.IncludeTypescript != nil && !*opts.IncludeTypescript {
		result.TypescriptDefinitions = nil
	}
	return result, nil
}

// GetDocumentation returns a topic, optionally narrowed to one section.
func (c *Catalog) GetDocumentation(topic string, section *string) (Documentation, error) {
	doc, ok := c.documentation[topic]
	if !ok {
		return Documentation{}, InvalidParams("Documentation topic not found", map[string]any{
			"topic":            topic,
			"available_topics": c.ListDocumentationTopics(),
		})
	}

	result := doc.Clone()
	if section == nil {
		return result, nil
	}

	result.Sections = slices.DeleteFunc(result.Sections, func(s Section) bool {
		return s.ID != *section
	})
	if len(result.Sections) == 0 {
		available := make([]string, 0, len(doc.Sections))
		for _, s := range doc.Sections {
			available = append(available, s.ID)
		}
		return Documentation{}, InvalidParams("Section not found in topic", map[string]any{
			"section":            *section,
			"topic":              topic,
			"available_sections": available,
		})
	}
	return result, nil
}

// ListDocumentationTopics returns every topic key in ascending order.
func (c *Catalog) ListDocumentationTopics() []string {
	return sortedKeys(c.documentation)
}

// ListCategoryCounts returns the number of components per category.
func (c *Catalog) ListCategoryCounts() map[string]int {
	counts := make(map[string]int)
	for _, comp := range c.components {
		counts[comp.Category]++
	}
	return counts
}

// ListAllTags returns the sorted, de-duplicated union of all tags.
func (c *Catalog) ListAllTags() []string {
	seen := make(map[string]struct{})
	for _, comp := range c.components {
		for _, tag := range comp.Tags {
			seen[tag] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// overlaps reports whether want is empty or shares a tag with have.
func overlaps(want, have []string) bool {
	if len(want) == 0 {
		return true
	}
	for _, tag := range want {
		if slices.Contains(have, tag) {
			return true
		}
	}
	return false
}

// matchesText reports whether the lower-cased needle occurs in the
// component's name, description or tags, and with withProps also in its
// props' names and descriptions.
func matchesText(comp Component, needle string, withProps bool) bool {
	if strings.Contains(strings.ToLower(comp.Name), needle) ||
		strings.Contains(strings.ToLower(comp.Description), needle) {
		return true
	}
	for _, tag := range comp.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	if !withProps {
		return false
	}
	for _, prop := range comp.Props {
		if strings.Contains(strings.ToLower(prop.Name), needle) ||
			strings.Contains(strings.ToLower(prop.Description), needle) {
			return true
		}
	}
	return false
}

func truncate(results []ComponentMetadata, limit *int) []ComponentMetadata {
	if limit != nil && *limit >= 0 && *limit < len(results) {
		return results[:*limit]
	}
	return results
}
