package catalog

// Component is a single UI component record as served to clients.
type Component struct {
	Name                  string    `json:"name"`
	Description           string    `json:"description"`
	SourceCode            string    `json:"source_code"`
	Props                 []Prop    `json:"props"`
	Examples              []Example `json:"examples"`
	Category              string    `json:"category"`
	Tags                  []string  `json:"tags"`
	TypescriptDefinitions *string   `json:"typescript_definitions"`
}

// Prop describes one component property.
type Prop struct {
	Name         string `json:"name" yaml:"name"`
	Type         string `json:"type" yaml:"type"`
	Required     bool   `json:"required" yaml:"required"`
	DefaultValue string `json:"default" yaml:"default"`
	Description  string `json:"description" yaml:"description"`
}

// Example is a usage snippet attached to a component. Props is passed
// through untouched.
type Example struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Code        string         `json:"code"`
	Props       map[string]any `json:"props"`
}

// ComponentMetadata is the summary view returned by list and search.
// It is computed on demand and never stored.
type ComponentMetadata struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	HasTypescript bool     `json:"has_typescript"`
	PropCount     int      `json:"prop_count"`
	ExampleCount  int      `json:"example_count"`
}

// Documentation is a documentation topic keyed by Topic.
type Documentation struct {
	Topic             string    `json:"topic"`
	Title             string    `json:"title"`
	Content           string    `json:"content"`
	Sections          []Section `json:"sections"`
	Examples          []string  `json:"examples"`
	RelatedComponents []string  `json:"related_components"`
}

// Section is one part of a documentation topic.
type Section struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	CodeExamples []string `json:"code_examples"`
}

// Metadata projects a component into its summary view.
func (c Component) Metadata() ComponentMetadata {
	return ComponentMetadata{
		Name:          c.Name,
		Description:   c.Description,
		Category:      c.Category,
		Tags:          cloneStrings(c.Tags),
		HasTypescript: c.TypescriptDefinitions != nil,
		PropCount:     len(c.Props),
		ExampleCount:  len(c.Examples),
	}
}

// Clone returns a deep copy so callers cannot reach store state.
func (c Component) Clone() Component {
	out := c
	out.Tags = cloneStrings(c.Tags)
	if c.Props != nil {
		out.Props = make([]Prop, len(c.Props))
		copy(out.Props, c.Props)
	}
	if c.Examples != nil {
		out.Examples = make([]Example, len(c.Examples))
		for i, ex := range c.Examples {
			out.Examples[i] = ex
			out.Examples[i].Props = cloneProps(ex.Props)
		}
	}
	if c.TypescriptDefinitions != nil {
		defs := *c.TypescriptDefinitions
		out.TypescriptDefinitions = &defs
	}
	return out
}

// Clone returns a deep copy of the topic.
func (d Documentation) Clone() Documentation {
	out := d
	out.Examples = cloneStrings(d.Examples)
	out.RelatedComponents = cloneStrings(d.RelatedComponents)
	if d.Sections != nil {
		out.Sections = make([]Section, len(d.Sections))
		for i, s := range d.Sections {
			out.Sections[i] = s
			out.Sections[i].CodeExamples = cloneStrings(s.CodeExamples)
		}
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// cloneProps copies the top level of an example props map. Values are
// arbitrary JSON and treated as opaque.
func cloneProps(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// StringPtr is a small helper for optional text fields.
func StringPtr(s string) *string {
	return &s
}
