package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"compcat/internal/catalog"

	"gopkg.in/yaml.v3"
)

// Manifest file names, in lookup order.
var manifestNames = []string{"manifest.json", "manifest.yaml", "manifest.yml"}

const (
	defaultVersion        = "1.0.0"
	defaultComponentFile  = "component.tsx"
	defaultTypesFile      = "types.ts"
	defaultDocumentation  = "README.md"
	defaultCategory       = "UI"
	defaultDependency     = "@fluentui/react-components"
	anyDependencyVersion  = "*"
	defaultDescriptionFmt = "A %s component from Fluent UI"
	exampleDescriptionFmt = "%s example"
	defaultExamplesDir    = "examples"
)

var defaultTags = []string{"component", "ui"}

// Manifest describes one component directory.
type Manifest struct {
	Name         string         `json:"name" yaml:"name"`
	Description  string         `json:"description" yaml:"description"`
	Category     string         `json:"category" yaml:"category"`
	Tags         []string       `json:"tags" yaml:"tags"`
	Version      string         `json:"version" yaml:"version"`
	Dependencies Dependencies   `json:"dependencies" yaml:"dependencies"`
	Files        Files          `json:"files" yaml:"files"`
	Exports      *Exports       `json:"exports,omitempty" yaml:"exports,omitempty"`
	Props        []ManifestProp `json:"props" yaml:"props"`
}

// Files names the files of a component, relative to its directory.
type Files struct {
	Component     string   `json:"component" yaml:"component"`
	Types         string   `json:"types" yaml:"types"`
	Documentation string   `json:"documentation" yaml:"documentation"`
	Examples      []string `json:"examples" yaml:"examples"`
	Utils         []string `json:"utils" yaml:"utils"`
}

// Exports names the module entry points.
type Exports struct {
	Main  string `json:"main" yaml:"main"`
	Types string `json:"types" yaml:"types"`
}

// ManifestProp is a prop as written in a manifest. DefaultValueAlias
// accepts the older "default_value" spelling.
type ManifestProp struct {
	Name              string `json:"name" yaml:"name"`
	Type              string `json:"type" yaml:"type"`
	Required          bool   `json:"required" yaml:"required"`
	DefaultValue      string `json:"default" yaml:"default"`
	DefaultValueAlias string `json:"default_value" yaml:"default_value"`
	Description       string `json:"description" yaml:"description"`
}

// Dependencies maps package names to version constraints. Manifests may
// write it as a map or as a flat list of names; list entries get "*".
type Dependencies map[string]string

// UnmarshalJSON accepts a name->version object or a list of names.
func (d *Dependencies) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*d = nil
		return nil
	}

	if trimmed[0] == '[' {
		var names []string
		if err := json.Unmarshal(trimmed, &names); err != nil {
			return fmt.Errorf("dependencies list: %w", err)
		}
		*d = fromList(names)
		return nil
	}

	var m map[string]string
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return fmt.Errorf("dependencies must be an object or a list: %w", err)
	}
	*d = m
	return nil
}

// UnmarshalYAML accepts a name->version mapping or a sequence of names.
func (d *Dependencies) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err != nil {
			return fmt.Errorf("dependencies list: %w", err)
		}
		*d = fromList(names)
		return nil
	case yaml.MappingNode:
		var m map[string]string
		if err := node.Decode(&m); err != nil {
			return fmt.Errorf("dependencies map: %w", err)
		}
		*d = m
		return nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*d = nil
			return nil
		}
	}
	return fmt.Errorf("dependencies must be a mapping or a sequence (line %d)", node.Line)
}

func fromList(names []string) Dependencies {
	deps := make(Dependencies, len(names))
	for _, name := range names {
		deps[name] = anyDependencyVersion
	}
	return deps
}

// parseManifest decodes a manifest by file extension and fills defaults
// for omitted fields.
func parseManifest(fileName string, data []byte, dirName string) (*Manifest, error) {
	var m Manifest
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", fileName, err)
		}
	default:
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", fileName, err)
		}
	}

	if strings.TrimSpace(m.Name) == "" {
		m.Name = displayName(dirName)
	}
	if m.Version == "" {
		m.Version = defaultVersion
	}
	if m.Files.Component == "" {
		m.Files.Component = defaultComponentFile
	}
	if m.Files.Types == "" {
		m.Files.Types = defaultTypesFile
	}
	if m.Files.Documentation == "" {
		m.Files.Documentation = defaultDocumentation
	}
	return &m, nil
}

// defaultManifest synthesizes the manifest of a directory without one.
func defaultManifest(dirName string) *Manifest {
	name := displayName(dirName)
	return &Manifest{
		Name:         name,
		Description:  fmt.Sprintf(defaultDescriptionFmt, name),
		Category:     defaultCategory,
		Tags:         append([]string(nil), defaultTags...),
		Version:      defaultVersion,
		Dependencies: fromList([]string{defaultDependency}),
		Files: Files{
			Component:     defaultComponentFile,
			Types:         defaultTypesFile,
			Documentation: defaultDocumentation,
		},
	}
}

// displayName upper-cases the first letter of a directory name.
func displayName(dirName string) string {
	r, size := utf8.DecodeRuneInString(dirName)
	if r == utf8.RuneError {
		return dirName
	}
	return string(unicode.ToUpper(r)) + dirName[size:]
}

func (m *Manifest) props() []catalog.Prop {
	props := make([]catalog.Prop, 0, len(m.Props))
	for _, p := range m.Props {
		def := p.DefaultValue
		if def == "" {
			def = p.DefaultValueAlias
		}
		props = append(props, catalog.Prop{
			Name:         p.Name,
			Type:         p.Type,
			Required:     p.Required,
			DefaultValue: def,
			Description:  p.Description,
		})
	}
	return props
}

func (m *Manifest) tags() []string {
	if m.Tags == nil {
		return []string{}
	}
	return append([]string(nil), m.Tags...)
}
