package loader

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDependencies_JSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Dependencies
		wantErr bool
	}{
		{name: "map", input: `{"react":"^18.0.0"}`, want: Dependencies{"react": "^18.0.0"}},
		{name: "list", input: `["react","lodash"]`, want: Dependencies{"react": "*", "lodash": "*"}},
		{name: "empty list", input: `[]`, want: Dependencies{}},
		{name: "null", input: `null`, want: nil},
		{name: "number", input: `42`, wantErr: true},
		{name: "mixed list", input: `["react", 1]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m struct {
				Deps Dependencies `json:"deps"`
			}
			err := json.Unmarshal([]byte(`{"deps":`+tt.input+`}`), &m)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Deps)
		})
	}
}

func TestDependencies_YAML(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Dependencies
		wantErr bool
	}{
		{name: "map", input: "deps:\n  react: ^18.0.0\n", want: Dependencies{"react": "^18.0.0"}},
		{name: "list", input: "deps:\n  - react\n  - lodash\n", want: Dependencies{"react": "*", "lodash": "*"}},
		{name: "scalar", input: "deps: react\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m struct {
				Deps Dependencies `yaml:"deps"`
			}
			err := yaml.Unmarshal([]byte(tt.input), &m)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Deps)
		})
	}
}

func TestParseManifest_Defaults(t *testing.T) {
	m, err := parseManifest("manifest.json", []byte(`{"description":"d"}`), "dataGrid")
	require.NoError(t, err)

	assert.Equal(t, "DataGrid", m.Name)
	assert.Equal(t, "1.0.0", m.Version)
	assert.Equal(t, "component.tsx", m.Files.Component)
	assert.Equal(t, "types.ts", m.Files.Types)
	assert.Equal(t, "README.md", m.Files.Documentation)
	assert.Empty(t, m.Files.Examples)
	assert.Nil(t, m.Exports)
	assert.Equal(t, []string{}, m.tags())
}

func TestParseManifest_Exports(t *testing.T) {
	data := []byte("name: Card\nexports:\n  main: index.ts\n  types: types.ts\nfiles:\n  utils: [helpers.ts]\n")
	m, err := parseManifest("manifest.yml", data, "card")
	require.NoError(t, err)

	require.NotNil(t, m.Exports)
	assert.Equal(t, "index.ts", m.Exports.Main)
	assert.Equal(t, []string{"helpers.ts"}, m.Files.Utils)
}

func TestParseManifest_Invalid(t *testing.T) {
	_, err := parseManifest("manifest.json", []byte(`{"tags":"not-a-list"}`), "x")
	assert.ErrorContains(t, err, "manifest.json")

	_, err = parseManifest("manifest.yaml", []byte("tags: [unclosed"), "x")
	assert.ErrorContains(t, err, "manifest.yaml")
}

func TestDefaultManifest(t *testing.T) {
	m := defaultManifest("avatar")

	assert.Equal(t, "Avatar", m.Name)
	assert.Equal(t, "A Avatar component from Fluent UI", m.Description)
	assert.Equal(t, "UI", m.Category)
	assert.Equal(t, []string{"component", "ui"}, m.Tags)
	assert.Equal(t, Dependencies{"@fluentui/react-components": "*"}, m.Dependencies)
	assert.Empty(t, m.props())

	// The default tag slice is not shared.
	m.Tags[0] = "changed"
	assert.Equal(t, "component", defaultManifest("x").Tags[0])
}

func TestManifestProps_DefaultAlias(t *testing.T) {
	m := Manifest{Props: []ManifestProp{
		{Name: "a", DefaultValue: "1", DefaultValueAlias: "2"},
		{Name: "b", DefaultValueAlias: "3"},
		{Name: "c"},
	}}

	props := m.props()
	require.Len(t, props, 3)
	assert.Equal(t, "1", props[0].DefaultValue)
	assert.Equal(t, "3", props[1].DefaultValue)
	assert.Equal(t, "", props[2].DefaultValue)
}

func TestDisplayName(t *testing.T) {
	tests := map[string]string{
		"button":   "Button",
		"Button":   "Button",
		"dataGrid": "DataGrid",
		"élan":     "Élan",
		"":         "",
		"1col":     "1col",
	}
	for in, want := range tests {
		assert.Equal(t, want, displayName(in), in)
	}
}
