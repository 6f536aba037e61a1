package router

import (
	"context"
	"encoding/json"
	"testing"

	"compcat/internal/catalog"
	"compcat/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	logger, _ := logging.NewTestLogger()
	return New(catalog.Samples(), logger)
}

func dispatch(t *testing.T, r *Router, op, params string) (any, error) {
	t.Helper()
	var raw json.RawMessage
	if params != "" {
		raw = json.RawMessage(params)
	}
	return r.Dispatch(context.Background(), op, raw)
}

func TestNames_RegistrationOrder(t *testing.T) {
	r := newTestRouter(t)

	assert.Equal(t, []string{
		OpListComponents,
		OpGetComponent,
		OpSearchComponents,
		OpGetDocumentation,
		OpListDocumentationTopics,
		OpGetComponentCategories,
		OpGetComponentTags,
		OpListResources,
		OpReadResource,
	}, r.Names())
	assert.Len(t, r.Operations(), 9)
}

func TestOperations_RequiredParams(t *testing.T) {
	r := newTestRouter(t)

	required := make(map[string][]string)
	for _, op := range r.Operations() {
		assert.NotEmpty(t, op.Description, op.Name)
		for _, p := range op.Params {
			if p.Required {
				required[op.Name] = append(required[op.Name], p.Name)
			}
		}
	}

	assert.Equal(t, map[string][]string{
		OpGetComponent:     {"name"},
		OpSearchComponents: {"query"},
		OpGetDocumentation: {"topic"},
		OpReadResource:     {"uri"},
	}, required)
}

func TestInfo(t *testing.T) {
	r := newTestRouter(t)
	info := r.Info()
	assert.Equal(t, "compcat", info.Name)
	assert.Equal(t, Version, info.Version)
	assert.True(t, info.Capabilities.Tools)
	assert.True(t, info.Capabilities.Resources)
	assert.Contains(t, info.Instructions, "React components")

	logger, _ := logging.NewTestLogger()
	assert.Equal(t, "2.3.4", New(catalog.Empty(), logger, WithVersion("2.3.4")).Info().Version)
}

func TestDispatch_UnknownOperation(t *testing.T) {
	r := newTestRouter(t)

	_, err := dispatch(t, r, "delete_component", `{}`)
	require.Error(t, err)
	assert.True(t, catalog.IsKind(err, catalog.KindUnknownOperation))

	var catErr *catalog.Error
	require.ErrorAs(t, err, &catErr)
	assert.Equal(t, "delete_component", catErr.Data["operation"])
	assert.Equal(t, r.Names(), catErr.Data["available_operations"])
	assert.Equal(t, catalog.CodeMethodNotFound, catErr.Payload().RPCCode)
}

func TestDispatch_ListComponents(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name   string
		params string
		want   []string
	}{
		{name: "no params", params: "", want: []string{"Button", "Card", "Input"}},
		{name: "null params", params: "null", want: []string{"Button", "Card", "Input"}},
		{name: "category", params: `{"category":"Form"}`, want: []string{"Input"}},
		{name: "tags", params: `{"tags":["layout","validation"]}`, want: []string{"Card", "Input"}},
		{name: "empty tags", params: `{"tags":[]}`, want: []string{"Button", "Card", "Input"}},
		{name: "search", params: `{"search":"BUTTON"}`, want: []string{"Button"}},
		{name: "limit", params: `{"limit":2}`, want: []string{"Button", "Card"}},
		{name: "limit zero", params: `{"limit":0}`, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dispatch(t, r, OpListComponents, tt.params)
			require.NoError(t, err)

			resp, ok := got.(ComponentListResponse)
			require.True(t, ok)
			names := make([]string, 0, len(resp.Components))
			for _, c := range resp.Components {
				names = append(names, c.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestDispatch_InvalidParams(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name   string
		op     string
		params string
		field  string
	}{
		{name: "missing name", op: OpGetComponent, params: `{}`, field: "name"},
		{name: "blank name", op: OpGetComponent, params: `{"name":"   "}`, field: "name"},
		{name: "missing query", op: OpSearchComponents, params: `{"tags":["ui"]}`, field: "query"},
		{name: "missing topic", op: OpGetDocumentation, params: `{"section":"usage"}`, field: "topic"},
		{name: "missing uri", op: OpReadResource, params: `{}`, field: "uri"},
		{name: "negative limit", op: OpListComponents, params: `{"limit":-1}`, field: "limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dispatch(t, r, tt.op, tt.params)
			require.Error(t, err)
			assert.True(t, catalog.IsKind(err, catalog.KindInvalidParams))

			var catErr *catalog.Error
			require.ErrorAs(t, err, &catErr)
			assert.Equal(t, tt.field, catErr.Data["field"])
			assert.Equal(t, tt.op, catErr.Data["operation"])
		})
	}
}

func TestNewValidator_NotBlank(t *testing.T) {
	v := newValidator()

	tests := []struct {
		name    string
		params  any
		wantErr bool
	}{
		{name: "name set", params: &GetComponentParams{Name: "Button"}},
		{name: "name empty", params: &GetComponentParams{}, wantErr: true},
		{name: "name whitespace", params: &GetComponentParams{Name: " \t"}, wantErr: true},
		{name: "query set", params: &SearchComponentsParams{Query: "btn"}},
		{name: "topic set", params: &GetDocumentationParams{Topic: "theming"}},
		{name: "uri empty", params: &ReadResourceParams{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() { err = v.Struct(tt.params) })
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDispatch_RequiredParamsSucceed(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		op     string
		params string
	}{
		{op: OpGetComponent, params: `{"name":"Button"}`},
		{op: OpSearchComponents, params: `{"query":"button"}`},
		{op: OpGetDocumentation, params: `{"topic":"theming"}`},
		{op: OpReadResource, params: `{"uri":"component://Card"}`},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			var (
				got any
				err error
			)
			require.NotPanics(t, func() { got, err = dispatch(t, r, tt.op, tt.params) })
			require.NoError(t, err)
			assert.NotNil(t, got)
		})
	}
}

func TestDispatch_MalformedParams(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name   string
		op     string
		params string
	}{
		{name: "wrong type", op: OpGetComponent, params: `{"name":42}`},
		{name: "unknown field", op: OpListComponents, params: `{"colour":"red"}`},
		{name: "not an object", op: OpListComponents, params: `[1,2]`},
		{name: "trailing data", op: OpGetComponentTags, params: `{} {}`},
		{name: "params on no-arg op", op: OpListDocumentationTopics, params: `{"topic":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dispatch(t, r, tt.op, tt.params)
			require.Error(t, err)
			assert.True(t, catalog.IsKind(err, catalog.KindInvalidParams))

			var catErr *catalog.Error
			require.ErrorAs(t, err, &catErr)
			assert.Equal(t, "Malformed parameters", catErr.Message)
		})
	}
}

func TestDispatch_GetComponent(t *testing.T) {
	r := newTestRouter(t)

	got, err := dispatch(t, r, OpGetComponent, `{"name":"button","include_examples":false}`)
	require.NoError(t, err)

	comp, ok := got.(catalog.Component)
	require.True(t, ok)
	assert.Equal(t, "Button", comp.Name)
	assert.Empty(t, comp.Examples)
	assert.NotNil(t, comp.TypescriptDefinitions)

	_, err = dispatch(t, r, OpGetComponent, `{"name":"DoesNotExist"}`)
	require.Error(t, err)
	assert.True(t, catalog.IsKind(err, catalog.KindInvalidParams))
	var catErr *catalog.Error
	require.ErrorAs(t, err, &catErr)
	assert.Equal(t, "Component not found", catErr.Message)
	assert.Equal(t, "DoesNotExist", catErr.Data["component_name"])
	assert.Equal(t, r.Catalog().ComponentNames(), catErr.Data["available_components"])
}

func TestDispatch_SearchComponents(t *testing.T) {
	r := newTestRouter(t)

	got, err := dispatch(t, r, OpSearchComponents, `{"query":"button","categories":["UI"]}`)
	require.NoError(t, err)

	resp := got.(ComponentListResponse)
	require.NotEmpty(t, resp.Components)
	assert.Equal(t, "Button", resp.Components[0].Name)
}

func TestDispatch_Documentation(t *testing.T) {
	r := newTestRouter(t)

	got, err := dispatch(t, r, OpGetDocumentation, `{"topic":"getting-started","section":"usage"}`)
	require.NoError(t, err)
	doc := got.(catalog.Documentation)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "usage", doc.Sections[0].ID)

	_, err = dispatch(t, r, OpGetDocumentation, `{"topic":"theming","section":"nonexistent"}`)
	require.Error(t, err)
	var catErr *catalog.Error
	require.ErrorAs(t, err, &catErr)
	assert.Equal(t, "Section not found in topic", catErr.Message)
	assert.Equal(t, "nonexistent", catErr.Data["section"])
	assert.Equal(t, "theming", catErr.Data["topic"])

	theming, ok := r.Catalog().Documentation("theming")
	require.True(t, ok)
	wantSections := make([]string, 0, len(theming.Sections))
	for _, sec := range theming.Sections {
		wantSections = append(wantSections, sec.ID)
	}
	require.NotEmpty(t, wantSections)
	assert.Equal(t, wantSections, catErr.Data["available_sections"])

	_, err = dispatch(t, r, OpGetDocumentation, `{"topic":"missing"}`)
	require.ErrorAs(t, err, &catErr)
	assert.Equal(t, r.Catalog().ListDocumentationTopics(), catErr.Data["available_topics"])

	topics, err := dispatch(t, r, OpListDocumentationTopics, "")
	require.NoError(t, err)
	assert.Equal(t, TopicListResponse{Topics: []string{"getting-started", "theming"}}, topics)
}

func TestDispatch_CategoriesAndTags(t *testing.T) {
	r := newTestRouter(t)

	cats, err := dispatch(t, r, OpGetComponentCategories, `{}`)
	require.NoError(t, err)
	assert.Equal(t, CategoryCountsResponse{Categories: map[string]int{"UI": 1, "Layout": 1, "Form": 1}}, cats)

	tags, err := dispatch(t, r, OpGetComponentTags, "")
	require.NoError(t, err)
	resp := tags.(TagListResponse)
	assert.IsIncreasing(t, resp.Tags)
	assert.Contains(t, resp.Tags, "button")
}

func TestDispatch_Resources(t *testing.T) {
	r := newTestRouter(t)

	got, err := dispatch(t, r, OpListResources, "")
	require.NoError(t, err)
	assert.Len(t, got.(ResourceListResponse).Resources, 5)

	read, err := dispatch(t, r, OpReadResource, `{"uri":"docs://theming"}`)
	require.NoError(t, err)
	contents := read.(ReadResourceResponse).Contents
	require.Len(t, contents, 1)
	assert.Equal(t, "docs://theming", contents[0].URI)
	assert.Equal(t, "text/markdown", contents[0].MIMEType)

	_, err = dispatch(t, r, OpReadResource, `{"uri":"component://Nope"}`)
	assert.True(t, catalog.IsKind(err, catalog.KindResourceNotFound))
	var catErr *catalog.Error
	require.ErrorAs(t, err, &catErr)
	assert.Equal(t, "component://Nope", catErr.Data["uri"])
}

func TestDispatch_EmptyCatalog(t *testing.T) {
	logger, _ := logging.NewTestLogger()
	r := New(catalog.Empty(), logger)

	got, err := dispatch(t, r, OpListResources, "")
	require.NoError(t, err)

	data, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"resources":[]}`, string(data))
}
