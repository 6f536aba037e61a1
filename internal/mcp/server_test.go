package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"compcat/internal/catalog"
	"compcat/internal/logging"
	"compcat/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, cat *catalog.Catalog) *Server {
	t.Helper()
	logger, _ := logging.NewTestLogger()
	return NewServer(router.New(cat, logger), logger)
}

// rpc sends one JSON-RPC request through the server and returns the decoded
// response object.
func rpc(t *testing.T, s *Server, method string, params any) map[string]any {
	t.Helper()

	msg := map[string]any{"jsonrpc": "2.0", "id": 1, "method": method}
	if params != nil {
		msg["params"] = params
	}
	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	resp := s.MCPServer().HandleMessage(context.Background(), raw)
	require.NotNil(t, resp)

	out, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	return decoded
}

func result(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	require.Nil(t, resp["error"], "unexpected error: %v", resp["error"])
	res, ok := resp["result"].(map[string]any)
	require.True(t, ok, "missing result in %v", resp)
	return res
}

// callTool runs tools/call and returns the result plus its decoded text.
func callTool(t *testing.T, s *Server, name string, args map[string]any) (map[string]any, map[string]any) {
	t.Helper()

	res := result(t, rpc(t, s, "tools/call", map[string]any{"name": name, "arguments": args}))
	content, ok := res["content"].([]any)
	require.True(t, ok)
	require.Len(t, content, 1)

	text := content[0].(map[string]any)["text"].(string)
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &payload), text)
	return res, payload
}

func TestInitialize(t *testing.T) {
	s := newTestServer(t, catalog.Samples())

	res := result(t, rpc(t, s, "initialize", map[string]any{
		"protocolVersion": "2025-03-26",
		"capabilities":    map[string]any{},
		"clientInfo":      map[string]any{"name": "test", "version": "0.0.1"},
	}))

	serverInfo := res["serverInfo"].(map[string]any)
	assert.Equal(t, "compcat", serverInfo["name"])
	assert.Equal(t, router.Version, serverInfo["version"])
	assert.Equal(t, router.Instructions, res["instructions"])

	caps := res["capabilities"].(map[string]any)
	assert.Contains(t, caps, "tools")
	assert.Contains(t, caps, "resources")
}

func TestToolsList(t *testing.T) {
	s := newTestServer(t, catalog.Samples())

	res := result(t, rpc(t, s, "tools/list", nil))
	tools := res["tools"].([]any)

	byName := make(map[string]map[string]any)
	for _, tool := range tools {
		m := tool.(map[string]any)
		byName[m["name"].(string)] = m
	}
	assert.Len(t, byName, len(s.router.Names()))

	get := byName[router.OpGetComponent]
	require.NotNil(t, get)
	schema := get["inputSchema"].(map[string]any)
	assert.Equal(t, []any{"name"}, schema["required"])
	props := schema["properties"].(map[string]any)
	assert.Equal(t, "boolean", props["include_examples"].(map[string]any)["type"])

	list := byName[router.OpListComponents]
	listProps := list["inputSchema"].(map[string]any)["properties"].(map[string]any)
	assert.Equal(t, "array", listProps["tags"].(map[string]any)["type"])
	assert.Equal(t, "number", listProps["limit"].(map[string]any)["type"])

	annotations := get["annotations"].(map[string]any)
	assert.Equal(t, true, annotations["readOnlyHint"])
	assert.Equal(t, true, annotations["idempotentHint"])
}

func TestToolsCall_Success(t *testing.T) {
	s := newTestServer(t, catalog.Samples())

	t.Run("list with limit", func(t *testing.T) {
		res, payload := callTool(t, s, router.OpListComponents, map[string]any{"limit": 2})
		assert.NotEqual(t, true, res["isError"])

		components := payload["components"].([]any)
		require.Len(t, components, 2)
		assert.Equal(t, "Button", components[0].(map[string]any)["name"])
		assert.Equal(t, "Card", components[1].(map[string]any)["name"])

		structured := res["structuredContent"].(map[string]any)
		assert.Len(t, structured["components"], 2)
	})

	t.Run("get component case-insensitive", func(t *testing.T) {
		_, payload := callTool(t, s, router.OpGetComponent, map[string]any{
			"name":               "button",
			"include_typescript": false,
		})
		assert.Equal(t, "Button", payload["name"])
		assert.Nil(t, payload["typescript_definitions"])
	})

	t.Run("no-arg tool", func(t *testing.T) {
		_, payload := callTool(t, s, router.OpListDocumentationTopics, nil)
		assert.Equal(t, []any{"getting-started", "theming"}, payload["topics"])
	})
}

func TestToolsCall_DomainErrors(t *testing.T) {
	s := newTestServer(t, catalog.Samples())

	tests := []struct {
		name     string
		tool     string
		args     map[string]any
		wantCode string
		check    func(t *testing.T, data map[string]any)
	}{
		{
			name:     "unknown component",
			tool:     router.OpGetComponent,
			args:     map[string]any{"name": "DoesNotExist"},
			wantCode: "invalid_params",
			check: func(t *testing.T, data map[string]any) {
				assert.Equal(t, "DoesNotExist", data["component_name"])
				assert.Equal(t, []any{"Button", "Card", "Input"}, data["available_components"])
			},
		},
		{
			name:     "missing required",
			tool:     router.OpSearchComponents,
			args:     map[string]any{},
			wantCode: "invalid_params",
			check: func(t *testing.T, data map[string]any) {
				assert.Equal(t, "query", data["field"])
			},
		},
		{
			name:     "unknown section",
			tool:     router.OpGetDocumentation,
			args:     map[string]any{"topic": "theming", "section": "nope"},
			wantCode: "invalid_params",
			check: func(t *testing.T, data map[string]any) {
				assert.Equal(t, []any{"css-variables"}, data["available_sections"])
			},
		},
		{
			name:     "unknown resource",
			tool:     router.OpReadResource,
			args:     map[string]any{"uri": "component://Nope"},
			wantCode: "resource_not_found",
			check: func(t *testing.T, data map[string]any) {
				assert.Equal(t, "component://Nope", data["uri"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, payload := callTool(t, s, tt.tool, tt.args)
			assert.Equal(t, true, res["isError"])
			assert.Equal(t, tt.wantCode, payload["code"])
			tt.check(t, payload["data"].(map[string]any))
		})
	}
}

func TestToolsCall_UnknownTool(t *testing.T) {
	s := newTestServer(t, catalog.Samples())

	resp := rpc(t, s, "tools/call", map[string]any{"name": "drop_tables", "arguments": map[string]any{}})
	assert.NotNil(t, resp["error"])
}

func TestResources(t *testing.T) {
	s := newTestServer(t, catalog.Samples())

	res := result(t, rpc(t, s, "resources/list", nil))
	resources := res["resources"].([]any)
	uris := make([]string, 0, len(resources))
	for _, r := range resources {
		m := r.(map[string]any)
		uris = append(uris, m["uri"].(string))
		assert.Equal(t, "text/markdown", m["mimeType"])
	}
	assert.ElementsMatch(t, []string{
		"component://Button", "component://Card", "component://Input",
		"docs://getting-started", "docs://theming",
	}, uris)

	read := result(t, rpc(t, s, "resources/read", map[string]any{"uri": "component://Button"}))
	contents := read["contents"].([]any)
	require.Len(t, contents, 1)
	first := contents[0].(map[string]any)
	assert.Equal(t, "component://Button", first["uri"])
	assert.Contains(t, first["text"], "# Button Component")

	missing := rpc(t, s, "resources/read", map[string]any{"uri": "component://Nope"})
	assert.NotNil(t, missing["error"])
}

func TestResources_EmptyCatalog(t *testing.T) {
	s := newTestServer(t, catalog.Empty())

	res := result(t, rpc(t, s, "tools/list", nil))
	assert.NotEmpty(t, res["tools"])

	_, payload := callTool(t, s, router.OpListResources, nil)
	assert.Equal(t, []any{}, payload["resources"])
}

func TestHandler_HTTP(t *testing.T) {
	s := newTestServer(t, catalog.Samples())
	ts := httptest.NewServer(s.Handler("/mcp"))
	defer ts.Close()

	body := []byte(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"0.0.1"}}}`)
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/mcp", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"compcat"`)

	notFound, err := http.Get(ts.URL + "/other")
	require.NoError(t, err)
	notFound.Body.Close()
	assert.Equal(t, http.StatusNotFound, notFound.StatusCode)
}

func TestRunHTTP_StopsOnCancel(t *testing.T) {
	s := newTestServer(t, catalog.Samples())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.RunHTTP(ctx, "127.0.0.1:0", "/mcp") }()

	cancel()
	assert.NoError(t, <-done)
}
