package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasfilter/internal/testutil"
)

// startTestSession creates an in-process MCP server/client pair and returns
// the connected client session. The server is shut down when the test ends.
func startTestSession(t *testing.T) *mcp.ClientSession {
	t.Helper()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	// Start server in background; it blocks until the connection closes.
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() {
		done <- run(ctx, serverTransport)
	}()

	client := mcp.NewClient(
		&mcp.Implementation{Name: "test-client", Version: "test"},
		nil,
	)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		<-done
	})

	return session
}

func TestIntegration_ListTools(t *testing.T) {
	session := startTestSession(t)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)
	require.NotNil(t, result)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, "tool %q has empty description", tool.Name)
		assert.NotNil(t, tool.InputSchema, "tool %q has no input schema", tool.Name)
	}
	assert.ElementsMatch(t, []string{"list_endpoints", "collect_refs", "filter_spec"}, names)
}

func TestIntegration_CallTool_ListEndpoints(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "list_endpoints",
		Arguments: map[string]any{
			"spec":   map[string]any{"content": testutil.UsersAPI},
			"select": []string{"method:get"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError, "list_endpoints should succeed")

	structured := unmarshalStructured(t, result)
	assert.Equal(t, float64(8), structured["total"])
	assert.Equal(t, float64(4), structured["matched"])

	endpoints, ok := structured["endpoints"].([]any)
	require.True(t, ok, "endpoints should be an array")
	require.Len(t, endpoints, 4)
	first, ok := endpoints[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "/health", first["path"])
}

func TestIntegration_CallTool_CollectRefs(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "collect_refs",
		Arguments: map[string]any{
			"spec":   map[string]any{"content": testutil.ScenarioAPI},
			"select": []string{"op:createUser"},
		},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	structured := unmarshalStructured(t, result)
	assert.Equal(t, float64(1), structured["total"])
	components, ok := structured["components"].([]any)
	require.True(t, ok)
	require.Len(t, components, 1)
	bucket, ok := components[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "schemas", bucket["bucket"])
	assert.Equal(t, []any{"NewUser"}, bucket["names"])
}

func TestIntegration_CallTool_FilterSpec(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "filter_spec",
		Arguments: map[string]any{
			"spec":   map[string]any{"content": testutil.ScenarioAPI},
			"select": []string{"GET /users"},
			"verify": true,
		},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	structured := unmarshalStructured(t, result)
	assert.Equal(t, true, structured["verified"])
	assert.Equal(t, float64(1), structured["selected"])

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(structured["document"].(string)), &doc))
	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, paths, 1)
}

func TestIntegration_CallTool_Error_InvalidSpec(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "filter_spec",
		Arguments: map[string]any{
			"spec":   map[string]any{"content": "this is not valid JSON or YAML for an OAS spec"},
			"select": []string{"all"},
		},
	})
	require.NoError(t, err, "MCP protocol call should succeed even on tool error")
	require.NotNil(t, result)
	assert.True(t, result.IsError, "filter_spec should return IsError for unparseable input")

	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "error content should be TextContent")
	assert.NotEmpty(t, text.Text)
}

func TestIntegration_CallTool_Error_MissingSpec(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "list_endpoints",
		Arguments: map[string]any{
			"spec": map[string]any{},
		},
	})
	require.NoError(t, err, "MCP protocol call should succeed even on tool error")
	require.NotNil(t, result)
	assert.True(t, result.IsError, "list_endpoints should return IsError when no spec source is provided")
}

// unmarshalStructured extracts the structured output from a CallToolResult.
// It first checks StructuredContent, then falls back to parsing the first TextContent.
func unmarshalStructured(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()

	// Prefer structured content if available.
	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	}

	// Fall back to parsing text content.
	require.NotEmpty(t, result.Content, "expected at least one content item")
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &m), "failed to parse text content as JSON")
	return m
}
