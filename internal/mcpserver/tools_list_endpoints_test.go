package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasfilter/internal/testutil"
)

func callListEndpoints(t *testing.T, input listEndpointsInput) (*mcp.CallToolResult, listEndpointsOutput) {
	t.Helper()
	res, out, err := handleListEndpoints(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	return res, out
}

func TestListEndpoints_All(t *testing.T) {
	res, out := callListEndpoints(t, listEndpointsInput{Spec: specInput{Content: testutil.UsersAPI}})
	require.Nil(t, res)

	assert.Equal(t, 8, out.Total)
	assert.Equal(t, 8, out.Matched)
	assert.Equal(t, 8, out.Returned)
	require.Len(t, out.Endpoints, 8)

	first := out.Endpoints[0]
	assert.Equal(t, "DELETE", first.Method)
	assert.Equal(t, "/admin/audit", first.Path)
	assert.Equal(t, "purgeAudit", first.OperationID)
	assert.True(t, first.Deprecated)
	assert.Equal(t, []string{"admin"}, first.Tags)

	assert.Equal(t, "GET", out.Endpoints[4].Method)
	assert.Equal(t, "/users", out.Endpoints[4].Path)
	assert.Equal(t, "List users", out.Endpoints[4].Summary)
}

func TestListEndpoints_Selectors(t *testing.T) {
	tests := []struct {
		name    string
		input   listEndpointsInput
		matched int
		first   string
	}{
		{"select", listEndpointsInput{Select: []string{"tag:users"}}, 4, "/users"},
		{"exclude only", listEndpointsInput{Exclude: []string{"path:/users/**"}}, 4, "/admin/audit"},
		{"select and exclude", listEndpointsInput{Select: []string{"method:get"}, Exclude: []string{"op:listUsers"}}, 3, "/health"},
		{"no match", listEndpointsInput{Select: []string{"tag:none"}}, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.Spec = specInput{Content: testutil.UsersAPI}
			res, out := callListEndpoints(t, tt.input)
			require.Nil(t, res)
			assert.Equal(t, 8, out.Total)
			assert.Equal(t, tt.matched, out.Matched)
			if tt.first == "" {
				assert.Empty(t, out.Endpoints)
				return
			}
			assert.Equal(t, tt.first, out.Endpoints[0].Path)
		})
	}
}

func TestListEndpoints_Pagination(t *testing.T) {
	res, out := callListEndpoints(t, listEndpointsInput{
		Spec:   specInput{Content: testutil.UsersAPI},
		Offset: 2,
		Limit:  3,
	})
	require.Nil(t, res)
	assert.Equal(t, 8, out.Matched)
	assert.Equal(t, 3, out.Returned)
	assert.Equal(t, "HEAD", out.Endpoints[0].Method)
	assert.Equal(t, "/invoices", out.Endpoints[1].Path)
}

func TestListEndpoints_GroupBy(t *testing.T) {
	res, out := callListEndpoints(t, listEndpointsInput{
		Spec:    specInput{Content: testutil.UsersAPI},
		GroupBy: "tag",
	})
	require.Nil(t, res)
	assert.Empty(t, out.Endpoints)
	assert.Equal(t, []groupCount{
		{Key: "users", Count: 4},
		{Key: "(untagged)", Count: 2},
		{Key: "admin", Count: 2},
		{Key: "billing", Count: 1},
	}, out.Groups)
	assert.Equal(t, 4, out.Returned)

	res, out = callListEndpoints(t, listEndpointsInput{
		Spec:    specInput{Content: testutil.UsersAPI},
		GroupBy: "Method",
	})
	require.Nil(t, res)
	assert.Equal(t, []groupCount{
		{Key: "GET", Count: 4},
		{Key: "DELETE", Count: 2},
		{Key: "HEAD", Count: 1},
		{Key: "POST", Count: 1},
	}, out.Groups)
}

func TestListEndpoints_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input listEndpointsInput
		msg   string
	}{
		{"bad group_by", listEndpointsInput{Spec: specInput{Content: testutil.UsersAPI}, GroupBy: "path"}, "invalid group_by"},
		{"no spec", listEndpointsInput{}, "exactly one of file or content"},
		{"malformed", listEndpointsInput{Spec: specInput{Content: `{"openapi": "3.0.0"}`}}, "missing 'paths'"},
		{"bad selector", listEndpointsInput{Spec: specInput{Content: testutil.UsersAPI}, Select: []string{"nope"}}, "selector"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, _ := callListEndpoints(t, tt.input)
			require.NotNil(t, res)
			assert.True(t, res.IsError)
			text, ok := res.Content[0].(*mcp.TextContent)
			require.True(t, ok)
			assert.Contains(t, text.Text, tt.msg)
		})
	}
}
