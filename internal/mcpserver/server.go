// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasfilter capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasfilter"
)

const serverInstructions = `oasfilter MCP server: lists the endpoints of an OpenAPI document, computes the components a selection of endpoints references, and extracts a minimal self-contained document for that selection.

Selectors: "all", "GET /users" (method and path), "op:<operationId>", "tag:<name>", "path:<glob>" (* = one segment, ** = any number), "method:<verb>", "ext:<expr>" (x-key, !x-key, x-key=value, x-key!=value; "+" is and, "," is or). An endpoint is kept when any select entry matches and no exclude entry does.

Configuration: All defaults are configurable via OASFILTER_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- OASFILTER_CACHE_FILE_TTL (default: 15m) - cache TTL for local file specs
- OASFILTER_CACHE_CONTENT_TTL (default: 15m) - cache TTL for inline content
- OASFILTER_CACHE_ENABLED (default: true) - disable spec caching entirely
- OASFILTER_LIST_LIMIT (default: 100) - default result limit for list_endpoints
- OASFILTER_DEFAULT_FORMAT (default: source format) - json or yaml output for filter_spec
- OASFILTER_STRICT_REFS (default: false) - fail on references to missing components

Caching: Parsed specs are cached per session. File entries use path+mtime as key (auto-invalidated on change). Content entries use a hash of the content. A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	return run(ctx, &mcp.StdioTransport{})
}

func run(ctx context.Context, transport mcp.Transport) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}
	return newServer().Run(ctx, transport)
}

func newServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasfilter", Version: oasfilter.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_endpoints",
		Description: "List the endpoints (method and path pairs) of an OpenAPI Specification document, sorted by path and then by method. Returns method, path, operationId, summary, tags and deprecation for each. Narrow the list with select/exclude selectors, or use group_by (tag or method) to get distribution counts instead of individual items. Use offset/limit to paginate; the default limit is configurable via OASFILTER_LIST_LIMIT (default 100).",
	}, handleListEndpoints)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "collect_refs",
		Description: "Compute the reference closure of a selection of endpoints: every components entry (schemas, parameters, responses, requestBodies, headers, examples, links, callbacks) reachable from the selected operations and their path-level parameters, grouped by bucket in discovery order. References to missing components are reported as unresolved, or fail the call with strict=true. Use this to preview what filter_spec would keep.",
	}, handleCollectRefs)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "filter_spec",
		Description: "Extract a minimal, self-contained OpenAPI document containing only the selected endpoints, the tags they use and the components they reference. Select endpoints with select/exclude selectors or a profile file. Returns the document inline (JSON or YAML, default from OASFILTER_DEFAULT_FORMAT or the source format) unless output names a file to write. Use verify=true to re-check that every reference in the result resolves.",
	}, handleFilterSpec)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// groupCount represents a single group in group_by results.
type groupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// groupAndSort groups items by key, sorts by count descending (ties
// broken alphabetically by key), and returns the sorted groups.
func groupAndSort[T any](items []T, keyFn func(T) []string) []groupCount {
	counts := make(map[string]int)
	for _, item := range items {
		for _, key := range keyFn(item) {
			counts[key]++
		}
	}
	groups := make([]groupCount, 0, len(counts))
	for key, count := range counts {
		groups = append(groups, groupCount{Key: key, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// validateGroupBy checks that group_by is a valid value.
func validateGroupBy(groupBy string, allowed []string) error {
	if groupBy == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(groupBy, a) {
			return nil
		}
	}
	return fmt.Errorf("invalid group_by value %q; valid values: %s", groupBy, strings.Join(allowed, ", "))
}
