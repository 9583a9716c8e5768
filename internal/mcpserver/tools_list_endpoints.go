package mcpserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasfilter/filter"
)

type listEndpointsInput struct {
	Spec    specInput `json:"spec"               jsonschema:"The OAS document to list"`
	Select  []string  `json:"select,omitempty"   jsonschema:"Only list endpoints matching one of these selectors (default: all)"`
	Exclude []string  `json:"exclude,omitempty"  jsonschema:"Drop endpoints matching any of these selectors"`
	GroupBy string    `json:"group_by,omitempty" jsonschema:"Group results and return counts instead of individual items. Values: tag\\, method"`
	Limit   int       `json:"limit,omitempty"    jsonschema:"Maximum number of results to return (default 100)"`
	Offset  int       `json:"offset,omitempty"   jsonschema:"Skip the first N results (for pagination)"`
}

type endpointSummary struct {
	Method      string   `json:"method"`
	Path        string   `json:"path"`
	OperationID string   `json:"operation_id,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Deprecated  bool     `json:"deprecated,omitempty"`
}

type listEndpointsOutput struct {
	Total     int               `json:"total"`
	Matched   int               `json:"matched"`
	Returned  int               `json:"returned"`
	Endpoints []endpointSummary `json:"endpoints,omitempty"`
	Groups    []groupCount      `json:"groups,omitempty"`
}

var listEndpointsGroupBy = []string{"tag", "method"}

func handleListEndpoints(_ context.Context, _ *mcp.CallToolRequest, input listEndpointsInput) (*mcp.CallToolResult, listEndpointsOutput, error) {
	if err := validateGroupBy(input.GroupBy, listEndpointsGroupBy); err != nil {
		return errResult(err), listEndpointsOutput{}, nil
	}

	result, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), listEndpointsOutput{}, nil
	}

	endpoints, err := filter.ExtractEndpoints(result.Document)
	if err != nil {
		return errResult(err), listEndpointsOutput{}, nil
	}

	sel, _, err := buildSelection(input.Select, input.Exclude, "")
	if err != nil {
		return errResult(err), listEndpointsOutput{}, nil
	}
	if sel.IsEmpty() {
		sel.Include = append(sel.Include, filter.SelectAllEndpoints())
	}
	matched := sel.Apply(endpoints)

	output := listEndpointsOutput{
		Total:   len(endpoints),
		Matched: len(matched),
	}

	if input.GroupBy != "" {
		output.Groups = groupAndSort(matched, groupKey(input.GroupBy))
		output.Returned = len(output.Groups)
		return nil, output, nil
	}

	page := paginate(matched, input.Offset, input.Limit)
	output.Endpoints = makeSlice[endpointSummary](len(page))
	for _, ep := range page {
		output.Endpoints = append(output.Endpoints, endpointSummary{
			Method:      ep.Method,
			Path:        ep.Path,
			OperationID: ep.OperationID,
			Summary:     ep.Summary,
			Tags:        ep.Tags,
			Deprecated:  ep.Deprecated,
		})
	}
	output.Returned = len(output.Endpoints)
	return nil, output, nil
}

func groupKey(groupBy string) func(*filter.Endpoint) []string {
	if strings.EqualFold(groupBy, "method") {
		return func(ep *filter.Endpoint) []string { return []string{ep.Method} }
	}
	return func(ep *filter.Endpoint) []string {
		if len(ep.Tags) == 0 {
			return []string{"(untagged)"}
		}
		return ep.Tags
	}
}
