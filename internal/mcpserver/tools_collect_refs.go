package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasfilter/filter"
)

type collectRefsInput struct {
	Spec    specInput `json:"spec"              jsonschema:"The OAS document to analyze"`
	Select  []string  `json:"select,omitempty"  jsonschema:"Selectors for the endpoints whose references are followed (e.g. \"GET /users\"\\, \"tag:billing\"\\, \"all\")"`
	Exclude []string  `json:"exclude,omitempty" jsonschema:"Selectors for endpoints to drop from the selection"`
	Profile string    `json:"profile,omitempty" jsonschema:"Path to a profile file (YAML or JSON) with include and exclude selectors"`
	Strict  *bool     `json:"strict,omitempty"  jsonschema:"Fail when a reference names a missing component (default from OASFILTER_STRICT_REFS)"`
}

type bucketRefs struct {
	Bucket string   `json:"bucket"`
	Names  []string `json:"names"`
}

type collectRefsOutput struct {
	Endpoints  []string               `json:"endpoints"`
	Total      int                    `json:"total"`
	Components []bucketRefs           `json:"components,omitempty"`
	Unresolved []filter.UnresolvedRef `json:"unresolved,omitempty"`
}

func handleCollectRefs(_ context.Context, _ *mcp.CallToolRequest, input collectRefsInput) (*mcp.CallToolResult, collectRefsOutput, error) {
	if len(input.Select) == 0 && input.Profile == "" {
		return errResult(fmt.Errorf("no endpoints selected: provide select or profile")), collectRefsOutput{}, nil
	}
	sel, profile, err := buildSelection(input.Select, input.Exclude, input.Profile)
	if err != nil {
		return errResult(err), collectRefsOutput{}, nil
	}

	parsed, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), collectRefsOutput{}, nil
	}

	result, err := filter.FilterParsed(parsed, filter.WithSelection(sel), strictOption(input.Strict, profile))
	if err != nil {
		return errResult(err), collectRefsOutput{}, nil
	}

	selected := result.Selected()
	output := collectRefsOutput{
		Endpoints:  make([]string, 0, len(selected)),
		Total:      result.Closure.Len(),
		Unresolved: result.Closure.Unresolved,
	}
	for _, ep := range selected {
		output.Endpoints = append(output.Endpoints, ep.Key())
	}
	for _, b := range filter.Buckets {
		if names := result.Closure.Names(b); len(names) > 0 {
			output.Components = append(output.Components, bucketRefs{Bucket: b.String(), Names: names})
		}
	}
	return nil, output, nil
}
