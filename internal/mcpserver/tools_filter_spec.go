package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasfilter/filter"
	"github.com/erraggy/oasfilter/internal/cliutil"
	"github.com/erraggy/oasfilter/parser"
)

type filterSpecInput struct {
	Spec    specInput `json:"spec"              jsonschema:"The OAS document to filter"`
	Select  []string  `json:"select,omitempty"  jsonschema:"Selectors for the endpoints to keep (e.g. \"GET /users\"\\, \"tag:billing\"\\, \"path:/users/**\"\\, \"all\")"`
	Exclude []string  `json:"exclude,omitempty" jsonschema:"Selectors for endpoints to drop from the selection"`
	Profile string    `json:"profile,omitempty" jsonschema:"Path to a profile file (YAML or JSON) with include\\, exclude\\, strict\\, format and output fields"`
	Strict  *bool     `json:"strict,omitempty"  jsonschema:"Fail when a reference names a missing component (default from OASFILTER_STRICT_REFS)"`
	Format  string    `json:"format,omitempty"  jsonschema:"Output format: json or yaml (default from OASFILTER_DEFAULT_FORMAT\\, else the source format)"`
	Output  string    `json:"output,omitempty"  jsonschema:"File path to write the filtered document. If omitted the document is returned inline."`
	Verify  bool      `json:"verify,omitempty"  jsonschema:"Re-check that every component reference in the result resolves"`
}

type filterSpecOutput struct {
	Version    string                 `json:"version"`
	Format     string                 `json:"format"`
	Total      int                    `json:"total"`
	Selected   int                    `json:"selected"`
	Components int                    `json:"components"`
	Unresolved []filter.UnresolvedRef `json:"unresolved,omitempty"`
	Verified   bool                   `json:"verified,omitempty"`
	Missing    []filter.UnresolvedRef `json:"missing,omitempty"`
	WrittenTo  string                 `json:"written_to,omitempty"`
	Document   string                 `json:"document,omitempty"`
}

func handleFilterSpec(_ context.Context, _ *mcp.CallToolRequest, input filterSpecInput) (*mcp.CallToolResult, filterSpecOutput, error) {
	if len(input.Select) == 0 && input.Profile == "" {
		return errResult(fmt.Errorf("no endpoints selected: provide select or profile")), filterSpecOutput{}, nil
	}
	sel, profile, err := buildSelection(input.Select, input.Exclude, input.Profile)
	if err != nil {
		return errResult(err), filterSpecOutput{}, nil
	}
	format, err := outputFormat(input.Format, profile)
	if err != nil {
		return errResult(err), filterSpecOutput{}, nil
	}

	parsed, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), filterSpecOutput{}, nil
	}

	result, err := filter.FilterParsed(parsed, filter.WithSelection(sel), strictOption(input.Strict, profile))
	if err != nil {
		return errResult(err), filterSpecOutput{}, nil
	}

	if format == parser.SourceFormatUnknown {
		format = result.SourceFormat
	}
	data, err := result.Render(format)
	if err != nil {
		return errResult(err), filterSpecOutput{}, nil
	}

	output := filterSpecOutput{
		Version:    result.Version,
		Format:     string(format),
		Total:      result.Stats.Endpoints,
		Selected:   result.Stats.Selected,
		Components: result.Stats.Components,
		Unresolved: result.Closure.Unresolved,
	}

	if input.Verify {
		missing, err := filter.VerifyClosure(result.Document)
		if err != nil {
			return errResult(err), filterSpecOutput{}, nil
		}
		output.Verified = len(missing) == 0
		output.Missing = missing
	}

	dest := input.Output
	if dest == "" && profile != nil {
		dest = profile.Output
	}
	if dest != "" {
		written, err := cliutil.WriteFile(dest, data)
		if err != nil {
			return errResult(fmt.Errorf("failed to write output file: %w", err)), filterSpecOutput{}, nil
		}
		output.WrittenTo = written
		return nil, output, nil
	}
	output.Document = string(data)
	return nil, output, nil
}

// outputFormat resolves the output format: request, then profile, then
// OASFILTER_DEFAULT_FORMAT. SourceFormatUnknown means the source format.
func outputFormat(requested string, profile *filter.Profile) (parser.SourceFormat, error) {
	if requested != "" {
		return parser.ParseSourceFormat(requested)
	}
	if profile != nil && profile.Format != "" {
		return profile.OutputFormat(), nil
	}
	return cfg.DefaultFormat, nil
}
