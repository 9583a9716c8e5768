package commands

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/erraggy/oasfilter/filter"
)

// EndpointsFlags contains flags for the endpoints command
type EndpointsFlags struct {
	Format    string
	Quiet     bool
	Selection SelectionFlags
	Log       LogFlags
}

// SetupEndpointsFlags creates and configures a FlagSet for the endpoints command.
func SetupEndpointsFlags() (*flag.FlagSet, *EndpointsFlags) {
	fs := flag.NewFlagSet("endpoints", flag.ContinueOnError)
	flags := &EndpointsFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, yaml")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: omit the header and separate columns with tabs")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: omit the header and separate columns with tabs")
	flags.Selection.register(fs)
	flags.Log.register(fs)

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasfilter endpoints [flags] <file|->\n\n")
		Writef(fs.Output(), "List the endpoints of an OpenAPI document.\n")
		Writef(fs.Output(), "With --select, --exclude or --profile, a SELECTED column marks the endpoints\n")
		Writef(fs.Output(), "the selection keeps.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasfilter endpoints openapi.json\n")
		Writef(fs.Output(), "  oasfilter endpoints --select tag:users openapi.yaml\n")
		Writef(fs.Output(), "  oasfilter endpoints --format json openapi.json | jq '.[].path'\n")
		Writef(fs.Output(), "  cat openapi.json | oasfilter endpoints -q -\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Success\n")
		Writef(fs.Output(), "  1    The document could not be loaded or a flag is invalid\n")
	}

	return fs, flags
}

// HandleEndpoints executes the endpoints command
func HandleEndpoints(args []string) error {
	fs, flags := SetupEndpointsFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	specPath, err := specArg(fs, "endpoints")
	if err != nil {
		return err
	}

	sel, profile, err := flags.Selection.Load()
	if err != nil {
		return err
	}
	marked := !sel.IsEmpty() || profile != nil

	logger, err := flags.Log.Logger(stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	result, err := runFilter(specPath, sel, profile, false, logger)
	if err != nil {
		return err
	}

	if flags.Format != FormatText {
		return OutputStructured(stdout, result.Endpoints, flags.Format)
	}

	if len(result.Endpoints) == 0 {
		if !flags.Quiet {
			Writef(stderr, "No endpoints found.\n")
		}
		return nil
	}

	headers := []string{"METHOD", "PATH", "OPERATION", "TAGS"}
	if marked {
		headers = append(headers, "SELECTED")
	}
	rows := make([][]string, 0, len(result.Endpoints))
	for _, ep := range result.Endpoints {
		row := []string{ep.Method, ep.Path, ep.OperationID, strings.Join(ep.Tags, ",")}
		if marked {
			row = append(row, selectedMark(ep))
		}
		rows = append(rows, row)
	}
	RenderTable(stdout, headers, rows, flags.Quiet)

	if !flags.Quiet {
		Writef(stderr, "\n%s\n", endpointSummary(result))
	}
	return nil
}

func selectedMark(ep *filter.Endpoint) string {
	if ep.Selected {
		return "yes"
	}
	return "-"
}

func endpointSummary(result *filter.FilterResult) string {
	return fmt.Sprintf("%d endpoints, %d selected", result.Stats.Endpoints, result.Stats.Selected)
}
