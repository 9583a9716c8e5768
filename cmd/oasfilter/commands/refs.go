package commands

import (
	"errors"
	"flag"
	"strings"

	"github.com/erraggy/oasfilter/filter"
)

// RefsFlags contains flags for the refs command
type RefsFlags struct {
	Format    string
	Strict    bool
	Selection SelectionFlags
	Log       LogFlags
}

// RefsOutput is the structured form of the refs command output.
type RefsOutput struct {
	Endpoints  []string        `json:"endpoints" yaml:"endpoints"`
	Components *filter.Closure `json:"components" yaml:"components"`
}

// SetupRefsFlags creates and configures a FlagSet for the refs command.
func SetupRefsFlags() (*flag.FlagSet, *RefsFlags) {
	fs := flag.NewFlagSet("refs", flag.ContinueOnError)
	flags := &RefsFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, yaml")
	fs.BoolVar(&flags.Strict, "strict", false, "fail when a reference names a missing component")
	flags.Selection.register(fs)
	flags.Log.register(fs)

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasfilter refs [flags] <file|->\n\n")
		Writef(fs.Output(), "Print the components reachable from the selected endpoints, grouped by\n")
		Writef(fs.Output(), "components section in discovery order.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasfilter refs --select \"GET /users\" openapi.json\n")
		Writef(fs.Output(), "  oasfilter refs --select tag:billing --format yaml openapi.yaml\n")
		Writef(fs.Output(), "  oasfilter refs --profile users.yaml --strict openapi.json\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Success\n")
		Writef(fs.Output(), "  1    Load failure, invalid selection, or an unresolved reference with --strict\n")
	}

	return fs, flags
}

// HandleRefs executes the refs command
func HandleRefs(args []string) error {
	fs, flags := SetupRefsFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	specPath, err := specArg(fs, "refs")
	if err != nil {
		return err
	}

	sel, profile, err := flags.Selection.Load()
	if err != nil {
		return err
	}
	if err := requireSelection(sel, profile); err != nil {
		return err
	}

	logger, err := flags.Log.Logger(stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	result, err := runFilter(specPath, sel, profile, flags.Strict, logger)
	if err != nil {
		return err
	}

	selected := result.Selected()
	keys := make([]string, len(selected))
	for i, ep := range selected {
		keys[i] = ep.Key()
	}

	if flags.Format != FormatText {
		return OutputStructured(stdout, RefsOutput{Endpoints: keys, Components: result.Closure}, flags.Format)
	}

	Writef(stdout, "Endpoints (%d):\n", len(keys))
	for _, k := range keys {
		Writef(stdout, "  %s\n", k)
	}
	Writef(stdout, "\nComponents (%d):\n", result.Closure.Len())
	for _, b := range filter.Buckets {
		names := result.Closure.Names(b)
		if len(names) == 0 {
			continue
		}
		Writef(stdout, "  %s: %s\n", b, strings.Join(names, ", "))
	}
	if len(result.Closure.Unresolved) > 0 {
		Writef(stdout, "\nUnresolved (%d):\n", len(result.Closure.Unresolved))
		for _, u := range result.Closure.Unresolved {
			Writef(stdout, "  %s at %s\n", u.Ref, u.Source)
		}
	}
	return nil
}
