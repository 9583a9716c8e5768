package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"github.com/erraggy/oasfilter/filter"
	"github.com/erraggy/oasfilter/internal/cliutil"
	"github.com/erraggy/oasfilter/oaserrors"
	"github.com/erraggy/oasfilter/parser"
)

// clipboardWriteAll is replaced in tests.
var clipboardWriteAll = clipboard.WriteAll

// FilterFlags contains flags for the filter command
type FilterFlags struct {
	Output    string
	Format    string
	Clipboard bool
	Strict    bool
	Verify    bool
	Watch     bool
	Quiet     bool
	Selection SelectionFlags
	Log       LogFlags
}

// SetupFilterFlags creates and configures a FlagSet for the filter command.
func SetupFilterFlags() (*flag.FlagSet, *FilterFlags) {
	fs := flag.NewFlagSet("filter", flag.ContinueOnError)
	flags := &FilterFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file path (- for stdout, default filtered-<input name>)")
	fs.StringVar(&flags.Output, "output", "", "output file path (- for stdout, default filtered-<input name>)")
	fs.StringVar(&flags.Format, "format", "", "output format: json or yaml (default: input format)")
	fs.BoolVar(&flags.Clipboard, "clipboard", false, "copy the filtered document to the clipboard instead of writing a file")
	fs.BoolVar(&flags.Strict, "strict", false, "fail when a reference names a missing component")
	fs.BoolVar(&flags.Verify, "verify", false, "check that every internal reference of the output resolves before writing")
	fs.BoolVar(&flags.Watch, "watch", false, "re-run whenever the input file changes")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: suppress the summary line")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: suppress the summary line")
	flags.Selection.register(fs)
	flags.Log.register(fs)

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: oasfilter filter [flags] <file|->\n\n")
		Writef(fs.Output(), "Write a self-contained OpenAPI document holding only the selected endpoints\n")
		Writef(fs.Output(), "and the components they reference.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  oasfilter filter --select \"GET /users\" openapi.json\n")
		Writef(fs.Output(), "  oasfilter filter --select tag:users --exclude ext:x-internal -o users.json openapi.json\n")
		Writef(fs.Output(), "  oasfilter filter --profile users.yaml --format yaml -o - openapi.json\n")
		Writef(fs.Output(), "  oasfilter filter --select op:listUsers --clipboard openapi.yaml\n")
		Writef(fs.Output(), "  oasfilter filter --select tag:billing --watch openapi.json\n")
		Writef(fs.Output(), "\nOutput:\n")
		Writef(fs.Output(), "  Without -o the document is written to filtered-<input name> in the current\n")
		Writef(fs.Output(), "  directory, or to stdout when the input is read from stdin.\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Success\n")
		Writef(fs.Output(), "  1    Load failure, invalid selection, failed verification, or write failure\n")
	}

	return fs, flags
}

// HandleFilter executes the filter command. With --watch it runs until ctx
// is cancelled.
func HandleFilter(ctx context.Context, args []string) error {
	fs, flags := SetupFilterFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	specPath, err := specArg(fs, "filter")
	if err != nil {
		return err
	}
	if _, err := parser.ParseSourceFormat(flags.Format); err != nil {
		return &oaserrors.ConfigError{Option: "format", Value: flags.Format, Message: "want json or yaml"}
	}
	if flags.Clipboard && flags.Output != "" {
		return &oaserrors.ConfigError{Option: "clipboard", Message: "cannot be combined with -o"}
	}
	if flags.Watch && specPath == StdinFilePath {
		return &oaserrors.ConfigError{Option: "watch", Message: "requires a file argument, not stdin"}
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

	run := &filterRun{
		specPath: specPath,
		flags:    flags,
		sel:      sel,
		profile:  profile,
		logger:   logger,
	}
	if flags.Watch {
		return run.watch(ctx)
	}
	return run.once()
}

// filterRun holds one resolved filter invocation.
type filterRun struct {
	specPath string
	flags    *FilterFlags
	sel      *filter.Selection
	profile  *filter.Profile
	logger   *zap.Logger
}

// format returns the requested output format: the flag, then the
// profile, otherwise the source format.
func (r *filterRun) format() parser.SourceFormat {
	if f, _ := parser.ParseSourceFormat(r.flags.Format); f != parser.SourceFormatUnknown {
		return f
	}
	if r.profile != nil {
		return r.profile.OutputFormat()
	}
	return parser.SourceFormatUnknown
}

// destination returns the output path, "-" for stdout, or "" for the
// clipboard.
func (r *filterRun) destination(result *filter.FilterResult, format parser.SourceFormat) string {
	switch {
	case r.flags.Clipboard:
		return ""
	case r.flags.Output != "":
		return r.flags.Output
	case r.profile != nil && r.profile.Output != "":
		return r.profile.Output
	case r.specPath == StdinFilePath:
		return StdinFilePath
	default:
		return result.OutputFileNameFor(format)
	}
}

func (r *filterRun) once() error {
	result, err := runFilter(r.specPath, r.sel, r.profile, r.flags.Strict, r.logger)
	if err != nil {
		return err
	}

	if r.flags.Verify {
		missing, err := filter.VerifyClosure(result.Document)
		if err != nil {
			return fmt.Errorf("filter: verifying output: %w", err)
		}
		if len(missing) > 0 {
			for _, m := range missing {
				Writef(stderr, "unresolved %s at %s\n", m.Ref, m.Source)
			}
			return fmt.Errorf("filter: verification failed: %d unresolved references", len(missing))
		}
	}

	format := r.format()
	data, err := result.Render(format)
	if err != nil {
		return fmt.Errorf("filter: rendering output: %w", err)
	}

	dest := r.destination(result, format)
	switch dest {
	case "":
		if err := clipboardWriteAll(string(data)); err != nil {
			return fmt.Errorf("filter: copying to clipboard: %w", err)
		}
		dest = "clipboard"
	case StdinFilePath:
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("filter: writing output: %w", err)
		}
		dest = "stdout"
	default:
		if err := ValidateOutputPath(dest, r.specPath); err != nil {
			return err
		}
		if err := RejectSymlinkOutput(dest); err != nil {
			return err
		}
		written, err := cliutil.WriteFile(dest, data)
		if err != nil {
			return fmt.Errorf("filter: %w", err)
		}
		dest = written
	}

	if !r.flags.Quiet {
		Writef(stderr, "Filtered %s: %d of %d endpoints, %d components -> %s\n",
			result.SourcePath, result.Stats.Selected, result.Stats.Endpoints, result.Stats.Components, dest)
	}
	return nil
}
