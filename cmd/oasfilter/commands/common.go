// Package commands provides CLI command handlers for oasfilter.
package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasfilter/filter"
	"github.com/erraggy/oasfilter/internal/cliutil"
	"github.com/erraggy/oasfilter/internal/pathutil"
	"github.com/erraggy/oasfilter/oaserrors"
	"github.com/erraggy/oasfilter/parser"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// stdinSourceName names documents read from stdin in logs and results.
const stdinSourceName = "stdin"

// I/O seams, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Writef writes formatted output to the writer.
func Writef(w io.Writer, format string, args ...any) {
	cliutil.Writef(w, format, args...)
}

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured writes data in the specified format (json or yaml) to w.
func OutputStructured(w io.Writer, data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	if _, err := fmt.Fprintln(w, strings.TrimRight(string(bytes), "\n")); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// ValidateOutputPath checks that outputPath does not overwrite the input.
func ValidateOutputPath(outputPath, inputPath string) error {
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}
	if inputPath == "" || inputPath == StdinFilePath {
		return nil
	}
	absInputPath, err := filepath.Abs(inputPath)
	if err != nil {
		return fmt.Errorf("invalid input path %s: %w", inputPath, err)
	}
	if absOutputPath == absInputPath {
		return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
	}
	return nil
}

// RejectSymlinkOutput checks if the output path is a symlink and returns an error if so.
func RejectSymlinkOutput(path string) error {
	info, err := os.Lstat(filepath.Clean(path))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("commands: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("commands: %w: %s", pathutil.ErrSymlinkOutput, path)
	}
	return nil
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	if s == nil {
		return ""
	}
	return strings.Join(*s, ", ")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// LogFlags holds the logging flags shared by every document command.
type LogFlags struct {
	Level   string
	Verbose bool
}

func (lf *LogFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&lf.Level, "log-level", "warn", "log level: debug, info, warn, error")
	fs.BoolVar(&lf.Verbose, "verbose", false, "enable debug logging (same as --log-level debug)")
}

// Logger builds the console logger selected by the flags.
func (lf *LogFlags) Logger(w io.Writer) (*zap.Logger, error) {
	level := zapcore.WarnLevel
	if lf.Level != "" {
		parsed, err := zapcore.ParseLevel(lf.Level)
		if err != nil {
			return nil, &oaserrors.ConfigError{Option: "log-level", Value: lf.Level, Message: "want debug, info, warn or error"}
		}
		level = parsed
	}
	if lf.Verbose {
		level = zapcore.DebugLevel
	}
	return NewConsoleLogger(w, level), nil
}

// NewConsoleLogger returns a zap logger writing human-readable lines to w.
func NewConsoleLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	})
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core, zap.AddStacktrace(zap.ErrorLevel))
}

// SelectionFlags holds the endpoint selection flags.
type SelectionFlags struct {
	Select  stringList
	Exclude stringList
	Profile string
}

func (sf *SelectionFlags) register(fs *flag.FlagSet) {
	fs.Var(&sf.Select, "select", "select endpoints (repeatable): \"GET /users\", tag:users, op:listUsers, path:/users/*, method:get, ext:x-public, all")
	fs.Var(&sf.Exclude, "exclude", "drop endpoints matching a selector (repeatable)")
	fs.StringVar(&sf.Profile, "profile", "", "read selectors and defaults from a profile file (YAML or JSON)")
}

// Load parses the selectors and loads the profile, if any. The profile is
// nil when --profile is not given.
func (sf *SelectionFlags) Load() (*filter.Selection, *filter.Profile, error) {
	sel, err := filter.NewSelection(sf.Select, sf.Exclude)
	if err != nil {
		return nil, nil, err
	}
	if sf.Profile == "" {
		return sel, nil, nil
	}
	profile, err := filter.LoadProfile(sf.Profile)
	if err != nil {
		return nil, nil, err
	}
	return sel, profile, nil
}

// requireSelection rejects an invocation that selects nothing.
func requireSelection(sel *filter.Selection, profile *filter.Profile) error {
	if !sel.IsEmpty() || (profile != nil && len(profile.Include) > 0) {
		return nil
	}
	return &oaserrors.ConfigError{Option: "select", Message: "no endpoints selected: use --select or --profile"}
}

// inputOptions returns the filter options reading specPath, or stdin when
// specPath is "-".
func inputOptions(specPath string) []filter.Option {
	if specPath == StdinFilePath {
		return []filter.Option{filter.WithReader(stdin), filter.WithSourceName(stdinSourceName)}
	}
	return []filter.Option{filter.WithFilePath(specPath)}
}

// runFilter builds the option list shared by the document commands and
// runs the filter.
func runFilter(specPath string, sel *filter.Selection, profile *filter.Profile, strict bool, logger *zap.Logger) (*filter.FilterResult, error) {
	opts := inputOptions(specPath)
	opts = append(opts, filter.WithLogger(parser.NewZapAdapter(logger)))
	if profile != nil {
		opts = append(opts, filter.WithProfile(profile))
	}
	opts = append(opts, filter.WithSelection(sel))
	if strict {
		opts = append(opts, filter.WithStrictRefs(true))
	}
	return filter.FilterWithOptions(opts...)
}

// specArg returns the single positional spec argument.
func specArg(fs *flag.FlagSet, command string) (string, error) {
	if fs.NArg() != 1 {
		fs.Usage()
		return "", fmt.Errorf("%s requires exactly one spec file argument (use - for stdin)", command)
	}
	return fs.Arg(0), nil
}
