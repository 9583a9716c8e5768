package filter

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/erraggy/oasfilter/internal/options"
	"github.com/erraggy/oasfilter/jsonvalue"
	"github.com/erraggy/oasfilter/oaserrors"
	"github.com/erraggy/oasfilter/parser"
)

// OutputPrefix is prepended to the source file name to name the output.
const OutputPrefix = "filtered-"

// FilterResult contains the results of a filter operation
type FilterResult struct {
	// Document is the filtered document
	Document *jsonvalue.Object
	// Endpoints lists every endpoint of the source with Selected set
	Endpoints []*Endpoint
	// Closure is the set of components kept
	Closure *Closure
	// SourcePath is the path to the source file
	SourcePath string
	// SourceFormat is the format of the source file (JSON or YAML)
	SourceFormat parser.SourceFormat
	// Version is the source's version marker value
	Version string
	// Stats summarizes the result
	Stats FilterStats
}

// FilterStats summarizes a filter operation.
type FilterStats struct {
	// Source describes the unfiltered document
	Source parser.DocumentStats
	// Endpoints is the number of endpoints in the source
	Endpoints int
	// Selected is the number of endpoints kept
	Selected int
	// Components is the number of components kept
	Components int
	// Unresolved is the number of internal refs that named a missing component
	Unresolved int
}

// Selected returns the selected endpoints in order.
func (r *FilterResult) Selected() []*Endpoint {
	return SelectedEndpoints(r.Endpoints)
}

// MarshalJSON renders the filtered document with two-space indentation.
func (r *FilterResult) MarshalJSON() ([]byte, error) {
	return jsonvalue.MarshalIndent(r.Document, "  ")
}

// MarshalYAML implements yaml.Marshaler so the filtered document keeps its
// key order.
func (r *FilterResult) MarshalYAML() (any, error) {
	return jsonvalue.ToYAMLNode(r.Document), nil
}

// Render encodes the filtered document in format, followed by a newline.
// SourceFormatUnknown selects the source's format.
func (r *FilterResult) Render(format parser.SourceFormat) ([]byte, error) {
	if format == parser.SourceFormatUnknown {
		format = r.SourceFormat
	}
	if format == parser.SourceFormatYAML {
		return jsonvalue.MarshalYAML(r.Document)
	}
	out, err := r.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// OutputFileName returns "filtered-<base name of SourcePath>".
func (r *FilterResult) OutputFileName() string {
	return OutputPrefix + filepath.Base(r.SourcePath)
}

// OutputFileNameFor is OutputFileName with the extension changed to match
// format when it differs from the source format.
func (r *FilterResult) OutputFileNameFor(format parser.SourceFormat) string {
	name := r.OutputFileName()
	if format == parser.SourceFormatUnknown || format == r.SourceFormat {
		return name
	}
	ext := ".json"
	if format == parser.SourceFormatYAML {
		ext = ".yaml"
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}

// Option is a function that configures a filter operation
type Option func(*filterConfig) error

// filterConfig holds configuration for a filter operation
type filterConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte
	parsed   *parser.ParseResult

	sourceName  *string
	maxFileSize int64

	selection *Selection
	strict    bool
	logger    parser.Logger
}

func (c *filterConfig) log() parser.Logger {
	if c.logger != nil {
		return c.logger
	}
	return parser.NopLogger{}
}

// FilterWithOptions loads a document, selects endpoints and returns the
// filtered document.
//
// Example:
//
//	result, err := filter.FilterWithOptions(
//	    filter.WithFilePath("openapi.json"),
//	    filter.WithSelectors("tag:users", "GET /health"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, _ := result.MarshalJSON()
func FilterWithOptions(opts ...Option) (*FilterResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("filter: invalid options: %w", err)
	}

	parsed, err := cfg.load()
	if err != nil {
		return nil, err
	}
	return filterParsed(parsed, cfg)
}

// FilterParsed filters an already parsed document.
func FilterParsed(parsed *parser.ParseResult, opts ...Option) (*FilterResult, error) {
	if parsed == nil || parsed.Document == nil {
		return nil, fmt.Errorf("filter: nil ParseResult")
	}
	cfg, err := applyConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("filter: invalid options: %w", err)
	}
	return filterParsed(parsed, cfg)
}

func (c *filterConfig) load() (*parser.ParseResult, error) {
	if c.parsed != nil {
		if c.parsed.Document == nil {
			return nil, fmt.Errorf("filter: nil Document in ParseResult")
		}
		return c.parsed, nil
	}

	popts := []parser.Option{parser.WithMaxFileSize(c.maxFileSize)}
	if c.logger != nil {
		popts = append(popts, parser.WithLogger(c.logger))
	}
	if c.sourceName != nil {
		popts = append(popts, parser.WithSourceName(*c.sourceName))
	}
	switch {
	case c.filePath != nil:
		popts = append(popts, parser.WithFilePath(*c.filePath))
	case c.reader != nil:
		popts = append(popts, parser.WithReader(c.reader))
	default:
		popts = append(popts, parser.WithBytes(c.bytes))
	}

	parsed, err := parser.ParseWithOptions(popts...)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	return parsed, nil
}

func filterParsed(parsed *parser.ParseResult, cfg *filterConfig) (*FilterResult, error) {
	log := cfg.log().With("source", parsed.SourcePath)

	endpoints, err := ExtractEndpoints(parsed.Document)
	if err != nil {
		return nil, err
	}
	selected := cfg.selection.Apply(endpoints)
	log.Debug("extracted endpoints", "endpoints", len(endpoints), "selected", len(selected))

	c := newCollector(parsed.Document, cfg)
	c.log = log
	if err := c.collect(selected); err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	closure := c.closure
	log.Debug("collected references", "components", closure.Len(), "unresolved", len(closure.Unresolved))

	r := &reconstructor{doc: parsed.Document, log: log}
	doc := r.build(endpoints, closure)

	version := parsed.Version
	if version == "" {
		if info, err := parser.CheckStructure(parsed.Document); err == nil {
			version = info.Version
		}
	}

	sourcePath := parsed.SourcePath
	if cfg.sourceName != nil {
		sourcePath = *cfg.sourceName
	}

	return &FilterResult{
		Document:     doc,
		Endpoints:    endpoints,
		Closure:      closure,
		SourcePath:   sourcePath,
		SourceFormat: parsed.SourceFormat,
		Version:      version,
		Stats: FilterStats{
			Source:     parsed.Stats,
			Endpoints:  len(endpoints),
			Selected:   len(selected),
			Components: closure.Len(),
			Unresolved: len(closure.Unresolved),
		},
	}, nil
}

// applyOptions applies option functions and validates the input source.
func applyOptions(opts ...Option) (*filterConfig, error) {
	cfg, err := applyConfig(opts...)
	if err != nil {
		return nil, err
	}

	if err := options.ExactlyOne("input",
		options.Source{Name: "WithFilePath", Set: cfg.filePath != nil},
		options.Source{Name: "WithReader", Set: cfg.reader != nil},
		options.Source{Name: "WithBytes", Set: cfg.bytes != nil},
		options.Source{Name: "WithParsed", Set: cfg.parsed != nil},
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyConfig applies option functions without checking the input source.
func applyConfig(opts ...Option) (*filterConfig, error) {
	cfg := &filterConfig{
		selection: &Selection{},
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithFilePath specifies a file path as the input source
func WithFilePath(path string) Option {
	return func(cfg *filterConfig) error {
		if path == "" {
			return &oaserrors.ConfigError{Option: "WithFilePath", Message: "path cannot be empty"}
		}
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *filterConfig) error {
		if r == nil {
			return &oaserrors.ConfigError{Option: "WithReader", Message: "reader cannot be nil"}
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *filterConfig) error {
		if data == nil {
			return &oaserrors.ConfigError{Option: "WithBytes", Message: "bytes cannot be nil"}
		}
		cfg.bytes = data
		return nil
	}
}

// WithParsed specifies a parsed ParseResult as the input source
func WithParsed(result *parser.ParseResult) Option {
	return func(cfg *filterConfig) error {
		if result == nil {
			return &oaserrors.ConfigError{Option: "WithParsed", Message: "parse result cannot be nil"}
		}
		cfg.parsed = result
		return nil
	}
}

// WithSourceName overrides the reported source path, which also names the
// output file.
func WithSourceName(name string) Option {
	return func(cfg *filterConfig) error {
		cfg.sourceName = &name
		return nil
	}
}

// WithMaxFileSize sets the maximum input size in bytes.
// Default: parser.DefaultMaxFileSize
func WithMaxFileSize(n int64) Option {
	return func(cfg *filterConfig) error {
		if n < 0 {
			return &oaserrors.ConfigError{Option: "WithMaxFileSize", Value: n, Message: "must not be negative"}
		}
		cfg.maxFileSize = n
		return nil
	}
}

// WithSelection adds the rules of s to the selection.
func WithSelection(s *Selection) Option {
	return func(cfg *filterConfig) error {
		if s == nil {
			return &oaserrors.ConfigError{Option: "WithSelection", Message: "selection cannot be nil"}
		}
		cfg.selection.Merge(s)
		return nil
	}
}

// WithSelectors parses selector strings and adds them as include rules.
func WithSelectors(selectors ...string) Option {
	return func(cfg *filterConfig) error {
		s, err := NewSelection(selectors, nil)
		if err != nil {
			return err
		}
		cfg.selection.Merge(s)
		return nil
	}
}

// WithExcludes parses selector strings and adds them as exclude rules.
func WithExcludes(selectors ...string) Option {
	return func(cfg *filterConfig) error {
		s, err := NewSelection(nil, selectors)
		if err != nil {
			return err
		}
		cfg.selection.Merge(s)
		return nil
	}
}

// WithProfile adds a profile's rules to the selection and applies its
// strict setting when present.
func WithProfile(p *Profile) Option {
	return func(cfg *filterConfig) error {
		if p == nil {
			return &oaserrors.ConfigError{Option: "WithProfile", Message: "profile cannot be nil"}
		}
		s, err := p.Selection()
		if err != nil {
			return err
		}
		cfg.selection.Merge(s)
		if p.Strict != nil {
			cfg.strict = *p.Strict
		}
		return nil
	}
}

// WithStrictRefs makes an internal reference to a missing component an
// error (*oaserrors.ReferenceError) instead of being skipped.
// Default: false
func WithStrictRefs(enabled bool) Option {
	return func(cfg *filterConfig) error {
		cfg.strict = enabled
		return nil
	}
}

// WithLogger sets a structured logger for debug output.
// By default, logging is disabled.
func WithLogger(l parser.Logger) Option {
	return func(cfg *filterConfig) error {
		cfg.logger = l
		return nil
	}
}
