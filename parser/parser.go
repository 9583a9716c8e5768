package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/erraggy/oasfilter/jsonvalue"
	"github.com/erraggy/oasfilter/oaserrors"
)

// DefaultMaxFileSize is the default limit on input size: 50 MiB.
const DefaultMaxFileSize int64 = 50 << 20

var utf8BOM = []byte("\xef\xbb\xbf")

// Parser handles OpenAPI document loading.
type Parser struct {
	// ValidateStructure checks the version marker and paths object.
	// Default: true
	ValidateStructure bool
	// Logger is the structured logger for debug output.
	// If nil, logging is disabled (default)
	Logger Logger

	// Resource limits (0 means use default)

	// MaxFileSize is the maximum input size in bytes.
	// Default: DefaultMaxFileSize
	MaxFileSize int64
	// MaxDepth is the maximum array/object nesting depth.
	// Default: jsonvalue.DefaultMaxDepth
	MaxDepth int
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{
		ValidateStructure: true,
	}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

func (p *Parser) maxFileSize() int64 {
	if p.MaxFileSize > 0 {
		return p.MaxFileSize
	}
	return DefaultMaxFileSize
}

// SourceFormat represents the format of the source document
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// ParseResult contains a loaded document and metadata about its source.
//
// Callers should treat Document as read-only; the filter package never
// mutates it and clones every subtree it emits. Use jsonvalue.CloneObject
// before editing.
type ParseResult struct {
	// SourcePath is the path the document was read from. For readers and
	// byte slices it is "ParseReader.<ext>" or "ParseBytes.<ext>".
	SourcePath string
	// SourceFormat is the format of the source (JSON or YAML)
	SourceFormat SourceFormat
	// VersionKey is the version marker present: "openapi" or "swagger"
	VersionKey string
	// Version is the version marker's value (e.g., "3.0.3", "2.0")
	Version string
	// Document is the document root
	Document *jsonvalue.Object
	// LoadTime is the time taken to read the source data
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// Stats contains statistical information about the document
	Stats DocumentStats
}

// DocumentStats counts the selectable parts of a document.
type DocumentStats struct {
	PathCount      int
	OperationCount int
	ComponentCount int
}

// IsSwagger reports whether the document is Swagger 2.0 shaped.
func (pr *ParseResult) IsSwagger() bool {
	return pr.VersionKey == VersionKeySwagger
}

// Parse parses an OpenAPI document from a file path.
func (p *Parser) Parse(specPath string) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := p.readFile(specPath)
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, err
	}

	format := detectFormatFromPath(specPath)
	if format == SourceFormatUnknown {
		format = detectFormatFromContent(data)
	}

	res, err := p.parse(data, format, specPath)
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	return res, nil
}

// ParseReader parses an OpenAPI document from an io.Reader.
// SourcePath is set to ParseReader.yaml or ParseReader.json.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	limit := p.maxFileSize()
	loadStart := time.Now()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read data: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fileSizeError(limit, int64(len(data)))
	}

	format := detectFormatFromContent(data)
	res, err := p.parse(data, format, "ParseReader."+formatExt(format))
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	return res, nil
}

// ParseBytes parses an OpenAPI document from a byte slice.
// SourcePath is set to ParseBytes.yaml or ParseBytes.json.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	if limit := p.maxFileSize(); int64(len(data)) > limit {
		return nil, fileSizeError(limit, int64(len(data)))
	}
	format := detectFormatFromContent(data)
	return p.parse(data, format, "ParseBytes."+formatExt(format))
}

func (p *Parser) readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("parser: failed to read file: %s is a directory", path)
	}
	if limit := p.maxFileSize(); info.Size() > limit {
		return nil, fileSizeError(limit, info.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read file: %w", err)
	}
	return data, nil
}

func (p *Parser) parse(data []byte, format SourceFormat, sourcePath string) (*ParseResult, error) {
	log := p.log().With("source", sourcePath)

	root, err := decode(data, format, jsonvalue.WithMaxDepth(p.MaxDepth))
	if err != nil {
		return nil, annotate(err, sourcePath)
	}

	res := &ParseResult{
		SourcePath:   sourcePath,
		SourceFormat: format,
		SourceSize:   int64(len(data)),
	}

	if p.ValidateStructure {
		info, err := CheckStructure(root)
		if err != nil {
			return nil, annotate(err, sourcePath)
		}
		res.VersionKey, res.Version = info.VersionKey, info.Version
	}

	doc, ok := jsonvalue.AsObject(root)
	if !ok {
		// Only reachable with ValidateStructure disabled.
		return nil, annotate(&oaserrors.MalformedError{Message: "document root must be an object"}, sourcePath)
	}
	res.Document = doc
	res.Stats = computeStats(doc)

	log.Debug("parsed document",
		"format", string(format),
		"version", res.Version,
		"size", FormatBytes(res.SourceSize),
		"paths", res.Stats.PathCount,
		"operations", res.Stats.OperationCount,
	)
	return res, nil
}

func decode(data []byte, format SourceFormat, opts ...jsonvalue.DecodeOption) (jsonvalue.Value, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if format == SourceFormatJSON {
		return jsonvalue.DecodeJSON(data, opts...)
	}
	return jsonvalue.DecodeYAML(data, opts...)
}

// annotate fills in the source path on typed errors that lack one.
func annotate(err error, sourcePath string) error {
	switch e := err.(type) {
	case *oaserrors.ParseError:
		if e.Path == "" {
			e.Path = sourcePath
		}
	case *oaserrors.MalformedError:
		if e.Path == "" {
			e.Path = sourcePath
		}
	}
	return err
}

func fileSizeError(limit, actual int64) error {
	return &oaserrors.ResourceLimitError{
		ResourceType: "file_size",
		Limit:        limit,
		Actual:       actual,
		Message:      fmt.Sprintf("input is %s, limit is %s", FormatBytes(actual), FormatBytes(limit)),
	}
}

func formatExt(format SourceFormat) string {
	if format == SourceFormatJSON {
		return "json"
	}
	return "yaml"
}
