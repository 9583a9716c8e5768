package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is. Every typed error in this package matches
// exactly one of them.
var (
	// ErrParse: the input text is not valid JSON or YAML.
	ErrParse = errors.New("parse error")

	// ErrMalformed: the document decoded but lacks a version marker or
	// its paths table.
	ErrMalformed = errors.New("malformed specification")

	// ErrReference: an internal component reference did not resolve.
	ErrReference = errors.New("reference error")

	// ErrResourceLimit: a size or depth limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig: an option, selector, profile or flag is invalid.
	ErrConfig = errors.New("configuration error")
)

// ParseError is a failure to decode the input text.
type ParseError struct {
	Path    string // file path or source name
	Format  string // "json" or "yaml", when known
	Line    int    // 1-based; 0 if unknown
	Column  int    // 1-based; 0 if unknown
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	head := "parse error"
	if e.Format != "" {
		head = e.Format + " " + head
	}
	var pos string
	if e.Line > 0 {
		pos = fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			pos += fmt.Sprintf(", column %d", e.Column)
		}
	}
	return head + suffix(" in ", e.Path) + pos + suffix(": ", e.Message) + causeSuffix(e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// MalformedError is a document that decoded cleanly but is missing the
// root fields every OpenAPI document carries.
type MalformedError struct {
	Path string
	// Field is the missing or mistyped root field, such as "openapi" or "paths".
	Field   string
	Message string
}

func (e *MalformedError) Error() string {
	return "malformed specification" + suffix(" in ", e.Path) + suffix(": ", e.Message)
}

func (e *MalformedError) Is(target error) bool { return target == ErrMalformed }

// ReferenceError is an internal $ref whose target component is absent.
// It is only returned when strict reference checking is on; otherwise the
// ref is recorded as unresolved and skipped.
type ReferenceError struct {
	Ref    string
	Bucket string // components section named by Ref, e.g. "schemas"
	Name   string
	// Source is the JSON path of the object holding the ref.
	Source  string
	Message string
}

func (e *ReferenceError) Error() string {
	return "reference error" + suffix(": ", e.Ref) + suffix(" at ", e.Source) + suffix(": ", e.Message)
}

func (e *ReferenceError) Is(target error) bool { return target == ErrReference }

// ResourceLimitError reports input that exceeded a configured limit.
type ResourceLimitError struct {
	// ResourceType is "file_size" or "nesting_depth".
	ResourceType string
	Limit        int64
	Actual       int64 // 0 if unknown
	Message      string
}

func (e *ResourceLimitError) Error() string {
	var limits string
	if e.Limit > 0 {
		limits = fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			limits += fmt.Sprintf(", actual: %d", e.Actual)
		}
		limits += ")"
	}
	return "resource limit exceeded" + suffix(": ", e.ResourceType) + limits + suffix(": ", e.Message)
}

func (e *ResourceLimitError) Is(target error) bool { return target == ErrResourceLimit }

// ConfigError is an invalid option, selector, profile or command line flag.
type ConfigError struct {
	// Option names the offending option or flag, e.g. "selector" or "log-level".
	Option  string
	Value   any // offending value; nil if not applicable
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	var value string
	if e.Value != nil {
		value = fmt.Sprintf(" (value: %v)", e.Value)
	}
	return "configuration error" + suffix(" for ", e.Option) + value + suffix(": ", e.Message) + causeSuffix(e.Cause)
}

func (e *ConfigError) Unwrap() error { return e.Cause }

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

func suffix(sep, s string) string {
	if s == "" {
		return ""
	}
	return sep + s
}

func causeSuffix(err error) string {
	if err == nil {
		return ""
	}
	return ": " + err.Error()
}
