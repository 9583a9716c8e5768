// Package parser loads OpenAPI documents as order-preserving trees.
//
// The parser reads JSON or YAML from a file, an io.Reader or a byte slice
// and returns a [ParseResult] whose Document is a *jsonvalue.Object. Nothing
// beyond the document shape is interpreted: a document must be an object,
// carry an "openapi" or "swagger" version marker and have a "paths" object.
// Everything else, including unknown fields and extensions, is kept as read.
//
// # Quick Start
//
//	result, err := parser.ParseWithOptions(parser.WithFilePath("openapi.json"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Version, result.Stats.OperationCount)
//
// # Formats
//
// The format is taken from the file extension (.json, .yaml, .yml) when
// there is one, otherwise from the content: input starting with '{' or '['
// is JSON, anything else YAML. JSON input that fails to decode is reported
// as JSON; it is never retried as YAML.
//
// # Errors
//
// Decode failures are *oaserrors.ParseError, shape failures
// *oaserrors.MalformedError and exceeded limits
// *oaserrors.ResourceLimitError. All match their sentinels with errors.Is.
//
// # Limits
//
// [WithMaxFileSize] caps the input size (default [DefaultMaxFileSize]) and
// [WithMaxDepth] the nesting depth (default jsonvalue.DefaultMaxDepth).
//
// # Logging
//
// [Logger] is a small structured logging interface. [NopLogger] is the
// default; [NewSlogAdapter] and [NewZapAdapter] wrap log/slog and zap.
package parser
