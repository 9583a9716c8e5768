// Package oaserrors provides structured error types for oasfilter.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to tell a file that is not JSON apart from a
// JSON document that is not an OpenAPI document.
//
// # Error Types
//
//   - [ParseError]: JSON/YAML decoding failures, with line and column when known
//   - [MalformedError]: missing "openapi"/"swagger" marker or missing "paths"
//   - [ReferenceError]: an internal component $ref with no target (strict mode only)
//   - [ResourceLimitError]: input size or nesting depth limits
//   - [ConfigError]: invalid options, selectors or profile files
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrMalformed]: Matches any [MalformedError]
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage
//
//	result, err := filter.FilterWithOptions(filter.WithFilePath("api.json"))
//	if err != nil {
//	    var malformed *oaserrors.MalformedError
//	    if errors.As(err, &malformed) {
//	        fmt.Println("not an OpenAPI document:", malformed.Message)
//	    }
//	}
package oaserrors
