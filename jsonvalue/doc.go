// Package jsonvalue provides an order-preserving tree representation of
// JSON documents.
//
// OpenAPI documents are handled as raw trees rather than typed structs so
// that unknown fields, extensions and key order survive a filter pass
// untouched. A [Value] is one of [*Object], [Array], [String], [Number],
// [Bool] or [Null]. Objects keep their keys in source order; re-setting an
// existing key replaces the value in place.
//
// # Decoding
//
// [DecodeJSON] and [DecodeYAML] build a Value from source bytes. Syntax
// errors are reported as *oaserrors.ParseError with line and column, and
// nesting beyond the configured depth as *oaserrors.ResourceLimitError:
//
//	v, err := jsonvalue.DecodeJSON(data, jsonvalue.WithMaxDepth(200))
//	if errors.Is(err, oaserrors.ErrParse) {
//	    // report position
//	}
//
// YAML input goes through the same model: anchors and aliases are expanded,
// merge keys ("<<") are applied, and non-string scalars such as timestamps
// become strings.
//
// # Encoding
//
// [MarshalIndent] writes JSON with a configurable indent, keeping key order
// and leaving "<", ">" and "&" unescaped. [MarshalYAML] writes YAML in the
// same order. Every Value also implements json.Marshaler, so Values can be
// embedded in structs handed to encoding/json.
//
// # Helpers
//
// [Clone] deep-copies a tree, [Equal] compares two trees ignoring object key
// order, and [Lookup] resolves a JSON Pointer.
package jsonvalue
