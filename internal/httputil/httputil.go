// Package httputil provides the HTTP method vocabulary of OpenAPI path items.
package httputil

import "strings"

// HTTP Method Constants
const (
	MethodGet     = "get"
	MethodPost    = "post"
	MethodPut     = "put"
	MethodDelete  = "delete"
	MethodPatch   = "patch"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodTrace   = "trace"
)

// CanonicalMethods lists the operation keys of a path item in display order.
// Endpoints on the same path sort by their position in this list.
var CanonicalMethods = []string{
	MethodGet,
	MethodPost,
	MethodPut,
	MethodDelete,
	MethodPatch,
	MethodOptions,
	MethodHead,
	MethodTrace,
}

// MethodRank returns the position of method in CanonicalMethods, matching
// case-insensitively. Unknown methods rank after every known one.
func MethodRank(method string) int {
	m := strings.ToLower(method)
	for i, known := range CanonicalMethods {
		if known == m {
			return i
		}
	}
	return len(CanonicalMethods)
}

// IsMethod reports whether key names an operation inside a path item.
func IsMethod(key string) bool {
	return MethodRank(key) < len(CanonicalMethods)
}
