// Package pathutil provides path and reference helpers for walking raw
// OpenAPI documents.
//
// # JSON Paths
//
// [PathBuilder] builds JSON path strings such as
// "$.paths['/users'].get.responses['200']" with push/pop semantics, so a
// recursive traversal only materializes a string when a caller asks for it.
// Builders are pooled:
//
//	path := pathutil.Acquire()
//	defer path.Release()
//
//	path.Push("paths")
//	path.Push("/users") // rendered as ['/users']
//	path.PushIndex(0)   // rendered as [0]
//
// # Component References
//
// [ParseComponentRef] splits an internal reference of the form
// "#/components/<bucket>/<name>" into its bucket and name. The name is
// decoded as a JSON Pointer reference token, so "#/components/schemas/a~1b"
// names the schema "a/b". [ComponentRef] is the inverse.
//
// # Output Paths
//
// [SanitizeOutputPath] cleans a user-provided output path and refuses to
// write through symlinks or onto directories.
package pathutil
