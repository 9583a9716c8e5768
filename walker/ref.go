package walker

import "github.com/erraggy/oasfilter/internal/pathutil"

// RefInfo contains information about a $ref encountered during traversal.
type RefInfo struct {
	// Ref is the $ref value (e.g., "#/components/schemas/User")
	Ref string

	// SourcePath is the JSON path of the object holding the ref
	SourcePath string

	// Bucket and Name are set when Ref has the form
	// "#/components/<bucket>/<name>" with a known bucket. Name is unescaped.
	Bucket string
	Name   string
}

func newRefInfo(ref, sourcePath string) *RefInfo {
	info := &RefInfo{Ref: ref, SourcePath: sourcePath}
	if bucket, name, ok := pathutil.ParseComponentRef(ref); ok {
		info.Bucket, info.Name = bucket, name
	}
	return info
}

// IsComponent reports whether the ref names a component of the same document.
func (r *RefInfo) IsComponent() bool {
	return r.Bucket != ""
}

// IsLocal reports whether the ref points into the same document. Swagger
// 2.0 "#/definitions/..." refs are local but not component refs.
func (r *RefInfo) IsLocal() bool {
	return pathutil.IsLocalRef(r.Ref)
}

// RefHandler is called for each object with a string "$ref" member.
// Return SkipChildren to leave the object's other members unvisited,
// Stop to halt traversal, Continue to proceed.
type RefHandler func(wc *WalkContext, ref *RefInfo) Action

// WithRefHandler sets the handler called when a $ref is encountered.
func WithRefHandler(fn RefHandler) Option {
	return func(w *Walker) { w.onRef = fn }
}
