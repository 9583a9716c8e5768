package walker

import (
	"context"
	"sync"
)

// WalkContext provides contextual information about the current node being visited.
// It follows the http.Request pattern for context access.
//
// WalkContext values are pooled: a handler must not retain wc after it
// returns. Copy the fields it needs, or use WithContext to get a copy.
type WalkContext struct {
	// JSONPath is the full JSON path to the current node.
	// Always populated. Example: "$.paths['/pets'].get.responses['200']"
	JSONPath string

	// PathTemplate is the URL path template when walking within $.paths scope.
	// Empty when not in paths scope. Example: "/pets/{petId}"
	PathTemplate string

	// Method is the HTTP method when walking within an operation scope.
	// Empty when not in operation scope. Example: "get", "post"
	Method string

	// StatusCode is the HTTP status code when walking within a response scope.
	// Empty when not in response scope. Example: "200", "default"
	StatusCode string

	// Bucket is the components bucket when IsComponent is true.
	// Example: "schemas", or "definitions" for Swagger 2.0 documents
	Bucket string

	// Name is the component name when walking within a component.
	// Example: "Pet"
	Name string

	// Key is the object key of the current node. Empty for the walk root
	// and for array elements.
	Key string

	// Index is the array index of the current node, or -1.
	Index int

	// Depth is the number of path segments below the document root.
	Depth int

	// IsComponent is true when the current node is within the components
	// section (OAS 3.x) or definitions (OAS 2.0).
	IsComponent bool

	ctx context.Context
}

// Context returns the context.Context for cancellation and deadline propagation.
// Returns context.Background() if no context was set.
func (wc *WalkContext) Context() context.Context {
	if wc.ctx == nil {
		return context.Background()
	}
	return wc.ctx
}

// WithContext returns a shallow copy of WalkContext with the new context.
// The copy is not pooled and may be retained.
func (wc *WalkContext) WithContext(ctx context.Context) *WalkContext {
	wc2 := *wc
	wc2.ctx = ctx
	return &wc2
}

// InPathsScope returns true if currently walking within $.paths.
func (wc *WalkContext) InPathsScope() bool {
	return wc.PathTemplate != ""
}

// InOperationScope returns true if currently walking within an operation.
func (wc *WalkContext) InOperationScope() bool {
	return wc.Method != ""
}

// InResponseScope returns true if currently walking within a response.
func (wc *WalkContext) InResponseScope() bool {
	return wc.StatusCode != ""
}

var contextPool = sync.Pool{
	New: func() any { return new(WalkContext) },
}

func acquireContext() *WalkContext {
	return contextPool.Get().(*WalkContext)
}

// releaseContext clears wc and returns it to the pool.
func releaseContext(wc *WalkContext) {
	*wc = WalkContext{}
	contextPool.Put(wc)
}

// buildContext creates a WalkContext for the node at the top of the frame stack.
func (s *walkState) buildContext() *WalkContext {
	wc := acquireContext()
	wc.JSONPath = s.path.String()
	wc.Depth = len(s.frames)
	wc.Index = -1
	wc.ctx = s.ctx

	if n := len(s.frames); n > 0 {
		last := s.frames[n-1]
		if last.index >= 0 {
			wc.Index = last.index
		} else {
			wc.Key = last.key
		}
	}

	f := s.frames
	if len(f) == 0 {
		return wc
	}
	switch f[0].key {
	case "paths":
		if len(f) > 1 {
			wc.PathTemplate = f[1].key
		}
		if len(f) > 2 && f[2].index < 0 && isOperationKey(f[2].key) {
			wc.Method = f[2].key
			if len(f) > 4 && f[3].key == "responses" {
				wc.StatusCode = f[4].key
			}
		}
	case "components":
		if len(f) > 1 {
			wc.IsComponent = true
			wc.Bucket = f[1].key
		}
		if len(f) > 2 {
			wc.Name = f[2].key
		}
	case "definitions":
		wc.IsComponent = true
		wc.Bucket = "definitions"
		if len(f) > 1 {
			wc.Name = f[1].key
		}
	}
	return wc
}
