package walker

import (
	"context"
	"fmt"

	"github.com/erraggy/oasfilter/internal/options"
	"github.com/erraggy/oasfilter/parser"
)

// WithFilePath specifies a file path to parse and walk.
func WithFilePath(path string) Option {
	return func(w *Walker) {
		w.filePath = &path
	}
}

// WithParsed specifies a pre-parsed result to walk.
func WithParsed(result *parser.ParseResult) Option {
	return func(w *Walker) {
		w.parsed = result
	}
}

// WithMaxDepth sets how many path segments below the walk root are visited.
// Deeper values are reported to the SkippedHandler. If depth is not positive,
// it is silently ignored and DefaultMaxDepth is kept.
func WithMaxDepth(depth int) Option {
	return func(w *Walker) {
		if depth > 0 {
			w.maxDepth = depth
		}
	}
}

// WithUserContext sets the context for cancellation and deadline propagation.
// The context is available to handlers via wc.Context(), and a cancelled
// context ends the walk with the context's error.
func WithUserContext(ctx context.Context) Option {
	return func(w *Walker) {
		w.userCtx = ctx
	}
}

// WalkWithOptions walks a document using functional options for input, handlers, and configuration.
// All options use the unified Option type - no adapter is needed.
//
// Example:
//
//	walker.WalkWithOptions(
//	    walker.WithFilePath("openapi.yaml"),
//	    walker.WithRefHandler(func(wc *walker.WalkContext, ref *walker.RefInfo) walker.Action {
//	        fmt.Println(wc.JSONPath, ref.Ref)
//	        return walker.Continue
//	    }),
//	)
func WalkWithOptions(opts ...Option) error {
	w := New(opts...)

	if err := options.ExactlyOne("input",
		options.Source{Name: "WithFilePath", Set: w.filePath != nil},
		options.Source{Name: "WithParsed", Set: w.parsed != nil},
	); err != nil {
		return fmt.Errorf("walker: %w", err)
	}

	result := w.parsed
	if result == nil {
		var err error
		result, err = parser.New().Parse(*w.filePath)
		if err != nil {
			return fmt.Errorf("walker: failed to parse: %w", err)
		}
	}
	if result.Document == nil {
		return fmt.Errorf("walker: nil Document in ParseResult")
	}

	return w.WalkFrom(result.Document)
}
