// Package walker provides a document traversal API for OpenAPI specifications.
//
// The walker visits a jsonvalue tree depth-first, in document order, and
// calls handlers for each node. It knows nothing about the OpenAPI object
// model beyond the page layout: values under $.paths carry their path
// template, method and status code, and values under $.components (or
// $.definitions in Swagger 2.0) carry their bucket and component name.
//
// # Quick Start
//
// Walk a document and print every reference:
//
//	result, _ := parser.ParseWithOptions(parser.WithFilePath("api.yaml"))
//
//	err := walker.Walk(result,
//	    walker.WithRefHandler(func(wc *walker.WalkContext, ref *walker.RefInfo) walker.Action {
//	        fmt.Println(wc.JSONPath, ref.Ref)
//	        return walker.Continue
//	    }),
//	)
//
// # Flow Control
//
// Handlers return an [Action] to control traversal:
//
//   - [Continue]: continue traversing children and siblings normally
//   - [SkipChildren]: skip all children of the current node, continue with siblings
//   - [Stop]: stop the entire walk immediately
//
// For an object, the handlers run in this order: [NodeHandler],
// [ObjectHandler], [RefHandler] (objects with a string "$ref" only),
// [OperationHandler] (operations only). The first one that does not return
// Continue decides. [ObjectPostHandler] runs after the children.
//
// # Re-entrant Walks
//
// A [Walker] holds no traversal state, so a handler may call
// [Walker.WalkFrom] on the same walker to follow a reference into another
// part of the document. WalkFrom takes the object keys of the new starting
// point so paths and scope stay correct:
//
//	var w *walker.Walker
//	w = walker.New(walker.WithRefHandler(func(wc *walker.WalkContext, ref *walker.RefInfo) walker.Action {
//	    if target, ok := lookup(ref); ok && !seen[ref.Ref] {
//	        seen[ref.Ref] = true
//	        _ = w.WalkFrom(target, "components", ref.Bucket, ref.Name)
//	    }
//	    return walker.SkipChildren
//	}))
//
// The caller owns cycle detection.
//
// # Context
//
// [WalkContext] values are pooled and must not be retained after a handler
// returns. [WithUserContext] attaches a context.Context; handlers read it with
// wc.Context(), and the walk ends with the context's error once it is done.
package walker
