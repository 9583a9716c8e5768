// Package filter extracts a subset of an OpenAPI document's operations into
// a minimal, self-contained document.
//
// Filtering runs in three steps, each available on its own:
//
//   - [ExtractEndpoints] lists every (path, method) pair of the document,
//     sorted by path and then by the canonical method order
//     get, post, put, delete, patch, options, head, trace.
//   - [CollectReferences] follows "#/components/<bucket>/<name>" references
//     from the selected operations and the path-level parameters of their
//     path items, transitively, and returns the [Closure]: the component
//     names that must be kept, in discovery order.
//   - [Reconstruct] assembles the filtered document: version marker, info,
//     servers, the tag declarations the selected operations use,
//     externalDocs, the selected paths and the closure's components.
//
// # Quick Start
//
//	result, err := filter.FilterWithOptions(
//	    filter.WithFilePath("openapi.json"),
//	    filter.WithSelectors("tag:users"),
//	    filter.WithExcludes("ext:x-internal"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, _ := result.Render(parser.SourceFormatJSON)
//	os.WriteFile(result.OutputFileName(), data, 0o600)
//
// # Selectors
//
// A [Selection] holds include and exclude [Selector] rules. [ParseSelector]
// accepts "all", "METHOD /path", "op:<operationId>", "tag:<tag>",
// "path:<glob>", "method:<method>" and "ext:<filter>". [Profile] files list
// selectors in YAML or JSON.
//
// # References
//
// Only internal component references are followed. External references
// ("common.json#/Pet") and Swagger 2.0 references ("#/definitions/Pet") are
// copied as written and never add to the closure. A reference to a
// component that does not exist is skipped and listed in
// [Closure.Unresolved]; [WithStrictRefs] turns it into a
// *oaserrors.ReferenceError. Cycles are followed once: every component is
// visited at most one time.
//
// Security requirements name security schemes rather than referencing
// them, so a scheme is kept only when something references it with $ref.
//
// # Verification
//
// [VerifyClosure] lists the internal references of a document that do not
// resolve. A document produced by [Reconstruct] from a closure computed
// without unresolved references has none.
package filter
