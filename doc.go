// Package oasfilter extracts self-contained subsets of OpenAPI Specification
// (OAS) documents.
//
// Given a document and a selection of endpoints, oasfilter computes the
// transitive closure of the internal component references the selected
// operations reach and writes a new document holding only those endpoints
// and components. The output is suitable for handing a single feature's API
// surface to a code generator, a reviewer, or a language model without the
// rest of a large specification.
//
// # Overview
//
// The library consists of these packages:
//
//   - filter: endpoint extraction, selectors, reference closure, document
//     reconstruction, profiles and closure verification
//   - parser: JSON and YAML loading with size and depth limits
//   - jsonvalue: an ordered JSON value model that keeps the document's key
//     order through decode, filtering and encode
//   - walker: a depth-first traversal of JSON values with $ref handlers
//   - oaserrors: typed errors shared by every package
//
// Documents of every major version are accepted: OAS 2.0 (Swagger), OAS
// 3.0.x, 3.1.x and 3.2.0. Only refs of the form
// "#/components/<section>/<name>" are followed; Swagger "#/definitions" refs
// and external refs are copied through unchanged.
//
// # Installation
//
// Install the library using go get:
//
//	go get github.com/erraggy/oasfilter
//
// Install the command line tool:
//
//	go install github.com/erraggy/oasfilter/cmd/oasfilter@latest
//
// # Quick Start
//
// Filter a document down to the users endpoints:
//
//	import "github.com/erraggy/oasfilter/filter"
//
//	result, err := filter.FilterWithOptions(
//		filter.WithFilePath("openapi.json"),
//		filter.WithSelectors("tag:users"),
//		filter.WithExcludes("ext:x-internal"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	data, err := result.MarshalJSON()
//
// List the endpoints of a document:
//
//	parsed, err := parser.ParseWithOptions(parser.WithFilePath("openapi.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	endpoints, err := filter.ExtractEndpoints(parsed.Document)
//	for _, ep := range endpoints {
//		fmt.Println(ep.Key(), ep.OperationID)
//	}
//
// Compute the closure of a selection without reconstructing a document:
//
//	sel, _ := filter.NewSelection([]string{"GET /users"}, nil)
//	closure, err := filter.CollectReferences(parsed.Document, sel.Apply(endpoints))
//	fmt.Println(closure.Names(filter.BucketSchemas))
//
// # Selectors
//
// Selections are built from selector strings, usable from the library, the
// command line, profile files and the MCP tools alike:
//
//	all                every endpoint
//	GET /users         one endpoint
//	op:listUsers       operationId
//	tag:users          tag
//	path:/users/**     path glob; * is one segment, ** any number
//	method:delete      HTTP method
//	ext:x-public       extension filter, e.g. ext:x-audience=partner+!x-beta
//
// An endpoint is selected when an include selector matches and no exclude
// selector does.
//
// # Profiles
//
// A profile file stores a reusable selection with output defaults:
//
//	include:
//	  - tag:users
//	exclude:
//	  - ext:x-internal
//	strict: true
//	format: yaml
//	output: users-api.yaml
//
// Load one with filter.LoadProfile and pass it with filter.WithProfile, or
// use the --profile flag.
//
// # Command Line
//
// The oasfilter command wraps the library:
//
//	oasfilter endpoints openapi.json
//	oasfilter refs --select "GET /users" openapi.json
//	oasfilter filter --select tag:users -o users.json openapi.json
//	oasfilter filter --profile users.yaml --watch openapi.yaml
//	oasfilter mcp
//
// The mcp command serves list_endpoints, collect_refs and filter_spec as
// Model Context Protocol tools over stdio, configured by OASFILTER_*
// environment variables.
//
// # Error Handling
//
// Errors wrap typed values from oaserrors and match their sentinels with
// errors.Is:
//
//	_, err := filter.FilterWithOptions(filter.WithFilePath(path), filter.WithSelectors("all"))
//	switch {
//	case errors.Is(err, oaserrors.ErrParse):
//		// not valid JSON or YAML
//	case errors.Is(err, oaserrors.ErrMalformed):
//		// no version marker or paths object
//	case errors.Is(err, oaserrors.ErrReference):
//		// strict mode and a component is missing
//	}
//
// Unresolved internal refs are skipped and reported in
// FilterResult.Closure.Unresolved unless filter.WithStrictRefs(true) is set.
//
// # Logging
//
// Every package logs through parser.Logger. The default discards output;
// parser.NewSlogAdapter and parser.NewZapAdapter connect log/slog and zap.
package oasfilter
