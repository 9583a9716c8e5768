package filter

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasfilter/internal/orderedset"
	"github.com/erraggy/oasfilter/jsonvalue"
	"github.com/erraggy/oasfilter/parser"
)

// pathItemFields are the path item members copied into a filtered path item.
var pathItemFields = []string{"summary", "description", "servers", "parameters"}

// Reconstruct builds the filtered document for the selected endpoints of
// doc. The result has the version marker, info, servers, the tag
// declarations used by selected operations, externalDocs, the selected
// paths and the components named by closure. Every value is deep-cloned:
// the result shares nothing with doc.
//
// With no endpoint selected the result is the version marker, info and
// an empty paths object. A selected endpoint whose operation is missing
// from doc is skipped.
func Reconstruct(doc *jsonvalue.Object, endpoints []*Endpoint, closure *Closure, opts ...Option) (*jsonvalue.Object, error) {
	cfg, err := applyConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("filter: invalid options: %w", err)
	}
	r := &reconstructor{doc: doc, log: cfg.log()}
	return r.build(endpoints, closure), nil
}

type reconstructor struct {
	doc *jsonvalue.Object
	log parser.Logger
}

func (r *reconstructor) build(endpoints []*Endpoint, closure *Closure) *jsonvalue.Object {
	out := jsonvalue.NewObject(8)
	r.copyVersion(out)
	r.copyField(out, "info")

	selected := SelectedEndpoints(endpoints)
	if len(selected) == 0 {
		out.Set("paths", jsonvalue.NewObject(0))
		return out
	}

	paths, used := r.buildPaths(selected)

	r.copyField(out, "servers")
	if tags := r.filterTags(used); len(tags) > 0 {
		out.Set("tags", tags)
	}
	r.copyField(out, "externalDocs")
	out.Set("paths", paths)
	if components := r.buildComponents(closure); components.Len() > 0 {
		out.Set("components", components)
	}

	r.log.Debug("reconstructed document",
		"paths", paths.Len(),
		"endpoints", len(selected),
		"components", closure.Len(),
	)
	return out
}

// copyVersion copies the version marker, preferring openapi over swagger.
func (r *reconstructor) copyVersion(out *jsonvalue.Object) {
	for _, key := range []string{parser.VersionKeyOpenAPI, parser.VersionKeySwagger} {
		if v, ok := r.doc.Get(key); ok {
			out.Set(key, jsonvalue.Clone(v))
			return
		}
	}
}

func (r *reconstructor) copyField(out *jsonvalue.Object, key string) {
	if v, ok := r.doc.Get(key); ok {
		out.Set(key, jsonvalue.Clone(v))
	}
}

// buildPaths returns the filtered paths object and the union of the tags of
// the endpoints that made it into the output.
func (r *reconstructor) buildPaths(selected []*Endpoint) (*jsonvalue.Object, *orderedset.Set[string]) {
	srcPaths, _ := r.doc.GetObject("paths")
	out := jsonvalue.NewObject(len(selected))
	tags := orderedset.New[string]()

	for _, ep := range selected {
		srcItem, ok := srcPaths.GetObject(ep.Path)
		if !ok {
			r.log.Warn("selected path not found", "path", ep.Path)
			continue
		}
		method := strings.ToLower(ep.Method)
		op, ok := srcItem.GetObject(method)
		if !ok {
			r.log.Warn("selected operation not found", "endpoint", ep.Key())
			continue
		}

		item, ok := out.GetObject(ep.Path)
		if !ok {
			item = jsonvalue.NewObject(len(pathItemFields) + 1)
			for _, field := range pathItemFields {
				if v, found := srcItem.Get(field); found {
					item.Set(field, jsonvalue.Clone(v))
				}
			}
			out.Set(ep.Path, item)
		}
		item.Set(method, jsonvalue.CloneObject(op))

		for _, t := range ep.Tags {
			tags.Add(t)
		}
	}
	return out, tags
}

// filterTags keeps the top-level tag declarations whose name is in used,
// in their original order.
func (r *reconstructor) filterTags(used *orderedset.Set[string]) jsonvalue.Array {
	decls, ok := r.doc.GetArray("tags")
	if !ok || used.Len() == 0 {
		return nil
	}
	var kept jsonvalue.Array
	for _, decl := range decls {
		obj, ok := jsonvalue.AsObject(decl)
		if !ok {
			continue
		}
		if name, ok := obj.GetString("name"); ok && used.Has(name) {
			kept = append(kept, jsonvalue.CloneObject(obj))
		}
	}
	return kept
}

func (r *reconstructor) buildComponents(closure *Closure) *jsonvalue.Object {
	out := jsonvalue.NewObject(0)
	srcComponents, _ := r.doc.GetObject("components")
	for _, b := range Buckets {
		names := closure.Names(b)
		if len(names) == 0 {
			continue
		}
		srcBucket, _ := srcComponents.GetObject(b.String())
		bucket := jsonvalue.NewObject(len(names))
		for _, name := range names {
			if v, ok := srcBucket.Get(name); ok {
				bucket.Set(name, jsonvalue.Clone(v))
			}
		}
		if bucket.Len() > 0 {
			out.Set(b.String(), bucket)
		}
	}
	return out
}
