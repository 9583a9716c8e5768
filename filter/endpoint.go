package filter

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/erraggy/oasfilter/internal/httputil"
	"github.com/erraggy/oasfilter/jsonvalue"
	"github.com/erraggy/oasfilter/parser"
)

// Endpoint is one (path, method) pair of a document together with the
// operation metadata selectors look at.
type Endpoint struct {
	// Path is the path template, e.g. "/users/{id}"
	Path string `json:"path" yaml:"path"`
	// Method is the uppercase HTTP method, e.g. "GET"
	Method string `json:"method" yaml:"method"`
	// OperationID is the operation's operationId, if any
	OperationID string `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	// Summary is the operation's summary, if any
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`
	// Tags holds the string elements of the operation's tags array
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	// Deprecated mirrors the operation's deprecated flag
	Deprecated bool `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	// Extensions holds the operation's "x-" members in document order,
	// or nil when there are none
	Extensions *jsonvalue.Object `json:"extensions,omitempty" yaml:"extensions,omitempty"`
	// Selected is set by Selection.Apply
	Selected bool `json:"selected" yaml:"selected"`
}

// Key returns the endpoint's selector form, "METHOD /path".
func (e *Endpoint) Key() string {
	return e.Method + " " + e.Path
}

// String implements fmt.Stringer.
func (e *Endpoint) String() string {
	return e.Key()
}

// HasTag reports whether the operation is tagged with tag.
func (e *Endpoint) HasTag(tag string) bool {
	return slices.Contains(e.Tags, tag)
}

// ExtractEndpoints lists every operation in doc, one Endpoint per method
// present on a path item, sorted by path and then canonical method order.
// A method whose value is not an object, and a path item that is not an
// object, are skipped. Documents without a version marker or a paths
// object yield a *oaserrors.MalformedError and no endpoints.
func ExtractEndpoints(doc *jsonvalue.Object) ([]*Endpoint, error) {
	info, err := parser.CheckStructure(doc)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}

	endpoints := make([]*Endpoint, 0, info.Paths.Len())
	for path, itemValue := range info.Paths.All() {
		item, ok := jsonvalue.AsObject(itemValue)
		if !ok {
			continue
		}
		for _, method := range httputil.CanonicalMethods {
			op, ok := item.GetObject(method)
			if !ok {
				continue
			}
			endpoints = append(endpoints, newEndpoint(path, method, op))
		}
	}

	SortEndpoints(endpoints)
	return endpoints, nil
}

func newEndpoint(path, method string, op *jsonvalue.Object) *Endpoint {
	ep := &Endpoint{
		Path:   path,
		Method: strings.ToUpper(method),
	}
	ep.OperationID, _ = op.GetString("operationId")
	ep.Summary, _ = op.GetString("summary")
	ep.Deprecated, _ = op.GetBool("deprecated")

	if tags, ok := op.GetArray("tags"); ok {
		for _, t := range tags {
			if s, ok := t.(jsonvalue.String); ok {
				ep.Tags = append(ep.Tags, string(s))
			}
		}
	}

	for key, v := range op.All() {
		if !strings.HasPrefix(key, "x-") {
			continue
		}
		if ep.Extensions == nil {
			ep.Extensions = jsonvalue.NewObject(2)
		}
		ep.Extensions.Set(key, jsonvalue.Clone(v))
	}
	return ep
}

// SortEndpoints orders endpoints by path using root-locale collation, with
// an exact byte comparison breaking collation ties, then by canonical
// method order.
func SortEndpoints(endpoints []*Endpoint) {
	// Collators keep scratch buffers and are not safe for concurrent use.
	col := collate.New(language.Und)
	slices.SortStableFunc(endpoints, func(a, b *Endpoint) int {
		if a.Path != b.Path {
			if c := col.CompareString(a.Path, b.Path); c != 0 {
				return c
			}
			return strings.Compare(a.Path, b.Path)
		}
		return httputil.MethodRank(a.Method) - httputil.MethodRank(b.Method)
	})
}

// SelectedEndpoints returns the endpoints whose Selected flag is set, in order.
func SelectedEndpoints(endpoints []*Endpoint) []*Endpoint {
	selected := make([]*Endpoint, 0, len(endpoints))
	for _, ep := range endpoints {
		if ep.Selected {
			selected = append(selected, ep)
		}
	}
	return selected
}

// FindEndpoint returns the endpoint with the given method and path, matching
// the method case-insensitively.
func FindEndpoint(endpoints []*Endpoint, method, path string) (*Endpoint, bool) {
	method = strings.ToUpper(method)
	for _, ep := range endpoints {
		if ep.Method == method && ep.Path == path {
			return ep, true
		}
	}
	return nil, false
}
