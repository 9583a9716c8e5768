package filter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasfilter/jsonvalue"
)

// mustEndpoints extracts endpoints, failing the test on error.
func mustEndpoints(t *testing.T, doc *jsonvalue.Object) []*Endpoint {
	t.Helper()
	eps, err := ExtractEndpoints(doc)
	require.NoError(t, err)
	return eps
}

// selectKeys marks the endpoints with the given "METHOD /path" keys as
// selected and returns them.
func selectKeys(t *testing.T, eps []*Endpoint, keys ...string) []*Endpoint {
	t.Helper()
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	for _, ep := range eps {
		ep.Selected = want[ep.Key()]
		delete(want, ep.Key())
	}
	require.Empty(t, want, "unknown endpoint keys")
	return SelectedEndpoints(eps)
}

func endpointKeys(eps []*Endpoint) []string {
	keys := make([]string, len(eps))
	for i, ep := range eps {
		keys[i] = ep.Key()
	}
	return keys
}

// filterDoc runs collect and reconstruct for the selected endpoints.
func filterDoc(t *testing.T, doc *jsonvalue.Object, eps []*Endpoint, opts ...Option) (*jsonvalue.Object, *Closure) {
	t.Helper()
	closure, err := CollectReferences(doc, SelectedEndpoints(eps), opts...)
	require.NoError(t, err)
	out, err := Reconstruct(doc, eps, closure, opts...)
	require.NoError(t, err)
	return out, closure
}
