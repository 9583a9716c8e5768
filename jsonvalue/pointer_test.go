package jsonvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	doc := mustDecode(t, `{
		"components": {
			"schemas": {
				"User": {"type": "object"},
				"a/b": {"type": "string"},
				"m~n": {"type": "integer"},
				"with space": {"type": "boolean"}
			}
		},
		"list": [10, 20, 30]
	}`)

	tests := []struct {
		pointer string
		want    string // JSON of the expected value, empty when not found
	}{
		{"#/components/schemas/User", `{"type":"object"}`},
		{"/components/schemas/User/type", `"object"`},
		{"#/components/schemas/a~1b", `{"type":"string"}`},
		{"#/components/schemas/m~0n", `{"type":"integer"}`},
		{"#/components/schemas/with%20space", `{"type":"boolean"}`},
		{"#/list/1", `20`},
		{"#/list/01", ""},
		{"#/list/3", ""},
		{"#/list/-1", ""},
		{"#/components/schemas/Missing", ""},
		{"#/components/schemas/User/type/deeper", ""},
		{"components/schemas", ""},
		{"#/components/schemas/bad~2", ""},
	}

	for _, tt := range tests {
		t.Run(tt.pointer, func(t *testing.T) {
			got, ok := Lookup(doc, tt.pointer)
			if tt.want == "" {
				assert.False(t, ok)
				return
			}
			if assert.True(t, ok) {
				assert.True(t, Equal(mustDecode(t, tt.want), got))
			}
		})
	}

	root, ok := Lookup(doc, "#")
	assert.True(t, ok)
	assert.True(t, Equal(doc, root))
}
