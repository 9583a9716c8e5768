package jsonvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, src string) Value {
	t.Helper()
	v, err := DecodeJSON([]byte(src))
	require.NoError(t, err)
	return v
}

func TestClone_Independent(t *testing.T) {
	orig := mustDecode(t, `{"a":{"b":[1,{"c":"d"}]},"e":true}`)
	cp := Clone(orig)
	require.True(t, Equal(orig, cp))

	cpObj, _ := AsObject(cp)
	a, _ := cpObj.GetObject("a")
	arr, _ := a.GetArray("b")
	inner, _ := AsObject(arr[1])
	inner.Set("c", String("changed"))
	a.Set("new", Null{})

	origObj, _ := AsObject(orig)
	oa, _ := origObj.GetObject("a")
	assert.False(t, oa.Has("new"))
	oarr, _ := oa.GetArray("b")
	oinner, _ := AsObject(oarr[1])
	c, _ := oinner.GetString("c")
	assert.Equal(t, "d", c)
}

func TestCloneObject_Nil(t *testing.T) {
	cp := CloneObject(nil)
	require.NotNil(t, cp)
	assert.Equal(t, 0, cp.Len())
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"key order ignored", `{"a":1,"b":2}`, `{"b":2,"a":1}`, true},
		{"array order matters", `[1,2]`, `[2,1]`, false},
		{"number forms", `1.0`, `1`, true},
		{"number exponent", `1e2`, `100`, true},
		{"different numbers", `1`, `2`, false},
		{"missing key", `{"a":1}`, `{"a":1,"b":2}`, false},
		{"different kinds", `"1"`, `1`, false},
		{"nested", `{"a":[{"b":null}]}`, `{"a":[{"b":null}]}`, true},
		{"nested differ", `{"a":[{"b":null}]}`, `{"a":[{"b":false}]}`, false},
		{"array length", `[1]`, `[1,1]`, false},
		{"strings", `"x"`, `"x"`, true},
		{"bools", `true`, `false`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(mustDecode(t, tt.a), mustDecode(t, tt.b)))
		})
	}

	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(nil, Null{}))
}
