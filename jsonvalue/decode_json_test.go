package jsonvalue

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasfilter/oaserrors"
)

func TestDecodeJSON_PreservesKeyOrder(t *testing.T) {
	v, err := DecodeJSON([]byte(`{"z": 1, "a": {"y": true, "b": null}, "m": [3, 2, 1]}`))
	require.NoError(t, err)

	obj, ok := AsObject(v)
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a", "m"}, obj.Keys())

	inner, ok := obj.GetObject("a")
	require.True(t, ok)
	assert.Equal(t, []string{"y", "b"}, inner.Keys())
}

func TestDecodeJSON_Values(t *testing.T) {
	v, err := DecodeJSON([]byte(`{
  "s": "héllo <b>",
  "big": 12345678901234567890123,
  "dec": 1.50,
  "exp": -2e10,
  "t": true,
  "f": false,
  "n": null,
  "arr": [],
  "obj": {}
}`))
	require.NoError(t, err)

	want := map[string]any{
		"s":   "héllo <b>",
		"big": json.Number("12345678901234567890123"),
		"dec": json.Number("1.50"),
		"exp": json.Number("-2e10"),
		"t":   true,
		"f":   false,
		"n":   nil,
		"arr": []any{},
		"obj": map[string]any{},
	}
	got := ToAny(v)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodeJSON() mismatch (-want +got):\n%s", diff)
	}

	obj, _ := AsObject(v)
	big, _ := obj.Get("big")
	assert.Equal(t, Number("12345678901234567890123"), big)
}

func TestDecodeJSON_DuplicateKeys(t *testing.T) {
	v, err := DecodeJSON([]byte(`{"a": 1, "b": 2, "a": 3}`))
	require.NoError(t, err)

	obj, _ := AsObject(v)
	assert.Equal(t, []string{"a", "b"}, obj.Keys())
	a, _ := obj.Get("a")
	assert.Equal(t, Number("3"), a)
}

func TestDecodeJSON_TopLevelScalars(t *testing.T) {
	v, err := DecodeJSON([]byte(` "just a string" `))
	require.NoError(t, err)
	assert.Equal(t, String("just a string"), v)

	v, err = DecodeJSON([]byte(`[1, "two"]`))
	require.NoError(t, err)
	assert.Equal(t, Array{Number("1"), String("two")}, v)
}

func TestDecodeJSON_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
		wantMsg  string
	}{
		{"empty", "", 0, "empty document"},
		{"whitespace only", "  \n\t ", 0, "empty document"},
		{"missing value", "{\n  \"a\": \n}", 3, "invalid character"},
		{"unterminated", "{\"a\": [1, 2", 1, "unexpected end of input"},
		{"trailing comma", "{\n\"a\": 1,\n}", 3, "invalid character"},
		{"trailing data", "{}\n{}", 2, "unexpected data"},
		{"trailing garbage", "{} x", 1, "invalid character"},
		{"bare word", "openapi: 3.0.0", 1, "invalid character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, oaserrors.ErrParse), "expected ErrParse, got %v", err)

			var perr *oaserrors.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, "json", perr.Format)
			assert.Equal(t, tt.wantLine, perr.Line)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestDecodeJSON_ErrorColumn(t *testing.T) {
	_, err := DecodeJSON([]byte("{\n  \"a\": tru\n}"))
	var perr *oaserrors.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
	assert.Greater(t, perr.Column, 1)
}

func TestDecodeJSON_MaxDepth(t *testing.T) {
	deep := strings.Repeat("[", 20) + strings.Repeat("]", 20)

	_, err := DecodeJSON([]byte(deep), WithMaxDepth(20))
	require.NoError(t, err)

	_, err = DecodeJSON([]byte(deep), WithMaxDepth(19))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrResourceLimit))

	var rerr *oaserrors.ResourceLimitError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, int64(19), rerr.Limit)
	assert.Equal(t, "nesting_depth", rerr.ResourceType)
}

func TestDecodeJSON_DefaultMaxDepth(t *testing.T) {
	n := DefaultMaxDepth + 1
	deep := strings.Repeat(`{"a":`, n) + "1" + strings.Repeat("}", n)
	_, err := DecodeJSON([]byte(deep))
	assert.True(t, errors.Is(err, oaserrors.ErrResourceLimit))
}

func TestPosition(t *testing.T) {
	data := []byte("ab\ncd\n\nef")
	tests := []struct {
		offset            int64
		wantLine, wantCol int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{4, 2, 2},
		{7, 4, 1},
		{100, 4, 3},
		{-5, 1, 1},
	}
	for _, tt := range tests {
		line, col := position(data, tt.offset)
		assert.Equal(t, tt.wantLine, line, "offset %d", tt.offset)
		assert.Equal(t, tt.wantCol, col, "offset %d", tt.offset)
	}
}
