package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/erraggy/oasfilter/oaserrors"
)

// DecodeJSON parses a single JSON value from data. Trailing non-whitespace
// after the value is an error. When an object repeats a key, the key keeps
// its first position and the last value wins.
func DecodeJSON(data []byte, opts ...DecodeOption) (Value, error) {
	cfg := applyDecodeOptions(opts)

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &oaserrors.ParseError{Format: "json", Message: "empty document"}
	}

	d := &jsonDecoder{data: data, dec: json.NewDecoder(bytes.NewReader(data)), cfg: cfg}
	d.dec.UseNumber()

	tok, err := d.dec.Token()
	if err != nil {
		return nil, d.wrap(err)
	}
	v, err := d.value(tok, 1)
	if err != nil {
		return nil, err
	}

	if _, err := d.dec.Token(); !errors.Is(err, io.EOF) {
		off := d.dec.InputOffset()
		if err != nil {
			return nil, d.wrap(err)
		}
		line, col := position(data, off)
		return nil, &oaserrors.ParseError{
			Format:  "json",
			Line:    line,
			Column:  col,
			Message: "unexpected data after top-level value",
		}
	}
	return v, nil
}

type jsonDecoder struct {
	data []byte
	dec  *json.Decoder
	cfg  decodeConfig
}

func (d *jsonDecoder) value(tok json.Token, depth int) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return Number(t), nil
	case json.Delim:
		if depth > d.cfg.maxDepth {
			return nil, &oaserrors.ResourceLimitError{
				ResourceType: "nesting_depth",
				Limit:        int64(d.cfg.maxDepth),
				Actual:       int64(depth),
				Message:      "document nesting exceeds the configured limit",
			}
		}
		switch t {
		case '{':
			return d.object(depth)
		case '[':
			return d.array(depth)
		}
	}
	return nil, d.errorAt(d.dec.InputOffset(), fmt.Sprintf("unexpected token %v", tok))
}

func (d *jsonDecoder) object(depth int) (Value, error) {
	obj := NewObject(4)
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, d.wrap(err)
		}
		if delim, ok := tok.(json.Delim); ok && delim == '}' {
			return obj, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, d.errorAt(d.dec.InputOffset(), "object key must be a string")
		}
		tok, err = d.dec.Token()
		if err != nil {
			return nil, d.wrap(err)
		}
		v, err := d.value(tok, depth+1)
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
	}
}

func (d *jsonDecoder) array(depth int) (Value, error) {
	arr := Array{}
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, d.wrap(err)
		}
		if delim, ok := tok.(json.Delim); ok && delim == ']' {
			return arr, nil
		}
		v, err := d.value(tok, depth+1)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

// wrap converts a decoder error into a ParseError carrying a position.
// SyntaxError.Offset only counts bytes inside values read by the decoder,
// so the position comes from InputOffset, which points at the start of the
// offending token.
func (d *jsonDecoder) wrap(err error) error {
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &syntaxErr):
		line, col := position(d.data, d.dec.InputOffset())
		return &oaserrors.ParseError{Format: "json", Line: line, Column: col, Message: syntaxErr.Error()}
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		line, col := position(d.data, int64(len(d.data)))
		return &oaserrors.ParseError{Format: "json", Line: line, Column: col, Message: "unexpected end of input"}
	default:
		return &oaserrors.ParseError{Format: "json", Message: "invalid JSON", Cause: err}
	}
}

func (d *jsonDecoder) errorAt(offset int64, msg string) error {
	line, col := position(d.data, offset)
	return &oaserrors.ParseError{Format: "json", Line: line, Column: col, Message: msg}
}

// position maps a byte offset to a 1-based line and column.
func position(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	if offset < 0 {
		offset = 0
	}
	prefix := data[:offset]
	line = bytes.Count(prefix, []byte{'\n'}) + 1
	col = int(offset) - (bytes.LastIndexByte(prefix, '\n') + 1) + 1
	return line, col
}
