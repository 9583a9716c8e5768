package jsonvalue

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
)

// FromAny converts a generic Go value, as produced by encoding/json or a
// YAML decoder into any, to a Value. Map keys are sorted since Go maps carry
// no order.
func FromAny(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case json.Number:
		return Number(val.String()), nil
	case int:
		return Number(strconv.Itoa(val)), nil
	case int64:
		return Number(strconv.FormatInt(val, 10)), nil
	case uint64:
		return Number(strconv.FormatUint(val, 10)), nil
	case float64:
		return floatNumber(val)
	case []any:
		out := make(Array, 0, len(val))
		for i, item := range val {
			child, err := FromAny(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out = append(out, child)
		}
		return out, nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		out := NewObject(len(keys))
		for _, k := range keys {
			child, err := FromAny(val[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			out.Set(k, child)
		}
		return out, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(strconv.FormatInt(rv.Int(), 10)), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Number(strconv.FormatUint(rv.Uint(), 10)), nil
	case reflect.Float32:
		return floatNumber(rv.Float())
	}
	return nil, fmt.Errorf("jsonvalue: unsupported type %T", v)
}

func floatNumber(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("jsonvalue: %v is not representable in JSON", f)
	}
	return Number(strconv.FormatFloat(f, 'g', -1, 64)), nil
}

// ToAny converts v to generic Go values: map[string]any, []any, string,
// bool, nil, and json.Number for numbers.
func ToAny(v Value) any {
	switch val := v.(type) {
	case *Object:
		out := make(map[string]any, val.Len())
		for k, child := range val.All() {
			out[k] = ToAny(child)
		}
		return out
	case Array:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = ToAny(child)
		}
		return out
	case String:
		return string(val)
	case Number:
		return json.Number(val)
	case Bool:
		return bool(val)
	default:
		return nil
	}
}
