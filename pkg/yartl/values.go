package yartl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
)

// Kind is the dynamic type of a context Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "unknown"
}

// Value is a node of the context tree a template is rendered against.
type Value interface {
	Kind() Kind
}

// NullValue is JSON null.
type NullValue struct{}

// BoolValue wraps a boolean.
type BoolValue bool

// NumberValue wraps a double-precision number.
type NumberValue float64

// StringValue wraps a string.
type StringValue string

// ArrayValue is an ordered sequence of values.
type ArrayValue []Value

// ObjectValue maps field names to values.
type ObjectValue map[string]Value

func (NullValue) Kind() Kind   { return KindNull }
func (BoolValue) Kind() Kind   { return KindBool }
func (NumberValue) Kind() Kind { return KindNumber }
func (StringValue) Kind() Kind { return KindString }
func (ArrayValue) Kind() Kind  { return KindArray }
func (ObjectValue) Kind() Kind { return KindObject }

// AsObject returns v as an object if it is one.
func AsObject(v Value) (ObjectValue, bool) {
	o, ok := v.(ObjectValue)
	return o, ok
}

// AsArray returns v as an array if it is one.
func AsArray(v Value) (ArrayValue, bool) {
	a, ok := v.(ArrayValue)
	return a, ok
}

// AsBool returns v as a boolean if it is one.
func AsBool(v Value) (bool, bool) {
	b, ok := v.(BoolValue)
	return bool(b), ok
}

// Text converts a scalar to its output form. Arrays and objects have none.
func Text(v Value) (string, bool) {
	switch t := v.(type) {
	case nil, NullValue:
		return "null", true
	case BoolValue:
		if t {
			return "true", true
		}
		return "false", true
	case NumberValue:
		return FormatNumber(float64(t)), true
	case StringValue:
		return string(t), true
	}
	return "", false
}

// FormatNumber prints f with the fewest digits that read back as f, never in
// exponent form.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Equal reports deep structural equality. Values of different kinds are
// never equal.
func Equal(a, b Value) bool {
	if a == nil {
		a = NullValue{}
	}
	if b == nil {
		b = NullValue{}
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case ArrayValue:
		y := b.(ArrayValue)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case ObjectValue:
		y := b.(ObjectValue)
		if len(x) != len(y) {
			return false
		}
		for k, xv := range x {
			yv, ok := y[k]
			if !ok || !Equal(xv, yv) {
				return false
			}
		}
		return true
	}
	return a == b
}

// ParseContext decodes a JSON document into a Value.
func ParseContext(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, &ContextError{Err: err}
	}
	if dec.More() {
		return nil, &ContextError{Err: fmt.Errorf("unexpected data after top-level value")}
	}
	return FromGo(raw), nil
}

// FromGo converts a decoded JSON or YAML tree, or any Go value built from
// maps, slices and scalars, into a Value.
func FromGo(v any) Value {
	if v == nil {
		return NullValue{}
	}
	switch t := v.(type) {
	case Value:
		return t
	case string:
		return StringValue(t)
	case bool:
		return BoolValue(t)
	case float64:
		return NumberValue(t)
	case float32:
		return NumberValue(float64(t))
	case int:
		return NumberValue(float64(t))
	case int32:
		return NumberValue(float64(t))
	case int64:
		return NumberValue(float64(t))
	case uint64:
		return NumberValue(float64(t))
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return StringValue(t.String())
		}
		return NumberValue(f)
	case []byte:
		return StringValue(string(t))
	case []any:
		out := make(ArrayValue, len(t))
		for i, it := range t {
			out[i] = FromGo(it)
		}
		return out
	case map[string]any:
		out := make(ObjectValue, len(t))
		for k, it := range t {
			out[k] = FromGo(it)
		}
		return out
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make(ArrayValue, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = FromGo(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		out := make(ObjectValue, rv.Len())
		it := rv.MapRange()
		for it.Next() {
			out[fmt.Sprint(it.Key().Interface())] = FromGo(it.Value().Interface())
		}
		return out
	case reflect.Int, reflect.Int8, reflect.Int16:
		return NumberValue(float64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return NumberValue(float64(rv.Uint()))
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return NullValue{}
		}
		return FromGo(rv.Elem().Interface())
	}
	return StringValue(fmt.Sprintf("%v", v))
}

// ToGo converts a Value back to plain Go maps, slices and scalars.
func ToGo(v Value) any {
	switch t := v.(type) {
	case BoolValue:
		return bool(t)
	case NumberValue:
		return float64(t)
	case StringValue:
		return string(t)
	case ArrayValue:
		out := make([]any, len(t))
		for i, it := range t {
			out[i] = ToGo(it)
		}
		return out
	case ObjectValue:
		out := make(map[string]any, len(t))
		for k, it := range t {
			out[k] = ToGo(it)
		}
		return out
	}
	return nil
}
