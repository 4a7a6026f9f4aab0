package starlark

import (
	"github.com/neurodesk/yartl/pkg/yartl"
	"go.starlark.net/starlark"
)

// maxExactInt bounds the numbers that convert to Starlark ints.
const maxExactInt = 1 << 53

// ConvertToStarlark converts a template Value to a Starlark value
func ConvertToStarlark(val yartl.Value) starlark.Value {
	if val == nil {
		return starlark.None
	}

	switch v := val.(type) {
	case yartl.StringValue:
		return starlark.String(string(v))
	case yartl.NumberValue:
		f := float64(v)
		if f >= -maxExactInt && f <= maxExactInt && f == float64(int64(f)) {
			return starlark.MakeInt64(int64(f))
		}
		return starlark.Float(f)
	case yartl.BoolValue:
		return starlark.Bool(bool(v))
	case yartl.ArrayValue:
		items := make([]starlark.Value, len(v))
		for i, item := range v {
			items[i] = ConvertToStarlark(item)
		}
		return starlark.NewList(items)
	case yartl.ObjectValue:
		dict := starlark.NewDict(len(v))
		for key, value := range v {
			_ = dict.SetKey(starlark.String(key), ConvertToStarlark(value))
		}
		return dict
	default:
		return starlark.None
	}
}

// ConvertFromStarlark converts a Starlark value to a template Value. The
// second result is false for values with no data form, such as functions.
func ConvertFromStarlark(val starlark.Value) (yartl.Value, bool) {
	if val == nil || val == starlark.None {
		return yartl.NullValue{}, true
	}

	switch v := val.(type) {
	case starlark.String:
		return yartl.StringValue(string(v)), true
	case starlark.Int:
		if i, ok := v.Int64(); ok {
			return yartl.NumberValue(float64(i)), true
		}
		return yartl.NumberValue(float64(v.Float())), true
	case starlark.Float:
		return yartl.NumberValue(float64(v)), true
	case starlark.Bool:
		return yartl.BoolValue(bool(v)), true
	case starlark.Indexable: // list, tuple
		items := make(yartl.ArrayValue, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			item, ok := ConvertFromStarlark(v.Index(i))
			if !ok {
				return nil, false
			}
			items = append(items, item)
		}
		return items, true
	case *starlark.Dict:
		obj := make(yartl.ObjectValue, v.Len())
		for _, kv := range v.Items() {
			item, ok := ConvertFromStarlark(kv[1])
			if !ok {
				return nil, false
			}
			if key, isStr := kv[0].(starlark.String); isStr {
				obj[string(key)] = item
			} else {
				obj[kv[0].String()] = item
			}
		}
		return obj, true
	default:
		return nil, false
	}
}
