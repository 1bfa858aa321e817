package types

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/quicken/pkg/errors"
)

// Kind enumerates what a Value holds
type Kind int

const (
	KindAbsent Kind = iota
	KindString
	KindNumber
	KindBool
	KindMap
	KindList
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindMap:
		return "mapping"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is a step argument payload: a scalar, a mapping, a list, or nothing.
// Numbers keep their source text so they render exactly as written.
// The zero Value is absent.
type Value struct {
	kind  Kind
	text  string
	b     bool
	keys  []string
	items map[string]Value
	list  []Value
}

// Entry is a single key/value pair of a mapping Value
type Entry struct {
	Key   string
	Value Value
}

// Absent returns the empty Value
func Absent() Value { return Value{} }

// String returns a string Value
func String(s string) Value { return Value{kind: KindString, text: s} }

// Number returns a number Value from its textual form
func Number(text string) Value { return Value{kind: KindNumber, text: text} }

// Bool returns a bool Value
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// List returns a list Value
func List(items ...Value) Value {
	return Value{kind: KindList, list: append([]Value(nil), items...)}
}

// Map returns a mapping Value preserving the order of entries. A repeated key
// keeps its last value at the position of its first occurrence.
func Map(entries ...Entry) Value {
	v := Value{kind: KindMap, items: make(map[string]Value, len(entries))}
	for _, e := range entries {
		if _, seen := v.items[e.Key]; !seen {
			v.keys = append(v.keys, e.Key)
		}
		v.items[e.Key] = e.Value
	}
	return v
}

// FromInterface converts plain Go data into a Value. Maps are ordered by key
// since Go maps carry no order.
func FromInterface(in interface{}) (Value, error) {
	switch t := in.(type) {
	case nil:
		return Absent(), nil
	case Value:
		return t, nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case int:
		return Number(strconv.Itoa(t)), nil
	case int64:
		return Number(strconv.FormatInt(t, 10)), nil
	case float64:
		return Number(strconv.FormatFloat(t, 'f', -1, 64)), nil
	case []interface{}:
		items := make([]Value, 0, len(t))
		for i, item := range t {
			v, err := FromInterface(item)
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			items = append(items, v)
		}
		return List(items...), nil
	case []string:
		items := make([]Value, 0, len(t))
		for _, s := range t {
			items = append(items, String(s))
		}
		return List(items...), nil
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]Entry, 0, len(keys))
		for _, k := range keys {
			v, err := FromInterface(t[k])
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", k, err)
			}
			entries = append(entries, Entry{Key: k, Value: v})
		}
		return Map(entries...), nil
	case map[string]string:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]Entry, 0, len(keys))
		for _, k := range keys {
			entries = append(entries, Entry{Key: k, Value: String(t[k])})
		}
		return Map(entries...), nil
	default:
		return Value{}, errors.Newf(errors.ErrInvalidArguments, "unsupported argument type %T", in)
	}
}

// Kind returns what the value holds
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether the value is empty
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// AsString returns the string held by a string Value
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.text, true
}

// AsBool returns the bool held by a bool Value
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Scalar returns the text of a string, number or bool Value
func (v Value) Scalar() (string, bool) {
	switch v.kind {
	case KindString, KindNumber:
		return v.text, true
	case KindBool:
		return strconv.FormatBool(v.b), true
	default:
		return "", false
	}
}

// Keys returns mapping keys in source order
func (v Value) Keys() []string {
	return append([]string(nil), v.keys...)
}

// Get returns the value stored under key in a mapping
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	item, ok := v.items[key]
	return item, ok
}

// Items returns the elements of a list
func (v Value) Items() []Value {
	return append([]Value(nil), v.list...)
}

// Len returns the number of entries of a mapping or list
func (v Value) Len() int {
	switch v.kind {
	case KindMap:
		return len(v.keys)
	case KindList:
		return len(v.list)
	default:
		return 0
	}
}

// Without returns a copy of a mapping with the given keys removed. Non-mapping
// values are returned unchanged.
func (v Value) Without(keys ...string) Value {
	if v.kind != KindMap {
		return v
	}
	drop := make(map[string]bool, len(keys))
	for _, k := range keys {
		drop[k] = true
	}
	entries := make([]Entry, 0, len(v.keys))
	for _, k := range v.keys {
		if drop[k] {
			continue
		}
		entries = append(entries, Entry{Key: k, Value: v.items[k]})
	}
	return Map(entries...)
}

// Interface converts the value to plain Go data: nil, string, int64, float64,
// bool, map[string]interface{} or []interface{}.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindString:
		return v.text
	case KindNumber:
		if i, err := strconv.ParseInt(v.text, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(v.text, 64); err == nil {
			return f
		}
		return v.text
	case KindBool:
		return v.b
	case KindMap:
		out := make(map[string]interface{}, len(v.keys))
		for _, k := range v.keys {
			out[k] = v.items[k].Interface()
		}
		return out
	case KindList:
		out := make([]interface{}, 0, len(v.list))
		for _, item := range v.list {
			out = append(out, item.Interface())
		}
		return out
	default:
		return nil
	}
}

// String renders the value for logs and error messages
func (v Value) String() string {
	switch v.kind {
	case KindAbsent:
		return "<absent>"
	case KindString:
		return strconv.Quote(v.text)
	case KindNumber:
		return v.text
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindMap:
		parts := make([]string, 0, len(v.keys))
		for _, k := range v.keys {
			parts = append(parts, k+": "+v.items[k].String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindList:
		parts := make([]string, 0, len(v.list))
		for _, item := range v.list {
			parts = append(parts, item.String())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "<unknown>"
	}
}
