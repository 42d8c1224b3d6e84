package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ValueKind discriminates the tagged variants of Value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindArray
	KindObject
)

// Value is the tagged-variant runtime value used for literals. On the wire
// it is untagged: JSON primitives map to the obvious variant, arrays and
// objects map to Array/Object, and Date/Time/Timestamp values are plain
// ISO-8601 strings (the surrounding DataType, not the Value itself, marks
// them as temporal).
type Value struct {
	Kind  ValueKind
	Bool  bool
	Int   int64
	Float float64
	Str   string
	Bytes []byte
	Array []Value
	// Object is a plain map and keeps no insertion order; its JSON form
	// sorts keys (stdlib map behavior), which keeps fingerprints stable.
	Object map[string]Value
}

func Null() Value              { return Value{Kind: KindNull} }
func BoolValue(b bool) Value   { return Value{Kind: KindBool, Bool: b} }
func IntValue(i int64) Value   { return Value{Kind: KindInt, Int: i} }
func FloatValue(f float64) Value { return Value{Kind: KindFloat, Float: f} }
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }
func BytesValue(b []byte) Value  { return Value{Kind: KindBytes, Bytes: b} }
func ArrayValue(vs []Value) Value { return Value{Kind: KindArray, Array: vs} }
func ObjectValue(m map[string]Value) Value { return Value{Kind: KindObject, Object: m} }

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.Bool)
	case KindInt:
		return json.Marshal(v.Int)
	case KindFloat:
		return json.Marshal(v.Float)
	case KindString:
		return json.Marshal(v.Str)
	case KindBytes:
		return json.Marshal(v.Bytes)
	case KindArray:
		return json.Marshal(v.Array)
	case KindObject:
		return json.Marshal(v.Object)
	default:
		return nil, fmt.Errorf("ir: unknown value kind %d", v.Kind)
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	val, err := valueFromAny(raw)
	if err != nil {
		return err
	}
	*v = val
	return nil
}

func valueFromAny(raw any) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return BoolValue(x), nil
	case json.Number:
		s := x.String()
		if strings.ContainsAny(s, ".eE") {
			f, err := x.Float64()
			if err != nil {
				return Value{}, err
			}
			return FloatValue(f), nil
		}
		i, err := x.Int64()
		if err != nil {
			f, ferr := x.Float64()
			if ferr != nil {
				return Value{}, err
			}
			return FloatValue(f), nil
		}
		return IntValue(i), nil
	case string:
		return StringValue(x), nil
	case []any:
		out := make([]Value, len(x))
		for i, item := range x {
			v, err := valueFromAny(item)
			if err != nil {
				return Value{}, err
			}
			out[i] = v
		}
		return ArrayValue(out), nil
	case map[string]any:
		out := make(map[string]Value, len(x))
		for k, item := range x {
			v, err := valueFromAny(item)
			if err != nil {
				return Value{}, err
			}
			out[k] = v
		}
		return ObjectValue(out), nil
	default:
		return Value{}, fmt.Errorf("ir: unsupported JSON value of type %T", raw)
	}
}

// Equal reports structural equality, used by tests that compare values
// without depending on fingerprint internals.
func (v Value) Equal(other Value) bool {
	return string(mustJSON(v)) == string(mustJSON(other))
}

func mustJSON(v Value) []byte {
	b, err := v.MarshalJSON()
	if err != nil {
		return nil
	}
	return b
}

// sortedKeys returns the keys of v's Object in sorted order, for
// deterministic iteration outside of JSON serialization.
func (v Value) sortedKeys() []string {
	keys := make([]string, 0, len(v.Object))
	for k := range v.Object {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
