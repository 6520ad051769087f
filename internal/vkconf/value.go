package vkconf

import (
	"encoding/json"
	"strconv"
)

// Kind identifies the type a setting value was coerced to.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "boolean"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a single typed setting value.
type Value struct {
	kind Kind
	i    int64
	f    float64
	b    bool
	s    string
	raw  string
}

// IntValue returns an integer Value.
func IntValue(v int64) Value { return Value{kind: KindInt, i: v, raw: strconv.FormatInt(v, 10)} }

// FloatValue returns a float Value.
func FloatValue(v float64) Value {
	return Value{kind: KindFloat, f: v, raw: strconv.FormatFloat(v, 'g', -1, 64)}
}

// BoolValue returns a boolean Value.
func BoolValue(v bool) Value {
	raw := "False"
	if v {
		raw = "True"
	}
	return Value{kind: KindBool, b: v, raw: raw}
}

// StringValue returns a string Value.
func StringValue(v string) Value { return Value{kind: KindString, s: v, raw: v} }

// Kind reports which type the value holds.
func (v Value) Kind() Kind { return v.kind }

// Int returns the integer value and whether the value is an integer.
func (v Value) Int() (int64, bool) { return v.i, v.kind == KindInt }

// Float returns the value as a float64. Integers are widened.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	}
	return 0, false
}

// Bool returns the boolean value and whether the value is a boolean.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// Raw returns the trimmed text the value was parsed from.
func (v Value) Raw() string { return v.raw }

// String returns the string form of the value. For strings this is the
// unquoted text; other kinds render their raw source text.
func (v Value) String() string {
	if v.kind == KindString {
		return v.s
	}
	return v.raw
}

// Any returns the value as a native Go type (int64, float64, bool or string).
func (v Value) Any() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	default:
		return v.s
	}
}

// MarshalJSON encodes the value as its native JSON type.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}

// MarshalYAML encodes the value as its native YAML type.
func (v Value) MarshalYAML() (interface{}, error) {
	return v.Any(), nil
}
