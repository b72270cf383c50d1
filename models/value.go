// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Kind identifies which variant a [Value] holds.
type Kind uint8

const (
	// KindInvalid is the zero Kind. A Value of this kind holds nothing and is
	// never stored in a [ConfigMap].
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindDouble
	KindString
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	default:
		return "invalid"
	}
}

// ParseKind maps a kind name ("bool", "int", "double", "string") to a Kind.
// "float" is accepted as an alias of "double".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "bool":
		return KindBool, nil
	case "int":
		return KindInt, nil
	case "double", "float":
		return KindDouble, nil
	case "string":
		return KindString, nil
	default:
		return KindInvalid, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// ErrUnknownKind is returned by [ParseKind] for unsupported kind names.
var ErrUnknownKind = errors.New("unknown value kind")

// ErrUnsupportedValue is returned when a JSON value is not one of the
// supported scalar kinds (null, arrays and objects are rejected).
var ErrUnsupportedValue = errors.New("unsupported config value")

// Value is a single configuration entry. It is a tagged union over the four
// supported kinds and is immutable once constructed.
type Value struct {
	kind Kind
	b    bool
	i    int
	f    float64
	s    string
}

// Bool returns a Value of kind [KindBool].
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns a Value of kind [KindInt].
func Int(i int) Value { return Value{kind: KindInt, i: i} }

// Double returns a Value of kind [KindDouble].
func Double(f float64) Value { return Value{kind: KindDouble, f: f} }

// String returns a Value of kind [KindString].
func String(s string) Value { return Value{kind: KindString, s: s} }

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v holds one of the supported kinds.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// AsBool extracts a bool. ok is false for any other kind.
func (v Value) AsBool() (b bool, ok bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsInt extracts an int. Only [KindInt] values qualify; a double is never
// truncated.
func (v Value) AsInt() (i int, ok bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// AsDouble extracts a float64. Int values are widened because JSON does not
// distinguish integral numbers from floating point ones.
func (v Value) AsDouble() (f float64, ok bool) {
	switch v.kind {
	case KindDouble:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// AsString extracts a string. ok is false for any other kind.
func (v Value) AsString() (s string, ok bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// Fits reports whether v can be extracted as kind k.
func (v Value) Fits(k Kind) bool {
	switch k {
	case KindBool:
		_, ok := v.AsBool()
		return ok
	case KindInt:
		_, ok := v.AsInt()
		return ok
	case KindDouble:
		_, ok := v.AsDouble()
		return ok
	case KindString:
		_, ok := v.AsString()
		return ok
	default:
		return false
	}
}

// Interface returns the held value as a plain Go value (bool, int, float64 or
// string), or nil for an invalid Value.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindDouble:
		return v.f
	case KindString:
		return v.s
	default:
		return nil
	}
}

// String renders the value for logs and CLI output.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.Itoa(v.i)
	case KindDouble:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return v.s
	default:
		return "<invalid>"
	}
}

// MarshalJSON encodes v as its natural JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindInvalid {
		return nil, ErrUnsupportedValue
	}
	return json.Marshal(v.Interface())
}

// UnmarshalJSON decodes a JSON scalar. Integral numbers that fit into int
// become [KindInt]; every other number becomes [KindDouble].
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	parsed, err := valueFromJSON(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func valueFromJSON(raw any) (Value, error) {
	switch t := raw.(type) {
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		if i, err := strconv.ParseInt(t.String(), 10, 64); err == nil && i >= math.MinInt && i <= math.MaxInt {
			return Int(int(i)), nil
		}
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("%w: number %s", ErrUnsupportedValue, t)
		}
		return Double(f), nil
	case float64:
		return Double(t), nil
	case nil:
		return Value{}, fmt.Errorf("%w: null", ErrUnsupportedValue)
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedValue, raw)
	}
}

// Scalar lists the Go types a configuration value can be read as.
type Scalar interface {
	bool | int | float64 | string
}

// KindFor returns the Kind matching the type parameter.
func KindFor[T Scalar]() Kind {
	var zero T
	switch any(zero).(type) {
	case bool:
		return KindBool
	case int:
		return KindInt
	case float64:
		return KindDouble
	case string:
		return KindString
	default:
		return KindInvalid
	}
}

// Extract reads v as T following the same rules as the As* methods.
func Extract[T Scalar](v Value) (T, bool) {
	var out T
	switch p := any(&out).(type) {
	case *bool:
		b, ok := v.AsBool()
		*p = b
		return out, ok
	case *int:
		i, ok := v.AsInt()
		*p = i
		return out, ok
	case *float64:
		f, ok := v.AsDouble()
		*p = f
		return out, ok
	case *string:
		s, ok := v.AsString()
		*p = s
		return out, ok
	}
	return out, false
}

// ValueOf wraps a scalar in a Value of the matching kind.
func ValueOf[T Scalar](x T) Value {
	switch t := any(x).(type) {
	case bool:
		return Bool(t)
	case int:
		return Int(t)
	case float64:
		return Double(t)
	case string:
		return String(t)
	}
	return Value{}
}
