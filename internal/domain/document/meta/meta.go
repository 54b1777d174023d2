// Package meta models document metadata as a closed union of scalar kinds.
// The engine never interprets metadata values; it only stores, returns, and
// compares them.
package meta

import (
	"encoding/json"
	"fmt"
)

// Kind discriminates the scalar type held by a Value.
type Kind int

// Scalar kinds.
const (
	KindString Kind = iota
	KindNumber
	KindBool
)

// Value is a single metadata scalar.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
}

// String creates a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number creates a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Bool creates a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// FromAny converts a decoded JSON scalar into a Value.
// Non-scalar values (objects, arrays, null) are rejected at the boundary.
func FromAny(v any) (Value, error) {
	switch t := v.(type) {
	case string:
		return String(t), nil
	case float64:
		return Number(t), nil
	case int:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case bool:
		return Bool(t), nil
	default:
		return Value{}, fmt.Errorf("metadata value must be a string, number, or boolean, got %T", v)
	}
}

// MapFromAny converts a decoded JSON object into a metadata map,
// rejecting non-scalar values.
func MapFromAny(m map[string]any) (map[string]Value, error) {
	if m == nil {
		return nil, nil
	}
	out := make(map[string]Value, len(m))
	for k, v := range m {
		val, err := FromAny(v)
		if err != nil {
			return nil, fmt.Errorf("metadata key %q: %w", k, err)
		}
		out[k] = val
	}
	return out, nil
}

// Kind returns the scalar kind.
func (v Value) Kind() Kind { return v.kind }

// Str returns the string payload (zero unless KindString).
func (v Value) Str() string { return v.str }

// Num returns the numeric payload (zero unless KindNumber).
func (v Value) Num() float64 { return v.num }

// B returns the boolean payload (false unless KindBool).
func (v Value) B() bool { return v.b }

// Equal compares kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	}
	return false
}

// Any returns the payload as an untyped scalar for serialization.
func (v Value) Any() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	}
	return nil
}

// MarshalJSON writes the bare scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(v.Any())
	if err != nil {
		return nil, fmt.Errorf("marshal metadata value: %w", err)
	}
	return data, nil
}

// UnmarshalJSON reads a bare scalar, rejecting non-scalar JSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal metadata value: %w", err)
	}
	parsed, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
