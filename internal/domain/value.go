package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ValueKind identifies the underlying type of a Value
type ValueKind int

const (
	KindAbsent ValueKind = iota
	KindString
	KindNumber
	KindBool
)

// Value is a tagged scalar cell from an imported row: a string, number,
// boolean, or nothing at all. Imported files carry arbitrary column types,
// so every cell is kept in its raw shape and converted on demand.
type Value struct {
	kind ValueKind
	str  string
	num  float64
	b    bool
}

// Absent returns the absent value
func Absent() Value {
	return Value{kind: KindAbsent}
}

// StringValue wraps a string cell
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// NumberValue wraps a numeric cell
func NumberValue(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// BoolValue wraps a boolean cell
func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// ValueOf converts a decoded JSON/YAML scalar into a Value.
// Unsupported types (maps, slices) collapse to their string rendering.
func ValueOf(v any) Value {
	switch val := v.(type) {
	case nil:
		return Absent()
	case Value:
		return val
	case string:
		return StringValue(val)
	case bool:
		return BoolValue(val)
	case float64:
		return NumberValue(val)
	case float32:
		return NumberValue(float64(val))
	case int:
		return NumberValue(float64(val))
	case int64:
		return NumberValue(float64(val))
	case uint64:
		return NumberValue(float64(val))
	default:
		return StringValue(fmt.Sprintf("%v", val))
	}
}

// Kind returns the value's kind
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsAbsent returns true for the absent value
func (v Value) IsAbsent() bool {
	return v.kind == KindAbsent
}

// Text returns the trimmed string form of the value and whether the result
// is usable. Absent values and values that trim to the empty string are not.
func (v Value) Text() (string, bool) {
	var s string
	switch v.kind {
	case KindAbsent:
		return "", false
	case KindString:
		s = v.str
	case KindNumber:
		s = strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		s = strconv.FormatBool(v.b)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}

// IsBlank reports whether the cell carries no usable content
func (v Value) IsBlank() bool {
	_, ok := v.Text()
	return !ok
}

// MarshalJSON renders the value as its raw scalar (or null when absent)
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON restores a value from its raw scalar form
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = ValueOf(raw)
	return nil
}
