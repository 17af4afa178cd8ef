package record

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrTypeMismatch is returned when a value is unwrapped as the wrong kind.
var ErrTypeMismatch = errors.New("value type mismatch")

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindAbsent marks a field that is not present on a record.
	KindAbsent Kind = iota
	// KindInt represents a machine-word integer value.
	KindInt
	// KindInt64 represents a 64-bit integer value.
	KindInt64
	// KindText represents a text value.
	KindText
	// KindBool represents a boolean value.
	KindBool
)

// String returns the kind name for error messages and logs.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindInt:
		return "int"
	case KindInt64:
		return "int64"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	default:
		return "invalid"
	}
}

// Value is a small tagged value, the only thing a record field can hold.
//
// The representation is flat on purpose: no reflection, no interface boxing,
// and filtering/sorting never allocate. The JSON form is used by the HTTP
// surface; field tags are short to keep payloads small.
type Value struct {
	Kind Kind   `json:"k"`
	I    int    `json:"i,omitempty"`
	I64  int64  `json:"i64,omitempty"`
	S    string `json:"s,omitempty"`
	B    bool   `json:"b,omitempty"`
}

// Absent is the zero Value, reported for fields a record does not have.
var Absent = Value{Kind: KindAbsent}

// Int wraps a machine-word integer.
func Int(v int) Value { return Value{Kind: KindInt, I: v} }

// Int64 wraps a 64-bit integer.
func Int64(v int64) Value { return Value{Kind: KindInt64, I64: v} }

// Text wraps a text value.
func Text(v string) Value { return Value{Kind: KindText, S: v} }

// Bool wraps a boolean value.
func Bool(v bool) Value { return Value{Kind: KindBool, B: v} }

// AsInt unwraps a KindInt value.
// Returns ErrTypeMismatch for any other kind; there is no implicit conversion.
func (v Value) AsInt() (int, error) {
	if v.Kind != KindInt {
		return 0, fmt.Errorf("%w: have %s, want int", ErrTypeMismatch, v.Kind)
	}
	return v.I, nil
}

// AsInt64 unwraps a KindInt64 value.
func (v Value) AsInt64() (int64, error) {
	if v.Kind != KindInt64 {
		return 0, fmt.Errorf("%w: have %s, want int64", ErrTypeMismatch, v.Kind)
	}
	return v.I64, nil
}

// AsText unwraps a KindText value.
func (v Value) AsText() (string, error) {
	if v.Kind != KindText {
		return "", fmt.Errorf("%w: have %s, want text", ErrTypeMismatch, v.Kind)
	}
	return v.S, nil
}

// AsBool unwraps a KindBool value.
func (v Value) AsBool() (bool, error) {
	if v.Kind != KindBool {
		return false, fmt.Errorf("%w: have %s, want bool", ErrTypeMismatch, v.Kind)
	}
	return v.B, nil
}

// IsAbsent reports whether the value marks a missing field.
func (v Value) IsAbsent() bool { return v.Kind == KindAbsent }

// numeric reports whether the value holds either integer kind.
func (v Value) numeric() bool { return v.Kind == KindInt || v.Kind == KindInt64 }

// widen returns the value as an int64 regardless of integer width.
// Only valid when numeric() is true.
func (v Value) widen() int64 {
	if v.Kind == KindInt {
		return int64(v.I)
	}
	return v.I64
}

// kindRank orders kinds for cross-kind comparisons: absent sorts first, then
// booleans, then numbers (both widths together), then text.
func (v Value) kindRank() int {
	switch v.Kind {
	case KindAbsent:
		return 0
	case KindBool:
		return 1
	case KindInt, KindInt64:
		return 2
	case KindText:
		return 3
	default:
		return 4
	}
}

// Compare defines a total order over values: by kind rank first, then by the
// natural order within the kind. Int and Int64 compare as numbers, so a field
// that mixes widths still sorts correctly.
func (v Value) Compare(o Value) int {
	if r := v.kindRank() - o.kindRank(); r != 0 {
		return r
	}
	switch {
	case v.numeric():
		a, b := v.widen(), o.widen()
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	case v.Kind == KindText:
		return strings.Compare(v.S, o.S)
	case v.Kind == KindBool:
		switch {
		case !v.B && o.B:
			return -1
		case v.B && !o.B:
			return 1
		}
		return 0
	default:
		return 0
	}
}

// Equal reports whether two values compare equal under Compare.
func (v Value) Equal(o Value) bool { return v.Compare(o) == 0 }

// String renders the value for status output and test failure messages.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.Itoa(v.I)
	case KindInt64:
		return strconv.FormatInt(v.I64, 10)
	case KindText:
		return v.S
	case KindBool:
		return strconv.FormatBool(v.B)
	default:
		return "<absent>"
	}
}
