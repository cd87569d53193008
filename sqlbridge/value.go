package sqlbridge

import (
	"fmt"
	"math"
)

// Kind identifies which of the five store types a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindInteger
	KindReal
	KindText
	KindBlob
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindText:
		return "text"
	case KindBlob:
		return "blob"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is a native relational value. The zero Value is Null. Values are
// built only through the constructors below, so a Value always holds exactly
// one of the five kinds.
type Value struct {
	kind    Kind
	integer int64
	real    float64
	text    string
	blob    []byte
}

// Null returns the SQL NULL value.
func Null() Value { return Value{} }

// Integer returns a 64-bit signed integer value.
func Integer(i int64) Value { return Value{kind: KindInteger, integer: i} }

// Real returns a 64-bit floating point value.
func Real(f float64) Value { return Value{kind: KindReal, real: f} }

// Text returns a UTF-8 text value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Blob returns a byte sequence value. A nil slice becomes an empty blob.
func Blob(b []byte) Value {
	if b == nil {
		b = []byte{}
	}
	return Value{kind: KindBlob, blob: b}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is NULL.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Int64 returns the integer payload.
func (v Value) Int64() (int64, bool) { return v.integer, v.kind == KindInteger }

// Float64 returns the real payload.
func (v Value) Float64() (float64, bool) { return v.real, v.kind == KindReal }

// Text returns the text payload.
func (v Value) Text() (string, bool) { return v.text, v.kind == KindText }

// Bytes returns the blob payload.
func (v Value) Bytes() ([]byte, bool) { return v.blob, v.kind == KindBlob }

// Arg returns v in the form the sqlite driver binds positionally.
func (v Value) Arg() any {
	switch v.kind {
	case KindInteger:
		return v.integer
	case KindReal:
		return v.real
	case KindText:
		return v.text
	case KindBlob:
		return v.blob
	default:
		return nil
	}
}

// Equal reports whether v and o hold the same variant and payload.
// Reals compare bitwise so NaN equals itself.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInteger:
		return v.integer == o.integer
	case KindReal:
		return math.Float64bits(v.real) == math.Float64bits(o.real)
	case KindText:
		return v.text == o.text
	case KindBlob:
		return string(v.blob) == string(o.blob)
	default:
		return true
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return fmt.Sprintf("integer(%d)", v.integer)
	case KindReal:
		return fmt.Sprintf("real(%v)", v.real)
	case KindText:
		return fmt.Sprintf("text(%q)", v.text)
	case KindBlob:
		return fmt.Sprintf("blob(%d bytes)", len(v.blob))
	default:
		return "null"
	}
}

// Args converts values to driver arguments, preserving order.
func Args(values []Value) []any {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v.Arg()
	}
	return args
}
