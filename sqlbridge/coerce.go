package sqlbridge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/kbukum/nativebridge/errors"
)

const (
	msgNumericRange   = "numeric value exceeds supported range"
	msgInvalidNumeric = "invalid numeric value"
	msgInvalidByte    = "array value is not a valid byte"
)

// timeLayout matches the text form the sqlite driver writes for time values.
const timeLayout = "2006-01-02 15:04:05.999999999-07:00"

// FromDynamic converts a decoded JSON value into a native store value.
//
// Accepted inputs are the shapes produced by encoding/json (nil, bool,
// float64 or json.Number, string, []any, map[string]any) plus Go integer
// and float types for callers building parameters directly.
//
// Arrays whose elements are all numeric are treated as binary payloads and
// become a Blob; every element must then be an integer in [0, 255]. Any
// other array, and every object, is stored as its canonical JSON text.
func FromDynamic(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		if x {
			return Integer(1), nil
		}
		return Integer(0), nil
	case json.Number:
		return fromNumber(x)
	case float64:
		return fromFloat(x)
	case float32:
		return fromFloat(float64(x))
	case int:
		return Integer(int64(x)), nil
	case int8:
		return Integer(int64(x)), nil
	case int16:
		return Integer(int64(x)), nil
	case int32:
		return Integer(int64(x)), nil
	case int64:
		return Integer(x), nil
	case uint:
		return fromUnsigned(uint64(x))
	case uint8:
		return Integer(int64(x)), nil
	case uint16:
		return Integer(int64(x)), nil
	case uint32:
		return Integer(int64(x)), nil
	case uint64:
		return fromUnsigned(x)
	case string:
		return Text(x), nil
	case []byte:
		return Blob(x), nil
	case []any:
		return fromArray(x)
	case map[string]any:
		return canonicalText(x)
	default:
		return Null(), apperrors.Value(fmt.Sprintf("unsupported value of type %T", v))
	}
}

// FromDynamicAll converts params in order, stopping at the first failure.
func FromDynamicAll(params []any) ([]Value, error) {
	out := make([]Value, 0, len(params))
	for i, p := range params {
		v, err := FromDynamic(p)
		if err != nil {
			if appErr, ok := apperrors.AsAppError(err); ok {
				return nil, appErr.WithDetail("index", i)
			}
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ToDynamic converts a native store value into its JSON-facing form. It never
// fails: text is repaired rather than rejected and non-finite reals become null.
func ToDynamic(v Value) any {
	switch v.kind {
	case KindInteger:
		return v.integer
	case KindReal:
		if math.IsNaN(v.real) || math.IsInf(v.real, 0) {
			return nil
		}
		return v.real
	case KindText:
		return lossyUTF8(v.text)
	case KindBlob:
		out := make([]any, len(v.blob))
		for i, b := range v.blob {
			out[i] = int64(b)
		}
		return out
	default:
		return nil
	}
}

func fromNumber(n json.Number) (Value, error) {
	s := n.String()
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Integer(i), nil
	}
	if _, err := strconv.ParseUint(s, 10, 64); err == nil {
		return Null(), apperrors.Range(msgNumericRange)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Null(), apperrors.Value(msgInvalidNumeric)
	}
	return fromFloat(f)
}

func fromFloat(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null(), apperrors.Value(msgInvalidNumeric)
	}
	return Real(f), nil
}

func fromUnsigned(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return Null(), apperrors.Range(msgNumericRange)
	}
	return Integer(int64(u)), nil
}

func isNumeric(v any) bool {
	switch v.(type) {
	case json.Number, float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

func fromArray(items []any) (Value, error) {
	for _, item := range items {
		if !isNumeric(item) {
			return canonicalText(items)
		}
	}
	buf := make([]byte, len(items))
	for i, item := range items {
		b, ok := toByte(item)
		if !ok {
			return Null(), apperrors.Value(msgInvalidByte).WithDetail("position", i)
		}
		buf[i] = b
	}
	return Blob(buf), nil
}

// toByte accepts integral numbers in [0, 255]; 3.0 is a byte, 2.5 is not.
func toByte(v any) (byte, bool) {
	var f float64
	switch x := v.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(x.String(), 10, 64); err == nil {
			return intToByte(i)
		}
		parsed, err := strconv.ParseFloat(x.String(), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		return intToByte(int64(x))
	case int8:
		return intToByte(int64(x))
	case int16:
		return intToByte(int64(x))
	case int32:
		return intToByte(int64(x))
	case int64:
		return intToByte(x)
	case uint:
		return uintToByte(uint64(x))
	case uint8:
		return x, true
	case uint16:
		return uintToByte(uint64(x))
	case uint32:
		return uintToByte(uint64(x))
	case uint64:
		return uintToByte(x)
	default:
		return 0, false
	}
	if f != math.Trunc(f) || f < 0 || f > 255 {
		return 0, false
	}
	return byte(f), true
}

func intToByte(i int64) (byte, bool) {
	if i < 0 || i > 255 {
		return 0, false
	}
	return byte(i), true
}

func uintToByte(u uint64) (byte, bool) {
	if u > 255 {
		return 0, false
	}
	return byte(u), true
}

// canonicalText renders v as compact JSON with sorted object keys and
// without HTML escaping.
func canonicalText(v any) (Value, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return Null(), apperrors.Value(fmt.Sprintf("value cannot be serialized: %v", err))
	}
	return Text(strings.TrimSuffix(buf.String(), "\n")), nil
}

// lossyUTF8 replaces each maximal ill-formed subsequence of s with one
// U+FFFD, so a run of stray bytes yields one replacement per byte while a
// truncated multi-byte sequence yields a single one.
func lossyUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r != utf8.RuneError || size > 1 {
			b.WriteString(s[i : i+size])
			i += size
			continue
		}
		b.WriteRune(utf8.RuneError)
		i += illFormedLen(s[i:])
	}
	return b.String()
}

// illFormedLen returns how many bytes at the start of s form a prefix of
// some valid encoding. s must not start with a complete valid rune.
func illFormedLen(s string) int {
	lo, hi := byte(0x80), byte(0xBF)
	var need int
	switch c := s[0]; {
	case c >= 0xC2 && c <= 0xDF:
		need = 1
	case c == 0xE0:
		need, lo = 2, 0xA0
	case c >= 0xE1 && c <= 0xEC, c == 0xEE, c == 0xEF:
		need = 2
	case c == 0xED:
		need, hi = 2, 0x9F
	case c == 0xF0:
		need, lo = 3, 0x90
	case c >= 0xF1 && c <= 0xF3:
		need = 3
	case c == 0xF4:
		need, hi = 3, 0x8F
	default:
		return 1
	}
	n := 1
	for ; n <= need && n < len(s); n++ {
		if s[n] < lo || s[n] > hi {
			break
		}
		lo, hi = 0x80, 0xBF
	}
	return n
}

// fromDriver maps a value scanned by the sqlite driver onto the five store
// kinds. Selects are rewritten by storageClassQuery so the driver does not
// convert by declared type; time.Time and bool only reach here from writing
// statements with RETURNING and fold into Text and Integer.
func fromDriver(src any) Value {
	switch x := src.(type) {
	case nil:
		return Null()
	case int64:
		return Integer(x)
	case float64:
		return Real(x)
	case string:
		return Text(x)
	case []byte:
		return Blob(bytes.Clone(x))
	case bool:
		if x {
			return Integer(1)
		}
		return Integer(0)
	case time.Time:
		return Text(x.Format(timeLayout))
	default:
		return Text(fmt.Sprint(x))
	}
}
