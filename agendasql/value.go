package agendasql

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindText
	KindInteger
	KindReal
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a spreadsheet cell or a store column value. The zero Value is
// null, which is distinct from empty text.
type Value struct {
	kind Kind
	text string
	num  int64
	real float64
}

// Null returns the absent value.
func Null() Value { return Value{} }

// Text returns a text value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInteger, num: i} }

// Real returns a floating point value.
func Real(f float64) Value { return Value{kind: KindReal, real: f} }

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is absent.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the text of a text value and false for every other kind.
func (v Value) Str() (string, bool) {
	return v.text, v.kind == KindText
}

// Int64 returns the integer held by v. Real values with no fractional part
// are accepted since SQLite may hand back integral ids as floats.
func (v Value) Int64() (int64, bool) {
	switch v.kind {
	case KindInteger:
		return v.num, true
	case KindReal:
		if v.real == float64(int64(v.real)) {
			return int64(v.real), true
		}
	}
	return 0, false
}

// String renders v for display. Null renders as "None".
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindInteger:
		return strconv.FormatInt(v.num, 10)
	case KindReal:
		return strconv.FormatFloat(v.real, 'f', -1, 64)
	default:
		return "None"
	}
}

// Arg converts v into an argument for database/sql.
func (v Value) Arg() any {
	switch v.kind {
	case KindText:
		return v.text
	case KindInteger:
		return v.num
	case KindReal:
		return v.real
	default:
		return nil
	}
}

// FromDriver converts a value scanned by database/sql into a Value.
func FromDriver(src any) (Value, error) {
	switch x := src.(type) {
	case nil:
		return Null(), nil
	case string:
		return Text(x), nil
	case []byte:
		return Text(string(x)), nil
	case int64:
		return Int(x), nil
	case int:
		return Int(int64(x)), nil
	case float64:
		return Real(x), nil
	case bool:
		if x {
			return Int(1), nil
		}
		return Int(0), nil
	default:
		return Value{}, fmt.Errorf("unsupported column value of type %T", src)
	}
}

// Encode prepares v for embedding in SQL text. Text has every apostrophe
// doubled and surrounding whitespace removed. Other kinds are returned
// unchanged.
func Encode(v Value) Value {
	if v.kind != KindText {
		return v
	}
	return Text(strings.TrimSpace(strings.ReplaceAll(v.text, "'", "''")))
}

// Decode reverses Encode on text read back from the store by collapsing
// doubled apostrophes. Other kinds are returned unchanged.
func Decode(v Value) Value {
	if v.kind != KindText {
		return v
	}
	return Text(strings.ReplaceAll(v.text, "''", "'"))
}

// literal renders an encoded value the way it is embedded in statement
// text: quoted when textual, bare otherwise.
func literal(v Value) string {
	switch v.kind {
	case KindText:
		return "'" + v.text + "'"
	case KindNull:
		return "NULL"
	default:
		return v.String()
	}
}
