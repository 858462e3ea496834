package query

import (
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type scalarKind int

const (
	kindUnknown scalarKind = iota
	kindString
	kindNumber
	kindTime
	kindBool
)

type scalar struct {
	kind scalarKind
	str  string
	num  decimal.Decimal
	at   time.Time
	flag bool
}

// Compare orders a against b. It returns -1, 0 or 1 and ok=false when the two
// values are not of comparable kinds. Numbers compare across Go numeric types
// and decimal.Decimal; named string types compare as strings.
func Compare(a, b any) (int, bool) {
	sa, sb := toScalar(a), toScalar(b)
	if sa.kind == kindUnknown || sa.kind != sb.kind {
		return 0, false
	}

	switch sa.kind {
	case kindString:
		return strings.Compare(sa.str, sb.str), true
	case kindNumber:
		return sa.num.Cmp(sb.num), true
	case kindTime:
		return sa.at.Compare(sb.at), true
	case kindBool:
		switch {
		case sa.flag == sb.flag:
			return 0, true
		case !sa.flag:
			return -1, true
		default:
			return 1, true
		}
	}
	return 0, false
}

// Equals reports whether a and b hold the same value.
func Equals(a, b any) bool {
	if c, ok := Compare(a, b); ok {
		return c == 0
	}
	return reflect.DeepEqual(a, b)
}

// InRange reports whether v satisfies r. Values not comparable with a bound never match.
func InRange(v any, r Range) bool {
	if r.Lower != nil {
		c, ok := Compare(v, r.Lower)
		if !ok || c < 0 {
			return false
		}
	}
	if r.Upper != nil {
		c, ok := Compare(v, r.Upper)
		if !ok || c > 0 {
			return false
		}
	}
	return true
}

// Matches evaluates a single condition against a field value; present is
// false when the record does not carry the field.
func Matches(cond Condition, v any, present bool) bool {
	switch c := cond.(type) {
	case Equal:
		if !present {
			return c.Value == nil
		}
		return Equals(v, c.Value)
	case Range:
		if c.IsOpen() {
			return true
		}
		return present && InRange(v, c)
	}
	return false
}

// Number converts a numeric value of any Go numeric type or decimal.Decimal.
func Number(v any) (decimal.Decimal, bool) {
	s := toScalar(v)
	if s.kind != kindNumber {
		return decimal.Zero, false
	}
	return s.num, true
}

func toScalar(v any) scalar {
	switch x := v.(type) {
	case nil:
		return scalar{}
	case time.Time:
		return scalar{kind: kindTime, at: x}
	case *time.Time:
		if x == nil {
			return scalar{}
		}
		return scalar{kind: kindTime, at: *x}
	case decimal.Decimal:
		return scalar{kind: kindNumber, num: x}
	case *decimal.Decimal:
		if x == nil {
			return scalar{}
		}
		return scalar{kind: kindNumber, num: *x}
	case uuid.UUID:
		return scalar{kind: kindString, str: x.String()}
	case *uuid.UUID:
		if x == nil {
			return scalar{}
		}
		return scalar{kind: kindString, str: x.String()}
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return scalar{}
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.String:
		return scalar{kind: kindString, str: rv.String()}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return scalar{kind: kindNumber, num: decimal.NewFromInt(rv.Int())}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return scalar{kind: kindNumber, num: decimal.NewFromUint64(rv.Uint())}
	case reflect.Float32, reflect.Float64:
		return scalar{kind: kindNumber, num: decimal.NewFromFloat(rv.Float())}
	case reflect.Bool:
		return scalar{kind: kindBool, flag: rv.Bool()}
	}
	return scalar{}
}
