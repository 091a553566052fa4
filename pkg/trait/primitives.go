package trait

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/spf13/cast"
)

var errNil = errors.New("cannot convert nil")

// casting carries the description and default of a casting kind. Casting
// kinds implement Coercer only, so they never reject a convertible value.
type casting struct {
	info string
	def  any
}

func (c casting) Info() string          { return c.info }
func (c casting) Default() (any, error) { return c.def, nil }

// --- Any ---

type anyKind struct{}

func (anyKind) Info() string          { return "any value" }
func (anyKind) Default() (any, error) { return nil, nil }

// Any creates a trait accepting every value.
func Any(opts ...Option) *Trait { return newTrait(anyKind{}, collect(opts)) }

// --- Integers ---

type intKind struct{}

func (intKind) Info() string          { return "an int" }
func (intKind) Default() (any, error) { return 0, nil }

func (intKind) Validate(t *Trait, owner Owner, value any) (any, error) {
	if i, ok := toInt(value); ok {
		return i, nil
	}
	return nil, t.Error(owner, value)
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), v >= math.MinInt && v <= math.MaxInt
	case uint:
		return int(v), v <= math.MaxInt
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int(v), uint64(v) <= math.MaxInt
	case uint64:
		return int(v), v <= math.MaxInt
	case json.Number:
		i, err := v.Int64()
		return int(i), err == nil
	}
	return 0, false
}

// Int creates an integer trait. Values are stored as int.
func Int(opts ...Option) *Trait { return newTrait(intKind{}, collect(opts)) }

// Integer is an alias of Int.
func Integer(opts ...Option) *Trait { return Int(opts...) }

type cIntKind struct{ casting }

func (cIntKind) ValueFor(value any) (any, error) {
	if value == nil {
		return nil, errNil
	}
	return cast.ToIntE(value)
}

// CInt creates an integer trait that casts values instead of rejecting them.
func CInt(opts ...Option) *Trait { return newTrait(cIntKind{casting{"an int", 0}}, collect(opts)) }

// --- Floats ---

type floatKind struct{}

func (floatKind) Info() string          { return "a float" }
func (floatKind) Default() (any, error) { return 0.0, nil }

func (floatKind) Validate(t *Trait, owner Owner, value any) (any, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f, nil
		}
	default:
		if i, ok := toInt(value); ok {
			return float64(i), nil
		}
	}
	return nil, t.Error(owner, value)
}

// Float creates a floating point trait. Integers are accepted and widened.
func Float(opts ...Option) *Trait { return newTrait(floatKind{}, collect(opts)) }

type cFloatKind struct{ casting }

func (cFloatKind) ValueFor(value any) (any, error) {
	if value == nil {
		return nil, errNil
	}
	return cast.ToFloat64E(value)
}

// CFloat creates a float trait that casts values instead of rejecting them.
func CFloat(opts ...Option) *Trait { return newTrait(cFloatKind{casting{"a float", 0.0}}, collect(opts)) }

// --- Complex ---

type complexKind struct{}

func (complexKind) Info() string          { return "a complex number" }
func (complexKind) Default() (any, error) { return complex128(0), nil }

func (complexKind) Validate(t *Trait, owner Owner, value any) (any, error) {
	if c, ok := toComplex(value); ok {
		return c, nil
	}
	return nil, t.Error(owner, value)
}

func toComplex(value any) (complex128, bool) {
	switch v := value.(type) {
	case complex128:
		return v, true
	case complex64:
		return complex128(v), true
	case float64:
		return complex(v, 0), true
	case float32:
		return complex(float64(v), 0), true
	case json.Number:
		f, err := v.Float64()
		return complex(f, 0), err == nil
	}
	if i, ok := toInt(value); ok {
		return complex(float64(i), 0), true
	}
	return 0, false
}

// Complex creates a complex number trait. Real numbers are accepted.
func Complex(opts ...Option) *Trait { return newTrait(complexKind{}, collect(opts)) }

type cComplexKind struct{ casting }

func (cComplexKind) ValueFor(value any) (any, error) {
	if c, ok := toComplex(value); ok {
		return c, nil
	}
	switch v := value.(type) {
	case nil:
		return nil, errNil
	case string:
		return strconv.ParseComplex(v, 128)
	}
	f, err := cast.ToFloat64E(value)
	if err != nil {
		return nil, err
	}
	return complex(f, 0), nil
}

// CComplex creates a complex trait that casts values instead of rejecting them.
func CComplex(opts ...Option) *Trait { return newTrait(cComplexKind{casting{"a complex number", complex128(0)}}, collect(opts)) }

// --- Booleans ---

type boolKind struct{}

func (boolKind) Info() string          { return "a boolean" }
func (boolKind) Default() (any, error) { return false, nil }

func (boolKind) IsValidFor(value any) bool {
	_, ok := value.(bool)
	return ok
}

// Bool creates a boolean trait.
func Bool(opts ...Option) *Trait { return newTrait(boolKind{}, collect(opts)) }

type cBoolKind struct{ casting }

func (cBoolKind) ValueFor(value any) (any, error) { return truthy(value), nil }

// truthy reports the truth value of v: nil, zero numbers, false and empty
// strings or collections are false.
func truthy(value any) bool {
	if value == nil {
		return false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface, reflect.Func:
		return !rv.IsNil()
	}
	return !rv.IsZero()
}

// CBool creates a boolean trait that converts values by truthiness.
func CBool(opts ...Option) *Trait { return newTrait(cBoolKind{casting{"a boolean", false}}, collect(opts)) }

// --- Byte strings ---

type bytesKind struct{}

func (bytesKind) Info() string          { return "a bytes object" }
func (bytesKind) Default() (any, error) { return []byte{}, nil }

func (bytesKind) Validate(t *Trait, owner Owner, value any) (any, error) {
	if b, ok := value.([]byte); ok {
		return append([]byte{}, b...), nil
	}
	return nil, t.Error(owner, value)
}

// Bytes creates a byte string trait. Stored values are copies.
func Bytes(opts ...Option) *Trait { return newTrait(bytesKind{}, collect(opts)) }

type cBytesKind struct{ casting }

func (cBytesKind) ValueFor(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, errNil
	case []byte:
		return bytes.Clone(v), nil
	case string:
		return []byte(v), nil
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// CBytes creates a byte string trait that casts values instead of rejecting them.
func CBytes(opts ...Option) *Trait { return newTrait(cBytesKind{casting{"a bytes object", []byte{}}}, collect(opts)) }

// --- Text strings ---

type unicodeKind struct{}

func (unicodeKind) Info() string          { return "a unicode string" }
func (unicodeKind) Default() (any, error) { return "", nil }

func (unicodeKind) Validate(t *Trait, owner Owner, value any) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		for _, c := range v {
			if c >= utf8.RuneSelf {
				return nil, t.errorWith(owner, value, fmt.Errorf("could not decode %q as ascii", v))
			}
		}
		return string(v), nil
	}
	return nil, t.Error(owner, value)
}

// Unicode creates a text string trait. Byte strings are accepted when they are
// pure ASCII.
func Unicode(opts ...Option) *Trait { return newTrait(unicodeKind{}, collect(opts)) }

// String is an alias of Unicode.
func String(opts ...Option) *Trait { return Unicode(opts...) }

type cUnicodeKind struct{ casting }

func (cUnicodeKind) ValueFor(value any) (any, error) {
	if value == nil {
		return nil, errNil
	}
	if s, err := cast.ToStringE(value); err == nil {
		return s, nil
	}
	return fmt.Sprint(value), nil
}

// CUnicode creates a text string trait that casts values instead of rejecting them.
func CUnicode(opts ...Option) *Trait { return newTrait(cUnicodeKind{casting{"a unicode string", ""}}, collect(opts)) }

// --- Identifiers ---

type objectNameKind struct{}

func (objectNameKind) Info() string          { return "a valid object identifier" }
func (objectNameKind) Default() (any, error) { return nil, nil }

func (objectNameKind) IsValidFor(value any) bool {
	s, ok := value.(string)
	return ok && isIdentifier(s)
}

// ObjectName creates a trait holding an identifier. The default is nil since
// the empty string is not an identifier.
func ObjectName(opts ...Option) *Trait { return newTrait(objectNameKind{}, collect(opts)) }

type dottedObjectNameKind struct{}

func (dottedObjectNameKind) Info() string          { return "a valid dotted object name" }
func (dottedObjectNameKind) Default() (any, error) { return nil, nil }

func (dottedObjectNameKind) IsValidFor(value any) bool {
	s, ok := value.(string)
	return ok && isDottedIdentifier(s)
}

// DottedObjectName creates a trait holding a dotted name such as "a.b3._c".
func DottedObjectName(opts ...Option) *Trait {
	return newTrait(dottedObjectNameKind{}, collect(opts))
}

// --- Regular expressions ---

type regexpKind struct{}

func (regexpKind) Info() string          { return "a regular expression" }
func (regexpKind) Default() (any, error) { return nil, nil }

func (regexpKind) ValueFor(value any) (any, error) {
	switch v := value.(type) {
	case *regexp.Regexp:
		return v, nil
	case string:
		return regexp.Compile(v)
	}
	return nil, fmt.Errorf("cannot compile %T", value)
}

// CRegExp creates a trait holding a compiled regular expression. Strings are
// compiled on assignment.
func CRegExp(opts ...Option) *Trait { return newTrait(regexpKind{}, collect(opts)) }
