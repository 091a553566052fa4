package trait

import (
	"encoding/json"
	"reflect"

	"golang.org/x/text/cases"
)

// EnumKind accepts one of a fixed sequence of candidates.
type EnumKind struct {
	values    []any
	allowNone bool
	caseless  bool
}

// Values returns the candidates.
func (k *EnumKind) Values() []any { return k.values }

func (k *EnumKind) Info() string {
	info := "any of " + quoteAll(k.values)
	if k.allowNone {
		return info + " or nil"
	}
	return info
}

func (k *EnumKind) Default() (any, error) { return nil, nil }

func (k *EnumKind) Validate(t *Trait, owner Owner, value any) (any, error) {
	if value == nil && k.allowNone {
		return nil, nil
	}
	if k.caseless {
		s, ok := value.(string)
		if !ok {
			return nil, t.Error(owner, value)
		}
		fold := cases.Fold()
		want := fold.String(s)
		for _, c := range k.values {
			if cs, ok := c.(string); ok && fold.String(cs) == want {
				return c, nil
			}
		}
		return nil, t.Error(owner, value)
	}
	for _, c := range k.values {
		if equal(c, value) {
			return c, nil
		}
	}
	return nil, t.Error(owner, value)
}

// Enum creates a trait whose value must equal one of values. Numbers compare by
// value across Go numeric types; the matching candidate is stored.
func Enum(values []any, opts ...Option) *Trait {
	o := collect(opts)
	return newTrait(&EnumKind{values: values, allowNone: o.allowNone}, o)
}

// CaselessStrEnum creates an Enum of strings compared under case folding. The
// canonical candidate is stored.
func CaselessStrEnum(values []any, opts ...Option) *Trait {
	o := collect(opts)
	return newTrait(&EnumKind{values: values, allowNone: o.allowNone, caseless: true}, o)
}

func equal(a, b any) bool {
	if x, ok := number(a); ok {
		y, ok := number(b)
		return ok && x == y
	}
	return reflect.DeepEqual(a, b)
}

func number(v any) (complex128, bool) {
	switch n := v.(type) {
	case bool, string, nil:
		return 0, false
	case json.Number:
		f, err := n.Float64()
		return complex(f, 0), err == nil
	}
	return toComplex(v)
}
