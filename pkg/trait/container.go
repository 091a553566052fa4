package trait

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
)

var errKeys = errors.New("keys must be strings")

func bindElement(elem *Trait) *Trait {
	if elem != nil && elem.name == "" {
		elem.name = elementName
	}
	return elem
}

// Sequence returns the elements of a slice or array value. Byte strings and
// text are not sequences.
func Sequence(value any) ([]any, bool) {
	switch value.(type) {
	case nil, []byte, string:
		return nil, false
	case []any:
		return value.([]any), true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// Mapping returns the entries of a map keyed by strings.
func Mapping(value any) (map[string]any, bool) {
	if m, ok := value.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(value)
	if value == nil || rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

func validateElements(t *Trait, owner Owner, elem *Trait, items []any) ([]any, error) {
	out := make([]any, len(items))
	for i, v := range items {
		if elem == nil {
			out[i] = v
			continue
		}
		vv, err := elem.Validate(owner, v)
		if err != nil {
			return nil, t.elementError(owner, elem, v, err)
		}
		out[i] = vv
	}
	return out, nil
}

// --- List ---

// ListKind accepts sequences with a bounded length.
type ListKind struct {
	elem      *Trait
	minLen    int
	maxLen    int
	allowNone bool
}

// Elem returns the element trait, or nil when elements are unchecked.
func (k *ListKind) Elem() *Trait { return k.elem }

func (k *ListKind) MinLen() int { return k.minLen }

// MaxLen returns the maximum length, math.MaxInt when unbounded.
func (k *ListKind) MaxLen() int { return k.maxLen }

func (k *ListKind) Info() string {
	info := "a list"
	if k.elem != nil {
		info += " of " + k.elem.Info()
	}
	if k.allowNone {
		return info + " or nil"
	}
	return info
}

func (k *ListKind) Default() (any, error) { return []any{}, nil }

func (k *ListKind) Validate(t *Trait, owner Owner, value any) (any, error) {
	if value == nil && k.allowNone {
		return nil, nil
	}
	items, ok := Sequence(value)
	if !ok {
		return nil, t.Error(owner, value)
	}
	if n := len(items); n < k.minLen || n > k.maxLen {
		return nil, &ValidationError{
			Attr:  t.name,
			Owner: className(owner),
			Info:  k.lengthInfo(),
			Value: value,
		}
	}
	return validateElements(t, owner, k.elem, items)
}

func (k *ListKind) lengthInfo() string {
	if k.maxLen == math.MaxInt {
		return fmt.Sprintf("of length L >= %d", k.minLen)
	}
	return fmt.Sprintf("of length %d <= L <= %d", k.minLen, k.maxLen)
}

func (k *ListKind) resolve(reg *Registry) error {
	if k.elem == nil {
		return nil
	}
	return k.elem.Resolve(reg)
}

// List creates a list trait. elem, when not nil, validates every element;
// MinLen and MaxLen bound the length. Values are stored as fresh []any.
func List(elem *Trait, opts ...Option) *Trait {
	o := collect(opts)
	k := &ListKind{elem: bindElement(elem), minLen: o.minLen, maxLen: o.maxLen, allowNone: o.allowNone}
	return newTrait(k, o)
}

// --- Set ---

// Set is an unordered collection of distinct comparable values.
type Set map[any]struct{}

// NewSet creates a set holding items.
func NewSet(items ...any) Set {
	s := make(Set, len(items))
	for _, v := range items {
		s.Add(v)
	}
	return s
}

// Add inserts v. It panics if v is not comparable.
func (s Set) Add(v any) { s[v] = struct{}{} }

func (s Set) Has(v any) bool {
	_, ok := s[v]
	return ok
}

func (s Set) Len() int { return len(s) }

// Items returns the elements ordered by their printed representation.
func (s Set) Items() []any {
	items := make([]any, 0, len(s))
	for v := range s {
		items = append(items, v)
	}
	sort.Slice(items, func(i, j int) bool {
		return fmt.Sprintf("%v", items[i]) < fmt.Sprintf("%v", items[j])
	})
	return items
}

// MarshalJSON encodes the set as an array.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Items())
}

// MarshalYAML encodes the set as a sequence.
func (s Set) MarshalYAML() (any, error) {
	return s.Items(), nil
}

// SetKind accepts sets, and sequences whose elements become a set.
type SetKind struct {
	elem      *Trait
	allowNone bool
}

func (k *SetKind) Elem() *Trait { return k.elem }

func (k *SetKind) Info() string {
	info := "a set"
	if k.elem != nil {
		info += " of " + k.elem.Info()
	}
	if k.allowNone {
		return info + " or nil"
	}
	return info
}

func (k *SetKind) Default() (any, error) { return Set{}, nil }

func (k *SetKind) Validate(t *Trait, owner Owner, value any) (any, error) {
	if value == nil && k.allowNone {
		return nil, nil
	}
	var items []any
	if s, ok := value.(Set); ok {
		items = make([]any, 0, len(s))
		for v := range s {
			items = append(items, v)
		}
	} else if items, ok = Sequence(value); !ok {
		return nil, t.Error(owner, value)
	}
	items, err := validateElements(t, owner, k.elem, items)
	if err != nil {
		return nil, err
	}
	out := make(Set, len(items))
	for _, v := range items {
		if v != nil && !reflect.ValueOf(v).Comparable() {
			return nil, &ElementError{Attr: t.name, Owner: className(owner), Info: "a hashable value", Element: v}
		}
		out.Add(v)
	}
	return out, nil
}

func (k *SetKind) resolve(reg *Registry) error {
	if k.elem == nil {
		return nil
	}
	return k.elem.Resolve(reg)
}

// SetOf creates a set trait. elem, when not nil, validates every element.
// Values are stored as a fresh Set.
func SetOf(elem *Trait, opts ...Option) *Trait {
	o := collect(opts)
	return newTrait(&SetKind{elem: bindElement(elem), allowNone: o.allowNone}, o)
}

// --- Tuple ---

// TupleKind accepts sequences, of a fixed arity when slots are declared.
type TupleKind struct {
	slots     []*Trait
	allowNone bool
}

// Slots returns the positional slot traits.
func (k *TupleKind) Slots() []*Trait { return k.slots }

func (k *TupleKind) Info() string {
	if len(k.slots) == 0 {
		return "a tuple"
	}
	return fmt.Sprintf("a tuple of %d elements", len(k.slots))
}

// Default is nil for fixed arity tuples: an empty tuple would not validate.
func (k *TupleKind) Default() (any, error) {
	if len(k.slots) > 0 {
		return nil, nil
	}
	return []any{}, nil
}

func (k *TupleKind) Validate(t *Trait, owner Owner, value any) (any, error) {
	if value == nil && k.allowNone {
		return nil, nil
	}
	items, ok := Sequence(value)
	if !ok {
		return nil, t.Error(owner, value)
	}
	if len(k.slots) == 0 {
		return validateElements(t, owner, nil, items)
	}
	if len(items) != len(k.slots) {
		return nil, &ValidationError{
			Attr:  t.name,
			Owner: className(owner),
			Info:  fmt.Sprintf("a tuple of %d elements", len(k.slots)),
			Value: value,
		}
	}
	out := make([]any, len(items))
	for i, slot := range k.slots {
		v, err := slot.Validate(owner, items[i])
		if err != nil {
			return nil, t.elementError(owner, slot, items[i], err)
		}
		out[i] = v
	}
	return out, nil
}

func (k *TupleKind) resolve(reg *Registry) error {
	var errs []error
	for _, slot := range k.slots {
		errs = append(errs, slot.Resolve(reg))
	}
	return errors.Join(errs...)
}

// Tuple creates a tuple trait. When slots are given the value must have exactly
// one element per slot, each validated by its slot trait.
func Tuple(slots []*Trait, opts ...Option) *Trait {
	o := collect(opts)
	for _, slot := range slots {
		bindElement(slot)
	}
	return newTrait(&TupleKind{slots: slots, allowNone: o.allowNone}, o)
}

// --- Dict ---

// DictKind accepts maps with string keys.
type DictKind struct {
	elem      *Trait
	allowNone bool
}

// Elem returns the value trait, or nil when values are unchecked.
func (k *DictKind) Elem() *Trait { return k.elem }

func (k *DictKind) Info() string {
	info := "a dict"
	if k.elem != nil {
		info += " of " + k.elem.Info()
	}
	if k.allowNone {
		return info + " or nil"
	}
	return info
}

func (k *DictKind) Default() (any, error) { return map[string]any{}, nil }

func (k *DictKind) Validate(t *Trait, owner Owner, value any) (any, error) {
	if value == nil && k.allowNone {
		return nil, nil
	}
	rv := reflect.ValueOf(value)
	if value == nil || rv.Kind() != reflect.Map {
		return nil, t.Error(owner, value)
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key, ok := iter.Key().Interface().(string)
		if !ok {
			return nil, t.errorWith(owner, value, errKeys)
		}
		v := iter.Value().Interface()
		if k.elem != nil {
			vv, err := k.elem.Validate(owner, v)
			if err != nil {
				return nil, t.elementError(owner, k.elem, v, err)
			}
			v = vv
		}
		out[key] = v
	}
	return out, nil
}

func (k *DictKind) resolve(reg *Registry) error {
	if k.elem == nil {
		return nil
	}
	return k.elem.Resolve(reg)
}

// Dict creates a dict trait. elem, when not nil, validates every value. Values
// are stored as a fresh map[string]any.
func Dict(elem *Trait, opts ...Option) *Trait {
	o := collect(opts)
	return newTrait(&DictKind{elem: bindElement(elem), allowNone: o.allowNone}, o)
}
