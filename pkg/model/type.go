package model

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/kanzure/modelo/internal/logging"
	"github.com/kanzure/modelo/pkg/trait"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DefaultFunc computes the default of an attribute on first read.
type DefaultFunc func(inst *Instance) (any, error)

type traitTable = orderedmap.OrderedMap[string, *trait.Trait]

// Type is a record type: an ordered set of typed attributes.
// Types are immutable once built and safe to share between goroutines;
// instances are not.
type Type struct {
	name     string
	parent   *Type
	own      *traitTable
	traits   *traitTable
	defaults map[string]trait.DefaultFunc
	registry *trait.Registry
	logger   *slog.Logger
	hooks    *Hooks
}

// Base is the root of every type hierarchy. It declares no attributes.
var Base = &Type{
	name:     "Model",
	own:      orderedmap.New[string, *trait.Trait](),
	traits:   orderedmap.New[string, *trait.Trait](),
	defaults: map[string]trait.DefaultFunc{},
	registry: trait.DefaultRegistry,
	logger:   logging.NewNop(),
	hooks:    &Hooks{},
}

// Option configures a Type. Options not given are inherited from the parent.
type Option func(*Type)

// WithLogger sets the logger used for debug output of instances.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Type) {
		t.logger = logger
	}
}

// WithRegistry sets the registry the type is registered in and that resolves
// dotted class names of its attributes.
func WithRegistry(r *trait.Registry) Option {
	return func(t *Type) {
		t.registry = r
	}
}

// WithHooks registers lifecycle hooks.
func WithHooks(h Hooks) Option {
	return func(t *Type) {
		t.hooks = &h
	}
}

func (t *Type) Name() string { return t.name }

// Parent returns the parent type, nil for Base.
func (t *Type) Parent() *Type { return t.parent }

// Registry returns the registry resolving dotted names for this type.
func (t *Type) Registry() *trait.Registry { return t.registry }

func (t *Type) Logger() *slog.Logger { return t.logger }

// IsSubclass reports whether t is c or derives from it.
func (t *Type) IsSubclass(c trait.Class) bool {
	other, ok := c.(*Type)
	if !ok {
		return false
	}
	for x := t; x != nil; x = x.parent {
		if x == other {
			return true
		}
	}
	return false
}

// IsInstance reports whether v is an instance of t or of a subtype.
func (t *Type) IsInstance(v any) bool {
	inst, ok := v.(*Instance)
	return ok && inst != nil && inst.typ.IsSubclass(t)
}

// Construct creates an instance from keyword data. Positional arguments are
// not supported.
func (t *Type) Construct(args []any, kw map[string]any) (any, error) {
	if len(args) > 0 {
		return nil, fmt.Errorf("%s: positional arguments are not supported", t.name)
	}
	inst, err := t.Create(kw)
	if err != nil {
		return nil, err
	}
	return inst, nil
}

// DefaultOverride returns the lazy default registered for attr on t or on an
// ancestor, searching no further than declaring.
func (t *Type) DefaultOverride(attr string, declaring trait.Class) (trait.DefaultFunc, bool) {
	for c := t; c != nil; c = c.parent {
		if fn, ok := c.defaults[attr]; ok {
			return fn, true
		}
		if declaring != nil && trait.Class(c) == declaring {
			break
		}
	}
	return nil, false
}

// DeepCopy returns t itself: types are shared, never copied.
func (t *Type) DeepCopy() interface{} { return t }

// Trait returns the attribute named name.
func (t *Type) Trait(name string) (*trait.Trait, bool) {
	return t.traits.Get(name)
}

// Attrs returns the attribute names in declaration order, inherited first.
func (t *Type) Attrs() []string {
	names := make([]string, 0, t.traits.Len())
	for pair := t.traits.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// ClassTraits returns every attribute of the type keyed by name.
func (t *Type) ClassTraits() map[string]*trait.Trait {
	out := make(map[string]*trait.Trait, t.traits.Len())
	for pair := t.traits.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value
	}
	return out
}

// OwnAttrs returns the names of the attributes declared by t itself.
func (t *Type) OwnAttrs() []string {
	names := make([]string, 0, t.own.Len())
	for pair := t.own.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

func (t *Type) String() string { return t.name }

// MarshalText encodes the type as its name, so class valued attributes
// serialize as strings.
func (t *Type) MarshalText() ([]byte, error) { return []byte(t.name), nil }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
