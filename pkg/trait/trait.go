package trait

import (
	"fmt"
	"maps"
)

// DefaultFunc computes the default value of an attribute on first read.
type DefaultFunc func(owner Owner) (any, error)

// Kind is the validation rule of a trait.
//
// A kind may additionally implement Validator, Predicate or Coercer. The first
// one found in that order decides what a write stores; a kind implementing none
// of them accepts every value unchanged.
type Kind interface {
	// Info describes the accepted values, e.g. "an int".
	Info() string
	// Default returns the canonical default. It is called once per instance.
	Default() (any, error)
}

// Validator validates and possibly converts a value.
type Validator interface {
	Validate(t *Trait, owner Owner, value any) (any, error)
}

// Predicate accepts or rejects a value without converting it.
type Predicate interface {
	IsValidFor(value any) bool
}

// Coercer converts a value, failing when it cannot.
type Coercer interface {
	ValueFor(value any) (any, error)
}

type resolver interface {
	resolve(reg *Registry) error
}

// DefaultProvider is implemented by classes that carry lazy default overrides.
// DefaultOverride searches from the class itself up to and including declaring,
// most derived first.
type DefaultProvider interface {
	DefaultOverride(attr string, declaring Class) (DefaultFunc, bool)
}

// RegistryProvider is implemented by classes that resolve dotted names through
// their own registry.
type RegistryProvider interface {
	Registry() *Registry
}

// Owner is a record instance holding trait values.
type Owner interface {
	Class() Class
	Slots() *Slots
}

const elementName = "element"

// Trait is a typed attribute slot definition.
type Trait struct {
	name     string
	class    Class
	kind     Kind
	def      any
	hasDef   bool
	lazy     DefaultFunc
	meta     map[string]any
	registry *Registry
}

func newTrait(kind Kind, o *options) *Trait {
	return &Trait{
		kind:     kind,
		def:      o.def,
		hasDef:   o.hasDef,
		lazy:     o.lazy,
		meta:     o.meta,
		registry: o.registry,
	}
}

// New creates a trait from a custom kind.
func New(kind Kind, opts ...Option) *Trait {
	return newTrait(kind, collect(opts))
}

func (t *Trait) Name() string { return t.name }

// Class returns the declaring class, nil until bound.
func (t *Trait) Class() Class { return t.class }

func (t *Trait) Kind() Kind { return t.kind }

func (t *Trait) Info() string { return t.kind.Info() }

// Metadata returns the metadata value stored under key, or nil.
func (t *Trait) Metadata(key string) any { return t.meta[key] }

func (t *Trait) SetMetadata(key string, value any) {
	if t.meta == nil {
		t.meta = make(map[string]any)
	}
	t.meta[key] = value
}

// StaticDefault returns the value given with the Default option.
func (t *Trait) StaticDefault() (any, bool) { return t.def, t.hasDef }

// IsLazy reports whether the trait computes its default on first read.
func (t *Trait) IsLazy() bool { return t.lazy != nil }

// Registry returns the registry given with ResolveWith, or nil.
func (t *Trait) Registry() *Registry { return t.registry }

// IsTransient reports whether the trait is excluded from serialization.
func (t *Trait) IsTransient() bool {
	v, ok := t.meta["transient"]
	return ok && v != nil && v != false
}

// BindName stamps the attribute name. A trait is named exactly once.
func (t *Trait) BindName(name string) error {
	if t.name != "" && t.name != name {
		return fmt.Errorf("%w: trait %q cannot be renamed to %q", ErrAlreadyBound, t.name, name)
	}
	t.name = name
	return nil
}

// BindClass stamps the declaring class. A trait belongs to exactly one class.
func (t *Trait) BindClass(c Class) error {
	if t.class != nil && t.class != c {
		return fmt.Errorf("%w: trait %q is declared by %s", ErrAlreadyBound, t.name, t.class.Name())
	}
	t.class = c
	return nil
}

// Resolve resolves class references given as dotted names, including those of
// element traits.
func (t *Trait) Resolve(reg *Registry) error {
	if r, ok := t.kind.(resolver); ok {
		return r.resolve(reg)
	}
	return nil
}

// Validate checks value against the trait's kind and returns the value to store.
// owner may be nil.
func (t *Trait) Validate(owner Owner, value any) (any, error) {
	switch k := t.kind.(type) {
	case Validator:
		return k.Validate(t, owner, value)
	case Predicate:
		if k.IsValidFor(value) {
			return value, nil
		}
		return nil, t.Error(owner, value)
	case Coercer:
		v, err := k.ValueFor(value)
		if err != nil {
			return nil, t.errorWith(owner, value, err)
		}
		return v, nil
	default:
		return value, nil
	}
}

// InstantiateDefault materializes the default of t on owner. A lazy default is
// recorded uninvoked; a static default is validated and stored.
func (t *Trait) InstantiateDefault(owner Owner) error {
	if err := t.Resolve(t.registryFor(owner)); err != nil {
		return err
	}
	slots := owner.Slots()
	if p, ok := owner.Class().(DefaultProvider); ok {
		if fn, ok := p.DefaultOverride(t.name, t.class); ok {
			slots.deferred[t.name] = fn
			return nil
		}
	}
	if t.lazy != nil {
		slots.deferred[t.name] = t.lazy
		return nil
	}

	var (
		v   any
		err error
	)
	if t.hasDef {
		v = t.def
	} else if v, err = t.kind.Default(); err != nil {
		return fmt.Errorf("default for %q: %w", t.name, err)
	}
	if v != nil {
		if v, err = t.Validate(owner, v); err != nil {
			return err
		}
	}
	slots.values[t.name] = v
	return nil
}

// Get returns the value of t on owner, running a deferred default on first read.
func (t *Trait) Get(owner Owner) (any, error) {
	slots := owner.Slots()
	if v, ok := slots.values[t.name]; ok {
		return v, nil
	}
	fn, ok := slots.deferred[t.name]
	if !ok {
		return nil, &LookupError{Attr: t.name, Owner: className(owner)}
	}
	v, err := fn(owner)
	if err != nil {
		return nil, fmt.Errorf("default for %q: %w", t.name, err)
	}
	if v, err = t.Validate(owner, v); err != nil {
		return nil, err
	}
	slots.values[t.name] = v
	delete(slots.deferred, t.name)
	return v, nil
}

// Set validates value and stores it on owner. A rejected value leaves the
// stored value untouched.
func (t *Trait) Set(owner Owner, value any) error {
	v, err := t.Validate(owner, value)
	if err != nil {
		return err
	}
	slots := owner.Slots()
	slots.values[t.name] = v
	delete(slots.deferred, t.name)
	return nil
}

func (t *Trait) registryFor(owner Owner) *Registry {
	if t.registry != nil {
		return t.registry
	}
	if owner != nil {
		if p, ok := owner.Class().(RegistryProvider); ok && p.Registry() != nil {
			return p.Registry()
		}
	}
	return DefaultRegistry
}

// Slots holds the per-instance values and deferred defaults.
type Slots struct {
	values   map[string]any
	deferred map[string]DefaultFunc
}

func NewSlots() *Slots {
	return &Slots{
		values:   make(map[string]any),
		deferred: make(map[string]DefaultFunc),
	}
}

// Materialized reports whether name holds a value.
func (s *Slots) Materialized(name string) bool {
	_, ok := s.values[name]
	return ok
}

// Value returns the stored value of name without running a deferred default.
func (s *Slots) Value(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Deferred reports whether name waits for its lazy default.
func (s *Slots) Deferred(name string) bool {
	_, ok := s.deferred[name]
	return ok
}

// Copy returns new slots with every value passed through fn.
func (s *Slots) Copy(fn func(any) any) *Slots {
	c := &Slots{
		values:   make(map[string]any, len(s.values)),
		deferred: maps.Clone(s.deferred),
	}
	for k, v := range s.values {
		c.values[k] = fn(v)
	}
	return c
}
