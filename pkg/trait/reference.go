package trait

import (
	"errors"
	"fmt"
	"sync"
)

// target is a class given directly or by dotted name. A dotted name is
// resolved on first use; types share their traits, so resolution is guarded.
type target struct {
	name  string
	mu    *sync.RWMutex
	class Class
}

func newTarget(v any) target {
	switch c := v.(type) {
	case Class:
		return target{class: c, name: c.Name(), mu: new(sync.RWMutex)}
	case string:
		return target{name: c, mu: new(sync.RWMutex)}
	case nil:
		return target{}
	}
	panic(fmt.Sprintf("trait: class must be a Class or a dotted name, got %T", v))
}

// get returns the class, nil while the name is unresolved.
func (t *target) get() Class {
	if t.mu == nil {
		return nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.class
}

func (t *target) resolve(reg *Registry) error {
	if t.name == "" || t.get() != nil {
		return nil
	}
	c, err := reg.Resolve(t.name)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.class == nil {
		t.class = c
	}
	return nil
}

// InstanceKind accepts instances of a target class.
type InstanceKind struct {
	target    target
	allowNone bool
	args      []any
	kw        map[string]any
	recipe    bool
}

// Target returns the target class, nil while it is an unresolved dotted name.
func (k *InstanceKind) Target() Class { return k.target.get() }

// HasRecipe reports whether each owner gets a freshly constructed default.
func (k *InstanceKind) HasRecipe() bool { return k.recipe }

// TargetName returns the dotted name of the target class.
func (k *InstanceKind) TargetName() string { return k.target.name }

func (k *InstanceKind) Info() string {
	info := article(k.target.name)
	if k.allowNone {
		return info + " or nil"
	}
	return info
}

// Default builds a fresh instance from the construction recipe, or nil.
func (k *InstanceKind) Default() (any, error) {
	if !k.recipe {
		return nil, nil
	}
	c := k.target.get()
	if c == nil {
		return nil, &ImportError{Name: k.target.name}
	}
	return c.Construct(k.args, k.kw)
}

func (k *InstanceKind) Validate(t *Trait, owner Owner, value any) (any, error) {
	if value == nil {
		if k.allowNone {
			return nil, nil
		}
		return nil, t.Error(owner, value)
	}
	c := k.target.get()
	if c == nil {
		return nil, t.errorWith(owner, value, &ImportError{Name: k.target.name})
	}
	if c.IsInstance(value) {
		return value, nil
	}
	return nil, t.Error(owner, value)
}

func (k *InstanceKind) resolve(reg *Registry) error { return k.target.resolve(reg) }

// Instance creates a trait whose value must be an instance of class, given as
// a Class or a dotted name. With Args or Kw every owning instance gets a freshly
// constructed default; otherwise the default is nil.
func Instance(class any, opts ...Option) *Trait {
	o := collect(opts)
	k := &InstanceKind{
		target:    newTarget(class),
		allowNone: o.allowNone,
		args:      o.args,
		kw:        o.kw,
		recipe:    o.recipe,
	}
	return newTrait(k, o)
}

// TypeKind accepts classes deriving from a target class.
type TypeKind struct {
	target    target
	def       target
	allowNone bool
}

func (k *TypeKind) Target() Class { return k.target.get() }

func (k *TypeKind) Info() string {
	info := "a class"
	if k.target.name != "" {
		info = "a subclass of " + k.target.name
	}
	if k.allowNone {
		return info + " or nil"
	}
	return info
}

func (k *TypeKind) Default() (any, error) {
	if k.def.name == "" {
		return nil, nil
	}
	c := k.def.get()
	if c == nil {
		return nil, &ImportError{Name: k.def.name}
	}
	return c, nil
}

func (k *TypeKind) Validate(t *Trait, owner Owner, value any) (any, error) {
	if value == nil {
		if k.allowNone {
			return nil, nil
		}
		return nil, t.Error(owner, value)
	}
	c, ok := value.(Class)
	if !ok {
		return nil, t.Error(owner, value)
	}
	if k.target.name != "" {
		base := k.target.get()
		if base == nil {
			return nil, t.errorWith(owner, value, &ImportError{Name: k.target.name})
		}
		if !c.IsSubclass(base) {
			return nil, t.Error(owner, value)
		}
	}
	return c, nil
}

func (k *TypeKind) resolve(reg *Registry) error {
	return errors.Join(k.target.resolve(reg), k.def.resolve(reg))
}

// Type creates a trait whose value must be a class deriving from class, given as
// a Class, a dotted name, or nil for any class. A Default may likewise be a
// Class or a dotted name.
func Type(class any, opts ...Option) *Trait {
	o := collect(opts)
	k := &TypeKind{target: newTarget(class), allowNone: o.allowNone}
	if o.hasDef {
		k.def = newTarget(o.def)
		o.def, o.hasDef = nil, false
	}
	return newTrait(k, o)
}

// ThisKind accepts instances of the trait's declaring class.
type ThisKind struct{}

func (ThisKind) Info() string          { return "an instance of the same type as the receiver or nil" }
func (ThisKind) Default() (any, error) { return nil, nil }

func (ThisKind) Validate(t *Trait, owner Owner, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	if t.class != nil && t.class.IsInstance(value) {
		return value, nil
	}
	return nil, t.Error(owner, value)
}

// This creates a trait holding an instance of the declaring type or a subtype.
// nil is always allowed and is the only default.
func This(opts ...Option) *Trait {
	o := collect(opts)
	o.def, o.hasDef = nil, false
	return newTrait(ThisKind{}, o)
}
