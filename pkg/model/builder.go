package model

import (
	"errors"
	"fmt"

	"github.com/kanzure/modelo/pkg/trait"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Builder declares a Type attribute by attribute.
//
//	animal := model.Define("zoo.Animal").
//		Attr("name", trait.String).
//		Attr("legs", trait.List(trait.Instance("zoo.Limb"))).
//		MustBuild()
type Builder struct {
	typ   *Type
	errs  []error
	built bool
}

// Define starts the declaration of a type deriving from Base.
func Define(name string, opts ...Option) *Builder {
	t := &Type{
		name:     name,
		parent:   Base,
		own:      orderedmap.New[string, *trait.Trait](),
		defaults: make(map[string]trait.DefaultFunc),
	}
	for _, opt := range opts {
		opt(t)
	}
	return &Builder{typ: t}
}

// Extends sets the parent type.
func (b *Builder) Extends(parent *Type) *Builder {
	if parent == nil {
		b.errs = append(b.errs, fmt.Errorf("%s: nil parent", b.typ.name))
		return b
	}
	b.typ.parent = parent
	return b
}

// Attr declares an attribute. spec is a *trait.Trait or a bare trait
// constructor such as trait.Int. The trait is named immediately.
func (b *Builder) Attr(name string, spec any) *Builder {
	var t *trait.Trait
	switch s := spec.(type) {
	case *trait.Trait:
		t = s
	case func(...trait.Option) *trait.Trait:
		t = s()
	}
	if t == nil {
		b.errs = append(b.errs, fmt.Errorf("%s.%s: unsupported attribute spec %T", b.typ.name, name, spec))
		return b
	}
	if _, dup := b.typ.own.Get(name); dup {
		b.errs = append(b.errs, fmt.Errorf("%s.%s: attribute declared twice", b.typ.name, name))
		return b
	}
	if err := t.BindName(name); err != nil {
		b.errs = append(b.errs, fmt.Errorf("%s.%s: %w", b.typ.name, name, err))
		return b
	}
	b.typ.own.Set(name, t)
	return b
}

// DefaultFunc registers a lazy default for attr, declared here or inherited.
// It takes precedence over the trait's own default for this type and its
// subtypes.
func (b *Builder) DefaultFunc(attr string, fn DefaultFunc) *Builder {
	b.typ.defaults[attr] = func(owner trait.Owner) (any, error) {
		return fn(owner.(*Instance))
	}
	return b
}

// Build finishes the declaration. Every attribute is bound to the new type and
// the type is registered under its name.
func (b *Builder) Build() (*Type, error) {
	if b.built {
		return nil, fmt.Errorf("%s: already built", b.typ.name)
	}
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	t := b.typ
	for pair := t.own.Oldest(); pair != nil; pair = pair.Next() {
		if err := pair.Value.BindClass(t); err != nil {
			return nil, fmt.Errorf("%s.%s: %w", t.name, pair.Key, err)
		}
	}

	t.traits = orderedmap.New[string, *trait.Trait]()
	for pair := t.parent.traits.Oldest(); pair != nil; pair = pair.Next() {
		t.traits.Set(pair.Key, pair.Value)
	}
	for pair := t.own.Oldest(); pair != nil; pair = pair.Next() {
		t.traits.Set(pair.Key, pair.Value)
	}
	for attr := range t.defaults {
		if _, ok := t.traits.Get(attr); !ok {
			return nil, fmt.Errorf("%s: default for %w: %q", t.name, ErrUnknownAttribute, attr)
		}
	}

	if t.registry == nil {
		t.registry = t.parent.registry
	}
	if t.logger == nil {
		t.logger = t.parent.logger
	}
	if t.hooks == nil {
		t.hooks = t.parent.hooks
	}
	t.registry.Register(t.name, t)
	b.built = true
	return t, nil
}

// MustBuild is like Build but panics on error. It is meant for package level
// declarations.
func (b *Builder) MustBuild() *Type {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}
