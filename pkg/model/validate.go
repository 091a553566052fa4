package model

import (
	"fmt"

	"github.com/kanzure/modelo/pkg/trait"
)

// Validate checks loose data against the type without keeping an instance and
// returns every failure as an *AggregateError. Keys are checked in sorted
// order; undeclared keys are failures. As with Create, nil is accepted for an
// attribute whose default is nil.
func (t *Type) Validate(data map[string]any) error {
	var errs []error
	for _, key := range sortedKeys(data) {
		tr, ok := t.traits.Get(key)
		if !ok {
			errs = append(errs, fmt.Errorf("%s: %w: %q", t.name, ErrUnknownAttribute, key))
			continue
		}
		if err := t.resolve(tr); err != nil {
			errs = append(errs, fmt.Errorf("%s.%s: %w", t.name, key, err))
			continue
		}
		if data[key] == nil && t.nilDefault(tr) {
			continue
		}
		v, err := hydrate(tr, data[key])
		if err != nil {
			errs = append(errs, fmt.Errorf("%s.%s: %w", t.name, key, err))
			continue
		}
		if _, err := tr.Validate(nil, v); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// resolve resolves the dotted class names of tr without an instance.
func (t *Type) resolve(tr *trait.Trait) error {
	reg := tr.Registry()
	if reg == nil {
		reg = t.registry
	}
	return tr.Resolve(reg)
}

// nilDefault reports whether a fresh instance holds nil for tr.
func (t *Type) nilDefault(tr *trait.Trait) bool {
	if tr.IsLazy() {
		return false
	}
	if _, ok := t.DefaultOverride(tr.Name(), tr.Class()); ok {
		return false
	}
	if def, ok := tr.StaticDefault(); ok {
		return def == nil
	}
	if k, ok := tr.Kind().(*trait.InstanceKind); ok {
		return !k.HasRecipe()
	}
	def, err := tr.Kind().Default()
	return err == nil && def == nil
}
