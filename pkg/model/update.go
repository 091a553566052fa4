package model

import (
	"fmt"
	"maps"

	"github.com/kanzure/modelo/pkg/trait"
)

// Update applies data to the instance in place. Keys the type does not declare
// are skipped. Nested instances receiving a map are updated recursively, lists
// of instances are rebuilt from their maps, and dict values are merged into the
// current dict. Every other value is assigned as with Set.
//
// The first failure stops the update; attributes applied before it keep their
// new values. A dict merge checks its plain values before updating any nested
// instance, but nested instances updated before a failing one stay changed.
func (i *Instance) Update(data map[string]any) error {
	for pair := i.typ.traits.Oldest(); pair != nil; pair = pair.Next() {
		name, tr := pair.Key, pair.Value
		given, ok := data[name]
		if !ok {
			continue
		}
		v, err := i.merge(tr, given)
		if err != nil {
			return fmt.Errorf("update %s.%s: %w", i.typ.name, name, err)
		}
		if err := i.Set(name, v); err != nil {
			return fmt.Errorf("update %s.%s: %w", i.typ.name, name, err)
		}
	}
	for _, key := range sortedKeys(data) {
		if _, ok := i.typ.traits.Get(key); !ok {
			i.typ.logger.Debug("skipping undeclared attribute", "type", i.typ.name, "attr", key)
		}
	}
	return nil
}

// merge computes the value to assign for an incoming update value.
func (i *Instance) merge(tr *trait.Trait, given any) (any, error) {
	switch k := tr.Kind().(type) {
	case *trait.InstanceKind:
		data, ok := trait.Mapping(given)
		if !ok {
			return given, nil
		}
		current, err := i.Get(tr.Name())
		if err != nil {
			return nil, err
		}
		if nested, ok := current.(*Instance); ok && nested != nil {
			if err := nested.Update(data); err != nil {
				return nil, err
			}
			return nested, nil
		}
		return hydrate(tr, data)
	case *trait.ListKind:
		return hydrateItems(k.Elem(), given)
	case *trait.DictKind:
		data, ok := trait.Mapping(given)
		if !ok {
			return given, nil
		}
		current, err := i.Get(tr.Name())
		if err != nil {
			return nil, err
		}
		cur, _ := current.(map[string]any)
		merged := make(map[string]any, len(cur)+len(data))
		maps.Copy(merged, cur)

		// Plain values are checked before any nested instance changes.
		patches := make(map[string]map[string]any)
		for _, key := range sortedKeys(data) {
			v := data[key]
			if nested, ok := merged[key].(*Instance); ok && nested != nil {
				if patch, ok := trait.Mapping(v); ok {
					patches[key] = patch
					continue
				}
			}
			if k.Elem() != nil {
				hv, err := hydrate(k.Elem(), v)
				if err != nil {
					return nil, fmt.Errorf("key %q: %w", key, err)
				}
				if hv, err = k.Elem().Validate(i, hv); err != nil {
					return nil, fmt.Errorf("key %q: %w", key, err)
				}
				v = hv
			}
			merged[key] = v
		}
		for _, key := range sortedKeys(patches) {
			if err := merged[key].(*Instance).Update(patches[key]); err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
		}
		return merged, nil
	}
	return given, nil
}
