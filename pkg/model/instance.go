package model

import (
	"fmt"

	"github.com/kanzure/modelo/pkg/trait"
)

// Instance is a record holding one value per attribute of its type.
// It is not safe for concurrent use.
type Instance struct {
	typ   *Type
	slots *trait.Slots
}

func (t *Type) instantiate() (*Instance, error) {
	inst := &Instance{typ: t, slots: trait.NewSlots()}
	for pair := t.traits.Oldest(); pair != nil; pair = pair.Next() {
		if err := pair.Value.InstantiateDefault(inst); err != nil {
			return nil, fmt.Errorf("%s: %w", t.name, err)
		}
	}
	return inst, nil
}

// New creates an instance with every default in place, then assigns the given
// name/value pairs in order.
//
//	limb, err := Limb.New("extremities", 5)
func (t *Type) New(kv ...any) (*Instance, error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("%s: odd number of name/value arguments", t.name)
	}
	inst, err := t.instantiate()
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(kv); i += 2 {
		name, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("%s: attribute name must be a string, got %T", t.name, kv[i])
		}
		if err := inst.Set(name, kv[i+1]); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// MustNew is like New but panics on error.
func (t *Type) MustNew(kv ...any) *Instance {
	inst, err := t.New(kv...)
	if err != nil {
		panic(err)
	}
	return inst
}

// Create builds an instance from loose data, applying keys in sorted order. A
// nil map yields an instance holding only defaults. Mappings given where an
// instance of a model type is expected are built into nested instances first.
// A nil value for an attribute still holding a nil default is left unset, so
// the output of ToDict always builds again.
func (t *Type) Create(data map[string]any) (*Instance, error) {
	inst, err := t.instantiate()
	if err != nil {
		return nil, err
	}
	for _, name := range sortedKeys(data) {
		tr, ok := t.traits.Get(name)
		if !ok {
			return nil, fmt.Errorf("%s: %w: %q", t.name, ErrUnknownAttribute, name)
		}
		if data[name] == nil {
			if cur, ok := inst.slots.Value(name); ok && cur == nil {
				continue
			}
		}
		v, err := hydrate(tr, data[name])
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", t.name, name, err)
		}
		if err := inst.Set(name, v); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// hydrate replaces mappings standing for instances of model types with
// instances built by Create. Other values pass through for validation.
func hydrate(tr *trait.Trait, v any) (any, error) {
	switch k := tr.Kind().(type) {
	case *trait.InstanceKind:
		data, ok := trait.Mapping(v)
		target := modelType(k.Target())
		if !ok || target == nil {
			return v, nil
		}
		inst, err := target.Create(data)
		if err != nil {
			return nil, err
		}
		return inst, nil
	case *trait.ListKind:
		return hydrateItems(k.Elem(), v)
	case *trait.TupleKind:
		items, ok := trait.Sequence(v)
		slots := k.Slots()
		if !ok || len(items) != len(slots) {
			return v, nil
		}
		out := make([]any, len(items))
		for i, item := range items {
			hv, err := hydrate(slots[i], item)
			if err != nil {
				return nil, err
			}
			out[i] = hv
		}
		return out, nil
	case *trait.DictKind:
		data, ok := trait.Mapping(v)
		if !ok || k.Elem() == nil {
			return v, nil
		}
		out := make(map[string]any, len(data))
		for key, item := range data {
			hv, err := hydrate(k.Elem(), item)
			if err != nil {
				return nil, err
			}
			out[key] = hv
		}
		return out, nil
	}
	return v, nil
}

func hydrateItems(elem *trait.Trait, v any) (any, error) {
	items, ok := trait.Sequence(v)
	if !ok || elem == nil {
		return v, nil
	}
	out := make([]any, len(items))
	for i, item := range items {
		hv, err := hydrate(elem, item)
		if err != nil {
			return nil, err
		}
		out[i] = hv
	}
	return out, nil
}

func modelType(c trait.Class) *Type {
	t, _ := c.(*Type)
	return t
}

// Type returns the type of the instance.
func (i *Instance) Type() *Type { return i.typ }

// Class implements trait.Owner.
func (i *Instance) Class() trait.Class { return i.typ }

// Slots implements trait.Owner.
func (i *Instance) Slots() *trait.Slots { return i.slots }

// Traits returns every attribute of the instance's type keyed by name.
func (i *Instance) Traits() map[string]*trait.Trait { return i.typ.ClassTraits() }

func (i *Instance) lookup(name string) (*trait.Trait, error) {
	tr, ok := i.typ.traits.Get(name)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", i.typ.name, ErrUnknownAttribute, name)
	}
	return tr, nil
}

// Get returns the value of the attribute name, computing a lazy default on
// first read.
func (i *Instance) Get(name string) (any, error) {
	tr, err := i.lookup(name)
	if err != nil {
		return nil, err
	}
	lazy := i.slots.Deferred(name)
	v, err := tr.Get(i)
	if err != nil {
		return nil, err
	}
	if lazy {
		i.typ.logger.Debug("materialized lazy default", "type", i.typ.name, "attr", name)
		i.typ.hooks.materialized(i.typ.name, name)
	}
	return v, nil
}

// MustGet is like Get but panics on error.
func (i *Instance) MustGet(name string) any {
	v, err := i.Get(name)
	if err != nil {
		panic(err)
	}
	return v
}

// Set validates v and assigns it to the attribute name. A rejected value
// leaves the instance unchanged.
func (i *Instance) Set(name string, v any) error {
	tr, err := i.lookup(name)
	if err != nil {
		return err
	}
	err = tr.Set(i, v)
	i.typ.hooks.assigned(i.typ.name, name, err)
	if err != nil {
		i.typ.logger.Debug("rejected value", "type", i.typ.name, "attr", name, "error", err)
	}
	return err
}

// Value returns the attribute name of inst as a T.
func Value[T any](inst *Instance, name string) (T, error) {
	var zero T
	v, err := inst.Get(name)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%s.%s: value is %T, not %T", inst.typ.name, name, v, zero)
	}
	return out, nil
}

func (i *Instance) String() string {
	return fmt.Sprintf("<%s instance>", i.typ.name)
}
