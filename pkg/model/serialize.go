package model

import (
	"encoding/json"
	"fmt"
)

// State returns the non-transient attribute values, materializing lazy
// defaults. Values are not copied.
func (i *Instance) State() (map[string]any, error) {
	state := make(map[string]any, i.typ.traits.Len())
	for pair := i.typ.traits.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.IsTransient() {
			continue
		}
		v, err := i.Get(pair.Key)
		if err != nil {
			return nil, err
		}
		state[pair.Key] = v
	}
	return state, nil
}

// ToDict returns the state with nested instances flattened: instance values,
// and instances held directly in list, tuple or dict values, become maps.
// Sets are left as they are.
func (i *Instance) ToDict() (map[string]any, error) {
	return i.toDict(make(map[*Instance]bool))
}

func (i *Instance) toDict(visiting map[*Instance]bool) (map[string]any, error) {
	if visiting[i] {
		return nil, fmt.Errorf("%w: %s", ErrCycle, i.typ.name)
	}
	visiting[i] = true
	defer delete(visiting, i)

	state, err := i.State()
	if err != nil {
		return nil, err
	}
	for name, v := range state {
		fv, err := flatten(v, visiting)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", i.typ.name, name, err)
		}
		state[name] = fv
	}
	return state, nil
}

func flatten(v any, visiting map[*Instance]bool) (any, error) {
	switch x := v.(type) {
	case *Instance:
		if x == nil {
			return nil, nil
		}
		return x.toDict(visiting)
	case []any:
		out := make([]any, len(x))
		for idx, item := range x {
			fv, err := flattenItem(item, visiting)
			if err != nil {
				return nil, err
			}
			out[idx] = fv
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(x))
		for key, item := range x {
			fv, err := flattenItem(item, visiting)
			if err != nil {
				return nil, err
			}
			out[key] = fv
		}
		return out, nil
	}
	return v, nil
}

func flattenItem(item any, visiting map[*Instance]bool) (any, error) {
	if inst, ok := item.(*Instance); ok && inst != nil {
		return inst.toDict(visiting)
	}
	return item, nil
}

// MarshalJSON encodes ToDict.
func (i *Instance) MarshalJSON() ([]byte, error) {
	d, err := i.ToDict()
	if err != nil {
		return nil, err
	}
	return json.Marshal(d)
}
