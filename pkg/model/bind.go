package model

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Decode copies the instance into target, a pointer to a struct or map, after
// flattening it with ToDict. Struct fields match attribute names
// case-insensitively or through `mapstructure` tags.
func (i *Instance) Decode(target any) error {
	d, err := i.ToDict()
	if err != nil {
		return err
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: false,
		ZeroFields:       true,
	})
	if err != nil {
		return fmt.Errorf("decode %s: %w", i.typ.name, err)
	}
	if err := dec.Decode(d); err != nil {
		return fmt.Errorf("decode %s: %w", i.typ.name, err)
	}
	return nil
}

// NewFrom creates an instance from a Go struct or map. src is converted to a
// map with mapstructure and passed to Create, so struct fields are named by
// their `mapstructure` tag, else by their Go name.
func (t *Type) NewFrom(src any) (*Instance, error) {
	if data, ok := src.(map[string]any); ok {
		return t.Create(data)
	}
	var data map[string]any
	if err := mapstructure.Decode(src, &data); err != nil {
		return nil, fmt.Errorf("%s: %w", t.name, err)
	}
	return t.Create(data)
}
