package loader

import (
	"fmt"
	"sort"

	"github.com/kanzure/modelo/pkg/trait"
	"github.com/mitchellh/mapstructure"
)

// AttrSpec is the long form of an attribute declaration. Keys that are not
// fields become trait metadata.
type AttrSpec struct {
	Kind      string         `mapstructure:"kind"`
	Default   any            `mapstructure:"default"`
	Values    []any          `mapstructure:"values"`
	Class     string         `mapstructure:"class"`
	Of        any            `mapstructure:"of"`
	Slots     []any          `mapstructure:"slots"`
	MinLen    *int           `mapstructure:"min_len"`
	MaxLen    *int           `mapstructure:"max_len"`
	AllowNone *bool          `mapstructure:"allow_none"`
	Args      []any          `mapstructure:"args"`
	Kw        map[string]any `mapstructure:"kw"`
	Transient bool           `mapstructure:"transient"`
	Meta      map[string]any `mapstructure:",remain"`
}

// decodeSpec reads an attribute declaration: a kind string or a map.
func decodeSpec(raw any) (*AttrSpec, error) {
	switch v := raw.(type) {
	case string:
		return parseKind(v)
	case map[string]any:
		var spec AttrSpec
		if err := mapstructure.Decode(v, &spec); err != nil {
			return nil, err
		}
		if spec.Kind == "" {
			return nil, fmt.Errorf("missing kind")
		}
		return &spec, nil
	case nil:
		return nil, fmt.Errorf("empty declaration")
	}
	return nil, fmt.Errorf("declaration must be a kind name or a map, got %T", raw)
}

func (s *AttrSpec) options() []trait.Option {
	var opts []trait.Option
	if s.Default != nil {
		opts = append(opts, trait.Default(s.Default))
	}
	if s.AllowNone != nil {
		opts = append(opts, trait.AllowNone(*s.AllowNone))
	}
	if s.MinLen != nil {
		opts = append(opts, trait.MinLen(*s.MinLen))
	}
	if s.MaxLen != nil {
		opts = append(opts, trait.MaxLen(*s.MaxLen))
	}
	if len(s.Args) > 0 {
		opts = append(opts, trait.Args(s.Args...))
	}
	if s.Kw != nil {
		opts = append(opts, trait.Kw(s.Kw))
	}
	if s.Transient {
		opts = append(opts, trait.Transient())
	}
	keys := make([]string, 0, len(s.Meta))
	for k := range s.Meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		opts = append(opts, trait.Meta(k, s.Meta[k]))
	}
	return opts
}

// Trait builds the trait described by s. Class names stay dotted names and
// are resolved when the first instance is built.
func (s *AttrSpec) Trait() (*trait.Trait, error) {
	opts := s.options()
	switch s.Kind {
	case "enum", "caseless_enum":
		if len(s.Values) == 0 {
			return nil, fmt.Errorf("%s needs values", s.Kind)
		}
		if s.Kind == "enum" {
			return trait.Enum(s.Values, opts...), nil
		}
		return trait.CaselessStrEnum(s.Values, opts...), nil
	case "instance":
		if s.Class == "" {
			return nil, fmt.Errorf("instance needs a class")
		}
		return trait.Instance(s.Class, opts...), nil
	case "type":
		var class any
		if s.Class != "" {
			class = s.Class
		}
		return trait.Type(class, opts...), nil
	case "list", "set", "dict":
		elem, err := elementTrait(s.Of)
		if err != nil {
			return nil, err
		}
		switch s.Kind {
		case "list":
			return trait.List(elem, opts...), nil
		case "set":
			return trait.SetOf(elem, opts...), nil
		}
		return trait.Dict(elem, opts...), nil
	case "tuple":
		slots := make([]*trait.Trait, len(s.Slots))
		for i, raw := range s.Slots {
			slot, err := elementTrait(raw)
			if err != nil {
				return nil, fmt.Errorf("slot %d: %w", i, err)
			}
			slots[i] = slot
		}
		return trait.Tuple(slots, opts...), nil
	}
	ctor, ok := scalars[s.Kind]
	if !ok {
		return nil, fmt.Errorf("unsupported kind: %s", s.Kind)
	}
	return ctor(opts...), nil
}

func elementTrait(raw any) (*trait.Trait, error) {
	if raw == nil {
		return nil, nil
	}
	spec, err := decodeSpec(raw)
	if err != nil {
		return nil, fmt.Errorf("element: %w", err)
	}
	return spec.Trait()
}
