package loader

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/kanzure/modelo/pkg/model"
	"github.com/kanzure/modelo/pkg/trait"
	"gopkg.in/yaml.v3"
)

// typeDecl is one entry of a schema file. Attrs stays a raw node so the
// declaration order survives decoding.
type typeDecl struct {
	Name    string    `yaml:"name"`
	Extends string    `yaml:"extends"`
	Attrs   yaml.Node `yaml:"attrs"`
}

type document struct {
	Types []typeDecl `yaml:"types"`
}

// Loader builds model types from schema files.
type Loader struct {
	registry *trait.Registry
	logger   *slog.Logger
	hooks    *model.Hooks
}

// Option configures a Loader.
type Option func(*Loader)

// WithRegistry registers loaded types in r instead of a fresh registry.
func WithRegistry(r *trait.Registry) Option {
	return func(l *Loader) {
		l.registry = r
	}
}

// WithLogger sets the logger of every loaded type.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithHooks installs h on every loaded type.
func WithHooks(h model.Hooks) Option {
	return func(l *Loader) {
		l.hooks = &h
	}
}

// New creates a Loader. Without WithRegistry each Loader owns a new registry.
func New(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	if l.registry == nil {
		l.registry = trait.NewRegistry()
	}
	return l
}

// Registry returns the registry loaded types are registered in.
func (l *Loader) Registry() *trait.Registry { return l.registry }

// Load reads the schema file at path.
func Load(path string, opts ...Option) (*Schema, error) {
	return New(opts...).Load(path)
}

// Load reads the schema file at path. JSON files are read with the YAML
// decoder, which accepts them and keeps key order.
func (l *Loader) Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	s, err := l.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse builds the types declared in data. Types may extend types declared
// later in the same document or already present in the registry.
func (l *Loader) Parse(data []byte) (*Schema, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	if len(doc.Types) == 0 {
		return nil, fmt.Errorf("schema declares no types")
	}

	decls := make(map[string]*typeDecl, len(doc.Types))
	for i := range doc.Types {
		d := &doc.Types[i]
		if d.Name == "" {
			return nil, fmt.Errorf("type %d: missing name", i)
		}
		if _, dup := decls[d.Name]; dup {
			return nil, fmt.Errorf("type %s: declared twice", d.Name)
		}
		decls[d.Name] = d
	}

	b := &build{
		loader: l,
		decls:  decls,
		done:   make(map[string]*model.Type, len(decls)),
		active: make(map[string]bool),
	}
	s := &Schema{registry: l.registry, byName: make(map[string]*model.Type, len(decls))}
	for _, d := range doc.Types {
		t, err := b.typ(d.Name)
		if err != nil {
			return nil, err
		}
		s.types = append(s.types, t)
		s.byName[d.Name] = t
	}
	return s, nil
}

type build struct {
	loader *Loader
	decls  map[string]*typeDecl
	done   map[string]*model.Type
	active map[string]bool
}

func (b *build) typ(name string) (*model.Type, error) {
	if t, ok := b.done[name]; ok {
		return t, nil
	}
	d := b.decls[name]
	if b.active[name] {
		return nil, fmt.Errorf("type %s: extends cycle", name)
	}
	b.active[name] = true
	defer delete(b.active, name)

	parent := model.Base
	if d.Extends != "" {
		p, err := b.parent(d.Extends)
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", name, err)
		}
		parent = p
	}

	bld := model.Define(name, b.loader.typeOptions()...).Extends(parent)
	if err := declareAttrs(bld, &d.Attrs); err != nil {
		return nil, fmt.Errorf("type %s: %w", name, err)
	}
	t, err := bld.Build()
	if err != nil {
		return nil, err
	}
	b.done[name] = t
	return t, nil
}

func (b *build) parent(name string) (*model.Type, error) {
	if _, ok := b.decls[name]; ok {
		return b.typ(name)
	}
	c, err := b.loader.registry.Resolve(name)
	if err != nil {
		return nil, err
	}
	t, ok := c.(*model.Type)
	if !ok {
		return nil, fmt.Errorf("cannot extend %s: not a model type", name)
	}
	return t, nil
}

func (l *Loader) typeOptions() []model.Option {
	opts := []model.Option{model.WithRegistry(l.registry)}
	if l.logger != nil {
		opts = append(opts, model.WithLogger(l.logger))
	}
	if l.hooks != nil {
		opts = append(opts, model.WithHooks(*l.hooks))
	}
	return opts
}

func declareAttrs(bld *model.Builder, node *yaml.Node) error {
	switch node.Kind {
	case 0:
		return nil
	case yaml.MappingNode:
	default:
		return fmt.Errorf("line %d: attrs must be a map", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		var raw any
		if err := val.Decode(&raw); err != nil {
			return fmt.Errorf("field %s: %w", key.Value, err)
		}
		spec, err := decodeSpec(raw)
		if err != nil {
			return fmt.Errorf("field %s: %w", key.Value, err)
		}
		tr, err := spec.Trait()
		if err != nil {
			return fmt.Errorf("field %s: %w", key.Value, err)
		}
		bld.Attr(key.Value, tr)
	}
	return nil
}

// Schema holds the types of one schema file in declaration order.
type Schema struct {
	registry *trait.Registry
	types    []*model.Type
	byName   map[string]*model.Type
}

// Types returns the loaded types in declaration order.
func (s *Schema) Types() []*model.Type { return s.types }

// Type looks up a loaded type by name.
func (s *Schema) Type(name string) (*model.Type, bool) {
	t, ok := s.byName[name]
	return t, ok
}

// Registry returns the registry the types are registered in.
func (s *Schema) Registry() *trait.Registry { return s.registry }

// Lookup finds a type by name. An empty name selects the last declared type.
func (s *Schema) Lookup(name string) (*model.Type, error) {
	if name == "" {
		return s.types[len(s.types)-1], nil
	}
	if t, ok := s.byName[name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("unknown type %q", name)
}
