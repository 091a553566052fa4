package trait

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/mitchellh/mapstructure"
)

// Class is a type that values can be checked against and constructed from.
type Class interface {
	Name() string
	// IsInstance reports whether v is an instance of the class or a subclass.
	IsInstance(v any) bool
	// IsSubclass reports whether the class is c or derives from it.
	IsSubclass(c Class) bool
	// Construct builds a fresh instance.
	Construct(args []any, kw map[string]any) (any, error)
}

type goClass struct {
	typ reflect.Type
}

// ClassOf returns the class of the Go type T. Instances are values assignable
// to T; keyword arguments are decoded into a new T with mapstructure.
func ClassOf[T any]() Class {
	return goClass{typ: reflect.TypeOf((*T)(nil)).Elem()}
}

func (c goClass) Name() string { return c.typ.String() }

func (c goClass) IsInstance(v any) bool {
	return v != nil && reflect.TypeOf(v).AssignableTo(c.typ)
}

func (c goClass) IsSubclass(other Class) bool {
	o, ok := other.(goClass)
	return ok && c.typ.AssignableTo(o.typ)
}

func (c goClass) Construct(args []any, kw map[string]any) (any, error) {
	if len(args) > 0 {
		return nil, fmt.Errorf("%s: positional arguments are not supported", c.Name())
	}
	typ, ptr := c.typ, false
	if typ.Kind() == reflect.Pointer {
		typ, ptr = typ.Elem(), true
	}
	if typ.Kind() == reflect.Interface {
		return nil, fmt.Errorf("%s: cannot construct an interface", c.Name())
	}
	v := reflect.New(typ)
	if len(kw) > 0 {
		if err := mapstructure.Decode(kw, v.Interface()); err != nil {
			return nil, fmt.Errorf("%s: %w", c.Name(), err)
		}
	}
	if ptr {
		return v.Interface(), nil
	}
	return v.Elem().Interface(), nil
}

// Registry resolves dotted names to classes.
type Registry struct {
	mu      sync.RWMutex
	classes map[string]Class
}

// DefaultRegistry is used by traits whose owner provides no registry.
var DefaultRegistry = NewRegistry()

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		classes: make(map[string]Class),
	}
}

// Register adds a class to the registry.
// If a class with the same name exists, it is overwritten.
func (r *Registry) Register(name string, c Class) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classes[name] = c
}

// Resolve looks up a class by its dotted name.
func (r *Registry) Resolve(name string) (Class, error) {
	r.mu.RLock()
	c, ok := r.classes[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &ImportError{Name: name}
	}
	return c, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
