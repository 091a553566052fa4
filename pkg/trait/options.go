package trait

import "math"

// Option configures a trait at construction.
type Option func(*options)

type options struct {
	def       any
	hasDef    bool
	lazy      DefaultFunc
	meta      map[string]any
	allowNone bool
	minLen    int
	maxLen    int
	args      []any
	kw        map[string]any
	recipe    bool
	registry  *Registry
}

func collect(opts []Option) *options {
	o := &options{allowNone: true, maxLen: math.MaxInt}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Default sets the static default value. It is validated, and copied for
// container kinds, for every new instance.
func Default(v any) Option {
	return func(o *options) {
		o.def = v
		o.hasDef = true
	}
}

// Lazy sets a default computed on first read.
func Lazy(fn DefaultFunc) Option {
	return func(o *options) { o.lazy = fn }
}

// Meta stores a metadata entry on the trait.
func Meta(key string, value any) Option {
	return func(o *options) {
		if o.meta == nil {
			o.meta = make(map[string]any)
		}
		o.meta[key] = value
	}
}

// Transient excludes the attribute from serialization.
func Transient() Option { return Meta("transient", true) }

// AllowNone controls whether nil is an accepted value for reference, choice
// and container kinds. It defaults to true.
func AllowNone(allow bool) Option {
	return func(o *options) { o.allowNone = allow }
}

// MinLen sets the minimum length of a List.
func MinLen(n int) Option {
	return func(o *options) { o.minLen = n }
}

// MaxLen sets the maximum length of a List.
func MaxLen(n int) Option {
	return func(o *options) { o.maxLen = n }
}

// Args sets positional arguments used to construct a fresh default instance.
func Args(args ...any) Option {
	return func(o *options) {
		o.args = args
		o.recipe = true
	}
}

// Kw sets keyword arguments used to construct a fresh default instance.
func Kw(kw map[string]any) Option {
	return func(o *options) {
		o.kw = kw
		o.recipe = true
	}
}

// ResolveWith sets the registry used to resolve dotted class names.
func ResolveWith(r *Registry) Option {
	return func(o *options) { o.registry = r }
}
