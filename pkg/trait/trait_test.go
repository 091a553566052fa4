package trait_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/kanzure/modelo/pkg/trait"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// record is a minimal trait.Owner.
type record struct {
	class trait.Class
	slots *trait.Slots
}

func newRecord() *record {
	return &record{class: trait.ClassOf[*record](), slots: trait.NewSlots()}
}

func (r *record) Class() trait.Class  { return r.class }
func (r *record) Slots() *trait.Slots { return r.slots }

// bound names t and binds it to the record class.
func bound(t *testing.T, name string, tr *trait.Trait) *trait.Trait {
	t.Helper()
	require.NoError(t, tr.BindName(name))
	require.NoError(t, tr.BindClass(trait.ClassOf[*record]()))
	return tr
}

func TestBind(t *testing.T) {
	tr := trait.Int()
	require.NoError(t, tr.BindName("x"))
	require.NoError(t, tr.BindName("x"))
	assert.ErrorIs(t, tr.BindName("y"), trait.ErrAlreadyBound)
	assert.Equal(t, "x", tr.Name())

	a, b := trait.ClassOf[*record](), trait.ClassOf[string]()
	require.NoError(t, tr.BindClass(a))
	require.NoError(t, tr.BindClass(a))
	assert.ErrorIs(t, tr.BindClass(b), trait.ErrAlreadyBound)
}

func TestLifecycle(t *testing.T) {
	r := newRecord()
	n := bound(t, "n", trait.Int(trait.Default(3)))

	_, err := n.Get(r)
	var lerr *trait.LookupError
	require.ErrorAs(t, err, &lerr)

	require.NoError(t, n.InstantiateDefault(r))
	v, err := n.Get(r)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	require.NoError(t, n.Set(r, int64(4)))
	v, _ = n.Get(r)
	assert.Equal(t, 4, v)

	assert.Error(t, n.Set(r, "five"))
	v, _ = n.Get(r)
	assert.Equal(t, 4, v)

	bad := bound(t, "bad", trait.Int(trait.Default("x")))
	assert.Error(t, bad.InstantiateDefault(r))
}

func TestLazy(t *testing.T) {
	r := newRecord()
	calls := 0
	n := bound(t, "n", trait.Float(trait.Lazy(func(owner trait.Owner) (any, error) {
		calls++
		return 2, nil
	})))

	require.NoError(t, n.InstantiateDefault(r))
	assert.True(t, r.Slots().Deferred("n"))
	assert.Zero(t, calls)

	v, err := n.Get(r)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
	_, _ = n.Get(r)
	assert.Equal(t, 1, calls)
	assert.True(t, r.Slots().Materialized("n"))
	assert.True(t, n.IsLazy())
}

func TestValidationError_Message(t *testing.T) {
	r := newRecord()
	n := bound(t, "count", trait.Int())

	err := n.Set(r, "many")
	var verr *trait.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "count", verr.Attr)
	assert.Equal(t, "an int", verr.Info)
	assert.Equal(t, "many", verr.Value)
	assert.Equal(t,
		`the "count" trait of a *trait_test.record instance must be an int, but a value of "many" (string) was specified`,
		err.Error())

	_, err = n.Validate(nil, 1.5)
	assert.EqualError(t, err, `the "count" trait must be an int, but a value of 1.5 (float64) was specified`)
}

// Kinds implementing several validation interfaces, to check which one wins.
type (
	validatorKind struct{ predicateKind }
	predicateKind struct{ coercerKind }
	coercerKind   struct{}
	plainKind     struct{}
)

func (plainKind) Info() string          { return "anything" }
func (plainKind) Default() (any, error) { return nil, nil }

func (coercerKind) Info() string                    { return "coerced" }
func (coercerKind) Default() (any, error)           { return nil, nil }
func (coercerKind) ValueFor(v any) (any, error)     { return "coerced", nil }
func (predicateKind) IsValidFor(v any) bool         { return v == "ok" }
func (validatorKind) Validate(t *trait.Trait, o trait.Owner, v any) (any, error) {
	return "validated", nil
}

func TestDispatchPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		kind  trait.Kind
		in    any
		want  any
		error bool
	}{
		{"validator first", validatorKind{}, "x", "validated", false},
		{"predicate accepts", predicateKind{}, "ok", "ok", false},
		{"predicate rejects", predicateKind{}, "x", nil, true},
		{"coercer", coercerKind{}, 1, "coerced", false},
		{"passthrough", plainKind{}, 1, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := trait.New(tt.kind).Validate(nil, tt.in)
			if tt.error {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMetadata(t *testing.T) {
	tr := trait.Int(trait.Meta("help", "a number"), trait.Transient())
	assert.Equal(t, "a number", tr.Metadata("help"))
	assert.True(t, tr.IsTransient())
	assert.Nil(t, tr.Metadata("missing"))

	plain := trait.Int()
	assert.False(t, plain.IsTransient())
	plain.SetMetadata("transient", false)
	assert.False(t, plain.IsTransient())
	plain.SetMetadata("transient", true)
	assert.True(t, plain.IsTransient())

	def, ok := trait.Int(trait.Default(5)).StaticDefault()
	assert.True(t, ok)
	assert.Equal(t, 5, def)
}

func TestRegistry(t *testing.T) {
	reg := trait.NewRegistry()
	reg.Register("pkg.Record", trait.ClassOf[*record]())
	reg.Register("pkg.Text", trait.ClassOf[string]())

	c, err := reg.Resolve("pkg.Record")
	require.NoError(t, err)
	assert.True(t, c.IsInstance(newRecord()))
	assert.Equal(t, []string{"pkg.Record", "pkg.Text"}, reg.Names())

	_, err = reg.Resolve("pkg.Missing")
	var ierr *trait.ImportError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, "pkg.Missing", ierr.Name)
}

type point struct {
	X int
	Y int
}

func TestClassOf(t *testing.T) {
	c := trait.ClassOf[*point]()
	assert.Equal(t, "*trait_test.point", c.Name())
	assert.True(t, c.IsInstance(&point{}))
	assert.False(t, c.IsInstance(point{}))
	assert.False(t, c.IsInstance(nil))

	v, err := c.Construct(nil, map[string]any{"X": 1, "Y": 2})
	require.NoError(t, err)
	assert.Equal(t, &point{X: 1, Y: 2}, v)

	_, err = c.Construct([]any{1}, nil)
	assert.Error(t, err)

	value, err := trait.ClassOf[point]().Construct(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, point{}, value)

	iface := trait.ClassOf[error]()
	assert.True(t, iface.IsInstance(errors.New("x")))
	_, err = iface.Construct(nil, nil)
	assert.Error(t, err)
}

func TestInstanceKind(t *testing.T) {
	r := newRecord()
	reg := trait.NewRegistry()
	reg.Register("geo.Point", trait.ClassOf[*point]())

	p := bound(t, "p", trait.Instance("geo.Point", trait.Kw(map[string]any{"X": 3}), trait.ResolveWith(reg)))
	require.NoError(t, p.InstantiateDefault(r))
	v, err := p.Get(r)
	require.NoError(t, err)
	assert.Equal(t, &point{X: 3}, v)

	assert.NoError(t, p.Set(r, &point{}))
	assert.Error(t, p.Set(r, point{}))
	assert.NoError(t, p.Set(r, nil))

	strict := bound(t, "strict", trait.Instance(trait.ClassOf[*point](), trait.AllowNone(false)))
	_, err = strict.Validate(nil, nil)
	assert.Error(t, err)
	assert.False(t, trait.Nullable(strict))
	assert.True(t, trait.Nullable(p))

	missing := bound(t, "missing", trait.Instance("geo.Nowhere", trait.ResolveWith(reg)))
	var ierr *trait.ImportError
	assert.ErrorAs(t, missing.InstantiateDefault(r), &ierr)
}

func TestKindName(t *testing.T) {
	tests := []struct {
		tr   *trait.Trait
		want string
	}{
		{trait.Any(), "any"},
		{trait.Integer(), "int"},
		{trait.CInt(), "cint"},
		{trait.String(), "unicode"},
		{trait.CaselessStrEnum([]any{"a"}), "caseless_enum"},
		{trait.Enum([]any{1}), "enum"},
		{trait.This(), "this"},
		{trait.SetOf(nil), "set"},
		{trait.CRegExp(), "regexp"},
		{trait.New(plainKind{}), "trait_test.plainKind"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, trait.KindName(tt.tr.Kind()))
		})
	}
}

func TestJSONNumber(t *testing.T) {
	i, err := trait.Int().Validate(nil, json.Number("12"))
	require.NoError(t, err)
	assert.Equal(t, 12, i)

	_, err = trait.Int().Validate(nil, json.Number("1.5"))
	assert.Error(t, err)

	f, err := trait.Float().Validate(nil, json.Number("1.5"))
	require.NoError(t, err)
	assert.Equal(t, 1.5, f)
}
