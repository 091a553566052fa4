package trait_test

import (
	"encoding/json"
	"testing"

	"github.com/kanzure/modelo/pkg/trait"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	tr := bound(t, "numbers", trait.List(trait.Int(), trait.MinLen(2), trait.MaxLen(4)))
	assert.Equal(t, "a list of an int or nil", tr.Info())

	got, err := tr.Validate(nil, []int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2}, got)

	got, err = tr.Validate(nil, [3]int64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, 3}, got)

	_, err = tr.Validate(nil, []any{1})
	var verr *trait.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "of length 2 <= L <= 4", verr.Info)

	_, err = tr.Validate(nil, []any{1, "two"})
	var eerr *trait.ElementError
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, "numbers", eerr.Attr)
	assert.Equal(t, "two", eerr.Element)
	require.ErrorAs(t, eerr.Err, &verr)
	assert.Equal(t, "element", verr.Attr)

	_, err = tr.Validate(nil, "ab")
	assert.Error(t, err)
	_, err = tr.Validate(nil, []byte("ab"))
	assert.Error(t, err)

	got, err = tr.Validate(nil, nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestList_Copies(t *testing.T) {
	tr := trait.List(nil)
	in := []any{1, 2}

	got, err := tr.Validate(nil, in)
	require.NoError(t, err)
	in[0] = 9
	assert.Equal(t, []any{1, 2}, got)
}

func TestSet(t *testing.T) {
	tr := bound(t, "tags", trait.SetOf(trait.Unicode()))

	got, err := tr.Validate(nil, []any{"a", "b", "a"})
	require.NoError(t, err)
	s := got.(trait.Set)
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("a"))
	assert.Equal(t, []any{"a", "b"}, s.Items())

	got, err = tr.Validate(nil, trait.NewSet("x"))
	require.NoError(t, err)
	assert.Equal(t, trait.NewSet("x"), got)

	_, err = tr.Validate(nil, []any{"a", 1})
	assert.Error(t, err)

	_, err = trait.SetOf(nil).Validate(nil, []any{[]any{1}})
	var eerr *trait.ElementError
	assert.ErrorAs(t, err, &eerr)

	raw, err := json.Marshal(trait.NewSet(3, 1, 2))
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2,3]`, string(raw))
}

func TestTuple(t *testing.T) {
	tr := bound(t, "pair", trait.Tuple([]*trait.Trait{trait.Unicode(), trait.Int()}))
	assert.Equal(t, "a tuple of 2 elements", tr.Info())

	got, err := tr.Validate(nil, []any{"a", 1})
	require.NoError(t, err)
	assert.Equal(t, []any{"a", 1}, got)

	_, err = tr.Validate(nil, []any{"a"})
	assert.Error(t, err)

	_, err = tr.Validate(nil, []any{1, "a"})
	var eerr *trait.ElementError
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, 1, eerr.Element)

	free := trait.Tuple(nil)
	got, err = free.Validate(nil, []string{"x", "y", "z"})
	require.NoError(t, err)
	assert.Equal(t, []any{"x", "y", "z"}, got)
}

func TestDict(t *testing.T) {
	tr := bound(t, "scores", trait.Dict(trait.Float()))

	got, err := tr.Validate(nil, map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1.0}, got)

	_, err = tr.Validate(nil, map[int]any{1: 1.0})
	assert.ErrorContains(t, err, "keys must be strings")

	_, err = tr.Validate(nil, map[string]any{"a": "high"})
	var eerr *trait.ElementError
	assert.ErrorAs(t, err, &eerr)

	_, err = tr.Validate(nil, []any{1})
	assert.Error(t, err)

	in := map[string]any{"k": 1.0}
	got, err = trait.Dict(nil).Validate(nil, in)
	require.NoError(t, err)
	in["k"] = 2.0
	assert.Equal(t, map[string]any{"k": 1.0}, got)
}

func TestContainerDefaults_Fresh(t *testing.T) {
	tr := bound(t, "items", trait.List(nil, trait.Default([]any{1})))
	a, b := newRecord(), newRecord()
	require.NoError(t, tr.InstantiateDefault(a))
	require.NoError(t, tr.InstantiateDefault(b))

	va, _ := tr.Get(a)
	vb, _ := tr.Get(b)
	va.([]any)[0] = 2
	assert.Equal(t, []any{1}, vb)
}
