package model_test

import (
	"testing"

	"github.com/kanzure/modelo/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type limbView struct {
	Extremities int `mapstructure:"extremities"`
}

type animalView struct {
	Name string     `mapstructure:"name"`
	Legs []limbView `mapstructure:"legs"`
	Best *limbView  `mapstructure:"best"`
}

func TestDecode(t *testing.T) {
	limb, animal := zoo(t)
	a := animal.MustNew(
		"name", "rex",
		"legs", []any{limb.MustNew("extremities", 1), limb.MustNew("extremities", 2)},
	)

	var view animalView
	require.NoError(t, a.Decode(&view))
	assert.Equal(t, animalView{
		Name: "rex",
		Legs: []limbView{{Extremities: 1}, {Extremities: 2}},
	}, view)

	var generic map[string]any
	require.NoError(t, a.Decode(&generic))
	assert.Equal(t, "rex", generic["name"])
}

func TestNewFrom(t *testing.T) {
	limb, _ := zoo(t)

	inst, err := limb.NewFrom(limbView{Extremities: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, inst.MustGet("extremities"))

	inst, err = limb.NewFrom(map[string]any{"extremities": 6})
	require.NoError(t, err)
	assert.Equal(t, 6, inst.MustGet("extremities"))

	_, err = limb.NewFrom(struct{ Fingers int }{5})
	assert.ErrorIs(t, err, model.ErrUnknownAttribute)
}
