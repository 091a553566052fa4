package model_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/kanzure/modelo/internal/logging"
	"github.com/kanzure/modelo/pkg/model"
	"github.com/kanzure/modelo/pkg/trait"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTrip converts data to what a JSON client would send.
func roundTrip(t *testing.T, v any) any {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	var out any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestOpenAPISchema(t *testing.T) {
	limb, animal := zoo(t)

	s := animal.OpenAPISchema()
	assert.Equal(t, "zoo.Animal", s.Title)
	require.Contains(t, s.Properties, "legs")
	assert.True(t, s.Properties["legs"].Value.Type.Is("array"))
	assert.Equal(t, "#/components/schemas/zoo.Limb", s.Properties["legs"].Value.Items.Ref)
	assert.Equal(t, "#/components/schemas/zoo.Limb", s.Properties["best"].Ref)
	assert.True(t, s.Properties["name"].Value.Type.Is("string"))

	components := model.Components(limb, animal)
	assert.Contains(t, components, "zoo.Limb")
	assert.Contains(t, components, "zoo.Animal")
}

func TestOpenAPISchema_VisitJSON(t *testing.T) {
	typ := model.Define("Survey").
		Attr("score", trait.Int).
		Attr("ratio", trait.Float).
		Attr("answers", trait.List(trait.Unicode(), trait.MinLen(1), trait.MaxLen(2), trait.Default([]any{"yes"}))).
		Attr("color", trait.Enum([]any{"red", "blue"}, trait.Default("red"))).
		Attr("secret", trait.Unicode(trait.Transient())).
		MustBuild()
	s := typ.OpenAPISchema()
	assert.NotContains(t, s.Properties, "secret")

	inst := typ.MustNew("score", 3, "ratio", 0.5)
	assert.NoError(t, s.VisitJSON(roundTrip(t, inst)))

	require.NoError(t, inst.Set("answers", []any{"a", "b"}))
	assert.NoError(t, s.VisitJSON(roundTrip(t, inst)))

	bad := map[string]any{"score": 1.5, "answers": []any{"a", "b", "c"}, "color": "green"}
	assert.Error(t, s.VisitJSON(roundTrip(t, bad)))
}

func TestOpenAPISchema_Identifiers(t *testing.T) {
	typ := model.Define("Names").
		Attr("ident", trait.ObjectName).
		Attr("dotted", trait.DottedObjectName).
		MustBuild()
	s := typ.OpenAPISchema()

	inst := typ.MustNew("ident", "名前_1", "dotted", "paquete.módulo.Ñandú")
	d, err := inst.ToDict()
	require.NoError(t, err)
	assert.NoError(t, s.VisitJSON(roundTrip(t, d)))

	tests := []struct {
		name string
		data map[string]any
	}{
		{"Leading Digit", map[string]any{"ident": "1abc", "dotted": "a.b"}},
		{"Empty Segment", map[string]any{"ident": "abc", "dotted": "a..b"}},
		{"Hyphen", map[string]any{"ident": "a-b", "dotted": "a.b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, s.VisitJSON(roundTrip(t, tt.data)))
		})
	}
}

func TestOpenAPISchema_LogsUnresolved(t *testing.T) {
	var buf bytes.Buffer
	typ := model.Define("Orphan",
		model.WithRegistry(trait.NewRegistry()),
		model.WithLogger(logging.NewWriter(&buf, slog.LevelDebug)),
	).
		Attr("parent", trait.Instance("nowhere.Parent")).
		MustBuild()

	s := typ.OpenAPISchema()
	require.Contains(t, s.Properties, "parent")
	assert.True(t, s.Properties["parent"].Value.Type.Is("object"))
	assert.Contains(t, buf.String(), "unresolved reference in schema")
	assert.Contains(t, buf.String(), "attr=parent")
}
