package observability_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/kanzure/modelo/internal/logging"
	"github.com/kanzure/modelo/pkg/model"
	"github.com/kanzure/modelo/pkg/observability"
	"github.com/kanzure/modelo/pkg/trait"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counter(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	var total float64
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	point := model.Define("geo.Point",
		model.WithRegistry(trait.NewRegistry()),
		model.WithHooks(m.Hooks()),
	).
		Attr("x", trait.Int).
		Attr("y", trait.Int).
		DefaultFunc("y", func(*model.Instance) (any, error) { return 3, nil }).
		MustBuild()

	p := point.MustNew("x", 1)
	require.NoError(t, p.Set("x", 2))
	assert.Error(t, p.Set("x", "two"))
	assert.Equal(t, 3, p.MustGet("y"))
	assert.Equal(t, 3, p.MustGet("y"))

	assert.Equal(t, 2.0, counter(t, reg, "modelo_assignments_total"))
	assert.Equal(t, 1.0, counter(t, reg, "modelo_rejections_total"))
	assert.Equal(t, 1.0, counter(t, reg, "modelo_materializations_total"))

	var buf bytes.Buffer
	require.NoError(t, m.WriteText(&buf))
	assert.Contains(t, buf.String(), `modelo_assignments_total{attr="x",type="geo.Point"} 2`)
}

func TestChain_LogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriter(&buf, slog.LevelDebug)

	var seen []model.Event
	hooks := observability.Chain(
		model.Hooks{OnAssign: func(e model.Event) { seen = append(seen, e) }},
		observability.LogHooks(logger),
	)
	typ := model.Define("Flag",
		model.WithRegistry(trait.NewRegistry()),
		model.WithHooks(hooks),
	).Attr("on", trait.Bool).MustBuild()

	inst := typ.MustNew()
	require.NoError(t, inst.Set("on", true))
	assert.Error(t, inst.Set("on", 1))

	require.Len(t, seen, 2)
	assert.NoError(t, seen[0].Err)
	assert.Error(t, seen[1].Err)
	assert.Contains(t, buf.String(), "level=WARN msg=\"assignment rejected\" type=Flag attr=on err=")
	assert.Contains(t, buf.String(), "msg=assigned type=Flag attr=on")
}
