package observability

import (
	"io"

	"github.com/kanzure/modelo/pkg/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Metrics counts attribute operations per type and attribute.
type Metrics struct {
	Assignments      *prometheus.CounterVec
	Rejections       *prometheus.CounterVec
	Materializations *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewMetrics registers the counters in reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Assignments: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "modelo",
				Name:      "assignments_total",
				Help:      "Total number of accepted attribute assignments",
			},
			[]string{"type", "attr"},
		),
		Rejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "modelo",
				Name:      "rejections_total",
				Help:      "Total number of assignments rejected by validation",
			},
			[]string{"type", "attr"},
		),
		Materializations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "modelo",
				Name:      "materializations_total",
				Help:      "Total number of lazy defaults computed on first read",
			},
			[]string{"type", "attr"},
		),
		gatherer: reg,
	}
}

// Hooks returns model hooks feeding the counters.
func (m *Metrics) Hooks() model.Hooks {
	return model.Hooks{
		OnAssign: func(e model.Event) {
			if e.Err != nil {
				m.Rejections.WithLabelValues(e.Type, e.Attr).Inc()
				return
			}
			m.Assignments.WithLabelValues(e.Type, e.Attr).Inc()
		},
		OnMaterialize: func(e model.Event) {
			m.Materializations.WithLabelValues(e.Type, e.Attr).Inc()
		},
	}
}

// WriteText writes every gathered metric family in the Prometheus text
// format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.gatherer.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
