/*
Package observability turns model lifecycle hooks into Prometheus metrics and
structured log records.

	m := observability.NewMetrics(prometheus.NewRegistry())
	hooks := observability.Chain(m.Hooks(), observability.LogHooks(logger))
	animal := model.Define("zoo.Animal", model.WithHooks(hooks))
*/
package observability
