/*
Package modelo declares record types whose attributes are typed traits.

Each attribute of a type is backed by a trait: a validator or coercer that
checks every assignment, supplies defaults and records metadata. Types form an
inheritance tree rooted at model.Base; instances serialize to plain maps and
can be rebuilt or updated from them.

# Packages

  - pkg/trait: trait kinds (scalars, casting scalars, enums, references, containers).
  - pkg/model: types, instances, serialization, update, copy and OpenAPI export.
  - pkg/loader: types declared in YAML or JSON schema files.
  - pkg/observability: Prometheus counters and log records fed by model hooks.

# Usage

	limb := model.Define("zoo.Limb").
		Attr("extremities", trait.Int(trait.Default(5))).
		MustBuild()
	animal := model.Define("zoo.Animal").
		Attr("name", trait.String).
		Attr("legs", trait.List(trait.Instance("zoo.Limb"))).
		MustBuild()

	a, err := animal.Create(map[string]any{
		"name": "octopus",
		"legs": []any{map[string]any{"extremities": 2}},
	})
	if err != nil {
		log.Fatal(err)
	}
	d, _ := a.ToDict()

The modelo command (cmd/modelo) exposes the same operations over schema files.
*/
package modelo
