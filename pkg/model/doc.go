/*
Package model declares record types made of typed attributes and manages their
instances.

A Type is declared with Define and a chain of Attr calls. Each attribute is a
*trait.Trait that validates every assignment:

	var Limb = model.Define("zoo.Limb").
		Attr("extremities", trait.Int).
		MustBuild()

	var Animal = model.Define("zoo.Animal").
		Attr("name", trait.String).
		Attr("legs", trait.List(trait.Instance("zoo.Limb"), trait.MaxLen(4))).
		MustBuild()

Instances come from New (strict name/value pairs), Create (loose data such as
decoded JSON; nested maps become nested instances) or NewFrom (a Go struct).
Every attribute holds its default from construction on; lazy defaults run on
first read.

	rex, err := Animal.Create(map[string]any{
		"name": "rex",
		"legs": []any{map[string]any{"extremities": 5}},
	})

ToDict flattens an instance back into plain data, and Update applies a partial
document in place. Type.Validate checks loose data without building anything
and reports every failure at once.
*/
package model
