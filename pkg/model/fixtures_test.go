package model_test

import (
	"testing"

	"github.com/kanzure/modelo/pkg/model"
	"github.com/kanzure/modelo/pkg/trait"
)

// zoo declares a limb type and an animal type referring to it by dotted name,
// in a registry of their own.
func zoo(t *testing.T) (limb, animal *model.Type) {
	t.Helper()
	reg := trait.NewRegistry()
	limb = model.Define("zoo.Limb", model.WithRegistry(reg)).
		Attr("extremities", trait.Int).
		MustBuild()
	animal = model.Define("zoo.Animal", model.WithRegistry(reg)).
		Attr("name", trait.String).
		Attr("legs", trait.List(trait.Instance("zoo.Limb"))).
		Attr("best", trait.Instance(limb)).
		Attr("spare", trait.Dict(trait.Instance(limb))).
		MustBuild()
	return limb, animal
}

// hipster declares one attribute of every scalar and container kind.
func hipster(t *testing.T) *model.Type {
	t.Helper()
	return model.Define("Hipster", model.WithRegistry(trait.NewRegistry())).
		Attr("i", trait.Int).
		Attr("f", trait.Float).
		Attr("c", trait.Complex).
		Attr("b", trait.Bool).
		Attr("raw", trait.Bytes).
		Attr("text", trait.Unicode).
		Attr("ident", trait.ObjectName).
		Attr("dotted", trait.DottedObjectName).
		Attr("anything", trait.Any).
		Attr("color", trait.Enum([]any{"red", "blue"}, trait.Default("red"))).
		Attr("mood", trait.CaselessStrEnum([]any{"happy", "sad"})).
		Attr("tags", trait.List(trait.Unicode())).
		Attr("seen", trait.SetOf(trait.Int())).
		Attr("pair", trait.Tuple(nil)).
		Attr("attrs", trait.Dict(nil)).
		MustBuild()
}
