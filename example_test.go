package modelo_test

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/kanzure/modelo/pkg/model"
	"github.com/kanzure/modelo/pkg/trait"
)

func zoo() *model.Type {
	reg := trait.NewRegistry()
	model.Define("zoo.Limb", model.WithRegistry(reg)).
		Attr("extremities", trait.Int(trait.Default(5))).
		MustBuild()
	return model.Define("zoo.Animal", model.WithRegistry(reg)).
		Attr("name", trait.String).
		Attr("legs", trait.List(trait.Instance("zoo.Limb"))).
		MustBuild()
}

// Example builds a record with nested instances from plain data and
// serializes it back.
func Example() {
	animal := zoo()

	octopus, err := animal.Create(map[string]any{
		"name": "octopus",
		"legs": []any{map[string]any{"extremities": 2}, map[string]any{}},
	})
	if err != nil {
		log.Fatal(err)
	}

	d, err := octopus.ToDict()
	if err != nil {
		log.Fatal(err)
	}
	out, _ := json.Marshal(d)
	fmt.Println(string(out))
	// Output: {"legs":[{"extremities":2},{"extremities":5}],"name":"octopus"}
}

// ExampleInstance_Update shows that list values are rebuilt from the patch.
func ExampleInstance_Update() {
	animal := zoo()
	octopus := animal.MustNew("name", "octopus")

	if err := octopus.Update(map[string]any{
		"legs": []any{map[string]any{"extremities": 8}},
	}); err != nil {
		log.Fatal(err)
	}

	d, _ := octopus.ToDict()
	out, _ := json.Marshal(d)
	fmt.Println(string(out))
	// Output: {"legs":[{"extremities":8}],"name":"octopus"}
}

// ExampleType_Validate collects every failure instead of stopping at the
// first one.
func ExampleType_Validate() {
	animal := zoo()

	err := animal.Validate(map[string]any{"name": 3, "wings": 2})
	for _, e := range model.ValidationErrors(err) {
		fmt.Println(e)
	}
	// Output:
	// the "name" trait must be a unicode string, but a value of 3 (int) was specified
	// zoo.Animal: unknown attribute: "wings"
}
