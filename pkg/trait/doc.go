// Package trait provides typed attribute descriptors ("traits") for declarative
// record types.
//
// A Trait couples an attribute name with a validation rule (its Kind), a static
// or lazily computed default value and free-form metadata. Traits are created
// once per declaring type and shared by all of its instances; per-instance
// values live in a Slots store owned by the instance.
//
// Basic usage:
//
//	number := trait.Int()
//	color := trait.CaselessStrEnum([]any{"red", "blue"}, trait.Default("red"))
//	legs := trait.List(trait.Instance("zoo.Limb"), trait.MaxLen(4))
//
// Validation of a write follows a fixed precedence on the trait's kind: a kind
// implementing Validator decides; otherwise a Predicate is consulted; otherwise a
// Coercer converts the value; otherwise the value is accepted unchanged.
//
// Every rejection is reported as a *ValidationError, or an *ElementError when a
// single element of a container is at fault:
//
//	if _, err := number.Validate(nil, "seven"); err != nil {
//	    var verr *trait.ValidationError
//	    errors.As(err, &verr) // verr.Attr, verr.Info, verr.Value
//	}
//
// Classes referenced by Instance and Type traits may be given as dotted names.
// They are resolved through a Registry the first time an owning instance is
// constructed.
package trait
