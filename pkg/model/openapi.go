package model

import (
	"math"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/kanzure/modelo/pkg/trait"
)

const componentsPrefix = "#/components/schemas/"

// Identifier patterns accepted by the object name kinds.
const (
	identPattern  = `[_\p{L}\p{Nl}][\p{L}\p{Nl}\p{Nd}\p{Mn}\p{Mc}\p{Pc}]*`
	objectPattern = `^` + identPattern + `$`
	dottedPattern = `^` + identPattern + `(\.` + identPattern + `)*$`
)

// OpenAPISchema describes the serialized form of the type's instances, as
// produced by ToDict. Transient attributes are left out. Nested model types
// are referenced under #/components/schemas/.
func (t *Type) OpenAPISchema() *openapi3.Schema {
	s := openapi3.NewObjectSchema()
	s.Title = t.name
	if s.Properties == nil {
		s.Properties = openapi3.Schemas{}
	}
	for pair := t.traits.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.IsTransient() {
			continue
		}
		// Unresolved names are described as plain objects.
		if err := t.resolve(pair.Value); err != nil {
			t.logger.Debug("unresolved reference in schema", "type", t.name, "attr", pair.Key, "error", err)
		}
		s.Properties[pair.Key] = schemaRef(pair.Value)
	}
	return s
}

// Components returns the schemas of types keyed by type name, suitable for
// an OpenAPI document's components section.
func Components(types ...*Type) openapi3.Schemas {
	out := make(openapi3.Schemas, len(types))
	for _, t := range types {
		out[t.name] = openapi3.NewSchemaRef("", t.OpenAPISchema())
	}
	return out
}

func ref(t *Type) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef(componentsPrefix+t.name, nil)
}

func schemaRef(tr *trait.Trait) *openapi3.SchemaRef {
	switch k := tr.Kind().(type) {
	case *trait.InstanceKind:
		if target := modelType(k.Target()); target != nil {
			return ref(target)
		}
		return openapi3.NewSchemaRef("", openapi3.NewObjectSchema())
	case trait.ThisKind:
		if target := modelType(tr.Class()); target != nil {
			return ref(target)
		}
	}
	s := traitSchema(tr)
	if def, ok := tr.StaticDefault(); ok && def != nil {
		s.Default = def
	}
	if tr.Info() != "" {
		s.Description = tr.Info()
	}
	return openapi3.NewSchemaRef("", s)
}

func traitSchema(tr *trait.Trait) *openapi3.Schema {
	var s *openapi3.Schema
	switch k := tr.Kind().(type) {
	case *trait.EnumKind:
		s = &openapi3.Schema{Enum: k.Values()}
	case *trait.ListKind:
		s = openapi3.NewArraySchema()
		if k.Elem() != nil {
			s.Items = schemaRef(k.Elem())
		}
		if n := k.MinLen(); n > 0 {
			s = s.WithMinItems(int64(n))
		}
		if n := k.MaxLen(); n < math.MaxInt {
			s = s.WithMaxItems(int64(n))
		}
	case *trait.SetKind:
		s = openapi3.NewArraySchema().WithUniqueItems(true)
		if k.Elem() != nil {
			s.Items = schemaRef(k.Elem())
		}
	case *trait.TupleKind:
		s = openapi3.NewArraySchema()
		if slots := k.Slots(); len(slots) > 0 {
			refs := make(openapi3.SchemaRefs, len(slots))
			for i, slot := range slots {
				refs[i] = schemaRef(slot)
			}
			s.Items = openapi3.NewSchemaRef("", &openapi3.Schema{AnyOf: refs})
			s = s.WithMinItems(int64(len(slots))).WithMaxItems(int64(len(slots)))
		}
	case *trait.DictKind:
		s = openapi3.NewObjectSchema()
		if k.Elem() != nil {
			s.AdditionalProperties = openapi3.AdditionalProperties{Schema: schemaRef(k.Elem())}
		}
	default:
		s = scalarSchema(trait.KindName(tr.Kind()))
	}
	if trait.Nullable(tr) {
		s.Nullable = true
	}
	return s
}

func scalarSchema(kind string) *openapi3.Schema {
	switch kind {
	case "int", "cint":
		return openapi3.NewIntegerSchema()
	case "float", "cfloat":
		return openapi3.NewFloat64Schema()
	case "bool", "cbool":
		return openapi3.NewBoolSchema()
	case "bytes", "cbytes":
		return openapi3.NewBytesSchema()
	case "unicode", "cunicode", "type":
		return openapi3.NewStringSchema()
	case "complex", "ccomplex":
		return openapi3.NewStringSchema().WithFormat("complex")
	case "object_name":
		return openapi3.NewStringSchema().WithPattern(objectPattern)
	case "dotted_object_name":
		return openapi3.NewStringSchema().WithPattern(dottedPattern)
	case "regexp":
		return openapi3.NewStringSchema().WithFormat("regex")
	}
	return &openapi3.Schema{}
}
