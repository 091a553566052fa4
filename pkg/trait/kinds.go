package trait

import "fmt"

// KindName returns the catalog name of k, such as "int" or "list". Kinds built
// outside this package are named after their Go type.
func KindName(k Kind) string {
	switch k.(type) {
	case anyKind:
		return "any"
	case intKind:
		return "int"
	case cIntKind:
		return "cint"
	case floatKind:
		return "float"
	case cFloatKind:
		return "cfloat"
	case complexKind:
		return "complex"
	case cComplexKind:
		return "ccomplex"
	case boolKind:
		return "bool"
	case cBoolKind:
		return "cbool"
	case bytesKind:
		return "bytes"
	case cBytesKind:
		return "cbytes"
	case unicodeKind:
		return "unicode"
	case cUnicodeKind:
		return "cunicode"
	case objectNameKind:
		return "object_name"
	case dottedObjectNameKind:
		return "dotted_object_name"
	case regexpKind:
		return "regexp"
	case *EnumKind:
		if k.(*EnumKind).caseless {
			return "caseless_enum"
		}
		return "enum"
	case *InstanceKind:
		return "instance"
	case *TypeKind:
		return "type"
	case ThisKind:
		return "this"
	case *ListKind:
		return "list"
	case *SetKind:
		return "set"
	case *TupleKind:
		return "tuple"
	case *DictKind:
		return "dict"
	}
	return fmt.Sprintf("%T", k)
}

// Nullable reports whether t accepts nil.
func Nullable(t *Trait) bool {
	_, err := t.Validate(nil, nil)
	return err == nil
}
