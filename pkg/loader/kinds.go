package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kanzure/modelo/pkg/trait"
)

type constructor = func(...trait.Option) *trait.Trait

// scalars maps kind names that need no further arguments to their
// constructors.
var scalars = map[string]constructor{
	"any":                trait.Any,
	"int":                trait.Int,
	"integer":            trait.Integer,
	"cint":               trait.CInt,
	"float":              trait.Float,
	"cfloat":             trait.CFloat,
	"complex":            trait.Complex,
	"ccomplex":           trait.CComplex,
	"bool":               trait.Bool,
	"cbool":              trait.CBool,
	"bytes":              trait.Bytes,
	"cbytes":             trait.CBytes,
	"unicode":            trait.Unicode,
	"string":             trait.String,
	"str":                trait.String,
	"cunicode":           trait.CUnicode,
	"object_name":        trait.ObjectName,
	"dotted_object_name": trait.DottedObjectName,
	"regexp":             trait.CRegExp,
	"this":               trait.This,
}

// Kinds returns every kind name a schema file may use, sorted.
func Kinds() []string {
	names := make([]string, 0, len(scalars)+8)
	for name := range scalars {
		names = append(names, name)
	}
	names = append(names, "enum", "caseless_enum", "instance", "type", "list", "set", "tuple", "dict")
	sort.Strings(names)
	return names
}

// parseKind turns a bare kind string into an attribute spec. "[kind]" is
// shorthand for a list of kind.
func parseKind(s string) (*AttrSpec, error) {
	s = strings.TrimSpace(s)
	if len(s) > 2 && s[0] == '[' && s[len(s)-1] == ']' {
		return &AttrSpec{Kind: "list", Of: strings.TrimSpace(s[1 : len(s)-1])}, nil
	}
	if s == "" {
		return nil, fmt.Errorf("empty kind")
	}
	return &AttrSpec{Kind: s}, nil
}
