package trait

import (
	"fmt"
	"strings"
	"unicode"
)

// article prefixes name with "a" or "an".
func article(name string) string {
	if name != "" && strings.ContainsRune("aeiouAEIOU", rune(name[0])) {
		return "an " + name
	}
	return "a " + name
}

func repr(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%#v (%T)", v, v)
}

func className(owner Owner) string {
	if owner == nil || owner.Class() == nil {
		return ""
	}
	return owner.Class().Name()
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || unicode.Is(unicode.Nl, r) {
			continue
		}
		if i > 0 && unicode.In(r, unicode.Nd, unicode.Mn, unicode.Mc, unicode.Pc) {
			continue
		}
		return false
	}
	return true
}

func isDottedIdentifier(s string) bool {
	for _, part := range strings.Split(s, ".") {
		if !isIdentifier(part) {
			return false
		}
	}
	return true
}

func quoteAll(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%#v", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
