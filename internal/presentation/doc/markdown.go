// Package doc renders model types as markdown reference pages.
package doc

import (
	"fmt"
	"strings"

	"github.com/kanzure/modelo/pkg/model"
	"github.com/kanzure/modelo/pkg/trait"
)

// GenerateMarkdown produces one section per type with a table of its
// attributes, inherited ones included.
func GenerateMarkdown(types []*model.Type) string {
	var sb strings.Builder
	for i, t := range types {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeType(&sb, t)
	}
	return sb.String()
}

func writeType(sb *strings.Builder, t *model.Type) {
	sb.WriteString(fmt.Sprintf("# %s\n\n", t.Name()))
	if p := t.Parent(); p != nil && p != model.Base {
		sb.WriteString(fmt.Sprintf("Extends `%s`.\n\n", p.Name()))
	}
	attrs := t.Attrs()
	if len(attrs) == 0 {
		sb.WriteString("_No attributes._\n")
		return
	}
	sb.WriteString("| Attribute | Kind | Accepts | Default | Declared by | Transient |\n")
	sb.WriteString("|---|---|---|---|---|---|\n")
	for _, name := range attrs {
		tr, _ := t.Trait(name)
		declaredBy := ""
		if c := tr.Class(); c != nil {
			declaredBy = c.Name()
		}
		transient := ""
		if tr.IsTransient() {
			transient = "yes"
		}
		sb.WriteString(fmt.Sprintf("| `%s` | %s | %s | %s | %s | %s |\n",
			name,
			trait.KindName(tr.Kind()),
			escape(tr.Info()),
			escape(defaultOf(t, name, tr)),
			declaredBy,
			transient,
		))
	}
}

func defaultOf(t *model.Type, name string, tr *trait.Trait) string {
	if _, ok := t.DefaultOverride(name, tr.Class()); ok {
		return "_computed_"
	}
	if tr.IsLazy() {
		return "_lazy_"
	}
	v, ok := tr.StaticDefault()
	if !ok {
		d, err := tr.Kind().Default()
		if err != nil {
			return "_constructed_"
		}
		v = d
	}
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("`%v`", v)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
