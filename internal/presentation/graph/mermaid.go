package graph

import (
	"fmt"
	"strings"

	"github.com/kanzure/modelo/pkg/model"
	"github.com/kanzure/modelo/pkg/trait"
)

// GraphOverlay marks types to highlight on the diagram.
type GraphOverlay struct {
	Focus string
}

// GenerateMermaid produces a Mermaid class diagram from a list of types.
// Inheritance is drawn as <|--, attributes holding instances of other types
// as associations labelled with the attribute name:
// - Instance: "0..1"
// - List, set or dict of instances: "*"
func GenerateMermaid(types []*model.Type, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("classDiagram\n")

	for _, t := range types {
		safeID := sanitizeMermaidID(t.Name())
		sb.WriteString(fmt.Sprintf("    class %s[\"%s\"] {\n", safeID, t.Name()))
		for _, name := range t.OwnAttrs() {
			tr, _ := t.Trait(name)
			sb.WriteString(fmt.Sprintf("        +%s %s\n", trait.KindName(tr.Kind()), name))
		}
		sb.WriteString("    }\n")
	}

	for _, t := range types {
		safeID := sanitizeMermaidID(t.Name())
		if p := t.Parent(); p != nil && p != model.Base {
			sb.WriteString(fmt.Sprintf("    %s <|-- %s\n", sanitizeMermaidID(p.Name()), safeID))
		}
		for _, name := range t.OwnAttrs() {
			tr, _ := t.Trait(name)
			target, many := reference(tr)
			if target == "" {
				continue
			}
			mult := "\"0..1\""
			if many {
				mult = "\"*\""
			}
			sb.WriteString(fmt.Sprintf("    %s --> %s %s : %s\n", safeID, mult, sanitizeMermaidID(target), name))
		}
	}

	if overlay != nil && overlay.Focus != "" {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast on light and dark themes.
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    cssClass \"%s\" current\n", sanitizeMermaidID(overlay.Focus)))
	}

	return sb.String()
}

// reference returns the name of the type an attribute points to, if any, and
// whether it holds many of them.
func reference(tr *trait.Trait) (string, bool) {
	switch k := tr.Kind().(type) {
	case *trait.InstanceKind:
		return k.TargetName(), false
	case *trait.ListKind:
		return elemReference(k.Elem())
	case *trait.SetKind:
		return elemReference(k.Elem())
	case *trait.DictKind:
		return elemReference(k.Elem())
	}
	return "", false
}

func elemReference(elem *trait.Trait) (string, bool) {
	if elem == nil {
		return "", false
	}
	if k, ok := elem.Kind().(*trait.InstanceKind); ok {
		return k.TargetName(), true
	}
	return "", false
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
