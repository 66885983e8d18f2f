package promptdoc

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/archie/internal/core/domain"
)

type propsSection []domain.PropDefinition

func (propsSection) Title() string { return "Component API (Props)" }

func (s propsSection) IsEmpty() bool { return len(s) == 0 }

func (s propsSection) Render() string {
	var b strings.Builder
	b.WriteString(sectionBreak)
	b.WriteString("## 🚀 Component API (Props)\n\n")
	b.WriteString("This component's functionality is primarily driven by the following props, ")
	b.WriteString("ensuring its reusability and configurability:\n\n")
	for i, p := range s {
		if i > 0 {
			b.WriteString("\n\n")
		}
		writeProp(&b, p)
	}
	b.WriteString("\n")
	return b.String()
}

func writeProp(b *strings.Builder, p domain.PropDefinition) {
	requirement := "optional"
	def := "`" + or(p.DefaultValue, defaultNoValue) + "`"
	if p.Required {
		requirement = "required"
		def = requiredDefault
	}
	fmt.Fprintf(b, "*   **`%s`** (`%s`):\n", or(p.Name, defaultPropName), or(p.Type, defaultPropType))
	fmt.Fprintf(b, "    *   **Description:** %s\n", or(p.Description, noDescription))
	fmt.Fprintf(b, "    *   **Required:** `%s`\n", requirement)
	fmt.Fprintf(b, "    *   **Default:** %s\n", def)
	fmt.Fprintf(b, "    *   **Impact:** %s", or(p.Impact, noImpact))
}

// RenderProps renders the props section, or "" when there are no props.
func RenderProps(props []domain.PropDefinition) string {
	return renderOrEmpty(propsSection(props))
}
