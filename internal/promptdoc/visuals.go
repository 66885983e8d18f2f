package promptdoc

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/archie/internal/core/domain"
)

type visualsSection domain.VisualsSection

func (visualsSection) Title() string { return "Visuals & Structure" }

func (s visualsSection) IsEmpty() bool { return domain.VisualsSection(s).IsEmpty() }

func (s visualsSection) Render() string {
	var b strings.Builder
	b.WriteString(sectionBreak)
	b.WriteString("## 🎨 Visuals & Structure\n\n")
	fmt.Fprintf(&b, "*   **Primary Semantic HTML Elements:** `%s`\n", or(s.HTMLElements, notSpecified))
	fmt.Fprintf(&b, "*   **Styling Strategy:** %s\n", or(s.Styling, notSpecified))
	fmt.Fprintf(&b, "*   **Basic Layout Cues:** %s\n", or(s.Layout, notSpecified))
	return b.String()
}

// RenderVisuals renders the visuals section, or "" when every field is empty.
func RenderVisuals(visuals domain.VisualsSection) string {
	return renderOrEmpty(visualsSection(visuals))
}
