package promptdoc

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/archie/internal/core/domain"
)

type robustnessSection domain.RobustnessSection

func (robustnessSection) Title() string { return "Robustness & Reusability Checklist" }

func (s robustnessSection) IsEmpty() bool { return domain.RobustnessSection(s).IsEmpty() }

func (s robustnessSection) Render() string {
	var b strings.Builder
	b.WriteString(sectionBreak)
	b.WriteString("## ✅ Robustness & Reusability Checklist\n\n")
	fmt.Fprintf(&b, "*   **Accessibility:** %s\n", or(s.Accessibility, noAccessibility))
	fmt.Fprintf(&b, "*   **Error Handling:** %s\n", or(s.ErrorHandling, noErrorHandling))
	fmt.Fprintf(&b, "*   **Loading States:** %s\n", or(s.LoadingStates, noLoadingStates))
	fmt.Fprintf(&b, "*   **Edge Cases:** %s\n", or(s.EdgeCases, noEdgeCases))
	fmt.Fprintf(&b, "*   **Testing Focus:** %s\n", or(s.Testing, noTestingFocus))
	return b.String()
}

// RenderRobustness renders the checklist, or "" when every field is empty.
func RenderRobustness(robustness domain.RobustnessSection) string {
	return renderOrEmpty(robustnessSection(robustness))
}
