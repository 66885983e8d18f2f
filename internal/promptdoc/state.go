package promptdoc

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/archie/internal/core/domain"
)

type stateSection domain.StateSection

func (stateSection) Title() string { return "Internal Logic & State Management" }

func (s stateSection) IsEmpty() bool { return domain.StateSection(s).IsEmpty() }

func (s stateSection) Render() string {
	var b strings.Builder
	b.WriteString(sectionBreak)
	b.WriteString("## ⚙️ Internal Logic & State Management\n\n")
	b.WriteString("The component will manage its internal state and side effects using React Hooks as follows:")

	if len(s.Variables) > 0 {
		b.WriteString("\n\n*   **State Variables:**")
		for _, v := range s.Variables {
			fmt.Fprintf(&b, "\n    *   `%s` (`%s`, managed by `%s`)",
				or(v.Name, defaultStateName), or(v.InitialValue, defaultInitial), or(v.Hook, defaultHook))
			fmt.Fprintf(&b, "\n        *   **Purpose:** %s", or(v.Purpose, noPurpose))
			fmt.Fprintf(&b, "\n        *   **Transitions:** %s", or(v.Transitions, noTransitions))
		}
	}

	if len(s.Effects) > 0 {
		b.WriteString("\n\n*   **Side Effects (`useEffect`):**")
		for i, e := range s.Effects {
			fmt.Fprintf(&b, "\n    *   **Effect %d:** %s", i+1, or(e.Description, noDescription))
			fmt.Fprintf(&b, "\n        *   **Dependencies:** `[%s]`", e.Dependencies)
			fmt.Fprintf(&b, "\n        *   **Cleanup:** %s", or(e.Cleanup, noCleanup))
		}
	}

	if s.Optimizations != "" {
		b.WriteString("\n\n*   **Performance Optimizations:**\n    *   ")
		b.WriteString(s.Optimizations)
	}

	if s.CustomHooks != "" {
		b.WriteString("\n\n*   **Custom Hooks:**\n    *   ")
		b.WriteString(s.CustomHooks)
	}

	return b.String()
}

// RenderState renders the state section, or "" when it carries nothing.
func RenderState(state domain.StateSection) string {
	return renderOrEmpty(stateSection(state))
}
