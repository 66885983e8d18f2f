package promptdoc

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/archie/internal/core/domain"
)

type interactionsSection domain.InteractionsSection

func (interactionsSection) Title() string { return "Behaviors & Interactions" }

func (s interactionsSection) IsEmpty() bool { return domain.InteractionsSection(s).IsEmpty() }

func (s interactionsSection) Render() string {
	var b strings.Builder
	b.WriteString(sectionBreak)
	b.WriteString("## ⚡ Behaviors & Interactions\n\n")
	b.WriteString("The component will respond to the following user interactions and manage its internal flow:")

	if len(s.UserInteractions) > 0 {
		b.WriteString("\n\n*   **User Interactions Supported:**")
		for _, u := range s.UserInteractions {
			fmt.Fprintf(&b, "\n    *   %s", or(u.Description, noDescription))
		}
	}

	if len(s.EventEmitters) > 0 {
		b.WriteString("\n\n*   **Event Emitters (Prop Callbacks):**")
		for _, e := range s.EventEmitters {
			fmt.Fprintf(&b, "\n    *   `%s` (`function(%s)`)", or(e.Name, defaultEmitter), e.Arguments)
			fmt.Fprintf(&b, "\n        *   **Triggered When:** %s", or(e.Trigger, noTrigger))
		}
	}

	if len(s.ConditionalRendering) > 0 {
		b.WriteString("\n\n*   **Conditional Rendering:**")
		for _, c := range s.ConditionalRendering {
			fmt.Fprintf(&b, "\n    *   The component should render **%s** when `%s`.",
				or(c.Description, defaultRenders), or(c.Condition, defaultCondition))
		}
	}

	return b.String()
}

// RenderInteractions renders the interactions section, or "" when all lists are empty.
func RenderInteractions(interactions domain.InteractionsSection) string {
	return renderOrEmpty(interactionsSection(interactions))
}
