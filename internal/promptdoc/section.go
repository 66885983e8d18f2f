package promptdoc

import "github.com/custodia-labs/archie/internal/core/domain"

// sectionBreak opens every section fragment.
const sectionBreak = "\n---\n\n"

// Section is one top-level part of the document.
// Render is only called when IsEmpty is false.
type Section interface {
	Title() string
	IsEmpty() bool
	Render() string
}

func isSectionEmpty(s Section) bool {
	return s.IsEmpty()
}

// renderOrEmpty applies the suppression rule shared by all sections.
func renderOrEmpty(s Section) string {
	if isSectionEmpty(s) {
		return ""
	}
	return s.Render()
}

// Sections returns the sections of d in document order.
func Sections(d domain.DocumentState) []Section {
	return []Section{
		propsSection(d.Props),
		stateSection(d.State),
		interactionsSection(d.Interactions),
		visualsSection(d.Visuals),
		robustnessSection(d.Robustness),
	}
}
