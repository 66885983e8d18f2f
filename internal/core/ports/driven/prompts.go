package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names. Templates are Go text/template sources; the
// build template receives .Document, suggestion templates receive .Name,
// .Description and .UseCase.
const (
	// PromptBuildComponent wraps the assembled document with the code
	// generation rules.
	PromptBuildComponent = "build_component"

	PromptSuggestDescription  = "suggest_description"
	PromptSuggestUseCase      = "suggest_use_case"
	PromptSuggestHTMLElements = "suggest_html_elements"
	PromptSuggestStyling      = "suggest_styling"
	PromptSuggestProps        = "suggest_props"
	PromptSuggestState        = "suggest_state"
	PromptSuggestInteractions = "suggest_interactions"
	PromptSuggestVisuals      = "suggest_visuals"
	PromptSuggestRobustness   = "suggest_robustness"
)
