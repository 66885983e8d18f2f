package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/promptdoc"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [target]",
	Short: "Ask the LLM to fill in part of a draft",
	Long: `Ask the LLM for a suggestion and merge it into a stored draft.

Field targets return a single text value:
  description, useCase, htmlElements, styling

Section targets return records and notes that are appended:
  props, state, interactions, visuals, robustness

Empty text fields take the suggestion; filled ones have it appended on a new
line. Suggested records always get fresh ids.`,
	Args:        cobra.ExactArgs(1),
	Annotations: needsLLM(),
	RunE:        runSuggest,
}

var (
	suggestDraft  string
	suggestDryRun bool
)

func init() {
	suggestCmd.Flags().StringVarP(&suggestDraft, "draft", "d", "", "Stored draft id or name")
	suggestCmd.Flags().BoolVar(&suggestDryRun, "dry-run", false, "Print the result without saving")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	if suggestionService == nil {
		return notConfigured("suggestion")
	}
	target, err := domain.ParseSuggestionTarget(args[0])
	if err != nil {
		return err
	}
	d, err := resolveDraft(cmd.Context(), suggestDraft)
	if err != nil {
		return err
	}
	if !suggestionService.Available() {
		return fmt.Errorf("%w: no LLM provider configured (run 'archie settings llm')", domain.ErrLLMUnavailable)
	}

	next, err := suggestionService.Suggest(cmd.Context(), target, d.State)
	if err != nil {
		return fmt.Errorf("suggestion failed: %w", err)
	}

	cmd.Print(describeSuggestion(target, next))
	if suggestDryRun {
		return nil
	}

	d.State = next
	if err := draftService.Save(cmd.Context(), d); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	cmd.Printf("\nSaved %s suggestion to draft %s\n", target, d.DisplayName())
	return nil
}

// describeSuggestion shows the part of doc the target changed.
func describeSuggestion(target domain.SuggestionTarget, doc domain.DocumentState) string {
	var out string
	switch target {
	case domain.SuggestDescription:
		out = doc.Identity.Description
	case domain.SuggestUseCase:
		out = doc.Identity.UseCase
	case domain.SuggestHTMLElements:
		out = doc.Visuals.HTMLElements
	case domain.SuggestStyling:
		out = doc.Visuals.Styling
	case domain.SuggestProps:
		out = promptdoc.RenderProps(doc.Props)
	case domain.SuggestState:
		out = promptdoc.RenderState(doc.State)
	case domain.SuggestInteractions:
		out = promptdoc.RenderInteractions(doc.Interactions)
	case domain.SuggestVisuals:
		out = promptdoc.RenderVisuals(doc.Visuals)
	case domain.SuggestRobustness:
		out = promptdoc.RenderRobustness(doc.Robustness)
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}
