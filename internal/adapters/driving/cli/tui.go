package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/archie/internal/adapters/driving/tui"
)

var tuiDraft string

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive form for describing a component.

Fill in the sections, add props and interactions, ask the LLM for
suggestions, then build and save the draft without leaving the terminal.

Controls:
  ↑/k, ↓/j   Navigate
  Enter      Select / edit
  Tab        Next field
  Ctrl+S     Apply form changes
  Ctrl+G     Suggest
  Esc        Back
  Ctrl+C     Quit`,
	Args:        cobra.NoArgs,
	Annotations: needsLLM(),
	RunE:        runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiDraft, "draft", "", "Open a saved draft (id, id prefix or name)")
	rootCmd.AddCommand(tuiCmd)
}

// newTUIApp builds the TUI from the installed services.
func newTUIApp(cmd *cobra.Command) (*tui.App, error) {
	ports := &tui.Ports{
		Editor:      editorService,
		Drafts:      draftService,
		Builds:      buildService,
		Suggestions: suggestionService,
		Settings:    settingsService,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return nil, fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if tuiDraft != "" {
		d, err := resolveDraft(cmd.Context(), tuiDraft)
		if err != nil {
			return nil, err
		}
		app.WithDraft(d)
	}
	return app, nil
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	app, err := newTUIApp(cmd)
	if err != nil {
		return err
	}
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
