package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/logger"
	"github.com/custodia-labs/archie/internal/promptdoc"
)

var renderCmd = &cobra.Command{
	Use:   "render [draft-file]",
	Short: "Print the assembled prompt",
	Long: `Render a component description as the Markdown prompt sent to the LLM.

The description comes from a draft file (.json, .yaml or .yml) or from a
stored draft given with --draft. With --watch the file is re-rendered every
time it is saved.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

var (
	renderDraft   string
	renderOutline bool
	renderWatch   bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderDraft, "draft", "d", "", "Stored draft id or name")
	renderCmd.Flags().BoolVar(&renderOutline, "outline", false, "List sections instead of the full prompt")
	renderCmd.Flags().BoolVarP(&renderWatch, "watch", "w", false, "Re-render when the draft file changes")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	if editorService == nil {
		return notConfigured("editor")
	}

	path := argOrEmpty(args)
	if renderWatch && path == "" {
		return fmt.Errorf("%w: --watch needs a draft file", domain.ErrInvalidInput)
	}

	doc, _, err := loadDocument(cmd.Context(), path, renderDraft)
	if err != nil {
		return err
	}
	printRendered(cmd, doc)

	if !renderWatch {
		return nil
	}
	return watchRender(cmd, path, doc)
}

func printRendered(cmd *cobra.Command, doc domain.DocumentState) {
	if renderOutline {
		for _, s := range promptdoc.Outline(doc) {
			mark := " "
			if s.Present {
				mark = "x"
			}
			if s.Records > 0 {
				cmd.Printf("[%s] %s (%d)\n", mark, s.Title, s.Records)
			} else {
				cmd.Printf("[%s] %s\n", mark, s.Title)
			}
		}
		return
	}

	editorService.Load(doc)
	fmt.Fprint(cmd.OutOrStdout(), editorService.Prompt())
}

func watchRender(cmd *cobra.Command, path string, last domain.DocumentState) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	cmd.PrintErrf("Watching %s (Ctrl+C to stop)\n", path)

	ctx := cmd.Context()
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) == abs && ev.Has(fsnotify.Write|fsnotify.Create) {
				pending = time.After(100 * time.Millisecond)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: %v", err)
		case <-pending:
			pending = nil
			doc, _, err := loadDocument(ctx, path, "")
			if err != nil {
				cmd.PrintErrf("Error: %v\n", err)
				continue
			}
			if doc.Equal(last) {
				continue
			}
			last = doc
			cmd.Println()
			cmd.Println("----")
			printRendered(cmd, doc)
		}
	}
}
