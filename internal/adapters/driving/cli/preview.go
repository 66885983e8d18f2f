package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/archie/internal/adapters/driving/web"
	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/core/ports/driving"
	"github.com/custodia-labs/archie/internal/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview a component in the browser",
	Long: `Build a standalone HTML page that renders the component with React and
Tailwind from a CDN, with a form for every prop and a log of emitted events.

The code comes from --code or from the draft's newest successful build.
Code that fails validation is never previewed.`,
}

var previewWriteCmd = &cobra.Command{
	Use:   "write [draft-file]",
	Short: "Write the preview page to a file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPreviewWrite,
}

var previewServeCmd = &cobra.Command{
	Use:   "serve [draft-file]",
	Short: "Serve the preview page with live reload",
	Long: `Serve the preview page over HTTP. The page is rebuilt on every request
and open browsers reload when the code file or draft file changes.

Metrics are exposed at /metrics.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreviewServe,
}

var (
	previewDraft string
	previewCode  string
	previewOut   string
	previewAddr  string
)

func init() {
	previewCmd.PersistentFlags().StringVarP(&previewDraft, "draft", "d", "", "Stored draft id or name")
	previewCmd.PersistentFlags().StringVarP(&previewCode, "code", "c", "", "Component source file (default newest successful build)")
	previewWriteCmd.Flags().StringVarP(&previewOut, "out", "o", "", "Output file (default <Component>.html)")
	previewServeCmd.Flags().StringVar(&previewAddr, "addr", "127.0.0.1:5173", "Listen address")

	previewCmd.AddCommand(previewWriteCmd)
	previewCmd.AddCommand(previewServeCmd)
	rootCmd.AddCommand(previewCmd)
}

func runPreviewWrite(cmd *cobra.Command, args []string) error {
	if previewService == nil {
		return notConfigured("preview")
	}

	page, doc, err := renderPreview(cmd.Context(), previewService, argOrEmpty(args))
	if err != nil {
		return err
	}

	out := previewOut
	if out == "" {
		out = preview.ComponentName(doc) + ".html"
	}
	if err := os.WriteFile(out, []byte(page), 0o644); err != nil { //nolint:gosec // G306: preview page is not secret
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	cmd.Printf("Wrote %s\n", out)
	return nil
}

func runPreviewServe(cmd *cobra.Command, args []string) error {
	if livePreviewService == nil {
		return notConfigured("preview")
	}
	path := argOrEmpty(args)

	// Fail before listening when the first render is already blocked.
	if _, _, err := renderPreview(cmd.Context(), livePreviewService, path); err != nil {
		return err
	}

	var watch []string
	if previewCode != "" {
		watch = append(watch, previewCode)
	}
	if path != "" {
		watch = append(watch, path)
	}

	server := web.NewServer(web.Config{
		Page: func(ctx context.Context) (string, error) {
			page, _, err := renderPreview(ctx, livePreviewService, path)
			return page, err
		},
		Watch:   watch,
		Metrics: metricsHandler,
	})

	cmd.Printf("Preview at http://%s (Ctrl+C to stop)\n", previewAddr)
	return server.Run(cmd.Context(), previewAddr)
}

// renderPreview loads the document and code and renders the page.
func renderPreview(ctx context.Context, svc driving.PreviewService, path string) (string, domain.DocumentState, error) {
	doc, draft, err := loadDocument(ctx, path, previewDraft)
	if err != nil {
		return "", doc, err
	}

	code, err := previewSource(ctx, draft)
	if err != nil {
		return "", doc, err
	}

	page, _, err := svc.Page(ctx, doc, code)
	if err != nil {
		return "", doc, err
	}
	return page, doc, nil
}

func previewSource(ctx context.Context, draft *domain.Draft) (string, error) {
	if previewCode != "" {
		src, err := os.ReadFile(previewCode)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", previewCode, err)
		}
		return string(src), nil
	}
	if draft == nil {
		return "", fmt.Errorf("%w: --code is required with a draft file", domain.ErrInvalidInput)
	}
	build, err := latestSuccessfulBuild(ctx, draft)
	if err != nil {
		return "", err
	}
	return build.Code, nil
}

func argOrEmpty(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
