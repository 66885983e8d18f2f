// Package cli provides the archie command line interface.
package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/archie/internal/core/ports/driving"
	"github.com/custodia-labs/archie/internal/logger"
)

// version is set at build time with -ldflags "-X .../cli.version=...".
var version = "dev"

// annotationNeedsLLM marks commands that generate text and need a provider.
const annotationNeedsLLM = "archie.llm"

// annotationNoBootstrap marks commands that run without any services.
const annotationNoBootstrap = "archie.nobootstrap"

// Services holds the driving ports the commands use.
type Services struct {
	Editor      driving.EditorService
	Drafts      driving.DraftService
	Builds      driving.BuildService
	Suggestions driving.SuggestionService
	Preview     driving.PreviewService

	// LivePreview renders pages that reconnect to the preview server's
	// reload channel.
	LivePreview driving.PreviewService

	Publish  driving.PublishService
	Settings driving.SettingsService

	// Metrics is served at /metrics by preview serve. Optional.
	Metrics http.Handler
}

// Options are the global flags handed to the bootstrap function.
type Options struct {
	ConfigDir string
	Verbose   bool

	// NeedsLLM is set when the command generates text.
	NeedsLLM bool
}

// Bootstrap wires services for a command. The returned cleanup runs after
// the command finishes.
type Bootstrap func(opts Options) (*Services, func(), error)

var (
	editorService      driving.EditorService
	draftService       driving.DraftService
	buildService       driving.BuildService
	suggestionService  driving.SuggestionService
	previewService     driving.PreviewService
	livePreviewService driving.PreviewService
	publishService     driving.PublishService
	settingsService    driving.SettingsService
	metricsHandler     http.Handler
)

var (
	bootstrap Bootstrap
	cleanup   func()

	flagVerbose   bool
	flagConfigDir string
)

var rootCmd = &cobra.Command{
	Use:   "archie",
	Short: "Author prompts that describe React components",
	Long: `archie turns a structured description of a React component into a
Markdown prompt, asks an LLM to build it, and previews the result.

Describe the component in a draft, render the prompt, then build:
  archie draft new "Rating Stars"
  archie draft set "Rating Stars" identity description="Five clickable stars"
  archie draft add "Rating Stars" props name=value type=number required=true
  archie render --draft "Rating Stars"
  archie build --draft "Rating Stars" --out RatingStars.jsx`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config", "", "Config directory (default ~/.archie)")
}

// SetBootstrap registers the function that wires services once flags are parsed.
func SetBootstrap(fn Bootstrap) {
	bootstrap = fn
}

// SetServices installs services directly.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	editorService = s.Editor
	draftService = s.Drafts
	buildService = s.Builds
	suggestionService = s.Suggestions
	previewService = s.Preview
	livePreviewService = s.LivePreview
	publishService = s.Publish
	settingsService = s.Settings
	metricsHandler = s.Metrics
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	defer runCleanup()

	return rootCmd.ExecuteContext(ctx)
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(flagVerbose)

	if bootstrap == nil || hasAnnotation(cmd, annotationNoBootstrap) {
		return nil
	}

	services, done, err := bootstrap(Options{
		ConfigDir: flagConfigDir,
		Verbose:   flagVerbose,
		NeedsLLM:  hasAnnotation(cmd, annotationNeedsLLM),
	})
	if err != nil {
		return err
	}
	SetServices(services)
	cleanup = done
	return nil
}

func runCleanup() {
	if cleanup != nil {
		cleanup()
		cleanup = nil
	}
}

// hasAnnotation checks cmd and its parents.
func hasAnnotation(cmd *cobra.Command, key string) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[key] == "true" {
			return true
		}
	}
	return false
}

func needsLLM() map[string]string {
	return map[string]string{annotationNeedsLLM: "true"}
}

func notConfigured(name string) error {
	return errors.New(name + " service not configured")
}
