package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/logger"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate the component with the LLM",
	Long: `Send a draft's prompt to the configured LLM, clean the reply and
validate it. The build is recorded in the draft's history.

The code is printed to stdout unless --out is given. Invalid code is still
written so it can be inspected, but the command exits non-zero.`,
	Args:        cobra.NoArgs,
	Annotations: needsLLM(),
	RunE:        runBuild,
}

var (
	buildDraft   string
	buildOut     string
	buildPublish bool
)

func init() {
	buildCmd.Flags().StringVarP(&buildDraft, "draft", "d", "", "Stored draft id or name")
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "Write the component to this file")
	buildCmd.Flags().BoolVar(&buildPublish, "publish", false, "Publish a successful build as a gist")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	if buildService == nil {
		return notConfigured("build")
	}
	d, err := resolveDraft(cmd.Context(), buildDraft)
	if err != nil {
		return err
	}
	if !buildService.Available() {
		return fmt.Errorf("%w: no LLM provider configured (run 'archie settings llm')", domain.ErrLLMUnavailable)
	}

	cmd.PrintErrf("Building %s...\n", d.DisplayName())
	done := logger.Timed("build")
	build, err := buildService.Build(cmd.Context(), d.ID, d.State)
	done()
	if err != nil {
		if build != nil && errors.Is(err, domain.ErrGenerationFailed) {
			cmd.PrintErrf("Build %s failed: %s\n", shortID(build.ID), build.Err)
		}
		return err
	}

	if err := writeCode(cmd, build.Code); err != nil {
		return err
	}

	if !build.Validation.Valid {
		cmd.PrintErrf("Build %s (%s): invalid (%s)\n  %s\n",
			shortID(build.ID), build.Model, build.Validation.Validator, build.Validation.Diagnostic)
		return errInvalidCode
	}
	cmd.PrintErrf("Build %s (%s): valid (%s)\n", shortID(build.ID), build.Model, build.Validation.Validator)

	if buildPublish {
		return publishBuild(cmd, d, build)
	}
	return nil
}

func writeCode(cmd *cobra.Command, code string) error {
	if buildOut == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), code)
		return err
	}
	if err := os.WriteFile(buildOut, []byte(code+"\n"), 0o644); err != nil { //nolint:gosec // G306: component source is not secret
		return fmt.Errorf("failed to write %s: %w", buildOut, err)
	}
	cmd.PrintErrf("Wrote %s\n", buildOut)
	return nil
}
