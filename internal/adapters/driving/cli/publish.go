package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/archie/internal/core/domain"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Share builds",
}

var publishGistCmd = &cobra.Command{
	Use:   "gist",
	Short: "Publish a build as a secret GitHub gist",
	Long: `Upload a build's component code and the prompt it was built from to a
secret GitHub gist and print its URL.

Without --build the newest successful build of the draft is used. Needs a
GitHub token with the gist scope (ARCHIE_GITHUB_TOKEN or
'archie settings publish').`,
	Args: cobra.NoArgs,
	RunE: runPublishGist,
}

var (
	publishDraft   string
	publishBuildID string
)

func init() {
	publishGistCmd.Flags().StringVarP(&publishDraft, "draft", "d", "", "Stored draft id or name")
	publishGistCmd.Flags().StringVarP(&publishBuildID, "build", "b", "", "Build id (default newest successful)")
	publishCmd.AddCommand(publishGistCmd)
	rootCmd.AddCommand(publishCmd)
}

func runPublishGist(cmd *cobra.Command, _ []string) error {
	if buildService == nil {
		return notConfigured("build")
	}
	d, err := resolveDraft(cmd.Context(), publishDraft)
	if err != nil {
		return err
	}

	var build *domain.Build
	if publishBuildID != "" {
		build, err = buildService.Get(cmd.Context(), publishBuildID)
		if err != nil {
			return fmt.Errorf("failed to load build %s: %w", publishBuildID, err)
		}
		if build.DraftID != d.ID {
			return fmt.Errorf("%w: build %s belongs to another draft", domain.ErrInvalidInput, shortID(build.ID))
		}
	} else {
		build, err = latestSuccessfulBuild(cmd.Context(), d)
		if err != nil {
			return err
		}
	}
	return publishBuild(cmd, d, build)
}

// publishBuild uploads build and prints the URL.
func publishBuild(cmd *cobra.Command, d *domain.Draft, build *domain.Build) error {
	if publishService == nil {
		return notConfigured("publish")
	}
	url, err := publishService.Publish(cmd.Context(), d.DisplayName(), build)
	if err != nil {
		return err
	}
	cmd.Printf("Published: %s\n", url)
	return nil
}
