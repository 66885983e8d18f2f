package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/archie/internal/core/domain"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List builds of a draft",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var (
	historyDraft string
	historyLimit int
)

func init() {
	historyCmd.Flags().StringVarP(&historyDraft, "draft", "d", "", "Stored draft id or name")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Maximum builds to show (0 = all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if buildService == nil {
		return notConfigured("build")
	}
	d, err := resolveDraft(cmd.Context(), historyDraft)
	if err != nil {
		return err
	}

	builds, err := buildService.History(cmd.Context(), d.ID, historyLimit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if len(builds) == 0 {
		cmd.Printf("No builds for %s yet.\n", d.DisplayName())
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tMODEL\tSTATUS")
	for _, b := range builds {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			shortID(b.ID), b.CreatedAt.Local().Format("2006-01-02 15:04:05"), b.Model, buildStatus(b))
	}
	return w.Flush()
}

func buildStatus(b domain.Build) string {
	switch {
	case b.Err != "":
		return "failed: " + b.Err
	case !b.Validation.Valid:
		return "invalid: " + b.Validation.Diagnostic
	default:
		return "ok"
	}
}
