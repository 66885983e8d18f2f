package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/archie/internal/adapters/driven/config/file"
	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/core/services"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Manage component drafts",
	Long: `Create, edit, import and export saved component descriptions.

Drafts are referenced by id, unique id prefix or name. Fields are given as
key=value pairs; run 'archie draft fields' to see the keys of each section.`,
}

var draftNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a draft",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraftNew,
}

var draftListCmd = &cobra.Command{
	Use:   "list",
	Short: "List drafts",
	Args:  cobra.NoArgs,
	RunE:  runDraftList,
}

var draftShowCmd = &cobra.Command{
	Use:   "show [draft]",
	Short: "Print a draft",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraftShow,
}

var draftDeleteCmd = &cobra.Command{
	Use:   "delete [draft]",
	Short: "Delete a draft",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraftDelete,
}

var draftImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import a draft file",
	Long: `Import a .json, .yaml or .yml file as a new draft.

The file may hold a full draft or just the component description.`,
	Args: cobra.ExactArgs(1),
	RunE: runDraftImport,
}

var draftExportCmd = &cobra.Command{
	Use:   "export [draft]",
	Short: "Export a draft to a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraftExport,
}

var draftSetCmd = &cobra.Command{
	Use:   "set [draft] [section] key=value...",
	Short: "Set fields of a section",
	Long: `Set fields of one of the singleton sections:
  identity, state, visuals, robustness`,
	Args: cobra.MinimumNArgs(3),
	RunE: runDraftSet,
}

var draftAddCmd = &cobra.Command{
	Use:   "add [draft] [list] key=value...",
	Short: "Add a record to a list",
	Long: `Append a record to one of the lists:
  props, variables, effects, interactions, emitters, conditionals

The new record's id is printed.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runDraftAdd,
}

var draftUpdateCmd = &cobra.Command{
	Use:   "update [draft] [list] [record-id] key=value...",
	Short: "Change fields of a record",
	Args:  cobra.MinimumNArgs(4),
	RunE:  runDraftUpdate,
}

var draftRemoveCmd = &cobra.Command{
	Use:   "remove [draft] [list] [record-id]",
	Short: "Remove a record",
	Args:  cobra.ExactArgs(3),
	RunE:  runDraftRemove,
}

var draftFieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the field keys of every section",
	Args:  cobra.NoArgs,
	RunE:  runDraftFields,
}

var (
	draftFrom   string
	draftName   string
	draftOut    string

	showFormat   string
	exportFormat string
)

func init() {
	draftNewCmd.Flags().StringVar(&draftFrom, "from", "", "Start from a draft file")
	draftImportCmd.Flags().StringVarP(&draftName, "name", "n", "", "Draft name (default from file)")
	draftExportCmd.Flags().StringVarP(&draftOut, "out", "o", "", "Output file (format from extension)")
	draftShowCmd.Flags().StringVarP(&showFormat, "format", "f", "yaml", "Output format: yaml or json")
	draftExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format when writing to stdout")

	draftCmd.AddCommand(draftNewCmd)
	draftCmd.AddCommand(draftListCmd)
	draftCmd.AddCommand(draftShowCmd)
	draftCmd.AddCommand(draftDeleteCmd)
	draftCmd.AddCommand(draftImportCmd)
	draftCmd.AddCommand(draftExportCmd)
	draftCmd.AddCommand(draftSetCmd)
	draftCmd.AddCommand(draftAddCmd)
	draftCmd.AddCommand(draftUpdateCmd)
	draftCmd.AddCommand(draftRemoveCmd)
	draftCmd.AddCommand(draftFieldsCmd)
	rootCmd.AddCommand(draftCmd)
}

func runDraftNew(cmd *cobra.Command, args []string) error {
	if draftService == nil {
		return notConfigured("draft")
	}

	doc := domain.DefaultDocumentState()
	if draftFrom != "" {
		d, err := file.ReadDraft(draftFrom)
		if err != nil {
			return err
		}
		doc = d.State
	}
	if doc.Identity.Name == "" {
		doc.Identity.Name = args[0]
	}

	d, err := draftService.Create(cmd.Context(), args[0], doc)
	if err != nil {
		return fmt.Errorf("failed to create draft: %w", err)
	}
	cmd.Printf("Created draft %s (%s)\n", d.DisplayName(), d.ID)
	return nil
}

func runDraftList(cmd *cobra.Command, _ []string) error {
	if draftService == nil {
		return notConfigured("draft")
	}

	drafts, err := draftService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list drafts: %w", err)
	}
	if len(drafts) == 0 {
		cmd.Println("No drafts. Create one with 'archie draft new <name>'.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCOMPONENT\tUPDATED")
	for _, d := range drafts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			shortID(d.ID), d.DisplayName(), orNone(d.State.Identity.Name),
			d.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func runDraftShow(cmd *cobra.Command, args []string) error {
	d, err := resolveDraft(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	format, err := file.ParseFormat(showFormat)
	if err != nil {
		return err
	}
	return file.EncodeDraft(cmd.OutOrStdout(), format, *d)
}

func runDraftDelete(cmd *cobra.Command, args []string) error {
	d, err := resolveDraft(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if err := draftService.Delete(cmd.Context(), d.ID); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	cmd.Printf("Deleted draft %s\n", d.DisplayName())
	return nil
}

func runDraftImport(cmd *cobra.Command, args []string) error {
	if draftService == nil {
		return notConfigured("draft")
	}

	imported, err := file.ReadDraft(args[0])
	if err != nil {
		return err
	}
	name := draftName
	if name == "" {
		name = imported.Name
	}
	if name == "" {
		name = imported.State.Identity.Name
	}

	d, err := draftService.Create(cmd.Context(), name, imported.State)
	if err != nil {
		return fmt.Errorf("failed to import draft: %w", err)
	}
	cmd.Printf("Imported %s as draft %s (%s)\n", args[0], d.DisplayName(), d.ID)
	return nil
}

func runDraftExport(cmd *cobra.Command, args []string) error {
	d, err := resolveDraft(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if draftOut != "" {
		if err := file.WriteDraft(draftOut, *d); err != nil {
			return err
		}
		cmd.Printf("Exported %s to %s\n", d.DisplayName(), draftOut)
		return nil
	}

	format := file.FormatYAML
	if exportFormat != "" {
		if format, err = file.ParseFormat(exportFormat); err != nil {
			return err
		}
	}
	return file.EncodeDraft(cmd.OutOrStdout(), format, *d)
}

func runDraftSet(cmd *cobra.Command, args []string) error {
	section, err := domain.ParseSectionKind(args[1])
	if err != nil {
		return err
	}
	fields, err := parseAssignments(args[2:])
	if err != nil {
		return err
	}
	return editDraft(cmd, args[0], func(doc domain.DocumentState) (domain.DocumentState, error) {
		return services.ApplySectionFields(doc, section, fields)
	}, fmt.Sprintf("Updated %s", section.Description()))
}

func runDraftAdd(cmd *cobra.Command, args []string) error {
	list, err := domain.ParseListKind(args[1])
	if err != nil {
		return err
	}
	fields, err := parseAssignments(args[2:])
	if err != nil {
		return err
	}

	var id string
	err = editDraft(cmd, args[0], func(doc domain.DocumentState) (domain.DocumentState, error) {
		var err error
		doc, id, err = services.ApplyListEdit(doc, list, "add", "", fields)
		return doc, err
	}, "")
	if err != nil {
		return err
	}
	cmd.Printf("Added to %s: %s\n", list.Description(), id)
	return nil
}

func runDraftUpdate(cmd *cobra.Command, args []string) error {
	list, err := domain.ParseListKind(args[1])
	if err != nil {
		return err
	}
	fields, err := parseAssignments(args[3:])
	if err != nil {
		return err
	}
	return editDraft(cmd, args[0], func(doc domain.DocumentState) (domain.DocumentState, error) {
		doc, _, err := services.ApplyListEdit(doc, list, "update", args[2], fields)
		return doc, err
	}, fmt.Sprintf("Updated %s record %s", strings.ToLower(list.Description()), args[2]))
}

func runDraftRemove(cmd *cobra.Command, args []string) error {
	list, err := domain.ParseListKind(args[1])
	if err != nil {
		return err
	}
	return editDraft(cmd, args[0], func(doc domain.DocumentState) (domain.DocumentState, error) {
		doc, _, err := services.ApplyListEdit(doc, list, "remove", args[2], nil)
		return doc, err
	}, fmt.Sprintf("Removed %s record %s", strings.ToLower(list.Description()), args[2]))
}

func runDraftFields(cmd *cobra.Command, _ []string) error {
	doc := domain.NewDocumentState()
	for _, kind := range domain.AllSectionKinds() {
		set, err := doc.Section(kind)
		if err != nil {
			return err
		}
		cmd.Printf("%-13s %s\n", kind, strings.Join(domain.FieldKeys(set.Fields()), ", "))
	}
	for _, kind := range domain.AllListKinds() {
		cmd.Printf("%-13s %s\n", kind, strings.Join(domain.FieldKeys(domain.FieldsOf(kind)), ", "))
	}
	return nil
}

// editDraft applies fn to a stored draft and saves the result.
func editDraft(cmd *cobra.Command, ref string, fn func(domain.DocumentState) (domain.DocumentState, error), done string) error {
	d, err := resolveDraft(cmd.Context(), ref)
	if err != nil {
		return err
	}
	next, err := fn(d.State)
	if err != nil {
		return err
	}
	d.State = next
	if err := draftService.Save(cmd.Context(), d); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	if done != "" {
		cmd.Println(done)
	}
	return nil
}
