package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check component source",
	Long: `Check a component file with the configured validator.

The command exits non-zero when the code is invalid. The structural
validator checks brackets, strings and the default export; the browser
validator transpiles the file with Babel.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

// errInvalidCode is returned so the process exits non-zero.
var errInvalidCode = errors.New("code failed validation")

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if buildService == nil {
		return notConfigured("build")
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	res, err := buildService.Validate(cmd.Context(), string(src))
	if err != nil {
		return fmt.Errorf("validation could not run: %w", err)
	}
	if !res.Valid {
		cmd.Printf("%s: invalid (%s)\n  %s\n", args[0], res.Validator, res.Diagnostic)
		return errInvalidCode
	}
	cmd.Printf("%s: valid (%s)\n", args[0], res.Validator)
	return nil
}
