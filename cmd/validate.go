package cmd

import (
	"fmt"

	"contract-manager/feature/validation"

	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <piva|iban> <value>",
	Short: "Check a partita IVA or an IBAN",
	Long: `Runs the same checks the forms use. IBANs are printed normalized.
The command fails when the value is not valid, so it can be used in scripts.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := validation.ParseKind(args[0])
		if err != nil {
			return fmt.Errorf("%w: %s", err, args[0])
		}

		res, err := validation.Check(kind, args[1])
		if err != nil {
			return err
		}

		if !res.Valid {
			return fmt.Errorf("%s %q is not valid", res.Kind, res.Value)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %q is valid\n", res.Kind, res.Value)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(validateCmd)
}
