package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jbweber/virtbind/domain"
)

var validateCmd = &cobra.Command{
	Use:   "validate <domain.xml>",
	Short: "Run the external schema validator against a domain XML file",
	Long: `Parse a domain XML file and run virt-xml-validate against its
serialized form.

The validator's verdict decides the exit status; its diagnostic output is
printed verbatim either way.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := domain.ParseFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to load domain XML: %w", err)
		}
		defer d.Release()

		ok, diagnostics, err := d.Validate(cmd.Context())
		if err != nil {
			return err
		}
		if diagnostics != "" {
			fmt.Print(diagnostics)
		}
		if !ok {
			return fmt.Errorf("schema validation failed for %s", args[0])
		}

		fmt.Printf("✓ %s is valid\n", args[0])
		return nil
	},
}
