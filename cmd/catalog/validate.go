package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vytor/nahuatl/internal/catalog"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a content file (default: the embedded content)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument(args)
		if err != nil {
			return err
		}
		if err := catalog.Validate(doc); err != nil {
			return err
		}
		content := doc.Content()
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d units, %d words\n", len(content.Units), len(content.Words))
		return nil
	},
}
