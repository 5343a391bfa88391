package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vytor/nahuatl/internal/catalog"
	"github.com/vytor/nahuatl/internal/repository/sqlite"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace the database content with a content file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument(args)
		if err != nil {
			return err
		}
		database, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := catalog.Import(cmd.Context(), sqlite.NewCatalogRepository(database.DB), doc); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "content imported")
		return nil
	},
}
