package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vytor/nahuatl/internal/catalog"
	"github.com/vytor/nahuatl/internal/repository/sqlite"
)

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "List units stored in the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer database.Close()

		units, err := catalog.NewService(sqlite.NewCatalogRepository(database.DB)).Units(cmd.Context())
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTITLE\tLESSONS\tDONE\tPROGRESS\tLOCKED")
		for _, u := range units {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d%%\t%t\n", u.ID, u.Title, len(u.Lessons), u.CompletedLessons(), u.Progress, u.IsLocked)
		}
		return tw.Flush()
	},
}
