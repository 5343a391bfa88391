package main

import (
	"github.com/spf13/cobra"
	"github.com/vytor/nahuatl/internal/catalog"
	"github.com/vytor/nahuatl/internal/db"
	"github.com/vytor/nahuatl/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:           "catalog",
	Short:         "Inspect and load Nahuatl learning content",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, _ := cmd.Flags().GetString("log-level")
		logger.SetDefault(logger.New(logger.WithLevel(logger.ParseLevel(level))))
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "file:nahuatl.db", "Path to the SQLite database")
	rootCmd.PersistentFlags().String("log-level", "WARN", "Log level (DEBUG, INFO, WARN, ERROR)")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(unitsCmd)
}

// loadDocument reads the YAML file named by args, or the embedded content
// when none is given.
func loadDocument(args []string) (*catalog.Document, error) {
	if len(args) == 0 {
		return catalog.Embedded()
	}
	return catalog.LoadFile(args[0])
}

func openDB(cmd *cobra.Command) (*db.DB, error) {
	path, _ := cmd.Flags().GetString("db")
	return db.Open(path)
}
