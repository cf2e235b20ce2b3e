// Package commands implements the moneyctl CLI: maintenance operations that
// run next to the bot rather than inside it.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "moneyctl",
		Short: "Maintenance commands for the money tracker",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to money-tracker.yaml (optional)")

	rootCmd.AddCommand(newBulkUploadCommand(&configPath))
	rootCmd.AddCommand(newRetrainCommand(&configPath))
	rootCmd.AddCommand(newExportNotionCommand(&configPath))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
