package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dvloznov/money-tracker/internal/notionsync"
)

// newExportNotionCommand mirrors the whole ledger into a Notion database.
func newExportNotionCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-notion",
		Short: "Export all ledger rows to the configured Notion database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if cfg.NotionToken == "" {
				return fmt.Errorf("NOTION_TOKEN environment variable is not set")
			}
			if cfg.Notion.DatabaseID == "" {
				return fmt.Errorf("notion.database_id is not configured")
			}
			log := newLogger()
			ctx := cmd.Context()

			l, err := BuildLedger(ctx, cfg)
			if err != nil {
				return err
			}

			client := notionsync.NewNotionClient(cfg.NotionToken)
			svc := notionsync.NewService(client, cfg.Notion.DatabaseID, log)

			created, err := svc.ExportAll(ctx, l)
			if err != nil {
				return err
			}
			color.New(color.FgGreen).Printf("exported %d rows to Notion\n", created)
			return nil
		},
	}

	return cmd
}
