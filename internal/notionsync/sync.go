package notionsync

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dvloznov/money-tracker/internal/ledger"
)

// Service exports ledger rows to a single Notion database.
type Service struct {
	client     *NotionClient
	databaseID string
	log        zerolog.Logger
}

func NewService(client *NotionClient, databaseID string, log zerolog.Logger) *Service {
	return &Service{
		client:     client,
		databaseID: databaseID,
		log:        log.With().Str("component", "notionsync").Logger(),
	}
}

// ExportAll reads every ledger row and creates one Notion page per row.
// Rows that fail are logged and skipped; the export continues. Returns how
// many pages were created.
func (s *Service) ExportAll(ctx context.Context, l ledger.Ledger) (int, error) {
	rows, err := l.ReadAllRecords(ctx)
	if err != nil {
		return 0, fmt.Errorf("ExportAll: reading ledger: %w", err)
	}

	created := 0
	for i, row := range rows {
		props := RowToNotionProperties(row)
		if _, err := s.client.CreatePage(ctx, s.databaseID, props); err != nil {
			s.log.Error().Err(err).Int("row", i).Str("input", row.Input).Msg("exporting row failed")
			continue
		}
		created++
	}

	s.log.Info().Int("created", created).Int("total", len(rows)).Msg("notion export finished")
	return created, nil
}
