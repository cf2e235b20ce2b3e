package ledger

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/dvloznov/money-tracker/internal/model"
)

// bqRow mirrors the ledger columns in the transactions table. Everything is a
// string to keep the schema aligned with the spreadsheet backends.
type bqRow struct {
	Date        string `bigquery:"date"`
	Type        string `bigquery:"type"`
	Description string `bigquery:"description"`
	Category    string `bigquery:"category"`
	Amount      string `bigquery:"amount"`
	Currency    string `bigquery:"currency"`
	AmountBase  string `bigquery:"amount_base"`
	User        string `bigquery:"user"`
	Input       string `bigquery:"input"`
	Corrected   string `bigquery:"corrected"`
	InsertedAt  int64  `bigquery:"inserted_at"`
}

// BigQueryLedger stores records in a BigQuery table. A client is created per
// call; the bot's message rate makes connection reuse irrelevant.
type BigQueryLedger struct {
	projectID string
	datasetID string
	tableID   string
}

func NewBigQueryLedger(projectID, datasetID, tableID string) *BigQueryLedger {
	if tableID == "" {
		tableID = "transactions"
	}
	return &BigQueryLedger{
		projectID: projectID,
		datasetID: datasetID,
		tableID:   tableID,
	}
}

// Append implements Ledger.
func (l *BigQueryLedger) Append(ctx context.Context, record model.TransactionRecord) error {
	return l.AppendBatch(ctx, []model.TransactionRecord{record})
}

// AppendBatch implements Ledger.
func (l *BigQueryLedger) AppendBatch(ctx context.Context, records []model.TransactionRecord) error {
	if len(records) == 0 {
		return nil
	}

	client, err := bigquery.NewClient(ctx, l.projectID)
	if err != nil {
		return fmt.Errorf("BigQueryLedger.AppendBatch: bigquery client: %w", err)
	}
	defer client.Close()

	base := time.Now().UnixNano()
	rows := make([]*bqRow, 0, len(records))
	for i, r := range records {
		cells := recordCells(r)
		rows = append(rows, &bqRow{
			Date:        cells[0].(string),
			Type:        cells[1].(string),
			Description: cells[2].(string),
			Category:    cells[3].(string),
			Amount:      cells[4].(string),
			Currency:    cells[5].(string),
			AmountBase:  cells[6].(string),
			User:        cells[7].(string),
			Input:       cells[8].(string),
			InsertedAt:  base + int64(i),
		})
	}

	table := client.DatasetInProject(l.projectID, l.datasetID).Table(l.tableID)
	if err := table.Inserter().Put(ctx, rows); err != nil {
		return fmt.Errorf("BigQueryLedger.AppendBatch: inserting %d rows: %w", len(rows), err)
	}
	return nil
}

// ReadAllRecords implements Ledger. Rows come back oldest first so the
// trainer's "most recent" selection works the same as with the spreadsheet
// backends.
func (l *BigQueryLedger) ReadAllRecords(ctx context.Context) ([]Row, error) {
	client, err := bigquery.NewClient(ctx, l.projectID)
	if err != nil {
		return nil, fmt.Errorf("BigQueryLedger.ReadAllRecords: bigquery client: %w", err)
	}
	defer client.Close()

	q := client.Query(fmt.Sprintf(`
		SELECT date, type, description, category, amount, currency,
		       amount_base, user, input, corrected
		FROM %s.%s
		ORDER BY inserted_at
	`, l.datasetID, l.tableID))

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("BigQueryLedger.ReadAllRecords: query read: %w", err)
	}

	var rows []Row
	for {
		var r bqRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("BigQueryLedger.ReadAllRecords: iter next: %w", err)
		}
		rows = append(rows, Row{
			Date:        r.Date,
			Type:        r.Type,
			Description: r.Description,
			Category:    r.Category,
			Amount:      r.Amount,
			Currency:    r.Currency,
			AmountBase:  r.AmountBase,
			User:        r.User,
			Input:       r.Input,
			Corrected:   r.Corrected,
		})
	}
	return rows, nil
}
