// Package ledger persists transaction records and serves historical rows
// back to the trainer. Three backends implement the same interface: Google
// Sheets (the primary store), a local XLSX workbook, and BigQuery.
package ledger

import (
	"context"
	"fmt"

	"github.com/dvloznov/money-tracker/internal/model"
)

// DateLayout is the ledger's date format (e.g. "24-10-25").
const DateLayout = "02-01-06"

// Header is the fixed column order shared by all backends. Input holds the
// original raw message and Corrected the human-review marker; both feed the
// trainer.
var Header = []string{
	"Date",
	"Type",
	"Description",
	"Category",
	"Amount",
	"Currency",
	"Amount in ILS",
	"User",
	"Input",
	"Corrected",
}

// Row is one historical ledger row as the trainer sees it. All values are
// strings; spreadsheet cells carry no types worth trusting.
type Row struct {
	Date        string
	Type        string
	Description string
	Category    string
	Amount      string
	Currency    string
	AmountBase  string
	User        string
	Input       string
	Corrected   string
}

// Ledger is the store collaborator consumed by the bot and the trainer.
type Ledger interface {
	// Append writes one record in the fixed column order.
	Append(ctx context.Context, record model.TransactionRecord) error

	// AppendBatch writes records in one call where the backend supports it.
	AppendBatch(ctx context.Context, records []model.TransactionRecord) error

	// ReadAllRecords returns every data row, oldest first.
	ReadAllRecords(ctx context.Context) ([]Row, error)
}

// recordCells renders a record into the fixed column order.
func recordCells(r model.TransactionRecord) []interface{} {
	date := ""
	if !r.Date.IsZero() {
		date = r.Date.Format(DateLayout)
	}
	return []interface{}{
		date,
		string(r.Type),
		r.Description,
		r.Category,
		r.Amount.StringFixed(2),
		r.Currency,
		r.AmountBase.StringFixed(2),
		r.User,
		r.RawInput,
		"", // Corrected is set by humans reviewing the sheet
	}
}

// rowFromCells maps a raw spreadsheet row onto a Row, tolerating short rows.
func rowFromCells(cells []interface{}) Row {
	get := func(i int) string {
		if i >= len(cells) {
			return ""
		}
		switch v := cells[i].(type) {
		case nil:
			return ""
		case string:
			return v
		default:
			return fmt.Sprint(v)
		}
	}
	return Row{
		Date:        get(0),
		Type:        get(1),
		Description: get(2),
		Category:    get(3),
		Amount:      get(4),
		Currency:    get(5),
		AmountBase:  get(6),
		User:        get(7),
		Input:       get(8),
		Corrected:   get(9),
	}
}
