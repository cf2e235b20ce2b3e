package ledger

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/dvloznov/money-tracker/internal/model"
)

const defaultSheetName = "Transactions"

// SheetsLedger stores records in a Google Sheets worksheet. It assumes a
// service account with edit access to the spreadsheet.
type SheetsLedger struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
}

// NewSheetsLedger connects to the spreadsheet and makes sure the header row
// exists. credentialsFile may be empty, in which case Application Default
// Credentials are used.
func NewSheetsLedger(ctx context.Context, credentialsFile, spreadsheetID, sheetName string) (*SheetsLedger, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	opts = append(opts, option.WithScopes(sheets.SpreadsheetsScope))

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewSheetsLedger: creating sheets service: %w", err)
	}

	if sheetName == "" {
		sheetName = defaultSheetName
	}
	l := &SheetsLedger{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}
	if err := l.ensureHeader(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

// URL returns the spreadsheet link for the /table command.
func (l *SheetsLedger) URL() string {
	return "https://docs.google.com/spreadsheets/d/" + l.spreadsheetID
}

// ensureHeader writes the header row if the first row is empty.
func (l *SheetsLedger) ensureHeader(ctx context.Context) error {
	rng := fmt.Sprintf("%s!A1:J1", l.sheetName)
	resp, err := l.svc.Spreadsheets.Values.Get(l.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("SheetsLedger.ensureHeader: reading header: %w", err)
	}
	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		return nil
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{header}}
	_, err = l.svc.Spreadsheets.Values.Update(l.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("SheetsLedger.ensureHeader: writing header: %w", err)
	}
	return nil
}

// Append implements Ledger.
func (l *SheetsLedger) Append(ctx context.Context, record model.TransactionRecord) error {
	return l.AppendBatch(ctx, []model.TransactionRecord{record})
}

// AppendBatch implements Ledger.
func (l *SheetsLedger) AppendBatch(ctx context.Context, records []model.TransactionRecord) error {
	if len(records) == 0 {
		return nil
	}

	values := make([][]interface{}, 0, len(records))
	for _, r := range records {
		values = append(values, recordCells(r))
	}

	rng := fmt.Sprintf("%s!A:J", l.sheetName)
	vr := &sheets.ValueRange{Values: values}
	_, err := l.svc.Spreadsheets.Values.Append(l.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("SheetsLedger.AppendBatch: appending %d rows: %w", len(records), err)
	}
	return nil
}

// ReadAllRecords implements Ledger.
func (l *SheetsLedger) ReadAllRecords(ctx context.Context) ([]Row, error) {
	rng := fmt.Sprintf("%s!A2:J", l.sheetName)
	resp, err := l.svc.Spreadsheets.Values.Get(l.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("SheetsLedger.ReadAllRecords: reading rows: %w", err)
	}

	rows := make([]Row, 0, len(resp.Values))
	for _, cells := range resp.Values {
		rows = append(rows, rowFromCells(cells))
	}
	return rows, nil
}
