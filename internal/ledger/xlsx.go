package ledger

import (
	"context"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/dvloznov/money-tracker/internal/model"
)

// XLSXLedger stores records in a local Excel workbook, for running without
// any cloud credentials. Not safe for concurrent writers; the single
// message-at-a-time processing model makes that acceptable.
type XLSXLedger struct {
	path  string
	sheet string
}

// NewXLSXLedger opens or creates the workbook and makes sure the header row
// exists.
func NewXLSXLedger(path, sheet string) (*XLSXLedger, error) {
	if sheet == "" {
		sheet = defaultSheetName
	}
	l := &XLSXLedger{path: path, sheet: sheet}

	f, created, err := l.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if created {
		if err := l.writeHeader(f); err != nil {
			return nil, err
		}
		if err := f.SaveAs(path); err != nil {
			return nil, fmt.Errorf("NewXLSXLedger: saving new workbook %q: %w", path, err)
		}
		return l, nil
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("NewXLSXLedger: reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		if err := l.writeHeader(f); err != nil {
			return nil, err
		}
		if err := f.Save(); err != nil {
			return nil, fmt.Errorf("NewXLSXLedger: saving header: %w", err)
		}
	}
	return l, nil
}

func (l *XLSXLedger) open() (*excelize.File, bool, error) {
	if _, err := os.Stat(l.path); os.IsNotExist(err) {
		f := excelize.NewFile()
		// The default sheet is "Sheet1"; rename it to ours.
		if err := f.SetSheetName("Sheet1", l.sheet); err != nil {
			return nil, false, fmt.Errorf("XLSXLedger: renaming sheet: %w", err)
		}
		// Give the fresh workbook its target path so f.Save works.
		f.Path = l.path
		return f, true, nil
	}

	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, false, fmt.Errorf("XLSXLedger: opening %q: %w", l.path, err)
	}
	return f, false, nil
}

func (l *XLSXLedger) writeHeader(f *excelize.File) error {
	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(l.sheet, "A1", &header); err != nil {
		return fmt.Errorf("XLSXLedger: writing header: %w", err)
	}
	return nil
}

// Append implements Ledger.
func (l *XLSXLedger) Append(ctx context.Context, record model.TransactionRecord) error {
	return l.AppendBatch(ctx, []model.TransactionRecord{record})
}

// AppendBatch implements Ledger.
func (l *XLSXLedger) AppendBatch(ctx context.Context, records []model.TransactionRecord) error {
	if len(records) == 0 {
		return nil
	}

	f, _, err := l.open()
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(l.sheet)
	if err != nil {
		return fmt.Errorf("XLSXLedger.AppendBatch: reading sheet: %w", err)
	}

	next := len(rows) + 1
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, next+i)
		if err != nil {
			return fmt.Errorf("XLSXLedger.AppendBatch: cell name: %w", err)
		}
		cells := recordCells(r)
		if err := f.SetSheetRow(l.sheet, cell, &cells); err != nil {
			return fmt.Errorf("XLSXLedger.AppendBatch: writing row %d: %w", next+i, err)
		}
	}

	if err := f.Save(); err != nil {
		return fmt.Errorf("XLSXLedger.AppendBatch: saving workbook: %w", err)
	}
	return nil
}

// ReadAllRecords implements Ledger.
func (l *XLSXLedger) ReadAllRecords(ctx context.Context) ([]Row, error) {
	f, _, err := l.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := f.GetRows(l.sheet)
	if err != nil {
		return nil, fmt.Errorf("XLSXLedger.ReadAllRecords: reading sheet: %w", err)
	}
	if len(raw) <= 1 {
		return nil, nil
	}

	rows := make([]Row, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		generic := make([]interface{}, len(cells))
		for i, c := range cells {
			generic[i] = c
		}
		rows = append(rows, rowFromCells(generic))
	}
	return rows, nil
}
