package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money going out from money coming in.
type TransactionType string

const (
	Expense TransactionType = "Expense"
	Income  TransactionType = "Income"
)

// DefaultCategory is the unclassified bucket. It is present in the seed
// category lists for both transaction types and is the category assigned by
// the fallback extraction path.
const DefaultCategory = "Other"

// ParseType coerces a free-form type string to a TransactionType.
// Unrecognized or empty input reports ok=false.
func ParseType(s string) (TransactionType, bool) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "expense":
		return Expense, true
	case "income":
		return Income, true
	default:
		return Expense, false
	}
}

// TransactionRecord is a fully populated, structured transaction ready for
// ledger storage. AmountBase is Amount converted into the base reporting
// currency, rounded to 2 decimal places.
type TransactionRecord struct {
	Type        TransactionType
	Amount      decimal.Decimal
	Currency    string
	AmountBase  decimal.Decimal
	Category    string
	Description string
	RawInput    string

	// Date and User are stamped by the front end, not by extraction.
	Date time.Time
	User string
}

// Equal compares the extraction-owned fields of two records. Date and User
// are excluded since they come from the message envelope.
func (r TransactionRecord) Equal(o TransactionRecord) bool {
	return r.Type == o.Type &&
		r.Amount.Equal(o.Amount) &&
		r.Currency == o.Currency &&
		r.AmountBase.Equal(o.AmountBase) &&
		r.Category == o.Category &&
		r.Description == o.Description &&
		r.RawInput == o.RawInput
}
