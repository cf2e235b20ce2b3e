package notionsync

import (
	"strconv"
	"time"

	"github.com/jomei/notionapi"

	"github.com/dvloznov/money-tracker/internal/ledger"
)

// RowToNotionProperties converts one ledger row to the Notion transactions
// database schema: Description is the title, Type/Category/Currency are
// selects, amounts are numbers, Corrected is a checkbox.
func RowToNotionProperties(row ledger.Row) notionapi.Properties {
	props := notionapi.Properties{
		"Description": notionapi.TitleProperty{
			Title: richText(row.Description),
		},
	}

	if row.Type != "" {
		props["Type"] = notionapi.SelectProperty{
			Select: notionapi.Option{Name: row.Type},
		}
	}

	if row.Category != "" {
		props["Category"] = notionapi.SelectProperty{
			Select: notionapi.Option{Name: row.Category},
		}
	}

	if row.Currency != "" {
		props["Currency"] = notionapi.SelectProperty{
			Select: notionapi.Option{Name: row.Currency},
		}
	}

	if amount, err := strconv.ParseFloat(row.Amount, 64); err == nil {
		props["Amount"] = notionapi.NumberProperty{Number: amount}
	}
	if amountBase, err := strconv.ParseFloat(row.AmountBase, 64); err == nil {
		props["Amount in ILS"] = notionapi.NumberProperty{Number: amountBase}
	}

	if parsed, err := time.Parse(ledger.DateLayout, row.Date); err == nil {
		d := notionapi.Date(parsed)
		props["Date"] = notionapi.DateProperty{
			Date: &notionapi.DateObject{Start: &d},
		}
	}

	if row.User != "" {
		props["User"] = notionapi.RichTextProperty{
			RichText: richText(row.User),
		}
	}

	if row.Input != "" {
		props["Input"] = notionapi.RichTextProperty{
			RichText: richText(row.Input),
		}
	}

	props["Corrected"] = notionapi.CheckboxProperty{
		Checkbox: row.Corrected != "",
	}

	return props
}

func richText(content string) []notionapi.RichText {
	return []notionapi.RichText{
		{
			Type: notionapi.ObjectTypeText,
			Text: &notionapi.Text{Content: content},
		},
	}
}
