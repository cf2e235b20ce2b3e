package categorize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/dvloznov/money-tracker/internal/currency"
	"github.com/dvloznov/money-tracker/internal/model"
)

var amountPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// incomeKeywords flag a message as income in either supported language.
// A leading "+" counts the same way ("+5k freelance").
var incomeKeywords = []string{
	"получил", "зарплата", "доход", "заработал",
	"+", "income", "salary", "earned",
}

// currencyHint maps detection markers to a currency code. Scanned in order;
// the first hit wins.
type currencyHint struct {
	code    string
	markers []string
}

var currencyHints = []currencyHint{
	{"USD", []string{"$", "usd", "dollar"}},
	{"EUR", []string{"€", "eur", "euro"}},
	{"RUB", []string{"₽", "руб", "rub"}},
	{"GBP", []string{"£", "gbp", "pound"}},
	{"ILS", []string{"₪", "ils", "shekel", "шекел"}},
}

// Fallback is the deterministic, network-free extraction path used when
// model-based extraction fails. It always succeeds and never grows the
// taxonomy: without a semantic signal the category stays at the default
// bucket.
func Fallback(text string, conv *currency.Converter) model.TransactionRecord {
	lower := strings.ToLower(text)

	amount := decimal.Zero
	if match := amountPattern.FindString(text); match != "" {
		if parsed, err := decimal.NewFromString(match); err == nil {
			amount = parsed
		}
	}

	typ := model.Expense
	for _, keyword := range incomeKeywords {
		if strings.Contains(lower, keyword) {
			typ = model.Income
			break
		}
	}

	code := conv.Base()
	for _, hint := range currencyHints {
		if containsAny(lower, hint.markers) {
			code = hint.code
			break
		}
	}

	return model.TransactionRecord{
		Type:        typ,
		Amount:      amount,
		Currency:    code,
		AmountBase:  conv.ToBase(amount, code),
		Category:    model.DefaultCategory,
		Description: fallbackDescription(text),
		RawInput:    text,
	}
}

// fallbackDescription strips digits, currency symbols, and non-alphabetic
// punctuation, then uses the first remaining token as the phrase.
func fallbackDescription(text string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return ' '
	}, text)

	tokens := strings.Fields(cleaned)
	if len(tokens) == 0 {
		return PlaceholderDescription
	}
	return tokens[0]
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
