package categorize

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dvloznov/money-tracker/internal/currency"
	"github.com/dvloznov/money-tracker/internal/model"
)

func TestFallbackScenarios(t *testing.T) {
	conv := currency.DefaultConverter()

	tests := []struct {
		name         string
		input        string
		wantType     model.TransactionType
		wantAmount   string
		wantCurrency string
	}{
		{"taxi expense", "Taxi 70", model.Expense, "70", "ILS"},
		{"plus sign income", "+5000 freelance", model.Income, "5000", "ILS"},
		{"salary keyword", "salary 9000", model.Income, "9000", "ILS"},
		{"russian income keyword", "зарплата 12000", model.Income, "12000", "ILS"},
		{"dollar symbol", "Spent 50$ on taxi", model.Expense, "50", "USD"},
		{"euro word", "20 euro museum", model.Expense, "20", "EUR"},
		{"ruble symbol", "хлеб 100₽", model.Expense, "100", "RUB"},
		{"pound word", "3 pounds bus", model.Expense, "3", "GBP"},
		{"decimal amount", "book 13.29 dollars", model.Expense, "13.29", "USD"},
		{"no amount", "coffee", model.Expense, "0", "ILS"},
		{"empty input", "", model.Expense, "0", "ILS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fallback(tt.input, conv)

			if got.Type != tt.wantType {
				t.Errorf("Type = %s, want %s", got.Type, tt.wantType)
			}
			if !got.Amount.Equal(decimal.RequireFromString(tt.wantAmount)) {
				t.Errorf("Amount = %s, want %s", got.Amount, tt.wantAmount)
			}
			if got.Currency != tt.wantCurrency {
				t.Errorf("Currency = %s, want %s", got.Currency, tt.wantCurrency)
			}
			if got.Category != model.DefaultCategory {
				t.Errorf("Category = %s, want %s", got.Category, model.DefaultCategory)
			}
			if got.RawInput != tt.input {
				t.Errorf("RawInput = %q, want %q", got.RawInput, tt.input)
			}
		})
	}
}

func TestFallbackInvariants(t *testing.T) {
	conv := currency.DefaultConverter()

	inputs := []string{
		"", "   ", "?!?", "Taxi 70", "+5k freelance", "кофе 23",
		"день рождение вино bday party 690", "₪₪₪ 0.0001",
	}

	for _, in := range inputs {
		got := Fallback(in, conv)

		if got.Amount.IsNegative() {
			t.Errorf("Fallback(%q).Amount = %s, negative", in, got.Amount)
		}
		if got.Type != model.Expense && got.Type != model.Income {
			t.Errorf("Fallback(%q).Type = %q, invalid", in, got.Type)
		}
		if got.Description == "" {
			t.Errorf("Fallback(%q).Description is empty", in)
		}
		want := conv.ToBase(got.Amount, got.Currency)
		if !got.AmountBase.Equal(want) {
			t.Errorf("Fallback(%q).AmountBase = %s, want %s", in, got.AmountBase, want)
		}
	}
}

func TestFallbackDescription(t *testing.T) {
	conv := currency.DefaultConverter()

	tests := []struct {
		input string
		want  string
	}{
		{"Taxi 70", "Taxi"},
		{"50$ coffee and cake", "coffee"},
		{"12345", PlaceholderDescription},
	}

	for _, tt := range tests {
		got := Fallback(tt.input, conv)
		if got.Description != tt.want {
			t.Errorf("Fallback(%q).Description = %q, want %q", tt.input, got.Description, tt.want)
		}
	}
}
