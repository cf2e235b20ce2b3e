package currency

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestToBaseKnownCodes(t *testing.T) {
	conv := DefaultConverter()

	tests := []struct {
		code   string
		amount string
		want   string
	}{
		{"ILS", "70", "70"},
		{"USD", "50", "185"},
		{"EUR", "10", "40"},
		{"RUB", "1500", "60"},
		{"GBP", "3", "14.1"},
		{"usd", "1", "3.7"}, // lowercase code is uppercased
	}

	for _, tt := range tests {
		t.Run(tt.code+"_"+tt.amount, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			want := decimal.RequireFromString(tt.want)
			got := conv.ToBase(amount, tt.code)
			if !got.Equal(want) {
				t.Errorf("ToBase(%s, %s) = %s, want %s", tt.amount, tt.code, got, want)
			}
		})
	}
}

func TestToBaseMatchesRate(t *testing.T) {
	conv := DefaultConverter()
	amount := decimal.RequireFromString("123.456")

	for _, code := range []string{"ILS", "USD", "EUR", "RUB", "GBP"} {
		want := amount.Mul(conv.Rate(code)).Round(2)
		got := conv.ToBase(amount, code)
		if !got.Equal(want) {
			t.Errorf("ToBase(%s, %s) = %s, want round(amount*rate, 2) = %s", amount, code, got, want)
		}
	}
}

func TestToBaseUnknownCode(t *testing.T) {
	conv := DefaultConverter()
	amount := decimal.RequireFromString("99.999")

	// Unknown currencies convert at rate 1.0.
	got := conv.ToBase(amount, "XYZ")
	want := amount.Round(2)
	if !got.Equal(want) {
		t.Errorf("ToBase(%s, XYZ) = %s, want %s", amount, got, want)
	}
	if conv.Known("XYZ") {
		t.Error("Known(XYZ) = true, want false")
	}
}

func TestBaseRateIsOne(t *testing.T) {
	// Even if a config table misstates the base rate, the base stays 1.0.
	conv := NewConverter("ILS", map[string]float64{"ILS": 2.0, "USD": 3.7})
	if !conv.Rate("ILS").Equal(decimal.NewFromInt(1)) {
		t.Errorf("Rate(ILS) = %s, want 1", conv.Rate("ILS"))
	}
}

func TestRounding(t *testing.T) {
	conv := NewConverter("ILS", map[string]float64{"USD": 3.7})
	got := conv.ToBase(decimal.RequireFromString("13.29"), "USD")
	want := decimal.RequireFromString("49.17") // 13.29 * 3.7 = 49.173
	if !got.Equal(want) {
		t.Errorf("ToBase(13.29, USD) = %s, want %s", got, want)
	}
}
