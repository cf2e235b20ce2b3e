// Package currency converts transaction amounts into the base reporting
// currency using a static exchange rate table.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultBase is the base reporting currency. All amounts are converted into
// it for aggregate reporting; its rate is always 1.0.
const DefaultBase = "ILS"

// defaultRates maps currency codes to their rate relative to DefaultBase.
// The table is static for the process lifetime; there is no live refresh.
var defaultRates = map[string]float64{
	"ILS": 1.0,
	"USD": 3.7,
	"EUR": 4.0,
	"RUB": 0.04,
	"GBP": 4.7,
}

// Converter holds an immutable rate table keyed by uppercase currency code.
type Converter struct {
	base  string
	rates map[string]decimal.Decimal
}

// NewConverter builds a Converter from a rate table. The base currency is
// always given rate 1.0, regardless of what the table says.
func NewConverter(base string, rates map[string]float64) *Converter {
	c := &Converter{
		base:  strings.ToUpper(base),
		rates: make(map[string]decimal.Decimal, len(rates)+1),
	}
	for code, rate := range rates {
		c.rates[strings.ToUpper(code)] = decimal.NewFromFloat(rate)
	}
	c.rates[c.base] = decimal.NewFromInt(1)
	return c
}

// DefaultConverter returns a Converter seeded with the built-in rate table.
func DefaultConverter() *Converter {
	return NewConverter(DefaultBase, defaultRates)
}

// Base returns the base currency code.
func (c *Converter) Base() string {
	return c.base
}

// Rate returns the conversion rate for the given code. Unknown codes get
// rate 1.0: the amount is treated as already being in the base unit. This is
// a deliberate approximation, not an error.
func (c *Converter) Rate(code string) decimal.Decimal {
	if rate, ok := c.rates[strings.ToUpper(code)]; ok {
		return rate
	}
	return decimal.NewFromInt(1)
}

// ToBase converts an amount in the given currency into the base currency,
// rounded to 2 decimal places.
func (c *Converter) ToBase(amount decimal.Decimal, code string) decimal.Decimal {
	return amount.Mul(c.Rate(code)).Round(2)
}

// Known reports whether the code is present in the rate table.
func (c *Converter) Known(code string) bool {
	_, ok := c.rates[strings.ToUpper(code)]
	return ok
}
