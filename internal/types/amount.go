package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AmountPrecision is the number of decimal places money values are rounded to
const AmountPrecision int32 = 2

// ParseAmount parses operator input into a decimal.
// Empty or non numeric input yields zero instead of an error so that an
// operator is never blocked halfway through typing a value.
func ParseAmount(value string) decimal.Decimal {
	return ParseNullAmount(value).Decimal
}

// ParseNullAmount is like ParseAmount but keeps track of whether a number was entered at all
func ParseNullAmount(value string) decimal.NullDecimal {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// RoundAmount rounds a money value to AmountPrecision places
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(AmountPrecision)
}

// FormatAmount renders a money value with exactly AmountPrecision places
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(AmountPrecision)
}
