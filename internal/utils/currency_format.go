package utils

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatMinorUnits renders an amount held in minor units as a major-unit string
// with the currency's precision.
// Example: 12345 USD returns "123.45", 500 JPY returns "500", 1500 KWD returns "1.500"
func FormatMinorUnits(cents int64, currency string) string {
	precision := domain.MinorUnits(currency)
	return FormatWithPrecision(decimal.New(cents, -int32(precision)), precision)
}

// FormatWithPrecision formats an amount with the given precision
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}
