package utils

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatMoney renders the absolute value with two decimals and thousands separators.
// The sign is never part of the output; callers decide sign and color.
func FormatMoney(amount decimal.Decimal) string {
	d := amount.Abs().Round(2)
	whole := d.Truncate(0)
	cents := d.Sub(whole).Shift(2).IntPart()

	return fmt.Sprintf("$%s.%02d", humanize.Comma(whole.IntPart()), cents)
}

// ParseAmount accepts user input such as "1,250.5" or "$40".
func ParseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("amount is empty")
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount: %s", raw)
	}
	return amount, nil
}
