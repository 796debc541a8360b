// Package format renders money and measurements the way the dashboard shows
// them (Brazilian real, pt-BR separators).
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every formatted amount.
const CurrencySymbol = "R$"

// Currency returns a currency string with the real sign and pt-BR separators (e.g., "-R$ 1.234,56").
func Currency(amount decimal.Decimal) string {
	formatted := formatPositiveCurrency(amount.Abs())
	if amount.IsNegative() {
		return "-" + CurrencySymbol + " " + formatted
	}
	return CurrencySymbol + " " + formatted
}

// ParseCurrency accepts "R$ 32.500,00", "32.500,00" or "32500.00" and returns
// the amount.
func ParseCurrency(value string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(value)
	negative := strings.HasPrefix(trimmed, "-")
	trimmed = strings.TrimPrefix(trimmed, "-")
	trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, CurrencySymbol))
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("invalid currency amount %q", value)
	}

	if strings.Contains(trimmed, ",") {
		trimmed = strings.ReplaceAll(trimmed, ".", "")
		trimmed = strings.Replace(trimmed, ",", ".", 1)
	}

	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid currency amount %q: %w", value, err)
	}
	if negative {
		amount = amount.Neg()
	}
	return amount, nil
}

// Energy formats a daily yield, e.g. "15.7 kWh/dia".
func Energy(kwhPerDay float64) string {
	return strconv.FormatFloat(kwhPerDay, 'f', -1, 64) + " kWh/dia"
}

// Years formats a payback period, e.g. "3.2 anos".
func Years(years float64) string {
	return strconv.FormatFloat(years, 'f', -1, 64) + " anos"
}

// Area formats a roof area, e.g. "32m²".
func Area(sqm float64) string {
	return strconv.FormatFloat(sqm, 'f', -1, 64) + "m²"
}

func formatPositiveCurrency(value decimal.Decimal) string {
	formatted := value.StringFixed(2)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte('.')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "," + decPart
}
