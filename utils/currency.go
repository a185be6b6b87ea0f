package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LineTotal returns price × quantity without float accumulation error.
func LineTotal(price float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity)))
}

// FormatCurrency renders an amount with thousands separators and two decimals,
// e.g. 15000.5 -> "15,000.50".
func FormatCurrency(amount float64) string {
	formatted := decimal.NewFromFloat(amount).StringFixed(2)

	sign := ""
	if strings.HasPrefix(formatted, "-") {
		sign, formatted = "-", formatted[1:]
	}
	parts := strings.SplitN(formatted, ".", 2)
	integerPart := parts[0]

	var result []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		result = append([]string{integerPart[start:i]}, result...)
	}
	return sign + strings.Join(result, ",") + "." + parts[1]
}
