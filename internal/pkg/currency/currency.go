// internal/pkg/currency/currency.go
package currency

import "strconv"

// Vietnamese đồng has no fractional unit in practice, so amounts are
// plain int64 đồng and formatting never emits decimals.

// FormatVND formats an amount as Vietnamese currency with the ₫ symbol,
// using vi-VN digit grouping (dots), e.g. 1250000 -> "1.250.000 ₫".
func FormatVND(amount int64) string {
	return FormatVNDNumber(amount) + " ₫"
}

// FormatVNDNumber formats an amount with thousand separators and no
// currency symbol, e.g. 1250000 -> "1.250.000".
func FormatVNDNumber(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)

	// Insert a dot before every group of three digits from the right.
	n := len(digits)
	groups := (n - 1) / 3
	out := make([]byte, 0, n+groups+1)
	if negative {
		out = append(out, '-')
	}
	first := n - groups*3
	out = append(out, digits[:first]...)
	for i := first; i < n; i += 3 {
		out = append(out, '.')
		out = append(out, digits[i:i+3]...)
	}
	return string(out)
}

// FormatVNDWithSuffix formats an amount with a custom suffix instead of
// the currency symbol, e.g. FormatVNDWithSuffix(10000, "VND") -> "10.000 VND".
func FormatVNDWithSuffix(amount int64, suffix string) string {
	return FormatVNDNumber(amount) + " " + suffix
}
