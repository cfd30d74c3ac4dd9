package services

import (
	"fmt"
	"strings"
)

// FormatBRL formats a float64 amount into Brazilian Real notation.
// Thousands are separated with dots and the decimal separator is a
// comma (e.g., R$ 1.234.567,89). The result always includes exactly
// 2 decimal places.
func FormatBRL(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	// Format with 2 decimal places.
	raw := fmt.Sprintf("%.2f", amount)

	// Split into integer and decimal parts.
	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	result := "R$ " + groupThousands(intPart) + "," + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts dots into an integer string every 3 digits
// from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]

	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "." + result
		remaining = remaining[:len(remaining)-3]
	}
	if len(remaining) > 0 {
		result = remaining + "." + result
	}

	return result
}

// FormatQuantity returns a display string for a quantity value.
// Whole numbers drop the fractional part entirely ("2" instead of
// "2,0"); fractional values use a comma decimal separator with up
// to 2 decimal places ("2,5", "2,25").
func FormatQuantity(qty float64) string {
	if qty == float64(int64(qty)) {
		return fmt.Sprintf("%d", int64(qty))
	}
	s := fmt.Sprintf("%.2f", qty)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return strings.Replace(s, ".", ",", 1)
}

// TruncateName cuts an item name down to max runes so it fits the
// fixed-width column of the materials table.
func TruncateName(name string, max int) string {
	runes := []rune(name)
	if len(runes) <= max {
		return name
	}
	return string(runes[:max])
}
