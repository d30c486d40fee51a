package insights

import (
	"fmt"
	"strings"
)

// FormatCurrency renders an amount as US-style currency with thousands
// separators, e.g. 1234.5 → "$1,234.50", -20 → "-$20.00".
func FormatCurrency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	whole := fmt.Sprintf("%.2f", amount)
	dot := strings.IndexByte(whole, '.')
	intPart, fracPart := whole[:dot], whole[dot:]

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	return sign + "$" + b.String() + fracPart
}

// FormatPercentage renders a signed percentage with one decimal place and an
// explicit plus for non-negative values, e.g. 12.34 → "+12.3%".
func FormatPercentage(value float64) string {
	if value >= 0 {
		return fmt.Sprintf("+%.1f%%", value)
	}
	return fmt.Sprintf("%.1f%%", value)
}
