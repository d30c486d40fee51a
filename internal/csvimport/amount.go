// Package csvimport turns schema-less bank CSV exports into normalized
// transactions: it detects column roles from arbitrary header names,
// normalizes dates and amounts, and runs the categorization rules over
// every row while collecting per-row errors.
package csvimport

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// cleanAmount strips currency symbols, thousands separators, and all
// whitespace, then rewrites a fully parenthesized value as negative
// ("(12.50)" becomes "-12.50", the accounting convention).
func cleanAmount(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r == '$' || r == '£' || r == '€' || r == '¥' || r == ',':
			// dropped
		case unicode.IsSpace(r):
			// dropped
		default:
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if len(cleaned) >= 2 && strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		cleaned = "-" + cleaned[1:len(cleaned)-1]
	}
	return cleaned
}

// floatPrefixPattern matches the leading numeric part of a cleaned literal.
var floatPrefixPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseAmount converts an amount literal to a signed number. Trailing junk
// after a valid numeric prefix is ignored, so "45.00 USD" reads as 45 the
// way lenient exports expect. Input with no numeric prefix yields 0; the
// ingestion pipeline is responsible for telling a genuine zero apart from
// garbage by inspecting the raw literal.
func ParseAmount(text string) float64 {
	prefix := floatPrefixPattern.FindString(cleanAmount(text))
	if prefix == "" {
		return 0
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0
	}
	return v
}
