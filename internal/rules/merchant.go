package rules

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Boilerplate stripped from raw bank descriptions, applied in this fixed
// order. Bank exports bury the merchant between card-network prefixes and
// trailing reference junk; each expression removes one layer.
var (
	// Card/ACH/check/POS/online markers at the start of the description.
	merchantPrefixPattern = regexp.MustCompile(`(?i)^(DEBIT CARD PURCHASE|CREDIT CARD PURCHASE|ACH|CHECK|POS|ONLINE)\s*`)
	// Trailing transaction-id tokens, e.g. "#123456 REF 789".
	trailingRefPattern = regexp.MustCompile(`\s*#\d+.*$`)
	// Trailing embedded dates, e.g. "03/14" and everything after.
	trailingDatePattern = regexp.MustCompile(`\s*\d{2}/\d{2}.*$`)
	// Trailing dollar-amount fragments, e.g. "- $12.50".
	trailingAmountPattern = regexp.MustCompile(`\s*-\s*\$.*$`)
	// "STATE ZIP" location suffixes, e.g. " CA 94105".
	stateZipPattern = regexp.MustCompile(`\s+[A-Z]{2}\s+\d{5}`)
	// Phone-number suffixes, e.g. " 800-555-0100".
	phonePattern = regexp.MustCompile(`\s+\d{3}-\d{3}-\d{4}`)
)

// ExtractMerchantName strips known boilerplate from a raw description and
// returns the remaining merchant display name. If stripping leaves nothing,
// the original description is returned unchanged so a transaction never
// loses its only label.
func ExtractMerchantName(description string) string {
	merchant := merchantPrefixPattern.ReplaceAllString(description, "")
	merchant = trailingRefPattern.ReplaceAllString(merchant, "")
	merchant = trailingDatePattern.ReplaceAllString(merchant, "")
	merchant = trailingAmountPattern.ReplaceAllString(merchant, "")
	merchant = strings.TrimSpace(merchant)

	// Cut at location and phone suffixes rather than deleting them, keeping
	// only the leading merchant part.
	if loc := stateZipPattern.FindStringIndex(merchant); loc != nil {
		merchant = merchant[:loc[0]]
	}
	if loc := phonePattern.FindStringIndex(merchant); loc != nil {
		merchant = merchant[:loc[0]]
	}

	merchant = strings.TrimSpace(merchant)
	if merchant == "" {
		return description
	}
	return merchant
}

// NormalizeMerchant produces the lookup key used for the user's
// merchant-to-category override map: unicode-folded, lower-cased, trimmed.
// Accented storefront names collapse to plain ASCII so "Café Noir" and
// "CAFE NOIR" share one override entry.
func NormalizeMerchant(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	normalized, _, err := transform.String(t, name)
	if err != nil {
		normalized = name
	}
	return strings.ToLower(strings.TrimSpace(normalized))
}
