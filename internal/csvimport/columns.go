package csvimport

import (
	"fmt"
	"strings"
)

// Keyword lists per semantic role, in match-priority order. Bank export
// schemas are not standardized, so detection is heuristic: the first header
// containing a keyword wins. The policy is intentionally ordered rather than
// scored so results stay deterministic and explainable in error messages.
var (
	dateKeywords        = []string{"date", "transaction date", "posting date", "trans date", "datetime"}
	amountKeywords      = []string{"amount", "transaction amount", "debit", "credit", "value", "sum"}
	descriptionKeywords = []string{"description", "memo", "narrative", "details", "merchant", "payee", "name"}
	balanceKeywords     = []string{"balance", "running balance", "current balance"}
)

// ColumnMapping is the resolved correspondence between source column indexes
// and semantic roles. Balance is -1 when the export has no balance column.
type ColumnMapping struct {
	Date        int
	Amount      int
	Description int
	Balance     int
}

// HasBalance reports whether a balance column was detected.
func (m *ColumnMapping) HasBalance() bool {
	return m.Balance >= 0
}

// findColumn returns the index of the first header containing any keyword,
// scanning keywords in priority order. excludeBalance drops headers that
// also mention "balance", so a "Running Balance" column is never mistaken
// for the amount.
func findColumn(headers []string, keywords []string, excludeBalance bool) int {
	for _, keyword := range keywords {
		for i, h := range headers {
			lower := strings.ToLower(h)
			if !strings.Contains(lower, keyword) {
				continue
			}
			if excludeBalance && strings.Contains(lower, "balance") {
				continue
			}
			return i
		}
	}
	return -1
}

// DetectColumnMapping maps arbitrary header names to semantic roles. Returns
// false when any of the required roles (date, amount, description) cannot be
// resolved; balance is optional.
func DetectColumnMapping(headers []string) (*ColumnMapping, bool) {
	mapping := &ColumnMapping{
		Date:        findColumn(headers, dateKeywords, false),
		Amount:      findColumn(headers, amountKeywords, true),
		Description: findColumn(headers, descriptionKeywords, false),
		Balance:     findColumn(headers, balanceKeywords, false),
	}

	if mapping.Date < 0 || mapping.Amount < 0 || mapping.Description < 0 {
		return nil, false
	}
	return mapping, true
}

// ValidateStructure is a pre-flight check for upload surfaces: it reports
// whether the headers resolve to a usable mapping and returns a human
// message naming the detected columns (or the missing requirement).
func ValidateStructure(headers []string) (bool, string) {
	trimmed := trimAll(headers)
	mapping, ok := DetectColumnMapping(trimmed)
	if !ok {
		return false, "could not detect required columns; ensure the CSV has date, amount, and description columns"
	}

	msg := fmt.Sprintf("detected columns - date: %q, amount: %q, description: %q",
		trimmed[mapping.Date], trimmed[mapping.Amount], trimmed[mapping.Description])
	if mapping.HasBalance() {
		msg += fmt.Sprintf(", balance: %q", trimmed[mapping.Balance])
	}
	return true, msg
}

func trimAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.TrimSpace(s)
	}
	return out
}
