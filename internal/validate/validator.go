// Package validate checks a transaction set for integrity problems before it
// is persisted or exported.
package validate

import (
	"fmt"
	"time"

	"github.com/rumor-ml/fininsight/internal/domain"
)

// ValidationResult contains all validation errors and warnings for a
// transaction set
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// ValidationError represents a validation error
type ValidationError struct {
	ID      string
	Field   string
	Value   string
	Message string
}

// ValidationWarning represents a non-critical validation issue
type ValidationWarning struct {
	ID      string
	Field   string
	Value   string
	Message string
}

// IsValid reports whether no errors were found. Warnings do not fail
// validation.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Summary returns a human-readable count line.
func (r *ValidationResult) Summary() string {
	return fmt.Sprintf("%d errors, %d warnings", len(r.Errors), len(r.Warnings))
}

// ValidateTransactions checks individual transaction constraints and
// set-level integrity (ID uniqueness, category consistency). Returns a
// ValidationResult with all errors and warnings found.
func ValidateTransactions(txns []domain.Transaction) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationWarning{},
	}

	seenIDs := make(map[string]bool)

	for _, t := range txns {
		if t.ID == "" {
			result.Errors = append(result.Errors, ValidationError{
				ID:      t.ID,
				Field:   "ID",
				Value:   "",
				Message: "transaction ID cannot be empty",
			})
		} else if seenIDs[t.ID] {
			result.Errors = append(result.Errors, ValidationError{
				ID:      t.ID,
				Field:   "ID",
				Value:   t.ID,
				Message: "duplicate transaction ID",
			})
		}
		seenIDs[t.ID] = true

		if t.Date.IsZero() {
			result.Errors = append(result.Errors, ValidationError{
				ID:      t.ID,
				Field:   "Date",
				Value:   "",
				Message: "transaction date cannot be zero",
			})
		} else if t.Date.After(time.Now().AddDate(1, 0, 0)) {
			result.Warnings = append(result.Warnings, ValidationWarning{
				ID:      t.ID,
				Field:   "Date",
				Value:   t.Date.Format("2006-01-02"),
				Message: "transaction date is more than a year in the future",
			})
		}

		if t.Description == "" {
			result.Errors = append(result.Errors, ValidationError{
				ID:      t.ID,
				Field:   "Description",
				Value:   "",
				Message: "transaction description cannot be empty",
			})
		}

		if !domain.ValidateCategory(t.Category) {
			result.Errors = append(result.Errors, ValidationError{
				ID:      t.ID,
				Field:   "Category",
				Value:   string(t.Category),
				Message: "invalid category",
			})
		}
		if !domain.ValidateCategory(t.OriginalCategory) {
			result.Errors = append(result.Errors, ValidationError{
				ID:      t.ID,
				Field:   "OriginalCategory",
				Value:   string(t.OriginalCategory),
				Message: "invalid category",
			})
		}

		// A pristine transaction should still carry its original category.
		if !t.UserModified && t.Category != t.OriginalCategory {
			result.Warnings = append(result.Warnings, ValidationWarning{
				ID:      t.ID,
				Field:   "Category",
				Value:   string(t.Category),
				Message: fmt.Sprintf("category differs from original %q without a user modification", t.OriginalCategory),
			})
		}

		if t.Amount == 0 {
			result.Warnings = append(result.Warnings, ValidationWarning{
				ID:      t.ID,
				Field:   "Amount",
				Value:   "0",
				Message: "zero-amount transaction",
			})
		}
	}

	return result
}
