package validate

import (
	"testing"
	"time"

	"github.com/rumor-ml/fininsight/internal/domain"
)

func validTransaction(id string) domain.Transaction {
	return domain.Transaction{
		ID:               id,
		Date:             time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Description:      "STARBUCKS",
		Amount:           -5.75,
		Category:         domain.CategoryFoodDining,
		Merchant:         "STARBUCKS",
		OriginalCategory: domain.CategoryFoodDining,
	}
}

func TestValidateTransactions_Valid(t *testing.T) {
	result := ValidateTransactions([]domain.Transaction{
		validTransaction("a"),
		validTransaction("b"),
	})

	if !result.IsValid() {
		t.Errorf("valid set reported errors: %+v", result.Errors)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("valid set reported warnings: %+v", result.Warnings)
	}
}

func TestValidateTransactions_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Transaction)
		field  string
	}{
		{"empty id", func(tr *domain.Transaction) { tr.ID = "" }, "ID"},
		{"zero date", func(tr *domain.Transaction) { tr.Date = time.Time{} }, "Date"},
		{"empty description", func(tr *domain.Transaction) { tr.Description = "" }, "Description"},
		{"bad category", func(tr *domain.Transaction) { tr.Category = "Gambling" }, "Category"},
		{"bad original category", func(tr *domain.Transaction) { tr.OriginalCategory = "Gambling" }, "OriginalCategory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := validTransaction("a")
			tt.mutate(&txn)

			result := ValidateTransactions([]domain.Transaction{txn})
			if result.IsValid() {
				t.Fatal("invalid transaction passed validation")
			}
			found := false
			for _, e := range result.Errors {
				if e.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("no error for field %s: %+v", tt.field, result.Errors)
			}
		})
	}
}

func TestValidateTransactions_DuplicateIDs(t *testing.T) {
	result := ValidateTransactions([]domain.Transaction{
		validTransaction("same"),
		validTransaction("same"),
	})

	if result.IsValid() {
		t.Fatal("duplicate IDs passed validation")
	}
	if result.Errors[0].Message != "duplicate transaction ID" {
		t.Errorf("unexpected error: %+v", result.Errors[0])
	}
}

func TestValidateTransactions_Warnings(t *testing.T) {
	reassigned := validTransaction("a")
	reassigned.Category = domain.CategoryEntertainment // not user modified

	zero := validTransaction("b")
	zero.Amount = 0

	future := validTransaction("c")
	future.Date = time.Now().AddDate(2, 0, 0)

	result := ValidateTransactions([]domain.Transaction{reassigned, zero, future})

	if !result.IsValid() {
		t.Fatalf("warnings escalated to errors: %+v", result.Errors)
	}
	if len(result.Warnings) != 3 {
		t.Errorf("got %d warnings, want 3: %+v", len(result.Warnings), result.Warnings)
	}

	// A user-sanctioned reassignment is not warned about.
	sanctioned := validTransaction("d")
	sanctioned.Category = domain.CategoryEntertainment
	sanctioned.UserModified = true
	result = ValidateTransactions([]domain.Transaction{sanctioned})
	if len(result.Warnings) != 0 {
		t.Errorf("user-modified reassignment warned: %+v", result.Warnings)
	}
}

func TestValidationResult_Summary(t *testing.T) {
	result := ValidateTransactions([]domain.Transaction{{}})
	if result.Summary() == "" {
		t.Error("empty summary")
	}
	if result.IsValid() {
		t.Error("empty transaction passed validation")
	}
}
