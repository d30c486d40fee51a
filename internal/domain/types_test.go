package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestValidateCategory(t *testing.T) {
	for _, c := range Categories() {
		if !ValidateCategory(c) {
			t.Errorf("ValidateCategory(%q) = false, want true", c)
		}
	}

	invalid := []Category{"", "food", "Groceries", "INCOME"}
	for _, c := range invalid {
		if ValidateCategory(c) {
			t.Errorf("ValidateCategory(%q) = true, want false", c)
		}
	}
}

func TestCategories_FixedSet(t *testing.T) {
	cats := Categories()
	if len(cats) != 10 {
		t.Fatalf("Categories() returned %d categories, want 10", len(cats))
	}

	// Returned slice must be a copy, not the internal table.
	cats[0] = "mutated"
	if Categories()[0] != CategoryFoodDining {
		t.Error("Categories() exposes internal slice")
	}
}

func TestNewTransaction(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	txn, err := NewTransaction("txn-1", date, "STARBUCKS #1234", -5.75, CategoryFoodDining)
	if err != nil {
		t.Fatalf("NewTransaction() error = %v", err)
	}
	if txn.OriginalCategory != CategoryFoodDining {
		t.Errorf("OriginalCategory = %q, want %q", txn.OriginalCategory, CategoryFoodDining)
	}
	if txn.UserModified {
		t.Error("UserModified = true for a freshly ingested transaction")
	}
	if txn.Balance != nil {
		t.Error("Balance should be nil unless the source supplied one")
	}
}

func TestNewTransaction_Invalid(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		id          string
		date        time.Time
		description string
		category    Category
	}{
		{"empty id", "", date, "desc", CategoryOther},
		{"zero date", "id", time.Time{}, "desc", CategoryOther},
		{"empty description", "id", date, "", CategoryOther},
		{"invalid category", "id", date, "desc", "Snacks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTransaction(tt.id, tt.date, tt.description, 1.0, tt.category); err == nil {
				t.Error("NewTransaction() expected error")
			}
		})
	}
}

func TestTransaction_SetCategory(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	txn, err := NewTransaction("txn-1", date, "AMAZON.COM", -20, CategoryShopping)
	if err != nil {
		t.Fatalf("NewTransaction() error = %v", err)
	}

	if err := txn.SetCategory(CategoryEntertainment); err != nil {
		t.Fatalf("SetCategory() error = %v", err)
	}
	if txn.Category != CategoryEntertainment {
		t.Errorf("Category = %q, want %q", txn.Category, CategoryEntertainment)
	}
	if txn.OriginalCategory != CategoryShopping {
		t.Errorf("OriginalCategory = %q, want %q (immutable)", txn.OriginalCategory, CategoryShopping)
	}
	if !txn.UserModified {
		t.Error("UserModified = false after a manual override")
	}

	if err := txn.SetCategory("nope"); err == nil {
		t.Error("SetCategory() expected error for invalid category")
	}
}

func TestTransaction_JSONRoundTrip(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	balance := 1042.17

	original := Transaction{
		ID:               "txn-1",
		Date:             date,
		Description:      "DEBIT CARD PURCHASE TRADER JOE'S",
		Amount:           -83.12,
		Category:         CategoryFoodDining,
		Merchant:         "TRADER JOE'S",
		Balance:          &balance,
		OriginalCategory: CategoryFoodDining,
		UserModified:     false,
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded Transaction
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if !decoded.Date.Equal(original.Date) {
		t.Errorf("date did not round-trip: got %v, want %v", decoded.Date, original.Date)
	}
	if decoded.Balance == nil || *decoded.Balance != balance {
		t.Errorf("balance did not round-trip: got %v", decoded.Balance)
	}
	if decoded.Category != original.Category || decoded.Merchant != original.Merchant {
		t.Errorf("fields did not round-trip: got %+v", decoded)
	}
}
