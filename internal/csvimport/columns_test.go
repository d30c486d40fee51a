package csvimport

import (
	"strings"
	"testing"
)

func TestDetectColumnMapping(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		date    int
		amount  int
		desc    int
		balance int
	}{
		{
			name:    "plain bank export",
			headers: []string{"Date", "Description", "Amount", "Balance"},
			date:    0, amount: 2, desc: 1, balance: 3,
		},
		{
			name:    "synonym headers",
			headers: []string{"Posting Date", "Memo", "Debit", "Running Balance"},
			date:    0, amount: 2, desc: 1, balance: 3,
		},
		{
			name:    "payee and value",
			headers: []string{"Value", "Payee", "Trans Date"},
			date:    2, amount: 0, desc: 1, balance: -1,
		},
		{
			name:    "amount never resolves to a balance column",
			headers: []string{"Date", "Narrative", "Balance Amount", "Credit"},
			date:    0, amount: 3, desc: 1, balance: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapping, ok := DetectColumnMapping(tt.headers)
			if !ok {
				t.Fatalf("DetectColumnMapping(%v) failed", tt.headers)
			}
			if mapping.Date != tt.date || mapping.Amount != tt.amount ||
				mapping.Description != tt.desc || mapping.Balance != tt.balance {
				t.Errorf("DetectColumnMapping(%v) = %+v, want date=%d amount=%d description=%d balance=%d",
					tt.headers, mapping, tt.date, tt.amount, tt.desc, tt.balance)
			}
		})
	}
}

func TestDetectColumnMapping_OrderIndependent(t *testing.T) {
	// The same roles must resolve regardless of column order.
	permutations := [][]string{
		{"Transaction Date", "Amount", "Description"},
		{"Amount", "Description", "Transaction Date"},
		{"Description", "Transaction Date", "Amount"},
	}

	for _, headers := range permutations {
		t.Run(strings.Join(headers, ","), func(t *testing.T) {
			mapping, ok := DetectColumnMapping(headers)
			if !ok {
				t.Fatalf("DetectColumnMapping(%v) failed", headers)
			}
			if headers[mapping.Date] != "Transaction Date" {
				t.Errorf("date resolved to %q", headers[mapping.Date])
			}
			if headers[mapping.Amount] != "Amount" {
				t.Errorf("amount resolved to %q", headers[mapping.Amount])
			}
			if headers[mapping.Description] != "Description" {
				t.Errorf("description resolved to %q", headers[mapping.Description])
			}
		})
	}
}

func TestDetectColumnMapping_MissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
	}{
		{"no amount", []string{"Date", "Description", "Balance"}},
		{"no date", []string{"Description", "Amount"}},
		{"no description", []string{"Date", "Amount"}},
		{"empty", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := DetectColumnMapping(tt.headers); ok {
				t.Errorf("DetectColumnMapping(%v) succeeded, want failure", tt.headers)
			}
		})
	}
}

func TestValidateStructure(t *testing.T) {
	ok, msg := ValidateStructure([]string{" Date ", "Description", "Amount", "Balance"})
	if !ok {
		t.Fatalf("ValidateStructure failed: %s", msg)
	}
	for _, want := range []string{`"Date"`, `"Description"`, `"Amount"`, `"Balance"`} {
		if !strings.Contains(msg, want) {
			t.Errorf("ValidateStructure message %q missing %s", msg, want)
		}
	}

	ok, msg = ValidateStructure([]string{"Foo", "Bar"})
	if ok {
		t.Error("ValidateStructure succeeded for unusable headers")
	}
	if !strings.Contains(msg, "date, amount, and description") {
		t.Errorf("ValidateStructure message %q does not name the requirement", msg)
	}
}
