package rules

import (
	"testing"

	"github.com/rumor-ml/fininsight/internal/domain"
)

func TestLoadEmbedded(t *testing.T) {
	engine, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded() error = %v", err)
	}
	if len(engine.rules) == 0 {
		t.Fatal("LoadEmbedded() produced no rules")
	}

	// Every embedded rule must carry a valid category.
	for i, rule := range engine.Rules() {
		if !domain.ValidateCategory(domain.Category(rule.Category)) {
			t.Errorf("rule %d (%s): invalid category %q", i, rule.Pattern, rule.Category)
		}
	}
}

func TestNewEngine_InvalidCategory(t *testing.T) {
	rulesYAML := `
rules:
  - { pattern: "STARBUCKS", category: "Snacks" }
`
	if _, err := NewEngine([]byte(rulesYAML)); err == nil {
		t.Error("NewEngine() expected error for invalid category")
	}
}

func TestNewEngine_EmptyPattern(t *testing.T) {
	rulesYAML := `
rules:
  - { pattern: "   ", category: "Shopping" }
`
	if _, err := NewEngine([]byte(rulesYAML)); err == nil {
		t.Error("NewEngine() expected error for empty pattern")
	}
}

func TestEngine_Categorize(t *testing.T) {
	engine, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded() error = %v", err)
	}

	tests := []struct {
		description string
		want        domain.Category
	}{
		{"STARBUCKS STORE #1234 SEATTLE", domain.CategoryFoodDining},
		{"amazon marketplace", domain.CategoryShopping},
		{"NETFLIX.COM", domain.CategoryEntertainment},
		{"SHELL OIL 5551212", domain.CategoryTransport},
		{"COMCAST CABLE", domain.CategoryBills},
		{"CITY PHARMACY", domain.CategoryHealthcare},
		{"ACME CORP PAYROLL", domain.CategoryIncome},
		{"ZELLE TO JANE DOE", domain.CategoryTransfer},
		{"VANGUARD BUY", domain.CategoryInvestment},
		{"MYSTERY CHARGE 0042", domain.CategoryOther},
		// Generic words do not rescue an unmatched description; the
		// catch-all applies regardless.
		{"PAYMENT THANK YOU", domain.CategoryOther},
		{"PURCHASE AUTHORIZED", domain.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			if got := engine.Categorize(tt.description); got != tt.want {
				t.Errorf("Categorize(%q) = %q, want %q", tt.description, got, tt.want)
			}
		})
	}
}

func TestEngine_Categorize_OrderWins(t *testing.T) {
	engine, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded() error = %v", err)
	}

	// These descriptions match multiple rules; the earlier rule in file
	// order must win every time.
	tests := []struct {
		description string
		want        domain.Category
	}{
		// "UBER EATS" (Food & Dining) is listed before "UBER" (Transport).
		{"UBER EATS ORDER 42", domain.CategoryFoodDining},
		{"UBER TRIP HELP.UBER.COM", domain.CategoryTransport},
		// "WALMART GROCERY" (Food & Dining) precedes "WALMART" (Shopping).
		{"WALMART GROCERY PICKUP", domain.CategoryFoodDining},
		{"WALMART SUPERCENTER", domain.CategoryShopping},
		// "GAS" (Transport) precedes "GAS UTILITY" (Bills & Utilities);
		// the shadowing is a documented consequence of first-match-wins.
		{"CITY GAS UTILITY BILL", domain.CategoryTransport},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			if got := engine.Categorize(tt.description); got != tt.want {
				t.Errorf("Categorize(%q) = %q, want %q", tt.description, got, tt.want)
			}
		})
	}
}

func TestEngine_Categorize_Deterministic(t *testing.T) {
	engine, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded() error = %v", err)
	}

	desc := "UBER EATS ORDER 42"
	first := engine.Categorize(desc)
	for i := 0; i < 100; i++ {
		if got := engine.Categorize(desc); got != first {
			t.Fatalf("Categorize(%q) changed between calls: %q then %q", desc, first, got)
		}
	}
}

func TestEngine_MerchantCategory(t *testing.T) {
	engine, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded() error = %v", err)
	}

	overrides := map[string]domain.Category{
		"starbucks": domain.CategoryEntertainment, // user insists coffee is fun
	}

	if got := engine.MerchantCategory("STARBUCKS", overrides); got != domain.CategoryEntertainment {
		t.Errorf("MerchantCategory with override = %q, want %q", got, domain.CategoryEntertainment)
	}
	if got := engine.MerchantCategory("STARBUCKS", nil); got != domain.CategoryFoodDining {
		t.Errorf("MerchantCategory without override = %q, want %q", got, domain.CategoryFoodDining)
	}
	// Invalid categories in the override map are ignored, not propagated.
	bad := map[string]domain.Category{"starbucks": "Lattes"}
	if got := engine.MerchantCategory("STARBUCKS", bad); got != domain.CategoryFoodDining {
		t.Errorf("MerchantCategory with invalid override = %q, want %q", got, domain.CategoryFoodDining)
	}
}
