// Package domain defines the canonical transaction model and the derived
// insight types shared by the ingestion pipeline, the aggregator, and the
// persistence and advisor collaborators.
package domain

import (
	"fmt"
	"time"
)

// Category is the closed set of classification labels applied to every
// transaction. Use ValidateCategory to ensure validity before use.
type Category string

const (
	CategoryFoodDining    Category = "Food & Dining"
	CategoryTransport     Category = "Transport"
	CategoryShopping      Category = "Shopping"
	CategoryEntertainment Category = "Entertainment"
	CategoryBills         Category = "Bills & Utilities"
	CategoryHealthcare    Category = "Healthcare"
	CategoryIncome        Category = "Income"
	CategoryTransfer      Category = "Transfer"
	CategoryInvestment    Category = "Investment"
	CategoryOther         Category = "Other"
)

var validCategories = map[Category]struct{}{
	CategoryFoodDining: {}, CategoryTransport: {}, CategoryShopping: {},
	CategoryEntertainment: {}, CategoryBills: {}, CategoryHealthcare: {},
	CategoryIncome: {}, CategoryTransfer: {}, CategoryInvestment: {},
	CategoryOther: {},
}

// categoryOrder is the display order used by Categories. Set membership is
// what matters everywhere else; ordering only carries meaning inside the
// rules package.
var categoryOrder = []Category{
	CategoryFoodDining, CategoryTransport, CategoryShopping,
	CategoryEntertainment, CategoryBills, CategoryHealthcare,
	CategoryIncome, CategoryTransfer, CategoryInvestment, CategoryOther,
}

// ValidateCategory checks if category is a member of the fixed set
func ValidateCategory(c Category) bool {
	_, ok := validCategories[c]
	return ok
}

// Categories returns the full category set in display order
func Categories() []Category {
	return append([]Category(nil), categoryOrder...)
}

// Transaction is one normalized financial event.
//
// Sign convention:
//
//	Positive = inflow (salary, refunds, deposits)
//	Negative = outflow (purchases, bills, withdrawals)
//
// Dates round-trip through JSON as RFC 3339 strings via time.Time, which is
// the contract the persistence collaborator depends on.
type Transaction struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    Category  `json:"category"`
	// Merchant is the display name extracted from the description; empty
	// when extraction produced nothing usable.
	Merchant string `json:"merchant,omitempty"`
	// Balance is the running balance reported by the source file, when the
	// export carries one.
	Balance *float64 `json:"balance,omitempty"`
	// OriginalCategory is the category assigned at ingestion time and is
	// never rewritten afterwards.
	OriginalCategory Category `json:"originalCategory"`
	// UserModified is set once a human overrides the category.
	UserModified bool `json:"userModified"`
}

// NewTransaction creates a validated transaction. OriginalCategory is fixed
// to the given category and UserModified starts false.
func NewTransaction(id string, date time.Time, description string, amount float64, category Category) (*Transaction, error) {
	if id == "" {
		return nil, fmt.Errorf("transaction ID cannot be empty")
	}
	if date.IsZero() {
		return nil, fmt.Errorf("transaction date cannot be zero")
	}
	if description == "" {
		return nil, fmt.Errorf("description cannot be empty")
	}
	if !ValidateCategory(category) {
		return nil, fmt.Errorf("invalid category: %s", category)
	}

	return &Transaction{
		ID:               id,
		Date:             date,
		Description:      description,
		Amount:           amount,
		Category:         category,
		OriginalCategory: category,
	}, nil
}

// SetCategory applies a human recategorization. The ingestion-time category
// in OriginalCategory stays untouched.
func (t *Transaction) SetCategory(c Category) error {
	if !ValidateCategory(c) {
		return fmt.Errorf("invalid category: %s", c)
	}
	t.Category = c
	t.UserModified = true
	return nil
}

// CategoryTotal is one row of the per-category expense breakdown.
type CategoryTotal struct {
	Category Category `json:"category"`
	Amount   float64  `json:"amount"`
	// Percentage is relative to total expenses, not total volume.
	Percentage float64 `json:"percentage"`
	Count      int     `json:"count"`
}

// MerchantSpending aggregates outflows for a single extracted merchant.
type MerchantSpending struct {
	Merchant string   `json:"merchant"`
	Amount   float64  `json:"amount"`
	Count    int      `json:"count"`
	Category Category `json:"category"`
}

// MonthlyData is one calendar-month bucket of the income/expense
// comparison. Month is a human-readable "Jan 2006" key.
type MonthlyData struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

// DailySpending is one calendar-day bucket of the spending trend.
// Date is an ISO "2006-01-02" key.
type DailySpending struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// Insights is the full derived statistical snapshot for a transaction list.
// It is always recomputed from scratch, never updated incrementally.
type Insights struct {
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpenses float64 `json:"totalExpenses"`
	NetSavings    float64 `json:"netSavings"`
	SavingsRate   float64 `json:"savingsRate"`
	// DailyAverage is expenses divided by the observed day span of the
	// whole set.
	DailyAverage float64 `json:"dailyAverage"`
	// BurnRate is the estimated days of runway at the current balance and
	// daily average spend.
	BurnRate            float64            `json:"burnRate"`
	TopMerchants        []MerchantSpending `json:"topMerchants"`
	CategoryBreakdown   []CategoryTotal    `json:"categoryBreakdown"`
	UnusualTransactions []Transaction      `json:"unusualTransactions"`
	MonthlyComparison   []MonthlyData      `json:"monthlyComparison"`
	SpendingTrend       []DailySpending    `json:"spendingTrend"`
}

// Advice is the shape returned by the remote insight-generation
// collaborator. The core validates only the shape, never the content.
type Advice struct {
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`
	Warnings        []string `json:"warnings"`
	Opportunities   []string `json:"opportunities"`
}
