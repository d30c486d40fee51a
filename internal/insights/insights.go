// Package insights computes the derived statistical snapshot for a
// transaction list: totals, category and merchant breakdowns, trend series,
// and outlier detection.
package insights

import (
	"math"
	"sort"
	"time"

	"github.com/rumor-ml/fininsight/internal/domain"
)

// Calculate derives the full Insights snapshot from a transaction list. The
// input is expected in the date-descending order the ingestion pipeline
// produces; index 0 supplies the current balance and outliers keep that
// order. The snapshot is always recomputed from scratch — day span and the
// outlier threshold depend on the whole set, so incremental updates would
// change semantics. Pure: the input is never mutated, every returned
// collection is freshly constructed, and degenerate inputs produce
// well-defined zero/empty values rather than errors.
func Calculate(transactions []domain.Transaction) *domain.Insights {
	out := &domain.Insights{
		TopMerchants:        []domain.MerchantSpending{},
		CategoryBreakdown:   []domain.CategoryTotal{},
		UnusualTransactions: []domain.Transaction{},
		MonthlyComparison:   []domain.MonthlyData{},
		SpendingTrend:       []domain.DailySpending{},
	}
	if len(transactions) == 0 {
		return out
	}

	var income, expenses float64
	for _, t := range transactions {
		if t.Amount > 0 && (t.Category == domain.CategoryIncome || t.Category == domain.CategoryTransfer) {
			income += t.Amount
		}
		if t.Amount < 0 {
			expenses += -t.Amount
		}
	}

	out.TotalIncome = income
	out.TotalExpenses = expenses
	out.NetSavings = income - expenses
	if income > 0 {
		out.SavingsRate = out.NetSavings / income * 100
	}

	out.CategoryBreakdown = categoryBreakdown(transactions, expenses)
	out.TopMerchants = topMerchants(transactions)

	out.DailyAverage = expenses / float64(daySpan(transactions))

	// Runway at current spend. The newest transaction's reported balance is
	// the best available "current balance"; net savings stands in when the
	// export had no balance column.
	currentBalance := out.NetSavings
	if transactions[0].Balance != nil {
		currentBalance = *transactions[0].Balance
	}
	if out.DailyAverage > 0 {
		out.BurnRate = currentBalance / out.DailyAverage
	}

	out.UnusualTransactions = unusualTransactions(transactions)
	out.MonthlyComparison = monthlyComparison(transactions)
	out.SpendingTrend = spendingTrend(transactions)

	return out
}

// daySpan is the number of whole days between the earliest and latest
// transaction dates, never less than 1. Computed once over the whole set.
func daySpan(transactions []domain.Transaction) int {
	oldest, newest := transactions[0].Date, transactions[0].Date
	for _, t := range transactions[1:] {
		if t.Date.Before(oldest) {
			oldest = t.Date
		}
		if t.Date.After(newest) {
			newest = t.Date
		}
	}

	days := int(newest.Sub(oldest).Hours() / 24)
	if days == 0 {
		return 1
	}
	return days
}

func categoryBreakdown(transactions []domain.Transaction, totalExpenses float64) []domain.CategoryTotal {
	type bucket struct {
		amount float64
		count  int
	}
	byCategory := make(map[domain.Category]*bucket)

	for _, t := range transactions {
		if t.Amount >= 0 {
			continue
		}
		b, ok := byCategory[t.Category]
		if !ok {
			b = &bucket{}
			byCategory[t.Category] = b
		}
		b.amount += -t.Amount
		b.count++
	}

	breakdown := make([]domain.CategoryTotal, 0, len(byCategory))
	for category, b := range byCategory {
		total := domain.CategoryTotal{
			Category: category,
			Amount:   b.amount,
			Count:    b.count,
		}
		if totalExpenses > 0 {
			total.Percentage = b.amount / totalExpenses * 100
		}
		breakdown = append(breakdown, total)
	}

	// Descending by amount; category name breaks ties so map iteration
	// order never leaks into the output.
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Amount != breakdown[j].Amount {
			return breakdown[i].Amount > breakdown[j].Amount
		}
		return breakdown[i].Category < breakdown[j].Category
	})

	return breakdown
}

func topMerchants(transactions []domain.Transaction) []domain.MerchantSpending {
	type bucket struct {
		amount   float64
		count    int
		category domain.Category
	}
	byMerchant := make(map[string]*bucket)

	for _, t := range transactions {
		if t.Amount >= 0 || t.Merchant == "" {
			continue
		}
		b, ok := byMerchant[t.Merchant]
		if !ok {
			b = &bucket{}
			byMerchant[t.Merchant] = b
		}
		b.amount += -t.Amount
		b.count++
		// Every grouped row overwrites the display category, so with
		// date-descending input the oldest transaction's category wins.
		b.category = t.Category
	}

	merchants := make([]domain.MerchantSpending, 0, len(byMerchant))
	for merchant, b := range byMerchant {
		merchants = append(merchants, domain.MerchantSpending{
			Merchant: merchant,
			Amount:   b.amount,
			Count:    b.count,
			Category: b.category,
		})
	}

	sort.Slice(merchants, func(i, j int) bool {
		if merchants[i].Amount != merchants[j].Amount {
			return merchants[i].Amount > merchants[j].Amount
		}
		return merchants[i].Merchant < merchants[j].Merchant
	})

	if len(merchants) > 5 {
		merchants = merchants[:5]
	}
	return merchants
}

// unusualTransactions flags outliers: negative transactions whose absolute
// amount exceeds mean + 2×stddev of all negative magnitudes. The threshold
// is global across categories, deliberately not per category. At most the
// first 5 in input order are kept.
func unusualTransactions(transactions []domain.Transaction) []domain.Transaction {
	var magnitudes []float64
	for _, t := range transactions {
		if t.Amount < 0 {
			magnitudes = append(magnitudes, -t.Amount)
		}
	}
	if len(magnitudes) == 0 {
		return []domain.Transaction{}
	}

	var sum float64
	for _, m := range magnitudes {
		sum += m
	}
	mean := sum / float64(len(magnitudes))

	var variance float64
	for _, m := range magnitudes {
		variance += (m - mean) * (m - mean)
	}
	variance /= float64(len(magnitudes)) // population variance

	threshold := mean + 2*math.Sqrt(variance)

	unusual := []domain.Transaction{}
	for _, t := range transactions {
		if t.Amount < 0 && -t.Amount > threshold {
			unusual = append(unusual, t)
			if len(unusual) == 5 {
				break
			}
		}
	}
	return unusual
}

func monthlyComparison(transactions []domain.Transaction) []domain.MonthlyData {
	type bucket struct {
		income   float64
		expenses float64
	}
	byMonth := make(map[string]*bucket)

	for _, t := range transactions {
		month := t.Date.Format("Jan 2006")
		b, ok := byMonth[month]
		if !ok {
			b = &bucket{}
			byMonth[month] = b
		}
		if t.Amount > 0 && (t.Category == domain.CategoryIncome || t.Category == domain.CategoryTransfer) {
			b.income += t.Amount
		} else if t.Amount < 0 {
			b.expenses += -t.Amount
		}
	}

	months := make([]domain.MonthlyData, 0, len(byMonth))
	for month, b := range byMonth {
		months = append(months, domain.MonthlyData{
			Month:    month,
			Income:   b.income,
			Expenses: b.expenses,
			Net:      b.income - b.expenses,
		})
	}

	// Chronological, by re-parsing the bucket key.
	sort.Slice(months, func(i, j int) bool {
		ti, _ := time.Parse("Jan 2006", months[i].Month)
		tj, _ := time.Parse("Jan 2006", months[j].Month)
		return ti.Before(tj)
	})

	return months
}

func spendingTrend(transactions []domain.Transaction) []domain.DailySpending {
	byDay := make(map[string]float64)
	for _, t := range transactions {
		if t.Amount < 0 {
			byDay[t.Date.Format("2006-01-02")] += -t.Amount
		}
	}

	trend := make([]domain.DailySpending, 0, len(byDay))
	for day, amount := range byDay {
		trend = append(trend, domain.DailySpending{Date: day, Amount: amount})
	}

	// ISO keys sort chronologically as strings.
	sort.Slice(trend, func(i, j int) bool {
		return trend[i].Date < trend[j].Date
	})

	return trend
}

// CategoryTrend reports the percent change in a category's spending between
// the calendar month containing now and the month before it. Returns 0 when
// the previous month had no spending in that category.
func CategoryTrend(transactions []domain.Transaction, category domain.Category, now time.Time) float64 {
	currentStart := startOfMonth(now)
	currentEnd := endOfMonth(now)
	previousStart := startOfMonth(currentStart.AddDate(0, -1, 0))
	previousEnd := endOfMonth(previousStart)

	current := categorySpendBetween(transactions, category, currentStart, currentEnd)
	previous := categorySpendBetween(transactions, category, previousStart, previousEnd)

	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

func categorySpendBetween(transactions []domain.Transaction, category domain.Category, start, end time.Time) float64 {
	var total float64
	for _, t := range transactions {
		if t.Category != category || t.Amount >= 0 {
			continue
		}
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		total += -t.Amount
	}
	return total
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func endOfMonth(t time.Time) time.Time {
	return startOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}
