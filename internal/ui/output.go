// Package ui renders user-facing terminal output for the CLI.
package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/rumor-ml/fininsight/internal/domain"
	"github.com/rumor-ml/fininsight/internal/insights"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow, color.Bold)
	red    = color.New(color.FgRed)
)

// Header prints a formatted header
func Header(text string) {
	line := strings.Repeat("=", 60)
	green.Printf("\n%s\n", line)
	green.Printf("%-60s\n", center(text, 60))
	green.Printf("%s\n\n", line)
}

// Step prints a step indicator
func Step(stepNum, totalSteps int, text string) {
	yellow.Printf("[%d/%d] %s\n", stepNum, totalSteps, text)
}

// Success prints a success message
func Success(text string) {
	green.Printf("  → %s\n", text)
}

// Info prints an info message
func Info(text string) {
	fmt.Printf("  → %s\n", text)
}

// Warning prints a warning message
func Warning(text string) {
	yellow.Printf("  ⚠ %s\n", text)
}

// Error prints an error message
func Error(text string) {
	red.Printf("Error: %s\n", text)
}

// center centers text within a given width
func center(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// FprintReport writes the insights snapshot as a plain-text report.
func FprintReport(w io.Writer, snapshot *domain.Insights) {
	fmt.Fprintf(w, "Summary\n")
	fmt.Fprintf(w, "  Income:         %s\n", insights.FormatCurrency(snapshot.TotalIncome))
	fmt.Fprintf(w, "  Expenses:       %s\n", insights.FormatCurrency(snapshot.TotalExpenses))
	fmt.Fprintf(w, "  Net savings:    %s\n", insights.FormatCurrency(snapshot.NetSavings))
	fmt.Fprintf(w, "  Savings rate:   %s\n", insights.FormatPercentage(snapshot.SavingsRate))
	fmt.Fprintf(w, "  Daily average:  %s\n", insights.FormatCurrency(snapshot.DailyAverage))
	if snapshot.BurnRate > 0 {
		fmt.Fprintf(w, "  Runway:         %.0f days\n", snapshot.BurnRate)
	}

	if len(snapshot.CategoryBreakdown) > 0 {
		fmt.Fprintf(w, "\nSpending by category\n")
		for _, c := range snapshot.CategoryBreakdown {
			fmt.Fprintf(w, "  %-20s %12s  %5.1f%%  (%d)\n",
				c.Category, insights.FormatCurrency(c.Amount), c.Percentage, c.Count)
		}
	}

	if len(snapshot.TopMerchants) > 0 {
		fmt.Fprintf(w, "\nTop merchants\n")
		for _, m := range snapshot.TopMerchants {
			fmt.Fprintf(w, "  %-20s %12s  (%d)\n",
				m.Merchant, insights.FormatCurrency(m.Amount), m.Count)
		}
	}

	if len(snapshot.UnusualTransactions) > 0 {
		fmt.Fprintf(w, "\nUnusual transactions\n")
		for _, t := range snapshot.UnusualTransactions {
			fmt.Fprintf(w, "  %s  %-30s %12s\n",
				t.Date.Format("2006-01-02"), t.Description, insights.FormatCurrency(t.Amount))
		}
	}

	if len(snapshot.MonthlyComparison) > 0 {
		fmt.Fprintf(w, "\nMonthly comparison\n")
		for _, m := range snapshot.MonthlyComparison {
			fmt.Fprintf(w, "  %-9s in %12s  out %12s  net %12s\n",
				m.Month, insights.FormatCurrency(m.Income),
				insights.FormatCurrency(m.Expenses), insights.FormatCurrency(m.Net))
		}
	}
}

// FprintCategoryTrends writes the month-over-month spend change per
// category, relative to the calendar month containing now. Categories with
// no previous-month spend are skipped.
func FprintCategoryTrends(w io.Writer, transactions []domain.Transaction, now time.Time) {
	printed := false
	for _, category := range domain.Categories() {
		trend := insights.CategoryTrend(transactions, category, now)
		if trend == 0 {
			continue
		}
		if !printed {
			fmt.Fprintf(w, "\nMonth-over-month change\n")
			printed = true
		}
		fmt.Fprintf(w, "  %-20s %s\n", category, insights.FormatPercentage(trend))
	}
}

// FprintAdvice writes generated advice as a plain-text report.
func FprintAdvice(w io.Writer, advice *domain.Advice) {
	fmt.Fprintf(w, "Advice\n")
	if advice.Summary != "" {
		fmt.Fprintf(w, "  %s\n", advice.Summary)
	}
	printAdviceSection(w, "Recommendations", advice.Recommendations)
	printAdviceSection(w, "Warnings", advice.Warnings)
	printAdviceSection(w, "Opportunities", advice.Opportunities)
}

func printAdviceSection(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}
