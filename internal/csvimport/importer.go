package csvimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/rumor-ml/fininsight/internal/domain"
	"github.com/rumor-ml/fininsight/internal/rules"
)

// Result is the outcome of one ingestion run. Ingestion always completes:
// row-level problems are collected in Errors while the remaining rows still
// produce transactions. Only an unresolvable column mapping yields an empty
// transaction list.
type Result struct {
	// Transactions is sorted newest-date-first.
	Transactions []domain.Transaction `json:"transactions"`
	Headers      []string             `json:"headers"`
	Errors       []string             `json:"errors"`
	// RowCount is the number of data rows seen, including rejected ones.
	RowCount int `json:"rowCount"`
}

// Importer runs the ingestion pipeline: column detection, value
// normalization, and rule-based categorization over a tokenized CSV table.
// Stateless apart from the rule engine, so safe for concurrent use.
type Importer struct {
	engine *rules.Engine
}

// NewImporter creates an importer using the given rule engine for
// categorization.
func NewImporter(engine *rules.Engine) *Importer {
	return &Importer{engine: engine}
}

// Parse reads a whole CSV document and ingests it. The reader-level
// configuration mirrors what bank exports need in practice: tolerant
// quoting, variable record lengths, leading-space trimming.
func (imp *Importer) Parse(r io.Reader) (*Result, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV content: %w", err)
	}

	if len(records) == 0 {
		return &Result{
			Transactions: []domain.Transaction{},
			Headers:      []string{},
			Errors:       []string{"no data found in CSV file"},
		}, nil
	}

	return imp.ParseTable(records[0], records[1:]), nil
}

// ParseTable ingests an already-tokenized table: a header row plus data
// rows. Row numbers in error messages are 1-indexed over the data rows.
func (imp *Importer) ParseTable(headers []string, rows [][]string) *Result {
	result := &Result{
		Transactions: []domain.Transaction{},
		Headers:      trimAll(headers),
		Errors:       []string{},
		RowCount:     len(rows),
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "no data found in CSV file")
		return result
	}

	mapping, ok := DetectColumnMapping(result.Headers)
	if !ok {
		result.Errors = append(result.Errors, structuralError(result.Headers))
		return result
	}

	for i, row := range rows {
		rowNum := i + 1

		dateStr := strings.TrimSpace(cell(row, mapping.Date))
		amountStr := strings.TrimSpace(cell(row, mapping.Amount))
		description := strings.TrimSpace(cell(row, mapping.Description))

		if dateStr == "" || amountStr == "" || description == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: missing required fields", rowNum))
			continue
		}

		date, ok := ParseDateString(dateStr)
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: invalid date format: %s", rowNum, dateStr))
			continue
		}

		amount := ParseAmount(amountStr)
		// ParseAmount collapses garbage to 0, so a parsed zero is only
		// trusted when the source literally said "0".
		if amount == 0 && amountStr != "0" {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: invalid amount: %s", rowNum, amountStr))
			continue
		}

		// Category and merchant are fixed here from the rule table alone;
		// merchant override maps are the caller's concern.
		category := imp.engine.Categorize(description)
		txn, err := domain.NewTransaction(uuid.NewString(), date, description, amount, category)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		txn.Merchant = rules.ExtractMerchantName(description)

		if mapping.HasBalance() {
			if balanceStr := strings.TrimSpace(cell(row, mapping.Balance)); balanceStr != "" {
				balance := ParseAmount(balanceStr)
				txn.Balance = &balance
			}
		}

		result.Transactions = append(result.Transactions, *txn)
	}

	// Newest first. Stable so rows sharing a date keep file order.
	sort.SliceStable(result.Transactions, func(i, j int) bool {
		return result.Transactions[i].Date.After(result.Transactions[j].Date)
	})

	return result
}

// cell returns the field at idx, or "" for short rows.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// structuralError names the column roles that could not be resolved.
func structuralError(headers []string) string {
	var missing []string
	if findColumn(headers, dateKeywords, false) < 0 {
		missing = append(missing, "date")
	}
	if findColumn(headers, amountKeywords, true) < 0 {
		missing = append(missing, "amount")
	}
	if findColumn(headers, descriptionKeywords, false) < 0 {
		missing = append(missing, "description")
	}
	return fmt.Sprintf("could not detect required columns (%s); ensure the CSV has date, amount, and description columns",
		strings.Join(missing, ", "))
}
