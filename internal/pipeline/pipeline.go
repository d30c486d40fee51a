// Package pipeline orchestrates imports: parsing CSV files, applying
// merchant overrides, validating, and persisting the result.
package pipeline

import (
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/rumor-ml/fininsight/internal/csvimport"
	"github.com/rumor-ml/fininsight/internal/domain"
	"github.com/rumor-ml/fininsight/internal/rules"
	"github.com/rumor-ml/fininsight/internal/scanner"
	"github.com/rumor-ml/fininsight/internal/store"
	"github.com/rumor-ml/fininsight/internal/validate"
)

// Pipeline runs imports end to end. The store is optional; without one the
// pipeline parses and categorizes but persists nothing.
type Pipeline struct {
	importer *csvimport.Importer
	store    *store.Store
	logger   *log.Logger
}

// New creates a pipeline. st may be nil for ephemeral runs.
func New(engine *rules.Engine, st *store.Store, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	return &Pipeline{
		importer: csvimport.NewImporter(engine),
		store:    st,
		logger:   logger,
	}
}

// ImportResult is the outcome of importing one or more files.
type ImportResult struct {
	Transactions []domain.Transaction
	Errors       []string
	FileCount    int
	RowCount     int
}

// ImportFile parses a single CSV file.
func (p *Pipeline) ImportFile(path string) (*csvimport.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return p.importer.Parse(f)
}

// ImportAll parses every discovered file, merges the transactions into one
// newest-first list, applies stored merchant overrides, and replaces the
// store contents. Row-level errors are collected per file and never abort
// the run; a file that cannot be opened at all does.
func (p *Pipeline) ImportAll(files []scanner.ScanResult) (*ImportResult, error) {
	combined := &ImportResult{FileCount: len(files)}

	for _, file := range files {
		result, err := p.ImportFile(file.Path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file.Path, err)
		}

		p.logger.Debug("parsed file",
			"path", file.Path,
			"source", file.Source,
			"rows", result.RowCount,
			"transactions", len(result.Transactions),
			"errors", len(result.Errors))

		combined.Transactions = append(combined.Transactions, result.Transactions...)
		combined.RowCount += result.RowCount
		for _, msg := range result.Errors {
			combined.Errors = append(combined.Errors, fmt.Sprintf("%s: %s", file.Source, msg))
		}
	}

	sort.SliceStable(combined.Transactions, func(i, j int) bool {
		return combined.Transactions[i].Date.After(combined.Transactions[j].Date)
	})

	if err := p.applyMerchantOverrides(combined.Transactions); err != nil {
		return nil, err
	}

	if report := validate.ValidateTransactions(combined.Transactions); !report.IsValid() {
		for _, e := range report.Errors {
			p.logger.Error("invalid transaction", "id", e.ID, "field", e.Field, "message", e.Message)
		}
		return nil, fmt.Errorf("import produced an invalid transaction set (%s)", report.Summary())
	}

	if p.store != nil {
		if err := p.store.ReplaceTransactions(combined.Transactions); err != nil {
			return nil, fmt.Errorf("persisting transactions: %w", err)
		}
		p.logger.Debug("persisted transactions", "count", len(combined.Transactions))
	}

	return combined, nil
}

// applyMerchantOverrides rewrites categories for merchants the user has
// pinned. The override takes effect at ingestion, so both Category and
// OriginalCategory reflect it.
func (p *Pipeline) applyMerchantOverrides(txns []domain.Transaction) error {
	if p.store == nil {
		return nil
	}
	overrides, err := p.store.MerchantOverrides()
	if err != nil {
		return fmt.Errorf("loading merchant overrides: %w", err)
	}
	if len(overrides) == 0 {
		return nil
	}

	for i := range txns {
		if txns[i].Merchant == "" {
			continue
		}
		key := rules.NormalizeMerchant(txns[i].Merchant)
		if category, ok := overrides[key]; ok && domain.ValidateCategory(category) {
			txns[i].Category = category
			txns[i].OriginalCategory = category
		}
	}
	return nil
}
