package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/rumor-ml/fininsight/internal/advisor"
	"github.com/rumor-ml/fininsight/internal/config"
	"github.com/rumor-ml/fininsight/internal/csvimport"
	"github.com/rumor-ml/fininsight/internal/domain"
	"github.com/rumor-ml/fininsight/internal/insights"
	"github.com/rumor-ml/fininsight/internal/output"
	"github.com/rumor-ml/fininsight/internal/pipeline"
	"github.com/rumor-ml/fininsight/internal/rules"
	"github.com/rumor-ml/fininsight/internal/scanner"
	"github.com/rumor-ml/fininsight/internal/store"
	"github.com/rumor-ml/fininsight/internal/ui"
)

const (
	version = "0.1.0"
)

var (
	// Global flags
	versionFlag = flag.Bool("version", false, "Show version")

	// Core CLI flags
	input    = flag.String("input", "", "CSV file or directory of CSV exports (required)")
	validate = flag.Bool("validate", false, "Check CSV structure without importing")
	verbose  = flag.Bool("verbose", false, "Show detailed import logs")

	// Persistence and output flags
	storePath  = flag.String("store", "", "SQLite store path (default: config store.path)")
	ephemeral  = flag.Bool("ephemeral", false, "Skip the store entirely for this run")
	jsonOut    = flag.Bool("json", false, "Emit the snapshot as JSON instead of a report")
	outputFile = flag.String("output", "", "JSON output file (default: stdout)")

	// Categorization and advice flags
	rulesFile  = flag.String("rules", "", "Category rules YAML file (default: embedded rules)")
	adviceFlag = flag.Bool("advice", false, "Generate AI advice from the configured provider")
)

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `fininsight - Bank CSV import, categorization, and spending insights

Usage:
  fininsight [flags]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprint(os.Stderr, `
Examples:
  # Import a single export and print the report
  fininsight -input checking.csv

  # Import everything under a directory into the store
  fininsight -input ~/statements -store fininsight.db

  # Structure pre-flight only
  fininsight -input checking.csv -validate

  # Snapshot JSON plus AI advice
  fininsight -input checking.csv -json -advice

`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("fininsight version %s\n", version)
		os.Exit(0)
	}

	if *input == "" {
		fmt.Fprintf(os.Stderr, "Error: -input flag is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "fininsight",
	})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	interactive := !*jsonOut && !*validate
	if interactive {
		ui.Header("Spending Insights")
		ui.Step(1, 3, "Discovering CSV files")
	}

	files, err := discoverInputs(*input)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no CSV files found under %s", *input)
	}
	logger.Debug("discovered inputs", "count", len(files))
	if interactive {
		ui.Success(fmt.Sprintf("Found %d CSV files", len(files)))
	}

	if *validate {
		return validateFiles(files)
	}

	engine, err := loadEngine()
	if err != nil {
		return err
	}

	if interactive {
		ui.Step(2, 3, "Importing transactions")
	}

	var st *store.Store
	if !*ephemeral {
		path := *storePath
		if path == "" {
			path = cfg.Store.Path
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating store directory: %w", err)
		}
		st, err = store.Open(path)
		if err != nil {
			return err
		}
		defer st.Close()
		logger.Debug("opened store", "path", path)
		if interactive {
			ui.Info(fmt.Sprintf("Using store %s", path))
		}
	}

	result, err := pipeline.New(engine, st, logger).ImportAll(files)
	if err != nil {
		return err
	}

	if interactive {
		ui.Success(fmt.Sprintf("Imported %d transactions from %d files (%d rows)",
			len(result.Transactions), result.FileCount, result.RowCount))
		for _, msg := range result.Errors {
			ui.Warning(msg)
		}
		ui.Step(3, 3, "Computing insights")
	}

	snapshot := insights.Calculate(result.Transactions)

	if *jsonOut {
		if err := output.WriteSnapshotToFile(
			output.NewSnapshot(result.Transactions, snapshot, result.Errors), *outputFile); err != nil {
			return err
		}
	} else {
		fmt.Println()
		ui.FprintReport(os.Stdout, snapshot)
		ui.FprintCategoryTrends(os.Stdout, result.Transactions, time.Now())
	}

	if *adviceFlag {
		return generateAdvice(ctx, cfg, snapshot)
	}
	return nil
}

// discoverInputs accepts a single CSV file or a directory to scan.
func discoverInputs(path string) ([]scanner.ScanResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("input %s: %w", path, err)
	}
	if info.IsDir() {
		return scanner.New(path).Scan()
	}
	base := filepath.Base(path)
	return []scanner.ScanResult{{
		Path:   path,
		Source: strings.TrimSuffix(base, filepath.Ext(base)),
	}}, nil
}

func loadEngine() (*rules.Engine, error) {
	if *rulesFile != "" {
		return rules.LoadFromFile(*rulesFile)
	}
	return rules.LoadEmbedded()
}

// validateFiles runs the header pre-flight on each file without importing.
func validateFiles(files []scanner.ScanResult) error {
	failed := 0
	for _, file := range files {
		headers, err := readHeaders(file.Path)
		if err != nil {
			ui.Error(fmt.Sprintf("%s: %v", file.Source, err))
			failed++
			continue
		}
		ok, msg := csvimport.ValidateStructure(headers)
		if ok {
			ui.Success(fmt.Sprintf("%s: %s", file.Source, msg))
		} else {
			ui.Warning(fmt.Sprintf("%s: %s", file.Source, msg))
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed validation", failed, len(files))
	}
	return nil
}

func readHeaders(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	headers, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("no data found in CSV file")
	}
	if err != nil {
		return nil, err
	}
	return headers, nil
}

// generateAdvice calls the configured provider and prints the result, as
// text after the report or as JSON in -json mode.
func generateAdvice(ctx context.Context, cfg config.Config, snapshot *domain.Insights) error {
	apiKey, err := cfg.AI.ResolveAPIKey()
	if err != nil {
		return err
	}
	provider, err := advisor.NewProvider(cfg.AI.Provider, apiKey, cfg.AI.Model)
	if err != nil {
		return err
	}

	advice, err := advisor.Generate(ctx, snapshot, provider)
	if err != nil {
		return err
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(advice)
	}
	fmt.Println()
	ui.FprintAdvice(os.Stdout, advice)
	return nil
}
