// Package output serializes import snapshots as JSON for files or stdout.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rumor-ml/fininsight/internal/domain"
)

// Snapshot bundles an import's transactions with the derived insights and
// any row-level errors encountered on the way in.
type Snapshot struct {
	Transactions []domain.Transaction `json:"transactions"`
	Insights     *domain.Insights     `json:"insights"`
	Errors       []string             `json:"errors,omitempty"`
	GeneratedAt  time.Time            `json:"generatedAt"`
}

// NewSnapshot builds a snapshot stamped with the current time.
func NewSnapshot(txns []domain.Transaction, ins *domain.Insights, errs []string) *Snapshot {
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return &Snapshot{
		Transactions: txns,
		Insights:     ins,
		Errors:       errs,
		GeneratedAt:  time.Now().UTC(),
	}
}

// WriteSnapshot serializes a snapshot to JSON with 2-space indentation
func WriteSnapshot(snapshot *Snapshot, w io.Writer) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot cannot be nil")
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(snapshot); err != nil {
		return fmt.Errorf("failed to encode snapshot as JSON: %w", err)
	}
	return nil
}

// WriteSnapshotToFile writes a snapshot to the given path, or to stdout when
// the path is empty.
func WriteSnapshotToFile(snapshot *Snapshot, filePath string) (err error) {
	if filePath == "" {
		return WriteSnapshot(snapshot, os.Stdout)
	}

	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", filePath, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close output file %s: %w", filePath, closeErr)
		}
	}()

	if err = WriteSnapshot(snapshot, f); err != nil {
		return fmt.Errorf("failed to write snapshot to %s: %w", filePath, err)
	}
	return nil
}

// LoadSnapshot reads a previously written snapshot.
func LoadSnapshot(filePath string) (*Snapshot, error) {
	if filePath == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}

	f, err := os.Open(filePath)
	if err != nil {
		// Unwrapped so callers can check os.IsNotExist
		return nil, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", filePath, closeErr)
		}
	}()

	var snapshot Snapshot
	if err := json.NewDecoder(f).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot JSON: %w", err)
	}
	return &snapshot, nil
}
