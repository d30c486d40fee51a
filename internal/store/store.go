// Package store persists transactions and merchant category overrides in a
// local SQLite database.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rumor-ml/fininsight/internal/domain"
	"github.com/rumor-ml/fininsight/internal/rules"
)

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id                 TEXT PRIMARY KEY,
	date               TEXT NOT NULL,
	description        TEXT NOT NULL,
	amount             REAL NOT NULL,
	category           TEXT NOT NULL,
	merchant           TEXT NOT NULL DEFAULT '',
	balance            REAL,
	original_category  TEXT NOT NULL,
	user_modified      INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS merchant_categories (
	merchant  TEXT PRIMARY KEY,
	category  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
`

// Store is a SQLite-backed transaction archive. All dates are stored as
// RFC 3339 strings so lexical and chronological order coincide.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema
// exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// ReplaceTransactions swaps the stored transaction set for txns atomically.
func (s *Store) ReplaceTransactions(txns []domain.Transaction) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM transactions"); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO transactions
			(id, date, description, amount, category, merchant, balance, original_category, user_modified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range txns {
		var balance interface{}
		if t.Balance != nil {
			balance = *t.Balance
		}
		_, err := stmt.Exec(
			t.ID,
			t.Date.Format(time.RFC3339),
			t.Description,
			t.Amount,
			string(t.Category),
			t.Merchant,
			balance,
			string(t.OriginalCategory),
			boolToInt(t.UserModified),
		)
		if err != nil {
			return fmt.Errorf("insert transaction %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// Transactions loads every stored transaction, newest first.
func (s *Store) Transactions() ([]domain.Transaction, error) {
	rows, err := s.db.Query(`
		SELECT id, date, description, amount, category, merchant, balance, original_category, user_modified
		FROM transactions
		ORDER BY date DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		var (
			t        domain.Transaction
			date     string
			category string
			original string
			balance  sql.NullFloat64
			modified int
		)
		if err := rows.Scan(&t.ID, &date, &t.Description, &t.Amount, &category,
			&t.Merchant, &balance, &original, &modified); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Date, err = time.Parse(time.RFC3339, date)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: bad stored date %q: %w", t.ID, date, err)
		}
		t.Category = domain.Category(category)
		t.OriginalCategory = domain.Category(original)
		if balance.Valid {
			b := balance.Float64
			t.Balance = &b
		}
		t.UserModified = modified != 0
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// SetCategory reassigns a stored transaction's category and records a
// merchant override so future imports of the same merchant pick it up. The
// original category is preserved on the row.
func (s *Store) SetCategory(id string, category domain.Category) error {
	if !domain.ValidateCategory(category) {
		return fmt.Errorf("invalid category: %s", category)
	}

	var merchant string
	err := s.db.QueryRow("SELECT merchant FROM transactions WHERE id = ?", id).Scan(&merchant)
	if err == sql.ErrNoRows {
		return fmt.Errorf("transaction %s not found", id)
	}
	if err != nil {
		return fmt.Errorf("lookup transaction %s: %w", id, err)
	}

	_, err = s.db.Exec(
		"UPDATE transactions SET category = ?, user_modified = 1 WHERE id = ?",
		string(category), id)
	if err != nil {
		return fmt.Errorf("update transaction %s: %w", id, err)
	}

	if merchant != "" {
		return s.SetMerchantOverride(merchant, category)
	}
	return nil
}

// SetMerchantOverride pins a merchant to a category. The merchant name is
// normalized so spelling variants share one override.
func (s *Store) SetMerchantOverride(merchant string, category domain.Category) error {
	if !domain.ValidateCategory(category) {
		return fmt.Errorf("invalid category: %s", category)
	}
	key := rules.NormalizeMerchant(merchant)
	if key == "" {
		return fmt.Errorf("empty merchant name")
	}
	_, err := s.db.Exec(`
		INSERT INTO merchant_categories (merchant, category) VALUES (?, ?)
		ON CONFLICT(merchant) DO UPDATE SET category = excluded.category`,
		key, string(category))
	if err != nil {
		return fmt.Errorf("save merchant override: %w", err)
	}
	return nil
}

// MerchantOverrides loads the merchant-to-category override table, keyed by
// normalized merchant name.
func (s *Store) MerchantOverrides() (map[string]domain.Category, error) {
	rows, err := s.db.Query("SELECT merchant, category FROM merchant_categories")
	if err != nil {
		return nil, fmt.Errorf("query merchant overrides: %w", err)
	}
	defer rows.Close()

	overrides := make(map[string]domain.Category)
	for rows.Next() {
		var merchant, category string
		if err := rows.Scan(&merchant, &category); err != nil {
			return nil, fmt.Errorf("scan merchant override: %w", err)
		}
		overrides[merchant] = domain.Category(category)
	}
	return overrides, rows.Err()
}

// Clear removes all stored transactions and overrides.
func (s *Store) Clear() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()
	if _, err := tx.Exec("DELETE FROM transactions"); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM merchant_categories"); err != nil {
		return fmt.Errorf("clear merchant overrides: %w", err)
	}
	return tx.Commit()
}

// exportPayload is the JSON backup shape.
type exportPayload struct {
	Transactions       []domain.Transaction       `json:"transactions"`
	MerchantCategories map[string]domain.Category `json:"merchantCategories"`
	ExportedAt         time.Time                  `json:"exportedAt"`
}

// ExportJSON writes the full store contents as a JSON backup.
func (s *Store) ExportJSON(w io.Writer) error {
	txns, err := s.Transactions()
	if err != nil {
		return err
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	overrides, err := s.MerchantOverrides()
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportPayload{
		Transactions:       txns,
		MerchantCategories: overrides,
		ExportedAt:         time.Now().UTC(),
	})
}

// ImportJSON replaces the store contents with a previously exported backup.
func (s *Store) ImportJSON(r io.Reader) error {
	var payload exportPayload
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return fmt.Errorf("decode backup: %w", err)
	}
	for _, t := range payload.Transactions {
		if !domain.ValidateCategory(t.Category) {
			return fmt.Errorf("backup transaction %s: invalid category %q", t.ID, t.Category)
		}
	}

	if err := s.Clear(); err != nil {
		return err
	}
	if err := s.ReplaceTransactions(payload.Transactions); err != nil {
		return err
	}
	for merchant, category := range payload.MerchantCategories {
		if err := s.SetMerchantOverride(merchant, category); err != nil {
			return err
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
