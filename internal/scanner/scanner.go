// Package scanner discovers CSV statement exports under a directory tree.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scanner walks a directory tree and finds CSV statement files
type Scanner struct {
	rootDir string
}

// New creates a new scanner for the given root directory
func New(rootDir string) *Scanner {
	return &Scanner{rootDir: rootDir}
}

// ScanResult represents a found file with its source label
type ScanResult struct {
	Path   string
	Source string
}

// Scan walks the directory tree and finds all CSV files, sorted by path so
// repeated runs import in the same order.
func (s *Scanner) Scan() ([]ScanResult, error) {
	var results []ScanResult

	rootDir := s.expandHome(s.rootDir)

	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !isCSVFile(path) {
			return nil
		}

		results = append(results, ScanResult{
			Path:   path,
			Source: s.sourceLabel(path, rootDir),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
	return results, nil
}

func isCSVFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}

// sourceLabel derives a human-readable source from the first directory under
// the root, e.g. {root}/capital_one/march.csv labels as "Capital One". Files
// directly under the root are labeled by file name.
func (s *Scanner) sourceLabel(filePath, rootDir string) string {
	relPath, err := filepath.Rel(rootDir, filePath)
	if err != nil {
		relPath = filePath
	}

	parts := strings.Split(filepath.ToSlash(relPath), "/")
	if len(parts) >= 2 {
		return normalizeSourceName(parts[0])
	}
	base := filepath.Base(filePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// normalizeSourceName converts a directory name to a readable name,
// "american_express" -> "American Express".
func normalizeSourceName(dirName string) string {
	name := strings.ReplaceAll(dirName, "_", " ")

	words := strings.Split(name, " ")
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

// expandHome expands ~ to the home directory
func (s *Scanner) expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
