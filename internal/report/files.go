package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// SaveLedger writes a ledger to dir/name, creating dir when needed, and returns the path.
func SaveLedger(dir, name string, l Ledger) (string, error) {
	return save(dir, name, func(f *os.File) error { return WriteLedger(f, l) })
}

// SaveSummary writes the batch summary into dir and returns its path.
func SaveSummary(dir string, rows []SummaryRow) (string, error) {
	return save(dir, SummaryFileName, func(f *os.File) error { return WriteSummary(f, rows) })
}

func save(dir, name string, write func(*os.File) error) (path string, err error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	path = filepath.Join(dir, name)
	f, err := os.Create(path) //nolint:gosec // path is built from the configured output directory
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if err := write(f); err != nil {
		return "", err
	}
	return path, nil
}
