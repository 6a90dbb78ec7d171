package backup

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// DefaultFileName returns the dated export name, e.g.
// "mototrack-backup-2026-08-30.json".
func DefaultFileName(now time.Time) string {
	return "mototrack-backup-" + now.Format("2006-01-02") + ".json"
}

// ExportToFile builds a backup document and writes it as a whole JSON file.
// Returns the path written.
func ExportToFile(ctx context.Context, store Store, path string) (string, error) {
	doc, err := Build(ctx, store)
	if err != nil {
		return "", err
	}

	data, err := Encode(doc)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("create backup directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write backup file: %w", err)
	}

	slog.InfoContext(ctx, "Backup exported", "path", path, "rows", len(doc.Transactions))
	return path, nil
}

// ImportFromFile reads a whole backup file, validates it, and applies it.
// Validation failures happen before any row is touched.
func ImportFromFile(ctx context.Context, store Store, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read backup file: %w", err)
	}

	doc, err := Decode(data)
	if err != nil {
		return err
	}

	return Apply(ctx, store, doc)
}
