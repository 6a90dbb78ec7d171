// Package backup serialises the transaction table to a versioned JSON
// document and restores it with a full, atomic replace. Restore is
// deliberately destructive: a single-user local app has no sync conflicts
// to merge.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"mototrack/internal/core"
)

// Version is the only backup document version this build reads or writes.
const Version = 1

var (
	ErrUnsupportedVersion = errors.New("unsupported backup version")
	ErrMalformedBackup    = errors.New("malformed backup document")
)

// Document is the backup file payload. Transactions are embedded verbatim,
// ids included, and soft-deleted rows are kept so a restore reproduces the
// table exactly.
type Document struct {
	Version      int                `json:"version"`
	ExportedAt   int64              `json:"exportedAt"`
	Transactions []core.Transaction `json:"transactions"`
}

// Store is the slice of the repository the codec needs.
type Store interface {
	DumpAll(ctx context.Context) ([]core.Transaction, error)
	ReplaceAll(ctx context.Context, transactions []core.Transaction) error
}

// Build reads every physical row and wraps it in a version-1 document
// stamped with the export time.
func Build(ctx context.Context, store Store) (Document, error) {
	rows, err := store.DumpAll(ctx)
	if err != nil {
		return Document{}, fmt.Errorf("build backup: %w", err)
	}

	return Document{
		Version:      Version,
		ExportedAt:   time.Now().UnixMilli(),
		Transactions: rows,
	}, nil
}

// Encode renders the document as indented JSON, matching the exported file
// format.
func Encode(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	return data, nil
}

// Decode parses and structurally validates a backup document. It rejects
// non-object payloads, a missing transactions array, and unknown versions
// before any mutation can happen.
func Decode(data []byte) (Document, error) {
	var raw struct {
		Version      *int               `json:"version"`
		ExportedAt   int64              `json:"exportedAt"`
		Transactions []core.Transaction `json:"transactions"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrMalformedBackup, err)
	}
	if raw.Version == nil {
		return Document{}, fmt.Errorf("%w: missing version", ErrMalformedBackup)
	}
	if raw.Transactions == nil {
		return Document{}, fmt.Errorf("%w: missing transactions", ErrMalformedBackup)
	}
	if *raw.Version != Version {
		return Document{}, fmt.Errorf("%w: got version %d", ErrUnsupportedVersion, *raw.Version)
	}

	return Document{
		Version:      *raw.Version,
		ExportedAt:   raw.ExportedAt,
		Transactions: raw.Transactions,
	}, nil
}

// Apply restores a document into the store, replacing all existing rows in
// one transaction: on any failure the table is left untouched. Rows missing
// updatedAt inherit createdAt; optional fields default to null.
func Apply(ctx context.Context, store Store, doc Document) error {
	if doc.Version != Version {
		return fmt.Errorf("%w: got version %d", ErrUnsupportedVersion, doc.Version)
	}

	rows := make([]core.Transaction, len(doc.Transactions))
	for i, t := range doc.Transactions {
		if t.UpdatedAt == 0 {
			t.UpdatedAt = t.CreatedAt
		}
		rows[i] = t
	}

	if err := store.ReplaceAll(ctx, rows); err != nil {
		return fmt.Errorf("apply backup: %w", err)
	}

	slog.InfoContext(ctx, "Backup restored", "rows", len(rows))
	return nil
}
