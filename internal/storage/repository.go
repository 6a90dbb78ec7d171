// Package storage persists transactions in an embedded SQLite database.
// Every read re-queries the database; no in-memory state is kept, so readers
// always observe the latest committed rows.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"mototrack/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound marks a lookup or write against a row that does not exist or
// is soft-deleted. Callers treat it as "not found", not as a store failure.
var ErrNotFound = errors.New("transaction not found")

const transactionColumns = `id, dateISO, type, amountCents, title, createdAt, updatedAt, deletedAt, notes, category, distanceMeters`

type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// WAL keeps the single-writer model safe across the app's screens.
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:  db,
		now: time.Now,
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) nowMillis() int64 {
	return r.now().UnixMilli()
}

// List returns all non-deleted transactions, newest business date first,
// creation time breaking ties.
func (r *SQLiteRepository) List(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+transactionColumns+`
		FROM transactions
		WHERE deletedAt IS NULL
		ORDER BY dateISO DESC, createdAt DESC;`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// ListByMonth returns non-deleted transactions whose dateISO falls in the
// half-open range [year-month-01, nextMonth-01). An empty month is a valid
// empty result, not an error.
func (r *SQLiteRepository) ListByMonth(ctx context.Context, year, month int) ([]core.Transaction, error) {
	start, end := core.MonthRange(year, month)

	rows, err := r.db.QueryContext(ctx, `SELECT `+transactionColumns+`
		FROM transactions
		WHERE deletedAt IS NULL AND dateISO >= ? AND dateISO < ?
		ORDER BY dateISO DESC, createdAt DESC;`, start, end)
	if err != nil {
		return nil, fmt.Errorf("list transactions for %s: %w", start[:7], err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// GetByID returns a single non-deleted transaction or ErrNotFound.
func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+transactionColumns+`
		FROM transactions
		WHERE id = ? AND deletedAt IS NULL;`, id)

	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction %d: %w", id, err)
	}
	return t, nil
}

// Insert persists a new transaction and returns its assigned id. CreatedAt
// and updatedAt are both stamped to now; deletedAt starts null.
func (r *SQLiteRepository) Insert(ctx context.Context, in core.EntryInput) (int64, error) {
	now := r.nowMillis()

	res, err := r.db.ExecContext(ctx, `INSERT INTO transactions
		(dateISO, type, amountCents, title, createdAt, updatedAt, notes, category, distanceMeters)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		in.DateISO, string(in.Type), in.AmountCents, in.Title, now, now,
		in.Notes, categoryArg(in.Category), in.DistanceMeters)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert transaction id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"type", in.Type,
		"date", in.DateISO,
		"amount_cents", in.AmountCents)

	return id, nil
}

// Update replaces all editable fields of a non-deleted transaction and
// refreshes updatedAt. Updating a missing or soft-deleted row fails with
// ErrNotFound rather than silently succeeding.
func (r *SQLiteRepository) Update(ctx context.Context, id int64, in core.EntryInput) error {
	now := r.nowMillis()

	res, err := r.db.ExecContext(ctx, `UPDATE transactions
		SET dateISO = ?, type = ?, amountCents = ?, title = ?, notes = ?, category = ?, distanceMeters = ?, updatedAt = ?
		WHERE id = ? AND deletedAt IS NULL;`,
		in.DateISO, string(in.Type), in.AmountCents, in.Title,
		in.Notes, categoryArg(in.Category), in.DistanceMeters, now, id)
	if err != nil {
		return fmt.Errorf("update transaction %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update transaction %d: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction updated", "id", id, "amount_cents", in.AmountCents)
	return nil
}

// SoftDelete hides a transaction by stamping deletedAt. Deleting an already
// deleted or unknown row is a no-op.
func (r *SQLiteRepository) SoftDelete(ctx context.Context, id int64) error {
	now := r.nowMillis()

	res, err := r.db.ExecContext(ctx, `UPDATE transactions
		SET deletedAt = ?, updatedAt = ?
		WHERE id = ? AND deletedAt IS NULL;`, now, now, id)
	if err != nil {
		return fmt.Errorf("soft delete transaction %d: %w", id, err)
	}

	if affected, err := res.RowsAffected(); err == nil && affected > 0 {
		slog.InfoContext(ctx, "Transaction soft-deleted", "id", id)
	}
	return nil
}

// DumpAll returns every physical row, soft-deleted ones included, in the
// same order as List. This is the raw read behind backup export.
func (r *SQLiteRepository) DumpAll(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+transactionColumns+`
		FROM transactions
		ORDER BY dateISO DESC, createdAt DESC;`)
	if err != nil {
		return nil, fmt.Errorf("dump transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// ReplaceAll atomically swaps the whole table for the given rows, preserving
// their ids and timestamps. If any insert fails the table is left exactly as
// it was.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, transactions []core.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions;`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO transactions
		(`+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return fmt.Errorf("prepare reinsert: %w", err)
	}
	defer stmt.Close()

	for _, t := range transactions {
		if _, err := stmt.ExecContext(ctx,
			t.ID, t.DateISO, string(t.Type), t.AmountCents, t.Title,
			t.CreatedAt, t.UpdatedAt, t.DeletedAt,
			t.Notes, categoryArg(t.Category), t.DistanceMeters); err != nil {
			return fmt.Errorf("reinsert transaction %d: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}

	slog.InfoContext(ctx, "Transaction table replaced", "rows", len(transactions))
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t         core.Transaction
		typ       string
		notes     sql.NullString
		category  sql.NullString
		distance  sql.NullInt64
		deletedAt sql.NullInt64
	)

	err := row.Scan(&t.ID, &t.DateISO, &typ, &t.AmountCents, &t.Title,
		&t.CreatedAt, &t.UpdatedAt, &deletedAt, &notes, &category, &distance)
	if err != nil {
		return core.Transaction{}, err
	}

	t.Type = core.TransactionType(typ)
	if notes.Valid {
		t.Notes = &notes.String
	}
	if category.Valid {
		c := core.Category(category.String)
		t.Category = &c
	}
	if distance.Valid {
		t.DistanceMeters = &distance.Int64
	}
	if deletedAt.Valid {
		t.DeletedAt = &deletedAt.Int64
	}
	return t, nil
}

func collectTransactions(rows *sql.Rows) ([]core.Transaction, error) {
	transactions := []core.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return transactions, nil
}

// categoryArg unwraps the enum for the driver; a nil category stays NULL.
func categoryArg(c *core.Category) any {
	if c == nil {
		return nil
	}
	return string(*c)
}
