// Package services orchestrates the repository and the stats engine behind
// the presentation boundary. Input validation happens here, before anything
// reaches the store.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"mototrack/internal/core"
)

// Repository is the store surface the services need. Implemented by
// storage.SQLiteRepository.
type Repository interface {
	List(ctx context.Context) ([]core.Transaction, error)
	ListByMonth(ctx context.Context, year, month int) ([]core.Transaction, error)
	GetByID(ctx context.Context, id int64) (core.Transaction, error)
	Insert(ctx context.Context, in core.EntryInput) (int64, error)
	Update(ctx context.Context, id int64, in core.EntryInput) error
	SoftDelete(ctx context.Context, id int64) error
}

// TransactionService validates entries at the boundary and delegates to the
// repository.
type TransactionService struct {
	repo Repository
}

func NewTransactionService(repo Repository) *TransactionService {
	return &TransactionService{repo: repo}
}

// List returns all visible transactions, newest first.
func (s *TransactionService) List(ctx context.Context) ([]core.Transaction, error) {
	return s.repo.List(ctx)
}

// ListByMonth returns the visible transactions of one calendar month.
func (s *TransactionService) ListByMonth(ctx context.Context, year, month int) ([]core.Transaction, error) {
	if month < 1 || month > 12 {
		return nil, core.ErrInvalidDate
	}
	return s.repo.ListByMonth(ctx, year, month)
}

// Get returns a single visible transaction by id.
func (s *TransactionService) Get(ctx context.Context, id int64) (core.Transaction, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates and normalizes the input, then inserts it. The new id is
// returned and immediately retrievable via Get.
func (s *TransactionService) Create(ctx context.Context, in core.EntryInput) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}

	id, err := s.repo.Insert(ctx, in.Normalize())
	if err != nil {
		return 0, fmt.Errorf("create transaction: %w", err)
	}
	return id, nil
}

// Update validates and normalizes the input, then replaces the editable
// fields of an existing row. Soft-deleted rows cannot be resurrected.
func (s *TransactionService) Update(ctx context.Context, id int64, in core.EntryInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, id, in.Normalize()); err != nil {
		return fmt.Errorf("update transaction %d: %w", id, err)
	}
	return nil
}

// Delete soft-deletes a transaction. Repeating the call is a no-op.
func (s *TransactionService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Soft delete failed", "id", id, "error", err)
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}
	return nil
}
