package store

import (
	"context"
	"time"

	"outlay/internal/core"
)

// Ports for the record store. The core components only ever see these
// interfaces; adapters live in this package (sqlite, memory).
type (
	ExpenseStore interface {
		// InsertExpense persists a new expense and returns its
		// store-assigned id.
		InsertExpense(ctx context.Context, e core.Expense) (string, error)

		// ListExpenses returns every expense in insertion order.
		ListExpenses(ctx context.Context) ([]core.Expense, error)

		// ListExpensesByCategory returns all expenses with an exact
		// category match, in insertion order.
		ListExpensesByCategory(ctx context.Context, category string) ([]core.Expense, error)

		// ListExpensesInRange returns expenses with start <= date < end.
		ListExpensesInRange(ctx context.Context, start, end time.Time) ([]core.Expense, error)

		// GetExpense returns the expense with the given id, or
		// core.ErrNotFound.
		GetExpense(ctx context.Context, id string) (core.Expense, error)

		// UpdateExpense replaces category, amount and purpose in place.
		// Returns core.ErrNotFound when the id has no record.
		UpdateExpense(ctx context.Context, id, category string, amount float64, purpose string) error

		// DeleteExpense removes the expense, or returns core.ErrNotFound.
		DeleteExpense(ctx context.Context, id string) error

		// DeleteExpensesByCategory removes every expense with an exact
		// category match and reports how many were removed. Zero matches
		// is not an error.
		DeleteExpensesByCategory(ctx context.Context, category string) (int64, error)
	}

	LimitStore interface {
		// UpsertLimit creates or replaces the limit for a category and
		// returns its id.
		UpsertLimit(ctx context.Context, category string, amount float64) (string, error)

		// UpdateLimitAmount updates the ceiling for an existing category,
		// or returns core.ErrNotFound.
		UpdateLimitAmount(ctx context.Context, category string, amount float64) error

		// GetLimitByCategory returns the limit for a category, or
		// core.ErrNotFound when the category is unlimited.
		GetLimitByCategory(ctx context.Context, category string) (core.Limit, error)

		// GetLimitByID returns the limit with the given id, or
		// core.ErrNotFound.
		GetLimitByID(ctx context.Context, id string) (core.Limit, error)

		// ListLimits returns every limit in insertion order.
		ListLimits(ctx context.Context) ([]core.Limit, error)

		// DeleteLimit removes the limit with the given id, or returns
		// core.ErrNotFound.
		DeleteLimit(ctx context.Context, id string) error
	}

	// SyncStateStore tracks which expenses have been mirrored to the
	// external ledger. Used only by the sync worker.
	SyncStateStore interface {
		// ListUnsyncedExpenses returns up to limit expenses not yet
		// mirrored, oldest first.
		ListUnsyncedExpenses(ctx context.Context, limit int) ([]core.Expense, error)

		// MarkExpenseSynced flags an expense as mirrored.
		MarkExpenseSynced(ctx context.Context, id string) error

		// MarkExpenseSyncError records a failed mirror attempt.
		MarkExpenseSyncError(ctx context.Context, id string) error
	}

	// RecordStore is the full store surface the application wires up.
	RecordStore interface {
		ExpenseStore
		LimitStore
		SyncStateStore
	}
)
