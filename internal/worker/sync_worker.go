package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"outlay/internal/amqp"
	"outlay/internal/core"
	"outlay/internal/sheets"
	"outlay/internal/store"
)

// SyncWorker mirrors recorded expenses into the external ledger.
type SyncWorker struct {
	records   store.RecordStore
	ledger    sheets.LedgerWriter
	batchSize int
}

func NewSyncWorker(records store.RecordStore, ledger sheets.LedgerWriter, batchSize int) *SyncWorker {
	if batchSize < 1 {
		batchSize = 1
	}
	return &SyncWorker{
		records:   records,
		ledger:    ledger,
		batchSize: batchSize,
	}
}

// HandleEvent processes a single expense event from the queue.
func (w *SyncWorker) HandleEvent(ctx context.Context, msg *amqp.ExpenseEvent) error {
	switch msg.Kind {
	case amqp.KindExpenseCreated:
		return w.handleCreated(ctx, msg.ExpenseID)
	case amqp.KindExpenseDeleted:
		// The ledger is append-only; deletions stay local.
		slog.InfoContext(ctx, "Expense deleted locally, ledger row kept",
			"expense_id", msg.ExpenseID)
		return nil
	default:
		slog.WarnContext(ctx, "Unknown event kind, dropping",
			"kind", msg.Kind, "expense_id", msg.ExpenseID)
		return nil
	}
}

func (w *SyncWorker) handleCreated(ctx context.Context, id string) error {
	expense, err := w.records.GetExpense(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		// Deleted before the event was consumed.
		slog.WarnContext(ctx, "Expense gone before sync, skipping", "expense_id", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get expense: %w", err)
	}

	return w.syncExpense(ctx, expense)
}

// ProcessPendingExpenses syncs expenses the queue missed. Batch items
// run concurrently with a small limit to stay under API quotas.
func (w *SyncWorker) ProcessPendingExpenses(ctx context.Context) error {
	pending, err := w.records.ListUnsyncedExpenses(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending expenses: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending expenses", "count", len(pending))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, expense := range pending {
		expense := expense
		g.Go(func() error {
			if err := w.syncExpense(ctx, expense); err != nil {
				slog.ErrorContext(ctx, "Failed to sync expense",
					"expense_id", expense.ID, "error", err)
			}
			// Sync failures are recorded per expense, not fatal.
			return nil
		})
	}
	return g.Wait()
}

// StartupSyncCheck drains a larger backlog once at worker startup,
// recovering from missed events or worker downtime.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.records.ListUnsyncedExpenses(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending expenses for startup check: %w", err)
	}
	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending expenses found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending expenses on startup, processing",
		"count", len(pending))

	synced := 0
	failed := 0
	for _, expense := range pending {
		if err := w.syncExpense(ctx, expense); err != nil {
			slog.ErrorContext(ctx, "Failed to sync expense during startup",
				"expense_id", expense.ID, "error", err)
			failed++
			continue
		}
		synced++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", synced,
		"errors", failed)

	return nil
}

func (w *SyncWorker) syncExpense(ctx context.Context, expense core.Expense) error {
	ref, err := w.ledger.Append(ctx, expense)
	if err != nil {
		if markErr := w.records.MarkExpenseSyncError(ctx, expense.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error",
				"expense_id", expense.ID, "error", markErr)
		}
		return fmt.Errorf("append to ledger: %w", err)
	}

	if err := w.records.MarkExpenseSynced(ctx, expense.ID); err != nil {
		// The row landed in the ledger; the flag catches up on the next pass.
		slog.ErrorContext(ctx, "Failed to mark as synced",
			"expense_id", expense.ID, "error", err)
	}

	slog.InfoContext(ctx, "Expense synced to ledger",
		"expense_id", expense.ID,
		"sheets_ref", ref,
		"category", expense.Category,
		"amount", expense.Amount)

	return nil
}
