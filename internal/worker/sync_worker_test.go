package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outlay/internal/amqp"
	"outlay/internal/core"
	"outlay/internal/sheets/memory"
	"outlay/internal/store"
)

func insertExpense(t *testing.T, s *store.MemoryStore, category string, amount float64) string {
	t.Helper()
	id, err := s.InsertExpense(context.Background(), core.Expense{
		Category: category,
		Amount:   amount,
		Purpose:  "test",
		Date:     time.Now().UTC(),
	})
	require.NoError(t, err)
	return id
}

func TestHandleEventSyncsCreatedExpense(t *testing.T) {
	s := store.NewMemoryStore()
	ledger := memory.NewLedger()
	w := NewSyncWorker(s, ledger, 10)
	ctx := context.Background()

	id := insertExpense(t, s, "food", 20)

	err := w.HandleEvent(ctx, amqp.NewExpenseEvent(amqp.KindExpenseCreated, id))
	require.NoError(t, err)

	rows := ledger.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "food", rows[0].Category)

	pending, err := s.ListUnsyncedExpenses(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestHandleEventSkipsMissingExpense(t *testing.T) {
	s := store.NewMemoryStore()
	ledger := memory.NewLedger()
	w := NewSyncWorker(s, ledger, 10)

	err := w.HandleEvent(context.Background(), amqp.NewExpenseEvent(amqp.KindExpenseCreated, "gone"))
	assert.NoError(t, err, "missing expenses are skipped, not requeued")
	assert.Empty(t, ledger.Rows())
}

func TestHandleEventIgnoresDeletes(t *testing.T) {
	s := store.NewMemoryStore()
	ledger := memory.NewLedger()
	w := NewSyncWorker(s, ledger, 10)

	err := w.HandleEvent(context.Background(), amqp.NewExpenseEvent(amqp.KindExpenseDeleted, "any"))
	assert.NoError(t, err)
	assert.Empty(t, ledger.Rows())
}

func TestSyncFailureKeepsExpensePending(t *testing.T) {
	s := store.NewMemoryStore()
	ledger := memory.NewLedger()
	ledger.FailWith = errors.New("quota exceeded")
	w := NewSyncWorker(s, ledger, 10)
	ctx := context.Background()

	id := insertExpense(t, s, "food", 20)

	err := w.HandleEvent(ctx, amqp.NewExpenseEvent(amqp.KindExpenseCreated, id))
	require.Error(t, err)

	pending, err := s.ListUnsyncedExpenses(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, id, pending[0].ID)
}

func TestProcessPendingExpensesDrainsBacklog(t *testing.T) {
	s := store.NewMemoryStore()
	ledger := memory.NewLedger()
	w := NewSyncWorker(s, ledger, 10)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		insertExpense(t, s, "food", float64(i+1))
	}

	require.NoError(t, w.ProcessPendingExpenses(ctx))

	assert.Len(t, ledger.Rows(), 5)
	pending, err := s.ListUnsyncedExpenses(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestStartupSyncCheckContinuesPastFailures(t *testing.T) {
	s := store.NewMemoryStore()
	ledger := memory.NewLedger()
	w := NewSyncWorker(s, ledger, 2)
	ctx := context.Background()

	insertExpense(t, s, "food", 1)
	insertExpense(t, s, "fuel", 2)

	ledger.FailWith = errors.New("quota exceeded")
	require.NoError(t, w.StartupSyncCheck(ctx), "startup check reports failures via sync state")

	pending, err := s.ListUnsyncedExpenses(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	ledger.FailWith = nil
	require.NoError(t, w.StartupSyncCheck(ctx))
	pending, err = s.ListUnsyncedExpenses(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
