package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outlay/internal/core"
)

func TestMemoryStoreExpenseLifecycle(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	now := time.Now().UTC()

	id, err := s.InsertExpense(ctx, core.Expense{Category: "food", Amount: 20, Purpose: "lunch", Date: now})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := s.GetExpense(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "food", got.Category)

	require.NoError(t, s.UpdateExpense(ctx, id, "fuel", 30, "petrol"))
	got, err = s.GetExpense(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "fuel", got.Category)
	assert.Equal(t, 30.0, got.Amount)

	require.NoError(t, s.DeleteExpense(ctx, id))
	_, err = s.GetExpense(ctx, id)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestMemoryStoreFilters(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.InsertExpense(ctx, core.Expense{Category: "food", Amount: 1, Purpose: "a", Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	_, err = s.InsertExpense(ctx, core.Expense{Category: "fuel", Amount: 2, Purpose: "b", Date: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	food, err := s.ListExpensesByCategory(ctx, "food")
	require.NoError(t, err)
	require.Len(t, food, 1)
	assert.Equal(t, 1.0, food[0].Amount)

	start, end := core.MonthRange(2024, 3)
	inMarch, err := s.ListExpensesInRange(ctx, start, end)
	require.NoError(t, err)
	require.Len(t, inMarch, 1)
	assert.Equal(t, "food", inMarch[0].Category)
}

func TestMemoryStoreLimits(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	id1, err := s.UpsertLimit(ctx, "food", 100)
	require.NoError(t, err)
	id2, err := s.UpsertLimit(ctx, "food", 50)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	lim, err := s.GetLimitByCategory(ctx, "food")
	require.NoError(t, err)
	assert.Equal(t, 50.0, lim.Amount)

	require.NoError(t, s.UpdateLimitAmount(ctx, "food", 75))
	assert.ErrorIs(t, s.UpdateLimitAmount(ctx, "fuel", 10), core.ErrNotFound)

	require.NoError(t, s.DeleteLimit(ctx, id1))
	_, err = s.GetLimitByID(ctx, id1)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestMemoryStoreSyncState(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	id, err := s.InsertExpense(ctx, core.Expense{Category: "food", Amount: 1, Purpose: "a", Date: time.Now().UTC()})
	require.NoError(t, err)

	pending, err := s.ListUnsyncedExpenses(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, s.MarkExpenseSynced(ctx, id))
	pending, err = s.ListUnsyncedExpenses(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
