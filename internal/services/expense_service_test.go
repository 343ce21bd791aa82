package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outlay/internal/core"
	"outlay/internal/store"
)

type fakePublisher struct {
	created []string
	deleted []string
	fail    bool
}

func (f *fakePublisher) PublishExpenseCreated(_ context.Context, id string) error {
	if f.fail {
		return errors.New("broker unavailable")
	}
	f.created = append(f.created, id)
	return nil
}

func (f *fakePublisher) PublishExpenseDeleted(_ context.Context, id string) error {
	if f.fail {
		return errors.New("broker unavailable")
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestService(pub EventPublisher) (*ExpenseService, *store.MemoryStore) {
	s := store.NewMemoryStore()
	return NewExpenseService(s, NewLimitGuard(s, s), pub), s
}

func TestCreateExpenseRecordsAndPublishes(t *testing.T) {
	pub := &fakePublisher{}
	svc, s := newTestService(pub)
	ctx := context.Background()

	id, err := svc.CreateExpense(ctx, "food", 20, "lunch")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	saved, err := s.GetExpense(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "food", saved.Category)
	assert.False(t, saved.Date.IsZero())
	assert.Equal(t, []string{id}, pub.created)
}

func TestCreateExpenseRequiresAllFields(t *testing.T) {
	svc, s := newTestService(nil)
	ctx := context.Background()

	cases := []struct {
		name     string
		category string
		amount   float64
		purpose  string
	}{
		{"missing category", "", 10, "lunch"},
		{"blank category", "   ", 10, "lunch"},
		{"zero amount", "food", 0, "lunch"},
		{"missing purpose", "food", 10, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateExpense(ctx, tc.category, tc.amount, tc.purpose)
			assert.ErrorIs(t, err, core.ErrFieldsRequired)
		})
	}

	all, err := s.ListExpenses(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "rejected expenses must not be recorded")
}

func TestCreateExpenseBlockedByLimit(t *testing.T) {
	pub := &fakePublisher{}
	svc, s := newTestService(pub)
	ctx := context.Background()

	_, err := s.UpsertLimit(ctx, "food", 30)
	require.NoError(t, err)

	_, err = svc.CreateExpense(ctx, "food", 20, "groceries")
	require.NoError(t, err)
	_, err = svc.CreateExpense(ctx, "food", 15, "snacks")
	require.Error(t, err)
	assert.True(t, core.IsLimitExceeded(err))

	all, err := s.ListExpenses(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Len(t, pub.created, 1)
}

func TestCreateExpenseSurvivesPublishFailure(t *testing.T) {
	svc, s := newTestService(&fakePublisher{fail: true})
	ctx := context.Background()

	id, err := svc.CreateExpense(ctx, "food", 20, "lunch")
	require.NoError(t, err, "publish failure must not fail the request")

	_, err = s.GetExpense(ctx, id)
	assert.NoError(t, err)
}

func TestDeleteExpensePublishesEvent(t *testing.T) {
	pub := &fakePublisher{}
	svc, _ := newTestService(pub)
	ctx := context.Background()

	id, err := svc.CreateExpense(ctx, "food", 20, "lunch")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteExpense(ctx, id))
	assert.Equal(t, []string{id}, pub.deleted)

	assert.ErrorIs(t, svc.DeleteExpense(ctx, "missing"), core.ErrNotFound)
}

func TestSetAndUpdateLimit(t *testing.T) {
	svc, s := newTestService(nil)
	ctx := context.Background()

	assert.ErrorIs(t, svc.SetLimit(ctx, "", 100), core.ErrFieldsRequired)
	assert.ErrorIs(t, svc.SetLimit(ctx, "food", 0), core.ErrFieldsRequired)

	require.NoError(t, svc.SetLimit(ctx, "food", 100))
	require.NoError(t, svc.SetLimit(ctx, "food", 80))
	limits, err := s.ListLimits(ctx)
	require.NoError(t, err)
	require.Len(t, limits, 1)
	assert.Equal(t, 80.0, limits[0].Amount)

	require.NoError(t, svc.UpdateLimitAmount(ctx, "food", 60))
	assert.ErrorIs(t, svc.UpdateLimitAmount(ctx, "fuel", 60), core.ErrNotFound)
}

func TestPurgeCategoryRemovesLimitAndItsExpensesOnly(t *testing.T) {
	pub := &fakePublisher{}
	svc, s := newTestService(pub)
	ctx := context.Background()

	seedExpense(t, s, "food", 20, time.Now().UTC())
	seedExpense(t, s, "food", 15, time.Now().UTC())
	seedExpense(t, s, "fuel", 40, time.Now().UTC())
	limitID, err := s.UpsertLimit(ctx, "food", 100)
	require.NoError(t, err)

	category, err := svc.PurgeCategory(ctx, limitID)
	require.NoError(t, err)
	assert.Equal(t, "food", category)

	rest, err := s.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "fuel", rest[0].Category)

	_, err = s.GetLimitByID(ctx, limitID)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Len(t, pub.deleted, 2)

	_, err = svc.PurgeCategory(ctx, "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}
