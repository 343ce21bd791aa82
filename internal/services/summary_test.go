package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outlay/internal/store"
)

func TestSummarizeWorkedExample(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()
	svc := NewSummaryService(s)

	seedExpense(t, s, "food", 20, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	seedExpense(t, s, "food", 15, time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC))
	seedExpense(t, s, "fuel", 40, time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC))

	sum, err := svc.Summarize(ctx, 3, 2024)
	require.NoError(t, err)

	assert.Equal(t, []string{"food", "fuel"}, sum.Categories)
	require.Len(t, sum.Rows, 31)

	first := sum.Rows[0]
	assert.Equal(t, "2024-03-01", first.Date)
	assert.Equal(t, 35.0, first.Cells["food"])
	_, hasFuel := first.Cells["fuel"]
	assert.False(t, hasFuel, "no fuel spending on the first")
	assert.Equal(t, 35.0, first.Total)

	second := sum.Rows[1]
	assert.Equal(t, 40.0, second.Cells["fuel"])
	assert.Equal(t, 40.0, second.Total)

	assert.Empty(t, sum.Rows[30].Cells)
	assert.Zero(t, sum.Rows[30].Total)
}

func TestSummarizeRowCountMatchesCalendar(t *testing.T) {
	s := store.NewMemoryStore()
	svc := NewSummaryService(s)
	ctx := context.Background()

	cases := []struct {
		month, year, days int
	}{
		{1, 2024, 31},
		{2, 2024, 29},
		{2, 2023, 28},
		{4, 2024, 30},
		{12, 2024, 31},
	}
	for _, tc := range cases {
		sum, err := svc.Summarize(ctx, tc.month, tc.year)
		require.NoError(t, err)
		assert.Len(t, sum.Rows, tc.days, "%d-%02d", tc.year, tc.month)
	}
}

func TestSummarizeColumnsIncludeInactiveCategories(t *testing.T) {
	s := store.NewMemoryStore()
	svc := NewSummaryService(s)
	ctx := context.Background()

	// Recorded in February, queried for March.
	seedExpense(t, s, "rent", 900, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	seedExpense(t, s, "food", 12, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))

	sum, err := svc.Summarize(ctx, 3, 2024)
	require.NoError(t, err)

	assert.Equal(t, []string{"rent", "food"}, sum.Categories)
	for _, row := range sum.Rows {
		_, ok := row.Cells["rent"]
		assert.False(t, ok, "rent never spent in March")
	}
}

func TestSummarizeMonthBoundariesExcludeNeighbors(t *testing.T) {
	s := store.NewMemoryStore()
	svc := NewSummaryService(s)
	ctx := context.Background()

	seedExpense(t, s, "food", 1, time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC))
	seedExpense(t, s, "food", 2, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	seedExpense(t, s, "food", 4, time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC))
	seedExpense(t, s, "food", 8, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))

	sum, err := svc.Summarize(ctx, 3, 2024)
	require.NoError(t, err)

	var total float64
	for _, row := range sum.Rows {
		total += row.Total
	}
	assert.Equal(t, 6.0, total)
}
