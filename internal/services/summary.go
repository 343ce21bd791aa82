package services

import (
	"context"
	"fmt"
	"time"

	"outlay/internal/core"
	"outlay/internal/store"
)

// SummaryService builds the month-by-day spending pivot.
type SummaryService struct {
	expenses store.ExpenseStore
}

func NewSummaryService(expenses store.ExpenseStore) *SummaryService {
	return &SummaryService{expenses: expenses}
}

// Summarize returns one row per calendar day of the requested month.
// The category columns cover every category ever recorded, in first
// appearance order, so the table keeps a stable shape across months.
// Days or categories with no spending stay absent from the row's cells.
func (s *SummaryService) Summarize(ctx context.Context, month, year int) (core.MonthSummary, error) {
	all, err := s.expenses.ListExpenses(ctx)
	if err != nil {
		return core.MonthSummary{}, fmt.Errorf("load expenses: %w", err)
	}

	var categories []string
	seen := make(map[string]bool)
	for _, e := range all {
		if !seen[e.Category] {
			seen[e.Category] = true
			categories = append(categories, e.Category)
		}
	}

	start, end := core.MonthRange(year, month)
	inMonth, err := s.expenses.ListExpensesInRange(ctx, start, end)
	if err != nil {
		return core.MonthSummary{}, fmt.Errorf("load month expenses: %w", err)
	}

	byDay := make(map[string]map[string]float64)
	for _, e := range inMonth {
		day := e.DayKey()
		if byDay[day] == nil {
			byDay[day] = make(map[string]float64)
		}
		byDay[day][e.Category] += e.Amount
	}

	days := core.DaysInMonth(year, month)
	rows := make([]core.SummaryRow, 0, days)
	for d := 1; d <= days; d++ {
		key := time.Date(year, time.Month(month), d, 0, 0, 0, 0, time.UTC).Format(core.DayKeyLayout)
		row := core.SummaryRow{
			Date:  key,
			Cells: make(map[string]float64),
		}
		for cat, sum := range byDay[key] {
			row.Cells[cat] = sum
			row.Total += sum
		}
		rows = append(rows, row)
	}

	return core.MonthSummary{Categories: categories, Rows: rows}, nil
}
