package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"outlay/internal/core"
	"outlay/internal/store"
)

// LimitGuard decides whether a new expense fits under its category's
// spending limit. Categories without a configured limit always pass.
type LimitGuard struct {
	limits   store.LimitStore
	expenses store.ExpenseStore
}

func NewLimitGuard(limits store.LimitStore, expenses store.ExpenseStore) *LimitGuard {
	return &LimitGuard{
		limits:   limits,
		expenses: expenses,
	}
}

// Check sums the category's recorded expenses and rejects the candidate
// amount when the new total would exceed the configured limit. Landing
// exactly on the limit is allowed.
//
// The read and the caller's subsequent insert are not atomic: two
// concurrent requests can both pass against the same prior total.
func (g *LimitGuard) Check(ctx context.Context, category string, amount float64) error {
	limit, err := g.limits.GetLimitByCategory(ctx, category)
	if errors.Is(err, core.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load limit for %s: %w", category, err)
	}

	existing, err := g.expenses.ListExpensesByCategory(ctx, category)
	if err != nil {
		return fmt.Errorf("load expenses for %s: %w", category, err)
	}

	var spent float64
	for _, e := range existing {
		spent += e.Amount
	}

	if spent+amount > limit.Amount {
		slog.InfoContext(ctx, "Expense rejected by spending limit",
			"category", category,
			"amount", amount,
			"spent", spent,
			"limit", limit.Amount)
		return &core.LimitExceededError{Category: category}
	}

	return nil
}
