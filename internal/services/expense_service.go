package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"outlay/internal/core"
	"outlay/internal/store"
)

// EventPublisher pushes record change events to the sync pipeline.
// Implementations may be nil'd out when no broker is configured.
type EventPublisher interface {
	PublishExpenseCreated(ctx context.Context, id string) error
	PublishExpenseDeleted(ctx context.Context, id string) error
}

// ExpenseService orchestrates expense and limit operations across the
// record store and the event pipeline.
type ExpenseService struct {
	records   store.RecordStore
	guard     *LimitGuard
	publisher EventPublisher
}

func NewExpenseService(records store.RecordStore, guard *LimitGuard, publisher EventPublisher) *ExpenseService {
	return &ExpenseService{
		records:   records,
		guard:     guard,
		publisher: publisher,
	}
}

// CreateExpense validates and records a new expense, stamping the
// creation time. The expense must clear its category's spending limit
// before it is written. The sync event is best effort.
func (s *ExpenseService) CreateExpense(ctx context.Context, category string, amount float64, purpose string) (string, error) {
	e := core.Expense{
		Category: category,
		Amount:   amount,
		Purpose:  purpose,
		Date:     time.Now().UTC(),
	}
	if err := e.ValidateForCreate(); err != nil {
		return "", err
	}

	if err := s.guard.Check(ctx, e.Category, e.Amount); err != nil {
		return "", err
	}

	id, err := s.records.InsertExpense(ctx, e)
	if err != nil {
		return "", fmt.Errorf("save expense: %w", err)
	}

	s.publishCreated(ctx, id)
	return id, nil
}

func (s *ExpenseService) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	return s.records.ListExpenses(ctx)
}

// UpdateExpense rewrites an expense's fields in place. The creation
// date and the spending limit check are left untouched.
func (s *ExpenseService) UpdateExpense(ctx context.Context, id, category string, amount float64, purpose string) error {
	return s.records.UpdateExpense(ctx, id, category, amount, purpose)
}

// DeleteExpense removes an expense and publishes a delete event.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id string) error {
	if err := s.records.DeleteExpense(ctx, id); err != nil {
		return err
	}

	s.publishDeleted(ctx, id)
	return nil
}

// SetLimit creates or replaces the spending limit for a category.
func (s *ExpenseService) SetLimit(ctx context.Context, category string, amount float64) error {
	l := core.Limit{Category: category, Amount: amount}
	if err := l.ValidateForCreate(); err != nil {
		return err
	}

	if _, err := s.records.UpsertLimit(ctx, l.Category, l.Amount); err != nil {
		return fmt.Errorf("save limit: %w", err)
	}
	return nil
}

func (s *ExpenseService) ListLimits(ctx context.Context) ([]core.Limit, error) {
	return s.records.ListLimits(ctx)
}

// UpdateLimitAmount changes an existing category limit's amount.
func (s *ExpenseService) UpdateLimitAmount(ctx context.Context, category string, amount float64) error {
	return s.records.UpdateLimitAmount(ctx, category, amount)
}

// PurgeCategory removes a limit by id together with every expense in
// its category. Returns the purged category name.
func (s *ExpenseService) PurgeCategory(ctx context.Context, limitID string) (string, error) {
	limit, err := s.records.GetLimitByID(ctx, limitID)
	if err != nil {
		return "", err
	}

	doomed, err := s.records.ListExpensesByCategory(ctx, limit.Category)
	if err != nil {
		return "", fmt.Errorf("load expenses for %s: %w", limit.Category, err)
	}

	deleted, err := s.records.DeleteExpensesByCategory(ctx, limit.Category)
	if err != nil {
		return "", fmt.Errorf("delete expenses for %s: %w", limit.Category, err)
	}

	if err := s.records.DeleteLimit(ctx, limitID); err != nil {
		return "", fmt.Errorf("delete limit %s: %w", limitID, err)
	}

	slog.InfoContext(ctx, "Category purged",
		"category", limit.Category,
		"expenses_deleted", deleted)

	for _, e := range doomed {
		s.publishDeleted(ctx, e.ID)
	}
	return limit.Category, nil
}

func (s *ExpenseService) publishCreated(ctx context.Context, id string) {
	if s.publisher == nil {
		slog.WarnContext(ctx, "Publisher not available, skipping sync message", "expense_id", id)
		return
	}
	if err := s.publisher.PublishExpenseCreated(ctx, id); err != nil {
		// The expense is already saved locally, so the request succeeds.
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"expense_id", id, "error", err)
	}
}

func (s *ExpenseService) publishDeleted(ctx context.Context, id string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishExpenseDeleted(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish delete message",
			"expense_id", id, "error", err)
	}
}
