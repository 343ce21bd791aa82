package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"outlay/internal/core"
)

// MemoryStore implements RecordStore in process memory. It backs local runs
// without a database file and serves as the fixture store in tests.
type MemoryStore struct {
	mu       sync.Mutex
	expenses []core.Expense
	limits   []core.Limit
	synced   map[string]bool
}

var _ RecordStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{synced: make(map[string]bool)}
}

func (s *MemoryStore) InsertExpense(_ context.Context, e core.Expense) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = uuid.NewString()
	s.expenses = append(s.expenses, e)
	return e.ID, nil
}

func (s *MemoryStore) ListExpenses(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.expenses...), nil
}

func (s *MemoryStore) ListExpensesByCategory(_ context.Context, category string) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.Expense
	for _, e := range s.expenses {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *MemoryStore) ListExpensesInRange(_ context.Context, start, end time.Time) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.Expense
	for _, e := range s.expenses {
		if !e.Date.Before(start) && e.Date.Before(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetExpense(_ context.Context, id string) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.expenses {
		if e.ID == id {
			return e, nil
		}
	}
	return core.Expense{}, core.ErrNotFound
}

func (s *MemoryStore) UpdateExpense(_ context.Context, id, category string, amount float64, purpose string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.expenses {
		if s.expenses[i].ID == id {
			s.expenses[i].Category = category
			s.expenses[i].Amount = amount
			s.expenses[i].Purpose = purpose
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *MemoryStore) DeleteExpense(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.expenses {
		if s.expenses[i].ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *MemoryStore) DeleteExpensesByCategory(_ context.Context, category string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		kept    []core.Expense
		removed int64
	)
	for _, e := range s.expenses {
		if e.Category == category {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.expenses = kept
	return removed, nil
}

func (s *MemoryStore) UpsertLimit(_ context.Context, category string, amount float64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.limits {
		if s.limits[i].Category == category {
			s.limits[i].Amount = amount
			return s.limits[i].ID, nil
		}
	}
	l := core.Limit{ID: uuid.NewString(), Category: category, Amount: amount}
	s.limits = append(s.limits, l)
	return l.ID, nil
}

func (s *MemoryStore) UpdateLimitAmount(_ context.Context, category string, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.limits {
		if s.limits[i].Category == category {
			s.limits[i].Amount = amount
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *MemoryStore) GetLimitByCategory(_ context.Context, category string) (core.Limit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.limits {
		if l.Category == category {
			return l, nil
		}
	}
	return core.Limit{}, core.ErrNotFound
}

func (s *MemoryStore) GetLimitByID(_ context.Context, id string) (core.Limit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.limits {
		if l.ID == id {
			return l, nil
		}
	}
	return core.Limit{}, core.ErrNotFound
}

func (s *MemoryStore) ListLimits(_ context.Context) ([]core.Limit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Limit(nil), s.limits...), nil
}

func (s *MemoryStore) DeleteLimit(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.limits {
		if s.limits[i].ID == id {
			s.limits = append(s.limits[:i], s.limits[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *MemoryStore) ListUnsyncedExpenses(_ context.Context, limit int) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.Expense
	for _, e := range s.expenses {
		if len(out) >= limit {
			break
		}
		if !s.synced[e.ID] {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *MemoryStore) MarkExpenseSynced(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.expenses {
		if e.ID == id {
			s.synced[id] = true
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *MemoryStore) MarkExpenseSyncError(_ context.Context, id string) error {
	// Attempt counting only matters for the persistent store.
	return nil
}
