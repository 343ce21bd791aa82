package memory

import (
	"context"
	"fmt"
	"sync"

	"outlay/internal/core"
	ports "outlay/internal/sheets"
)

// Ledger is an in-process LedgerWriter used for local runs and tests.
type Ledger struct {
	mu   sync.Mutex
	rows []core.Expense

	// FailWith, when set, makes every Append return this error.
	FailWith error
}

var _ ports.LedgerWriter = (*Ledger)(nil)

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) Append(_ context.Context, e core.Expense) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.FailWith != nil {
		return "", l.FailWith
	}

	l.rows = append(l.rows, e)
	return fmt.Sprintf("mem:%d", len(l.rows)), nil
}

// Rows returns a copy of the appended expenses.
func (l *Ledger) Rows() []core.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]core.Expense, len(l.rows))
	copy(out, l.rows)
	return out
}
