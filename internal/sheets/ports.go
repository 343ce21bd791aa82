package sheets

import (
	"context"

	"outlay/internal/core"
)

// LedgerWriter appends expenses to an external ledger.
type LedgerWriter interface {
	Append(ctx context.Context, e core.Expense) (rowRef string, err error)
}
