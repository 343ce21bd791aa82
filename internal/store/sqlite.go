package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"outlay/internal/core"

	_ "modernc.org/sqlite"
)

// dateLayout is the stored form of expense dates: RFC 3339 in UTC, so the
// column sorts and range-filters lexicographically.
const dateLayout = "2006-01-02T15:04:05Z07:00"

// SQLiteStore implements RecordStore on a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

var _ RecordStore = (*SQLiteStore)(nil)

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) InsertExpense(ctx context.Context, e core.Expense) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (id, category, amount, purpose, date) VALUES (?, ?, ?, ?, ?)`,
		id, e.Category, e.Amount, e.Purpose, e.Date.UTC().Format(dateLayout))
	if err != nil {
		return "", fmt.Errorf("insert expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", id,
		"category", e.Category,
		"amount", e.Amount)

	return id, nil
}

func (s *SQLiteStore) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	return s.queryExpenses(ctx,
		`SELECT id, category, amount, purpose, date FROM expenses ORDER BY rowid`)
}

func (s *SQLiteStore) ListExpensesByCategory(ctx context.Context, category string) ([]core.Expense, error) {
	return s.queryExpenses(ctx,
		`SELECT id, category, amount, purpose, date FROM expenses WHERE category = ? ORDER BY rowid`,
		category)
}

func (s *SQLiteStore) ListExpensesInRange(ctx context.Context, start, end time.Time) ([]core.Expense, error) {
	return s.queryExpenses(ctx,
		`SELECT id, category, amount, purpose, date FROM expenses WHERE date >= ? AND date < ? ORDER BY rowid`,
		start.UTC().Format(dateLayout), end.UTC().Format(dateLayout))
}

func (s *SQLiteStore) GetExpense(ctx context.Context, id string) (core.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, category, amount, purpose, date FROM expenses WHERE id = ?`, id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, core.ErrNotFound
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

func (s *SQLiteStore) UpdateExpense(ctx context.Context, id, category string, amount float64, purpose string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE expenses SET category = ?, amount = ?, purpose = ? WHERE id = ?`,
		category, amount, purpose, id)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLiteStore) DeleteExpense(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLiteStore) DeleteExpensesByCategory(ctx context.Context, category string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE category = ?`, category)
	if err != nil {
		return 0, fmt.Errorf("delete expenses by category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	slog.InfoContext(ctx, "Expenses purged for category", "category", category, "count", n)
	return n, nil
}

func (s *SQLiteStore) UpsertLimit(ctx context.Context, category string, amount float64) (string, error) {
	id := uuid.NewString()
	// ON CONFLICT keeps the original id so the upsert is idempotent on
	// category, matching set-limit semantics.
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO spending_limits (id, category, amount) VALUES (?, ?, ?)
		 ON CONFLICT(category) DO UPDATE SET amount = excluded.amount`,
		id, category, amount)
	if err != nil {
		return "", fmt.Errorf("upsert limit: %w", err)
	}

	lim, err := s.GetLimitByCategory(ctx, category)
	if err != nil {
		return "", fmt.Errorf("reread limit after upsert: %w", err)
	}
	return lim.ID, nil
}

func (s *SQLiteStore) UpdateLimitAmount(ctx context.Context, category string, amount float64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE spending_limits SET amount = ? WHERE category = ?`, amount, category)
	if err != nil {
		return fmt.Errorf("update limit: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLiteStore) GetLimitByCategory(ctx context.Context, category string) (core.Limit, error) {
	return s.getLimit(ctx,
		`SELECT id, category, amount FROM spending_limits WHERE category = ?`, category)
}

func (s *SQLiteStore) GetLimitByID(ctx context.Context, id string) (core.Limit, error) {
	return s.getLimit(ctx,
		`SELECT id, category, amount FROM spending_limits WHERE id = ?`, id)
}

func (s *SQLiteStore) getLimit(ctx context.Context, query string, arg any) (core.Limit, error) {
	var l core.Limit
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&l.ID, &l.Category, &l.Amount)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Limit{}, core.ErrNotFound
	}
	if err != nil {
		return core.Limit{}, fmt.Errorf("get limit: %w", err)
	}
	return l, nil
}

func (s *SQLiteStore) ListLimits(ctx context.Context) ([]core.Limit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, amount FROM spending_limits ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list limits: %w", err)
	}
	defer rows.Close()

	var limits []core.Limit
	for rows.Next() {
		var l core.Limit
		if err := rows.Scan(&l.ID, &l.Category, &l.Amount); err != nil {
			return nil, fmt.Errorf("scan limit: %w", err)
		}
		limits = append(limits, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate limits: %w", err)
	}
	return limits, nil
}

func (s *SQLiteStore) DeleteLimit(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM spending_limits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete limit: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLiteStore) ListUnsyncedExpenses(ctx context.Context, limit int) ([]core.Expense, error) {
	return s.queryExpenses(ctx,
		`SELECT id, category, amount, purpose, date FROM expenses WHERE synced = 0 ORDER BY rowid LIMIT ?`,
		limit)
}

func (s *SQLiteStore) MarkExpenseSynced(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE expenses SET synced = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark expense synced: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Expense marked as synced", "id", id)
	return nil
}

func (s *SQLiteStore) MarkExpenseSyncError(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE expenses SET sync_attempts = sync_attempts + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark expense sync error: %w", err)
	}

	slog.WarnContext(ctx, "Expense marked with sync error", "id", id)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var (
		e       core.Expense
		dateStr string
	)
	if err := row.Scan(&e.ID, &e.Category, &e.Amount, &e.Purpose, &dateStr); err != nil {
		return core.Expense{}, err
	}
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse stored date %q: %w", dateStr, err)
	}
	e.Date = date
	return e, nil
}

func (s *SQLiteStore) queryExpenses(ctx context.Context, query string, args ...any) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return expenses, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}
