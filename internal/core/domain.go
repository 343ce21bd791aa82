package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type (
	// Expense is a single recorded spend. IDs are opaque store-assigned
	// tokens; Date is assigned from the server clock at creation time.
	Expense struct {
		ID       string    `json:"id"`
		Category string    `json:"category"`
		Amount   float64   `json:"amount"`
		Purpose  string    `json:"purpose"`
		Date     time.Time `json:"date"`
	}

	// Limit is a spending ceiling for a category. Category acts as a
	// natural key: Set-Limit upserts on it, so at most one limit per
	// category is ever meaningful.
	Limit struct {
		ID       string  `json:"id"`
		Category string  `json:"category"`
		Amount   float64 `json:"amount"`
	}
)

var (
	// ErrNotFound is returned by stores when a referenced id or category
	// has no record.
	ErrNotFound = errors.New("not found")

	// ErrFieldsRequired signals a missing required field on creation.
	ErrFieldsRequired = errors.New("all fields are required")
)

// LimitExceededError is the business-rule rejection from the limit guard.
type LimitExceededError struct {
	Category string
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("spending limit exceeded for %s", e.Category)
}

// IsLimitExceeded reports whether err is a limit-guard rejection.
func IsLimitExceeded(err error) bool {
	var le *LimitExceededError
	return errors.As(err, &le)
}

// ValidateForCreate checks the presence rules applied when recording a new
// expense: category, amount and purpose must all be supplied. A zero amount
// counts as absent; the sign is deliberately not checked.
func (e Expense) ValidateForCreate() error {
	if strings.TrimSpace(e.Category) == "" {
		return ErrFieldsRequired
	}
	if e.Amount == 0 {
		return ErrFieldsRequired
	}
	if strings.TrimSpace(e.Purpose) == "" {
		return ErrFieldsRequired
	}
	return nil
}

// ValidateForCreate checks the presence rules for setting a limit.
func (l Limit) ValidateForCreate() error {
	if strings.TrimSpace(l.Category) == "" {
		return ErrFieldsRequired
	}
	if l.Amount == 0 {
		return ErrFieldsRequired
	}
	return nil
}

// DayKeyLayout is the YYYY-MM-DD form used for summary row dates.
const DayKeyLayout = "2006-01-02"

// DayKey returns the UTC calendar-day key of the expense date.
func (e Expense) DayKey() string {
	return e.Date.UTC().Format(DayKeyLayout)
}

// MonthRange returns the UTC instant of the first day of the month and the
// exclusive upper bound (first instant of the following month). Covering the
// month as [start, end) includes the final instant of its last day.
func MonthRange(year, month int) (start, end time.Time) {
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0)
	return start, end
}

// DaysInMonth returns the number of calendar days in the month, normalizing
// day 0 of the following month. Handles month lengths and leap years.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
