package http

import (
	"errors"
	"net/http"

	"outlay/internal/core"
	"outlay/internal/log"
)

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	id, err := s.expenses.CreateExpense(r.Context(), req.Category, req.Amount, req.Purpose)
	if err != nil {
		var limitErr *core.LimitExceededError
		switch {
		case errors.Is(err, core.ErrFieldsRequired):
			writeError(w, http.StatusBadRequest, "All fields are required.")
		case errors.As(err, &limitErr):
			writeError(w, http.StatusBadRequest, "Spending limit exceeded for "+limitErr.Category+".")
		default:
			s.logger.ErrorContext(r.Context(), "Failed to add expense", log.FieldError, err)
			writeError(w, http.StatusInternalServerError, "Failed to add expense.")
		}
		return
	}

	writeJSON(w, http.StatusCreated, expenseCreatedResponse{
		Message:   "Expense added",
		ExpenseID: id,
	})
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.ListExpenses(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to fetch expenses", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch expenses.")
		return
	}
	if expenses == nil {
		expenses = []core.Expense{}
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	err := s.expenses.UpdateExpense(r.Context(), id, req.Category, req.Amount, req.Purpose)
	switch {
	case errors.Is(err, core.ErrNotFound):
		writeError(w, http.StatusNotFound, "Expense not found.")
	case err != nil:
		s.logger.ErrorContext(r.Context(), "Failed to update expense",
			log.FieldExpenseID, id, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Failed to update expense.")
	default:
		writeMessage(w, http.StatusOK, "Expense updated successfully.")
	}
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	err := s.expenses.DeleteExpense(r.Context(), id)
	switch {
	case errors.Is(err, core.ErrNotFound):
		writeError(w, http.StatusNotFound, "Expense not found.")
	case err != nil:
		s.logger.ErrorContext(r.Context(), "Failed to delete expense",
			log.FieldExpenseID, id, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Failed to delete expense.")
	default:
		writeMessage(w, http.StatusOK, "Expense deleted successfully.")
	}
}
