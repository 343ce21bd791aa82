package http

import (
	"errors"
	"net/http"

	"outlay/internal/core"
	"outlay/internal/log"
)

func (s *Server) handleSetLimit(w http.ResponseWriter, r *http.Request) {
	var req limitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	err := s.expenses.SetLimit(r.Context(), req.Category, req.Amount)
	switch {
	case errors.Is(err, core.ErrFieldsRequired):
		writeError(w, http.StatusBadRequest, "All fields are required.")
	case err != nil:
		s.logger.ErrorContext(r.Context(), "Failed to set limit",
			log.FieldCategory, req.Category, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Failed to set limit.")
	default:
		writeMessage(w, http.StatusOK, "Limit set successfully.")
	}
}

func (s *Server) handleListLimits(w http.ResponseWriter, r *http.Request) {
	limits, err := s.expenses.ListLimits(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to fetch limits", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch limits.")
		return
	}
	if limits == nil {
		limits = []core.Limit{}
	}
	writeJSON(w, http.StatusOK, limits)
}

func (s *Server) handleUpdateLimit(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")

	var req limitAmountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	err := s.expenses.UpdateLimitAmount(r.Context(), category, req.Amount)
	switch {
	case errors.Is(err, core.ErrNotFound):
		writeError(w, http.StatusNotFound, "Limit not found.")
	case err != nil:
		s.logger.ErrorContext(r.Context(), "Failed to update limit",
			log.FieldCategory, category, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Failed to update limit.")
	default:
		writeMessage(w, http.StatusOK, "Limit updated successfully.")
	}
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	_, err := s.expenses.PurgeCategory(r.Context(), id)
	switch {
	case errors.Is(err, core.ErrNotFound):
		writeError(w, http.StatusNotFound, "Limit not found")
	case err != nil:
		s.logger.ErrorContext(r.Context(), "Failed to delete category and expenses",
			log.FieldLimitID, id, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Server error while deleting category and expenses.")
	default:
		writeMessage(w, http.StatusOK, "All expenses and the category limit deleted successfully!")
	}
}
