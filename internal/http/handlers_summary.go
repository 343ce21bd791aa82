package http

import (
	"net/http"
	"strconv"

	"outlay/internal/log"
)

type summaryResponse struct {
	Categories []string         `json:"categories"`
	Summary    []map[string]any `json:"summary"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	month, err1 := strconv.Atoi(r.URL.Query().Get("month"))
	year, err2 := strconv.Atoi(r.URL.Query().Get("year"))
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, "Month and year are required.")
		return
	}

	sum, err := s.summaries.Summarize(r.Context(), month, year)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to generate expense summary",
			log.FieldMonth, month, log.FieldYear, year, log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Failed to generate expense summary.")
		return
	}

	categories := sum.Categories
	if categories == nil {
		categories = []string{}
	}

	// Wire rows are flat objects keyed by category, zero cells blank.
	rows := make([]map[string]any, 0, len(sum.Rows))
	for _, row := range sum.Rows {
		out := make(map[string]any, len(categories)+2)
		out["date"] = row.Date
		for _, cat := range categories {
			if v, ok := row.Cells[cat]; ok && v > 0 {
				out[cat] = v
			} else {
				out[cat] = ""
			}
		}
		out["total"] = row.Total
		rows = append(rows, out)
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		Categories: categories,
		Summary:    rows,
	})
}
