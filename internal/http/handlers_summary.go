package http

import (
	"net/http"

	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/core"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if cached, ok := s.summaryCache.Get(summaryCacheKey); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	summary := s.store.Summary()
	s.summaryCache.Set(summaryCacheKey, summary)
	writeJSON(w, http.StatusOK, summary)
}

type categoriesResponse struct {
	Expense []core.Category `json:"expense"`
	Income  []core.Category `json:"income"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("type") {
	case "":
		writeJSON(w, http.StatusOK, categoriesResponse{
			Expense: core.CategoriesFor(core.Expense),
			Income:  core.CategoriesFor(core.Income),
		})
	case string(core.Expense):
		writeJSON(w, http.StatusOK, core.CategoriesFor(core.Expense))
	case string(core.Income):
		writeJSON(w, http.StatusOK, core.CategoriesFor(core.Income))
	default:
		errorJSON(w, http.StatusBadRequest, "type must be expense or income")
	}
}
