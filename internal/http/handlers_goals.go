package http

import (
	"net/http"

	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/core"
)

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Goals())
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var in core.GoalInput
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	in.Name = sanitizeInput(in.Name)

	if err := in.Validate(); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	g := s.store.AddGoal(r.Context(), in)
	writeJSON(w, http.StatusCreated, g)
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.store.Goal(id); !ok {
		errorJSON(w, http.StatusNotFound, "goal not found")
		return
	}

	var patch core.GoalPatch
	if err := decodeJSON(r, &patch); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if patch.Name != nil {
		clean := sanitizeInput(*patch.Name)
		patch.Name = &clean
	}
	if err := patch.Validate(); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	s.store.UpdateGoal(r.Context(), id, patch)

	g, _ := s.store.Goal(id)
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.store.Goal(id); !ok {
		errorJSON(w, http.StatusNotFound, "goal not found")
		return
	}

	s.store.DeleteGoal(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

type allocateRequest struct {
	Amount float64 `json:"amount"`
}

// handleAllocateGoal adds funds to a goal, capping the saved amount at the
// target.
func (s *Server) handleAllocateGoal(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	g, ok := s.store.Goal(id)
	if !ok {
		errorJSON(w, http.StatusNotFound, "goal not found")
		return
	}

	var req allocateRequest
	if err := decodeJSON(r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Amount <= 0 {
		errorJSON(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	saved := g.SavedAmount + req.Amount
	if saved > g.TargetAmount {
		saved = g.TargetAmount
	}
	s.store.UpdateGoal(r.Context(), id, core.GoalPatch{SavedAmount: &saved})

	g, _ = s.store.Goal(id)
	writeJSON(w, http.StatusOK, g)
}
