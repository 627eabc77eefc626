package http

import (
	"net/http"
	"strconv"

	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/core"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs := s.store.Transactions()
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			errorJSON(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		if n < len(txs) {
			txs = txs[:n]
		}
	}
	writeJSON(w, http.StatusOK, txs)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var in core.TransactionInput
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	in.Description = sanitizeInput(in.Description)
	in.Category = sanitizeInput(in.Category)

	if err := in.Validate(); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	tx := s.store.AddTransaction(r.Context(), in)
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.store.Transaction(id); !ok {
		errorJSON(w, http.StatusNotFound, "transaction not found")
		return
	}

	var patch core.TransactionPatch
	if err := decodeJSON(r, &patch); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	if patch.Description != nil {
		clean := sanitizeInput(*patch.Description)
		patch.Description = &clean
	}
	if err := patch.Validate(); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	s.store.UpdateTransaction(r.Context(), id, patch)

	tx, _ := s.store.Transaction(id)
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.store.Transaction(id); !ok {
		errorJSON(w, http.StatusNotFound, "transaction not found")
		return
	}

	s.store.DeleteTransaction(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}
