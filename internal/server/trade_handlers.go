package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/metrics"
)

const maxBodyBytes = 1 << 20

func (s *Server) handleListTrades(w http.ResponseWriter, r *http.Request) {
	q, ok := s.windowQuery(w, r)
	if !ok {
		return
	}

	trades, err := s.journal.Find(r.Context(), q)
	if err != nil {
		s.writeJournalError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, trades)
}

func (s *Server) handleCreateTrade(w http.ResponseWriter, r *http.Request) {
	in, err := decodeTrade(w, r)
	if err != nil {
		s.writeJournalError(w, r, err)
		return
	}

	t, err := s.journal.Create(r.Context(), in)
	if err != nil {
		s.writeJournalError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleGetTrade(w http.ResponseWriter, r *http.Request) {
	t, err := s.journal.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeJournalError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleUpdateTrade(w http.ResponseWriter, r *http.Request) {
	in, err := decodeTrade(w, r)
	if err != nil {
		s.writeJournalError(w, r, err)
		return
	}

	t, err := s.journal.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		s.writeJournalError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTrade(w http.ResponseWriter, r *http.Request) {
	if err := s.journal.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeJournalError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeTrade(w http.ResponseWriter, r *http.Request) (journal.TradeInput, error) {
	var req tradeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		return journal.TradeInput{}, fmt.Errorf("%w: decode body: %w", metrics.ErrInvalidInput, err)
	}
	return req.input()
}
