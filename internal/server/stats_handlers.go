package server

import (
	"net/http"
	"strconv"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/metrics"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	trades, ok := s.findWindow(w, r, false)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, metrics.Aggregate(trades))
}

func (s *Server) handleDailyStats(w http.ResponseWriter, r *http.Request) {
	trades, ok := s.findWindow(w, r, true)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, metrics.Daily(trades))
}

func (s *Server) handleEquity(w http.ResponseWriter, r *http.Request) {
	start := s.balance
	if v := r.URL.Query().Get("start"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "start must be a number")
			return
		}
		start = f
	}

	// ascending so trades sharing a date stay in insertion order
	trades, ok := s.findWindow(w, r, true)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, metrics.BuildEquityCurveAt(trades, start, s.now().UTC()))
}

// windowQuery turns ?window= into a journal query. It writes the 400 itself.
func (s *Server) windowQuery(w http.ResponseWriter, r *http.Request) (journal.Query, bool) {
	win, err := journal.ParseWindow(r.URL.Query().Get("window"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return journal.Query{}, false
	}
	return win.Query(s.now().UTC()), true
}

func (s *Server) findWindow(w http.ResponseWriter, r *http.Request, ascending bool) ([]metrics.Trade, bool) {
	q, ok := s.windowQuery(w, r)
	if !ok {
		return nil, false
	}
	q.Ascending = ascending

	trades, err := s.journal.Find(r.Context(), q)
	if err != nil {
		s.writeJournalError(w, r, err)
		return nil, false
	}
	return trades, true
}
