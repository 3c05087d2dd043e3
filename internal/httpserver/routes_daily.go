// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily puzzle replay.
// Exposes two endpoints under /daily:
//   - GET /daily/solve       → the solver's full path for a date's word (default today)
//   - GET /daily/leaderboard → cached solver results for a date, fewest guesses first
//
// Deterministic word selection is based on date + salt. Replays are cached in
// the DB per (date, solver) when one is configured.

package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/daily"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/solve", s.handleDailySolve)
		r.Get("/leaderboard", s.handleDailyLeaderboard)
	})
}

// handleDailySolve replays the day's puzzle with the solver picked by the
// query (strategy, scoring, depth) or the server default.
func (s *Server) handleDailySolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date, err := daily.ParseDate(q.Get("date"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	req := solverReq{Strategy: q.Get("strategy"), Scoring: q.Get("scoring")}
	if v := q.Get("depth"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "depth must be an integer")
			return
		}
		req.Depth = &d
	}
	cfg, err := s.configFrom(req)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	sv, err := s.solverFor(cfg)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	key := daily.DateKey(date)
	if s.daily != nil {
		cached, err := s.daily.Lookup(r.Context(), key, sv.Config().Key())
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, cached)
			return
		case !errors.Is(err, daily.ErrNotCached):
			log.Warn().Err(err).Str("date", key).Msg("daily cache lookup")
		}
	}

	res, err := daily.Solve(r.Context(), sv, s.possible, date, s.cfg.DailySalt, s.cfg.MaxTurns)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	if s.daily != nil {
		if err := s.daily.Insert(r.Context(), res); err != nil {
			log.Warn().Err(err).Str("date", key).Msg("daily cache insert")
		}
	}
	writeJSON(w, http.StatusOK, res)
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string      `json:"date"`
	Top  []daily.Row `json:"top"`
}

// handleDailyLeaderboard returns cached solver results for the given date (default today).
func (s *Server) handleDailyLeaderboard(w http.ResponseWriter, r *http.Request) {
	date, err := daily.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	key := daily.DateKey(date)
	if s.daily == nil {
		writeJSON(w, http.StatusOK, lbRes{Date: key, Top: []daily.Row{}})
		return
	}
	rows, err := s.daily.Leaderboard(r.Context(), key, 20)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: key, Top: rows})
}
