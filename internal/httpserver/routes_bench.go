// internal/httpserver/routes_bench.go
//
// Benchmark runs over the possible list.
//   - POST /bench/run       → play the secrets with one solver and store the run (admin token)
//   - GET  /bench/runs      → stored runs, fewest mean guesses first
//   - GET  /bench/runs/{id} → one stored run with its histogram
//
// One run at a time; runs with game errors are reported but not stored.

package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/bench"
	"github.com/robalobadob/wordle/apps/go-solver/internal/results"
)

type benchReq struct {
	solverReq
	Secrets []string `json:"secrets"`
	Limit   int      `json:"limit"` // play only the first Limit possible words
	Workers int      `json:"workers"`
}

type benchRes struct {
	Run    results.Run  `json:"run"`
	Report bench.Report `json:"report"`
	Saved  bool         `json:"saved"`
}

// handleBenchRun plays the requested secrets and stores the run.
func (s *Server) handleBenchRun(w http.ResponseWriter, r *http.Request) {
	var req benchReq
	if r.ContentLength != 0 {
		if err := decode(r, &req); err != nil {
			writeFailure(w, r, err)
			return
		}
	}
	cfg, err := s.configFrom(req.solverReq)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	sv, err := s.solverFor(cfg)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	secrets := req.Secrets
	if len(secrets) == 0 && req.Limit > 0 && req.Limit < s.possible.Len() {
		secrets = s.possible.Words()[:req.Limit]
	}
	maxTurns := req.MaxTurns
	if maxTurns <= 0 {
		maxTurns = s.cfg.MaxTurns
	}

	if !s.benchMu.TryLock() {
		writeErr(w, http.StatusConflict, "a bench run is already in progress")
		return
	}
	defer s.benchMu.Unlock()

	by := subject(r)
	log.Info().Str("by", by).Str("solver", sv.Config().Key()).Int("secrets", len(secrets)).Msg("bench run started")

	rep, err := bench.Run(r.Context(), sv, s.possible, bench.Options{
		MaxTurns: maxTurns,
		Workers:  req.Workers,
		Secrets:  secrets,
	})
	if err != nil {
		if rep.Games == 0 {
			writeFailure(w, r, err)
			return
		}
		// Partial or failed runs are reported but not stored.
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error(), "report": rep})
		return
	}
	run := results.NewRun(sv.Config(), rep)
	run.StartedBy = by
	res := benchRes{Run: run, Report: rep}
	if s.runs != nil {
		if err := s.runs.Insert(r.Context(), run); err != nil {
			log.Warn().Err(err).Str("run", run.ID).Msg("persist bench run")
		} else {
			res.Saved = true
		}
	}
	writeJSON(w, http.StatusOK, res)
}

// handleRuns lists stored runs, fewest mean guesses first.
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		writeJSON(w, http.StatusOK, []results.Run{})
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeErr(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, 100)
	}
	runs, err := s.runs.Leaderboard(r.Context(), limit)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

// handleRun returns one stored run with its histogram.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		writeErr(w, http.StatusNotFound, "not_found")
		return
	}
	run, err := s.runs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}
