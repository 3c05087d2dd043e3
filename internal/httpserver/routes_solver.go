// internal/httpserver/routes_solver.go
//
// Interactive solver sessions. The caller plays a real game elsewhere:
//   - POST /solver/new      → start a session with an optional solver config
//   - POST /solver/next     → ask for the next guess
//   - POST /solver/feedback → report the pattern the real game showed
//
// Sessions hold no secret; they advance only through reported feedback.

package httpserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

const (
	// candidatesShown caps the candidate list echoed back after feedback.
	candidatesShown = 20
	// maxDepth caps the lookahead depth a request may ask for.
	maxDepth = 3
)

func (s *Server) mountSolver(r chi.Router) {
	r.Route("/solver", func(r chi.Router) {
		r.Post("/new", s.handleSolverNew)
		r.Post("/next", s.handleSolverNext)
		r.Post("/feedback", s.handleSolverFeedback)
	})
}

// solverReq selects a solver configuration; zero fields keep the defaults.
type solverReq struct {
	Strategy string `json:"strategy"`
	Scoring  string `json:"scoring"`
	Depth    *int   `json:"depth"`
	Seed     int64  `json:"seed"`
	Opener   string `json:"opener"`
	MaxTurns int    `json:"maxTurns"`
}

// configFrom merges the request over the server defaults.
func (s *Server) configFrom(req solverReq) (solver.Config, error) {
	cfg := s.defaults
	var err error
	if req.Strategy != "" {
		if cfg.Strategy, err = solver.ParseStrategy(req.Strategy); err != nil {
			return cfg, err
		}
	}
	if req.Scoring != "" {
		if cfg.Scoring, err = solver.ParseScoring(req.Scoring); err != nil {
			return cfg, err
		}
	}
	if req.Depth != nil {
		if *req.Depth > maxDepth {
			return cfg, fmt.Errorf("%w: depth %d above %d", words.ErrInvalidInput, *req.Depth, maxDepth)
		}
		cfg.Depth = *req.Depth
	}
	cfg.Seed = req.Seed
	cfg.Opener = req.Opener
	return cfg, nil
}

type newSessionRes struct {
	SessionID string `json:"sessionId"`
	Remaining int    `json:"remaining"`
	MaxTurns  int    `json:"maxTurns"`
	Solver    string `json:"solver"`
}

func (s *Server) handleSolverNew(w http.ResponseWriter, r *http.Request) {
	var req solverReq
	if r.ContentLength != 0 {
		if err := decode(r, &req); err != nil {
			writeFailure(w, r, err)
			return
		}
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
	maxTurns := req.MaxTurns
	if maxTurns <= 0 {
		maxTurns = s.cfg.MaxTurns
	}
	g, err := game.New(s.possible, "", maxTurns)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	sess := &store.Session{Game: g, Config: sv.Config()}
	if sv.Config().Strategy == solver.StrategyRandom {
		sess.Solver = sv
	}
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		writeFailure(w, r, err)
		return
	}
	log.Info().Str("session", g.ID).Str("solver", sv.Config().Key()).Msg("solver session started")
	writeJSON(w, http.StatusOK, newSessionRes{
		SessionID: g.ID,
		Remaining: g.Candidates.Len(),
		MaxTurns:  g.MaxTurns,
		Solver:    sv.Config().Key(),
	})
}

type sessionReq struct {
	SessionID string `json:"sessionId"`
}

type nextRes struct {
	Guess     string `json:"guess"`
	Remaining int    `json:"remaining"`
	Turn      int    `json:"turn"` // 1-based turn the guess is for
}

func (s *Server) handleSolverNext(w http.ResponseWriter, r *http.Request) {
	var req sessionReq
	if err := decode(r, &req); err != nil {
		writeFailure(w, r, err)
		return
	}
	sess, err := s.sessions.Get(r.Context(), req.SessionID)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	sv, err := s.sessionSolver(sess)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	sess.Lock()
	defer sess.Unlock()
	ctx, cancel := s.solverCtx(r.Context())
	defer cancel()
	guess, err := sess.Game.Next(ctx, sv)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nextRes{Guess: guess, Remaining: sess.Game.Candidates.Len(), Turn: sess.Game.Turns() + 1})
}

type sessionFeedbackReq struct {
	SessionID string `json:"sessionId"`
	Guess     string `json:"guess"`
	Pattern   string `json:"pattern"`
}

type sessionFeedbackRes struct {
	Remaining  int        `json:"remaining"`
	State      game.State `json:"state"`
	Turns      int        `json:"turns"`
	Candidates []string   `json:"candidates,omitempty"`
}

func (s *Server) handleSolverFeedback(w http.ResponseWriter, r *http.Request) {
	var req sessionFeedbackReq
	if err := decode(r, &req); err != nil {
		writeFailure(w, r, err)
		return
	}
	p, err := feedback.Parse(req.Pattern)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	sess, err := s.sessions.Get(r.Context(), req.SessionID)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	sess.Lock()
	err = sess.Game.Apply(strings.ToLower(strings.TrimSpace(req.Guess)), p)
	res := sessionFeedbackRes{
		Remaining: sess.Game.Candidates.Len(),
		State:     sess.Game.State(),
		Turns:     sess.Game.Turns(),
	}
	if res.Remaining <= candidatesShown {
		res.Candidates = sess.Game.Candidates.Words()
	}
	sess.Unlock()
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	if err := s.sessions.Save(r.Context(), sess); err != nil {
		writeFailure(w, r, err)
		return
	}
	if res.State != game.StatePlaying {
		log.Info().Str("session", sess.Game.ID).Str("state", string(res.State)).Int("turns", res.Turns).Msg("solver session finished")
	}
	writeJSON(w, http.StatusOK, res)
}
