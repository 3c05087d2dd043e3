// internal/httpserver/server.go
//
// HTTP server wiring for the solver service.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/debug/words", "/metrics".
//   - Core operations: POST /feedback, POST /filter.
//   - Solver sessions: POST /solver/new, /solver/next, /solver/feedback.
//   - Daily replay: mounted under /daily.
//   - Admin token + benchmark runs: /auth/token, /bench/*.
//
// Notes:
//   - Solvers are shared between sessions with the same configuration so
//     their decision caches carry over from game to game. At most maxSolvers
//     are kept; random solvers belong to one session or request.
//   - A nil DB disables bench persistence and the daily replay cache.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/config"
	"github.com/robalobadob/wordle/apps/go-solver/internal/daily"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/metrics"
	"github.com/robalobadob/wordle/apps/go-solver/internal/results"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// maxSolvers bounds the shared solvers; each holds its own caches.
const maxSolvers = 32

// Deps are the collaborators a Server needs.
type Deps struct {
	Config   config.Config
	Possible words.List
	Allowed  words.List
	Sessions store.Store
	DB       *sql.DB // optional
}

// Server bundles router, session store, solvers, and DB-backed stores.
type Server struct {
	r        *chi.Mux
	cfg      config.Config
	defaults solver.Config
	possible words.List
	allowed  words.List
	sessions store.Store
	runs     *results.Store
	daily    *daily.Store

	mu      sync.Mutex
	solvers map[string]*solver.Solver // keyed by solver.Config.Key

	benchMu sync.Mutex // one bench run at a time
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) (*Server, error) {
	defaults, err := d.Config.SolverConfig()
	if err != nil {
		return nil, err
	}
	if d.Sessions == nil {
		d.Sessions = store.NewMemoryStore()
	}
	s := &Server{
		r:        chi.NewRouter(),
		cfg:      d.Config,
		defaults: defaults,
		possible: d.Possible,
		allowed:  d.Allowed,
		sessions: d.Sessions,
		solvers:  make(map[string]*solver.Solver),
	}
	if d.DB != nil {
		s.runs = results.NewStore(d.DB)
		s.daily = daily.NewStore(d.DB)
	}
	// Build the default solver up front so a bad config fails at startup.
	if _, err := s.solverFor(defaults); err != nil {
		return nil, err
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                // add X-Request-ID
	s.r.Use(chimw.RealIP)                   // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                      // zerolog access line + metrics
	s.r.Use(chimw.Recoverer)                // recover from panics
	s.r.Use(jsonContentType)                // default JSON responses
	s.r.Use(corsFor(d.Config.ClientOrigin)) // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/metrics", promhttp.Handler().ServeHTTP)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"service":"wordle-solver","endpoints":["/health","POST /feedback","POST /filter","POST /solver/new","POST /solver/next","POST /solver/feedback","/daily/solve","POST /auth/token","/bench/*"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]int{"answers": s.possible.Len(), "allowed": s.allowed.Len()})
		})

		r.Post("/feedback", s.handleFeedback)
		r.Post("/filter", s.handleFilter)
		s.mountSolver(r)
		s.mountDaily(r)
		r.Post("/auth/token", s.handleToken)
		r.Get("/bench/runs", s.handleRuns)
		r.Get("/bench/runs/{id}", s.handleRun)
	})

	// Benchmarks play every secret; they get a longer budget.
	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(5 * time.Minute))
		r.With(s.requireAuth()).Post("/bench/run", s.handleBenchRun)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s, nil
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// PruneSessions drops sessions idle for longer than ttl.
func (s *Server) PruneSessions(ctx context.Context, ttl time.Duration) (int, error) {
	return s.sessions.Prune(ctx, time.Now().Add(-ttl))
}

// solverFor returns the shared solver for cfg, building it on first use.
// Random solvers carry a per-seed draw sequence and are never shared.
func (s *Server) solverFor(cfg solver.Config) (*solver.Solver, error) {
	sv, err := solver.New(s.allowed, cfg)
	if err != nil {
		return nil, err
	}
	if sv.Config().Strategy == solver.StrategyRandom {
		return sv, nil
	}
	key := sv.Config().Key()

	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.solvers[key]; ok {
		return cached, nil
	}
	if len(s.solvers) >= maxSolvers {
		clear(s.solvers)
	}
	s.solvers[key] = sv
	return sv, nil
}

// sessionSolver returns the solver a session plays with.
func (s *Server) sessionSolver(sess *store.Session) (*solver.Solver, error) {
	if sess.Solver != nil {
		return sess.Solver, nil
	}
	return s.solverFor(sess.Config)
}

// solverCtx bounds one guess selection by SOLVER_TIMEOUT_MS.
func (s *Server) solverCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.SolverTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.SolverTimeout)
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFor enables credentialed CORS for a single origin.
func corsFor(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// accessLog writes one zerolog line per request and feeds the HTTP metrics.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		took := time.Since(start)
		metrics.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(route).Observe(took.Seconds())
		log.Debug().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("route", route).
			Int("status", status).
			Dur("took", took).
			Msg("http")
	})
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeFailure maps domain errors to HTTP statuses.
func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, words.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, solver.ErrEmptyCandidateSet), errors.Is(err, game.ErrFinished):
		status = http.StatusConflict
	case errors.Is(err, store.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		status = http.StatusNotFound
		err = errors.New("not_found")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	writeErr(w, status, err.Error())
}

// decode reads a JSON body into v; malformed JSON is invalid input.
func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: bad_json", words.ErrInvalidInput)
	}
	return nil
}
