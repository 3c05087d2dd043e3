// Package metrics declares the Prometheus instruments shared by the solver,
// the benchmark harness and the HTTP layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ChooseDuration tracks guess selection latency by strategy.
	ChooseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "solver_choose_duration_seconds",
		Help:    "Guess selection duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 0.1ms to ~26s
	}, []string{"strategy"})

	// GuessesScored counts scoring-function evaluations.
	GuessesScored = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solver_guesses_scored_total",
		Help: "Total guess evaluations by strategy",
	}, []string{"strategy"})

	// CacheLookups counts decision and memo cache lookups by cache and result.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solver_cache_lookups_total",
		Help: "Solver cache lookups by cache and result",
	}, []string{"cache", "result"})

	// BudgetExhausted counts selections cut short by a time or step budget.
	BudgetExhausted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solver_budget_exhausted_total",
		Help: "Guess selections that returned early on budget exhaustion",
	}, []string{"strategy"})

	// GamesPlayed counts finished games by outcome ("won" | "lost" | "error").
	GamesPlayed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "game_finished_total",
		Help: "Finished games by outcome",
	}, []string{"outcome"})

	// GuessesPerGame tracks the number of guesses of won games.
	GuessesPerGame = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "game_guesses",
		Help:    "Guesses needed to solve a game",
		Buckets: []float64{1, 2, 3, 4, 5, 6, 7, 8, 10},
	})

	// HTTPRequests counts served requests by route pattern and status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by route and status",
	}, []string{"route", "method", "status"})

	// HTTPDuration tracks request latency by route pattern.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)
