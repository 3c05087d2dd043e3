// internal/config/config.go
//
// Process configuration read from the environment (and .env via godotenv).
// Every value has a development default so the service starts with no setup.

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// Config is the service configuration.
type Config struct {
	Port     string
	LogLevel string
	DBPath   string

	JWTSecret         string
	JWTExpiresDays    int
	AdminPasswordHash string // bcrypt; empty disables POST /auth/token
	ClientOrigin      string
	DailySalt         string

	AnswersFile string
	AllowedFile string

	Strategy      string
	Scoring       string
	Depth         int
	Workers       int
	Breadth       int
	SolverTimeout time.Duration // per-choice budget for HTTP requests; 0 is none
	MaxTurns      int
}

// Load reads .env if present, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the environment only.
func FromEnv() (Config, error) {
	c := Config{
		Port:              getEnv("PORT", "5175"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DBPath:            getEnv("DB_PATH", "./data/solver.db"),
		JWTSecret:         getEnv("JWT_SECRET", "dev_secret_change_me"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		ClientOrigin:      getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		DailySalt:         getEnv("DAILY_SALT", "local_dev_salt"),
		AnswersFile:       os.Getenv("WORDS_ANSWERS_FILE"),
		AllowedFile:       os.Getenv("WORDS_ALLOWED_FILE"),
		Strategy:          getEnv("SOLVER_STRATEGY", string(solver.StrategyGreedy)),
		Scoring:           getEnv("SOLVER_SCORING", string(solver.ScoringExpectedCount)),
	}

	var err error
	if c.JWTExpiresDays, err = envInt("JWT_EXPIRES_DAYS", 14); err != nil {
		return c, err
	}
	if c.Depth, err = envInt("SOLVER_DEPTH", 1); err != nil {
		return c, err
	}
	if c.Workers, err = envInt("SOLVER_WORKERS", 0); err != nil {
		return c, err
	}
	if c.Breadth, err = envInt("SOLVER_BREADTH", 16); err != nil {
		return c, err
	}
	if c.MaxTurns, err = envInt("MAX_TURNS", 6); err != nil {
		return c, err
	}
	ms, err := envInt("SOLVER_TIMEOUT_MS", 5000)
	if err != nil {
		return c, err
	}
	c.SolverTimeout = time.Duration(ms) * time.Millisecond

	if _, err := c.SolverConfig(); err != nil {
		return c, err
	}
	return c, nil
}

// SolverConfig is the default solver configuration for requests that do not
// pick their own.
func (c Config) SolverConfig() (solver.Config, error) {
	st, err := solver.ParseStrategy(c.Strategy)
	if err != nil {
		return solver.Config{}, fmt.Errorf("SOLVER_STRATEGY: %w", err)
	}
	sc, err := solver.ParseScoring(c.Scoring)
	if err != nil {
		return solver.Config{}, fmt.Errorf("SOLVER_SCORING: %w", err)
	}
	if c.Depth < 0 {
		return solver.Config{}, fmt.Errorf("SOLVER_DEPTH: must be >= 0, got %d", c.Depth)
	}
	cfg := solver.DefaultConfig()
	cfg.Strategy = st
	cfg.Scoring = sc
	cfg.Depth = c.Depth
	cfg.Workers = c.Workers
	cfg.Breadth = c.Breadth
	return cfg, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

// envInt parses k as an int, or returns def if unset/empty.
func envInt(k string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}
