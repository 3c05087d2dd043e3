package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/config"
	"github.com/robalobadob/wordle/apps/go-solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/results"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// sessionTTL is how long an idle solver session is kept.
const sessionTTL = 2 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := words.Init(cfg.AnswersFile, cfg.AllowedFile); err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	possible, allowed := words.Stats()
	log.Info().Int("answers", possible).Int("allowed", allowed).Msg("word lists loaded")

	var db *sql.DB
	if cfg.DBPath != "" && cfg.DBPath != "off" {
		if db, err = results.Open(cfg.DBPath); err != nil {
			log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open results db")
		}
		defer db.Close()
	}

	mem := store.NewMemoryStore()
	srv, err := httpserver.New(httpserver.Deps{
		Config:   cfg,
		Possible: words.Possible(),
		Allowed:  words.Allowed(),
		Sessions: mem,
		DB:       db,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("build server")
	}

	go pruneSessions(context.Background(), srv)

	log.Info().Str("port", cfg.Port).Msg("starting go-solver")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
}

// pruneSessions drops idle solver sessions every few minutes.
func pruneSessions(ctx context.Context, srv *httpserver.Server) {
	t := time.NewTicker(10 * time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n, err := srv.PruneSessions(ctx, sessionTTL); err != nil {
				log.Warn().Err(err).Msg("prune sessions")
			} else if n > 0 {
				log.Info().Int("pruned", n).Msg("idle sessions pruned")
			}
		}
	}
}
