package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/wordle-engine/assets"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/config"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/database"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/httpserver"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/store"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/words"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg)

	dict, err := loadDictionary(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}
	log.Info().Int("words", dict.Len()).Str("source", dictSource(cfg)).Msg("dictionary loaded")

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	defer db.Close()
	if err := database.Migrate(db, assets.Migrations); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	if cfg.InsecureSecret() {
		log.Warn().Msg("JWT_SECRET not set, using development secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := httpserver.New(cfg, dict, store.NewMemoryStore(), db)
	log.Info().Str("port", cfg.Port).Msg("starting go-server")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

func setupLogging(cfg config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if !cfg.Production {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// loadDictionary reads WORDS_FILE when set, else the embedded list.
// Either way a missing, unreadable or empty list is an error.
func loadDictionary(cfg config.Config) (*words.Dictionary, error) {
	if cfg.WordsFile != "" {
		return words.Load(cfg.WordsFile)
	}
	return words.Embedded()
}

func dictSource(cfg config.Config) string {
	if cfg.WordsFile != "" {
		return cfg.WordsFile
	}
	return "embedded"
}
