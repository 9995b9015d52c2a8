package main

import (
	"context"

	"bookcatalog/internal/config"
	"bookcatalog/internal/language"
	"bookcatalog/internal/platform/logging"
	"bookcatalog/internal/platform/postgres"

	"github.com/rs/zerolog/log"
)

// languageNames covers the codes the volumes API reports most often.
var languageNames = map[string]string{
	"cs": "Czech",
	"de": "German",
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"it": "Italian",
	"ja": "Japanese",
	"nl": "Dutch",
	"pl": "Polish",
	"pt": "Portuguese",
	"ru": "Russian",
	"sk": "Slovak",
	"sv": "Swedish",
	"uk": "Ukrainian",
	"zh": "Chinese",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("info", true)
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Setup(cfg.LogLevel, true)

	ctx := context.Background()
	pool, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	svc := language.NewService(language.NewPostgresRepo(pool, cfg.DBTimeout))
	updated, err := svc.SeedNames(ctx, languageNames)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed languages")
	}
	log.Info().Int("updated", updated).Int("known", len(languageNames)).Msg("language names seeded")
}
