package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookcatalog/internal/author"
	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/ingest"
	"bookcatalog/internal/language"
	"bookcatalog/internal/platform/googlebooks"
	"bookcatalog/internal/platform/logging"
	"bookcatalog/internal/platform/postgres"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("info", true)
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logging.Setup(cfg.LogLevel, cfg.LogPretty)

	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty; every mutating route will answer 401")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open database")
	}
	defer dbPool.Close()
	log.Info().Str("dsn", postgres.RedactDSN(cfg.DatabaseDSN)).Msg("database connection OK")

	authorService := author.NewService(author.NewPostgresRepo(dbPool, cfg.DBTimeout))
	languageService := language.NewService(language.NewPostgresRepo(dbPool, cfg.DBTimeout))
	bookService := book.NewService(book.NewPostgresRepo(dbPool, cfg.DBTimeout))

	volumes := googlebooks.NewClient(googlebooks.Config{
		AllowedHosts: cfg.ImportAllowedHosts,
		UserAgent:    cfg.ImportUserAgent,
		Timeout:      cfg.ImportTimeout,
		RPS:          cfg.ImportRPS,
		MaxRetries:   cfg.ImportMaxRetries,
		RetryBackoff: cfg.ImportRetryBackoff,
	})
	importService := ingest.NewService(volumes, authorService, languageService, bookService, ingest.NewPostgresRepo(dbPool))

	handler := newRouter(ctx, cfg, handlers{
		authors:   author.NewHTTPHandler(authorService),
		languages: language.NewHTTPHandler(languageService),
		books:     book.NewHTTPHandler(bookService),
		imports:   ingest.NewHTTPHandler(importService),
		ready:     dbPool.Ping,
	})

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.ImportTimeout*time.Duration(cfg.ImportMaxRetries+1) + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.Addr).Msg("starting server")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server error")
	}
}
