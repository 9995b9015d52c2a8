package main

import (
	"context"
	"net/http"
	"time"

	"bookcatalog/internal/auth"
	"bookcatalog/internal/author"
	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/ingest"
	"bookcatalog/internal/language"
)

type handlers struct {
	authors   *author.HTTPHandler
	languages *language.HTTPHandler
	books     *book.HTTPHandler
	imports   *ingest.HTTPHandler
	// ready reports whether backing storage answers.
	ready func(ctx context.Context) error
}

// newRouter wires every route behind the shared middleware chain. ctx bounds
// background work such as the rate limiter sweep.
func newRouter(ctx context.Context, cfg *config.Config, h handlers) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := h.ready(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	editor := httpx.AuthMiddleware(cfg.JWTSecret, auth.RoleEditor)
	protect := func(fn http.HandlerFunc) http.Handler {
		return editor(fn)
	}

	router.HandleFunc("GET /v1/books", h.books.List)
	router.HandleFunc("GET /v1/books/{id}", h.books.Get)
	router.Handle("POST /v1/books", protect(h.books.Create))
	router.Handle("PUT /v1/books/{id}", protect(h.books.Update))
	router.Handle("DELETE /v1/books/{id}", protect(h.books.Delete))

	router.HandleFunc("GET /v1/authors", h.authors.List)
	router.HandleFunc("GET /v1/authors/{id}", h.authors.Get)
	router.Handle("POST /v1/authors", protect(h.authors.Create))
	router.Handle("PUT /v1/authors/{id}", protect(h.authors.Update))
	router.Handle("DELETE /v1/authors/{id}", protect(h.authors.Delete))

	router.HandleFunc("GET /v1/languages", h.languages.List)
	router.HandleFunc("GET /v1/languages/{id}", h.languages.Get)
	router.Handle("POST /v1/languages", protect(h.languages.Create))
	router.Handle("PUT /v1/languages/{id}", protect(h.languages.Update))
	router.Handle("DELETE /v1/languages/{id}", protect(h.languages.Delete))

	router.HandleFunc("GET /v1/imports", h.imports.Runs)
	router.Handle("POST /v1/imports", protect(h.imports.Import))

	rateLimiter := httpx.NewRateLimitMiddleware(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)

	return httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware,
		httpx.RecoveryMiddleware,
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.CORSAllowedOrigins),
		rateLimiter.Middleware,
		httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
	)
}
