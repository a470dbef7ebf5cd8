package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tmarcinkow/bookmarkd/internal/infrastructure/http/handlers"
	"github.com/tmarcinkow/bookmarkd/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler      *handlers.AuthHandler
	BookmarksHandler *handlers.BookmarksHandler
	UsersHandler     *handlers.UsersHandler
	HealthHandler    *handlers.HealthHandler
	RequireAuth      func(http.Handler) http.Handler // bearer auth for /users/* and /bookmarks/*
	Log              zerolog.Logger
	Metrics          bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	r.Use(chimid.AllowContentType("application/json"))

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", cfg.AuthHandler.Signup)
		r.Post("/signin", cfg.AuthHandler.Signin)
	})

	r.Group(func(r chi.Router) {
		r.Use(cfg.RequireAuth)
		r.Get("/users/me", cfg.UsersHandler.Me)
		r.Route("/bookmarks", func(r chi.Router) {
			r.Get("/", cfg.BookmarksHandler.List)
			r.Post("/", cfg.BookmarksHandler.Create)
			r.Get("/{id}", cfg.BookmarksHandler.Get)
			r.Patch("/{id}", cfg.BookmarksHandler.Edit)
			r.Delete("/{id}", cfg.BookmarksHandler.Delete)
		})
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
