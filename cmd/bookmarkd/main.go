package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/tmarcinkow/bookmarkd/internal/application/auth"
	"github.com/tmarcinkow/bookmarkd/internal/application/bookmark"
	"github.com/tmarcinkow/bookmarkd/internal/config"
	infraauth "github.com/tmarcinkow/bookmarkd/internal/infrastructure/auth"
	httprouter "github.com/tmarcinkow/bookmarkd/internal/infrastructure/http"
	"github.com/tmarcinkow/bookmarkd/internal/infrastructure/http/handlers"
	"github.com/tmarcinkow/bookmarkd/internal/infrastructure/http/middleware"
	"github.com/tmarcinkow/bookmarkd/internal/infrastructure/persistence/postgres"
	"github.com/tmarcinkow/bookmarkd/internal/infrastructure/security"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}
	if err := postgres.Migrate(ctx, cfg.Database.URL); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	userRepo := postgres.NewUserRepository(pool)
	bookmarkRepo := postgres.NewBookmarkRepository(pool)

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})
	issuer := infraauth.NewTokenIssuer([]byte(cfg.JWT.Secret), cfg.JWT.Issuer, cfg.JWT.AccessExpiry)

	signupUC := auth.NewSignup(userRepo, hasher, issuer)
	signinUC := auth.NewSignin(userRepo, hasher, issuer)
	bookmarkSvc := bookmark.NewService(bookmarkRepo)

	authHandler := handlers.NewAuthHandler(signupUC, signinUC, log)
	bookmarksHandler := handlers.NewBookmarksHandler(bookmarkSvc, log)
	usersHandler := handlers.NewUsersHandler(userRepo)
	healthHandler := handlers.NewHealthHandler(pool)
	requireAuth := middleware.NewAuthValidator(issuer).Handler

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:      authHandler,
		BookmarksHandler: bookmarksHandler,
		UsersHandler:     usersHandler,
		HealthHandler:    healthHandler,
		RequireAuth:      requireAuth,
		Log:              log,
		Metrics:          true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}
