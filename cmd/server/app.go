package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/bookstore-api/internal/config"
	"github.com/phrazzld/bookstore-api/internal/platform/oauth"
	"github.com/phrazzld/bookstore-api/internal/platform/postgres"
	"github.com/phrazzld/bookstore-api/internal/platform/ratelimit"
	"github.com/phrazzld/bookstore-api/internal/service"
	"github.com/phrazzld/bookstore-api/internal/service/auth"
)

// application holds the long-lived dependencies of a running server.
type application struct {
	config       *config.Config
	logger       *slog.Logger
	db           *sql.DB
	router       http.Handler
	closeLimiter func() error
}

// newApplication wires stores, services and the HTTP router on top of db.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	tokens, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create token validator: %w", err)
	}

	bookStore := postgres.NewPostgresBookStore(db, logger)
	authorStore := postgres.NewPostgresAuthorStore(db, logger)

	appURL := strings.TrimRight(cfg.Server.AppURL, "/")
	deps := routerDeps{
		logger:      logger,
		appURL:      appURL,
		corsOrigins: cfg.CORS.AllowedOrigins,
		books:       service.NewBookService(db, bookStore, logger),
		authors:     service.NewAuthorService(db, authorStore, logger),
		tokens:      tokens,
		oauth:       oauth.NewClient(cfg.OAuth, appURL+"/callback"),
	}

	closeLimiter := func() error { return nil }
	if cfg.RateLimit.Enabled {
		limiter, closeFn, err := ratelimit.New(ctx, cfg.RateLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to create rate limiter: %w", err)
		}
		deps.limiter = limiter
		closeLimiter = closeFn
		logger.Info("rate limiting enabled",
			"backend", cfg.RateLimit.Backend,
			"rps", cfg.RateLimit.RPS,
			"burst", cfg.RateLimit.Burst)
	}

	return &application{
		config:       cfg,
		logger:       logger,
		db:           db,
		router:       newRouter(deps),
		closeLimiter: closeLimiter,
	}, nil
}

// cleanup releases the rate limiter backend and the database pool.
func (app *application) cleanup() {
	if app.closeLimiter != nil {
		if err := app.closeLimiter(); err != nil {
			app.logger.Error("failed to close rate limiter", "error", err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
		}
	}
}
