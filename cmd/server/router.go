package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/bookstore-api/internal/api"
	apimw "github.com/phrazzld/bookstore-api/internal/api/middleware"
	"github.com/phrazzld/bookstore-api/internal/api/shared"
	"github.com/phrazzld/bookstore-api/internal/platform/ratelimit"
	"github.com/phrazzld/bookstore-api/internal/service/auth"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// routerDeps are the collaborators the HTTP layer is built from.
type routerDeps struct {
	logger      *slog.Logger
	appURL      string
	corsOrigins []string
	books       api.BookService
	authors     api.AuthorService
	tokens      auth.TokenValidator
	oauth       api.OAuthClient
	// limiter is optional; nil disables rate limiting.
	limiter ratelimit.Limiter
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(apimw.TraceMiddleware(d.logger))
	r.Use(apimw.Recoverer)
	r.Use(apimw.Metrics)
	if len(d.corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: d.corsOrigins,
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", apimw.TraceHeader},
			ExposedHeaders: []string{"Location", "Retry-After", apimw.TraceHeader},
			MaxAge:         300,
		}))
	}

	// Set before mounting sub-routers so they inherit them.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, shared.NewHTTPError(http.StatusNotFound, ""))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, shared.NewHTTPError(http.StatusMethodNotAllowed, ""))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	api.RegisterOAuthRoutes(r, api.NewOAuthHandler(d.oauth, d.appURL, d.logger))

	bookHandler := api.NewBookHandler(d.books, d.appURL, d.logger)
	authorHandler := api.NewAuthorHandler(d.authors, d.appURL, d.logger)
	authMiddleware := apimw.NewAuthMiddleware(d.tokens)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apimw.EnsureJSONAPIHeaders)
		r.Use(authMiddleware.Authenticate)
		if d.limiter != nil {
			r.Use(apimw.RateLimit(d.limiter, apimw.ClientKey))
		}
		api.RegisterResourceRoutes(r, bookHandler, authorHandler)
	})

	return r
}
