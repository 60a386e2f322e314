package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"photomotion/internal/http/handlers"
	"photomotion/internal/infra"
	"photomotion/internal/middleware"
)

// NewRouter assembles the HTTP API with the standard middleware chain.
func NewRouter(app *handlers.App, cfg *infra.Config, logger zerolog.Logger, lookup middleware.CountryLookup) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(middleware.I18N("en", lookup))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", app.Health)
		r.Get("/credential/status", app.CredentialStatus)
		r.Post("/credential", app.SetCredential)
		r.Get("/session", app.Session)
		r.Post("/session/reset", app.ResetSession)
		r.Get("/assets/{ref}", app.Asset)
		r.Get("/events", app.Events)
		r.Get("/ideas", app.IdeasList)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))
			r.Post("/videos", app.CreateVideo)
		})
	})

	return r
}
