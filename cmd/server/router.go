package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mentorhub/mentorhub-api/internal/api"
	apiMiddleware "github.com/mentorhub/mentorhub-api/internal/api/middleware"
)

// setupRouter wires the middleware chain and all routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	sessionHandler := api.NewSessionHandler(app.sessionService, app.profileStore)
	reviewHandler := api.NewReviewHandler(app.reviewService, app.profileStore)
	profileHandler := api.NewProfileHandler(app.aggregatesService)

	r.Route("/v1", func(r chi.Router) {
		// Public read endpoints.
		r.Get("/reviews/{reviewID}", reviewHandler.GetReview)
		r.Get("/profiles/{profileID}/reviews", reviewHandler.ListProfileReviews)
		r.Get("/profiles/{profileID}/stats", profileHandler.GetProfileStats)

		// Protected session and review endpoints.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/sessions/requests/{profileID}", sessionHandler.RequestSession)
			r.Put("/sessions/{sessionID}", sessionHandler.UpdateSession)
			r.Get("/sessions", sessionHandler.ListSessions)
			r.Post("/sessions/{sessionID}/reviews", reviewHandler.SubmitReview)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	r.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	return r
}
