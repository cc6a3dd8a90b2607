// Wardrobe - Outfit Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wardrobe

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/wardrobe/internal/middleware"
)

// Router wires the handler and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil config selects the defaults.
func NewRouter(handler *Handler, config *ChiMiddlewareConfig) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(config),
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // must be global to answer OPTIONS preflight
	r.Use(chimiddleware.Compress(5, "application/json"))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusNotFound, "NOT_FOUND", "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Use(router.chiMiddleware.MaxBodySize())

		r.Get("/health", router.handler.Health)

		r.Route("/outfits", func(r chi.Router) {
			r.Post("/recommend", router.handler.RecommendOutfits)
			r.Post("/intent", router.handler.RecommendFromText)
		})

		r.Post("/feedback", router.handler.SubmitFeedback)

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/items", router.handler.ListItems)
			r.Post("/items", router.handler.IngestItems)
			r.Get("/items/{id}", router.handler.GetItem)
			r.Delete("/items/{id}", router.handler.DeprecateItem)
			r.Get("/search", router.handler.SearchItems)
			r.Get("/popular", router.handler.PopularItems)
		})

		r.Get("/profiles/{userID}", router.handler.GetProfile)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
