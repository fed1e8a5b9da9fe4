package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// newRouter wires every page-data and form endpoint.
func newRouter(a *app) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{originHeader},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/home", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusPermanentRedirect)
	})
	r.Get("/sitemap.xml", a.handleSitemap)
	r.Get("/robots.txt", a.handleRobots)

	r.Route("/api", func(r chi.Router) {
		r.Get("/properties", a.handleProperties)
		r.Get("/properties/featured", a.handleFeatured)
		r.Get("/properties/facets", a.handleFacets)
		r.Get("/properties/geojson", a.handleGeoJSON)
		r.Get("/properties/{id}", a.handleProperty)

		r.Get("/areas", a.handleAreas)
		r.Get("/areas/{slug}", a.handleArea)

		r.Get("/posts", a.handlePosts)
		r.Get("/posts/{slug}", a.handlePost)
		r.Get("/posts/{slug}/related", a.handleRelated)
		r.Get("/categories", a.handleCategories)

		r.Get("/faqs", a.handleFAQs)
		r.Get("/agent", a.handleAgent)
		r.Get("/status", a.handleStatus)

		r.Group(func(r chi.Router) {
			r.Use(formLimiter(a.cfg.Server.FormRatePerMin, a.cfg.Server.FormBurst))
			r.Post("/contact", a.handleContact)
			r.Post("/valuation", a.handleValuation)
			r.Post("/properties/{id}/inquiry", a.handleInquiry)
		})
	})

	return r
}
