package router

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kanban/internal/middleware/metrics"
	"kanban/internal/setup"
)

// New creates and configures the chi router with all the routes.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.Post("/logout", h.Logout)
			r.With(authMw.NeedAuth()).Get("/me", h.Me)
		})

		// Everything below resolves objects through the acting principal only
		r.Group(func(r chi.Router) {
			r.Use(authMw.NeedAuth())

			r.Route("/boards", func(r chi.Router) {
				r.Get("/", h.GetBoards)
				r.Post("/", h.CreateBoard)
				r.Route("/{board}", func(r chi.Router) {
					r.Get("/", h.GetBoard)
					r.Put("/", h.UpdateBoard)
					r.Delete("/", h.DeleteBoard)
					r.Get("/stats", h.GetBoardStats)
					r.Get("/cards", h.GetCards)
					r.Post("/cards", h.CreateCard)
				})
			})

			r.Route("/cards/{card}", func(r chi.Router) {
				r.Get("/", h.GetCard)
				r.Put("/", h.UpdateCard)
				r.Delete("/", h.DeleteCard)
			})
		})
	})

	return r
}
