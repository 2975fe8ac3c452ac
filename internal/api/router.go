package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/devjh/commboard/internal/api/handlers"
	"github.com/devjh/commboard/internal/api/middleware"
	"github.com/devjh/commboard/internal/service"
)

func NewRouter(services *service.Services) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	boardHandler := handlers.NewBoardHandler(services.Board)
	categoryHandler := handlers.NewCategoryHandler(services.Category)
	postHandler := handlers.NewPostHandler(services.Post)
	dashboardHandler := handlers.NewDashboardHandler(services.Dashboard)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Get("/validate-token", authHandler.ValidateToken)
		})

		// Public read routes
		r.Route("/boards", func(r chi.Router) {
			r.Get("/", boardHandler.List)
			r.Get("/{id}", boardHandler.Get)
			r.Get("/{id}/posts", postHandler.ListByBoard)

			// Admin-only board management
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Post("/", boardHandler.Create)
				r.Put("/{id}", boardHandler.Update)
				r.Delete("/{id}", boardHandler.Delete)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryHandler.List)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Post("/", categoryHandler.Create)
				r.Put("/{id}", categoryHandler.Update)
				r.Delete("/{id}", categoryHandler.Delete)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/{id}", postHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Post("/", postHandler.Create)
				r.Put("/{id}", postHandler.Update)
				r.Delete("/{id}", postHandler.Delete)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))
			r.Get("/dashboard", dashboardHandler.Stats)
		})
	})

	return r
}
