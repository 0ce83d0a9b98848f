package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/velann/socialize-be/internal/api/handlers"
	"github.com/velann/socialize-be/internal/auth"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	signer *auth.TokenSigner,
	accountHandler *handlers.AccountHandler,
	profileHandler *handlers.ProfileHandler,
	postHandler *handlers.PostHandler,
	uploadHandler *handlers.UploadHandler,
	uploadsDir string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // Adjust for your frontend URL
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	requireAuth := signer.Middleware()

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", accountHandler.Register)
			r.Get("/verify/{token}", accountHandler.Verify)
			r.Post("/login", accountHandler.Login)
			r.Post("/forgot-password", accountHandler.ForgotPassword)
			r.Post("/reset-password", accountHandler.ResetPassword)
			r.With(requireAuth).Get("/me", accountHandler.GetMe)
		})

		r.Route("/profiles", func(r chi.Router) {
			r.Get("/{username}", profileHandler.GetByUsername)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", profileHandler.Create)
				r.Put("/", profileHandler.Update)
				r.Get("/", profileHandler.GetMine)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", postHandler.List)
			r.Get("/slug/{slug}", postHandler.GetBySlug)
			r.Get("/{id}/comments", postHandler.GetComments)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", postHandler.Create)
				r.Put("/{id}", postHandler.Update)
				r.Put("/{id}/like", postHandler.Like)
				r.Post("/{id}/comments", postHandler.AddComment)
			})
		})

		r.With(requireAuth).Post("/uploads", uploadHandler.Upload)
	})

	// Serve uploaded images as static files.
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir)))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	return r
}
