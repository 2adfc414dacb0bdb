// Package router declares the HTTP surface and wires the middleware
// chain around it.
package router

import (
	"net/http"

	"qalam/internal/handlers"
	"qalam/internal/middleware"

	"github.com/gorilla/mux"
)

// New builds the full route table. CORS and locale negotiation wrap
// every route; authentication is applied per route so public reads and
// authenticated writes can share paths.
func New(s *handlers.Server, allowedOrigins []string, defaultLocale string) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig(allowedOrigins)))
	r.Use(middleware.LocaleMiddleware(defaultLocale))

	r.HandleFunc("/health", s.HandleHealth).Methods(http.MethodGet)
	r.HandleFunc("/locale/{locale}", s.HandleSetLocale).Methods(http.MethodGet)

	// Users
	r.HandleFunc("/users/register", s.HandleRegister).Methods(http.MethodPost)
	r.HandleFunc("/users/login", s.HandleLogin).Methods(http.MethodPost)
	r.HandleFunc("/users/me", middleware.RequireAuth(s.HandleMe)).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", s.HandleGetUser).Methods(http.MethodGet)

	// Posts
	r.HandleFunc("/posts", middleware.OptionalAuth(s.HandleListPosts)).Methods(http.MethodGet)
	r.HandleFunc("/posts", middleware.RequireAuth(s.HandleCreatePost)).Methods(http.MethodPost)
	r.HandleFunc("/posts/{slugOrId}", middleware.OptionalAuth(s.HandleGetPost)).Methods(http.MethodGet)
	r.HandleFunc("/posts/{id}", middleware.RequireAuth(s.HandleUpdatePost)).Methods(http.MethodPut)
	r.HandleFunc("/posts/{id}", middleware.RequireAuth(s.HandleDeletePost)).Methods(http.MethodDelete)
	r.HandleFunc("/posts/{id}/comments", middleware.RequireAuth(s.HandleCreateComment)).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id}/like", middleware.RequireAuth(s.HandleTogglePostReaction)).Methods(http.MethodPost)

	// Comments
	r.HandleFunc("/comments/{id}", middleware.RequireAuth(s.HandleDeleteComment)).Methods(http.MethodDelete)
	r.HandleFunc("/comments/{id}/like", middleware.RequireAuth(s.HandleToggleCommentReaction)).Methods(http.MethodPost)

	// Categories
	r.HandleFunc("/categories", s.HandleListCategories).Methods(http.MethodGet)
	r.HandleFunc("/categories", middleware.RequireAuth(s.HandleCreateCategory)).Methods(http.MethodPost)
	r.HandleFunc("/categories/{slugOrId}", s.HandleGetCategory).Methods(http.MethodGet)
	r.HandleFunc("/categories/{id}", middleware.RequireAuth(s.HandleUpdateCategory)).Methods(http.MethodPut)
	r.HandleFunc("/categories/{id}", middleware.RequireAuth(s.HandleDeleteCategory)).Methods(http.MethodDelete)

	// Admin and dashboard
	r.HandleFunc("/admin/posts", middleware.RequireAuth(s.HandleAdminListPosts)).Methods(http.MethodGet)
	r.HandleFunc("/dashboard", middleware.RequireAuth(s.HandleDashboard)).Methods(http.MethodGet)

	return r
}
