// Package api provides the HTTP API server and handlers for the ReadUp catalog.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/readupapp/readup-server/internal/auth"
	"github.com/readupapp/readup-server/internal/ratelimit"
	"github.com/readupapp/readup-server/internal/service"
	"github.com/readupapp/readup-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store         store.Store
	authService   *service.AuthService
	bookService   *service.BookService
	reviewService *service.ReviewService
	searchService *service.SearchService
	tokens        *auth.TokenService
	authLimiter   *ratelimit.KeyedRateLimiter
	corsOrigins   []string
	router        *chi.Mux
	logger        *slog.Logger
}

// Options bundles the server's dependencies.
type Options struct {
	Store         store.Store
	AuthService   *service.AuthService
	BookService   *service.BookService
	ReviewService *service.ReviewService
	SearchService *service.SearchService
	Tokens        *auth.TokenService
	AuthLimiter   *ratelimit.KeyedRateLimiter
	CORSOrigins   []string
	Logger        *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(opts Options) *Server {
	s := &Server{
		store:         opts.Store,
		authService:   opts.AuthService,
		bookService:   opts.BookService,
		reviewService: opts.ReviewService,
		searchService: opts.SearchService,
		tokens:        opts.Tokens,
		authLimiter:   opts.AuthLimiter,
		corsOrigins:   opts.CORSOrigins,
		router:        chi.NewRouter(),
		logger:        opts.Logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	origins := s.corsOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealthCheck)

	// Auth endpoints (public, rate limited per IP).
	s.router.Group(func(r chi.Router) {
		if s.authLimiter != nil {
			r.Use(s.rateLimit(s.authLimiter))
		}
		r.Post("/signup", s.handleSignup)
		r.Post("/login", s.handleLogin)
	})

	// Catalog.
	s.router.Route("/books", func(r chi.Router) {
		r.Get("/", s.handleListBooks)
		r.Get("/{id}", s.handleGetBook)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/", s.handleCreateBook)
			r.Post("/{id}/reviews", s.handleAddReview)
		})
	})

	// Reviews.
	s.router.Route("/reviews", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Put("/{id}", s.handleUpdateReview)
		r.Delete("/{id}", s.handleDeleteReview)
	})

	// Search.
	s.router.Get("/search", s.handleSearch)
}
