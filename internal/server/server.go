package server

import (
	"database/sql"
	"log/slog"
	"net/http"

	"larder/internal/catalog"
	"larder/internal/handler"
	"larder/internal/middleware"
	"larder/internal/store"
	"larder/internal/token"
)

type Server struct {
	authH      *handler.AuthHandler
	groceryH   *handler.GroceryHandler
	searchH    *handler.SearchHandler
	tokens     *token.Service
	corsOrigin string
	logger     *slog.Logger
}

func New(db *sql.DB, tokens *token.Service, catalogClient *catalog.Client, corsOrigin string, logger *slog.Logger) *Server {
	userStore := store.NewUserStore(db)
	groceryStore := store.NewGroceryStore(db)

	return &Server{
		authH:      handler.NewAuthHandler(userStore, tokens, logger.With("component", "auth")),
		groceryH:   handler.NewGroceryHandler(groceryStore, logger.With("component", "grocery")),
		searchH:    handler.NewSearchHandler(catalogClient, logger.With("component", "search")),
		tokens:     tokens,
		corsOrigin: corsOrigin,
		logger:     logger,
	}
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("GET /{$}", s.indexHandler)
	outerMux.HandleFunc("GET /health", s.healthHandler)
	outerMux.HandleFunc("POST /api/auth/signup", s.authH.Signup)
	outerMux.HandleFunc("POST /api/auth/login", s.authH.Login)

	// Protected routes — wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	protectedMux.HandleFunc("POST /api/list/items", s.groceryH.Create)
	protectedMux.HandleFunc("GET /api/list/items", s.groceryH.List)
	protectedMux.HandleFunc("GET /api/list/search", s.searchH.Search)
	protectedMux.HandleFunc("PUT /api/list/{id}", s.groceryH.UpdateQuantity)
	protectedMux.HandleFunc("DELETE /api/list/{id}", s.groceryH.Delete)

	authMiddleware := middleware.RequireAuth(s.tokens)
	outerMux.Handle("/api/list/", authMiddleware(protectedMux))

	// CORS sits inside logging so preflights still show up in the log.
	chain := middleware.CORS(s.corsOrigin)(outerMux)
	return middleware.RequestLogger(s.logger.With("component", "http"))(chain)
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"msg":"larder backend is running"}`))
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
