package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"larder/internal/catalog"
	"larder/internal/database"
	"larder/internal/logging"
	"larder/internal/server"
	"larder/internal/token"
)

func main() {
	godotenv.Load()

	logger := logging.Setup(os.Getenv("LARDER_LOG_LEVEL"))

	port := os.Getenv("LARDER_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("LARDER_DB_PATH")
	if dbPath == "" {
		dbPath = "larder.db"
	}

	secret := os.Getenv("LARDER_SECRET_KEY")
	if secret == "" {
		logger.Warn("LARDER_SECRET_KEY not set, using development fallback")
		secret = "fallback-dev-secret"
	}

	corsOrigin := os.Getenv("LARDER_CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "http://localhost:5173"
	}

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	tokens := token.NewService([]byte(secret))
	catalogClient := catalog.NewClient(os.Getenv("LARDER_CATALOG_URL"))

	srv := server.New(db, tokens, catalogClient, corsOrigin, logger)

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("Larder running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
