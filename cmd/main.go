package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"library-api/db"
	"library-api/internal/auth"
	"library-api/internal/catalog"
	"library-api/internal/config"
	"library-api/internal/web"
	"library-api/middleware"
)

// Global loggers for different output streams
var (
	infoLogger  = log.New(os.Stdout, "", log.LstdFlags)
	errorLogger = log.New(os.Stderr, "", log.LstdFlags)
)

func main() {
	infoLogger.Printf("Starting library backend - Process ID: %d", os.Getpid())

	cfg, err := config.LoadConfig()
	if err != nil {
		errorLogger.Fatalf("Failed to load configuration: %v", err)
	}

	sqliteDB, err := db.ConnectToSQLite(cfg.SQLitePath)
	if err != nil {
		errorLogger.Fatalf("Failed to connect to SQLite: %v", err)
	}
	defer sqliteDB.Close()

	if err := db.InitializeSchema(sqliteDB); err != nil {
		errorLogger.Fatalf("Failed to initialize database schema: %v", err)
	}

	// Create repositories
	repoFactory := db.NewRepositoryFactory(sqliteDB, cfg.DatabaseName)
	userRepo := repoFactory.NewUserRepository()
	bookRepo := repoFactory.NewBookRepository()

	if err := db.SeedDefaultData(context.Background(), userRepo, bookRepo); err != nil {
		errorLogger.Fatalf("Failed to seed default data: %v", err)
	}

	// Create database manager for concurrent access control
	dbManager := db.NewDBManager()
	defer dbManager.Stop()

	// Initialize services
	tokenService := auth.NewTokenService(cfg)
	authService := auth.NewAuthService(userRepo, dbManager, tokenService)
	bookService := catalog.NewBookService(bookRepo, dbManager)

	// Initialize handlers and middleware
	authHandlers := auth.NewAuthHandlers(authService, tokenService)
	bookHandlers := catalog.NewBookHandlers(bookService)
	mw := middleware.NewMiddleware(tokenService)

	router := web.SetupRoutes(authHandlers, bookHandlers, mw)
	handler := middleware.LoggingMiddleware(middleware.SetupCORS()(router))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	go func() {
		infoLogger.Printf("Server is starting on port %s...", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errorLogger.Fatalf("Server ListenAndServe error: %v", err)
		}
	}()

	waitForShutdown(server)
}

func waitForShutdown(server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	sig := <-stop
	infoLogger.Printf("Received shutdown signal: %v", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	infoLogger.Println("Shutting down the server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		errorLogger.Printf("Server Shutdown error: %v", err)
		os.Exit(1)
	}
	infoLogger.Println("Server stopped")
}
