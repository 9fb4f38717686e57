// todoserve is a small todo backend: users and todos CRUD behind JWT bearer
// authentication. This file is the composition root: configuration,
// database, providers, services and handlers are wired together here with
// explicit constructor injection, and nowhere else.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/user/todoserve-go/auth"
	"github.com/user/todoserve-go/config"
	"github.com/user/todoserve-go/db"
	"github.com/user/todoserve-go/hash"
	"github.com/user/todoserve-go/todos"
	"github.com/user/todoserve-go/users"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load .env in development; in production variables are set directly.
	if err := godotenv.Load(); err != nil {
		logger.Info(".env file not found, relying on process environment")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	pool, err := db.NewPool(cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.Database); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Crypto and token providers: immutable after construction.
	hasher, err := hash.New(hash.Method(cfg.Auth.HashMethod))
	if err != nil {
		logger.Error("failed to configure password hashing", "error", err)
		os.Exit(1)
	}
	tokenProvider := auth.NewTokenProvider(cfg.Auth)
	guard := auth.NewGuard(tokenProvider, logger)

	// Repositories, services and handlers.
	userRepo := users.NewPostgresRepository(pool)
	userService := users.NewService(userRepo, hasher, logger)
	userHandlers := users.NewHandlers(userService)

	authService := auth.NewService(userRepo, hasher, tokenProvider, logger)
	authHandlers := auth.NewHandlers(authService)

	todoRepo := todos.NewPostgresRepository(pool)
	todoService := todos.NewService(todoRepo, logger)
	todoHandlers := todos.NewHandlers(todoService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandlers.HandleLogin())
	})

	// Registration stays reachable without a token; everything else under
	// /users sits behind the guard.
	r.Route("/users", func(r chi.Router) {
		r.Post("/", userHandlers.HandleCreate())
		r.Group(func(r chi.Router) {
			r.Use(guard.RequireAuth)
			userHandlers.RegisterRoutes(r)
		})
	})

	r.Route("/todos", func(r chi.Router) {
		r.Use(guard.RequireAuth)
		todoHandlers.RegisterRoutes(r)
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
}
