package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-todo-api/internal/auth"
	"go-todo-api/internal/config"
	"go-todo-api/internal/handler"
	"go-todo-api/internal/middleware"
	"go-todo-api/internal/router"
	"go-todo-api/internal/service"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	server  *http.Server
	backend *backend
}

func New(cfg *config.Config) (*App, error) {
	store, err := openBackend(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("database ready", "driver", cfg.DBDriver)

	appRouter, err := buildRouter(cfg, store)
	if err != nil {
		_ = store.close()
		return nil, err
	}

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{server: server, backend: store}, nil
}

func buildRouter(cfg *config.Config, store *backend) (http.Handler, error) {
	if err := auth.ValidateSecret(cfg.JWTSecret); err != nil {
		return nil, fmt.Errorf("invalid JWT_SECRET: %w", err)
	}

	hasher, err := auth.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize password hasher: %w", err)
	}

	tokens, err := auth.NewTokenAuthenticator([]byte(cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token authenticator: %w", err)
	}

	auditService := service.NewAuditService(store.audit)
	authService, err := service.NewAuthService(store.users, hasher, tokens, auditService, cfg.JWTAccessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}
	todoService := service.NewTodoService(store.todos)
	bookService := service.NewBookService(cfg.SeedBooks)

	return router.New(cfg, middleware.NewAuthMiddleware(authService), router.Handlers{
		Auth:   handler.NewAuthHandler(authService),
		User:   handler.NewUserHandler(authService),
		Todo:   handler.NewTodoHandler(todoService),
		Admin:  handler.NewAdminHandler(todoService, auditService),
		Book:   handler.NewBookHandler(bookService),
		Shelf:  handler.NewBookHandler(service.NewShelfService(cfg.SeedBooks)),
		Health: handler.NewHealthHandler(store.health),
	}), nil
}

// Run serves until SIGINT/SIGTERM, then drains in-flight requests before
// closing the database.
func (a *App) Run() error {
	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-serveErr:
		_ = a.backend.close()
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		slog.Info("shutdown requested", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	shutdownErr := a.server.Shutdown(ctx)

	if err := a.backend.close(); err != nil {
		slog.Error("failed to close database", "error", err)
	}

	if shutdownErr != nil {
		return fmt.Errorf("graceful shutdown failed: %w", shutdownErr)
	}

	slog.Info("server stopped")
	return nil
}
