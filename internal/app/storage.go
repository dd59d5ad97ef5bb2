package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go-todo-api/internal/config"
	"go-todo-api/internal/database"
	"go-todo-api/internal/repository"
	"go-todo-api/internal/service"
	"go-todo-api/internal/sqlite"
)

// backend is one storage engine seen through the service interfaces.
type backend struct {
	users  service.UserStore
	todos  service.TodoStore
	audit  service.AuditStore
	health interface {
		Health(ctx context.Context) error
	}
	close func() error
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		slog.Info("connecting to PostgreSQL")
		db, err := database.New(ctx, cfg.DatabaseURL, database.Options{
			MaxConns:       cfg.DBMaxConns,
			MinConns:       cfg.DBMinConns,
			ConnectRetries: 5,
			RetryDelay:     2 * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		if err := db.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to ensure database schema: %w", err)
		}

		return &backend{
			users:  repository.NewUserRepository(db.Pool),
			todos:  repository.NewTodoRepository(db.Pool),
			audit:  repository.NewAuditRepository(db.Pool),
			health: db,
			close:  db.Close,
		}, nil

	case config.DriverSQLite:
		slog.Info("opening SQLite database", "path", cfg.SQLitePath)
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}

		return &backend{
			users:  sqlite.NewUserRepository(db),
			todos:  sqlite.NewTodoRepository(db),
			audit:  sqlite.NewAuditRepository(db),
			health: db,
			close:  db.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}
