//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-todo-api/internal/auth"
	"go-todo-api/internal/config"
	"go-todo-api/internal/database"
	"go-todo-api/internal/handler"
	"go-todo-api/internal/middleware"
	"go-todo-api/internal/repository"
	"go-todo-api/internal/router"
	"go-todo-api/internal/service"
)

const testSecret = "integration-secret-0123456789abcdef"

// newPostgresServer wires the full stack against TEST_DATABASE_URL and
// empties the tables first. The test is skipped when the variable is unset.
func newPostgresServer(t *testing.T) *httptest.Server {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.New(ctx, dsn, database.Options{MaxConns: 4, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.EnsureSchema(ctx))
	_, err = db.Pool.Exec(ctx, `TRUNCATE audit_entries, todos, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	hasher, err := auth.NewPasswordHasher(4)
	require.NoError(t, err)
	tokens, err := auth.NewTokenAuthenticator([]byte(testSecret))
	require.NoError(t, err)

	auditService := service.NewAuditService(repository.NewAuditRepository(db.Pool))
	authService, err := service.NewAuthService(repository.NewUserRepository(db.Pool), hasher, tokens, auditService, 20*time.Minute)
	require.NoError(t, err)
	todoService := service.NewTodoService(repository.NewTodoRepository(db.Pool))

	cfg := &config.Config{
		RequestTimeout:   10 * time.Second,
		JWTSecret:        testSecret,
		CORSOrigins:      []string{"*"},
		RateLimitRPM:     -1,
		AuthRateLimitRPM: -1,
	}

	h := router.New(cfg, middleware.NewAuthMiddleware(authService), router.Handlers{
		Auth:   handler.NewAuthHandler(authService),
		User:   handler.NewUserHandler(authService),
		Todo:   handler.NewTodoHandler(todoService),
		Admin:  handler.NewAdminHandler(todoService, auditService),
		Book:   handler.NewBookHandler(service.NewBookService(true)),
		Shelf:  handler.NewBookHandler(service.NewShelfService(true)),
		Health: handler.NewHealthHandler(db),
	})

	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	return server
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, server *httptest.Server, method string, path string, token string, body any) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}

	return resp.StatusCode, env
}
