package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-todo-api/internal/config"
	"go-todo-api/internal/handler"
	"go-todo-api/internal/middleware"
	"go-todo-api/internal/model"
)

type Handlers struct {
	Auth   *handler.AuthHandler
	User   *handler.UserHandler
	Todo   *handler.TodoHandler
	Admin  *handler.AdminHandler
	Book   *handler.BookHandler
	Shelf  *handler.BookHandler
	Health *handler.HealthHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.NewClientIPResolver(cfg.TrustedProxies).Handler)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", h.Health.Check)

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/", h.Auth.Register)
			auth.Post("/token", h.Auth.Token)
		})

		api.Route("/books", func(books chi.Router) {
			books.Get("/", h.Book.List)
			books.Post("/", h.Book.Create)
			books.Put("/", h.Book.Update)
			books.Get("/{id}", h.Book.Get)
			books.Delete("/{id}", h.Book.Delete)
		})

		api.Route("/shelf", func(shelf chi.Router) {
			shelf.Get("/", h.Shelf.List)
			shelf.Post("/", h.Shelf.Create)
			shelf.Put("/", h.Shelf.UpdateByTitle)
			shelf.Get("/fetch/{author}", h.Shelf.ListByAuthor)
			shelf.Get("/{title}", h.Shelf.GetByTitle)
			shelf.Delete("/{title}", h.Shelf.DeleteByTitle)
		})

		api.Group(func(protected chi.Router) {
			protected.Use(authMiddleware.RequireAuth)

			protected.Get("/users/me", h.User.Me)
			protected.Put("/users/password", h.User.ChangePassword)

			protected.Route("/todos", func(todos chi.Router) {
				todos.Get("/", h.Todo.List)
				todos.Post("/", h.Todo.Create)
				todos.Get("/{id}", h.Todo.Get)
				todos.Put("/{id}", h.Todo.Update)
				todos.Delete("/{id}", h.Todo.Delete)
			})

			protected.Route("/admin", func(admin chi.Router) {
				admin.Use(authMiddleware.RequireRoles(model.RoleAdmin))

				admin.Get("/todos", h.Admin.ListTodos)
				admin.Delete("/todos/{id}", h.Admin.DeleteTodo)
				admin.Get("/audit", h.Admin.ListAudit)
			})
		})
	})

	return r
}
