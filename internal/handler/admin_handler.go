package handler

import (
	"net/http"

	"go-todo-api/internal/model"
	"go-todo-api/internal/service"
)

// AdminHandler serves the cross-account views. The router guards it with
// the admin role.
type AdminHandler struct {
	todos *service.TodoService
	audit *service.AuditService
}

func NewAdminHandler(todos *service.TodoService, audit *service.AuditService) *AdminHandler {
	return &AdminHandler{todos: todos, audit: audit}
}

func (h *AdminHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.todos.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, todos, &model.Meta{Total: len(todos)})
}

func (h *AdminHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.todos.DeleteAny(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeNoContent(w)
}

func (h *AdminHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	entries, meta, err := h.audit.Recent(r.Context(), parseIntOrDefault(r.URL.Query().Get("limit"), 0))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, entries, &meta)
}
