package handler

import (
	"net/http"

	"go-todo-api/internal/model"
	"go-todo-api/internal/service"
	"go-todo-api/pkg/apierror"
)

type TodoHandler struct {
	service *service.TodoService
}

func NewTodoHandler(service *service.TodoService) *TodoHandler {
	return &TodoHandler{service: service}
}

func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(r)
	if !ok {
		writeError(w, apierror.Unauthorized("Could not validate credentials"))
		return
	}

	todos, err := h.service.List(r.Context(), identity.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, todos, &model.Meta{Total: len(todos)})
}

func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(r)
	if !ok {
		writeError(w, apierror.Unauthorized("Could not validate credentials"))
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	todo, err := h.service.Get(r.Context(), id, identity.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, todo, nil)
}

func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(r)
	if !ok {
		writeError(w, apierror.Unauthorized("Could not validate credentials"))
		return
	}

	var payload model.TodoRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	todo, err := h.service.Create(r.Context(), identity.ID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, todo, nil)
}

func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(r)
	if !ok {
		writeError(w, apierror.Unauthorized("Could not validate credentials"))
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.TodoRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Update(r.Context(), id, identity.ID, payload); err != nil {
		writeError(w, err)
		return
	}

	writeNoContent(w)
}

func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(r)
	if !ok {
		writeError(w, apierror.Unauthorized("Could not validate credentials"))
		return
	}

	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), id, identity.ID); err != nil {
		writeError(w, err)
		return
	}

	writeNoContent(w)
}
