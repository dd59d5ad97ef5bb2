package handler

import (
	"net/http"
	"strings"

	"go-todo-api/internal/model"
	"go-todo-api/internal/service"
)

type BookHandler struct {
	service *service.BookService
}

func NewBookHandler(service *service.BookService) *BookHandler {
	return &BookHandler{service: service}
}

func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	rating, err := parseOptionalInt(r, "rating")
	if err != nil {
		writeError(w, err)
		return
	}

	published, err := parseOptionalInt(r, "published_date")
	if err != nil {
		writeError(w, err)
		return
	}

	books, err := h.service.List(model.BookFilter{
		Rating:        rating,
		PublishedDate: published,
		Author:        strings.TrimSpace(r.URL.Query().Get("author")),
		Category:      strings.TrimSpace(r.URL.Query().Get("category")),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, books, &model.Meta{Total: len(books)})
}

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	book, err := h.service.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, book, nil)
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.BookRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	book, err := h.service.Create(payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, book, nil)
}

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload model.BookRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Update(payload); err != nil {
		writeError(w, err)
		return
	}

	writeNoContent(w)
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Delete(id); err != nil {
		writeError(w, err)
		return
	}

	writeNoContent(w)
}

// ListByAuthor serves /fetch/{author}, optionally narrowed by ?category=.
func (h *BookHandler) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	author, err := parseTextParam(r, "author")
	if err != nil {
		writeError(w, err)
		return
	}

	books, err := h.service.List(model.BookFilter{
		Author:   author,
		Category: strings.TrimSpace(r.URL.Query().Get("category")),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, books, &model.Meta{Total: len(books)})
}

func (h *BookHandler) GetByTitle(w http.ResponseWriter, r *http.Request) {
	title, err := parseTextParam(r, "title")
	if err != nil {
		writeError(w, err)
		return
	}

	book, err := h.service.FindByTitle(title)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, book, nil)
}

// UpdateByTitle replaces the books named by the title in the body.
func (h *BookHandler) UpdateByTitle(w http.ResponseWriter, r *http.Request) {
	var payload model.BookRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.UpdateByTitle(payload); err != nil {
		writeError(w, err)
		return
	}

	writeNoContent(w)
}

func (h *BookHandler) DeleteByTitle(w http.ResponseWriter, r *http.Request) {
	title, err := parseTextParam(r, "title")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.DeleteByTitle(title); err != nil {
		writeError(w, err)
		return
	}

	writeNoContent(w)
}
