package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-todo-api/internal/model"
	"go-todo-api/internal/service"
)

func newBookRouter() http.Handler {
	h := NewBookHandler(service.NewBookService(true))

	r := chi.NewRouter()
	r.Get("/books", h.List)
	r.Post("/books", h.Create)
	r.Put("/books", h.Update)
	r.Get("/books/{id}", h.Get)
	r.Delete("/books/{id}", h.Delete)
	return r
}

func serveJSON(t *testing.T, h http.Handler, method string, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, &buf))
	return rec
}

func decodeBooks(t *testing.T, rec *httptest.ResponseRecorder) []model.Book {
	t.Helper()

	var resp struct {
		Data []model.Book `json:"data"`
		Meta model.Meta   `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, len(resp.Data), resp.Meta.Total)
	return resp.Data
}

func TestBookHandler_List(t *testing.T) {
	h := newBookRouter()

	cases := []struct {
		query  string
		status int
		count  int
	}{
		{query: "", status: http.StatusOK, count: 6},
		{query: "?rating=5", status: http.StatusOK, count: 3},
		{query: "?published_date=2026", status: http.StatusOK, count: 1},
		{query: "?author=author%202", status: http.StatusOK, count: 1},
		{query: "?rating=0", status: http.StatusOK, count: 6},
		{query: "?rating=7", status: http.StatusBadRequest},
		{query: "?rating=five", status: http.StatusBadRequest},
		{query: "?published_date=2031", status: http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			rec := serveJSON(t, h, http.MethodGet, "/books"+tc.query, nil)
			require.Equal(t, tc.status, rec.Code, rec.Body.String())
			if tc.status == http.StatusOK {
				assert.Len(t, decodeBooks(t, rec), tc.count)
			}
		})
	}
}

func TestBookHandler_Lifecycle(t *testing.T) {
	h := newBookRouter()

	rec := serveJSON(t, h, http.MethodPost, "/books", model.BookRequest{
		Title: "A new book", Author: "codingwithevan", Description: "A new description of a book", Rating: 4, PublishedDate: 2025,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = serveJSON(t, h, http.MethodPut, "/books", model.BookRequest{
		ID: 7, Title: "An edited book", Author: "codingwithevan", Description: "Edited", Rating: 3, PublishedDate: 2025,
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = serveJSON(t, h, http.MethodGet, "/books/7", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "An edited book")

	rec = serveJSON(t, h, http.MethodPut, "/books", model.BookRequest{
		ID: 70, Title: "Nobody home", Author: "x", Description: "x", Rating: 3, PublishedDate: 2025,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serveJSON(t, h, http.MethodPost, "/books", model.BookRequest{Title: "ab", Author: "x", Description: "x", Rating: 3})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, http.StatusNoContent, serveJSON(t, h, http.MethodDelete, "/books/7", nil).Code)
	assert.Equal(t, http.StatusNotFound, serveJSON(t, h, http.MethodDelete, "/books/7", nil).Code)
	assert.Equal(t, http.StatusBadRequest, serveJSON(t, h, http.MethodGet, "/books/zero", nil).Code)
}

func newShelfRouter() http.Handler {
	h := NewBookHandler(service.NewShelfService(true))

	r := chi.NewRouter()
	r.Get("/shelf", h.List)
	r.Post("/shelf", h.Create)
	r.Put("/shelf", h.UpdateByTitle)
	r.Get("/shelf/fetch/{author}", h.ListByAuthor)
	r.Get("/shelf/{title}", h.GetByTitle)
	r.Delete("/shelf/{title}", h.DeleteByTitle)
	return r
}

func TestShelfHandler_Queries(t *testing.T) {
	h := newShelfRouter()

	cases := []struct {
		path  string
		count int
	}{
		{path: "/shelf", count: 6},
		{path: "/shelf?category=Math", count: 3},
		{path: "/shelf?author=author%20two&category=MATH", count: 1},
		{path: "/shelf/fetch/author%20two", count: 2},
		{path: "/shelf/fetch/Author%20Two?category=science", count: 1},
		{path: "/shelf/fetch/nobody", count: 0},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			rec := serveJSON(t, h, http.MethodGet, tc.path, nil)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Len(t, decodeBooks(t, rec), tc.count)
		})
	}
}

func TestShelfHandler_TitleLifecycle(t *testing.T) {
	h := newShelfRouter()

	rec := serveJSON(t, h, http.MethodGet, "/shelf/title%20four", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"category":"math"`)
	assert.NotContains(t, rec.Body.String(), "rating")

	assert.Equal(t, http.StatusNotFound, serveJSON(t, h, http.MethodGet, "/shelf/Title%20Nine", nil).Code)

	rec = serveJSON(t, h, http.MethodPut, "/shelf", model.BookRequest{Title: "TITLE FOUR", Author: "Author Four", Category: "history"})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = serveJSON(t, h, http.MethodGet, "/shelf?category=history", nil)
	assert.Len(t, decodeBooks(t, rec), 2)

	rec = serveJSON(t, h, http.MethodPut, "/shelf", model.BookRequest{Title: "Title Nine", Author: "x", Category: "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = serveJSON(t, h, http.MethodPost, "/shelf", model.BookRequest{Title: "Title Nine", Author: "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, http.StatusNoContent, serveJSON(t, h, http.MethodDelete, "/shelf/title%20four", nil).Code)
	assert.Equal(t, http.StatusNotFound, serveJSON(t, h, http.MethodDelete, "/shelf/Title%20Four", nil).Code)
}
