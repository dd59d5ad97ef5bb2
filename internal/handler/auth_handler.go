package handler

import (
	"mime"
	"net/http"
	"strings"

	"go-todo-api/internal/model"
	"go-todo-api/internal/service"
	"go-todo-api/pkg/apierror"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload model.CreateUserRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.service.Register(r.Context(), payload, actorFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, user, nil)
}

// Token accepts either a JSON body or the form-encoded OAuth2 password grant.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	payload, err := readLoginRequest(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	if strings.TrimSpace(payload.Username) == "" || payload.Password == "" {
		writeError(w, apierror.BadRequest("username and password are required", ""))
		return
	}

	tokens, err := h.service.Login(r.Context(), payload.Username, payload.Password, actorFromRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, tokens, nil)
}

func readLoginRequest(w http.ResponseWriter, r *http.Request) (model.LoginRequest, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/x-www-form-urlencoded" && mediaType != "multipart/form-data" {
		var payload model.LoginRequest
		err := decodeJSON(w, r, &payload)
		return payload, err
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return model.LoginRequest{}, apierror.BadRequest("invalid form body", "")
	}

	if grant := r.PostForm.Get("grant_type"); grant != "" && grant != "password" {
		return model.LoginRequest{}, apierror.BadRequest("unsupported grant_type", "grant_type")
	}

	return model.LoginRequest{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}, nil
}
