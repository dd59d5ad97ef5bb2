package handler

import (
	"net/http"

	"go-todo-api/internal/middleware"
	"go-todo-api/internal/model"
)

func actorFromRequest(r *http.Request) model.AuditActor {
	actor := model.AuditActor{IP: middleware.ClientIP(r)}

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		return actor
	}

	actor.UserID = identity.ID
	actor.Username = identity.Username

	return actor
}

func identityFromRequest(r *http.Request) (model.Identity, bool) {
	return middleware.IdentityFromContext(r.Context())
}
