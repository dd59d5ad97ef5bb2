package middleware

import (
	"encoding/json"
	"net/http"

	"go-todo-api/internal/model"
)

func errorResponse(code string, message string) model.APIResponse {
	return model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    code,
			Message: message,
		},
	}
}

// writeJSONError renders the same envelope as the handlers for failures that
// never reach a handler.
func writeJSONError(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse(code, message))
}
