package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIErrorFormatting(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "NOT_FOUND: todo not found (7)", NotFound("todo not found", "7").Error())
	assert.Equal(t, "UNAUTHORIZED: nope", Unauthorized("nope").Error())

	var nilErr *APIError
	assert.Equal(t, "", nilErr.Error())
}

func TestAPIErrorSurvivesWrapping(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("create todo: %w", BadRequest("title too short", "title"))

	var apiErr *APIError
	require.True(t, errors.As(wrapped, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.HTTPStatus)
	assert.Equal(t, "title", apiErr.Details)
	assert.Equal(t, http.StatusForbidden, Forbidden("admins only").HTTPStatus)
	assert.Equal(t, http.StatusConflict, Conflict("taken", "alice").HTTPStatus)
}
