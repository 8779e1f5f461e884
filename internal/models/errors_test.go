package models

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithError_InternalCauseNotLeaked(t *testing.T) {
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return RespondWithError(c, fiber.StatusInternalServerError,
			NewInternalError(errors.New(`pq: password authentication failed for user "uplift"`)))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "password authentication")

	var got ErrorResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "Internal server error", got.Error)
	assert.Equal(t, "INTERNAL_ERROR", got.Code)
	assert.Empty(t, got.Details)
}

func TestRespondWithError_AppErrorShape(t *testing.T) {
	app := fiber.New()
	app.Get("/missing", func(c *fiber.Ctx) error {
		return RespondWithError(c, fiber.StatusNotFound, NewNotFoundError("Petition", 9))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var got ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "Petition with ID 9 not found", got.Error)
	assert.Equal(t, "NOT_FOUND", got.Code)
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("broken pipe")
	appErr := NewInternalError(cause)
	assert.ErrorIs(t, appErr, cause)
}
