package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	appValidator "github.com/amezghal/careergate/pkg/validator"
)

func TestBindAndValidate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	type form struct {
		Email string `json:"email" validate:"required,email"`
	}

	newCtx := func(body string) (*gin.Context, *httptest.ResponseRecorder) {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		return c, rec
	}

	t.Run("valid payload", func(t *testing.T) {
		c, _ := newCtx(`{"email":"maya@example.com"}`)
		var dest form
		require.True(t, bindAndValidate(c, &dest))
		require.Equal(t, "maya@example.com", dest.Email)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		c, rec := newCtx(`{"email":`)
		var dest form
		require.False(t, bindAndValidate(c, &dest))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("validation failure names the field", func(t *testing.T) {
		c, rec := newCtx(`{"email":"nope"}`)
		var dest form
		require.False(t, bindAndValidate(c, &dest))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "email must be a valid email address")
	})
}

func TestFormatValidationError(t *testing.T) {
	require.Equal(t, "invalid request payload", formatValidationError(nil))
	require.Equal(t, "invalid request payload", formatValidationError(errors.New("boom")))

	msg := formatValidationError(appValidator.ValidationErrors{
		{Field: "first_name", Tag: "required"},
		{Field: "password", Tag: "min", Param: "8"},
		{Field: "password_confirmation", Tag: "eqfield", Param: "Password"},
	})
	require.Contains(t, msg, "first name is required")
	require.Contains(t, msg, "password must be at least 8 characters")
	require.Contains(t, msg, "password confirmation must match password")
}
