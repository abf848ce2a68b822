package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrybase/cookbook/internal/apperr"
)

func perform(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected error envelope, got %s", w.Body.String())
	return errObj
}

func TestErrorHandlerRecoversPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/boom", func(c *gin.Context) {
		panic("unexpected")
	})

	w := perform(router, http.MethodGet, "/boom")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	errObj := decodeEnvelope(t, w)
	assert.Equal(t, "INTERNAL_ERROR", errObj["code"])
	assert.Equal(t, "internal server error", errObj["message"])
	// the panic value must not leak
	assert.NotContains(t, w.Body.String(), "unexpected")
}

func TestRespondErrorDomainError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/missing", func(c *gin.Context) {
		RespondError(c, apperr.NotFound("recipe"))
	})

	w := perform(router, http.MethodGet, "/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)

	errObj := decodeEnvelope(t, w)
	assert.Equal(t, "NOT_FOUND", errObj["code"])
	assert.Equal(t, "recipe not found", errObj["message"])
	_, hasDetails := errObj["details"]
	assert.False(t, hasDetails)
}

func TestRespondErrorValidationDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/invalid", func(c *gin.Context) {
		RespondError(c, apperr.Validation(
			apperr.FieldError{Field: "name", Message: "name is required"},
		))
	})

	w := perform(router, http.MethodGet, "/invalid")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	errObj := decodeEnvelope(t, w)
	assert.Equal(t, "VALIDATION_ERROR", errObj["code"])
	details := errObj["details"].([]any)
	require.Len(t, details, 1)
	assert.Equal(t, "name", details[0].(map[string]any)["field"])
}

func TestRespondErrorHidesUnknownErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/fault", func(c *gin.Context) {
		RespondError(c, errors.New("pq: connection reset"))
	})

	w := perform(router, http.MethodGet, "/fault")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	errObj := decodeEnvelope(t, w)
	assert.Equal(t, "INTERNAL_ERROR", errObj["code"])
	assert.Equal(t, "internal server error", errObj["message"])
	assert.NotContains(t, w.Body.String(), "pq:")
}
