package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pantrybase/cookbook/internal/database"
	"github.com/pantrybase/cookbook/internal/middleware"
	"github.com/pantrybase/cookbook/internal/service"
)

// setupTestRouter builds a router backed by a throwaway SQLite database
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := filepath.Join(t.TempDir(), "cookbook_test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	router := gin.New()
	router.Use(middleware.ErrorHandler())

	recipeHandler := NewRecipeHandler(service.NewRecipeService(db), nil)
	ingredientHandler := NewIngredientHandler(service.NewIngredientService(db))
	RegisterRoutes(router, recipeHandler, ingredientHandler, nil)

	return router
}

// doJSON performs a request with an optional JSON body and returns the recorder
func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a response body into a generic map
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// dataOf returns the "data" object of a success envelope
func dataOf(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	body := decodeBody(t, w)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "expected data object, got %s", w.Body.String())
	return data
}

// errorOf returns the "error" object of an error envelope
func errorOf(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	body := decodeBody(t, w)
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected error object, got %s", w.Body.String())
	return errObj
}

// createTestIngredient inserts an ingredient through the API and returns its ID
func createTestIngredient(t *testing.T, router *gin.Engine, name, unit string) int64 {
	t.Helper()
	payload := map[string]any{"name": name}
	if unit != "" {
		payload["unit"] = unit
	}
	w := doJSON(t, router, http.MethodPost, "/api/ingredients", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return int64(dataOf(t, w)["id"].(float64))
}

// createTestRecipe inserts a recipe through the API and returns its ID
func createTestRecipe(t *testing.T, router *gin.Engine, payload map[string]any) int64 {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/recipes", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return int64(dataOf(t, w)["id"].(float64))
}
