package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrybase/cookbook/config"
	"github.com/pantrybase/cookbook/internal/database"
)

// newTestServer builds a server on a throwaway sqlite store, with neither
// redis nor S3 configured.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		ServerHost: "127.0.0.1",
		ServerPort: "0",
		SQLitePath: filepath.Join(t.TempDir(), "cookbook_test.db"),
	}

	db, err := database.New(cfg)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	srv := New(cfg, db)
	t.Cleanup(func() { _ = database.Close(db) })
	return srv
}

func TestServerHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestServerEndToEndRecipeFlow(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Router()

	post := func(path string, payload any) *httptest.ResponseRecorder {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := post("/api/ingredients", map[string]any{"name": "Flour", "unit": "g"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	ingredientID := created["data"].(map[string]any)["id"].(float64)

	w = post("/api/recipes", map[string]any{
		"name":         "Bread",
		"instructions": "Knead and bake.",
		"servings":     2,
		"ingredients": []map[string]any{
			{"ingredient_id": ingredientID, "quantity": 500},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var recipe map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipe))
	data := recipe["data"].(map[string]any)
	assert.Equal(t, "Bread", data["name"])
	assert.Len(t, data["ingredients"].([]any), 1)
}

func TestServerShutdown(t *testing.T) {
	srv := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, srv.Shutdown(ctx))
}
