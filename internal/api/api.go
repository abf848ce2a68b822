package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pantrybase/cookbook/internal/middleware"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// RegisterRoutes registers all API routes. writeLimiter may be nil, which
// leaves write endpoints unthrottled.
func RegisterRoutes(router *gin.Engine, recipeHandler *RecipeHandler, ingredientHandler *IngredientHandler, writeLimiter *middleware.RateLimiter) {
	api := router.Group("/api")
	api.GET("/health", HealthCheck)

	limit := writeLimiter.Middleware()
	recipeHandler.RegisterRoutes(api, limit)
	ingredientHandler.RegisterRoutes(api, limit)
}
