package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pantrybase/cookbook/internal/api"
	"github.com/pantrybase/cookbook/internal/middleware"
)

// SetupRouter configures the application routes and shared middleware
func SetupRouter(
	recipeHandler *api.RecipeHandler,
	ingredientHandler *api.IngredientHandler,
	writeLimiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.New()

	router.Use(gin.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())

	api.RegisterRoutes(router, recipeHandler, ingredientHandler, writeLimiter)

	return router
}
