package api

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pantrybase/cookbook/internal/apperr"
	"github.com/pantrybase/cookbook/internal/middleware"
	"github.com/pantrybase/cookbook/internal/service"
)

// RecipeHandler serves the /api/recipes endpoints
type RecipeHandler struct {
	recipes *service.RecipeService
	images  *service.ImageService
}

// NewRecipeHandler creates a new RecipeHandler. images may be nil when no
// object storage is configured, which disables the upload endpoint.
func NewRecipeHandler(recipes *service.RecipeService, images *service.ImageService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, images: images}
}

// RegisterRoutes wires the recipe endpoints; limit throttles writes
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, limit gin.HandlerFunc) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.GET("/:id/scaled", h.ScaleRecipe)
		recipes.POST("", limit, h.CreateRecipe)
		recipes.PUT("/:id", limit, h.UpdateRecipe)
		recipes.DELETE("/:id", limit, h.DeleteRecipe)
		if h.images != nil {
			recipes.POST("/:id/image", limit, h.UploadImage)
		}
	}
}

// ListRecipes returns all recipes newest-first with their ingredient counts
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	search := strings.TrimSpace(c.Query("search"))

	summaries, err := h.recipes.ListRecipes(c.Request.Context(), search)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	meta := gin.H{"total": len(summaries)}
	if search != "" {
		meta["search"] = search
	}
	c.JSON(http.StatusOK, gin.H{"data": summaries, "meta": meta})
}

// GetRecipe returns one recipe with its resolved ingredient rows
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	recipe, details, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": RecipeWithIngredients{Recipe: *recipe, Ingredients: details}})
}

// CreateRecipe validates and stores a new recipe
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondError(c, apperr.BadRequest("invalid JSON payload"))
		return
	}

	recipe, details, err := h.recipes.CreateRecipe(c.Request.Context(), service.CreateRecipeParams{
		Name:         req.Name,
		Description:  req.Description,
		Instructions: req.Instructions,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		Ingredients:  req.Ingredients,
	})
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": RecipeWithIngredients{Recipe: *recipe, Ingredients: details}})
}

// UpdateRecipe applies a partial update to a recipe
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondError(c, apperr.BadRequest("invalid JSON payload"))
		return
	}

	recipe, details, err := h.recipes.UpdateRecipe(c.Request.Context(), id, service.UpdateRecipeParams{
		Name:         req.Name,
		Description:  req.Description,
		Instructions: req.Instructions,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		Ingredients:  req.Ingredients,
	})
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": RecipeWithIngredients{Recipe: *recipe, Ingredients: details}})
}

// DeleteRecipe removes a recipe and cascades its ingredient links
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), id); err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ScaleRecipe returns ingredient quantities adjusted to a target serving
// count. Targets below 1 clamp to 1; there is no upper bound.
func (h *RecipeHandler) ScaleRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	servings, err := strconv.Atoi(c.Query("servings"))
	if err != nil {
		middleware.RespondError(c, apperr.BadRequest("servings must be an integer"))
		return
	}

	scaled, err := h.recipes.ScaleRecipe(c.Request.Context(), id, servings)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": scaled})
}

// UploadImage stores a recipe image and persists its URL
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		middleware.RespondError(c, apperr.BadRequest("image file is required"))
		return
	}
	if file.Size > service.MaxImageBytes {
		middleware.RespondError(c, apperr.BadRequest("image exceeds the 5 MiB limit"))
		return
	}

	src, err := file.Open()
	if err != nil {
		middleware.RespondError(c, apperr.BadRequest("image file could not be read"))
		return
	}
	defer func() { _ = src.Close() }()

	data, err := io.ReadAll(io.LimitReader(src, service.MaxImageBytes+1))
	if err != nil {
		middleware.RespondError(c, apperr.BadRequest("image file could not be read"))
		return
	}

	url, err := h.images.UploadRecipeImage(c.Request.Context(), id, data, http.DetectContentType(data))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	recipe, details, err := h.recipes.SetRecipeImage(c.Request.Context(), id, url)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": RecipeWithIngredients{Recipe: *recipe, Ingredients: details}})
}

// parseID reads the :id path parameter, responding 400 when it is not an
// integer.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.RespondError(c, apperr.BadRequest("id must be an integer"))
		return 0, false
	}
	return id, true
}
