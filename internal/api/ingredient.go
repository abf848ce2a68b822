package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pantrybase/cookbook/internal/apperr"
	"github.com/pantrybase/cookbook/internal/middleware"
	"github.com/pantrybase/cookbook/internal/service"
)

// IngredientHandler serves the /api/ingredients endpoints
type IngredientHandler struct {
	ingredients *service.IngredientService
}

// NewIngredientHandler creates a new IngredientHandler
func NewIngredientHandler(ingredients *service.IngredientService) *IngredientHandler {
	return &IngredientHandler{ingredients: ingredients}
}

// RegisterRoutes wires the ingredient endpoints; limit throttles writes
func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup, limit gin.HandlerFunc) {
	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("", h.ListIngredients)
		ingredients.GET("/:id", h.GetIngredient)
		ingredients.POST("", limit, h.CreateIngredient)
		ingredients.PUT("/:id", limit, h.UpdateIngredient)
		ingredients.DELETE("/:id", limit, h.DeleteIngredient)
	}
}

// ListIngredients returns the catalog alphabetically, optionally narrowed by
// a case-insensitive substring search.
func (h *IngredientHandler) ListIngredients(c *gin.Context) {
	search := strings.TrimSpace(c.Query("search"))

	ingredients, err := h.ingredients.ListIngredients(c.Request.Context(), search)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	meta := gin.H{"total": len(ingredients)}
	if search != "" {
		meta["search"] = search
	}
	c.JSON(http.StatusOK, gin.H{"data": ingredients, "meta": meta})
}

// GetIngredient returns one ingredient by ID
func (h *IngredientHandler) GetIngredient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ingredient, err := h.ingredients.GetIngredient(c.Request.Context(), id)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ingredient})
}

// CreateIngredient validates and stores a new ingredient
func (h *IngredientHandler) CreateIngredient(c *gin.Context) {
	var req CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondError(c, apperr.BadRequest("invalid JSON payload"))
		return
	}

	ingredient, err := h.ingredients.CreateIngredient(c.Request.Context(), req.Name, req.Unit)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": ingredient})
}

// UpdateIngredient applies a partial update to an ingredient
func (h *IngredientHandler) UpdateIngredient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondError(c, apperr.BadRequest("invalid JSON payload"))
		return
	}

	ingredient, err := h.ingredients.UpdateIngredient(c.Request.Context(), id, req.Name, req.Unit)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ingredient})
}

// DeleteIngredient removes an ingredient unless a recipe still references it
func (h *IngredientHandler) DeleteIngredient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.ingredients.DeleteIngredient(c.Request.Context(), id); err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
