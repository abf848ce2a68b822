package api

import (
	"github.com/pantrybase/cookbook/internal/models"
	"github.com/pantrybase/cookbook/internal/service"
	"github.com/pantrybase/cookbook/internal/validate"
)

// CreateRecipeRequest is the POST /api/recipes payload
type CreateRecipeRequest struct {
	Name         string                   `json:"name"`
	Description  string                   `json:"description"`
	Instructions string                   `json:"instructions"`
	PrepTime     *int                     `json:"prep_time"`
	CookTime     *int                     `json:"cook_time"`
	Servings     *int                     `json:"servings"`
	Ingredients  []validate.IngredientRow `json:"ingredients"`
}

// UpdateRecipeRequest is the PUT /api/recipes/:id payload. Absent fields are
// untouched; a present ingredients array replaces the full set.
type UpdateRecipeRequest struct {
	Name         *string                   `json:"name"`
	Description  *string                   `json:"description"`
	Instructions *string                   `json:"instructions"`
	PrepTime     *int                      `json:"prep_time"`
	CookTime     *int                      `json:"cook_time"`
	Servings     *int                      `json:"servings"`
	Ingredients  *[]validate.IngredientRow `json:"ingredients"`
}

// CreateIngredientRequest is the POST /api/ingredients payload
type CreateIngredientRequest struct {
	Name string  `json:"name"`
	Unit *string `json:"unit"`
}

// UpdateIngredientRequest is the PUT /api/ingredients/:id payload
type UpdateIngredientRequest struct {
	Name *string `json:"name"`
	Unit *string `json:"unit"`
}

// RecipeWithIngredients is a recipe detail response body
type RecipeWithIngredients struct {
	models.Recipe
	Ingredients []service.IngredientDetail `json:"ingredients"`
}
