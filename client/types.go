package client

import "time"

// Meta carries list metadata from the data envelope
type Meta struct {
	Total  int    `json:"total"`
	Search string `json:"search,omitempty"`
}

// RecipeSummary is one row of the recipe list
type RecipeSummary struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Instructions    string    `json:"instructions"`
	PrepTime        int       `json:"prep_time"`
	CookTime        int       `json:"cook_time"`
	Servings        int       `json:"servings"`
	ImageURL        string    `json:"image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	IngredientCount int64     `json:"ingredient_count"`
}

// RecipeIngredient is a resolved ingredient row of a recipe
type RecipeIngredient struct {
	IngredientID int64   `json:"ingredient_id"`
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	Quantity     float64 `json:"quantity"`
}

// Recipe is a full recipe record with its ingredient rows
type Recipe struct {
	ID           int64              `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Instructions string             `json:"instructions"`
	PrepTime     int                `json:"prep_time"`
	CookTime     int                `json:"cook_time"`
	Servings     int                `json:"servings"`
	ImageURL     string             `json:"image_url,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	Ingredients  []RecipeIngredient `json:"ingredients"`
}

// Ingredient is one catalog entry
type Ingredient struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"created_at"`
}

// ScaledIngredient is one ingredient adjusted to a target serving count
type ScaledIngredient struct {
	IngredientID   int64   `json:"ingredient_id"`
	Name           string  `json:"name"`
	Unit           string  `json:"unit"`
	UnitLabel      string  `json:"unit_label"`
	Quantity       float64 `json:"quantity"`
	ScaledQuantity float64 `json:"scaled_quantity"`
	Display        string  `json:"display"`
}

// ScaledRecipe is the scaling output for one recipe
type ScaledRecipe struct {
	RecipeID         int64              `json:"recipe_id"`
	OriginalServings int                `json:"original_servings"`
	Servings         int                `json:"servings"`
	Ingredients      []ScaledIngredient `json:"ingredients"`
}

// Health is the health endpoint response
type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// IngredientRow references an ingredient with a quantity in recipe payloads
type IngredientRow struct {
	IngredientID int64   `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
}

// CreateRecipeRequest is the create payload
type CreateRecipeRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Instructions string          `json:"instructions"`
	PrepTime     *int            `json:"prep_time,omitempty"`
	CookTime     *int            `json:"cook_time,omitempty"`
	Servings     *int            `json:"servings,omitempty"`
	Ingredients  []IngredientRow `json:"ingredients,omitempty"`
}

// UpdateRecipeRequest is the partial update payload
type UpdateRecipeRequest struct {
	Name         *string          `json:"name,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Instructions *string          `json:"instructions,omitempty"`
	PrepTime     *int             `json:"prep_time,omitempty"`
	CookTime     *int             `json:"cook_time,omitempty"`
	Servings     *int             `json:"servings,omitempty"`
	Ingredients  *[]IngredientRow `json:"ingredients,omitempty"`
}

// CreateIngredientRequest is the ingredient create payload
type CreateIngredientRequest struct {
	Name string  `json:"name"`
	Unit *string `json:"unit,omitempty"`
}

// UpdateIngredientRequest is the ingredient partial update payload
type UpdateIngredientRequest struct {
	Name *string `json:"name,omitempty"`
	Unit *string `json:"unit,omitempty"`
}
