// Package models defines the persisted entities: recipes, the ingredient
// catalog, and the link rows joining them.
package models

import "time"

// Recipe is a stored recipe. Ingredient rows live in RecipeIngredient and
// are serialized separately with their resolved names and units.
type Recipe struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	Instructions string    `gorm:"type:text;not null" json:"instructions"`
	PrepTime     int       `gorm:"not null;default:0" json:"prep_time"`
	CookTime     int       `gorm:"not null;default:0" json:"cook_time"`
	Servings     int       `gorm:"not null;default:1" json:"servings"`
	ImageURL     string    `json:"image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Ingredients []RecipeIngredient `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Ingredient is one catalog entry. Names are unique case-insensitively;
// the uniqueness check lives in the service layer because collations differ
// between postgres and sqlite.
type Ingredient struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Unit      string    `gorm:"size:16;not null;default:piece" json:"unit"`
	CreatedAt time.Time `json:"created_at"`
}

// RecipeIngredient links a recipe to a catalog ingredient with a quantity.
// A recipe references an ingredient at most once.
type RecipeIngredient struct {
	ID           int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	RecipeID     int64   `gorm:"not null;index;uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID int64   `gorm:"not null;index;uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Quantity     float64 `gorm:"not null;default:0" json:"quantity"`

	Ingredient Ingredient `gorm:"foreignKey:IngredientID" json:"-"`
}
