package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/pantrybase/cookbook/internal/apperr"
	"github.com/pantrybase/cookbook/internal/models"
	"github.com/pantrybase/cookbook/internal/scale"
	"github.com/pantrybase/cookbook/internal/validate"
)

// RecipeService handles recipe operations
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// RecipeSummary is a recipe list row with its ingredient count
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

// IngredientDetail is a resolved recipe-ingredient row
type IngredientDetail struct {
	IngredientID int64   `json:"ingredient_id"`
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	Quantity     float64 `json:"quantity"`
}

// CreateRecipeParams carries a create payload past JSON binding
type CreateRecipeParams struct {
	Name         string
	Description  string
	Instructions string
	PrepTime     *int
	CookTime     *int
	Servings     *int
	Ingredients  []validate.IngredientRow
}

// UpdateRecipeParams carries a partial update; nil means field untouched.
// A non-nil Ingredients replaces the full ingredient set.
type UpdateRecipeParams struct {
	Name         *string
	Description  *string
	Instructions *string
	PrepTime     *int
	CookTime     *int
	Servings     *int
	Ingredients  *[]validate.IngredientRow
}

// ListRecipes returns summaries ordered by creation time descending.
// A non-empty search narrows by case-insensitive name/description match.
func (s *RecipeService) ListRecipes(ctx context.Context, search string) ([]RecipeSummary, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Select("recipes.*, (SELECT COUNT(*) FROM recipe_ingredients WHERE recipe_ingredients.recipe_id = recipes.id) AS ingredient_count")

	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var summaries []RecipeSummary
	if err := query.Order("created_at DESC, id DESC").Scan(&summaries).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	if summaries == nil {
		summaries = []RecipeSummary{}
	}
	return summaries, nil
}

// GetRecipe retrieves a recipe and its resolved ingredient rows
func (s *RecipeService) GetRecipe(ctx context.Context, id int64) (*models.Recipe, []IngredientDetail, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.NotFound("recipe")
		}
		return nil, nil, fmt.Errorf("failed to load recipe: %w", err)
	}

	details, err := s.ingredientDetails(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return &recipe, details, nil
}

func (s *RecipeService) ingredientDetails(ctx context.Context, recipeID int64) ([]IngredientDetail, error) {
	var details []IngredientDetail
	err := s.db.WithContext(ctx).Model(&models.RecipeIngredient{}).
		Select("recipe_ingredients.ingredient_id, ingredients.name, ingredients.unit, recipe_ingredients.quantity").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("recipe_ingredients.recipe_id = ?", recipeID).
		Order("ingredients.name ASC").
		Scan(&details).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe ingredients: %w", err)
	}
	if details == nil {
		details = []IngredientDetail{}
	}
	return details, nil
}

// CreateRecipe validates and persists a new recipe with its ingredient set
func (s *RecipeService) CreateRecipe(ctx context.Context, p CreateRecipeParams) (*models.Recipe, []IngredientDetail, error) {
	fields := validate.RecipeFields{
		Name:         &p.Name,
		Instructions: &p.Instructions,
		PrepTime:     p.PrepTime,
		CookTime:     p.CookTime,
		Servings:     p.Servings,
	}
	if errs := validate.Recipe(fields, true); len(errs) > 0 {
		return nil, nil, apperr.Validation(errs...)
	}

	recipe := models.Recipe{
		Name:         strings.TrimSpace(p.Name),
		Description:  strings.TrimSpace(p.Description),
		Instructions: strings.TrimSpace(p.Instructions),
		Servings:     1,
	}
	if p.PrepTime != nil {
		recipe.PrepTime = *p.PrepTime
	}
	if p.CookTime != nil {
		recipe.CookTime = *p.CookTime
	}
	if p.Servings != nil {
		recipe.Servings = *p.Servings
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}
		return s.replaceIngredients(tx, recipe.ID, p.Ingredients)
	})
	if err != nil {
		return nil, nil, err
	}

	return s.GetRecipe(ctx, recipe.ID)
}

// UpdateRecipe applies a partial update. When an ingredient list is supplied
// it replaces the full set atomically.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id int64, p UpdateRecipeParams) (*models.Recipe, []IngredientDetail, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.NotFound("recipe")
		}
		return nil, nil, fmt.Errorf("failed to load recipe: %w", err)
	}

	fields := validate.RecipeFields{
		Name:         p.Name,
		Instructions: p.Instructions,
		PrepTime:     p.PrepTime,
		CookTime:     p.CookTime,
		Servings:     p.Servings,
	}
	if errs := validate.Recipe(fields, false); len(errs) > 0 {
		return nil, nil, apperr.Validation(errs...)
	}

	updates := map[string]interface{}{}
	if p.Name != nil {
		updates["name"] = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		updates["description"] = strings.TrimSpace(*p.Description)
	}
	if p.Instructions != nil {
		updates["instructions"] = strings.TrimSpace(*p.Instructions)
	}
	if p.PrepTime != nil {
		updates["prep_time"] = *p.PrepTime
	}
	if p.CookTime != nil {
		updates["cook_time"] = *p.CookTime
	}
	if p.Servings != nil {
		updates["servings"] = *p.Servings
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update recipe: %w", err)
			}
		}
		if p.Ingredients != nil {
			if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
				return fmt.Errorf("failed to clear recipe ingredients: %w", err)
			}
			return s.replaceIngredients(tx, id, *p.Ingredients)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return s.GetRecipe(ctx, id)
}

// replaceIngredients inserts the filtered, resolvable rows for a recipe.
// Rows with a malformed reference or an unknown ingredient are dropped.
func (s *RecipeService) replaceIngredients(tx *gorm.DB, recipeID int64, rows []validate.IngredientRow) error {
	kept := validate.FilterIngredientRows(rows)
	if len(kept) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(kept))
	for _, row := range kept {
		ids = append(ids, row.IngredientID)
	}

	var existing []int64
	if err := tx.Model(&models.Ingredient{}).Where("id IN ?", ids).Pluck("id", &existing).Error; err != nil {
		return fmt.Errorf("failed to resolve ingredient references: %w", err)
	}
	known := make(map[int64]bool, len(existing))
	for _, id := range existing {
		known[id] = true
	}

	links := make([]models.RecipeIngredient, 0, len(kept))
	seen := make(map[int64]bool, len(kept))
	for _, row := range kept {
		if !known[row.IngredientID] || seen[row.IngredientID] {
			continue
		}
		seen[row.IngredientID] = true
		links = append(links, models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: row.IngredientID,
			Quantity:     row.Quantity,
		})
	}
	if len(links) == 0 {
		return nil
	}
	if err := tx.Create(&links).Error; err != nil {
		return fmt.Errorf("failed to link recipe ingredients: %w", err)
	}
	return nil
}

// DeleteRecipe removes a recipe and its ingredient links
func (s *RecipeService) DeleteRecipe(ctx context.Context, id int64) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("recipe")
		}
		return fmt.Errorf("failed to load recipe: %w", err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return fmt.Errorf("failed to delete recipe ingredients: %w", err)
		}
		if err := tx.Delete(&models.Recipe{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}
		return nil
	})
}

// ScaledIngredient is one ingredient row adjusted to a target serving count
type ScaledIngredient struct {
	IngredientID   int64   `json:"ingredient_id"`
	Name           string  `json:"name"`
	Unit           string  `json:"unit"`
	UnitLabel      string  `json:"unit_label"`
	Quantity       float64 `json:"quantity"`
	ScaledQuantity float64 `json:"scaled_quantity"`
	Display        string  `json:"display"`
}

// ScaledRecipe is the scaling engine output for one recipe
type ScaledRecipe struct {
	RecipeID         int64              `json:"recipe_id"`
	OriginalServings int                `json:"original_servings"`
	Servings         int                `json:"servings"`
	Ingredients      []ScaledIngredient `json:"ingredients"`
}

// ScaleRecipe computes adjusted quantities for the target serving count.
// Targets below 1 clamp to 1; there is no upper bound.
func (s *RecipeService) ScaleRecipe(ctx context.Context, id int64, targetServings int) (*ScaledRecipe, error) {
	recipe, details, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}

	input := make([]scale.Ingredient, 0, len(details))
	for _, d := range details {
		input = append(input, scale.Ingredient{
			ID:       d.IngredientID,
			Name:     d.Name,
			Unit:     d.Unit,
			Quantity: d.Quantity,
		})
	}

	target := scale.ClampServings(targetServings)
	scaled := scale.Apply(input, recipe.Servings, target)

	out := &ScaledRecipe{
		RecipeID:         recipe.ID,
		OriginalServings: recipe.Servings,
		Servings:         target,
		Ingredients:      make([]ScaledIngredient, 0, len(scaled)),
	}
	for _, row := range scaled {
		out.Ingredients = append(out.Ingredients, ScaledIngredient{
			IngredientID:   row.ID,
			Name:           row.Name,
			Unit:           row.Unit,
			UnitLabel:      scale.UnitLabel(row.Unit),
			Quantity:       row.Quantity,
			ScaledQuantity: row.ScaledQuantity,
			Display:        row.Display,
		})
	}
	return out, nil
}

// SetRecipeImage persists the stored image URL for a recipe
func (s *RecipeService) SetRecipeImage(ctx context.Context, id int64, imageURL string) (*models.Recipe, []IngredientDetail, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.NotFound("recipe")
		}
		return nil, nil, fmt.Errorf("failed to load recipe: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(&recipe).Update("image_url", imageURL).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to store image url: %w", err)
	}
	return s.GetRecipe(ctx, id)
}
