package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/pantrybase/cookbook/internal/apperr"
	"github.com/pantrybase/cookbook/internal/models"
	"github.com/pantrybase/cookbook/internal/validate"
)

// IngredientService handles the ingredient catalog
type IngredientService struct {
	db *gorm.DB
}

// NewIngredientService creates a new IngredientService instance
func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

// ListIngredients returns ingredients in alphabetical order, narrowed by a
// case-insensitive substring match when search is non-empty.
func (s *IngredientService) ListIngredients(ctx context.Context, search string) ([]models.Ingredient, error) {
	query := s.db.WithContext(ctx).Model(&models.Ingredient{})
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var ingredients []models.Ingredient
	if err := query.Order("name ASC").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	if ingredients == nil {
		ingredients = []models.Ingredient{}
	}
	return ingredients, nil
}

// GetIngredient retrieves one ingredient by ID
func (s *IngredientService) GetIngredient(ctx context.Context, id int64) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("ingredient")
		}
		return nil, fmt.Errorf("failed to load ingredient: %w", err)
	}
	return &ingredient, nil
}

// CreateIngredient validates and persists a new ingredient. Name collisions
// are detected case-insensitively.
func (s *IngredientService) CreateIngredient(ctx context.Context, name string, unit *string) (*models.Ingredient, error) {
	name, normalizedUnit, errs := validate.Ingredient(name, unit)
	if len(errs) > 0 {
		return nil, apperr.Validation(errs...)
	}

	taken, err := s.nameTaken(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("an ingredient with this name already exists")
	}

	ingredient := models.Ingredient{Name: name, Unit: normalizedUnit}
	if err := s.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		return nil, fmt.Errorf("failed to create ingredient: %w", err)
	}
	return &ingredient, nil
}

// UpdateIngredient applies a partial update with the same rules as create,
// excluding the record itself from the uniqueness check.
func (s *IngredientService) UpdateIngredient(ctx context.Context, id int64, name *string, unit *string) (*models.Ingredient, error) {
	ingredient, err := s.GetIngredient(ctx, id)
	if err != nil {
		return nil, err
	}

	candidate := ingredient.Name
	if name != nil {
		candidate = *name
	}
	trimmed, normalizedUnit, errs := validate.Ingredient(candidate, unit)
	if len(errs) > 0 {
		return nil, apperr.Validation(errs...)
	}

	if name != nil {
		taken, err := s.nameTaken(ctx, trimmed, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("an ingredient with this name already exists")
		}
		ingredient.Name = trimmed
	}
	if unit != nil {
		ingredient.Unit = normalizedUnit
	}

	if err := s.db.WithContext(ctx).Save(ingredient).Error; err != nil {
		return nil, fmt.Errorf("failed to update ingredient: %w", err)
	}
	return ingredient, nil
}

// DeleteIngredient removes an unreferenced ingredient. An ingredient still
// linked to any recipe is a conflict, not a silent no-op.
func (s *IngredientService) DeleteIngredient(ctx context.Context, id int64) error {
	if _, err := s.GetIngredient(ctx, id); err != nil {
		return err
	}

	var refs int64
	if err := s.db.WithContext(ctx).Model(&models.RecipeIngredient{}).
		Where("ingredient_id = ?", id).Count(&refs).Error; err != nil {
		return fmt.Errorf("failed to count ingredient references: %w", err)
	}
	if refs > 0 {
		return apperr.Conflict("ingredient is referenced by one or more recipes")
	}

	if err := s.db.WithContext(ctx).Delete(&models.Ingredient{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete ingredient: %w", err)
	}
	return nil
}

// nameTaken reports whether another ingredient already uses name,
// compared case-insensitively. excludeID skips the record being updated.
func (s *IngredientService) nameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	query := s.db.WithContext(ctx).Model(&models.Ingredient{}).
		Where("LOWER(name) = ?", strings.ToLower(name))
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check ingredient name: %w", err)
	}
	return count > 0, nil
}
