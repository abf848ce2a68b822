// Package validate holds the pure field-constraint rules for recipe and
// ingredient payloads. Each function returns the full list of violations so
// the API can report every failing field at once.
package validate

import (
	"strings"

	"github.com/pantrybase/cookbook/internal/apperr"
)

// MaxNameLength bounds recipe and ingredient names
const MaxNameLength = 100

// DefaultUnit is assumed when an ingredient payload omits the unit
const DefaultUnit = "piece"

// Units is the fixed measurement unit set
var Units = []string{"g", "ml", "piece", "tbsp", "tsp", "cup", "pinch"}

// ValidUnit reports whether u is one of the enumerated units
func ValidUnit(u string) bool {
	for _, v := range Units {
		if u == v {
			return true
		}
	}
	return false
}

// RecipeFields is the subset of a recipe payload subject to field rules.
// Pointer fields distinguish absent from zero for partial updates.
type RecipeFields struct {
	Name         *string
	Instructions *string
	PrepTime     *int
	CookTime     *int
	Servings     *int
}

// Recipe checks recipe field constraints. require controls whether name and
// instructions must be present (create) or only validated when supplied
// (partial update).
func Recipe(f RecipeFields, require bool) []apperr.FieldError {
	var errs []apperr.FieldError

	if f.Name != nil {
		if strings.TrimSpace(*f.Name) == "" {
			errs = append(errs, apperr.FieldError{Field: "name", Message: "name is required"})
		} else if len(strings.TrimSpace(*f.Name)) > MaxNameLength {
			errs = append(errs, apperr.FieldError{Field: "name", Message: "name must be at most 100 characters"})
		}
	} else if require {
		errs = append(errs, apperr.FieldError{Field: "name", Message: "name is required"})
	}

	if f.Instructions != nil {
		if strings.TrimSpace(*f.Instructions) == "" {
			errs = append(errs, apperr.FieldError{Field: "instructions", Message: "instructions are required"})
		}
	} else if require {
		errs = append(errs, apperr.FieldError{Field: "instructions", Message: "instructions are required"})
	}

	if f.PrepTime != nil && *f.PrepTime < 0 {
		errs = append(errs, apperr.FieldError{Field: "prep_time", Message: "prep_time must be 0 or greater"})
	}
	if f.CookTime != nil && *f.CookTime < 0 {
		errs = append(errs, apperr.FieldError{Field: "cook_time", Message: "cook_time must be 0 or greater"})
	}
	if f.Servings != nil && *f.Servings < 1 {
		errs = append(errs, apperr.FieldError{Field: "servings", Message: "servings must be 1 or greater"})
	}

	return errs
}

// Ingredient checks ingredient name and unit constraints. The returned name
// and unit are normalized (trimmed, defaulted).
func Ingredient(name string, unit *string) (string, string, []apperr.FieldError) {
	var errs []apperr.FieldError

	name = strings.TrimSpace(name)
	if name == "" {
		errs = append(errs, apperr.FieldError{Field: "name", Message: "name is required"})
	} else if len(name) > MaxNameLength {
		errs = append(errs, apperr.FieldError{Field: "name", Message: "name must be at most 100 characters"})
	}

	normalized := DefaultUnit
	if unit != nil {
		normalized = strings.TrimSpace(*unit)
		if normalized == "" {
			normalized = DefaultUnit
		} else if !ValidUnit(normalized) {
			errs = append(errs, apperr.FieldError{Field: "unit", Message: "unit must be one of: " + strings.Join(Units, ", ")})
		}
	}

	return name, normalized, errs
}

// IngredientRow is one entry of a recipe's ingredient list payload
type IngredientRow struct {
	IngredientID int64   `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
}

// FilterIngredientRows keeps rows with a positive ingredient reference and a
// non-negative quantity; malformed rows are dropped, not errors.
func FilterIngredientRows(rows []IngredientRow) []IngredientRow {
	kept := make([]IngredientRow, 0, len(rows))
	for _, row := range rows {
		if row.IngredientID <= 0 || row.Quantity < 0 {
			continue
		}
		kept = append(kept, row)
	}
	return kept
}
