package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestRecipeCreateRequiresNameAndInstructions(t *testing.T) {
	errs := Recipe(RecipeFields{}, true)
	assert.Len(t, errs, 2)

	got := map[string]bool{}
	for _, e := range errs {
		got[e.Field] = true
	}
	assert.True(t, got["name"])
	assert.True(t, got["instructions"])
}

func TestRecipeBlankNameRejected(t *testing.T) {
	errs := Recipe(RecipeFields{Name: strPtr("   "), Instructions: strPtr("stir")}, true)
	assert.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
}

func TestRecipeNameTooLong(t *testing.T) {
	long := strings.Repeat("x", MaxNameLength+1)
	errs := Recipe(RecipeFields{Name: &long, Instructions: strPtr("stir")}, true)
	assert.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)

	exact := strings.Repeat("x", MaxNameLength)
	assert.Empty(t, Recipe(RecipeFields{Name: &exact, Instructions: strPtr("stir")}, true))
}

func TestRecipeNumericBounds(t *testing.T) {
	errs := Recipe(RecipeFields{
		Name:         strPtr("Soup"),
		Instructions: strPtr("simmer"),
		PrepTime:     intPtr(-1),
		CookTime:     intPtr(-2),
		Servings:     intPtr(0),
	}, true)
	assert.Len(t, errs, 3)

	got := map[string]bool{}
	for _, e := range errs {
		got[e.Field] = true
	}
	assert.True(t, got["prep_time"])
	assert.True(t, got["cook_time"])
	assert.True(t, got["servings"])
}

func TestRecipePartialUpdateSkipsAbsentFields(t *testing.T) {
	// nothing supplied, nothing required
	assert.Empty(t, Recipe(RecipeFields{}, false))

	// supplied fields are still checked
	errs := Recipe(RecipeFields{Servings: intPtr(-3)}, false)
	assert.Len(t, errs, 1)
	assert.Equal(t, "servings", errs[0].Field)
}

func TestValidUnit(t *testing.T) {
	for _, u := range Units {
		assert.True(t, ValidUnit(u), u)
	}
	assert.False(t, ValidUnit("gallon"))
	assert.False(t, ValidUnit("G"))
	assert.False(t, ValidUnit(""))
}

func TestIngredientDefaultsUnit(t *testing.T) {
	name, unit, errs := Ingredient("Flour", nil)
	assert.Empty(t, errs)
	assert.Equal(t, "Flour", name)
	assert.Equal(t, DefaultUnit, unit)

	_, unit, errs = Ingredient("Flour", strPtr("  "))
	assert.Empty(t, errs)
	assert.Equal(t, DefaultUnit, unit)
}

func TestIngredientTrimsName(t *testing.T) {
	name, unit, errs := Ingredient("  Olive Oil  ", strPtr("ml"))
	assert.Empty(t, errs)
	assert.Equal(t, "Olive Oil", name)
	assert.Equal(t, "ml", unit)
}

func TestIngredientInvalidUnit(t *testing.T) {
	_, _, errs := Ingredient("Flour", strPtr("barrel"))
	assert.Len(t, errs, 1)
	assert.Equal(t, "unit", errs[0].Field)
}

func TestIngredientMissingName(t *testing.T) {
	_, _, errs := Ingredient("   ", nil)
	assert.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
}

func TestFilterIngredientRows(t *testing.T) {
	rows := []IngredientRow{
		{IngredientID: 1, Quantity: 2},
		{IngredientID: 0, Quantity: 2},  // missing reference
		{IngredientID: -4, Quantity: 1}, // bad reference
		{IngredientID: 2, Quantity: -1}, // negative quantity
		{IngredientID: 3, Quantity: 0},  // zero quantity is allowed
	}
	kept := FilterIngredientRows(rows)
	assert.Len(t, kept, 2)
	assert.Equal(t, int64(1), kept[0].IngredientID)
	assert.Equal(t, int64(3), kept[1].IngredientID)
}

func TestFilterIngredientRowsEmpty(t *testing.T) {
	kept := FilterIngredientRows(nil)
	assert.NotNil(t, kept)
	assert.Empty(t, kept)
}
