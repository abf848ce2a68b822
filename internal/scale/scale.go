// Package scale computes adjusted ingredient quantities for a target
// serving count. All functions are pure and total over their inputs.
package scale

import (
	"math"
	"strconv"
	"strings"
)

// unitLabels maps canonical units to their display abbreviations.
// Unknown units pass through unchanged.
var unitLabels = map[string]string{
	"piece": "pc",
	"g":     "g",
	"ml":    "ml",
	"tbsp":  "tbsp",
	"tsp":   "tsp",
	"cup":   "cup",
	"pinch": "pinch",
}

// Ingredient is one (ingredient, quantity, unit) tuple of a recipe
type Ingredient struct {
	ID       int64
	Name     string
	Unit     string
	Quantity float64
}

// Scaled carries the original tuple plus its adjusted quantity and the
// formatted display string.
type Scaled struct {
	Ingredient
	ScaledQuantity float64
	Display        string
}

// ClampServings floors a serving count at 1
func ClampServings(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// Ratio is target servings over original servings. Both sides are clamped
// to a minimum of 1, so the ratio is always positive and finite.
func Ratio(originalServings, targetServings int) float64 {
	return float64(ClampServings(targetServings)) / float64(ClampServings(originalServings))
}

// Round2 rounds to 2 decimal places to suppress floating-point noise
func Round2(q float64) float64 {
	return math.Round(q*100) / 100
}

// FormatQuantity renders a quantity rounded to 2 decimals with trailing
// zeros stripped: 2.50 -> "2.5", 4.00 -> "4".
func FormatQuantity(q float64) string {
	s := strconv.FormatFloat(Round2(q), 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

// UnitLabel returns the display abbreviation for a unit
func UnitLabel(unit string) string {
	if label, ok := unitLabels[unit]; ok {
		return label
	}
	return unit
}

// Apply scales every ingredient quantity by the servings ratio. An empty
// input yields an empty (non-nil) result.
func Apply(ingredients []Ingredient, originalServings, targetServings int) []Scaled {
	ratio := Ratio(originalServings, targetServings)
	out := make([]Scaled, 0, len(ingredients))
	for _, ing := range ingredients {
		adjusted := Round2(ing.Quantity * ratio)
		out = append(out, Scaled{
			Ingredient:     ing,
			ScaledQuantity: adjusted,
			Display:        FormatQuantity(adjusted),
		})
	}
	return out
}
