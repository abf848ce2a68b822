package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampServings(t *testing.T) {
	assert.Equal(t, 1, ClampServings(0))
	assert.Equal(t, 1, ClampServings(-5))
	assert.Equal(t, 1, ClampServings(1))
	assert.Equal(t, 250, ClampServings(250))
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 2.0, Ratio(4, 8))
	assert.Equal(t, 0.5, Ratio(4, 2))
	assert.Equal(t, 1.25, Ratio(4, 5))
	// both sides clamp to 1
	assert.Equal(t, 1.0, Ratio(0, 0))
	assert.Equal(t, 3.0, Ratio(-1, 3))
}

func TestFormatQuantity(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{2.5, "2.5"},
		{2.50, "2.5"},
		{4.0, "4"},
		{400, "400"},
		{1.5, "1.5"},
		{0, "0"},
		{0.25, "0.25"},
		{0.333, "0.33"},
		{10.005, "10.01"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatQuantity(tc.in), "FormatQuantity(%v)", tc.in)
	}
}

func TestUnitLabel(t *testing.T) {
	assert.Equal(t, "pc", UnitLabel("piece"))
	assert.Equal(t, "g", UnitLabel("g"))
	assert.Equal(t, "tbsp", UnitLabel("tbsp"))
	// unknown units pass through unchanged
	assert.Equal(t, "handful", UnitLabel("handful"))
}

func TestApply(t *testing.T) {
	ingredients := []Ingredient{
		{ID: 1, Name: "flour", Unit: "g", Quantity: 200},
		{ID: 2, Name: "egg", Unit: "piece", Quantity: 2},
		{ID: 3, Name: "milk", Unit: "ml", Quantity: 3},
	}

	doubled := Apply(ingredients, 4, 8)
	assert.Equal(t, 400.0, doubled[0].ScaledQuantity)
	assert.Equal(t, "400", doubled[0].Display)

	upAQuarter := Apply(ingredients, 4, 5)
	assert.Equal(t, 2.5, upAQuarter[1].ScaledQuantity)
	assert.Equal(t, "2.5", upAQuarter[1].Display)

	halved := Apply(ingredients, 4, 2)
	assert.Equal(t, 1.5, halved[2].ScaledQuantity)
	assert.Equal(t, "1.5", halved[2].Display)
}

func TestApplyEmpty(t *testing.T) {
	out := Apply(nil, 4, 8)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestApplyClampsTarget(t *testing.T) {
	ingredients := []Ingredient{{ID: 1, Name: "flour", Unit: "g", Quantity: 100}}
	out := Apply(ingredients, 4, 0)
	assert.Equal(t, 25.0, out[0].ScaledQuantity)
}

func TestScalingIsReversible(t *testing.T) {
	cases := []struct {
		quantity float64
		original int
		target   int
	}{
		{200, 4, 8},
		{3, 4, 2},
		{2, 4, 5},
		{7.5, 2, 6},
	}
	for _, tc := range cases {
		there := Round2(tc.quantity * Ratio(tc.original, tc.target))
		back := Round2(there * Ratio(tc.target, tc.original))
		assert.InDelta(t, tc.quantity, back, 0.01,
			"q=%v %d->%d->%d", tc.quantity, tc.original, tc.target, tc.original)
	}
}
