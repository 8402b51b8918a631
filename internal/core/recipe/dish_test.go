package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecideDishType(t *testing.T) {
	tests := []struct {
		name        string
		categorized CategorizedIngredients
		want        DishType
	}{
		{
			name:        "protein and carb make a main dish",
			categorized: CategorizedIngredients{CategoryProtein: {"chicken"}, CategoryCarb: {"rice"}},
			want:        DishMain,
		},
		{
			name:        "veggie without carb is a salad",
			categorized: CategorizedIngredients{CategoryProtein: {}, CategoryCarb: {}, CategoryVeggie: {"broccoli"}},
			want:        DishSalad,
		},
		{
			name:        "nothing useful is a snack",
			categorized: CategorizedIngredients{CategoryProtein: {}, CategoryCarb: {}, CategoryVeggie: {}},
			want:        DishSnack,
		},
		{
			name: "main dish wins over the veggie rule",
			categorized: CategorizedIngredients{
				CategoryProtein: {"eggs"},
				CategoryCarb:    {"bread"},
				CategoryVeggie:  {"carrot"},
			},
			want: DishMain,
		},
		{
			name:        "veggie with carb but no protein is a snack",
			categorized: CategorizedIngredients{CategoryCarb: {"pasta"}, CategoryVeggie: {"tomato"}},
			want:        DishSnack,
		},
		{
			name:        "protein and veggie without carb is a salad",
			categorized: CategorizedIngredients{CategoryProtein: {"tofu"}, CategoryVeggie: {"onion"}},
			want:        DishSalad,
		},
		{
			name:        "nil map is a snack",
			categorized: nil,
			want:        DishSnack,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecideDishType(tt.categorized))
		})
	}
}

func TestBuildSummary(t *testing.T) {
	c := Categorize([]string{"chicken", "rice", "pasta", "broccoli", "soy sauce", "garlic"})

	keyLine, interpretation := BuildSummary(c, DishMain)
	assert.Equal(t, "Detected: 1 protein, 2 carb, 1 veggie, 1 sauce", keyLine)
	assert.Equal(t, "You have the core components for a complete main dish.", interpretation)

	_, interpretation = BuildSummary(c, DishSalad)
	assert.Equal(t, "This looks best as a salad or a cold veggie-based dish.", interpretation)

	_, interpretation = BuildSummary(c, DishSnack)
	assert.Equal(t, "This looks best as a snack, side dish, or a simple plate.", interpretation)

	_, interpretation = BuildSummary(c, DishType("Dessert"))
	assert.Equal(t, "This looks best as a snack, side dish, or a simple plate.", interpretation)
}
