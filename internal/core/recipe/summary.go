package recipe

import "fmt"

var interpretations = map[DishType]string{
	DishMain:  "You have the core components for a complete main dish.",
	DishSalad: "This looks best as a salad or a cold veggie-based dish.",
	DishSnack: "This looks best as a snack, side dish, or a simple plate.",
}

// BuildSummary 產生數量摘要與一句話解讀
func BuildSummary(c CategorizedIngredients, dish DishType) (keyLine, interpretation string) {
	keyLine = fmt.Sprintf("Detected: %d protein, %d carb, %d veggie, %d sauce",
		c.Count(CategoryProtein),
		c.Count(CategoryCarb),
		c.Count(CategoryVeggie),
		c.Count(CategorySauce),
	)

	interpretation, ok := interpretations[dish]
	if !ok {
		interpretation = interpretations[DishSnack]
	}
	return keyLine, interpretation
}
