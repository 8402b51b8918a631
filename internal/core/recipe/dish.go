package recipe

// DishType 料理類型
type DishType string

const (
	DishMain  DishType = "Main dish"
	DishSalad DishType = "Salad"
	DishSnack DishType = "Snack"
)

// DecideDishType 依分類數量決定料理類型，規則依序比對
func DecideDishType(c CategorizedIngredients) DishType {
	hasProtein := c.Count(CategoryProtein) > 0
	hasCarb := c.Count(CategoryCarb) > 0
	hasVeggie := c.Count(CategoryVeggie) > 0

	switch {
	case hasProtein && hasCarb:
		return DishMain
	case hasVeggie && !hasCarb:
		return DishSalad
	default:
		return DishSnack
	}
}
