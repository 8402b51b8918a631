package recipe

import (
	"bytes"
	"encoding/json"
)

// Category 食材分類
type Category string

const (
	CategoryProtein Category = "protein"
	CategoryCarb    Category = "carb"
	CategoryVeggie  Category = "veggie"
	CategorySauce   Category = "sauce"
	CategorySpice   Category = "spice"
	CategoryFat     Category = "fat"
	CategoryOther   Category = "other"
)

// Categories 固定的分類順序
var Categories = []Category{
	CategoryProtein,
	CategoryCarb,
	CategoryVeggie,
	CategorySauce,
	CategorySpice,
	CategoryFat,
	CategoryOther,
}

// categoryTable 食材到分類的靜態對照表，只讀
var categoryTable = map[string]Category{
	"chicken": CategoryProtein,
	"beef":    CategoryProtein,
	"eggs":    CategoryProtein,
	"tofu":    CategoryProtein,

	"rice":     CategoryCarb,
	"pasta":    CategoryCarb,
	"potatoes": CategoryCarb,
	"bread":    CategoryCarb,

	"broccoli": CategoryVeggie,
	"carrot":   CategoryVeggie,
	"onion":    CategoryVeggie,
	"tomato":   CategoryVeggie,

	"soy sauce": CategorySauce,
	"garlic":    CategorySpice,
	"olive oil": CategoryFat,
}

// Lookup 查詢單一食材的分類；鍵必須已正規化（小寫），未知食材歸類為 other
func Lookup(ingredient string) Category {
	if c, ok := categoryTable[ingredient]; ok {
		return c
	}
	return CategoryOther
}

// CategorizedIngredients 分類後的食材，每個分類都存在，桶內保留輸入順序
type CategorizedIngredients map[Category][]string

// Categorize 將食材逐一分類
func Categorize(ingredients []string) CategorizedIngredients {
	categorized := make(CategorizedIngredients, len(Categories))
	for _, c := range Categories {
		categorized[c] = []string{}
	}
	for _, item := range ingredients {
		c := Lookup(item)
		categorized[c] = append(categorized[c], item)
	}
	return categorized
}

// Count 回傳某分類的食材數量
func (c CategorizedIngredients) Count(category Category) int {
	return len(c[category])
}

// Counts 回傳所有分類的數量
func (c CategorizedIngredients) Counts() map[Category]int {
	counts := make(map[Category]int, len(Categories))
	for _, cat := range Categories {
		counts[cat] = len(c[cat])
	}
	return counts
}

// MarshalJSON 依固定分類順序輸出，空分類輸出 []
func (c CategorizedIngredients) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range Categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(cat))
		if err != nil {
			return nil, err
		}
		items := c[cat]
		if items == nil {
			items = []string{}
		}
		val, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
