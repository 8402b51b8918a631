package recipe

import "strings"

// ParseIngredients 解析逗號分隔的食材字串：去除空白、轉小寫、略過空項目
func ParseIngredients(raw string) []string {
	parts := strings.Split(raw, ",")
	ingredients := make([]string, 0, len(parts))
	for _, p := range parts {
		item := strings.ToLower(strings.TrimSpace(p))
		if item == "" {
			continue
		}
		ingredients = append(ingredients, item)
	}
	return ingredients
}

// IsBlank 檢查輸入是否為空或只有空白
func IsBlank(raw string) bool {
	return strings.TrimSpace(raw) == ""
}
