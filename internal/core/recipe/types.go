package recipe

import "time"

// GenerateInput 使用者在介面上選擇的值（已解析）
type GenerateInput struct {
	Ingredients string // 逗號分隔的食材
	Mode        string
	Style       string
	Servings    int
}

// Analysis 食材分析結果
type Analysis struct {
	Ingredients    []string               `json:"ingredients"`
	Categorized    CategorizedIngredients `json:"categorized"`
	DishType       DishType               `json:"dish_type"`
	Summary        string                 `json:"summary"`
	Interpretation string                 `json:"interpretation"`
}

// Result 一次生成的結果
type Result struct {
	Recipe   string        // 原始 markdown
	Analysis Analysis      // 分析
	Prompt   string        // 送出的提示詞
	Model    string        // 實際使用的模型
	Duration time.Duration // 生成耗時
}
