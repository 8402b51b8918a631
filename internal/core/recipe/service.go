package recipe

import (
	"context"
	"fmt"
	"time"

	"gastroguide/internal/core/ai/provider"
	"gastroguide/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 食譜生成服務：分類 → 判斷料理類型 → 組合提示詞 → 呼叫生成服務
type Service struct {
	provider    provider.Provider
	temperature float64
}

// NewService 創建新的食譜服務
func NewService(p provider.Provider, temperature float64) *Service {
	return &Service{
		provider:    p,
		temperature: temperature,
	}
}

// Analyze 分析已正規化的食材
func Analyze(ingredients []string) Analysis {
	categorized := Categorize(ingredients)
	dish := DecideDishType(categorized)
	keyLine, interpretation := BuildSummary(categorized, dish)

	return Analysis{
		Ingredients:    ingredients,
		Categorized:    categorized,
		DishType:       dish,
		Summary:        keyLine,
		Interpretation: interpretation,
	}
}

// Prepare 解析輸入並產生分析與提示詞，不呼叫生成服務。
// 空白輸入回傳 common.ErrEmptyIngredients。
func Prepare(in GenerateInput) (*Analysis, string, error) {
	if IsBlank(in.Ingredients) {
		return nil, "", common.ErrEmptyIngredients
	}
	ingredients := ParseIngredients(in.Ingredients)
	if len(ingredients) == 0 {
		return nil, "", common.ErrEmptyIngredients
	}

	in = withDefaults(in)
	analysis := Analyze(ingredients)
	prompt := BuildPrompt(ingredients, in.Mode, in.Style, in.Servings)

	return &analysis, prompt, nil
}

// Generate 執行完整流程。生成服務的錯誤直接回傳，不重試。
func (s *Service) Generate(ctx context.Context, in GenerateInput) (*Result, error) {
	analysis, prompt, err := Prepare(in)
	if err != nil {
		return nil, err
	}

	common.LogDebug("食譜提示詞已建立",
		zap.Int("ingredients", len(analysis.Ingredients)),
		zap.String("dish_type", string(analysis.DishType)),
	)

	start := time.Now()
	resp, err := s.provider.Generate(ctx, provider.UserPrompt(prompt, s.temperature))
	duration := time.Since(start)
	common.LogAICall(s.provider.GetModel(), duration, err)
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	return &Result{
		Recipe:   resp.Content,
		Analysis: *analysis,
		Prompt:   prompt,
		Model:    resp.Model,
		Duration: duration,
	}, nil
}

// withDefaults 補上介面預設值
func withDefaults(in GenerateInput) GenerateInput {
	if in.Mode == "" {
		in.Mode = string(ModeQuick)
	}
	if in.Style == "" {
		in.Style = string(StyleHomeStyle)
	}
	if in.Servings == 0 {
		in.Servings = DefaultServings
	}
	return in
}
