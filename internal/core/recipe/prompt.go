package recipe

import (
	"fmt"
	"strings"
)

// BasicIngredients 除使用者食材外唯一允許加入的基本材料
var BasicIngredients = []string{"salt", "pepper", "water", "oil"}

const promptTemplate = `
You are GastroGuide AI, a practical cooking assistant.

STRICT RULES (must follow):
- Use ONLY these user ingredients: %[1]s
- You may add ONLY: %[2]s.
- Never refer to package instructions. Always describe steps explicitly.
- Keep it aligned with Mode = %[3]s and Style = %[4]s.
- Output must be in English.
- Output must be concise and realistic.
- Target servings: %[5]d
- Use g and kg instead of pounds
- Oil is considered a basic kitchen ingredient and may be used when appropriate.


OUTPUT FORMAT (Markdown exactly):
## Title
(one line)

## Ingredients
- ingredient — quantity (scaled for %[5]d servings)

## Steps
1. ...
2. ...
3. ...

## Nutrition (estimate)
- Calories per serving: ___ kcal
- Protein per serving: ___ g

## Tips
- 1–3 short tips
`

// BuildPrompt 組合送往文字生成服務的提示詞。
// mode 與 style 原樣嵌入，不在此驗證。
func BuildPrompt(ingredients []string, mode, style string, servings int) string {
	return fmt.Sprintf(promptTemplate,
		strings.Join(ingredients, ", "),
		strings.Join(BasicIngredients, ", "),
		mode,
		style,
		servings,
	)
}
