package recipe

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	ingredients := []string{"chicken", "rice", "broccoli", "soy sauce"}

	t.Run("should be deterministic", func(t *testing.T) {
		a := BuildPrompt(ingredients, "Quick", "Asian", 2)
		b := BuildPrompt(append([]string(nil), ingredients...), "Quick", "Asian", 2)

		assert.Equal(t, a, b)
	})

	t.Run("should embed preferences verbatim", func(t *testing.T) {
		p := BuildPrompt(ingredients, "One-pan / minimal dishes", "Healthy / light", 7)

		assert.Contains(t, p, "- Use ONLY these user ingredients: chicken, rice, broccoli, soy sauce\n")
		assert.Contains(t, p, "- You may add ONLY: salt, pepper, water, oil.\n")
		assert.Contains(t, p, "- Keep it aligned with Mode = One-pan / minimal dishes and Style = Healthy / light.\n")
		assert.Contains(t, p, "- Target servings: 7\n")
		assert.Contains(t, p, "- ingredient — quantity (scaled for 7 servings)\n")
	})

	t.Run("should accept free-form mode and style", func(t *testing.T) {
		p := BuildPrompt([]string{"tofu"}, "Camping", "Martian", 1)

		assert.Contains(t, p, "Mode = Camping and Style = Martian")
	})

	t.Run("should keep markdown sections in order", func(t *testing.T) {
		p := BuildPrompt(ingredients, "Quick", "Asian", 2)

		sections := []string{"## Title", "## Ingredients", "## Steps", "## Nutrition (estimate)", "## Tips"}
		last := -1
		for _, s := range sections {
			idx := strings.Index(p, s)
			require.NotEqual(t, -1, idx, "missing section %q", s)
			assert.Greater(t, idx, last, "section %q out of order", s)
			last = idx
		}
	})

	t.Run("should list exactly the user ingredients", func(t *testing.T) {
		inputs := [][]string{
			{"chicken"},
			{"eggs", "bread", "carrot"},
			{"mango", "olive oil", "soy sauce", "tofu"},
		}
		re := regexp.MustCompile(`(?m)^- Use ONLY these user ingredients: (.*)$`)
		for _, in := range inputs {
			p := BuildPrompt(in, "Budget", "Mexican", 3)
			m := re.FindStringSubmatch(p)
			require.Len(t, m, 2)
			assert.Equal(t, in, strings.Split(m[1], ", "))
		}
	})

	t.Run("should render the full template", func(t *testing.T) {
		want := "\nYou are GastroGuide AI, a practical cooking assistant.\n\n" +
			"STRICT RULES (must follow):\n" +
			"- Use ONLY these user ingredients: eggs\n" +
			"- You may add ONLY: salt, pepper, water, oil.\n" +
			"- Never refer to package instructions. Always describe steps explicitly.\n" +
			"- Keep it aligned with Mode = Quick and Style = Home-style.\n" +
			"- Output must be in English.\n" +
			"- Output must be concise and realistic.\n" +
			"- Target servings: 2\n" +
			"- Use g and kg instead of pounds\n" +
			"- Oil is considered a basic kitchen ingredient and may be used when appropriate.\n\n\n" +
			"OUTPUT FORMAT (Markdown exactly):\n" +
			"## Title\n(one line)\n\n" +
			"## Ingredients\n- ingredient — quantity (scaled for 2 servings)\n\n" +
			"## Steps\n1. ...\n2. ...\n3. ...\n\n" +
			"## Nutrition (estimate)\n- Calories per serving: ___ kcal\n- Protein per serving: ___ g\n\n" +
			"## Tips\n- 1–3 short tips\n"

		assert.Equal(t, want, BuildPrompt([]string{"eggs"}, "Quick", "Home-style", 2))
	})
}
