package llm

import (
	"fmt"
	"strings"

	"github.com/Veraticus/worth-it/internal/model"
)

const systemPrompt = "You classify consumer purchases into spend categories. " +
	"Respond with exactly one category label and nothing else."

// buildPrompt renders the user prompt for one purchase.
func buildPrompt(req CategorizeRequest) string {
	labels := make([]string, len(model.ClassifierCategories))
	for i, c := range model.ClassifierCategories {
		labels[i] = string(c)
	}

	return fmt.Sprintf(`Item: %s
Cost: $%.2f

Categories:
- ESSENTIAL_DAILY: everyday necessities such as groceries, hygiene and cleaning supplies
- DISCRETIONARY_SMALL: small optional purchases such as snacks, entertainment and gadgets
- HIGH_VALUE: large or long-lived purchases

Answer with one of: %s`, req.ItemName, req.Cost, strings.Join(labels, ", "))
}

// cleanLabel strips the wrappers models like to add around a bare label:
// markdown code fences, quotes, a trailing period and a "category:" prefix.
func cleanLabel(content string) string {
	s := strings.TrimSpace(content)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = s[i+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}

	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ':'); i >= 0 && strings.EqualFold(strings.TrimSpace(s[:i]), "category") {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), ".")
	s = strings.Trim(s, "\"'`")
	return strings.TrimSpace(s)
}
