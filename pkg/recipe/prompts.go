package recipe

import (
	"fmt"
	"strings"
)

// joinOrNone renders a list for prompt embedding, spelling out "none" so the
// model never sees a dangling empty slot.
func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func buildGeneratePrompt(ingredients, restrictions, preferences []string) string {
	return fmt.Sprintf(`You are a helpful chef. Create a recipe with the following ingredients: %s.
Make sure the recipe follows these dietary restrictions: %s and
try to match these taste preferences: %s

Provide the recipe name, ingredients list and step-by-step instructions.
`, strings.Join(ingredients, ", "), joinOrNone(restrictions), joinOrNone(preferences))
}

func buildAdjustPrompt(recipe string, restrictions []string) string {
	return fmt.Sprintf(`The following recipe may not fully comply with these dietary restrictions: %s.

Recipe:
%s

Please adjust the recipe to strictly follow these dietary restrictions and make minimal necessary substitutions.
Output the adjusted recipe in the same format.
`, strings.Join(restrictions, ", "), recipe)
}

func buildSubstitutionPrompt(recipe string, restrictions, preferences []string) string {
	return fmt.Sprintf(`Analyze the following recipe and suggest ingredient substitutions that:
- Align with these dietary restrictions: %s
- Match these preferences: %s

Recipe:
%s

Return ONLY a JSON dictionary of substitutions like: {"ingredient": "substitute"}
No additional text before or after the JSON.
`, joinOrNone(restrictions), joinOrNone(preferences), recipe)
}

func buildMealPlanPrompt(ingredients, restrictions, preferences []string) string {
	return fmt.Sprintf(`You are a helpful chef planning a week of meals.
Plan meals for Monday through Sunday, using these available ingredients where possible: %s.
Make sure every meal follows these dietary restrictions: %s and
try to match these taste preferences: %s

Return ONLY a JSON object mapping each day name to a list of meal names, like: {"Monday": ["oatmeal", "lentil curry"]}
No additional text before or after the JSON.
`, joinOrNone(ingredients), joinOrNone(restrictions), joinOrNone(preferences))
}

func buildShoppingListPrompt(planJSON string, available []string) string {
	return fmt.Sprintf(`Given this weekly meal plan as JSON:
%s

And these ingredients already available: %s

List the ingredients that still need to be bought to cook every meal.

Return ONLY a JSON array of ingredient names, like: ["tofu", "soy sauce"]
No additional text before or after the JSON.
`, planJSON, joinOrNone(available))
}
