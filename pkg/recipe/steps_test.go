package recipe_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartchef/skillet/pkg/adapters/memory"
	"github.com/smartchef/skillet/pkg/adapters/scripted"
	"github.com/smartchef/skillet/pkg/domain"
	"github.com/smartchef/skillet/pkg/ports"
	"github.com/smartchef/skillet/pkg/recipe"
)

// fakeCompleter records every prompt and answers via respond.
type fakeCompleter struct {
	calls   []ports.CompletionRequest
	respond func(prompt string) (string, error)
}

func (f *fakeCompleter) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	f.calls = append(f.calls, req)
	if f.respond == nil {
		return "", nil
	}
	return f.respond(req.Prompt)
}

// failingPrompter fails the test when any question is asked.
type failingPrompter struct {
	t *testing.T
}

func (p failingPrompter) Line(ctx context.Context, label string) (string, error) {
	p.t.Fatalf("unexpected prompt: %s", label)
	return "", nil
}

func (p failingPrompter) Choice(ctx context.Context, label string, options []string) (string, error) {
	p.t.Fatalf("unexpected prompt: %s", label)
	return "", nil
}

func TestCollectInputs_TokenizesLists(t *testing.T) {
	prompter := scripted.New(
		"rice, egg ,  spring onion, egg",
		" vegetarian ",
		"",
	)
	steps := recipe.NewSteps(&fakeCompleter{}, prompter)

	update, err := steps.CollectInputs(context.Background(), domain.State{})
	require.NoError(t, err)

	assert.Equal(t, domain.Update{
		domain.FieldIngredients:         []string{"rice", "egg", "spring onion", "egg"},
		domain.FieldDietaryRestrictions: []string{"vegetarian"},
		domain.FieldPreferences:         []string{},
	}, update, "tokens are trimmed, blanks dropped, order and duplicates preserved")
}

func TestGenerateRecipe_EmptyIngredientsNeverCallsService(t *testing.T) {
	completer := &fakeCompleter{}
	steps := recipe.NewSteps(completer, scripted.New())

	update, err := steps.GenerateRecipe(context.Background(), domain.State{})
	require.NoError(t, err)

	assert.Equal(t, recipe.NoIngredientsMessage, update[domain.FieldGeneratedRecipe])
	assert.True(t, domain.HasErrorMarker(update[domain.FieldGeneratedRecipe].(string)))
	assert.Empty(t, completer.calls, "completion service must not be invoked")
}

func TestGenerateRecipe_ServiceErrorBecomesPayload(t *testing.T) {
	completer := &fakeCompleter{respond: func(string) (string, error) {
		return "", assert.AnError
	}}
	steps := recipe.NewSteps(completer, scripted.New())

	update, err := steps.GenerateRecipe(context.Background(), domain.State{
		Ingredients: []string{"rice"},
	})
	require.NoError(t, err, "service failures become data, not step errors")

	got := update[domain.FieldGeneratedRecipe].(string)
	assert.True(t, strings.HasPrefix(got, "Error generating recipe: "))
}

func TestGenerateRecipe_UsesConfiguredModel(t *testing.T) {
	completer := &fakeCompleter{respond: func(string) (string, error) {
		return "Fried Rice", nil
	}}
	steps := recipe.NewSteps(completer, scripted.New(),
		recipe.WithModel("gpt-4o-mini"), recipe.WithTemperature(0.2))

	_, err := steps.GenerateRecipe(context.Background(), domain.State{Ingredients: []string{"rice"}})
	require.NoError(t, err)

	require.Len(t, completer.calls, 1)
	assert.Equal(t, "gpt-4o-mini", completer.calls[0].Model)
	assert.Equal(t, 0.2, completer.calls[0].Temperature)
	assert.Contains(t, completer.calls[0].Prompt, "rice")
}

func TestAdjustForDiet(t *testing.T) {
	t.Run("no restrictions passes recipe through", func(t *testing.T) {
		completer := &fakeCompleter{}
		steps := recipe.NewSteps(completer, scripted.New())

		update, err := steps.AdjustForDiet(context.Background(), domain.State{
			GeneratedRecipe: "Fried Rice",
		})
		require.NoError(t, err)
		assert.Equal(t, "Fried Rice", update[domain.FieldAdjustedRecipe])
		assert.Empty(t, completer.calls)
	})

	t.Run("errored recipe passes through untouched", func(t *testing.T) {
		completer := &fakeCompleter{}
		steps := recipe.NewSteps(completer, scripted.New())

		update, err := steps.AdjustForDiet(context.Background(), domain.State{
			GeneratedRecipe:     "Error generating recipe: timeout",
			DietaryRestrictions: []string{"vegan"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Error generating recipe: timeout", update[domain.FieldAdjustedRecipe])
		assert.Empty(t, completer.calls)
	})

	t.Run("adjusts through the service", func(t *testing.T) {
		completer := &fakeCompleter{respond: func(prompt string) (string, error) {
			assert.Contains(t, prompt, "vegan")
			assert.Contains(t, prompt, "Fried Rice")
			return "Vegan Fried Rice", nil
		}}
		steps := recipe.NewSteps(completer, scripted.New())

		update, err := steps.AdjustForDiet(context.Background(), domain.State{
			GeneratedRecipe:     "Fried Rice",
			DietaryRestrictions: []string{"vegan"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Vegan Fried Rice", update[domain.FieldAdjustedRecipe])
	})

	t.Run("service failure falls back to the original", func(t *testing.T) {
		completer := &fakeCompleter{respond: func(string) (string, error) {
			return "", assert.AnError
		}}
		steps := recipe.NewSteps(completer, scripted.New())

		update, err := steps.AdjustForDiet(context.Background(), domain.State{
			GeneratedRecipe:     "Fried Rice",
			DietaryRestrictions: []string{"vegan"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Fried Rice", update[domain.FieldAdjustedRecipe],
			"a transient failure must not discard a successful recipe")
	})
}

func TestSuggestSubstitutions(t *testing.T) {
	t.Run("no valid recipe writes empty mapping without calling out", func(t *testing.T) {
		completer := &fakeCompleter{}
		steps := recipe.NewSteps(completer, scripted.New())

		update, err := steps.SuggestSubstitutions(context.Background(), domain.State{
			GeneratedRecipe: "Error generating recipe: timeout",
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{}, update[domain.FieldSubstitutions])
		assert.Empty(t, completer.calls)
	})

	t.Run("prefers the adjusted recipe as source", func(t *testing.T) {
		completer := &fakeCompleter{respond: func(prompt string) (string, error) {
			assert.Contains(t, prompt, "Vegan Fried Rice")
			assert.NotContains(t, prompt, "Plain Fried Rice")
			return `{"egg": "tofu"}`, nil
		}}
		steps := recipe.NewSteps(completer, scripted.New())

		update, err := steps.SuggestSubstitutions(context.Background(), domain.State{
			GeneratedRecipe: "Plain Fried Rice",
			AdjustedRecipe:  "Vegan Fried Rice",
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"egg": "tofu"}, update[domain.FieldSubstitutions])
	})

	t.Run("service failure becomes an error mapping", func(t *testing.T) {
		completer := &fakeCompleter{respond: func(string) (string, error) {
			return "", assert.AnError
		}}
		steps := recipe.NewSteps(completer, scripted.New())

		update, err := steps.SuggestSubstitutions(context.Background(), domain.State{
			GeneratedRecipe: "Fried Rice",
		})
		require.NoError(t, err)

		subs := update[domain.FieldSubstitutions].(map[string]string)
		require.Contains(t, subs, "error")
		assert.True(t, strings.HasPrefix(subs["error"], "Failed to extract substitutions: "))
	})
}

func TestCollectFeedback_TrimsInput(t *testing.T) {
	steps := recipe.NewSteps(&fakeCompleter{}, scripted.New("  too salty  "))
	update, err := steps.CollectFeedback(context.Background(), domain.State{})
	require.NoError(t, err)
	assert.Equal(t, domain.Update{domain.FieldFeedback: "too salty"}, update)
}

func TestSaveToFavorites(t *testing.T) {
	t.Run("no valid recipe asks nothing and keeps favorites", func(t *testing.T) {
		steps := recipe.NewSteps(&fakeCompleter{}, failingPrompter{t})

		update, err := steps.SaveToFavorites(context.Background(), domain.State{
			GeneratedRecipe: recipe.NoIngredientsMessage,
			Favorites:       []string{"old one"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"old one"}, update[domain.FieldFavorites])
		assert.Equal(t, "", update[domain.FieldUserNotes])
	})

	t.Run("yes appends the best recipe and mirrors to the store", func(t *testing.T) {
		store := memory.NewStore()
		steps := recipe.NewSteps(&fakeCompleter{}, scripted.New("yes", "great with chili"),
			recipe.WithFavoriteStore(store))

		update, err := steps.SaveToFavorites(context.Background(), domain.State{
			GeneratedRecipe: "Plain Fried Rice",
			AdjustedRecipe:  "Vegan Fried Rice",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Vegan Fried Rice"}, update[domain.FieldFavorites])
		assert.Equal(t, "great with chili", update[domain.FieldUserNotes])

		favs, err := store.List(context.Background())
		require.NoError(t, err)
		require.Len(t, favs, 1)
		assert.Equal(t, "Vegan Fried Rice", favs[0].Recipe)
		assert.Equal(t, "great with chili", favs[0].Notes)
	})

	t.Run("no keeps favorites but still records notes", func(t *testing.T) {
		store := memory.NewStore()
		steps := recipe.NewSteps(&fakeCompleter{}, scripted.New("no", "maybe next week"),
			recipe.WithFavoriteStore(store))

		update, err := steps.SaveToFavorites(context.Background(), domain.State{
			GeneratedRecipe: "Fried Rice",
		})
		require.NoError(t, err)
		assert.Empty(t, update[domain.FieldFavorites])
		assert.Equal(t, "maybe next week", update[domain.FieldUserNotes])

		favs, err := store.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, favs)
	})

	t.Run("store failure does not fail the step", func(t *testing.T) {
		steps := recipe.NewSteps(&fakeCompleter{}, scripted.New("yes", ""),
			recipe.WithFavoriteStore(failingStore{}))

		update, err := steps.SaveToFavorites(context.Background(), domain.State{
			GeneratedRecipe: "Fried Rice",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Fried Rice"}, update[domain.FieldFavorites],
			"the in-state list is maintained even when the durable mirror fails")
	})
}

type failingStore struct{}

func (failingStore) Add(ctx context.Context, fav ports.Favorite) error {
	return assert.AnError
}

func (failingStore) List(ctx context.Context) ([]ports.Favorite, error) {
	return nil, assert.AnError
}

func TestPlanMeals(t *testing.T) {
	t.Run("parses the plan", func(t *testing.T) {
		completer := &fakeCompleter{respond: func(string) (string, error) {
			return `{"Monday": ["fried rice"], "Tuesday": ["omelette"]}`, nil
		}}
		steps := recipe.NewSteps(completer, scripted.New())

		update, err := steps.PlanMeals(context.Background(), domain.State{
			Ingredients: []string{"rice", "egg"},
		})
		require.NoError(t, err)
		assert.Equal(t, map[string][]string{
			"Monday": {"fried rice"}, "Tuesday": {"omelette"},
		}, update[domain.FieldMealPlan])
	})

	t.Run("service failure becomes an error plan", func(t *testing.T) {
		completer := &fakeCompleter{respond: func(string) (string, error) {
			return "", assert.AnError
		}}
		steps := recipe.NewSteps(completer, scripted.New())

		update, err := steps.PlanMeals(context.Background(), domain.State{})
		require.NoError(t, err)

		plan := update[domain.FieldMealPlan].(map[string][]string)
		require.Contains(t, plan, "error")
		assert.True(t, strings.HasPrefix(plan["error"][0], "Failed to generate meal plan: "))
	})
}

func TestBuildShoppingList(t *testing.T) {
	t.Run("skips without a plan", func(t *testing.T) {
		completer := &fakeCompleter{}
		steps := recipe.NewSteps(completer, scripted.New())

		update, err := steps.BuildShoppingList(context.Background(), domain.State{})
		require.NoError(t, err)
		assert.Equal(t, []string{}, update[domain.FieldShoppingList])
		assert.Empty(t, completer.calls)
	})

	t.Run("skips an errored plan", func(t *testing.T) {
		completer := &fakeCompleter{}
		steps := recipe.NewSteps(completer, scripted.New())

		update, err := steps.BuildShoppingList(context.Background(), domain.State{
			MealPlan: map[string][]string{"error": {"Failed to generate meal plan: timeout"}},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{}, update[domain.FieldShoppingList])
		assert.Empty(t, completer.calls)
	})

	t.Run("derives the list from the plan", func(t *testing.T) {
		completer := &fakeCompleter{respond: func(prompt string) (string, error) {
			assert.Contains(t, prompt, "fried rice")
			return `["soy sauce", "spring onion"]`, nil
		}}
		steps := recipe.NewSteps(completer, scripted.New())

		update, err := steps.BuildShoppingList(context.Background(), domain.State{
			Ingredients: []string{"rice", "egg"},
			MealPlan:    map[string][]string{"Monday": {"fried rice"}},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"soy sauce", "spring onion"}, update[domain.FieldShoppingList])
	})

	t.Run("unparseable response becomes an error item", func(t *testing.T) {
		completer := &fakeCompleter{respond: func(string) (string, error) {
			return "you have everything you need", nil
		}}
		steps := recipe.NewSteps(completer, scripted.New())

		update, err := steps.BuildShoppingList(context.Background(), domain.State{
			MealPlan: map[string][]string{"Monday": {"soup"}},
		})
		require.NoError(t, err)

		items := update[domain.FieldShoppingList].([]string)
		require.Len(t, items, 1)
		assert.True(t, strings.HasPrefix(items[0], "Error building shopping list: "))
	})
}
