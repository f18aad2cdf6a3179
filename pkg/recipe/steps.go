package recipe

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/smartchef/skillet/pkg/domain"
	"github.com/smartchef/skillet/pkg/ports"
)

// Default sampling parameters, matching the assistant's original tuning.
const (
	DefaultModel       = "gpt-3.5-turbo"
	DefaultTemperature = 0.7
)

// NoIngredientsMessage is the fixed diagnostic written when recipe
// generation is requested without any ingredients. It carries the reserved
// error marker so the router and downstream steps treat it like any other
// failed generation.
const NoIngredientsMessage = "Error: No ingredients provided. Cannot generate recipe."

// Interaction labels, shared between the console flow and tests.
const (
	labelIngredients  = "Enter ingredients separated by commas"
	labelRestrictions = "Enter diet restrictions separated by commas (or leave blank)"
	labelPreferences  = "Enter taste or cuisine preferences separated by commas"
	labelFeedback     = "Did you face any difficulty making the recipe? (Describe or leave blank)"
	labelSaveChoice   = "Do you want to save this recipe to favorites?"
	labelNotes        = "Any personal notes you'd like to save with it? (optional)"
)

// Steps holds the workflow step implementations and their collaborators.
// Each step reads the current state record and returns only the fields it
// changed; expected collaborator failures are converted to textual error
// payloads instead of propagating.
type Steps struct {
	completer   ports.Completer
	prompter    ports.Prompter
	favorites   ports.FavoriteStore
	model       string
	temperature float64
	logger      *slog.Logger
}

// StepsOption configures a Steps set.
type StepsOption func(*Steps)

// WithModel overrides the completion model identifier.
func WithModel(model string) StepsOption {
	return func(s *Steps) {
		if model != "" {
			s.model = model
		}
	}
}

// WithTemperature overrides the sampling temperature.
func WithTemperature(t float64) StepsOption {
	return func(s *Steps) {
		s.temperature = t
	}
}

// WithFavoriteStore attaches a durable favorites book. Saved recipes are
// mirrored into it in addition to the in-state favorites list.
func WithFavoriteStore(store ports.FavoriteStore) StepsOption {
	return func(s *Steps) {
		s.favorites = store
	}
}

// WithLogger sets the structured logger for the steps.
func WithLogger(logger *slog.Logger) StepsOption {
	return func(s *Steps) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSteps wires the step implementations to their collaborators.
func NewSteps(completer ports.Completer, prompter ports.Prompter, opts ...StepsOption) *Steps {
	s := &Steps{
		completer:   completer,
		prompter:    prompter,
		model:       DefaultModel,
		temperature: DefaultTemperature,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Steps) complete(ctx context.Context, prompt string) (string, error) {
	return s.completer.Complete(ctx, ports.CompletionRequest{
		Prompt:      prompt,
		Model:       s.model,
		Temperature: s.temperature,
	})
}

// CollectInputs solicits the three comma-separated lists from the
// interaction surface. Tokens are trimmed, empty tokens dropped, order and
// duplicates preserved.
func (s *Steps) CollectInputs(ctx context.Context, state domain.State) (domain.Update, error) {
	ingredients, err := s.promptList(ctx, labelIngredients)
	if err != nil {
		return nil, err
	}
	restrictions, err := s.promptList(ctx, labelRestrictions)
	if err != nil {
		return nil, err
	}
	preferences, err := s.promptList(ctx, labelPreferences)
	if err != nil {
		return nil, err
	}

	return domain.Update{
		domain.FieldIngredients:         ingredients,
		domain.FieldDietaryRestrictions: restrictions,
		domain.FieldPreferences:         preferences,
	}, nil
}

// GenerateRecipe builds the generation prompt and invokes the completion
// service. With no ingredients it short-circuits with the fixed diagnostic
// and performs no external call; a caught service failure is written as a
// prefixed error payload.
func (s *Steps) GenerateRecipe(ctx context.Context, state domain.State) (domain.Update, error) {
	if len(state.Ingredients) == 0 {
		s.logger.Debug("no ingredients provided, skipping generation")
		return domain.Update{domain.FieldGeneratedRecipe: NoIngredientsMessage}, nil
	}

	prompt := buildGeneratePrompt(state.Ingredients, state.DietaryRestrictions, state.Preferences)
	text, err := s.complete(ctx, prompt)
	if err != nil {
		s.logger.Debug("recipe generation failed", "err", err)
		return domain.Update{domain.FieldGeneratedRecipe: "Error generating recipe: " + err.Error()}, nil
	}
	return domain.Update{domain.FieldGeneratedRecipe: text}, nil
}

// AdjustForDiet rewrites the generated recipe to comply with the dietary
// restrictions. It passes the recipe through unchanged when there is nothing
// to adjust, and falls back to the unadjusted text on a caught failure so a
// transient error never discards a successful recipe.
func (s *Steps) AdjustForDiet(ctx context.Context, state domain.State) (domain.Update, error) {
	original := state.GeneratedRecipe
	if original == "" || domain.HasErrorMarker(original) || len(state.DietaryRestrictions) == 0 {
		s.logger.Debug("skipping diet adjustment", "reason", "no recipe or no dietary restrictions")
		return domain.Update{domain.FieldAdjustedRecipe: original}, nil
	}

	prompt := buildAdjustPrompt(original, state.DietaryRestrictions)
	adjusted, err := s.complete(ctx, prompt)
	if err != nil {
		s.logger.Debug("diet adjustment failed, keeping original recipe", "err", err)
		return domain.Update{domain.FieldAdjustedRecipe: original}, nil
	}
	return domain.Update{domain.FieldAdjustedRecipe: adjusted}, nil
}

// SuggestSubstitutions asks for an ingredient-to-substitute mapping as
// strict JSON and recovers from noncompliant responses with the two-tier
// parse. With no valid source recipe it writes an empty mapping without
// calling out.
func (s *Steps) SuggestSubstitutions(ctx context.Context, state domain.State) (domain.Update, error) {
	source := state.BestRecipe()
	if source == "" || domain.HasErrorMarker(source) {
		s.logger.Debug("skipping substitutions", "reason", "no valid recipe")
		return domain.Update{domain.FieldSubstitutions: map[string]string{}}, nil
	}

	prompt := buildSubstitutionPrompt(source, state.DietaryRestrictions, state.Preferences)
	raw, err := s.complete(ctx, prompt)
	if err != nil {
		s.logger.Debug("substitution request failed", "err", err)
		return domain.Update{
			domain.FieldSubstitutions: map[string]string{"error": "Failed to extract substitutions: " + err.Error()},
		}, nil
	}
	return domain.Update{domain.FieldSubstitutions: parseSubstitutions(raw)}, nil
}

// CollectFeedback solicits free-text feedback. An empty line is a valid
// "no feedback" answer.
func (s *Steps) CollectFeedback(ctx context.Context, state domain.State) (domain.Update, error) {
	feedback, err := s.prompter.Line(ctx, labelFeedback)
	if err != nil {
		return nil, err
	}
	return domain.Update{domain.FieldFeedback: strings.TrimSpace(feedback)}, nil
}

// SaveToFavorites appends the best recipe to the favorites list on an
// explicit "yes", and records any supplied notes independently of that
// choice. (Notes are saved even when the answer is "no"; the source behaves
// this way, see DESIGN.md.) Without a valid recipe the step asks nothing.
func (s *Steps) SaveToFavorites(ctx context.Context, state domain.State) (domain.Update, error) {
	recipe := state.BestRecipe()
	if recipe == "" || domain.HasErrorMarker(recipe) {
		s.logger.Debug("no valid recipe to save")
		return domain.Update{
			domain.FieldFavorites: state.Favorites,
			domain.FieldUserNotes: "",
		}, nil
	}

	choice, err := s.prompter.Choice(ctx, labelSaveChoice, []string{"yes", "no"})
	if err != nil {
		return nil, err
	}
	notes, err := s.prompter.Line(ctx, labelNotes)
	if err != nil {
		return nil, err
	}
	notes = strings.TrimSpace(notes)

	favorites := append([]string(nil), state.Favorites...)
	if strings.EqualFold(strings.TrimSpace(choice), "yes") {
		favorites = append(favorites, recipe)
		if s.favorites != nil {
			fav := ports.Favorite{Recipe: recipe, Notes: notes, SavedAt: time.Now()}
			if err := s.favorites.Add(ctx, fav); err != nil {
				s.logger.Warn("favorite store add failed", "err", err)
			}
		}
	}

	return domain.Update{
		domain.FieldFavorites: favorites,
		domain.FieldUserNotes: notes,
	}, nil
}

// PlanMeals generates a week-long meal plan as a day-to-meals mapping,
// using the same JSON recovery policy as the substitution step.
func (s *Steps) PlanMeals(ctx context.Context, state domain.State) (domain.Update, error) {
	prompt := buildMealPlanPrompt(state.Ingredients, state.DietaryRestrictions, state.Preferences)
	raw, err := s.complete(ctx, prompt)
	if err != nil {
		s.logger.Debug("meal planning failed", "err", err)
		return domain.Update{
			domain.FieldMealPlan: map[string][]string{"error": {"Failed to generate meal plan: " + err.Error()}},
		}, nil
	}
	return domain.Update{domain.FieldMealPlan: parseMealPlan(raw)}, nil
}

// BuildShoppingList derives the list of missing ingredients from the meal
// plan. Skipped (empty list) when the plan is absent or errored.
func (s *Steps) BuildShoppingList(ctx context.Context, state domain.State) (domain.Update, error) {
	if len(state.MealPlan) == 0 {
		s.logger.Debug("skipping shopping list", "reason", "no meal plan")
		return domain.Update{domain.FieldShoppingList: []string{}}, nil
	}
	if _, failed := state.MealPlan["error"]; failed {
		s.logger.Debug("skipping shopping list", "reason", "meal plan errored")
		return domain.Update{domain.FieldShoppingList: []string{}}, nil
	}

	planJSON := encodeMealPlan(state.MealPlan)
	raw, err := s.complete(ctx, buildShoppingListPrompt(planJSON, state.Ingredients))
	if err != nil {
		s.logger.Debug("shopping list request failed", "err", err)
		return domain.Update{
			domain.FieldShoppingList: []string{"Error building shopping list: " + err.Error()},
		}, nil
	}

	items, ok := parseStringList(raw)
	if !ok {
		return domain.Update{domain.FieldShoppingList: []string{"Error building shopping list: " + errNoJSON}}, nil
	}
	return domain.Update{domain.FieldShoppingList: items}, nil
}

// promptList reads one comma-separated line and tokenizes it.
func (s *Steps) promptList(ctx context.Context, label string) ([]string, error) {
	line, err := s.prompter.Line(ctx, label)
	if err != nil {
		return nil, err
	}
	return splitList(line), nil
}

// splitList splits a comma-separated line into trimmed, non-empty tokens,
// preserving entry order and duplicates.
func splitList(line string) []string {
	items := []string{}
	for _, part := range strings.Split(line, ",") {
		if token := strings.TrimSpace(part); token != "" {
			items = append(items, token)
		}
	}
	return items
}
