package domain

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// ErrorMarker is the reserved substring that tags a textual payload as an
// error. Downstream steps and the router detect prior failures by looking for
// it, so payloads carrying the marker must be preserved verbatim.
const ErrorMarker = "Error"

// Field names of the shared state record. Steps key their partial updates by
// these names; Merge rejects anything else.
const (
	FieldIngredients         = "ingredients"
	FieldDietaryRestrictions = "dietary_restrictions"
	FieldPreferences         = "preferences"
	FieldGeneratedRecipe     = "generated_recipe"
	FieldAdjustedRecipe      = "adjusted_recipe"
	FieldSubstitutions       = "substitutions"
	FieldMealPlan            = "meal_plan"
	FieldShoppingList        = "shopping_list"
	FieldFeedback            = "feedback"
	FieldFavorites           = "favorites"
	FieldUserNotes           = "user_notes"
)

// State is the shared record passed between workflow steps. Every field is
// independently optional: the zero value means "not yet produced".
//
// The record is created empty at the start of a run, handed in full to each
// step, and mutated only through Merge. It is owned by exactly one engine
// instance for the duration of a run.
type State struct {
	Ingredients         []string `json:"ingredients" mapstructure:"ingredients"`
	DietaryRestrictions []string `json:"dietary_restrictions" mapstructure:"dietary_restrictions"`
	Preferences         []string `json:"preferences" mapstructure:"preferences"`

	// GeneratedRecipe and AdjustedRecipe hold either a success payload or an
	// error payload distinguished only by the ErrorMarker substring.
	GeneratedRecipe string `json:"generated_recipe" mapstructure:"generated_recipe"`
	AdjustedRecipe  string `json:"adjusted_recipe" mapstructure:"adjusted_recipe"`

	// Substitutions maps ingredient to substitute. On a parse failure it
	// holds a single "error" key instead; both shapes are terminal.
	Substitutions map[string]string `json:"substitutions" mapstructure:"substitutions"`

	MealPlan     map[string][]string `json:"meal_plan" mapstructure:"meal_plan"`
	ShoppingList []string            `json:"shopping_list" mapstructure:"shopping_list"`

	Feedback  string   `json:"feedback" mapstructure:"feedback"`
	Favorites []string `json:"favorites" mapstructure:"favorites"`
	UserNotes string   `json:"user_notes" mapstructure:"user_notes"`
}

// Update is a partial state record: a mapping from field names to new values
// containing only the fields a step changed. Merging is a field-level
// overwrite; there is no deep merge within a field.
type Update map[string]any

// Merge applies a partial update to the record, overwriting each present
// field wholesale. Unknown field names are a programming fault and fail the
// merge.
func (s *State) Merge(u Update) error {
	if len(u) == 0 {
		return nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      s,
		ErrorUnused: true,
		ZeroFields:  true,
	})
	if err != nil {
		return fmt.Errorf("building state decoder: %w", err)
	}
	if err := dec.Decode(map[string]any(u)); err != nil {
		return fmt.Errorf("merging state update: %w", err)
	}
	return nil
}

// Clone returns a deep copy so the caller can mutate freely without aliasing
// the original record's slices and maps.
func (s State) Clone() State {
	out := s
	out.Ingredients = cloneSlice(s.Ingredients)
	out.DietaryRestrictions = cloneSlice(s.DietaryRestrictions)
	out.Preferences = cloneSlice(s.Preferences)
	out.ShoppingList = cloneSlice(s.ShoppingList)
	out.Favorites = cloneSlice(s.Favorites)
	if s.Substitutions != nil {
		out.Substitutions = make(map[string]string, len(s.Substitutions))
		for k, v := range s.Substitutions {
			out.Substitutions[k] = v
		}
	}
	if s.MealPlan != nil {
		out.MealPlan = make(map[string][]string, len(s.MealPlan))
		for k, v := range s.MealPlan {
			out.MealPlan[k] = cloneSlice(v)
		}
	}
	return out
}

// BestRecipe returns the adjusted recipe when present, else the generated
// one. This is the selection rule shared by the substitution and storage
// steps.
func (s State) BestRecipe() string {
	if s.AdjustedRecipe != "" {
		return s.AdjustedRecipe
	}
	return s.GeneratedRecipe
}

// HasErrorMarker reports whether a textual payload carries the reserved
// error marker.
func HasErrorMarker(text string) bool {
	return strings.Contains(text, ErrorMarker)
}

func cloneSlice(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
