package recipe

import (
	"github.com/smartchef/skillet/pkg/domain"
	"github.com/smartchef/skillet/pkg/graph"
)

// Node IDs of the recipe workflow.
const (
	CollectInputs        graph.NodeID = "CollectInputs"
	GenerateRecipe       graph.NodeID = "GenerateRecipe"
	AdjustForDiet        graph.NodeID = "AdjustForDiet"
	SuggestSubstitutions graph.NodeID = "SuggestSubstitutions"
	CollectFeedback      graph.NodeID = "CollectFeedback"
	SaveToFavorites      graph.NodeID = "SaveToFavorites"
)

// Node IDs of the meal-planner workflow.
const (
	PlanMeals         graph.NodeID = "PlanMeals"
	BuildShoppingList graph.NodeID = "BuildShoppingList"
)

// RouteAfterGeneration is the single branch point of the recipe workflow,
// evaluated immediately after GenerateRecipe:
//
//   - a generation carrying the error marker has nothing to adjust or
//     substitute, so the flow jumps straight to feedback;
//   - dietary restrictions demand the adjustment step;
//   - otherwise adjustment is skippable and substitutions come next.
func RouteAfterGeneration(state domain.State) graph.NodeID {
	if domain.HasErrorMarker(state.GeneratedRecipe) {
		return CollectFeedback
	}
	if len(state.DietaryRestrictions) > 0 {
		return AdjustForDiet
	}
	return SuggestSubstitutions
}

// New declares and compiles the recipe workflow:
//
//	CollectInputs → GenerateRecipe →(router)→ {AdjustForDiet |
//	SuggestSubstitutions | CollectFeedback} … → SaveToFavorites → End
func New(s *Steps) (*graph.Graph, error) {
	return graph.New().
		AddNode(CollectInputs, s.CollectInputs).
		AddNode(GenerateRecipe, s.GenerateRecipe).
		AddNode(AdjustForDiet, s.AdjustForDiet).
		AddNode(SuggestSubstitutions, s.SuggestSubstitutions).
		AddNode(CollectFeedback, s.CollectFeedback).
		AddNode(SaveToFavorites, s.SaveToFavorites).
		SetEntryPoint(CollectInputs).
		AddEdge(CollectInputs, GenerateRecipe).
		AddConditionalEdges(GenerateRecipe, RouteAfterGeneration,
			AdjustForDiet, SuggestSubstitutions, CollectFeedback).
		AddEdge(AdjustForDiet, SuggestSubstitutions).
		AddEdge(SuggestSubstitutions, CollectFeedback).
		AddEdge(CollectFeedback, SaveToFavorites).
		AddEdge(SaveToFavorites, graph.End).
		Compile()
}

// NewPlanner declares and compiles the meal-planner workflow:
//
//	CollectInputs → PlanMeals → BuildShoppingList → End
func NewPlanner(s *Steps) (*graph.Graph, error) {
	return graph.New().
		AddNode(CollectInputs, s.CollectInputs).
		AddNode(PlanMeals, s.PlanMeals).
		AddNode(BuildShoppingList, s.BuildShoppingList).
		SetEntryPoint(CollectInputs).
		AddEdge(CollectInputs, PlanMeals).
		AddEdge(PlanMeals, BuildShoppingList).
		AddEdge(BuildShoppingList, graph.End).
		Compile()
}
