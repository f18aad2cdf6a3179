// Package recipe implements the SmartChef cooking workflows on top of the
// graph and runtime packages.
//
// The main workflow collects ingredients and preferences from the user,
// generates a recipe through a completion service, optionally adjusts it for
// dietary restrictions, suggests ingredient substitutions, and records
// feedback and favorites. A smaller planner workflow turns the same inputs
// into a weekly meal plan and a shopping list.
//
// Collaborator failures never abort a run. Each step folds failures into the
// state as text carrying the domain.ErrorMarker substring, and the router and
// downstream steps inspect that marker to skip work that no longer makes
// sense.
package recipe
