// Package mcp exposes the cooking workflows as an MCP server, so agent
// hosts can cook recipes and plan meals as tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/smartchef/skillet/internal/runtime"
	"github.com/smartchef/skillet/pkg/adapters/scripted"
	"github.com/smartchef/skillet/pkg/domain"
	"github.com/smartchef/skillet/pkg/graph"
	"github.com/smartchef/skillet/pkg/ports"
	"github.com/smartchef/skillet/pkg/recipe"
)

// CookResult is the structured output of the cook_recipe tool.
type CookResult struct {
	GeneratedRecipe string            `json:"generated_recipe" jsonschema_description:"The recipe as generated, or an error payload"`
	AdjustedRecipe  string            `json:"adjusted_recipe,omitempty" jsonschema_description:"The recipe after dietary adjustment, when performed"`
	Substitutions   map[string]string `json:"substitutions" jsonschema_description:"Ingredient to substitute mapping"`
	Favorites       []string          `json:"favorites" jsonschema_description:"Recipes saved to favorites during this run"`
}

// PlanResult is the structured output of the plan_meals tool.
type PlanResult struct {
	MealPlan     map[string][]string `json:"meal_plan" jsonschema_description:"Day to meals mapping"`
	ShoppingList []string            `json:"shopping_list" jsonschema_description:"Ingredients to buy"`
}

// Server wraps the workflows behind an MCP server.
type Server struct {
	completer ports.Completer
	favorites ports.FavoriteStore
	logger    *slog.Logger
	stepOpts  []recipe.StepsOption
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithFavoriteStore attaches the durable favorites book.
func WithFavoriteStore(store ports.FavoriteStore) Option {
	return func(s *Server) {
		s.favorites = store
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStepOptions forwards options (model, temperature) to every tool
// call's step set.
func WithStepOptions(opts ...recipe.StepsOption) Option {
	return func(s *Server) {
		s.stepOpts = append(s.stepOpts, opts...)
	}
}

// NewServer creates the MCP surface over a completion service.
func NewServer(completer ports.Completer, version string, opts ...Option) *Server {
	s := &Server{
		completer: completer,
		logger:    slog.Default(),
		mcpServer: server.NewMCPServer("skillet-mcp", version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	cookTool := mcp.NewTool("cook_recipe",
		mcp.WithDescription("Generate a recipe from ingredients, adjust it for dietary restrictions, and suggest ingredient substitutions."),
		mcp.WithString("ingredients", mcp.Required(), mcp.Description("Comma-separated ingredient list")),
		mcp.WithString("dietary_restrictions", mcp.Description("Comma-separated dietary restrictions (optional)")),
		mcp.WithString("preferences", mcp.Description("Comma-separated taste or cuisine preferences (optional)")),
		mcp.WithBoolean("save_to_favorites", mcp.Description("Save the resulting recipe to favorites")),
		mcp.WithString("notes", mcp.Description("Personal notes to record with the recipe (optional)")),
		mcp.WithOutputSchema[CookResult](),
	)
	s.mcpServer.AddTool(cookTool, mcp.NewStructuredToolHandler(s.handleCookRecipe))

	planTool := mcp.NewTool("plan_meals",
		mcp.WithDescription("Build a week-long meal plan and a shopping list from available ingredients."),
		mcp.WithString("ingredients", mcp.Required(), mcp.Description("Comma-separated ingredient list")),
		mcp.WithString("dietary_restrictions", mcp.Description("Comma-separated dietary restrictions (optional)")),
		mcp.WithString("preferences", mcp.Description("Comma-separated taste or cuisine preferences (optional)")),
		mcp.WithOutputSchema[PlanResult](),
	)
	s.mcpServer.AddTool(planTool, mcp.NewStructuredToolHandler(s.handlePlanMeals))

	s.mcpServer.AddTool(mcp.NewTool("get_workflow",
		mcp.WithDescription("Get the recipe workflow topology for introspection."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		doc, err := s.workflowDoc()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("inspect failed: %v", err)), nil
		}
		return mcp.NewToolResultText(doc), nil
	})
}

func (s *Server) handleCookRecipe(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (CookResult, error) {
	ingredients, _ := args["ingredients"].(string)
	restrictions, _ := args["dietary_restrictions"].(string)
	preferences, _ := args["preferences"].(string)
	notes, _ := args["notes"].(string)
	save, _ := args["save_to_favorites"].(bool)

	saveAnswer := "no"
	if save {
		saveAnswer = "yes"
	}
	// Feedback is not solicited over MCP; the scripted blank is a valid
	// "no feedback" answer.
	prompter := scripted.New(ingredients, restrictions, preferences, "", saveAnswer, notes)

	final, err := s.run(ctx, prompter, recipe.New)
	if err != nil {
		return CookResult{}, fmt.Errorf("cook recipe failed: %w", err)
	}

	return CookResult{
		GeneratedRecipe: final.GeneratedRecipe,
		AdjustedRecipe:  final.AdjustedRecipe,
		Substitutions:   final.Substitutions,
		Favorites:       final.Favorites,
	}, nil
}

func (s *Server) handlePlanMeals(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (PlanResult, error) {
	ingredients, _ := args["ingredients"].(string)
	restrictions, _ := args["dietary_restrictions"].(string)
	preferences, _ := args["preferences"].(string)

	prompter := scripted.New(ingredients, restrictions, preferences)

	final, err := s.run(ctx, prompter, recipe.NewPlanner)
	if err != nil {
		return PlanResult{}, fmt.Errorf("plan meals failed: %w", err)
	}

	return PlanResult{
		MealPlan:     final.MealPlan,
		ShoppingList: final.ShoppingList,
	}, nil
}

func (s *Server) run(ctx context.Context, prompter ports.Prompter, assemble func(*recipe.Steps) (*graph.Graph, error)) (domain.State, error) {
	opts := []recipe.StepsOption{recipe.WithLogger(s.logger)}
	if s.favorites != nil {
		opts = append(opts, recipe.WithFavoriteStore(s.favorites))
	}
	opts = append(opts, s.stepOpts...)
	steps := recipe.NewSteps(s.completer, prompter, opts...)

	wf, err := assemble(steps)
	if err != nil {
		return domain.State{}, fmt.Errorf("workflow assembly: %w", err)
	}
	eng := runtime.NewEngine(wf, runtime.WithLogger(s.logger))
	return eng.Run(ctx, domain.State{})
}

func (s *Server) workflowDoc() (string, error) {
	wf, err := recipe.New(recipe.NewSteps(s.completer, scripted.New()))
	if err != nil {
		return "", err
	}
	type edgeDoc struct {
		From        string `json:"from"`
		To          string `json:"to"`
		Conditional bool   `json:"conditional,omitempty"`
	}
	edges := make([]edgeDoc, 0)
	for _, e := range wf.EdgeViews() {
		edges = append(edges, edgeDoc{From: string(e.From), To: string(e.To), Conditional: e.Conditional})
	}
	doc, err := json.Marshal(map[string]any{
		"entry": string(wf.Entry()),
		"edges": edges,
	})
	if err != nil {
		return "", err
	}
	return string(doc), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("skillet://workflow", "Recipe Workflow Topology",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		doc, err := s.workflowDoc()
		if err != nil {
			return nil, fmt.Errorf("failed to inspect workflow: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "skillet://workflow",
				MIMEType: "application/json",
				Text:     doc,
			},
		}, nil
	})
}
