package cli

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/smartchef/skillet"
	"github.com/smartchef/skillet/internal/config"
	"github.com/smartchef/skillet/internal/logging"
	"github.com/smartchef/skillet/internal/presentation/tui"
	"github.com/smartchef/skillet/pkg/adapters/console"
	"github.com/smartchef/skillet/pkg/domain"
	"github.com/smartchef/skillet/pkg/recipe"
)

// RunOptions contains the configuration for the interactive commands.
type RunOptions struct {
	ConfigPath string
	Debug      bool
	NoBanner   bool
}

func setup(opts RunOptions) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	level := logging.ParseLevel(cfg.Log.Level)
	if opts.Debug {
		level = slog.LevelDebug
	}
	return cfg, logging.New(level), nil
}

// RunCook drives the full recipe workflow on the terminal.
func RunCook(ctx context.Context, opts RunOptions) error {
	cfg, logger, err := setup(opts)
	if err != nil {
		return err
	}

	d := buildDeps(cfg, logger)
	defer d.cleanup()

	if !opts.NoBanner {
		tui.PrintBanner()
	}

	stepOpts := stepOptions(cfg, logger)
	if d.favorites != nil {
		stepOpts = append(stepOpts, recipe.WithFavoriteStore(d.favorites))
	}
	steps := recipe.NewSteps(d.completer, console.New(), stepOpts...)

	wf, err := recipe.New(steps)
	if err != nil {
		return fmt.Errorf("error assembling workflow: %w", err)
	}

	eng := skillet.New(wf, skillet.WithLogger(logger))
	final, err := eng.Run(ctx, domain.State{})
	if err != nil {
		return fmt.Errorf("error running workflow: %w", err)
	}

	printCookResult(final)
	return nil
}

// RunPlan drives the meal-planner workflow on the terminal.
func RunPlan(ctx context.Context, opts RunOptions) error {
	cfg, logger, err := setup(opts)
	if err != nil {
		return err
	}

	d := buildDeps(cfg, logger)
	defer d.cleanup()

	if !opts.NoBanner {
		tui.PrintBanner()
	}

	steps := recipe.NewSteps(d.completer, console.New(), stepOptions(cfg, logger)...)
	wf, err := recipe.NewPlanner(steps)
	if err != nil {
		return fmt.Errorf("error assembling workflow: %w", err)
	}

	eng := skillet.New(wf, skillet.WithLogger(logger))
	final, err := eng.Run(ctx, domain.State{})
	if err != nil {
		return fmt.Errorf("error running workflow: %w", err)
	}

	printPlanResult(final)
	return nil
}

func printCookResult(state domain.State) {
	render := tui.NewRenderer()

	recipeText := state.BestRecipe()
	if recipeText != "" {
		fmt.Println(render("# Your Recipe\n\n" + recipeText))
	}

	if len(state.Substitutions) > 0 {
		var sb strings.Builder
		sb.WriteString("## Substitutions\n\n")
		for _, ingredient := range sortedKeys(state.Substitutions) {
			fmt.Fprintf(&sb, "- **%s**: %s\n", ingredient, state.Substitutions[ingredient])
		}
		fmt.Println(render(sb.String()))
	}

	if len(state.Favorites) > 0 {
		fmt.Println("Recipe saved to favorites.")
	}
}

func printPlanResult(state domain.State) {
	render := tui.NewRenderer()

	if len(state.MealPlan) > 0 {
		var sb strings.Builder
		sb.WriteString("# Meal Plan\n\n")
		for _, day := range sortedPlanKeys(state.MealPlan) {
			fmt.Fprintf(&sb, "## %s\n\n", day)
			for _, meal := range state.MealPlan[day] {
				fmt.Fprintf(&sb, "- %s\n", meal)
			}
			sb.WriteString("\n")
		}
		fmt.Println(render(sb.String()))
	}

	if len(state.ShoppingList) > 0 {
		var sb strings.Builder
		sb.WriteString("## Shopping List\n\n")
		for _, item := range state.ShoppingList {
			fmt.Fprintf(&sb, "- %s\n", item)
		}
		fmt.Println(render(sb.String()))
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var weekdayOrder = map[string]int{
	"monday": 1, "tuesday": 2, "wednesday": 3, "thursday": 4,
	"friday": 5, "saturday": 6, "sunday": 7,
}

// sortedPlanKeys orders recognized weekday names by week position and
// anything else alphabetically after them.
func sortedPlanKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		wi, oki := weekdayOrder[strings.ToLower(keys[i])]
		wj, okj := weekdayOrder[strings.ToLower(keys[j])]
		switch {
		case oki && okj:
			return wi < wj
		case oki:
			return true
		case okj:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}
