package cli

import (
	presentation "github.com/smartchef/skillet/internal/presentation/graph"
	"github.com/smartchef/skillet/pkg/recipe"
)

// WorkflowMermaid returns the Mermaid source of the named workflow
// ("cook" or "plan").
func WorkflowMermaid(name string) (string, error) {
	// Topology only; the steps are never executed, so collaborators can
	// stay nil.
	steps := recipe.NewSteps(nil, nil)

	assemble := recipe.New
	if name == "plan" {
		assemble = recipe.NewPlanner
	}
	wf, err := assemble(steps)
	if err != nil {
		return "", err
	}
	return presentation.GenerateMermaid(wf), nil
}
