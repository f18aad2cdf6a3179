package ports

import "context"

// Prompter is the user-interaction surface consumed by workflow steps.
// Implementations may read from a terminal, an HTTP request payload, MCP
// tool arguments, or a scripted answer list. Steps never know which.
type Prompter interface {
	// Line solicits one freeform line of text. An empty string is a valid
	// "nothing entered" response.
	Line(ctx context.Context, label string) (string, error)

	// Choice solicits one of the given options.
	Choice(ctx context.Context, label string, options []string) (string, error)
}
