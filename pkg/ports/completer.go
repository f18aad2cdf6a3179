package ports

import "context"

// CompletionRequest carries one prompt to the text-completion service.
type CompletionRequest struct {
	Prompt      string
	Model       string
	Temperature float64
}

// Completer is the text-completion collaborator consumed by workflow steps.
// Complete is synchronous; transient failures are returned as errors so the
// calling step can catch them and convert them to textual diagnostics.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompleterFunc adapts a plain function to the Completer interface.
type CompleterFunc func(ctx context.Context, req CompletionRequest) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	return f(ctx, req)
}
