// Package skillet is the high-level entry point for embedding the SmartChef
// workflow engine. It wraps the internal runtime behind a small API; the
// building blocks live in pkg/graph, pkg/recipe and pkg/adapters.
package skillet

import (
	"context"
	"log/slog"

	"github.com/smartchef/skillet/internal/runtime"
	"github.com/smartchef/skillet/pkg/domain"
	"github.com/smartchef/skillet/pkg/graph"
)

// Version is the library and CLI version.
const Version = "0.3.0"

// Engine executes a compiled workflow graph.
type Engine struct {
	runtime *runtime.Engine
}

// Option defines a functional option for configuring the Engine.
type Option func(*[]runtime.Option)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *[]runtime.Option) {
		*opts = append(*opts, runtime.WithLogger(logger))
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(opts *[]runtime.Option) {
		*opts = append(*opts, runtime.WithLifecycleHooks(hooks))
	}
}

// New creates an engine for a compiled graph.
func New(g *graph.Graph, opts ...Option) *Engine {
	var rtOpts []runtime.Option
	for _, opt := range opts {
		opt(&rtOpts)
	}
	return &Engine{runtime: runtime.NewEngine(g, rtOpts...)}
}

// Run executes the workflow from its entry point and returns the final
// state record.
func (e *Engine) Run(ctx context.Context, initial domain.State) (domain.State, error) {
	return e.runtime.Run(ctx, initial)
}
