package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/smartchef/skillet/pkg/domain"
	"github.com/smartchef/skillet/pkg/graph"
)

// Engine walks a compiled graph from its entry point to the terminal marker,
// executing steps strictly one at a time and merging their partial updates
// into the shared state record.
//
// An Engine instance owns exactly one state record per run. Concurrent
// workflow instances each need their own Engine and record.
type Engine struct {
	graph  *graph.Graph
	logger *slog.Logger
	hooks  []domain.LifecycleHooks
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks. May be given more than
// once; hooks fire in registration order.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = append(e.hooks, hooks)
	}
}

// NewEngine creates an engine for a compiled graph.
func NewEngine(g *graph.Graph, opts ...Option) *Engine {
	e := &Engine{
		graph:  g,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes the workflow from the entry point until the terminal marker,
// starting from the given state record, and returns the final record.
//
// Per-run step failures never surface here: steps convert expected
// collaborator failures into textual payloads. A non-nil error means a
// configuration or programming fault (nil step, disallowed route, merge of
// an unknown field) or a cancelled context.
func (e *Engine) Run(ctx context.Context, initial domain.State) (domain.State, error) {
	runID := uuid.NewString()
	log := e.logger.With("run_id", runID)

	state := initial.Clone()
	current := e.graph.Entry()

	// The graph is acyclic by construction, so a run visits each node at
	// most once. The bound is a backstop, not a control-flow mechanism.
	for steps := 0; current != graph.End; steps++ {
		if steps >= e.graph.Len() {
			return state, fmt.Errorf("run exceeded %d steps without reaching the terminal marker", e.graph.Len())
		}
		if err := ctx.Err(); err != nil {
			return state, fmt.Errorf("run cancelled before node %s: %w", current, err)
		}

		fn, ok := e.graph.Step(current)
		if !ok {
			return state, fmt.Errorf("%w: %s", graph.ErrUnknownNode, current)
		}

		started := time.Now()
		e.emitNodeEnter(ctx, runID, current)
		log.Debug("node enter", "node", current)

		update, err := fn(ctx, state)
		if err != nil {
			return state, fmt.Errorf("node %s: %w", current, err)
		}
		if err := state.Merge(update); err != nil {
			return state, fmt.Errorf("node %s: %w", current, err)
		}

		e.emitNodeLeave(ctx, runID, current, time.Since(started))
		log.Debug("node leave", "node", current, "duration", time.Since(started))

		next, err := e.graph.Next(current, state)
		if err != nil {
			return state, err
		}
		current = next
	}

	log.Debug("run finished")
	return state, nil
}

func (e *Engine) emitNodeEnter(ctx context.Context, runID string, node graph.NodeID) {
	if len(e.hooks) == 0 {
		return
	}
	ev := &domain.NodeEvent{
		Timestamp: time.Now(),
		Type:      domain.EventNodeEnter,
		RunID:     runID,
		NodeID:    string(node),
	}
	for _, h := range e.hooks {
		if h.OnNodeEnter != nil {
			h.OnNodeEnter(ctx, ev)
		}
	}
}

func (e *Engine) emitNodeLeave(ctx context.Context, runID string, node graph.NodeID, d time.Duration) {
	if len(e.hooks) == 0 {
		return
	}
	ev := &domain.NodeEvent{
		Timestamp: time.Now(),
		Type:      domain.EventNodeLeave,
		RunID:     runID,
		NodeID:    string(node),
		Duration:  d,
	}
	for _, h := range e.hooks {
		if h.OnNodeLeave != nil {
			h.OnNodeLeave(ctx, ev)
		}
	}
}
