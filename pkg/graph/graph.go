package graph

import (
	"context"
	"fmt"

	"github.com/smartchef/skillet/pkg/domain"
)

// NodeID identifies a workflow node.
type NodeID string

// End is the terminal marker. An edge or router pointing at End finishes the
// run; End itself is never executed.
const End NodeID = "__end__"

// StepFunc is a named unit of computation: it reads the full current state
// and returns only the fields it changed. Expected collaborator failures
// (API errors) must be caught inside the step and converted into textual
// error payloads; a non-nil error from a StepFunc is treated as a
// configuration or programming fault and aborts the run.
type StepFunc func(ctx context.Context, state domain.State) (domain.Update, error)

// RouterFunc is a pure function evaluated after a designated node. It
// inspects the current state and returns the next node to run, which must
// belong to the router's declared allowed set.
type RouterFunc func(state domain.State) NodeID

type router struct {
	fn      RouterFunc
	allowed map[NodeID]struct{}
	order   []NodeID
}

// Builder accumulates a workflow declaration. It exclusively owns the
// name-to-function registry; Compile validates the declaration and freezes
// it into an immutable Graph.
type Builder struct {
	steps   map[NodeID]StepFunc
	order   []NodeID
	edges   map[NodeID]NodeID
	routers map[NodeID]*router
	entry   NodeID
	errs    []error
}

// New creates an empty workflow builder.
func New() *Builder {
	return &Builder{
		steps:   make(map[NodeID]StepFunc),
		edges:   make(map[NodeID]NodeID),
		routers: make(map[NodeID]*router),
	}
}

// AddNode registers a named step. Names must be unique.
func (b *Builder) AddNode(id NodeID, fn StepFunc) *Builder {
	if _, exists := b.steps[id]; exists {
		b.errs = append(b.errs, fmt.Errorf("%w: %s", ErrDuplicateNode, id))
		return b
	}
	if fn == nil {
		b.errs = append(b.errs, fmt.Errorf("node %s: nil step function", id))
		return b
	}
	b.steps[id] = fn
	b.order = append(b.order, id)
	return b
}

// AddEdge declares an unconditional successor for a node.
func (b *Builder) AddEdge(from, to NodeID) *Builder {
	if _, dup := b.edges[from]; dup {
		b.errs = append(b.errs, fmt.Errorf("%w: %s", ErrAmbiguousExit, from))
		return b
	}
	b.edges[from] = to
	return b
}

// AddConditionalEdges attaches a router to a node. The router may only
// return one of the allowed destinations; anything else fails the run.
func (b *Builder) AddConditionalEdges(from NodeID, fn RouterFunc, allowed ...NodeID) *Builder {
	if _, dup := b.routers[from]; dup {
		b.errs = append(b.errs, fmt.Errorf("%w: %s", ErrAmbiguousExit, from))
		return b
	}
	if fn == nil {
		b.errs = append(b.errs, fmt.Errorf("node %s: nil router function", from))
		return b
	}
	set := make(map[NodeID]struct{}, len(allowed))
	for _, id := range allowed {
		set[id] = struct{}{}
	}
	b.routers[from] = &router{fn: fn, allowed: set, order: allowed}
	return b
}

// SetEntryPoint declares the node a run starts from.
func (b *Builder) SetEntryPoint(id NodeID) *Builder {
	b.entry = id
	return b
}

// Compile validates the declaration and returns the immutable graph.
//
// Validation rules: the entry point is declared and registered; every edge
// and router destination references a registered node (or End); every
// registered node has exactly one way out, either a single unconditional
// edge or a single router with a non-empty destination set; the graph is
// acyclic.
func (b *Builder) Compile() (*Graph, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	if b.entry == "" {
		return nil, ErrNoEntryPoint
	}
	if _, ok := b.steps[b.entry]; !ok {
		return nil, fmt.Errorf("entry point: %w: %s", ErrUnknownNode, b.entry)
	}

	for from, to := range b.edges {
		if _, ok := b.steps[from]; !ok {
			return nil, fmt.Errorf("edge source: %w: %s", ErrUnknownNode, from)
		}
		if to != End {
			if _, ok := b.steps[to]; !ok {
				return nil, fmt.Errorf("edge from %s: %w: %s", from, ErrUnknownNode, to)
			}
		}
	}
	for from, r := range b.routers {
		if _, ok := b.steps[from]; !ok {
			return nil, fmt.Errorf("router source: %w: %s", ErrUnknownNode, from)
		}
		if len(r.allowed) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyRouter, from)
		}
		for dest := range r.allowed {
			if dest == End {
				continue
			}
			if _, ok := b.steps[dest]; !ok {
				return nil, fmt.Errorf("router at %s: %w: %s", from, ErrUnknownNode, dest)
			}
		}
	}

	for _, id := range b.order {
		_, hasEdge := b.edges[id]
		_, hasRouter := b.routers[id]
		if hasEdge && hasRouter {
			return nil, fmt.Errorf("%w: %s", ErrAmbiguousExit, id)
		}
		if !hasEdge && !hasRouter {
			return nil, fmt.Errorf("%w: %s", ErrNoExit, id)
		}
	}

	g := &Graph{
		steps:   b.steps,
		order:   append([]NodeID(nil), b.order...),
		edges:   b.edges,
		routers: b.routers,
		entry:   b.entry,
	}
	if err := g.checkAcyclic(); err != nil {
		return nil, err
	}
	return g, nil
}

// Graph is a compiled, validated workflow declaration. It is immutable and
// safe for concurrent use by independent engine instances.
type Graph struct {
	steps   map[NodeID]StepFunc
	order   []NodeID
	edges   map[NodeID]NodeID
	routers map[NodeID]*router
	entry   NodeID
}

// Entry returns the entry node.
func (g *Graph) Entry() NodeID {
	return g.entry
}

// Len returns the number of registered nodes.
func (g *Graph) Len() int {
	return len(g.order)
}

// Nodes returns the node IDs in declaration order.
func (g *Graph) Nodes() []NodeID {
	return append([]NodeID(nil), g.order...)
}

// Step looks up the function registered for a node.
func (g *Graph) Step(id NodeID) (StepFunc, bool) {
	fn, ok := g.steps[id]
	return fn, ok
}

// Next determines the node that follows id given the current state. For a
// node with a router, the router is consulted and its answer checked against
// the declared allowed set; otherwise the single unconditional edge is
// followed.
func (g *Graph) Next(id NodeID, state domain.State) (NodeID, error) {
	if r, ok := g.routers[id]; ok {
		dest := r.fn(state)
		if _, allowed := r.allowed[dest]; !allowed {
			return "", fmt.Errorf("%w: node %s returned %q", ErrRouteNotAllowed, id, dest)
		}
		return dest, nil
	}
	to, ok := g.edges[id]
	if !ok {
		// Unreachable for a compiled graph; kept as a guard.
		return "", fmt.Errorf("%w: %s", ErrNoExit, id)
	}
	return to, nil
}

// EdgeView describes one declared transition, for introspection and
// visualization.
type EdgeView struct {
	From        NodeID
	To          NodeID
	Conditional bool
}

// EdgeViews returns every declared transition in declaration order, with
// router destinations expanded into individual conditional edges.
func (g *Graph) EdgeViews() []EdgeView {
	var views []EdgeView
	for _, id := range g.order {
		if to, ok := g.edges[id]; ok {
			views = append(views, EdgeView{From: id, To: to})
			continue
		}
		if r, ok := g.routers[id]; ok {
			for _, dest := range r.order {
				views = append(views, EdgeView{From: id, To: dest, Conditional: true})
			}
		}
	}
	return views
}

// checkAcyclic rejects declarations with a cycle. It follows unconditional
// edges and every router destination; the workflow is sequential by
// construction, so any back edge is a declaration mistake.
func (g *Graph) checkAcyclic() error {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	marks := make(map[NodeID]int, len(g.order))

	var visit func(id NodeID) error
	visit = func(id NodeID) error {
		if id == End {
			return nil
		}
		switch marks[id] {
		case visiting:
			return fmt.Errorf("%w: at node %s", ErrCycle, id)
		case done:
			return nil
		}
		marks[id] = visiting
		if to, ok := g.edges[id]; ok {
			if err := visit(to); err != nil {
				return err
			}
		}
		if r, ok := g.routers[id]; ok {
			for _, dest := range r.order {
				if err := visit(dest); err != nil {
					return err
				}
			}
		}
		marks[id] = done
		return nil
	}

	for _, id := range g.order {
		if err := visit(id); err != nil {
			return err
		}
	}
	return nil
}
