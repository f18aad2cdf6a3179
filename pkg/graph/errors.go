package graph

import "errors"

// Compilation errors. All of these are construction-time configuration
// faults, raised before any run starts.
var (
	// ErrNoEntryPoint is returned when Compile is called without SetEntryPoint.
	ErrNoEntryPoint = errors.New("no entry point declared")

	// ErrUnknownNode is returned when an edge, router destination, or the
	// entry point references a node that was never registered.
	ErrUnknownNode = errors.New("unknown node")

	// ErrDuplicateNode is returned when a node ID is registered twice.
	ErrDuplicateNode = errors.New("duplicate node")

	// ErrNoExit is returned when a non-terminal node has neither an
	// unconditional edge nor a router.
	ErrNoExit = errors.New("node has no way out")

	// ErrAmbiguousExit is returned when a node declares both an
	// unconditional edge and a router, or more than one of either.
	ErrAmbiguousExit = errors.New("node has more than one way out")

	// ErrEmptyRouter is returned when a router declares no allowed
	// destinations.
	ErrEmptyRouter = errors.New("router has no allowed destinations")

	// ErrCycle is returned when the declared graph is not acyclic.
	ErrCycle = errors.New("graph contains a cycle")
)

// ErrRouteNotAllowed is returned at run time when a router returns a
// destination outside its declared allowed set. This is a configuration
// fault, not a per-run step failure.
var ErrRouteNotAllowed = errors.New("router returned a destination outside its allowed set")
