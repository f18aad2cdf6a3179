/*
Package graph declares and compiles sequential workflow graphs.

A workflow is a fixed set of named steps connected by unconditional edges and
conditional branches (routers). The Builder accumulates the declaration;
Compile validates it (entry point set, all references resolved, exactly one
way out per node, no cycles) and freezes it into an immutable Graph that
the runtime engine walks.

	wf, err := graph.New().
		AddNode("fetch", fetchStep).
		AddNode("report", reportStep).
		SetEntryPoint("fetch").
		AddEdge("fetch", "report").
		AddEdge("report", graph.End).
		Compile()

Routers return a NodeID from a closed, declared set of destinations; the
engine fails loudly if a router strays outside it.
*/
package graph
