// Package graph renders workflow topologies as Mermaid flowcharts.
package graph

import (
	"fmt"
	"strings"

	wf "github.com/smartchef/skillet/pkg/graph"
)

// GenerateMermaid produces a Mermaid flowchart from a compiled workflow.
// Semantic styling:
//   - Entry: ((Circle))
//   - End: ((Circle)) labeled End
//   - Default: [Rectangle]
//
// Conditional transitions are drawn as dotted arrows.
func GenerateMermaid(g *wf.Graph) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, id := range g.Nodes() {
		safeID := sanitizeMermaidID(string(id))
		opener, closer := "[", "]"
		if id == g.Entry() {
			opener, closer = "((", "))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, id, closer))
	}
	sb.WriteString("    __end__((\"End\"))\n")

	for _, e := range g.EdgeViews() {
		arrow := "-->"
		if e.Conditional {
			arrow = "-.->"
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n",
			sanitizeMermaidID(string(e.From)), arrow, sanitizeMermaidID(string(e.To))))
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
