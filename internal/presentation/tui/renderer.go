package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders recipe markdown using glamour.
// Falls back to the raw text when the renderer cannot be built (for example
// on a dumb terminal).
func NewRenderer() func(string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return func(markdown string) string { return markdown }
	}

	return func(markdown string) string {
		out, err := r.Render(markdown)
		if err != nil {
			return markdown
		}
		return out
	}
}
