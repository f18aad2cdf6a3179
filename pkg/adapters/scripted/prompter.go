// Package scripted implements ports.Prompter over a fixed answer list, for
// non-interactive surfaces (HTTP, MCP) and tests.
package scripted

import (
	"context"
	"strings"
	"sync"

	"github.com/smartchef/skillet/pkg/ports"
)

// Prompter hands out pre-recorded answers in order. Once the answers are
// exhausted every further question receives an empty string, which the
// workflow steps treat as "nothing entered". Safe for concurrent use.
type Prompter struct {
	mu      sync.Mutex
	answers []string
	next    int
}

// New creates a Prompter that will answer with the given strings in order.
func New(answers ...string) *Prompter {
	return &Prompter{answers: answers}
}

var _ ports.Prompter = (*Prompter)(nil)

// Line returns the next scripted answer, trimmed.
func (p *Prompter) Line(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return strings.TrimSpace(p.take()), nil
}

// Choice returns the next scripted answer when it matches one of the options
// (case-insensitive). A scripted run has no user to re-ask, so an off-script
// or exhausted answer falls back to the last option, which is the
// conservative one in yes/no questions.
func (p *Prompter) Choice(ctx context.Context, label string, options []string) (string, error) {
	answer, err := p.Line(ctx, label)
	if err != nil {
		return "", err
	}
	for _, opt := range options {
		if strings.EqualFold(answer, opt) {
			return opt, nil
		}
	}
	if len(options) == 0 {
		return "", nil
	}
	return options[len(options)-1], nil
}

// Remaining reports how many scripted answers have not been consumed yet.
func (p *Prompter) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.answers) - p.next
}

func (p *Prompter) take() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.next >= len(p.answers) {
		return ""
	}
	answer := p.answers[p.next]
	p.next++
	return answer
}
