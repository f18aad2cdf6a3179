// Package console implements ports.Prompter over an interactive terminal.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/smartchef/skillet/pkg/ports"
)

// Prompter reads answers line by line from an input stream, echoing styled
// labels to an output stream. Labels are only colored when the output is a
// real terminal.
type Prompter struct {
	reader  *bufio.Reader
	out     io.Writer
	profile termenv.Profile
}

// Option configures a Prompter.
type Option func(*Prompter)

// WithStreams replaces stdin/stdout, mainly for tests.
func WithStreams(in io.Reader, out io.Writer) Option {
	return func(p *Prompter) {
		p.reader = bufio.NewReader(in)
		p.out = out
		p.profile = termenv.Ascii
	}
}

// New creates a Prompter bound to os.Stdin and os.Stdout.
func New(opts ...Option) *Prompter {
	p := &Prompter{
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		profile: termenv.Ascii,
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		p.profile = termenv.ColorProfile()
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ ports.Prompter = (*Prompter)(nil)

// Line prints the label and reads one line of input. EOF with no pending
// text is returned as io.EOF so callers can distinguish "blank answer" from
// "input exhausted".
func (p *Prompter) Line(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprintf(p.out, "%s ", p.styleLabel(label))

	line, err := p.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Choice prints the label with its options and reads until one of the
// options (case-insensitive) is entered.
func (p *Prompter) Choice(ctx context.Context, label string, options []string) (string, error) {
	prompt := fmt.Sprintf("%s (%s)", label, strings.Join(options, "/"))
	for {
		answer, err := p.Line(ctx, prompt)
		if err != nil {
			return "", err
		}
		for _, opt := range options {
			if strings.EqualFold(answer, opt) {
				return opt, nil
			}
		}
		fmt.Fprintf(p.out, "%s\n", p.styleHint("Please answer "+strings.Join(options, " or ")+"."))
	}
}

func (p *Prompter) styleLabel(label string) string {
	return p.profile.String(label).Foreground(p.profile.Color("6")).Bold().String()
}

func (p *Prompter) styleHint(hint string) string {
	return p.profile.String(hint).Foreground(p.profile.Color("3")).String()
}
