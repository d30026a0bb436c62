package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the operator a question and returns the raw answer with
// surrounding whitespace stripped.
type Prompter interface {
	Ask(prompt string) (string, error)
}

// StdinPrompter reads one line per question from an input stream,
// normally os.Stdin.
type StdinPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewStdinPrompter(in io.Reader, out io.Writer) *StdinPrompter {
	return &StdinPrompter{in: bufio.NewReader(in), out: out}
}

func (p *StdinPrompter) Ask(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
