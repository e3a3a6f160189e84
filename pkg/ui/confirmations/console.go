// Package confirmations provides the yes/no prompts used before overwriting
// existing files.
package confirmations

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// ConsoleConfirmer asks on the console. On a terminal it shows an
// interactive prompt; otherwise it reads one line from its input and
// treats y or yes as consent. End of input declines.
type ConsoleConfirmer struct {
	out         io.Writer
	reader      *bufio.Reader
	interactive bool
}

// NewConsoleConfirmer creates a confirmer reading stdin; line prompts go to stderr
func NewConsoleConfirmer() *ConsoleConfirmer {
	interactive := isTerminal(os.Stdin) && isTerminal(os.Stdout)
	c := NewLineConfirmer(os.Stdin, os.Stderr)
	c.interactive = interactive
	return c
}

// NewLineConfirmer creates a non-interactive confirmer reading answers
// line by line from in and writing prompts to out
func NewLineConfirmer(in io.Reader, out io.Writer) *ConsoleConfirmer {
	return &ConsoleConfirmer{
		out:    out,
		reader: bufio.NewReader(in),
	}
}

// Confirm asks prompt and reports whether the user agreed
func (c *ConsoleConfirmer) Confirm(prompt string) (bool, error) {
	if c.interactive {
		return pterm.DefaultInteractiveConfirm.
			WithDefaultValue(false).
			Show(prompt)
	}

	if _, err := fmt.Fprintf(c.out, "%s [y/N]: ", prompt); err != nil {
		return false, err
	}

	line, err := c.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read user input: %w", err)
	}
	if err == io.EOF && line == "" {
		_, _ = fmt.Fprintln(c.out)
		return false, nil
	}

	return isYes(line), nil
}

func isYes(answer string) bool {
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
