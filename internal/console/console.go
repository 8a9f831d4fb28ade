// Package console handles the interactive terminal surface: prompts,
// confirmations, colors, and the small formatting helpers the session
// engines print with.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Console reads answers line by line and writes prompts and status output.
// Session engines depend on nothing more than a line of text in and a line
// of text out.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) Println(args ...any) {
	fmt.Fprintln(c.out, args...)
}

// Ask prints a prompt and reads one line. io.EOF propagates up: an
// interrupted input wait ends the session after the last committed card.
func (c *Console) Ask(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// AskNonEmpty keeps prompting until the user types something.
func (c *Console) AskNonEmpty(prompt string) (string, error) {
	for {
		text, err := c.Ask(prompt)
		if err != nil {
			return "", err
		}
		if text != "" {
			return text, nil
		}
	}
}

// Confirm asks a yes/no question and retries on anything else.
func (c *Console) Confirm(format string, args ...any) (bool, error) {
	prompt := fmt.Sprintf(format, args...)
	for {
		choice, err := c.Ask(strings.TrimRight(prompt, " ") + " ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(choice) {
		case "yes", "y", "ye", "yep", "yeah":
			return true, nil
		case "no", "n", "nah", "nay":
			return false, nil
		default:
			c.Println("Please respond with 'yes' or 'no'")
		}
	}
}
