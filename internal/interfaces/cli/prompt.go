package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const clearSequence = "\033[H\033[2J"

// prompter reads one answer per line from the session input.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// ask writes label and returns the next input line without its line ending.
// It returns io.EOF only when the input is exhausted and no text was read.
func (p *prompter) ask(label string) (string, error) {
	if label != "" {
		if _, err := io.WriteString(p.out, label); err != nil {
			return "", err
		}
	}

	line, err := p.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *prompter) println(args ...any) {
	_, _ = fmt.Fprintln(p.out, args...)
}

func (p *prompter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

// isTerminal reports whether w is a terminal file descriptor.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// normalizeCommand lower-cases and trims a menu command.
func normalizeCommand(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// normalizeAnswer upper-cases and trims a Y/N answer.
func normalizeAnswer(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
