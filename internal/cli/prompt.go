package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/filedeck/filedeck/internal/session"
)

// stdinIsTerminal reports whether confirmations can be asked interactively.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// prompter answers session confirmations on the terminal.
type prompter struct {
	in         io.Reader
	out        io.Writer
	assumeYes  bool
	isTerminal bool
}

func newPrompter() *prompter {
	return &prompter{
		in:         os.Stdin,
		out:        os.Stderr,
		assumeYes:  assumeYes,
		isTerminal: stdinIsTerminal(),
	}
}

// Confirmer returns the session confirmation callback. Without a terminal
// and without --yes every question is answered no.
func (p *prompter) Confirmer() session.Confirmer {
	return p.confirm
}

func (p *prompter) confirm(title, message string) bool {
	if p.assumeYes {
		return true
	}
	if !p.isTerminal {
		fmt.Fprintf(p.out, "%s: %s\n  (not a terminal, answering no; use --yes to confirm)\n", title, message)
		return false
	}

	reader := bufio.NewReader(p.in)
	for {
		fmt.Fprintf(p.out, "%s: %s [y/N]: ", title, message)
		input, err := reader.ReadString('\n')
		if err != nil && input == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(input)) {
		case "y", "yes":
			return true
		case "", "n", "no":
			return false
		default:
			fmt.Fprintln(p.out, "Invalid choice, please answer y or n.")
		}
	}
}
