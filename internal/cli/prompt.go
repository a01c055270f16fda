package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNotATerminal indicates a confirmation was required but stdin is not
// interactive. The prompt fails closed rather than assume consent.
var ErrNotATerminal = errors.New("cli: confirmation required but stdin is not a terminal (pass --yes to skip)")

// Confirm prints the summary and asks a single yes/no question covering
// the whole pending operation. Anything other than y/yes declines.
func Confirm(summary string) (bool, error) {
	return confirm(summary, os.Stdin, os.Stdout, term.IsTerminal(int(os.Stdin.Fd())))
}

func confirm(summary string, in io.Reader, out io.Writer, isTTY bool) (bool, error) {
	if !isTTY {
		return false, ErrNotATerminal
	}
	fmt.Fprintln(out, summary)
	fmt.Fprint(out, "Proceed? [y/N] ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
