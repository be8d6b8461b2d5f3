package cli

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// readPassword is a seam for tests.
var readPassword = term.ReadPassword

// promptToken asks the user for the API token without echoing it. Returns an
// empty string when stdin is not a terminal.
func promptToken(out *os.File) (string, error) {

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", nil
	}

	fmt.Fprint(out, "API token: ")
	b, err := readPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("error reading token: %w", err)
	}

	return string(b), nil
}
