package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// Test seams for the terminal calls.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// fder is implemented by *os.File.
type fder interface {
	Fd() uintptr
}

// readLine reads one line, trimming the newline. A final line without a
// newline is returned as is; io.EOF is only reported when nothing was read.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// prompt prints label and reads the answer with surrounding space removed.
func prompt(reader *bufio.Reader, w io.Writer, label string) (string, error) {
	if _, err := fmt.Fprint(w, label+": "); err != nil {
		return "", err
	}
	line, err := readLine(reader)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echo when in is a terminal. Input
// already sitting in reader (pasted lines, pipes, tests) is read from reader
// so no line is skipped or later run as a command.
func promptPassword(reader *bufio.Reader, in io.Reader, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, "Password: "); err != nil {
		return "", err
	}
	f, ok := in.(fder)
	if !ok || reader.Buffered() > 0 || !isTerminal(int(f.Fd())) {
		return readLine(reader)
	}
	pw, err := readPassword(int(f.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
