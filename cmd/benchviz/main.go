package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess     = 0 // Figure written, or all checks passed
	ExitCheckFailed = 1 // check --strict found consistency warnings
	ExitError       = 2 // Configuration, validation or I/O error
)

// CheckFailureError indicates that the dataset checks ran successfully,
// but one or more advisory checks failed under --strict.
type CheckFailureError struct {
	Message string
}

func (e *CheckFailureError) Error() string {
	return e.Message
}

func main() {
	os.Exit(exitCode(execute()))
}

// exitCode reports err on stderr and maps it to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintln(os.Stderr, err) //nolint:errcheck

	var checkFailureErr *CheckFailureError
	if errors.As(err, &checkFailureErr) {
		return ExitCheckFailed
	}
	return ExitError
}
