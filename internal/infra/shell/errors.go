package shell

import (
	"fmt"
	"strings"
	"time"
)

// CommandError is returned when a command exits non-zero, cannot be started,
// or exceeds its timeout. Output holds the combined stdout and stderr.
type CommandError struct {
	Command  string
	ExitCode int
	TimedOut bool
	Timeout  time.Duration
	Output   string
	Err      error
}

func (e *CommandError) Error() string {
	switch {
	case e.TimedOut:
		return fmt.Sprintf("command %q timed out after %s", e.Command, e.Timeout)
	case e.ExitCode < 0:
		return fmt.Sprintf("command %q failed to run: %v", e.Command, e.Err)
	default:
		return fmt.Sprintf("command %q exited with code %d: %s", e.Command, e.ExitCode, lastLine(e.Output))
	}
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")

	return lines[len(lines)-1]
}
