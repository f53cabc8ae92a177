package shell

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// waitDelay bounds how long Run waits for output pipes after the process is killed.
const waitDelay = 5 * time.Second

// Runner invokes external commands with a bounded timeout.
type Runner struct {
	logger  *slog.Logger
	timeout time.Duration
}

// New creates a new command runner.
func New(logger *slog.Logger, timeout time.Duration) *Runner {
	return &Runner{
		logger:  logger,
		timeout: timeout,
	}
}

// Run executes the command and returns its combined output.
//
// Cancellation of ctx does not interrupt a running command: in-flight calls are
// bounded by the runner timeout only, so a termination request never leaves a
// half-applied helm operation behind.
func (r *Runner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmdLine := strings.Join(append([]string{name}, args...), " ")
	logger := r.logger.With("cmd", cmdLine)

	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	logger.DebugContext(ctx, "$ "+cmdLine)

	cmd := exec.CommandContext(runCtx, name, args...)
	cmd.WaitDelay = waitDelay

	out, err := cmd.CombinedOutput()
	output := string(out)

	for _, line := range strings.Split(strings.TrimRight(output, "\n"), "\n") {
		if line != "" {
			logger.DebugContext(ctx, "-> "+line)
		}
	}

	if err == nil {
		logger.DebugContext(ctx, "command finished", "code", 0)

		return output, nil
	}

	cmdErr := &CommandError{
		Command:  cmdLine,
		ExitCode: -1,
		Timeout:  r.timeout,
		Output:   output,
		Err:      err,
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		cmdErr.TimedOut = true
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		cmdErr.ExitCode = exitErr.ExitCode()
	}

	logger.DebugContext(ctx, "command failed", "code", cmdErr.ExitCode, "timedOut", cmdErr.TimedOut)

	return output, cmdErr
}
