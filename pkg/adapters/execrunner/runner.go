// Package execrunner provides a CommandRunner implementation using os/exec.
package execrunner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/user/stereopipe/pkg/ports"
)

// Runner implements ports.CommandRunner with real subprocesses.
type Runner struct{}

// New creates a new Runner.
func New() *Runner {
	return &Runner{}
}

// LookPath searches for an executable in the system PATH.
func (r *Runner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run executes the command and waits for it to finish, capturing stdout and
// stderr separately. A non-zero exit status is returned as an error that
// includes the captured stderr, alongside the result itself.
func (r *Runner) Run(ctx context.Context, cmd ports.Command) (ports.CommandResult, error) {
	var stdout, stderr bytes.Buffer

	c := exec.CommandContext(ctx, cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	err := c.Run()
	result := ports.CommandResult{
		Command:  cmd,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, fmt.Errorf("%s exited with code %d: %s",
				cmd.Path, result.ExitCode, stderr.String())
		}
		// Start failures, context cancellation, etc.
		result.ExitCode = -1
		return result, err
	}

	return result, nil
}

// Ensure Runner implements ports.CommandRunner
var _ ports.CommandRunner = (*Runner)(nil)
