package ports

import (
	"context"
	"strings"
	"time"
)

// Command describes a single external process invocation.
type Command struct {
	// Path is the absolute path of the executable.
	Path string
	// Args are the arguments, not including the executable name.
	Args []string
	// Dir is the working directory for the process.
	Dir string
}

// String returns the command line in a loggable form.
func (c Command) String() string {
	return c.Path + " " + strings.Join(c.Args, " ")
}

// CommandResult holds the outcome of an external process invocation.
type CommandResult struct {
	Command  Command
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// CommandRunner abstracts synchronous external process execution.
// Implementations block until the process exits.
type CommandRunner interface {
	// LookPath searches for an executable in the system PATH.
	LookPath(name string) (string, error)

	// Run executes the command and waits for it to finish. A non-zero exit
	// status is reported as a non-nil error alongside the captured result.
	Run(ctx context.Context, cmd Command) (CommandResult, error)
}
