package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/user/stereopipe/pkg/ports"
)

// Runner is a mock implementation of ports.CommandRunner. It records every
// command and lets tests script results and side effects via OnRun.
type Runner struct {
	mu       sync.Mutex
	commands []ports.Command

	// Executables maps names to paths for LookPath. Missing names fail.
	Executables map[string]string

	// OnRun, if set, is invoked for every Run call. Tests use it to create
	// the artifact files a real process would leave behind.
	OnRun func(cmd ports.Command) (ports.CommandResult, error)
}

// NewRunner creates a new mock Runner that resolves every executable.
func NewRunner() *Runner {
	return &Runner{
		Executables: map[string]string{
			"mm3d":           "/usr/bin/mm3d",
			"gdal_translate": "/usr/bin/gdal_translate",
		},
	}
}

func (m *Runner) LookPath(name string) (string, error) {
	if path, ok := m.Executables[name]; ok {
		return path, nil
	}
	return "", fmt.Errorf("executable not found: %s", name)
}

func (m *Runner) Run(ctx context.Context, cmd ports.Command) (ports.CommandResult, error) {
	m.mu.Lock()
	m.commands = append(m.commands, cmd)
	m.mu.Unlock()

	if m.OnRun != nil {
		result, err := m.OnRun(cmd)
		result.Command = cmd
		return result, err
	}
	return ports.CommandResult{Command: cmd}, nil
}

// Commands returns the recorded commands in execution order.
func (m *Runner) Commands() []ports.Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]ports.Command, len(m.commands))
	copy(result, m.commands)
	return result
}

var _ ports.CommandRunner = (*Runner)(nil)
