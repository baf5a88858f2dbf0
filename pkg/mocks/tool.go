package mocks

import (
	"context"
	"sync"

	"github.com/user/stereopipe/pkg/ports"
)

// ToolCall records one StereoTool invocation.
type ToolCall struct {
	Name string
	Dir  string
	Args []string
}

// StereoTool is a mock implementation of ports.StereoTool. Each call is
// recorded; OnCall lets tests script results and create artifact files.
type StereoTool struct {
	mu    sync.Mutex
	calls []ToolCall

	// OnCall, if set, is invoked for every subcommand. Returning an error
	// makes the subcommand fail.
	OnCall func(call ToolCall) (ports.CommandResult, error)
}

// NewStereoTool creates a new mock StereoTool.
func NewStereoTool() *StereoTool {
	return &StereoTool{}
}

func (m *StereoTool) invoke(name, dir string, args ...string) (ports.CommandResult, error) {
	call := ToolCall{Name: name, Dir: dir, Args: args}
	m.mu.Lock()
	m.calls = append(m.calls, call)
	m.mu.Unlock()

	if m.OnCall != nil {
		return m.OnCall(call)
	}
	return ports.CommandResult{}, nil
}

func (m *StereoTool) Tapioca(ctx context.Context, dir, pattern string, resolution int) (ports.CommandResult, error) {
	return m.invoke("Tapioca", dir, pattern)
}

func (m *StereoTool) Convert2GenBundle(ctx context.Context, dir, pairPattern, rpcPattern, orientation, chSys string, degree int) (ports.CommandResult, error) {
	return m.invoke("Convert2GenBundle", dir, pairPattern, rpcPattern, orientation, chSys)
}

func (m *StereoTool) Campari(ctx context.Context, dir, pattern, orientIn, orientOut string) (ports.CommandResult, error) {
	return m.invoke("Campari", dir, pattern, orientIn, orientOut)
}

func (m *StereoTool) Malt(ctx context.Context, dir, mode, pattern, orientation string, opts ports.MaltOptions) (ports.CommandResult, error) {
	return m.invoke("Malt", dir, mode, pattern, orientation)
}

func (m *StereoTool) GrShade(ctx context.Context, dir, dsm, mode, mask string) (ports.CommandResult, error) {
	return m.invoke("GrShade", dir, dsm, mode, mask)
}

func (m *StereoTool) Tawny(ctx context.Context, dir, orthoDir string) (ports.CommandResult, error) {
	return m.invoke("Tawny", dir, orthoDir)
}

// Calls returns the recorded invocations in order.
func (m *StereoTool) Calls() []ToolCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]ToolCall, len(m.calls))
	copy(result, m.calls)
	return result
}

var _ ports.StereoTool = (*StereoTool)(nil)

// Georeferencer is a mock implementation of ports.Georeferencer.
type Georeferencer struct {
	mu    sync.Mutex
	calls []ToolCall

	// Bounds records the extent of the last Translate call.
	Bounds ports.GeoBounds

	// OnTranslate, if set, is invoked for every Translate call.
	OnTranslate func(dir, input, output, srs string, b ports.GeoBounds) (ports.CommandResult, error)
}

// NewGeoreferencer creates a new mock Georeferencer.
func NewGeoreferencer() *Georeferencer {
	return &Georeferencer{}
}

func (m *Georeferencer) Translate(ctx context.Context, dir, input, output, srs string, b ports.GeoBounds) (ports.CommandResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, ToolCall{Name: "Translate", Dir: dir, Args: []string{input, output, srs}})
	m.Bounds = b
	m.mu.Unlock()

	if m.OnTranslate != nil {
		return m.OnTranslate(dir, input, output, srs, b)
	}
	return ports.CommandResult{}, nil
}

// Calls returns the recorded invocations in order.
func (m *Georeferencer) Calls() []ToolCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]ToolCall, len(m.calls))
	copy(result, m.calls)
	return result
}

var _ ports.Georeferencer = (*Georeferencer)(nil)
