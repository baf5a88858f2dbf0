package mocks

import (
	"sync"

	"github.com/user/stereopipe/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	InputSetJSON  []byte
	TiePointsJSON []byte
	TiePointPlot  []byte
	Previews      map[string][]byte
	StepLogs      map[string]string
	RunJSON       []byte
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:  enabled,
		Previews: make(map[string][]byte),
		StepLogs: make(map[string]string),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveInputSetJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InputSetJSON = data
	return nil
}

func (m *DebugSink) SaveTiePointsJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TiePointsJSON = data
	return nil
}

func (m *DebugSink) SaveTiePointPlot(png []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TiePointPlot = png
	return nil
}

func (m *DebugSink) SavePreview(name string, png []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Previews[name] = png
	return nil
}

func (m *DebugSink) SaveStepLog(step string, output string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StepLogs[step] = output
	return nil
}

func (m *DebugSink) SaveRunJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RunJSON = data
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
