// Package nullsink provides a debug sink that discards all output.
package nullsink

import "github.com/user/stereopipe/pkg/ports"

// Sink discards all diagnostic output.
type Sink struct{}

// New creates a new null Sink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false so callers can skip preparing diagnostic data.
func (s *Sink) Enabled() bool { return false }

// SaveInputSetJSON does nothing.
func (s *Sink) SaveInputSetJSON(data []byte) error { return nil }

// SaveTiePointsJSON does nothing.
func (s *Sink) SaveTiePointsJSON(data []byte) error { return nil }

// SaveTiePointPlot does nothing.
func (s *Sink) SaveTiePointPlot(png []byte) error { return nil }

// SavePreview does nothing.
func (s *Sink) SavePreview(name string, png []byte) error { return nil }

// SaveStepLog does nothing.
func (s *Sink) SaveStepLog(step string, output string) error { return nil }

// SaveRunJSON does nothing.
func (s *Sink) SaveRunJSON(data []byte) error { return nil }

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
