// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"path/filepath"

	"github.com/user/stereopipe/pkg/ports"
)

// Sink saves diagnostic output to files under a base directory.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
}

// New creates a new Sink rooted at baseDir.
func New(baseDir string, fs ports.FileSystem) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveInputSetJSON saves the discovered input set as JSON.
func (s *Sink) SaveInputSetJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "inputset.json"), data)
}

// SaveTiePointsJSON saves the tie-point statistics as JSON.
func (s *Sink) SaveTiePointsJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "tiepoints.json"), data)
}

// SaveTiePointPlot saves the tie-point scatter plot as PNG.
func (s *Sink) SaveTiePointPlot(png []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "tiepoints.png"), png)
}

// SavePreview saves a named preview figure as PNG.
func (s *Sink) SavePreview(name string, png []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, name+".png"), png)
}

// SaveStepLog saves the captured console output of a pipeline step.
func (s *Sink) SaveStepLog(step string, output string) error {
	path := filepath.Join(s.baseDir, "logs", step+".log")
	return s.fs.WriteFile(path, []byte(output))
}

// SaveRunJSON saves the overall run result as JSON.
func (s *Sink) SaveRunJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "run.json"), data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
