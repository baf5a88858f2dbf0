// Package summarizer provides summary generation for pipeline runs.
package summarizer

import "time"

// Summary contains all data collected during a pipeline run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Input information
	Input InputInfo

	// Tie-point results
	TiePoints TiePointInfo

	// Executed steps in order
	Steps []StepInfo

	// Output artifacts
	Artifacts ArtifactInfo

	// Total wall time
	TotalDurationMs int64
}

// InputInfo describes the input data set.
type InputInfo struct {
	Dir        string
	Images     []string
	Projection string
	SRS        string
}

// TiePointInfo contains tie-point match statistics.
type TiePointInfo struct {
	Count    int
	MeanDX   float64
	MeanDY   float64
	StdDevDX float64
	StdDevDY float64
}

// StepInfo describes one executed external command.
type StepInfo struct {
	Name       string
	Command    string
	DurationMs int64
}

// ArtifactInfo lists the output files of a successful run.
type ArtifactInfo struct {
	DSM          string
	Shade        string
	Ortho        string
	GeoDSM       string
	RasterWidth  int
	RasterHeight int
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithInput sets input information.
func (b *Builder) WithInput(input InputInfo) *Builder {
	b.summary.Input = input
	return b
}

// WithTiePoints sets tie-point statistics.
func (b *Builder) WithTiePoints(tp TiePointInfo) *Builder {
	b.summary.TiePoints = tp
	return b
}

// WithSteps sets the executed step list.
func (b *Builder) WithSteps(steps []StepInfo) *Builder {
	b.summary.Steps = steps
	return b
}

// WithArtifacts sets the output artifact paths.
func (b *Builder) WithArtifacts(artifacts ArtifactInfo) *Builder {
	b.summary.Artifacts = artifacts
	return b
}

// WithTotalDuration sets the total wall time in milliseconds.
func (b *Builder) WithTotalDuration(ms int64) *Builder {
	b.summary.TotalDurationMs = ms
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
