package ports

// DebugSink abstracts diagnostic output for intermediate pipeline results.
// It allows saving plots, logs and metadata without coupling stages to a
// particular output location.
type DebugSink interface {
	// Enabled returns true if diagnostic output is enabled.
	Enabled() bool

	// SaveInputSetJSON saves the discovered input set as JSON.
	SaveInputSetJSON(data []byte) error

	// SaveTiePointsJSON saves the tie-point statistics as JSON.
	SaveTiePointsJSON(data []byte) error

	// SaveTiePointPlot saves the tie-point scatter plot as PNG.
	SaveTiePointPlot(png []byte) error

	// SavePreview saves a named preview figure as PNG.
	SavePreview(name string, png []byte) error

	// SaveStepLog saves the captured console output of a pipeline step.
	SaveStepLog(step string, output string) error

	// SaveRunJSON saves the overall run result as JSON.
	SaveRunJSON(data []byte) error
}
