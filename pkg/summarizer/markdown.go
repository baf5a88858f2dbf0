package summarizer

import (
	"fmt"
	"strings"
)

// MarkdownFormatter formats a Summary as a Markdown document.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format converts a Summary to Markdown.
func (f *MarkdownFormatter) Format(summary *Summary) string {
	var sb strings.Builder

	sb.WriteString("# Pipeline Summary\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", summary.GeneratedAt.Format("2006-01-02 15:04:05 MST")))

	sb.WriteString("## Input\n\n")
	sb.WriteString(fmt.Sprintf("- Directory: %s\n", summary.Input.Dir))
	sb.WriteString(fmt.Sprintf("- Images: %s\n", strings.Join(summary.Input.Images, ", ")))
	if summary.Input.Projection != "" {
		sb.WriteString(fmt.Sprintf("- Projection: %s\n", summary.Input.Projection))
	}
	if summary.Input.SRS != "" {
		sb.WriteString(fmt.Sprintf("- Output SRS: %s\n", summary.Input.SRS))
	}
	sb.WriteString("\n")

	sb.WriteString("## Tie Points\n\n")
	if summary.TiePoints.Count > 0 {
		sb.WriteString(fmt.Sprintf("- Matches: %d\n", summary.TiePoints.Count))
		sb.WriteString(fmt.Sprintf("- Mean disparity: %.2f / %.2f px\n",
			summary.TiePoints.MeanDX, summary.TiePoints.MeanDY))
		sb.WriteString(fmt.Sprintf("- Std deviation: %.2f / %.2f px\n",
			summary.TiePoints.StdDevDX, summary.TiePoints.StdDevDY))
	} else {
		sb.WriteString("- Matches: N/A\n")
	}
	sb.WriteString("\n")

	sb.WriteString("## Steps\n\n")
	sb.WriteString("| Step | Duration | Command |\n")
	sb.WriteString("|------|----------|---------|\n")
	for _, step := range summary.Steps {
		sb.WriteString(fmt.Sprintf("| %s | %s | `%s` |\n",
			step.Name, formatDuration(step.DurationMs), step.Command))
	}
	sb.WriteString("\n")

	sb.WriteString("## Artifacts\n\n")
	writeArtifact(&sb, "DSM", summary.Artifacts.DSM)
	writeArtifact(&sb, "Shaded relief", summary.Artifacts.Shade)
	writeArtifact(&sb, "Orthophoto", summary.Artifacts.Ortho)
	writeArtifact(&sb, "Georeferenced DSM", summary.Artifacts.GeoDSM)
	if summary.Artifacts.RasterWidth > 0 && summary.Artifacts.RasterHeight > 0 {
		sb.WriteString(fmt.Sprintf("- Raster size: %dx%d\n",
			summary.Artifacts.RasterWidth, summary.Artifacts.RasterHeight))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Total duration: %s\n", formatDuration(summary.TotalDurationMs)))

	return sb.String()
}

func writeArtifact(sb *strings.Builder, label, path string) {
	if path == "" {
		return
	}
	sb.WriteString(fmt.Sprintf("- %s: %s\n", label, path))
}

// formatDuration renders milliseconds as a human readable duration.
func formatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%d ms", ms)
	}
	sec := float64(ms) / 1000.0
	if sec < 60 {
		return fmt.Sprintf("%.1f s", sec)
	}
	return fmt.Sprintf("%dm%02ds", int(sec)/60, int(sec)%60)
}
