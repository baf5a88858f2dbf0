// Package tiepoints implements the tie-point extraction stage.
package tiepoints

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/stereopipe/pkg/homol"
	"github.com/user/stereopipe/pkg/pipeline"
	"github.com/user/stereopipe/pkg/ports"
)

// maxPlottedPoints limits the scatter plot size for dense tie sets.
const maxPlottedPoints = 100

// Stage extracts tie points with Tapioca and loads the matched pairs.
type Stage struct {
	tool    ports.StereoTool
	fs      ports.FileSystem
	plotter ports.Plotter
	sink    ports.DebugSink
	logger  ports.Logger
}

// New creates a new tie-point stage.
func New(tool ports.StereoTool, fs ports.FileSystem, plotter ports.Plotter, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		tool:    tool,
		fs:      fs,
		plotter: plotter,
		sink:    sink,
		logger:  logger.WithComponent("tiepoints"),
	}
}

// Execute runs Tapioca, verifies the Homol directory and loads the tie
// points for the stereo pair.
func (s *Stage) Execute(ctx context.Context, input pipeline.TiePointsInput) (pipeline.TiePointsResult, error) {
	result := pipeline.TiePointsResult{}

	res, err := s.tool.Tapioca(ctx, input.Dir, input.ImagePattern, input.Resolution)
	result.Steps = append(result.Steps, stepOutput("tapioca", res))
	if err != nil {
		return result, fmt.Errorf("tapioca: %w", err)
	}

	homolDir := filepath.Join(input.Dir, pipeline.HomolDir)
	exists, err := s.fs.Exists(homolDir)
	if err != nil {
		return result, fmt.Errorf("stat %s: %w", homolDir, err)
	}
	if !exists {
		return result, fmt.Errorf("%w: %s", pipeline.ErrMissingOutput, homolDir)
	}

	points, err := homol.LoadPair(s.fs, input.Dir, input.Image1, input.Image2)
	if err != nil {
		return result, fmt.Errorf("load tie points: %w", err)
	}
	if len(points) == 0 {
		s.logger.Warn("No tie-point file found in %s", homolDir)
	} else {
		s.logger.Info("Loaded %d tie points", len(points))
	}

	result.Points = points
	result.Stats = homol.Summarize(points)

	if s.sink.Enabled() {
		s.saveDiagnostics(input, result)
	}

	return result, nil
}

// saveDiagnostics writes the tie-point statistics, scatter plot and stereo
// pair preview. Failures here are warnings; they never fail the stage.
func (s *Stage) saveDiagnostics(input pipeline.TiePointsInput, result pipeline.TiePointsResult) {
	if data, err := json.MarshalIndent(result.Stats, "", "  "); err == nil {
		s.sink.SaveTiePointsJSON(data)
	}

	if len(result.Points) == 0 {
		return
	}
	s.logger.Debug("Rendering tie-point scatter plot")
	if png, err := s.plotter.TiePointScatter(homol.Rows(result.Points), maxPlottedPoints); err == nil {
		s.sink.SaveTiePointPlot(png)
	}

	s.logger.Debug("Rendering stereo pair preview")
	var images []image.Image
	var titles []string
	for i, name := range []string{input.Image1, input.Image2} {
		data, err := s.fs.ReadFile(filepath.Join(input.Dir, name))
		if err != nil {
			s.logger.Warn("Preview skipped, %s not readable", name)
			return
		}
		img, err := s.plotter.DecodeRaster(data)
		if err != nil {
			s.logger.Warn("Preview skipped, %s not readable", name)
			return
		}
		images = append(images, img)
		titles = append(titles, fmt.Sprintf("Image %d", i+1))
	}
	if png, err := s.plotter.Preview(images, titles); err == nil {
		s.sink.SavePreview("stereo_pair", png)
	}
}

func stepOutput(name string, res ports.CommandResult) pipeline.StepOutput {
	return pipeline.StepOutput{
		Name:       name,
		Command:    res.Command.String(),
		DurationMs: res.Duration.Milliseconds(),
		Console:    res.Stdout,
	}
}
