// Package ortho implements the orthophoto mosaicking stage.
package ortho

import (
	"context"
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/stereopipe/pkg/pipeline"
	"github.com/user/stereopipe/pkg/ports"
)

// Stage mosaics the per-image orthoimages produced by Malt into a single
// orthophoto with Tawny.
type Stage struct {
	tool    ports.StereoTool
	fs      ports.FileSystem
	plotter ports.Plotter
	sink    ports.DebugSink
	logger  ports.Logger
}

// New creates a new orthophoto stage.
func New(tool ports.StereoTool, fs ports.FileSystem, plotter ports.Plotter, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		tool:    tool,
		fs:      fs,
		plotter: plotter,
		sink:    sink,
		logger:  logger.WithComponent("ortho"),
	}
}

// Execute runs Tawny and verifies the mosaic exists.
func (s *Stage) Execute(ctx context.Context, input pipeline.OrthoInput) (pipeline.OrthoResult, error) {
	result := pipeline.OrthoResult{}

	res, err := s.tool.Tawny(ctx, input.Dir, pipeline.OrthoDir+"/")
	result.Steps = append(result.Steps, pipeline.StepOutput{
		Name:       "tawny",
		Command:    res.Command.String(),
		DurationMs: res.Duration.Milliseconds(),
		Console:    res.Stdout,
	})
	if err != nil {
		return result, fmt.Errorf("tawny: %w", err)
	}

	path := filepath.Join(input.Dir, pipeline.OrthoMosaicFile)
	exists, err := s.fs.Exists(path)
	if err != nil {
		return result, fmt.Errorf("stat %s: %w", path, err)
	}
	if !exists {
		return result, fmt.Errorf("%w: %s", pipeline.ErrMissingOutput, path)
	}
	result.MosaicPath = pipeline.OrthoMosaicFile
	s.logger.Info("Orthophoto generated: %s", pipeline.OrthoMosaicFile)

	if s.sink.Enabled() {
		s.savePreview(input.Dir, pipeline.OrthoMosaicFile)
	}

	return result, nil
}

// savePreview renders the orthophoto preview. Failures are warnings.
func (s *Stage) savePreview(dir, rel string) {
	s.logger.Debug("Rendering orthophoto preview")
	data, err := s.fs.ReadFile(filepath.Join(dir, rel))
	if err != nil {
		s.logger.Warn("Preview skipped, %s not readable", rel)
		return
	}
	img, err := s.plotter.DecodeRaster(data)
	if err != nil {
		s.logger.Warn("Preview skipped, %s not readable", rel)
		return
	}
	png, err := s.plotter.Preview([]image.Image{img}, []string{"Orthophoto Mosaic"})
	if err != nil {
		return
	}
	s.sink.SavePreview("orthophoto", png)
}
